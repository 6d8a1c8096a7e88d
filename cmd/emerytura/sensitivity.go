package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"
	"github.com/rgehrsitz/emerytura/internal/calculation"
	"github.com/rgehrsitz/emerytura/internal/config"
	"github.com/rgehrsitz/emerytura/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func sensitivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity [input-file]",
		Short: "Show how the pension reacts to a changing assumption",
		Long: `Sweep one assumption across a range and project the pension at each value.

Parameters: wage_growth, inflation_rate, contribution_rate.

Examples:
  emerytura sensitivity simulation.yaml --parameter wage_growth
  emerytura sensitivity simulation.yaml --parameter inflation_rate:0.015-0.040:6
  emerytura sensitivity simulation.yaml --parameter contribution_rate --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			cfg, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}

			paramStr, _ := cmd.Flags().GetString("parameter")
			param, err := parseParameterString(paramStr)
			if err != nil {
				return err
			}

			engine := calculation.NewCalculationEngineWithAssumptions(cfg.Assumptions)
			baseYear, _ := cmd.Flags().GetInt("base-year")
			analysis, err := engine.AnalyzeParameter(cfg.Simulation, param, baseYear)
			if err != nil {
				return err
			}

			switch format, _ := cmd.Flags().GetString("output"); format {
			case "json":
				data, err := json.MarshalIndent(analysis, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			case "table":
				fmt.Fprintln(cmd.OutOrStdout(), renderSensitivity(analysis))
			default:
				return fmt.Errorf("unsupported output format %q (expected table or json)", format)
			}
			return nil
		},
	}

	cmd.Flags().String("parameter", "wage_growth", "Parameter to analyze (format: name[:min-max[:steps]])")
	cmd.Flags().Int("base-year", 0, "Year real values are expressed in (default: current year)")
	cmd.Flags().String("output", "table", "Output format (table, json)")
	return cmd
}

// parseParameterString reads name[:min-max[:steps]], defaulting the range and
// steps to the parameter's own.
func parseParameterString(paramStr string) (domain.SensitivityParameter, error) {
	parts := strings.Split(paramStr, ":")
	if len(parts) > 3 {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid parameter format: %s (expected name[:min-max[:steps]])", paramStr)
	}

	param, ok := domain.FindSensitivityParameter(parts[0])
	if !ok {
		return domain.SensitivityParameter{}, fmt.Errorf("unknown parameter %q", parts[0])
	}

	if len(parts) >= 2 {
		minMax := strings.Split(parts[1], "-")
		if len(minMax) != 2 {
			return domain.SensitivityParameter{}, fmt.Errorf("invalid range format: %s (expected min-max)", parts[1])
		}
		minValue, err := decimal.NewFromString(minMax[0])
		if err != nil {
			return domain.SensitivityParameter{}, fmt.Errorf("invalid min value: %w", err)
		}
		maxValue, err := decimal.NewFromString(minMax[1])
		if err != nil {
			return domain.SensitivityParameter{}, fmt.Errorf("invalid max value: %w", err)
		}
		if minValue.GreaterThan(maxValue) {
			return domain.SensitivityParameter{}, fmt.Errorf("invalid range %s: min exceeds max", parts[1])
		}
		param.MinValue, param.MaxValue = minValue, maxValue
	}

	if len(parts) == 3 {
		steps, err := strconv.Atoi(parts[2])
		if err != nil || steps < 1 {
			return domain.SensitivityParameter{}, fmt.Errorf("invalid steps: %s", parts[2])
		}
		param.Steps = steps
	}

	return param, nil
}

func renderSensitivity(a *domain.SensitivityAnalysis) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(a.Parameter.Name, "Nominal", "Real", "Replacement", "Real change")
	for _, p := range a.Points {
		value := p.Value.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
		if p.Value.Equal(a.BaseValue) {
			value += " *"
		}
		t.Row(
			value,
			strconv.FormatInt(p.NominalPension, 10),
			strconv.FormatInt(p.RealPension, 10),
			p.ReplacementRate.StringFixed(2)+"%",
			p.ChangePct.StringFixed(2)+"%",
		)
	}
	return fmt.Sprintf("%s\n%s\n* current assumption (%s)\nSensitivity score: %s (%s)",
		a.Parameter.Description, t.Render(), a.BaseValue.String(), a.Score.StringFixed(2), a.RiskLevel)
}
