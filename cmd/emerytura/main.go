package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rgehrsitz/emerytura/internal/calculation"
	"github.com/rgehrsitz/emerytura/internal/config"
	"github.com/rgehrsitz/emerytura/internal/insights"
	"github.com/rgehrsitz/emerytura/internal/output"
	"github.com/rgehrsitz/emerytura/internal/usage"
	"github.com/rgehrsitz/emerytura/internal/usage/sqlite"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "emerytura %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "emerytura",
	Short: "ZUS pension estimator CLI",
	Long:  "Estimates a future ZUS old-age pension from salary history, account balances and sick leave, and serves the estimator over HTTP.",
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Estimate the pension for a simulation file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(args[0])
		if err != nil {
			return err
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		formatter := output.GetFormatterByName(outputFormat)
		if formatter == nil {
			return fmt.Errorf("unsupported format %q (available: %s; aliases: %s)", outputFormat,
				strings.Join(output.AvailableFormatterNames(), ", "),
				strings.Join(output.AvailableFormatAliases(), ", "))
		}

		engine := calculation.NewCalculationEngineWithAssumptions(cfg.Assumptions)
		debugMode, _ := cmd.Flags().GetBool("debug")
		if debugMode {
			engine.SetLogger(simpleCLILogger{})
		}
		engine.Debug = debugMode

		recorder := usage.NewRecorder(engine, nil)
		recorder.Options.BaseYear, _ = cmd.Flags().GetInt("base-year")
		recorder.Logger = simpleCLILogger{}
		if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
			store, err := sqlite.New(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open usage database: %w", err)
			}
			defer store.Close()
			recorder.Store = store
		}

		result, _ := recorder.Run(cmd.Context(), cfg.Simulation, cfg.PostalCode)
		report := output.NewReport(cfg.Simulation, cfg.PostalCode, result, insights.RandomFact(nil), cfg.Assumptions.MaxExtraYears, time.Now())

		if save, _ := cmd.Flags().GetBool("save"); save {
			filename, err := output.WriteFormatted(formatter, report, fileExtension(formatter.Name()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
			return nil
		}

		data, err := formatter.Format(report)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func fileExtension(format string) string {
	if format == "console" {
		return "txt"
	}
	return format
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a simulation file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		parser := config.NewInputParser()
		if _, err := parser.LoadFromFile(inputFile); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Simulation file %s is valid\n", inputFile)
		return nil
	},
}

func init() {
	calculateCmd.Flags().StringP("format", "f", "console", "Output format (console, json, yaml, csv)")
	calculateCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	calculateCmd.Flags().Int("base-year", 0, "Year real values are expressed in (default: current year)")
	calculateCmd.Flags().String("db", "", "Record the simulation in this SQLite usage database")
	calculateCmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(usageCmd())
	rootCmd.AddCommand(sensitivityCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
