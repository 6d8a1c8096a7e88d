package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/emerytura/internal/domain"
	"github.com/rgehrsitz/emerytura/internal/usage"
	"github.com/rgehrsitz/emerytura/internal/usage/sqlite"
	"github.com/spf13/cobra"
)

func usageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Inspect the simulation usage log",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded simulations",
		Long: `List recorded simulations with optional filters.

Examples:
  emerytura usage list --db emerytura.db --gender K --age-min 30 --age-max 40
  emerytura usage list --from 2025-01-01 --to 2025-01-31 --page-size 25 --page 2
  emerytura usage list --search 00-950 --csv > usage.csv
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := filterFromFlags(cmd)
			if err != nil {
				return err
			}

			dbPath, _ := cmd.Flags().GetString("db")
			store, err := sqlite.New(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open usage database: %w", err)
			}
			defer store.Close()

			records, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			if asCSV, _ := cmd.Flags().GetBool("csv"); asCSV {
				if filter, err = filter.Normalize(); err != nil {
					return err
				}
				return usage.ExportCSV(cmd.OutOrStdout(), filter.Apply(records))
			}

			page, err := filter.Paginate(records)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderUsagePage(page))
			return nil
		},
	}

	listCmd.Flags().String("db", "emerytura.db", "SQLite usage database path")
	listCmd.Flags().Int("page", 1, "Page number")
	listCmd.Flags().Int("page-size", usage.DefaultPageSize, fmt.Sprintf("Rows per page %v", usage.PageSizes))
	listCmd.Flags().String("gender", "", "Only this gender (M or K)")
	listCmd.Flags().Int("age-min", 0, "Minimum age")
	listCmd.Flags().Int("age-max", 0, "Maximum age")
	listCmd.Flags().String("from", "", "Recorded on or after (YYYY-MM-DD or RFC 3339)")
	listCmd.Flags().String("to", "", "Recorded on or before (YYYY-MM-DD or RFC 3339)")
	listCmd.Flags().String("search", "", "Case-insensitive text search")
	listCmd.Flags().Bool("csv", false, "Export every matching row as CSV")

	cmd.AddCommand(listCmd)
	return cmd
}

func filterFromFlags(cmd *cobra.Command) (usage.Filter, error) {
	flags := cmd.Flags()
	var f usage.Filter
	f.Page, _ = flags.GetInt("page")
	f.PageSize, _ = flags.GetInt("page-size")
	f.Search, _ = flags.GetString("search")

	if g, _ := flags.GetString("gender"); g != "" {
		gender, err := domain.ParseGender(g)
		if err != nil {
			return f, err
		}
		f.Gender = gender
	}
	if flags.Changed("age-min") {
		v, _ := flags.GetInt("age-min")
		f.AgeMin = &v
	}
	if flags.Changed("age-max") {
		v, _ := flags.GetInt("age-max")
		f.AgeMax = &v
	}
	if v, _ := flags.GetString("from"); v != "" {
		t, err := usage.ParseDateBound(v, false)
		if err != nil {
			return f, err
		}
		f.DateFrom = &t
	}
	if v, _ := flags.GetString("to"); v != "" {
		t, err := usage.ParseDateBound(v, true)
		if err != nil {
			return f, err
		}
		f.DateTo = &t
	}
	return f, nil
}

func renderUsagePage(page usage.Page) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Recorded", "Age", "Gender", "Salary", "Expected", "Nominal", "Real", "Sick leave", "Postal code")
	for _, r := range page.Records {
		t.Row(
			r.Timestamp.Local().Format(time.DateTime),
			strconv.Itoa(r.Age),
			string(r.Gender),
			r.GrossSalary.StringFixed(2),
			r.ExpectedPension.StringFixed(2),
			strconv.FormatInt(r.NominalPension, 10),
			strconv.FormatInt(r.RealPension, 10),
			yesNo(r.IncludedSickLeave),
			r.PostalCode,
		)
	}
	return fmt.Sprintf("%s\nPage %d of %d (%d matching simulations)", t.Render(), page.Page, max(page.Pages, 1), page.Total)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
