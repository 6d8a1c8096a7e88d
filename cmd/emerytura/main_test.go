package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSimulation = `
simulation:
  age: 30
  gender: K
  gross_salary: 6500
  start_year: 2015
  end_year: 2055
  include_sick_leave: true
  expected_pension: 3000
postal_code: "31-100"
`

func writeSimulation(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simulation.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := rootCmd

	if cmd.Use != "emerytura" {
		t.Errorf("Expected root command use to be 'emerytura', got %s", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("Expected root command to have a short description")
	}
	if cmd.Long == "" {
		t.Error("Expected root command to have a long description")
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "calculate")
	assert.Contains(t, out, "serve")
}

func TestCommandSubcommands(t *testing.T) {
	expectedCommands := []string{"calculate", "validate", "serve", "usage", "sensitivity", "version"}

	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expectedCommands {
		if !registered[name] {
			t.Errorf("Expected command %s to be registered", name)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "emerytura dev")
}

func TestValidateCommand(t *testing.T) {
	path := writeSimulation(t, sampleSimulation)

	out, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	bad := writeSimulation(t, strings.Replace(sampleSimulation, "age: 30", "age: 70", 1))
	_, err = execute(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "age")
}

func TestCalculateCommand_JSON(t *testing.T) {
	path := writeSimulation(t, sampleSimulation)

	out, err := execute(t, "calculate", path, "--format", "json", "--base-year", "2025", "--db", "")
	require.NoError(t, err)

	var report struct {
		PostalCode string `json:"postalCode"`
		Result     struct {
			NominalPension       int64            `json:"nominalPension"`
			PensionWithSickLeave *int64           `json:"pensionWithSickLeave"`
			DelayBenefits        []map[string]any `json:"delayBenefits"`
			Breakdown            struct {
				BaseYear int `json:"baseYear"`
			} `json:"breakdown"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "31-100", report.PostalCode)
	assert.Positive(t, report.Result.NominalPension)
	assert.NotNil(t, report.Result.PensionWithSickLeave)
	assert.Len(t, report.Result.DelayBenefits, 3)
	assert.Equal(t, 2025, report.Result.Breakdown.BaseYear)
}

func TestCalculateCommand_UnknownFormat(t *testing.T) {
	path := writeSimulation(t, sampleSimulation)

	_, err := execute(t, "calculate", path, "--format", "pdf", "--db", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestCalculateRecordsUsage(t *testing.T) {
	path := writeSimulation(t, sampleSimulation)
	db := filepath.Join(t.TempDir(), "usage.db")

	_, err := execute(t, "calculate", path, "--format", "csv", "--db", db)
	require.NoError(t, err)
	_, err = execute(t, "calculate", path, "--format", "csv", "--db", db)
	require.NoError(t, err)

	out, err := execute(t, "usage", "list", "--db", db, "--gender", "k", "--csv")
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "31-100", rows[1][len(rows[1])-1])

	out, err = execute(t, "usage", "list", "--db", db, "--gender", "M", "--csv")
	require.NoError(t, err)
	rows, err = csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1, "Header only")

	out, err = execute(t, "usage", "list", "--db", db, "--gender", "", "--csv=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 1 of 1 (2 matching simulations)")
}

func TestFilterFromFlags(t *testing.T) {
	cmd := usageCmd()
	list, _, err := cmd.Find([]string{"list"})
	require.NoError(t, err)
	require.NoError(t, list.ParseFlags([]string{
		"--gender", "k", "--age-min", "0", "--to", "2025-05-10", "--page-size", "25",
	}))

	f, err := filterFromFlags(list)
	require.NoError(t, err)
	assert.Equal(t, "K", string(f.Gender))
	require.NotNil(t, f.AgeMin, "Explicit zero is still a bound")
	assert.Equal(t, 0, *f.AgeMin)
	assert.Nil(t, f.AgeMax)
	assert.Nil(t, f.DateFrom)
	require.NotNil(t, f.DateTo)
	assert.Equal(t, time.Date(2025, 5, 10, 23, 59, 59, 999999999, time.UTC), *f.DateTo)
	assert.Equal(t, 25, f.PageSize)
}

func TestFilterFromFlags_Invalid(t *testing.T) {
	cmd := usageCmd()
	list, _, err := cmd.Find([]string{"list"})
	require.NoError(t, err)
	require.NoError(t, list.ParseFlags([]string{"--from", "yesterday"}))

	_, err = filterFromFlags(list)
	assert.Error(t, err)
}

func TestFileExtension(t *testing.T) {
	assert.Equal(t, "txt", fileExtension("console"))
	assert.Equal(t, "json", fileExtension("json"))
}
