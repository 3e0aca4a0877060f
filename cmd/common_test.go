package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mandatpro/internal/config"
	"mandatpro/internal/datev"
)

func newRecordCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	addRecordFlags(c)
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestSelectionFromFlags(t *testing.T) {
	sel, err := selectionFromFlags(newRecordCommand(t))
	require.NoError(t, err)
	assert.Equal(t, datev.AllRecords(), sel)

	sel, err = selectionFromFlags(newRecordCommand(t, "--no-levies", "--from", "2026-01-01", "--to", "20260331"))
	require.NoError(t, err)
	assert.True(t, sel.IncludeIncome)
	assert.True(t, sel.IncludeExpenses)
	assert.False(t, sel.IncludeLevies)
	require.NotNil(t, sel.From)
	require.NotNil(t, sel.To)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *sel.From)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), *sel.To)
}

func TestSelectionFromFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad from", []string{"--from", "01.01.2026"}},
		{"bad to", []string{"--to", "gestern"}},
		{"reversed range", []string{"--from", "2026-03-01", "--to", "2026-02-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := selectionFromFlags(newRecordCommand(t, tt.args...))
			assert.Error(t, err)
		})
	}
}

func TestLoadSelectedRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daten.json")
	raw := `{
  "income": [
    {"id": "1", "amount": "100.50", "date": "2026-01-15", "category": "spende"},
    {"id": "2", "amount": "20", "date": "2026-05-01", "category": "beitrag"}
  ],
  "expenses": [
    {"id": "3", "amount": "59", "date": "2026-02-03", "category": "material"}
  ],
  "mandateLevies": [
    {"id": "4", "final_levy": "250", "status": "bezahlt", "payment_date": "2026-02-28"},
    {"id": "5", "final_levy": "250", "status": "offen", "payment_date": "2026-03-31"}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	c := newRecordCommand(t, "--source", path, "--to", "2026-03-31")
	data, err := loadSelectedRecords(c, &config.Config{}, zerolog.Nop())
	require.NoError(t, err)

	require.Len(t, data.Income, 1)
	assert.Equal(t, "1", data.Income[0].ID)
	assert.Len(t, data.Expenses, 1)
	require.Len(t, data.MandateLevies, 1)
	assert.Equal(t, "4", data.MandateLevies[0].ID)
}

func TestLoadSelectedRecordsFallsBackToConfig(t *testing.T) {
	_, err := loadSelectedRecords(newRecordCommand(t), &config.Config{}, zerolog.Nop())
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "leer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("income: []\n"), 0o644))

	data, err := loadSelectedRecords(newRecordCommand(t), &config.Config{RecordSource: path}, zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, data.Income)
}

func TestWriteArtifact(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exporte")
	art := &datev.Artifact{
		RunID:    "run-1",
		Filename: datev.Filename(time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)),
		Content:  []byte("\uFEFF\"EXTF\";700"),
	}

	path, err := writeArtifact(art, dir, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "EXTF_Buchungsstapel_20260314_092653.csv"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, art.Content, got)
}
