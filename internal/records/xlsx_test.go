package records

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"mandatpro/internal/booking"
)

func buildWorkbook(t *testing.T, sheets map[string][][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	path := filepath.Join(t.TempDir(), "buchhaltung.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestXLSXSource(t *testing.T) {
	path := buildWorkbook(t, map[string][][]interface{}{
		IncomeSheet: {
			{"Datum", "Betrag", "Kategorie", "Beschreibung"},
			{"15.01.2026", "100,50", "spende", "Spende"},
			{"16.01.2026", "20,00", "mitgliedsbeitrag", "Beitrag Januar"},
		},
		MandateLevySheet: {
			{"Kontakt", "Zeitraum", "Status", "Abgabe", "Zahlungsdatum"},
			{"Max Muster", "02/2026", "bezahlt", "250,00", "02.03.2026"},
		},
	})

	src := NewXLSXSource(path)
	defer src.Close()

	data, err := src.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, data.Income, 2)
	assert.Equal(t, "15.01.2026", data.Income[0].Date)
	assert.Equal(t, "100.5", data.Income[0].Amount.String())
	assert.Equal(t, "Beitrag Januar", data.Income[1].Description)

	assert.Empty(t, data.Expenses, "missing sheet yields no expenses")

	require.Len(t, data.MandateLevies, 1)
	assert.Equal(t, "Max Muster", data.MandateLevies[0].ContactName)
	assert.Equal(t, "02.03.2026", data.MandateLevies[0].PaymentDate)
	assert.True(t, data.MandateLevies[0].IsPaid())
}

func TestXLSXSourceWithoutRecordSheets(t *testing.T) {
	path := buildWorkbook(t, map[string][][]interface{}{
		"Notizen": {{"nichts"}},
	})

	_, err := NewXLSXSource(path).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSheetNotFound))
	assert.False(t, errors.Is(err, ErrSourceUnavailable))
}

func TestXLSXSourceMissingFile(t *testing.T) {
	_, err := NewXLSXSource(filepath.Join(t.TempDir(), "none.xlsx")).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
}

func TestXLSXSourceDateCells(t *testing.T) {
	path := buildWorkbook(t, map[string][][]interface{}{
		IncomeSheet: {
			{"Datum", "Betrag", "Kategorie"},
			{time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), 100.5, "spende"},
		},
		MandateLevySheet: {
			{"Kontakt", "Zeitraum", "Status", "Abgabe", "Zahlungsdatum", "Erstellt"},
			{"Max Muster", "02/2026", "bezahlt", 250, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "01.03.2026"},
		},
	})

	data, err := NewXLSXSource(path).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, data.Income, 1)
	assert.Equal(t, "2026-01-15", data.Income[0].Date)
	assert.Equal(t, "100.5", data.Income[0].Amount.String())

	require.Len(t, data.MandateLevies, 1)
	assert.Equal(t, "2026-03-02", data.MandateLevies[0].PaymentDate)
	assert.Equal(t, "01.03.2026", data.MandateLevies[0].CreatedDate)
	assert.Equal(t, "250", data.MandateLevies[0].FinalLevy.String())

	b := booking.IncomeToBooking(data.Income[0], 1)
	require.NoError(t, b.DateErr)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), b.BookingDate)
}

func TestISODateCells(t *testing.T) {
	rows := [][]string{
		{"Datum", "Betrag", "Beschreibung"},
		{"46037", "46037", "46037"},
		{"15.01.2026", "1", ""},
		{"20260115"},
		{},
	}

	got := isoDateCells(rows)

	assert.Equal(t, []string{"2026-01-15", "46037", "46037"}, got[1], "only date columns are converted")
	assert.Equal(t, "15.01.2026", got[2][0])
	assert.Equal(t, "20260115", got[3][0], "values beyond the Excel range stay text")
	assert.Empty(t, got[4])
}
