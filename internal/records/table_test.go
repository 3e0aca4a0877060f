package records

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantNil bool
		wantErr bool
	}{
		{in: "1.234,56", want: "1234.56"},
		{in: "1234,56", want: "1234.56"},
		{in: "1234.56", want: "1234.56"},
		{in: "-12,50 €", want: "-12.5"},
		{in: "EUR 5,00", want: "5"},
		{in: "100", want: "100"},
		{in: "  ", wantNil: true},
		{in: "", wantNil: true},
		{in: "zwölf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestEntriesFromTable(t *testing.T) {
	values := [][]string{
		{"Datum", "Betrag", "Kategorie", "Beschreibung", "Belegnummer", "Unbekannt", "Kostenstelle"},
		{"15.01.2026", "100,50", "Spende", "Spende Neujahr", "B-1", "x", "OV"},
		{"", "", "", "", ""},
		{"2026-02-01", "kaputt", "spende"},
	}

	entries := entriesFromTable(values, IncomeSheet, zerolog.Nop())
	require.Len(t, entries, 2, "blank rows are skipped")

	e := entries[0]
	assert.Equal(t, "15.01.2026", e.Date)
	require.NotNil(t, e.Amount)
	assert.Equal(t, "100.5", e.Amount.String())
	assert.Equal(t, "Spende", e.Category)
	assert.Equal(t, "Spende Neujahr", e.Description)
	assert.Equal(t, "B-1", e.ReceiptNumber)
	assert.Equal(t, "OV", e.CostCenter)

	assert.Nil(t, entries[1].Amount, "unparsable amounts are left empty")
	assert.Empty(t, entries[1].Description, "short rows read as empty cells")
}

func TestLeviesFromTable(t *testing.T) {
	values := [][]string{
		{"contact_name", "period_month", "Status", "final_levy", "payment_date", "created_date"},
		{"Max Muster", "02/2026", "Bezahlt", "250,00", "2026-03-02", "2026-02-28"},
	}

	levies := leviesFromTable(values, MandateLevySheet, zerolog.Nop())
	require.Len(t, levies, 1)
	assert.Equal(t, "Max Muster", levies[0].ContactName)
	assert.Equal(t, "bezahlt", levies[0].Status)
	assert.True(t, levies[0].IsPaid())
	assert.Equal(t, "250", levies[0].FinalLevy.String())
}

func TestNewTableEmpty(t *testing.T) {
	assert.Empty(t, entriesFromTable(nil, IncomeSheet, zerolog.Nop()))
	assert.Empty(t, entriesFromTable([][]string{{"Datum", "Betrag"}}, IncomeSheet, zerolog.Nop()))
}

func TestStringRows(t *testing.T) {
	rows := stringRows([][]interface{}{{"a ", 12.5, nil}, {}})
	assert.Equal(t, [][]string{{"a", "12.5", ""}, {}}, rows)
}
