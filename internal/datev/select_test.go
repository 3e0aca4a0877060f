package datev

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mandatpro/pkg/models"
)

func selectionDataset() *models.Dataset {
	return &models.Dataset{
		Income: []models.Entry{
			{ID: "i1", Amount: dec("10"), Date: "2025-12-31"},
			{ID: "i2", Amount: dec("20"), Date: "2026-01-01"},
			{ID: "i3", Amount: dec("30"), Date: "irgendwann"},
		},
		Expenses: []models.Entry{
			{ID: "e1", Amount: dec("5"), Date: "2026-03-31"},
			{ID: "e2", Amount: dec("6"), Date: "2026-04-01"},
		},
		MandateLevies: []models.MandateLevy{
			{ID: "l1", Status: "bezahlt", FinalLevy: dec("100"), PaymentDate: "2026-02-10"},
			{ID: "l2", Status: "offen", FinalLevy: dec("100"), PaymentDate: "2026-02-10"},
			{ID: "l3", Status: "bezahlt", FinalLevy: dec("50"), CreatedDate: "2026-05-01"},
		},
	}
}

func ids(data *models.Dataset) []string {
	var out []string
	for _, e := range data.Income {
		out = append(out, e.ID)
	}
	for _, e := range data.Expenses {
		out = append(out, e.ID)
	}
	for _, l := range data.MandateLevies {
		out = append(out, l.ID)
	}
	return out
}

func TestSelectionApply(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name string
		sel  Selection
		want []string
	}{
		{"all records", AllRecords(), []string{"i1", "i2", "i3", "e1", "e2", "l1", "l3"}},
		{"first quarter", Selection{IncludeIncome: true, IncludeExpenses: true, IncludeLevies: true, From: &from, To: &to},
			[]string{"i2", "i3", "e1", "l1"}},
		{"from only", Selection{IncludeIncome: true, From: &from}, []string{"i2", "i3"}},
		{"levies only", Selection{IncludeLevies: true}, []string{"l1", "l3"}},
		{"nothing", Selection{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(tt.sel.Apply(selectionDataset())))
		})
	}
}

func TestSelectionApplyNil(t *testing.T) {
	out := AllRecords().Apply(nil)
	require.NotNil(t, out)
	assert.Empty(t, out.Income)
	assert.Empty(t, out.Expenses)
	assert.Empty(t, out.MandateLevies)
}

func TestSummarize(t *testing.T) {
	bookings := Canonicalize(selectionDataset())
	s := Summarize(bookings)

	assert.Equal(t, 3, s.Income.Count)
	assert.Equal(t, "60", s.Income.Total.String())
	assert.Equal(t, 2, s.Expenses.Count)
	assert.Equal(t, "11", s.Expenses.Total.String())
	assert.Equal(t, 2, s.MandateLevies.Count)
	assert.Equal(t, "150", s.MandateLevies.Total.String())
	assert.Equal(t, 7, s.Bookings)

	require.NotNil(t, s.From)
	require.NotNil(t, s.To)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), *s.From)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), *s.To)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Bookings)
	assert.Nil(t, s.From)
	assert.Nil(t, s.To)
}
