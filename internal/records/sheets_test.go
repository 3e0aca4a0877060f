package records

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRangeReader struct {
	titles []string
	values map[string][][]interface{}
	err    error
	ranges []string
}

func (f *fakeRangeReader) SheetTitles(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.titles, nil
}

func (f *fakeRangeReader) ReadRange(ctx context.Context, rangeSpec string) ([][]interface{}, error) {
	f.ranges = append(f.ranges, rangeSpec)
	sheet := strings.SplitN(rangeSpec, "!", 2)[0]
	return f.values[sheet], nil
}

func TestSheetsSource(t *testing.T) {
	reader := &fakeRangeReader{
		titles: []string{"Übersicht", IncomeSheet, ExpenseSheet},
		values: map[string][][]interface{}{
			IncomeSheet: {
				{"date", "amount", "category"},
				{"2026-01-15", "100,50", "spende"},
			},
			ExpenseSheet: {
				{"Datum", "Betrag", "Kategorie", "Konto"},
				{"03.02.2026", 59, "material", "6815"},
			},
		},
	}

	data, err := NewSheetsSource(reader, "sheet-id").Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Einnahmen!A:Z", "Ausgaben!A:Z"}, reader.ranges)

	require.Len(t, data.Income, 1)
	assert.Equal(t, "100.5", data.Income[0].Amount.String())

	require.Len(t, data.Expenses, 1)
	assert.Equal(t, "59", data.Expenses[0].Amount.String())
	assert.Equal(t, "6815", data.Expenses[0].Account)

	assert.Empty(t, data.MandateLevies)
}

func TestSheetsSourceErrors(t *testing.T) {
	_, err := NewSheetsSource(&fakeRangeReader{titles: []string{"Tabelle1"}}, "x").Load(context.Background())
	assert.True(t, errors.Is(err, ErrSheetNotFound))

	boom := errors.New("quota exceeded")
	_, err = NewSheetsSource(&fakeRangeReader{err: boom}, "x").Load(context.Background())
	assert.True(t, errors.Is(err, boom))
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
}
