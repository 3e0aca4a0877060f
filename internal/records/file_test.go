package records

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileSourceJSON(t *testing.T) {
	path := writeFile(t, "records.json", `{
		"income": [
			{"id": "i1", "amount": 100.50, "date": "2026-01-15", "category": "spende"},
			{"id": "i2", "amount": null, "date": "2026-01-16", "category": "spende"}
		],
		"expenses": [
			{"id": "e1", "amount": "59.00", "date": "2026-02-03", "category": "material", "account": "6815"}
		],
		"mandateLevies": [
			{"id": "l1", "contact_name": "Max Muster", "period_month": "02/2026", "status": "bezahlt", "final_levy": 250}
		]
	}`)

	data, err := NewFileSource(path).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, data.Income, 2)
	require.NotNil(t, data.Income[0].Amount)
	assert.Equal(t, "100.5", data.Income[0].Amount.String())
	assert.Nil(t, data.Income[1].Amount)

	require.Len(t, data.Expenses, 1)
	assert.Equal(t, "59", data.Expenses[0].Amount.String())
	assert.Equal(t, "6815", data.Expenses[0].Account)

	require.Len(t, data.MandateLevies, 1)
	assert.Equal(t, "Max Muster", data.MandateLevies[0].ContactName)
	assert.Equal(t, "250", data.MandateLevies[0].FinalLevy.String())
}

func TestFileSourceYAML(t *testing.T) {
	path := writeFile(t, "records.yaml", `
income:
  - id: i1
    amount: 12.30
    date: "2026-03-01"
    category: mitgliedsbeitrag
expenses:
  - id: e1
    date: "2026-03-02"
    category: porto
mandateLevies:
  - contact_name: Erika Beispiel
    period_month: "03/2026"
    status: offen
    final_levy: "80.00"
`)

	data, err := NewFileSource(path).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, data.Income, 1)
	require.NotNil(t, data.Income[0].Amount)
	assert.Equal(t, "12.3", data.Income[0].Amount.String())
	assert.Equal(t, "2026-03-01", data.Income[0].Date)

	require.Len(t, data.Expenses, 1)
	assert.Nil(t, data.Expenses[0].Amount)

	require.Len(t, data.MandateLevies, 1)
	assert.False(t, data.MandateLevies[0].IsPaid())
	assert.Equal(t, "80", data.MandateLevies[0].FinalLevy.String())
}

func TestFileSourceErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.json")).Load(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = NewFileSource(writeFile(t, "broken.json", `{"income": [`)).Load(ctx)
	require.Error(t, err)
	var srcErr *SourceError
	require.True(t, errors.As(err, &srcErr))
	assert.Equal(t, "Load", srcErr.Op)

	_, err = NewFileSource(writeFile(t, "records.txt", "income")).Load(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedSource))
	assert.False(t, errors.Is(err, ErrSourceUnavailable))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = NewFileSource(writeFile(t, "ok.json", `{}`)).Load(canceled)
	assert.True(t, errors.Is(err, context.Canceled))
}
