package records

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"mandatpro/pkg/models"
)

// Sheet names of workbook and spreadsheet sources.
const (
	IncomeSheet      = "Einnahmen"
	ExpenseSheet     = "Ausgaben"
	MandateLevySheet = "Mandatsabgaben"
)

// Column keys of a record table. Header cells are matched against these
// and their German aliases, case-insensitive.
var columnAliases = map[string]string{
	"id":              "id",
	"nr":              "id",
	"amount":          "amount",
	"betrag":          "amount",
	"date":            "date",
	"datum":           "date",
	"belegdatum":      "date",
	"category":        "category",
	"kategorie":       "category",
	"account":         "account",
	"konto":           "account",
	"tax_code":        "tax_code",
	"bu-schlüssel":    "tax_code",
	"steuerschlüssel": "tax_code",
	"receipt_number":  "receipt_number",
	"belegnummer":     "receipt_number",
	"belegfeld 1":     "receipt_number",
	"description":     "description",
	"beschreibung":    "description",
	"buchungstext":    "description",
	"cost_center":     "cost_center",
	"kostenstelle":    "cost_center",

	"contact_name":  "contact_name",
	"kontakt":       "contact_name",
	"name":          "contact_name",
	"period_month":  "period_month",
	"zeitraum":      "period_month",
	"monat":         "period_month",
	"status":        "status",
	"final_levy":    "final_levy",
	"abgabe":        "final_levy",
	"payment_date":  "payment_date",
	"zahlungsdatum": "payment_date",
	"bezahlt am":    "payment_date",
	"created_date":  "created_date",
	"erstellt":      "created_date",
}

// table is a sheet read as header row plus data rows.
type table struct {
	columns map[string]int
	rows    [][]string
}

func newTable(values [][]string) table {
	t := table{columns: map[string]int{}}
	if len(values) == 0 {
		return t
	}
	for i, cell := range values[0] {
		key, ok := columnAliases[strings.ToLower(strings.TrimSpace(cell))]
		if !ok {
			continue
		}
		if _, seen := t.columns[key]; !seen {
			t.columns[key] = i
		}
	}
	for _, row := range values[1:] {
		if isBlankRow(row) {
			continue
		}
		t.rows = append(t.rows, row)
	}
	return t
}

func (t table) get(row []string, key string) string {
	i, ok := t.columns[key]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// entriesFromTable reads income or expense rows. Unparsable amounts are
// logged and left nil so validation reports them.
func entriesFromTable(values [][]string, sheet string, log zerolog.Logger) []models.Entry {
	t := newTable(values)
	entries := make([]models.Entry, 0, len(t.rows))
	for i, row := range t.rows {
		entries = append(entries, models.Entry{
			ID:            t.get(row, "id"),
			Amount:        cellAmount(t.get(row, "amount"), sheet, i+2, log),
			Date:          t.get(row, "date"),
			Category:      t.get(row, "category"),
			Account:       t.get(row, "account"),
			TaxCode:       t.get(row, "tax_code"),
			ReceiptNumber: t.get(row, "receipt_number"),
			Description:   t.get(row, "description"),
			CostCenter:    t.get(row, "cost_center"),
		})
	}
	return entries
}

func leviesFromTable(values [][]string, sheet string, log zerolog.Logger) []models.MandateLevy {
	t := newTable(values)
	levies := make([]models.MandateLevy, 0, len(t.rows))
	for i, row := range t.rows {
		levies = append(levies, models.MandateLevy{
			ID:          t.get(row, "id"),
			ContactName: t.get(row, "contact_name"),
			PeriodMonth: t.get(row, "period_month"),
			Status:      strings.ToLower(t.get(row, "status")),
			FinalLevy:   cellAmount(t.get(row, "final_levy"), sheet, i+2, log),
			PaymentDate: t.get(row, "payment_date"),
			CreatedDate: t.get(row, "created_date"),
		})
	}
	return levies
}

func cellAmount(s, sheet string, rowNum int, log zerolog.Logger) *decimal.Decimal {
	amount, err := ParseAmount(s)
	if err != nil {
		log.Warn().
			Err(err).
			Str("sheet", sheet).
			Int("row", rowNum).
			Msg("Invalid amount, leaving it empty")
		return nil
	}
	return amount
}

// ParseAmount reads German and plain amounts ("1.234,56", "1234,56",
// "1234.56", "-12,50 €"). An empty string yields nil.
func ParseAmount(s string) (*decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return nil, nil
	}

	negative := strings.HasPrefix(cleaned, "-")
	if negative {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "-"))
	}

	cleaned = strings.NewReplacer(" ", "", "\u00a0", "", "€", "", "EUR", "").Replace(cleaned)

	// German format uses dots for thousands and a comma for decimals.
	if strings.Contains(cleaned, ",") {
		if strings.Contains(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("unable to parse amount: %s (cleaned: %s)", s, cleaned)
	}
	if negative {
		amount = amount.Neg()
	}
	return &amount, nil
}

// stringRows converts API cell values to trimmed strings.
func stringRows(values [][]interface{}) [][]string {
	out := make([][]string, 0, len(values))
	for _, row := range values {
		cells := make([]string, len(row))
		for i := range row {
			cells[i] = getString(row, i)
		}
		out = append(out, cells)
	}
	return out
}

// getString safely extracts a string value from a row slice
func getString(row []interface{}, index int) string {
	if index >= len(row) || row[index] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", row[index]))
}

// datasetFromSheets reads the three record sheets through read. Sheets
// missing from titles yield empty collections; if all are missing the
// result is ErrSheetNotFound.
func datasetFromSheets(titles []string, read func(sheet string) ([][]string, error), log zerolog.Logger) (*models.Dataset, error) {
	present := map[string]bool{}
	for _, t := range titles {
		present[t] = true
	}
	if !present[IncomeSheet] && !present[ExpenseSheet] && !present[MandateLevySheet] {
		return nil, fmt.Errorf("%w: expected %s, %s or %s", ErrSheetNotFound, IncomeSheet, ExpenseSheet, MandateLevySheet)
	}

	load := func(sheet string) ([][]string, error) {
		if !present[sheet] {
			log.Debug().Str("sheet", sheet).Msg("Sheet not present, skipping")
			return nil, nil
		}
		rows, err := read(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s sheet: %w", sheet, err)
		}
		return rows, nil
	}

	data := &models.Dataset{}

	rows, err := load(IncomeSheet)
	if err != nil {
		return nil, err
	}
	data.Income = entriesFromTable(rows, IncomeSheet, log)

	rows, err = load(ExpenseSheet)
	if err != nil {
		return nil, err
	}
	data.Expenses = entriesFromTable(rows, ExpenseSheet, log)

	rows, err = load(MandateLevySheet)
	if err != nil {
		return nil, err
	}
	data.MandateLevies = leviesFromTable(rows, MandateLevySheet, log)

	return data, nil
}
