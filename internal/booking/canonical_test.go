package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mandatpro/pkg/models"
	"mandatpro/pkg/services"
)

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestIncomeToBooking(t *testing.T) {
	b := IncomeToBooking(models.Entry{
		ID:          "a1b2c3d4e5f6",
		Amount:      amount("100.50"),
		Date:        "2026-01-15",
		Category:    "spende",
		Description: "Spende Sommerfest",
		TaxCode:     "1",
		CostCenter:  "OV-Nord",
	}, 1)

	assert.Equal(t, models.KindIncome, b.Kind)
	assert.Equal(t, 1, b.Index)
	assert.Equal(t, "100.5", b.Amount.String())
	assert.Equal(t, services.Debit, b.Direction)
	assert.Equal(t, BankAccount, b.Account)
	assert.Equal(t, "4120", b.CounterAccount)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), b.BookingDate)
	assert.Equal(t, "Ea1b2c3d4", b.ReceiptNumber)
	assert.Equal(t, "Spende Sommerfest", b.Description)
	assert.Equal(t, "1", b.TaxCode)
	assert.Equal(t, "OV-Nord", b.CostCenter1)
}

func TestExpenseToBooking(t *testing.T) {
	b := ExpenseToBooking(models.Entry{
		ID:            "x1",
		Amount:        amount("-59.00"),
		Date:          "2026-02-03",
		Category:      "material",
		ReceiptNumber: "R-2026-17",
	}, 3)

	assert.Equal(t, models.KindExpense, b.Kind)
	assert.Equal(t, services.Debit, b.Direction)
	assert.Equal(t, "6815", b.Account)
	assert.Equal(t, BankAccount, b.CounterAccount)
	assert.Equal(t, "59", b.Amount.String(), "amount is always the magnitude")
	assert.Equal(t, "R-2026-17", b.ReceiptNumber)
}

func TestExpenseWithoutCategoryUsesFallback(t *testing.T) {
	b := ExpenseToBooking(models.Entry{ID: "abc", Amount: amount("1"), Date: "2026-03-01"}, 1)
	assert.Equal(t, DefaultExpenseAccount, b.Account)
	assert.Equal(t, "Aabc", b.ReceiptNumber)
}

func TestMandateLevyToBooking(t *testing.T) {
	b := MandateLevyToBooking(models.MandateLevy{
		ID:          "lev-1",
		ContactName: "Max Muster",
		PeriodMonth: "02/2026",
		Status:      models.LevyStatusPaid,
		FinalLevy:   amount("250.00"),
		PaymentDate: "2026-03-05",
		CreatedDate: "2026-02-28",
	}, 2)

	assert.Equal(t, models.KindMandateLevy, b.Kind)
	assert.Equal(t, services.Debit, b.Direction)
	assert.Equal(t, BankAccount, b.Account)
	assert.Equal(t, MandateLevyAccount, b.CounterAccount)
	assert.Equal(t, "250", b.Amount.String())
	assert.Equal(t, "Mandatsabgabe Max Muster 02/2026", b.Description)
	assert.Equal(t, "MA022026", b.ReceiptNumber)
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), b.BookingDate)
}

func TestMandateLevyFallsBackToCreatedDate(t *testing.T) {
	b := MandateLevyToBooking(models.MandateLevy{
		ContactName: "Erika Beispiel",
		PeriodMonth: "2026-01",
		Status:      models.LevyStatusPaid,
		CreatedDate: "2026-02-01T10:15:00Z",
	}, 1)

	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), b.BookingDate)
	assert.Equal(t, "MA202601", b.ReceiptNumber)
	assert.True(t, b.Amount.IsZero(), "missing final levy books as zero")
}

func TestDescriptionTruncated(t *testing.T) {
	long := strings.Repeat("ä", 75)
	b := IncomeToBooking(models.Entry{Amount: amount("1"), Date: "2026-01-01", Description: long}, 1)
	assert.Equal(t, MaxBookingTextLength, len([]rune(b.Description)))
}

func TestInvalidDateLeavesZeroBookingDate(t *testing.T) {
	b := IncomeToBooking(models.Entry{Amount: amount("1"), Date: "gestern"}, 1)
	assert.True(t, b.BookingDate.IsZero())
	assert.Equal(t, "gestern", b.DateText)
}

func TestParseDate(t *testing.T) {
	want := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	valid := []string{
		"2026-01-15",
		"2026-01-15T13:45:00Z",
		"2026-01-15T13:45:00.123+01:00",
		"2026-01-15T13:45:00",
		"2026-01-15 13:45:00",
		"15.01.2026",
		"15.1.2026",
		" 2026-01-15 ",
	}
	for _, s := range valid {
		got, err := ParseDate(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}

	for _, s := range []string{"", "   ", "2026-13-40", "gestern"} {
		_, err := ParseDate(s)
		assert.Error(t, err, s)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "Grü", Truncate("Grüße", 3))
}
