package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"mandatpro/pkg/models"
	"mandatpro/pkg/services"
)

// MaxBookingTextLength is the DATEV limit for Buchungstext.
const MaxBookingTextLength = 60

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02.01.2006",
	"2.1.2006",
	"02.01.06",
}

// IncomeToBooking books an income entry: bank in Konto, the revenue
// account in Gegenkonto.
func IncomeToBooking(e models.Entry, index int) services.Booking {
	return entryBooking(models.KindIncome, e, index, BankAccount,
		ResolveAccount(models.KindIncome, e.Category, e.Account), "E")
}

// ExpenseToBooking books an expense entry: the expense account in Konto,
// bank in Gegenkonto.
func ExpenseToBooking(e models.Entry, index int) services.Booking {
	return entryBooking(models.KindExpense, e, index,
		ResolveAccount(models.KindExpense, e.Category, e.Account), BankAccount, "A")
}

// MandateLevyToBooking books a paid mandate levy against the levy revenue
// account. Callers filter on IsPaid first.
func MandateLevyToBooking(l models.MandateLevy, index int) services.Booking {
	dateText := l.BookingDate()
	date, dateErr := ParseDate(dateText)

	return services.Booking{
		Kind:           models.KindMandateLevy,
		Index:          index,
		Amount:         magnitude(l.FinalLevy),
		Direction:      services.Debit,
		Account:        BankAccount,
		CounterAccount: MandateLevyAccount,
		BookingDate:    date,
		DateText:       dateText,
		DateErr:        dateErr,
		ReceiptNumber:  "MA" + stripPeriodSeparators(l.PeriodMonth),
		Description:    Truncate(fmt.Sprintf("Mandatsabgabe %s %s", l.ContactName, l.PeriodMonth), MaxBookingTextLength),
	}
}

// Every booking carries Soll; the side of the money flow is expressed only
// by which account sits in Konto and which in Gegenkonto.
func entryBooking(kind models.RecordKind, e models.Entry, index int, account, counter, receiptPrefix string) services.Booking {
	date, dateErr := ParseDate(e.Date)

	receipt := e.ReceiptNumber
	if receipt == "" {
		receipt = receiptPrefix + Truncate(e.ID, 8)
	}

	return services.Booking{
		Kind:           kind,
		Index:          index,
		Amount:         magnitude(e.Amount),
		Direction:      services.Debit,
		Account:        account,
		CounterAccount: counter,
		TaxCode:        e.TaxCode,
		BookingDate:    date,
		DateText:       e.Date,
		DateErr:        dateErr,
		ReceiptNumber:  receipt,
		Description:    Truncate(e.Description, MaxBookingTextLength),
		CostCenter1:    e.CostCenter,
	}
}

// ParseDate reads the date formats delivered by the data service and by
// spreadsheet sources. Only the calendar date is kept.
func ParseDate(s string) (time.Time, error) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

// Truncate cuts s to at most n characters.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func magnitude(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return d.Abs()
}

func stripPeriodSeparators(period string) string {
	return strings.NewReplacer("/", "", "-", "", ".", "", " ", "").Replace(period)
}
