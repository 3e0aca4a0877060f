package datev

import (
	"time"

	"github.com/shopspring/decimal"
	"mandatpro/internal/booking"
	"mandatpro/pkg/models"
	"mandatpro/pkg/services"
)

// Selection narrows a dataset before export.
type Selection struct {
	IncludeIncome   bool
	IncludeExpenses bool
	IncludeLevies   bool

	// Inclusive date range; nil means open.
	From *time.Time
	To   *time.Time
}

// AllRecords selects every record group without a date range.
func AllRecords() Selection {
	return Selection{IncludeIncome: true, IncludeExpenses: true, IncludeLevies: true}
}

// Apply returns a new dataset with the selected records. Unpaid levies are
// always dropped. Records whose date does not parse are kept so that
// validation and encoding can report them.
func (s Selection) Apply(data *models.Dataset) *models.Dataset {
	out := &models.Dataset{
		Income:        []models.Entry{},
		Expenses:      []models.Entry{},
		MandateLevies: []models.MandateLevy{},
	}
	if data == nil {
		return out
	}

	if s.IncludeIncome {
		for _, e := range data.Income {
			if s.inRange(e.Date) {
				out.Income = append(out.Income, e)
			}
		}
	}
	if s.IncludeExpenses {
		for _, e := range data.Expenses {
			if s.inRange(e.Date) {
				out.Expenses = append(out.Expenses, e)
			}
		}
	}
	if s.IncludeLevies {
		for _, l := range data.MandateLevies {
			if l.IsPaid() && s.inRange(l.BookingDate()) {
				out.MandateLevies = append(out.MandateLevies, l)
			}
		}
	}
	return out
}

func (s Selection) inRange(date string) bool {
	if s.From == nil && s.To == nil {
		return true
	}
	t, err := booking.ParseDate(date)
	if err != nil {
		return true
	}
	if s.From != nil && t.Before(dateOnly(*s.From)) {
		return false
	}
	if s.To != nil && t.After(dateOnly(*s.To)) {
		return false
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GroupSummary counts and totals the bookings of one record group.
type GroupSummary struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// Summary describes a batch before it is exported.
type Summary struct {
	Income        GroupSummary `json:"income"`
	Expenses      GroupSummary `json:"expenses"`
	MandateLevies GroupSummary `json:"mandate_levies"`
	Bookings      int          `json:"bookings"`
	From          *time.Time   `json:"from,omitempty"`
	To            *time.Time   `json:"to,omitempty"`
}

// Summarize totals bookings per group and finds the covered date range.
// Bookings without a parsed date do not affect the range.
func Summarize(bookings []services.Booking) Summary {
	var s Summary
	for _, b := range bookings {
		var g *GroupSummary
		switch b.Kind {
		case models.KindIncome:
			g = &s.Income
		case models.KindExpense:
			g = &s.Expenses
		case models.KindMandateLevy:
			g = &s.MandateLevies
		default:
			continue
		}
		g.Count++
		g.Total = g.Total.Add(b.Amount)
		s.Bookings++

		if b.BookingDate.IsZero() {
			continue
		}
		d := b.BookingDate
		if s.From == nil || d.Before(*s.From) {
			s.From = &d
		}
		if s.To == nil || d.After(*s.To) {
			s.To = &d
		}
	}
	return s
}
