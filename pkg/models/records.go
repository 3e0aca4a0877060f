package models

import "github.com/shopspring/decimal"

// RecordKind identifies the collection a raw financial record belongs to.
type RecordKind string

const (
	KindIncome      RecordKind = "income"
	KindExpense     RecordKind = "expense"
	KindMandateLevy RecordKind = "mandate_levy"
)

// Label returns the German name used in user-facing messages.
func (k RecordKind) Label() string {
	switch k {
	case KindIncome:
		return "Einnahme"
	case KindExpense:
		return "Ausgabe"
	case KindMandateLevy:
		return "Mandatsabgabe"
	default:
		return string(k)
	}
}

// LevyStatusPaid is the only mandate levy status that is exported.
const LevyStatusPaid = "bezahlt"

// Entry is an income or expense record as delivered by the data service.
// Dates are kept as the raw text from the source so that parse failures
// surface at encoding time instead of being dropped on load.
type Entry struct {
	ID            string           `json:"id" yaml:"id"`
	Amount        *decimal.Decimal `json:"amount" yaml:"amount"` // nil = missing
	Date          string           `json:"date" yaml:"date"`
	Category      string           `json:"category" yaml:"category"`
	Account       string           `json:"account,omitempty" yaml:"account,omitempty"` // optional override of the category mapping
	TaxCode       string           `json:"tax_code" yaml:"tax_code"`
	ReceiptNumber string           `json:"receipt_number" yaml:"receipt_number"`
	Description   string           `json:"description" yaml:"description"`
	CostCenter    string           `json:"cost_center" yaml:"cost_center"`
}

// MandateLevy is a mandate holder's levy payment back to the organization.
type MandateLevy struct {
	ID          string           `json:"id" yaml:"id"`
	ContactName string           `json:"contact_name" yaml:"contact_name"`
	PeriodMonth string           `json:"period_month" yaml:"period_month"` // e.g. "02/2026"
	Status      string           `json:"status" yaml:"status"`
	FinalLevy   *decimal.Decimal `json:"final_levy" yaml:"final_levy"`
	PaymentDate string           `json:"payment_date" yaml:"payment_date"`
	CreatedDate string           `json:"created_date" yaml:"created_date"`
}

// IsPaid reports whether the levy has been paid and may be exported.
func (l MandateLevy) IsPaid() bool {
	return l.Status == LevyStatusPaid
}

// BookingDate returns the payment date, falling back to the creation date.
func (l MandateLevy) BookingDate() string {
	if l.PaymentDate != "" {
		return l.PaymentDate
	}
	return l.CreatedDate
}

// Dataset holds the three record collections of one export.
type Dataset struct {
	Income        []Entry       `json:"income" yaml:"income"`
	Expenses      []Entry       `json:"expenses" yaml:"expenses"`
	MandateLevies []MandateLevy `json:"mandateLevies" yaml:"mandateLevies"`
}
