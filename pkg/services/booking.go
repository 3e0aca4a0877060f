package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"mandatpro/pkg/models"
)

// Direction is the Soll/Haben marker of a booking row.
type Direction string

const (
	Debit  Direction = "S" // Soll
	Credit Direction = "H" // Haben
)

// RecordSource supplies the raw record collections for an export.
type RecordSource interface {
	// Load returns all income, expense and mandate levy records of the source.
	Load(ctx context.Context) (*models.Dataset, error)

	// Close releases any handle held by the source.
	Close() error
}

// Booking is the canonical form of one financial record, ready for encoding
// into a DATEV row.
type Booking struct {
	// Origin of the booking
	Kind  models.RecordKind `json:"kind"`
	Index int               `json:"index"` // 1-based position within its record group

	// Core booking information
	Amount         decimal.Decimal `json:"amount"`          // Umsatz, always the positive magnitude
	Direction      Direction       `json:"direction"`       // Soll/Haben-Kennzeichen
	Account        string          `json:"account"`         // Konto (SKR03)
	CounterAccount string          `json:"counter_account"` // Gegenkonto (SKR03)
	TaxCode        string          `json:"tax_code"`        // BU-Schlüssel
	BookingDate    time.Time       `json:"booking_date"`    // Belegdatum, zero if DateText did not parse
	DateText       string          `json:"date_text"`       // date as delivered by the source
	DateErr        error           `json:"-"`               // why DateText did not parse

	// Receipt and text fields
	ReceiptNumber string `json:"receipt_number"` // Belegfeld 1
	ReceiptField2 string `json:"receipt_field_2"`
	Description   string `json:"description"` // Buchungstext (max 60 chars)

	// Cost accounting
	CostCenter1 string `json:"cost_center_1"` // KOST1
	CostCenter2 string `json:"cost_center_2"` // KOST2
}
