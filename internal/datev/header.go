package datev

import (
	"strconv"
	"strings"
	"time"
)

// DefaultBatchLabel is used when no batch label is configured.
const DefaultBatchLabel = "Buchungsstapel"

// HeaderConfig holds the values of the EXTF batch header line.
type HeaderConfig struct {
	AdvisorNumber   string
	ClientNumber    string
	FiscalYearStart time.Time
	AccountLength   int
	PeriodFrom      time.Time
	PeriodTo        time.Time
	BatchLabel      string
	DiktatCode      string
	Currency        string
	CreatedAt       time.Time
}

// HeaderSettings are caller overrides of the header defaults. Empty strings
// and nil dates keep the default.
type HeaderSettings struct {
	AdvisorNumber   string     `json:"advisor_number,omitempty" yaml:"advisor_number,omitempty"`
	ClientNumber    string     `json:"client_number,omitempty" yaml:"client_number,omitempty"`
	FiscalYearStart *time.Time `json:"fiscal_year_start,omitempty" yaml:"fiscal_year_start,omitempty"`
	PeriodFrom      *time.Time `json:"period_from,omitempty" yaml:"period_from,omitempty"`
	PeriodTo        *time.Time `json:"period_to,omitempty" yaml:"period_to,omitempty"`
	BatchLabel      string     `json:"batch_label,omitempty" yaml:"batch_label,omitempty"`
	DiktatCode      string     `json:"diktat_code,omitempty" yaml:"diktat_code,omitempty"`
}

// HeaderBuilder accumulates header values: defaults first, then overrides.
type HeaderBuilder struct {
	cfg HeaderConfig
}

// NewHeaderBuilder starts from the defaults for an export created at now:
// advisor and client 0, fiscal year starting on the export date, the
// calendar year of now as period.
func NewHeaderBuilder(now time.Time) *HeaderBuilder {
	year := now.Year()
	return &HeaderBuilder{cfg: HeaderConfig{
		AdvisorNumber:   "0",
		ClientNumber:    "0",
		FiscalYearStart: now,
		AccountLength:   4,
		PeriodFrom:      time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location()),
		PeriodTo:        time.Date(year, time.December, 31, 0, 0, 0, 0, now.Location()),
		BatchLabel:      DefaultBatchLabel,
		Currency:        "EUR",
		CreatedAt:       now,
	}}
}

// Apply overlays the non-empty settings.
func (h *HeaderBuilder) Apply(s HeaderSettings) *HeaderBuilder {
	if s.AdvisorNumber != "" {
		h.cfg.AdvisorNumber = s.AdvisorNumber
	}
	if s.ClientNumber != "" {
		h.cfg.ClientNumber = s.ClientNumber
	}
	if s.FiscalYearStart != nil {
		h.cfg.FiscalYearStart = *s.FiscalYearStart
	}
	if s.PeriodFrom != nil {
		h.cfg.PeriodFrom = *s.PeriodFrom
	}
	if s.PeriodTo != nil {
		h.cfg.PeriodTo = *s.PeriodTo
	}
	if s.BatchLabel != "" {
		h.cfg.BatchLabel = s.BatchLabel
	}
	if s.DiktatCode != "" {
		h.cfg.DiktatCode = s.DiktatCode
	}
	return h
}

// Build returns the accumulated configuration.
func (h *HeaderBuilder) Build() HeaderConfig {
	return h.cfg
}

// Fields renders the 29 positional header fields.
func (c HeaderConfig) Fields() []string {
	fields := make([]string, HeaderFieldCount)
	fields[HeaderMarker] = quote(extfMarker)
	fields[HeaderVersion] = extfVersion
	fields[HeaderCategory] = extfCategory
	fields[HeaderFormatName] = quote(c.BatchLabel)
	fields[HeaderFormatVersion] = extfFormatVersion
	fields[HeaderCreatedAt] = c.CreatedAt.Format("20060102150405") + "000"
	fields[HeaderAdvisorNumber] = c.AdvisorNumber
	fields[HeaderClientNumber] = c.ClientNumber
	fields[HeaderFiscalYearStart] = formatHeaderDate(c.FiscalYearStart)
	fields[HeaderAccountLength] = strconv.Itoa(c.AccountLength)
	fields[HeaderPeriodFrom] = formatHeaderDate(c.PeriodFrom)
	fields[HeaderPeriodTo] = formatHeaderDate(c.PeriodTo)
	fields[HeaderLabel] = quote(c.BatchLabel)
	fields[HeaderDiktatCode] = quote(c.DiktatCode)
	fields[HeaderBookingType] = "1"
	fields[HeaderAccountingPurpose] = "0"
	fields[HeaderLockFlag] = "0"
	fields[HeaderCurrency] = quote(c.Currency)
	return fields
}

// Line renders the header line without line terminator.
func (c HeaderConfig) Line() string {
	return strings.Join(c.Fields(), fieldSeparator)
}

func formatHeaderDate(t time.Time) string {
	return t.Format("20060102")
}
