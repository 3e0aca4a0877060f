package datev

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"mandatpro/internal/booking"
	"mandatpro/internal/logger"
	"mandatpro/pkg/models"
	"mandatpro/pkg/services"
)

// Artifact is a finished EXTF export file.
type Artifact struct {
	RunID      string
	Filename   string
	Content    []byte
	Header     HeaderConfig
	Bookings   []services.Booking
	Validation ValidationResult
}

// Lines returns the artifact lines without byte order mark and terminators.
func (a *Artifact) Lines() []string {
	text := strings.TrimPrefix(string(a.Content), byteOrderMark)
	return strings.Split(text, lineSeparator)
}

// WriteTo writes the file content to w.
func (a *Artifact) WriteTo(w io.Writer) (int64, error) {
	return io.Copy(w, bytes.NewReader(a.Content))
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithClock replaces the clock used for the header timestamp, the default
// period and the filename.
func WithClock(now func() time.Time) Option {
	return func(x *Exporter) {
		x.now = now
	}
}

// WithLogger replaces the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(x *Exporter) {
		x.log = l
	}
}

// Exporter runs validation, canonicalization and encoding for one batch.
type Exporter struct {
	now func() time.Time
	log zerolog.Logger
}

// NewExporter creates an exporter using the wall clock.
func NewExporter(opts ...Option) *Exporter {
	x := &Exporter{
		now: time.Now,
		log: logger.WithComponent("datev-export"),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Export validates data and renders the EXTF file. Invalid data is refused
// with a *ValidationFailedError; nothing is rendered in that case.
func (x *Exporter) Export(data *models.Dataset, settings HeaderSettings) (*Artifact, error) {
	const op = "Export"

	runID := uuid.NewString()
	log := logger.WithRequestID(x.log, runID)

	if data == nil {
		data = &models.Dataset{}
	}

	log.Info().
		Int("income", len(data.Income)).
		Int("expenses", len(data.Expenses)).
		Int("mandate_levies", len(data.MandateLevies)).
		Msg("Starting DATEV export")

	result := Validate(data)
	for _, w := range result.Warnings {
		log.Warn().Str("warning", w).Msg("Validation warning")
	}
	if !result.IsValid {
		log.Error().Strs("errors", result.Errors).Msg("Validation failed, export blocked")
		return nil, &ValidationFailedError{Result: result}
	}

	now := x.now()
	cfg := NewHeaderBuilder(now).Apply(settings).Build()
	bookings := Canonicalize(data)

	content, err := Render(bookings, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	art := &Artifact{
		RunID:      runID,
		Filename:   Filename(now),
		Content:    content,
		Header:     cfg,
		Bookings:   bookings,
		Validation: result,
	}

	log.Info().
		Str("filename", art.Filename).
		Int("bookings", len(bookings)).
		Int("bytes", len(content)).
		Msg("DATEV export created")

	return art, nil
}

// Canonicalize converts the dataset into bookings: all income in input
// order, then all expenses, then the paid mandate levies.
func Canonicalize(data *models.Dataset) []services.Booking {
	if data == nil {
		return []services.Booking{}
	}
	out := make([]services.Booking, 0, len(data.Income)+len(data.Expenses)+len(data.MandateLevies))
	for i, e := range data.Income {
		out = append(out, booking.IncomeToBooking(e, i+1))
	}
	for i, e := range data.Expenses {
		out = append(out, booking.ExpenseToBooking(e, i+1))
	}
	for i, l := range data.MandateLevies {
		if !l.IsPaid() {
			continue
		}
		out = append(out, booking.MandateLevyToBooking(l, i+1))
	}
	return out
}

// Generate renders the dataset without validating it.
func Generate(data *models.Dataset, cfg HeaderConfig) ([]byte, error) {
	return Render(Canonicalize(data), cfg)
}

// Render assembles header, caption line and one row per booking, joined
// with CRLF and prefixed with a UTF-8 byte order mark. All row encoding
// errors are returned together and no content is produced.
func Render(bookings []services.Booking, cfg HeaderConfig) ([]byte, error) {
	lines := make([]string, 0, len(bookings)+2)
	lines = append(lines, cfg.Line(), CaptionLine())

	var errs []error
	for _, b := range bookings {
		row, err := EncodeRow(b)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		lines = append(lines, row)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return []byte(byteOrderMark + strings.Join(lines, lineSeparator)), nil
}

// Filename returns the conventional export file name for t.
func Filename(t time.Time) string {
	return "EXTF_Buchungsstapel_" + t.Format("20060102_150405") + ".csv"
}
