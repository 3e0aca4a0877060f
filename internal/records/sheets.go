package records

import (
	"context"

	"github.com/rs/zerolog"
	"mandatpro/internal/logger"
	"mandatpro/pkg/models"
)

// RangeReader reads cell ranges from a spreadsheet. *sheets.Service
// implements it.
type RangeReader interface {
	ReadRange(ctx context.Context, rangeSpec string) ([][]interface{}, error)
	SheetTitles(ctx context.Context) ([]string, error)
}

// SheetsSource reads the record sheets of a Google spreadsheet.
type SheetsSource struct {
	reader RangeReader
	name   string
	log    zerolog.Logger
}

// NewSheetsSource creates a source on top of reader. name identifies the
// spreadsheet in logs and errors.
func NewSheetsSource(reader RangeReader, name string) *SheetsSource {
	return &SheetsSource{
		reader: reader,
		name:   name,
		log:    logger.WithComponent("records-sheets"),
	}
}

// Load reads the Einnahmen, Ausgaben and Mandatsabgaben sheets.
func (s *SheetsSource) Load(ctx context.Context) (*models.Dataset, error) {
	const op = "Load"

	titles, err := s.reader.SheetTitles(ctx)
	if err != nil {
		return nil, &SourceError{Op: op, Source: s.name, Err: err}
	}

	data, err := datasetFromSheets(titles, func(sheet string) ([][]string, error) {
		s.log.Info().Str("sheet", sheet).Msg("Reading records")
		values, err := s.reader.ReadRange(ctx, sheet+"!A:Z")
		if err != nil {
			return nil, err
		}
		return stringRows(values), nil
	}, s.log)
	if err != nil {
		return nil, &SourceError{Op: op, Source: s.name, Err: err}
	}

	s.log.Info().
		Int("income", len(data.Income)).
		Int("expenses", len(data.Expenses)).
		Int("mandate_levies", len(data.MandateLevies)).
		Msg("Records read from spreadsheet")

	return data, nil
}

// Close is a no-op; the API client holds no session.
func (s *SheetsSource) Close() error {
	return nil
}
