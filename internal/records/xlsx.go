package records

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"mandatpro/internal/logger"
	"mandatpro/pkg/models"
)

// XLSXSource reads a workbook with the sheets Einnahmen, Ausgaben and
// Mandatsabgaben. Each sheet starts with a header row; missing sheets
// yield empty collections.
type XLSXSource struct {
	path string
	log  zerolog.Logger
}

// NewXLSXSource creates a source for an .xlsx workbook.
func NewXLSXSource(path string) *XLSXSource {
	return &XLSXSource{
		path: path,
		log:  logger.WithComponent("records-xlsx"),
	}
}

// Load opens the workbook and reads the three record sheets.
func (s *XLSXSource) Load(ctx context.Context) (*models.Dataset, error) {
	const op = "Load"

	if err := ctx.Err(); err != nil {
		return nil, &SourceError{Op: op, Source: s.path, Err: err}
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, &SourceError{Op: op, Source: s.path, Err: err}
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Warn().Err(err).Str("path", s.path).Msg("Failed to close workbook")
		}
	}()

	data, err := datasetFromSheets(f.GetSheetList(), func(sheet string) ([][]string, error) {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, err
		}
		return isoDateCells(rows), nil
	}, s.log)
	if err != nil {
		return nil, &SourceError{Op: op, Source: s.path, Err: err}
	}

	s.log.Info().
		Str("path", s.path).
		Int("income", len(data.Income)).
		Int("expenses", len(data.Expenses)).
		Int("mandate_levies", len(data.MandateLevies)).
		Msg("Records loaded from workbook")

	return data, nil
}

// Close is a no-op; the workbook is closed after each Load.
func (s *XLSXSource) Close() error {
	return nil
}

// maxExcelSerial is the serial of 9999-12-31, the last date Excel stores.
const maxExcelSerial = 2958465

// dateColumns are the record columns holding calendar dates.
var dateColumns = map[string]bool{
	"date":         true,
	"payment_date": true,
	"created_date": true,
}

// isoDateCells rewrites Excel serial dates in date columns as YYYY-MM-DD.
// Cells read raw hold the serial number instead of the cell's display
// format. Text dates are left as they are.
func isoDateCells(rows [][]string) [][]string {
	if len(rows) == 0 {
		return rows
	}

	var cols []int
	for i, cell := range rows[0] {
		if dateColumns[columnAliases[strings.ToLower(strings.TrimSpace(cell))]] {
			cols = append(cols, i)
		}
	}

	for _, row := range rows[1:] {
		for _, i := range cols {
			if i >= len(row) {
				continue
			}
			serial, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
			if err != nil || serial <= 0 || serial > maxExcelSerial {
				continue
			}
			t, err := excelize.ExcelDateToTime(serial, false)
			if err != nil {
				continue
			}
			row[i] = t.Format("2006-01-02")
		}
	}
	return rows
}
