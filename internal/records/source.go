// Package records loads the raw income, expense and mandate levy records
// an export is built from.
//
// Supported sources:
//   - JSON or YAML files (.json, .yaml, .yml)
//   - Excel workbooks (.xlsx) with the sheets Einnahmen, Ausgaben, Mandatsabgaben
//   - Google spreadsheets with the same sheets ("sheets" or a spreadsheet URL)
//   - SQLite ("sqlite://path") and PostgreSQL ("postgres://...") databases
package records

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"mandatpro/internal/sheets"
	"mandatpro/pkg/services"
)

// Options carries settings that are not part of the source locator.
type Options struct {
	// SheetURL is used when the locator is "sheets".
	SheetURL string
}

// Open returns the record source described by locator.
func Open(ctx context.Context, locator string, opts Options) (services.RecordSource, error) {
	const op = "Open"

	locator = strings.TrimSpace(locator)
	if locator == "" {
		return nil, &SourceError{Op: op, Err: fmt.Errorf("%w: empty source", ErrUnsupportedSource)}
	}

	switch {
	case strings.HasPrefix(locator, "sqlite://"):
		return openSQL(ctx, DriverSQLite, strings.TrimPrefix(locator, "sqlite://"))
	case strings.HasPrefix(locator, "postgres://"), strings.HasPrefix(locator, "postgresql://"):
		return openSQL(ctx, DriverPostgres, locator)
	case locator == "sheets", strings.Contains(locator, "/spreadsheets/d/"):
		url := locator
		if locator == "sheets" {
			url = opts.SheetURL
		}
		svc, err := sheets.NewSheetsService(ctx, url)
		if err != nil {
			return nil, &SourceError{Op: op, Source: "sheets", Err: err}
		}
		return NewSheetsSource(svc, svc.SpreadsheetID()), nil
	}

	switch strings.ToLower(filepath.Ext(locator)) {
	case ".json", ".yaml", ".yml":
		return NewFileSource(locator), nil
	case ".xlsx":
		return NewXLSXSource(locator), nil
	default:
		return nil, &SourceError{Op: op, Source: locator, Err: ErrUnsupportedSource}
	}
}

func openSQL(ctx context.Context, driver, dsn string) (services.RecordSource, error) {
	src, err := OpenSQLSource(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	return src, nil
}
