package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"mandatpro/internal/config"
	"mandatpro/internal/datev"
	"mandatpro/internal/records"
	"mandatpro/pkg/models"
)

// loadTimeout bounds reading the records from a source.
const loadTimeout = 5 * time.Minute

// addRecordFlags registers the source and selection flags shared by
// export, validate and preview.
func addRecordFlags(c *cobra.Command) {
	c.Flags().StringP("source", "s", "", "Datenquelle: Datei (.json/.yaml/.xlsx), \"sheets\", sqlite://pfad oder postgres://... (default: RECORD_SOURCE)")
	c.Flags().String("from", "", "Erster Buchungstag (YYYY-MM-DD)")
	c.Flags().String("to", "", "Letzter Buchungstag (YYYY-MM-DD)")
	c.Flags().Bool("no-income", false, "Einnahmen nicht exportieren")
	c.Flags().Bool("no-expenses", false, "Ausgaben nicht exportieren")
	c.Flags().Bool("no-levies", false, "Mandatsabgaben nicht exportieren")
}

// selectionFromFlags builds the record selection from the flags registered
// by addRecordFlags.
func selectionFromFlags(c *cobra.Command) (datev.Selection, error) {
	noIncome, _ := c.Flags().GetBool("no-income")
	noExpenses, _ := c.Flags().GetBool("no-expenses")
	noLevies, _ := c.Flags().GetBool("no-levies")
	fromStr, _ := c.Flags().GetString("from")
	toStr, _ := c.Flags().GetString("to")

	sel := datev.Selection{
		IncludeIncome:   !noIncome,
		IncludeExpenses: !noExpenses,
		IncludeLevies:   !noLevies,
	}

	if fromStr != "" {
		from, err := config.ParseDay(fromStr)
		if err != nil {
			return sel, fmt.Errorf("--from: %w", err)
		}
		sel.From = &from
	}
	if toStr != "" {
		to, err := config.ParseDay(toStr)
		if err != nil {
			return sel, fmt.Errorf("--to: %w", err)
		}
		sel.To = &to
	}
	if sel.From != nil && sel.To != nil && sel.To.Before(*sel.From) {
		return sel, fmt.Errorf("--to %s is before --from %s", toStr, fromStr)
	}

	return sel, nil
}

// loadSelectedRecords opens the configured source, loads its records and
// applies the flag selection.
func loadSelectedRecords(c *cobra.Command, cfg *config.Config, log zerolog.Logger) (*models.Dataset, error) {
	sel, err := selectionFromFlags(c)
	if err != nil {
		return nil, err
	}

	locator, _ := c.Flags().GetString("source")
	if locator == "" {
		locator = cfg.RecordSource
	}
	if locator == "" {
		return nil, fmt.Errorf("no record source given. Use --source or set RECORD_SOURCE")
	}

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	src, err := records.Open(ctx, locator, records.Options{SheetURL: cfg.GoogleSheetURL})
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close record source")
		}
	}()

	data, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}

	selected := sel.Apply(data)

	log.Info().
		Str("source", locator).
		Int("income", len(selected.Income)).
		Int("expenses", len(selected.Expenses)).
		Int("mandate_levies", len(selected.MandateLevies)).
		Msg("Records loaded")

	return selected, nil
}
