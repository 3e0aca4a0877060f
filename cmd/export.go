package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"mandatpro/internal/config"
	"mandatpro/internal/datev"
	"mandatpro/internal/logger"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Erzeugt einen DATEV-Buchungsstapel (EXTF) als CSV-Datei",
	Long: `Lädt Einnahmen, Ausgaben und bezahlte Mandatsabgaben aus der Datenquelle,
prüft sie und schreibt einen DATEV-Buchungsstapel im EXTF-Format 700.

Jede Einnahme wird auf Bank (1200) an Erlöskonto gebucht, jede Ausgabe auf
Aufwandskonto an Bank, jede bezahlte Mandatsabgabe auf Bank an 4140.
Enthalten die Daten Fehler, wird kein Stapel geschrieben.

Die Datei heißt EXTF_Buchungsstapel_<yyyyMMdd_HHmmss>.csv und ist UTF-8 mit
BOM, Semikolon-getrennt und mit CRLF-Zeilenenden.

Beraternummer, Mandantennummer und Bezeichnung kommen aus DATEV_ADVISOR_NUMBER,
DATEV_CLIENT_NUMBER und DATEV_BATCH_LABEL und lassen sich per Flag überschreiben.`,
	Example: `  mandatpro export --source daten.xlsx
  mandatpro export --source sqlite://mandatpro.db --from 2026-01-01 --to 2026-03-31
  mandatpro export --source sheets --no-levies --advisor 29098 --client 55003 --output ./exporte`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	addRecordFlags(exportCmd)
	exportCmd.Flags().String("advisor", "", "Beraternummer (default: DATEV_ADVISOR_NUMBER)")
	exportCmd.Flags().String("client", "", "Mandantennummer (default: DATEV_CLIENT_NUMBER)")
	exportCmd.Flags().String("label", "", "Bezeichnung des Stapels (default: DATEV_BATCH_LABEL oder Buchungsstapel)")
	exportCmd.Flags().StringP("output", "o", "", "Zielverzeichnis (default: DATEV_OUTPUT_DIR)")
	exportCmd.Flags().Bool("allow-empty", false, "Auch einen Stapel ohne Buchungen schreiben")
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("export")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	advisor, _ := cmd.Flags().GetString("advisor")
	client, _ := cmd.Flags().GetString("client")
	label, _ := cmd.Flags().GetString("label")
	outputDir, _ := cmd.Flags().GetString("output")
	allowEmpty, _ := cmd.Flags().GetBool("allow-empty")

	settings := cfg.HeaderSettings()
	if advisor != "" {
		settings.AdvisorNumber = advisor
	}
	if client != "" {
		settings.ClientNumber = client
	}
	if label != "" {
		settings.BatchLabel = label
	}
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	data, err := loadSelectedRecords(cmd, cfg, log)
	if err != nil {
		return err
	}

	total := len(data.Income) + len(data.Expenses) + len(data.MandateLevies)
	if total == 0 && !allowEmpty {
		log.Warn().Msg("No records selected")
		return fmt.Errorf("%w. Use --allow-empty to write a header-only batch", datev.ErrNoBookings)
	}

	art, err := datev.NewExporter().Export(data, settings)
	if err != nil {
		var vfe *datev.ValidationFailedError
		if errors.As(err, &vfe) {
			printValidation(vfe.Result)
		}
		return err
	}

	for _, w := range art.Validation.Warnings {
		fmt.Fprintf(os.Stderr, "Warnung: %s\n", w)
	}

	path, err := writeArtifact(art, outputDir, log)
	if err != nil {
		return err
	}

	summary := datev.Summarize(art.Bookings)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("                 DATEV EXPORT")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Datei: %s\n", path)
	printSummary(summary)

	return nil
}

// writeArtifact stores the batch under dir and returns the file path.
func writeArtifact(art *datev.Artifact, dir string, log zerolog.Logger) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, art.Filename)
	if err := os.WriteFile(path, art.Content, 0o644); err != nil {
		log.Error().
			Err(err).
			Str("file", path).
			Msg("Failed to write DATEV file")
		return "", fmt.Errorf("failed to write DATEV file: %w", err)
	}

	log.Info().
		Str("file", path).
		Str("request_id", art.RunID).
		Int("bytes", len(art.Content)).
		Msg("DATEV file written")

	return path, nil
}

// printSummary prints the per-group totals of a batch.
func printSummary(s datev.Summary) {
	fmt.Printf("Einnahmen:       %4d  %12s EUR\n", s.Income.Count, datev.FormatAmount(s.Income.Total))
	fmt.Printf("Ausgaben:        %4d  %12s EUR\n", s.Expenses.Count, datev.FormatAmount(s.Expenses.Total))
	fmt.Printf("Mandatsabgaben:  %4d  %12s EUR\n", s.MandateLevies.Count, datev.FormatAmount(s.MandateLevies.Total))
	fmt.Printf("Buchungen:       %4d\n", s.Bookings)
	if s.From != nil && s.To != nil {
		fmt.Printf("Zeitraum:        %s - %s\n", s.From.Format("02.01.2006"), s.To.Format("02.01.2006"))
	}
}
