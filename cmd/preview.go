package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"mandatpro/internal/booking"
	"mandatpro/internal/config"
	"mandatpro/internal/datev"
	"mandatpro/internal/logger"
	"mandatpro/internal/sheets"
	"mandatpro/pkg/services"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Zeigt die Buchungen eines Exports, ohne eine Datei zu schreiben",
	Long: `Lädt und prüft die ausgewählten Datensätze und zeigt die daraus entstehenden
Buchungen mit Konto, Gegenkonto und Kontenbezeichnung an.

Mit --upload werden die Buchungen zusätzlich in ein Tabellenblatt der
Google-Tabelle aus GOOGLE_SHEET_URL geschrieben, standardmäßig in
GOOGLE_SHEET_WORKSHEET. --sheet wählt ein anderes Tabellenblatt.`,
	Example: `  mandatpro preview --source daten.xlsx
  mandatpro preview --source daten.json --json
  mandatpro preview --source sheets --upload
  mandatpro preview --source sheets --sheet Vorschau_Q1`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

// previewBooking is a booking with the chart names of both accounts and
// the amount net of its tax code.
type previewBooking struct {
	services.Booking
	AccountName        string          `json:"account_name"`
	CounterAccountName string          `json:"counter_account_name"`
	NetAmount          decimal.Decimal `json:"net_amount"`
}

type previewOutput struct {
	Summary     datev.Summary          `json:"summary"`
	Validation  datev.ValidationResult `json:"validation"`
	Bookings    []previewBooking       `json:"bookings"`
	GeneratedAt time.Time              `json:"generated_at"`
}

func init() {
	rootCmd.AddCommand(previewCmd)

	addRecordFlags(previewCmd)
	previewCmd.Flags().Bool("json", false, "Output as JSON format")
	previewCmd.Flags().Bool("upload", false, "Buchungen in die Google-Tabelle schreiben")
	previewCmd.Flags().String("sheet", "", "Tabellenblatt für --upload (default: GOOGLE_SHEET_WORKSHEET); setzt --upload")
}

func runPreview(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("preview")

	jsonOutput, _ := cmd.Flags().GetBool("json")
	upload, _ := cmd.Flags().GetBool("upload")
	sheetFlag, _ := cmd.Flags().GetString("sheet")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	sheetName := previewSheetName(upload, sheetFlag, cfg)

	data, err := loadSelectedRecords(cmd, cfg, log)
	if err != nil {
		return err
	}

	result := datev.Validate(data)
	bookings := datev.Canonicalize(data)

	out := previewOutput{
		Summary:     datev.Summarize(bookings),
		Validation:  result,
		Bookings:    withAccountNames(bookings),
		GeneratedAt: time.Now(),
	}

	if sheetName != "" {
		if err := writePreviewSheet(cfg, sheetName, bookings); err != nil {
			return err
		}
		log.Info().
			Str("sheet", sheetName).
			Int("bookings", len(bookings)).
			Msg("Preview written to Google Sheet")
	}

	if jsonOutput {
		jsonData, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
		fmt.Println(string(jsonData))
		return nil
	}

	printPreview(out)
	if sheetName != "" {
		fmt.Printf("Vorschau in Tabellenblatt %q geschrieben.\n", sheetName)
	}
	return nil
}

func withAccountNames(bookings []services.Booking) []previewBooking {
	out := make([]previewBooking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, previewBooking{
			Booking:            b,
			AccountName:        booking.AccountName(b.Account),
			CounterAccountName: booking.AccountName(b.CounterAccount),
			NetAmount:          booking.NetAmount(b.Amount, b.TaxCode),
		})
	}
	return out
}

// previewSheetName returns the worksheet to upload to, or "" when the
// preview stays local.
func previewSheetName(upload bool, sheet string, cfg *config.Config) string {
	if sheet != "" {
		return sheet
	}
	if upload {
		return cfg.GoogleSheetWorksheet
	}
	return ""
}

func writePreviewSheet(cfg *config.Config, sheetName string, bookings []services.Booking) error {
	if cfg.GoogleSheetURL == "" {
		return fmt.Errorf("GOOGLE_SHEET_URL is required for --upload and --sheet")
	}

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	svc, err := sheets.NewSheetsService(ctx, cfg.GoogleSheetURL)
	if err != nil {
		return fmt.Errorf("failed to create sheets service: %w", err)
	}
	return svc.WriteBookingPreview(ctx, sheetName, bookings)
}

func printPreview(out previewOutput) {
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("                           DATEV VORSCHAU")
	fmt.Println(strings.Repeat("=", 80))
	printSummary(out.Summary)
	fmt.Println()
	fmt.Printf("%-10s %12s %12s\n", "Datum", "Brutto", "Netto")

	for _, b := range out.Bookings {
		date := b.DateText
		if !b.BookingDate.IsZero() {
			date = b.BookingDate.Format("02.01.2006")
		}
		fmt.Printf("%-10s %12s %12s %s  %s %-28s an %s %-28s  %s\n",
			date,
			datev.FormatAmount(b.Amount),
			datev.FormatAmount(b.NetAmount),
			b.Direction,
			b.Account, booking.Truncate(b.AccountName, 28),
			b.CounterAccount, booking.Truncate(b.CounterAccountName, 28),
			b.Description,
		)
	}
	fmt.Println()

	printValidation(out.Validation)
}
