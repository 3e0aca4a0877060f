package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"mandatpro/internal/config"
	"mandatpro/internal/datev"
	"mandatpro/internal/logger"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Prüft die Datensätze vor dem DATEV-Export",
	Long: `Lädt die ausgewählten Datensätze und prüft Betrag, Datum, Kategorie und
Kontonummer. Fehler blockieren den Export, Warnungen nicht.

Der Befehl endet mit einem Fehlercode, wenn mindestens ein Fehler gefunden wurde.`,
	Example: `  mandatpro validate --source daten.json
  mandatpro validate --source sqlite://mandatpro.db --from 2026-01-01`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addRecordFlags(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("validate")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	data, err := loadSelectedRecords(cmd, cfg, log)
	if err != nil {
		return err
	}

	result := datev.Validate(data)
	printValidation(result)

	log.Info().
		Bool("valid", result.IsValid).
		Int("errors", len(result.Errors)).
		Int("warnings", len(result.Warnings)).
		Msg("Validation finished")

	if !result.IsValid {
		return &datev.ValidationFailedError{Result: result}
	}
	return nil
}

func printValidation(result datev.ValidationResult) {
	if len(result.Errors) > 0 {
		fmt.Printf("=== FEHLER (%d) ===\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
		fmt.Println()
	}
	if len(result.Warnings) > 0 {
		fmt.Printf("=== WARNUNGEN (%d) ===\n", len(result.Warnings))
		for _, w := range result.Warnings {
			fmt.Printf("  - %s\n", w)
		}
		fmt.Println()
	}
	if result.IsValid {
		fmt.Println("Daten sind gültig und können exportiert werden.")
	}
}
