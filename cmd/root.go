package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"mandatpro/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "mandatpro",
	Short: "MandatPro CLI - DATEV-Export für Einnahmen, Ausgaben und Mandatsabgaben",
	Long: `MandatPro CLI erzeugt DATEV-Buchungsstapel (EXTF, Format 700) aus den
Einnahmen, Ausgaben und Mandatsabgaben einer Organisation.

Die Datensätze werden aus einer JSON-, YAML- oder Excel-Datei, einer
Google-Tabelle oder einer SQLite-/PostgreSQL-Datenbank gelesen, gegen den
Kontenrahmen SKR03 geprüft und als CSV-Datei für den Steuerberater
exportiert.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Debug().
			Str("version", version).
			Msg("MandatPro CLI executed")

		fmt.Println("Willkommen bei MandatPro!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
