package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"mandatpro/internal/booking"
	"mandatpro/pkg/models"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Zeigt Kontenrahmen, Kategoriezuordnung und Steuerschlüssel",
	Long: `Listet die SKR03-Konten, die Zuordnung der Einnahme- und Ausgabekategorien
zu Konten und die bekannten DATEV-Steuerschlüssel.`,
	Example: `  mandatpro accounts
  mandatpro accounts --json`,
	Args: cobra.NoArgs,
	RunE: runAccounts,
}

type accountsOutput struct {
	Accounts          []booking.Account         `json:"accounts"`
	IncomeCategories  []booking.CategoryMapping `json:"income_categories"`
	ExpenseCategories []booking.CategoryMapping `json:"expense_categories"`
	TaxCodes          []booking.TaxCode         `json:"tax_codes"`
}

func init() {
	rootCmd.AddCommand(accountsCmd)
	accountsCmd.Flags().Bool("json", false, "Output as JSON format")
}

func runAccounts(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	out := accountsOutput{
		Accounts:          booking.Accounts(),
		IncomeCategories:  booking.CategoryMappings(models.KindIncome),
		ExpenseCategories: booking.CategoryMappings(models.KindExpense),
		TaxCodes:          booking.TaxCodes(),
	}

	if jsonOutput {
		jsonData, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
		fmt.Println(string(jsonData))
		return nil
	}

	fmt.Println("=== KONTENRAHMEN SKR03 ===")
	for _, a := range out.Accounts {
		fmt.Printf("%s  %-10s %s\n", a.Code, a.Class, a.Name)
	}
	fmt.Println()

	fmt.Println("=== KATEGORIEN EINNAHMEN ===")
	printMappings(out.IncomeCategories)
	fmt.Println()

	fmt.Println("=== KATEGORIEN AUSGABEN ===")
	printMappings(out.ExpenseCategories)
	fmt.Println()

	fmt.Println("=== STEUERSCHLÜSSEL ===")
	for _, tc := range out.TaxCodes {
		fmt.Printf("%-3s %5s%%  %s\n", tc.Code, tc.RatePercent.String(), tc.Description)
	}
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Nicht zugeordnete Kategorien: Einnahmen %s, Ausgaben %s\n",
		booking.DefaultIncomeAccount, booking.DefaultExpenseAccount)

	return nil
}

func printMappings(mappings []booking.CategoryMapping) {
	for _, m := range mappings {
		fmt.Printf("%-16s -> %s %s\n", m.Category, m.Account, booking.AccountName(m.Account))
	}
}
