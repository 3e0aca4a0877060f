package booking

import (
	"sort"
	"strings"

	"mandatpro/pkg/models"
)

// AccountClass groups ledger accounts for display and plausibility checks.
type AccountClass string

const (
	ClassAsset     AccountClass = "asset"
	ClassLiability AccountClass = "liability"
	ClassEquity    AccountClass = "equity"
	ClassRevenue   AccountClass = "revenue"
	ClassExpense   AccountClass = "expense"
)

// Account is one entry of the SKR03 chart used for association bookkeeping.
type Account struct {
	Code  string       `json:"code"`
	Name  string       `json:"name"`
	Class AccountClass `json:"class"`
}

// Fixed accounts of the export.
const (
	BankAccount           = "1200" // Bank
	MandateLevyAccount    = "4140" // Mandatsabgaben
	DefaultIncomeAccount  = "4200" // Sonst. betriebliche Erträge
	DefaultExpenseAccount = "6850" // Sonstige Betriebskosten
)

var skr03Accounts = map[string]Account{
	// Anlagevermögen
	"0400": {Code: "0400", Name: "Technische Anlagen und Maschinen", Class: ClassAsset},
	"0420": {Code: "0420", Name: "Büroeinrichtung", Class: ClassAsset},
	"0480": {Code: "0480", Name: "Geringwertige Wirtschaftsgüter", Class: ClassAsset},

	// Umlaufvermögen
	"1200": {Code: "1200", Name: "Bank", Class: ClassAsset},
	"1210": {Code: "1210", Name: "Sparkasse", Class: ClassAsset},
	"1400": {Code: "1400", Name: "Forderungen aus Lieferungen", Class: ClassAsset},
	"1600": {Code: "1600", Name: "Kasse", Class: ClassAsset},

	// Verbindlichkeiten
	"1700": {Code: "1700", Name: "Verbindlichkeiten aus Lieferungen", Class: ClassLiability},
	"1740": {Code: "1740", Name: "Verbindlichkeiten aus Steuern", Class: ClassLiability},
	"1755": {Code: "1755", Name: "Lohn- und Gehaltsverbindlichkeiten", Class: ClassLiability},

	// Eigenkapital
	"2900": {Code: "2900", Name: "Eigenkapital", Class: ClassEquity},
	"2970": {Code: "2970", Name: "Gewinnvortrag/Verlustvortrag", Class: ClassEquity},

	// Erträge
	"4000": {Code: "4000", Name: "Umsatzerlöse", Class: ClassRevenue},
	"4100": {Code: "4100", Name: "Steuerfreie Umsätze", Class: ClassRevenue},
	"4110": {Code: "4110", Name: "Mitgliedsbeiträge", Class: ClassRevenue},
	"4120": {Code: "4120", Name: "Spenden", Class: ClassRevenue},
	"4130": {Code: "4130", Name: "Zuschüsse", Class: ClassRevenue},
	"4140": {Code: "4140", Name: "Mandatsabgaben", Class: ClassRevenue},
	"4150": {Code: "4150", Name: "Veranstaltungseinnahmen", Class: ClassRevenue},
	"4200": {Code: "4200", Name: "Sonst. betriebliche Erträge", Class: ClassRevenue},

	// Personal
	"6000": {Code: "6000", Name: "Löhne und Gehälter", Class: ClassExpense},
	"6010": {Code: "6010", Name: "Gehälter", Class: ClassExpense},
	"6020": {Code: "6020", Name: "Ehegattengehalt", Class: ClassExpense},
	"6100": {Code: "6100", Name: "Sozialversicherung", Class: ClassExpense},
	"6200": {Code: "6200", Name: "Sonstige Personalkosten", Class: ClassExpense},

	// Raum
	"6300": {Code: "6300", Name: "Raumkosten", Class: ClassExpense},
	"6310": {Code: "6310", Name: "Miete", Class: ClassExpense},
	"6320": {Code: "6320", Name: "Nebenkosten", Class: ClassExpense},

	// Betrieb
	"6400": {Code: "6400", Name: "Versicherungen", Class: ClassExpense},
	"6420": {Code: "6420", Name: "Beiträge und Gebühren", Class: ClassExpense},
	"6500": {Code: "6500", Name: "Kfz-Kosten", Class: ClassExpense},
	"6600": {Code: "6600", Name: "Werbekosten", Class: ClassExpense},
	"6650": {Code: "6650", Name: "Reisekosten", Class: ClassExpense},
	"6700": {Code: "6700", Name: "Kosten der Warenabgabe", Class: ClassExpense},
	"6800": {Code: "6800", Name: "Porto, Telefon", Class: ClassExpense},
	"6815": {Code: "6815", Name: "Büromaterial", Class: ClassExpense},
	"6820": {Code: "6820", Name: "Rechts- und Beratungskosten", Class: ClassExpense},
	"6850": {Code: "6850", Name: "Sonstige Betriebskosten", Class: ClassExpense},

	// Abschreibungen und Zinsen
	"7000": {Code: "7000", Name: "Abschreibungen auf Sachanlagen", Class: ClassExpense},
	"7300": {Code: "7300", Name: "Zinsaufwand", Class: ClassExpense},
	"7310": {Code: "7310", Name: "Bankgebühren", Class: ClassExpense},
}

var incomeCategoryAccounts = map[string]string{
	"mitgliedsbeitrag": "4110",
	"spende":           "4120",
	"zuschuss":         "4130",
	"mandatsabgabe":    "4140",
	"veranstaltung":    "4150",
	"sonstiges":        "4200",
}

var expenseCategoryAccounts = map[string]string{
	"personal":      "6010",
	"raummiete":     "6310",
	"material":      "6815",
	"marketing":     "6600",
	"verwaltung":    "6850",
	"reisekosten":   "6650",
	"porto":         "6800",
	"versicherung":  "6400",
	"bankgebuehren": "7310",
	"sonstiges":     "6850",
}

// CategoryMapping is one category -> account assignment.
type CategoryMapping struct {
	Category string `json:"category"`
	Account  string `json:"account"`
}

// LookupAccount returns the chart entry for code.
func LookupAccount(code string) (Account, bool) {
	a, ok := skr03Accounts[code]
	return a, ok
}

// AccountName returns the name of code, or "" for codes outside the chart.
func AccountName(code string) string {
	return skr03Accounts[code].Name
}

// Accounts returns the chart ordered by account code.
func Accounts() []Account {
	out := make([]Account, 0, len(skr03Accounts))
	for _, a := range skr03Accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// CategoryMappings returns the category table for kind ordered by category.
// Mandate levies have no category table and yield nil.
func CategoryMappings(kind models.RecordKind) []CategoryMapping {
	table := categoryTable(kind)
	if table == nil {
		return nil
	}
	out := make([]CategoryMapping, 0, len(table))
	for category, account := range table {
		out = append(out, CategoryMapping{Category: category, Account: account})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// IsValidSKR03Account checks that code is a 4-digit account number.
func IsValidSKR03Account(code string) bool {
	if len(code) != 4 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ResolveAccount returns the ledger account a record of kind books against.
// A known override wins over the category table; unknown or empty
// categories resolve to the fallback account of the kind.
func ResolveAccount(kind models.RecordKind, category, override string) string {
	if override = strings.TrimSpace(override); override != "" {
		if _, ok := skr03Accounts[override]; ok {
			return override
		}
	}
	if account, ok := categoryTable(kind)[normalizeCategory(category)]; ok {
		return account
	}
	return fallbackAccount(kind)
}

// HasCategoryMapping reports whether category has an explicit table entry.
func HasCategoryMapping(kind models.RecordKind, category string) bool {
	_, ok := categoryTable(kind)[normalizeCategory(category)]
	return ok
}

func categoryTable(kind models.RecordKind) map[string]string {
	switch kind {
	case models.KindIncome:
		return incomeCategoryAccounts
	case models.KindExpense:
		return expenseCategoryAccounts
	default:
		return nil
	}
}

func fallbackAccount(kind models.RecordKind) string {
	switch kind {
	case models.KindExpense:
		return DefaultExpenseAccount
	case models.KindMandateLevy:
		return MandateLevyAccount
	default:
		return DefaultIncomeAccount
	}
}

func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
