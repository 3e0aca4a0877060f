package booking

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TaxCode is a DATEV BU-Schlüssel with its informational rate.
type TaxCode struct {
	Code        string          `json:"code"`
	RatePercent decimal.Decimal `json:"rate_percent"`
	Description string          `json:"description"`
}

var taxCodes = map[string]TaxCode{
	"0": {Code: "0", RatePercent: decimal.Zero, Description: "Keine Steuer"},
	"1": {Code: "1", RatePercent: decimal.Zero, Description: "Steuerfreie Umsätze"},
	"2": {Code: "2", RatePercent: decimal.NewFromInt(7), Description: "7% USt"},
	"3": {Code: "3", RatePercent: decimal.NewFromInt(19), Description: "19% USt"},
	"8": {Code: "8", RatePercent: decimal.NewFromInt(7), Description: "7% VSt"},
	"9": {Code: "9", RatePercent: decimal.NewFromInt(19), Description: "19% VSt"},
}

// LookupTaxCode resolves code. Unknown codes yield a zero rate, an empty
// description and false.
func LookupTaxCode(code string) (TaxCode, bool) {
	tc, ok := taxCodes[code]
	if !ok {
		return TaxCode{Code: code, RatePercent: decimal.Zero}, false
	}
	return tc, true
}

// TaxCodes returns all known tax codes ordered by code.
func TaxCodes() []TaxCode {
	out := make([]TaxCode, 0, len(taxCodes))
	for _, tc := range taxCodes {
		out = append(out, tc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// NetAmount splits the tax out of a gross amount, rounded to cents.
func NetAmount(gross decimal.Decimal, code string) decimal.Decimal {
	tc, _ := LookupTaxCode(code)
	if tc.RatePercent.IsZero() {
		return gross
	}
	factor := decimal.NewFromInt(1).Add(tc.RatePercent.Div(decimal.NewFromInt(100)))
	return gross.Div(factor).Round(2)
}
