package datev

import (
	"fmt"
	"strings"

	"mandatpro/internal/booking"
	"mandatpro/pkg/models"
)

// IssueCode classifies a validation finding.
type IssueCode string

const (
	MissingAmount   IssueCode = "missing_amount"
	InvalidAmount   IssueCode = "invalid_amount"
	MissingDate     IssueCode = "missing_date"
	MissingCategory IssueCode = "missing_category"
	UnknownCategory IssueCode = "unknown_category"
	UnknownAccount  IssueCode = "unknown_account"
)

// Severity tells whether an issue blocks the export.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one validation finding on one record.
type Issue struct {
	Code     IssueCode         `json:"code"`
	Severity Severity          `json:"severity"`
	Kind     models.RecordKind `json:"kind"`
	Index    int               `json:"index"` // 1-based
	Message  string            `json:"message"`
}

// ValidationResult aggregates all findings of one validation run.
type ValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Issues   []Issue  `json:"issues"`
}

// Validate checks income and expense records before export. Missing or
// non-positive amounts and missing dates are errors; a missing or unmapped
// category and an unknown account override are warnings. Mandate levies are not
// checked.
func Validate(data *models.Dataset) ValidationResult {
	res := ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
		Issues:   []Issue{},
	}
	if data != nil {
		for i, e := range data.Income {
			res.checkEntry(models.KindIncome, i+1, e)
		}
		for i, e := range data.Expenses {
			res.checkEntry(models.KindExpense, i+1, e)
		}
	}
	res.IsValid = len(res.Errors) == 0
	return res
}

func (r *ValidationResult) checkEntry(kind models.RecordKind, index int, e models.Entry) {
	switch {
	case e.Amount == nil:
		r.add(MissingAmount, SeverityError, kind, index, "Betrag fehlt oder ungültig")
	case !e.Amount.IsPositive():
		r.add(InvalidAmount, SeverityError, kind, index, "Betrag fehlt oder ungültig")
	}

	if strings.TrimSpace(e.Date) == "" {
		r.add(MissingDate, SeverityError, kind, index, "Datum fehlt")
	}

	switch category := strings.TrimSpace(e.Category); {
	case category == "":
		r.add(MissingCategory, SeverityWarning, kind, index, `Kategorie fehlt - wird als "Sonstiges" exportiert`)
	case !booking.HasCategoryMapping(kind, category):
		r.add(UnknownCategory, SeverityWarning, kind, index,
			fmt.Sprintf(`Kategorie %q unbekannt - wird als "Sonstiges" exportiert`, category))
	}

	if account := strings.TrimSpace(e.Account); account != "" {
		if _, ok := booking.LookupAccount(account); !ok {
			r.add(UnknownAccount, SeverityWarning, kind, index,
				fmt.Sprintf("Konto %s unbekannt - Kategoriezuordnung wird verwendet", account))
		}
	}
}

func (r *ValidationResult) add(code IssueCode, sev Severity, kind models.RecordKind, index int, text string) {
	msg := fmt.Sprintf("%s %d: %s", kind.Label(), index, text)
	r.Issues = append(r.Issues, Issue{Code: code, Severity: sev, Kind: kind, Index: index, Message: msg})
	if sev == SeverityError {
		r.Errors = append(r.Errors, msg)
	} else {
		r.Warnings = append(r.Warnings, msg)
	}
}

// HasCode reports whether any issue carries code.
func (r ValidationResult) HasCode(code IssueCode) bool {
	for _, is := range r.Issues {
		if is.Code == code {
			return true
		}
	}
	return false
}
