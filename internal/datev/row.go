package datev

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"mandatpro/internal/booking"
	"mandatpro/pkg/services"
)

// EncodeRowFields renders a booking into its 116 positional fields.
// Fields without a value stay empty. Unquoted fields must not contain a
// separator, quote or line break; line breaks in quoted text become spaces.
func EncodeRowFields(b services.Booking) ([]string, error) {
	if b.DateErr != nil || b.BookingDate.IsZero() {
		err := ErrInvalidDate
		if b.DateErr != nil {
			err = fmt.Errorf("%w: %w", ErrInvalidDate, b.DateErr)
		}
		return nil, fieldError(b, FieldReceiptDate, b.DateText, err)
	}

	direction := b.Direction
	switch direction {
	case "":
		direction = services.Debit
	case services.Debit, services.Credit:
	default:
		return nil, fieldError(b, FieldDebitCredit, string(direction),
			fmt.Errorf("%w: want %s or %s", ErrInvalidFieldValue, services.Debit, services.Credit))
	}

	for _, f := range []struct {
		index int
		value string
	}{
		{FieldAccount, b.Account},
		{FieldCounterAccount, b.CounterAccount},
	} {
		if f.value != "" && !booking.IsValidSKR03Account(f.value) {
			return nil, fieldError(b, f.index, f.value,
				fmt.Errorf("%w: not a 4-digit SKR03 account", ErrInvalidFieldValue))
		}
	}

	for _, f := range []struct {
		index int
		value string
	}{
		{FieldTaxKey, b.TaxCode},
		{FieldCostCenter1, b.CostCenter1},
		{FieldCostCenter2, b.CostCenter2},
	} {
		if strings.ContainsAny(f.value, unquotedForbidden) {
			return nil, fieldError(b, f.index, f.value,
				fmt.Errorf("%w: contains separator, quote or line break", ErrInvalidFieldValue))
		}
	}

	fields := make([]string, RowFieldCount)
	fields[FieldAmount] = FormatAmount(b.Amount)
	fields[FieldDebitCredit] = string(direction)
	fields[FieldCurrency] = "EUR"
	fields[FieldAccount] = b.Account
	fields[FieldCounterAccount] = b.CounterAccount
	fields[FieldTaxKey] = b.TaxCode
	fields[FieldReceiptDate] = b.BookingDate.Format("0201")
	fields[FieldReceiptField1] = quote(b.ReceiptNumber)
	fields[FieldReceiptField2] = quote(b.ReceiptField2)
	fields[FieldBookingText] = quote(booking.Truncate(singleLine(b.Description), booking.MaxBookingTextLength))
	fields[FieldCostCenter1] = b.CostCenter1
	fields[FieldCostCenter2] = b.CostCenter2

	return fields, nil
}

func fieldError(b services.Booking, field int, value string, err error) *EncodingError {
	return &EncodingError{
		Kind:  b.Kind,
		Index: b.Index,
		Field: columnCaptions[field],
		Value: value,
		Err:   err,
	}
}

// EncodeRow renders a booking into one data line without line terminator.
func EncodeRow(b services.Booking) (string, error) {
	fields, err := EncodeRowFields(b)
	if err != nil {
		return "", err
	}
	return strings.Join(fields, fieldSeparator), nil
}

// FormatAmount renders the magnitude of d with two fraction digits and a
// decimal comma, e.g. 1234.5 -> "1234,50".
func FormatAmount(d decimal.Decimal) string {
	return strings.Replace(d.Abs().StringFixed(2), ".", ",", 1)
}

// unquotedForbidden are the characters that would break an unquoted field.
const unquotedForbidden = ";\"\r\n"

func quote(s string) string {
	return `"` + strings.ReplaceAll(singleLine(s), `"`, `""`) + `"`
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// singleLine replaces line breaks with spaces; the file is line oriented
// even inside quotes.
func singleLine(s string) string {
	return lineBreaks.Replace(s)
}
