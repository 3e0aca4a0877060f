// Package datev renders canonical bookings into the DATEV EXTF
// Buchungsstapel format (version 700, category 21, format version 13).
//
// An export file consists of:
//   - the batch header line (29 fields)
//   - the column caption line (98 fixed captions)
//   - one 116-field data row per booking
//
// Lines are separated by CRLF and the file starts with a UTF-8 byte order
// mark. Amounts use a decimal comma with two fraction digits and the
// Belegdatum carries day and month only (DDMM).
package datev

// Positions of the data row fields written by the exporter. All other
// positions of the row stay empty.
const (
	FieldAmount         = 0  // Umsatz (ohne Soll/Haben-Kz)
	FieldDebitCredit    = 1  // Soll/Haben-Kennzeichen
	FieldCurrency       = 2  // WKZ Umsatz
	FieldExchangeRate   = 3  // Kurs
	FieldBaseAmount     = 4  // Basis-Umsatz
	FieldBaseCurrency   = 5  // WKZ Basis-Umsatz
	FieldAccount        = 6  // Konto
	FieldCounterAccount = 7  // Gegenkonto (ohne BU-Schlüssel)
	FieldTaxKey         = 8  // BU-Schlüssel
	FieldReceiptDate    = 9  // Belegdatum
	FieldReceiptField1  = 10 // Belegfeld 1
	FieldReceiptField2  = 11 // Belegfeld 2
	FieldDiscount       = 12 // Skonto
	FieldBookingText    = 13 // Buchungstext
	FieldCostCenter1    = 36 // KOST1 - Kostenstelle
	FieldCostCenter2    = 37 // KOST2 - Kostenstelle

	RowFieldCount = 116
)

// Positions of the batch header fields.
const (
	HeaderMarker            = 0  // "EXTF"
	HeaderVersion           = 1  // 700
	HeaderCategory          = 2  // 21 = Buchungsstapel
	HeaderFormatName        = 3  // batch label
	HeaderFormatVersion     = 4  // 13
	HeaderCreatedAt         = 5  // YYYYMMDDHHMMSS + "000"
	HeaderAdvisorNumber     = 10 // Beraternummer
	HeaderClientNumber      = 11 // Mandantennummer
	HeaderFiscalYearStart   = 12 // WJ-Beginn
	HeaderAccountLength     = 13 // Sachkontenlänge
	HeaderPeriodFrom        = 14 // Datum vom
	HeaderPeriodTo          = 15 // Datum bis
	HeaderLabel             = 16 // Bezeichnung
	HeaderDiktatCode        = 17 // Diktatkürzel
	HeaderBookingType       = 18 // Buchungstyp, 1 = Finanzbuchführung
	HeaderAccountingPurpose = 19 // Rechnungslegungszweck
	HeaderLockFlag          = 20 // Festschreibung
	HeaderCurrency          = 21 // WKZ

	HeaderFieldCount = 29
)

const (
	extfMarker        = "EXTF"
	extfVersion       = "700"
	extfCategory      = "21"
	extfFormatVersion = "13"

	fieldSeparator = ";"
	lineSeparator  = "\r\n"
	byteOrderMark  = "\uFEFF"
)
