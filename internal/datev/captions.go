package datev

import "strings"

// Column captions of the Buchungsstapel, as expected by DATEV import.
// The list is fixed and must not be reordered or reworded.
var columnCaptions = [...]string{
	"Umsatz (ohne Soll/Haben-Kz)",
	"Soll/Haben-Kennzeichen",
	"WKZ Umsatz",
	"Kurs",
	"Basis-Umsatz",
	"WKZ Basis-Umsatz",
	"Konto",
	"Gegenkonto (ohne BU-Schlüssel)",
	"BU-Schlüssel",
	"Belegdatum",
	"Belegfeld 1",
	"Belegfeld 2",
	"Skonto",
	"Buchungstext",
	"Postensperre",
	"Diverse Adressnummer",
	"Geschäftspartnerbank",
	"Sachverhalt",
	"Zinssperre",
	"Beleglink",
	"Beleginfo - Art 1",
	"Beleginfo - Inhalt 1",
	"Beleginfo - Art 2",
	"Beleginfo - Inhalt 2",
	"Beleginfo - Art 3",
	"Beleginfo - Inhalt 3",
	"Beleginfo - Art 4",
	"Beleginfo - Inhalt 4",
	"Beleginfo - Art 5",
	"Beleginfo - Inhalt 5",
	"Beleginfo - Art 6",
	"Beleginfo - Inhalt 6",
	"Beleginfo - Art 7",
	"Beleginfo - Inhalt 7",
	"Beleginfo - Art 8",
	"Beleginfo - Inhalt 8",
	"KOST1 - Kostenstelle",
	"KOST2 - Kostenstelle",
	"Kost-Menge",
	"EU-Land u. UStID",
	"EU-Steuersatz",
	"Abw. Versteuerungsart",
	"Sachverhalt L+L",
	"Funktionsergänzung L+L",
	"BU 49 Hauptfunktionstyp",
	"BU 49 Hauptfunktionsnummer",
	"BU 49 Funktionsergänzung",
	"Zusatzinformation - Art 1",
	"Zusatzinformation - Inhalt 1",
	"Zusatzinformation - Art 2",
	"Zusatzinformation - Inhalt 2",
	"Zusatzinformation - Art 3",
	"Zusatzinformation - Inhalt 3",
	"Zusatzinformation - Art 4",
	"Zusatzinformation - Inhalt 4",
	"Zusatzinformation - Art 5",
	"Zusatzinformation - Inhalt 5",
	"Zusatzinformation - Art 6",
	"Zusatzinformation - Inhalt 6",
	"Zusatzinformation - Art 7",
	"Zusatzinformation - Inhalt 7",
	"Zusatzinformation - Art 8",
	"Zusatzinformation - Inhalt 8",
	"Zusatzinformation - Art 9",
	"Zusatzinformation - Inhalt 9",
	"Zusatzinformation - Art 10",
	"Zusatzinformation - Inhalt 10",
	"Stück",
	"Gewicht",
	"Zahlweise",
	"Fälligkeit",
	"Skontotyp",
	"Auftragsnummer",
	"Buchungstyp",
	"USt-Schlüssel (Anzahlungen)",
	"EU-Land (Anzahlungen)",
	"Sachverhalt L+L (Anzahlungen)",
	"EU-Steuersatz (Anzahlungen)",
	"Erlöskonto (Anzahlungen)",
	"Herkunft-Kz",
	"Buchungs GUID",
	"KOST-Datum",
	"SEPA-Mandatsreferenz",
	"Skontosperre",
	"Gesellschaftername",
	"Beteiligtennummer",
	"Identifikationsnummer",
	"Zeichnernummer",
	"Postensperre bis",
	"Bezeichnung SoBil-Sachverhalt",
	"Kennzeichen SoBil-Buchung",
	"Festschreibung",
	"Leistungsdatum",
	"Datum Zuord. Steuerperiode",
	"Fälligkeit",
	"Generalumkehr (GU)",
	"Steuersatz",
	"Land",
}

// CaptionCount is the number of captions on the caption line.
const CaptionCount = len(columnCaptions)

// ColumnCaptions returns a copy of the caption list.
func ColumnCaptions() []string {
	out := make([]string, len(columnCaptions))
	copy(out, columnCaptions[:])
	return out
}

// CaptionLine returns the caption line without line terminator.
func CaptionLine() string {
	return strings.Join(columnCaptions[:], fieldSeparator)
}
