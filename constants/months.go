package constants

import "strings"

// spanishMonths maps the 3-letter Spanish month abbreviations printed on
// POS vouchers to 2-digit month numbers.
var spanishMonths = map[string]string{
	"ENE": "01", "FEB": "02", "MAR": "03", "ABR": "04",
	"MAY": "05", "JUN": "06", "JUL": "07", "AGO": "08",
	"SEP": "09", "OCT": "10", "NOV": "11", "DIC": "12",
}

// SpanishMonthNumber resolves a 3-letter abbreviation (any case) to its
// 2-digit month. Unknown abbreviations resolve to "01" so a malformed
// month never drops an otherwise valid date.
func SpanishMonthNumber(abbr string) string {
	if m, ok := spanishMonths[strings.ToUpper(abbr)]; ok {
		return m
	}
	return "01"
}
