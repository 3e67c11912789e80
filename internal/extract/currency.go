package extract

import (
	"strings"

	"github.com/voucherscan/voucher-tracker/constants"
)

// detectCurrency matches currency markers in the fixed PEN, USD, EUR
// order; the first currency with any hit wins. Symbols match anywhere
// in the text, words only as whole tokens ("pendiente" must not read as
// PEN). Returns "" when nothing matches; the pipeline applies the
// default, not this function.
func detectCurrency(text string) string {
	low := strings.ToLower(text)
	tokens := make(map[string]bool)
	for _, tok := range tokenize(low) {
		tokens[tok] = true
	}

	for _, cur := range constants.CurrencyDetectionOrder() {
		for _, sym := range cur.Symbols {
			if strings.Contains(low, sym) {
				return cur.Code
			}
		}
		for _, word := range cur.Words {
			if tokens[word] {
				return cur.Code
			}
		}
	}
	return ""
}
