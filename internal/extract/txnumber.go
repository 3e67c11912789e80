package extract

import (
	"regexp"
	"strings"
)

// Reference-label patterns in priority order, each capturing a trailing
// digit run.
var referencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)REF:\s*(\d+)`),
	regexp.MustCompile(`(?i)REFERENCIA:\s*(\d+)`),
	regexp.MustCompile(`(?i)NRO\.?:\s*(\d+)`),
	regexp.MustCompile(`(?i)TRANSACCIÓN:\s*(\d+)`),
}

var allDigits = regexp.MustCompile(`^\d+$`)

// referenceWords are the token-scan fallback labels; OCR frequently
// drops the accent so both spellings of transacción are accepted.
var referenceWords = map[string]bool{
	"ref":         true,
	"referencia":  true,
	"nro":         true,
	"transacción": true,
	"transaccion": true,
}

// extractTransactionNumber returns the digits-only operation reference,
// or nil when none of the labeled patterns or the token scan hit.
func extractTransactionNumber(text string) *string {
	for _, pattern := range referencePatterns {
		if m := pattern.FindStringSubmatch(text); len(m) == 2 {
			return &m[1]
		}
	}

	tokens := tokenize(text)
	for i, tok := range tokens {
		if !referenceWords[strings.ToLower(tok)] {
			continue
		}
		if i+1 < len(tokens) && allDigits.MatchString(tokens[i+1]) {
			return &tokens[i+1]
		}
	}
	return nil
}
