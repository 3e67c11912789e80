package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Confidence attached to an amount depending on which strategy found it.
const (
	amountConfidencePattern   = 0.95
	amountConfidenceTokenScan = 0.70
)

var decimalToken = regexp.MustCompile(`^\d+[.,]\d{2}$`)

// extractAmount applies the library's amount patterns in priority order,
// then falls back to a token scan for a "total"/"importe" token whose
// follower looks like a decimal amount. Returns the parsed value and a
// strategy confidence, or (nil, 0).
func (p *Pipeline) extractAmount(text string) (*float64, float64) {
	for _, pattern := range p.lib.PatternsFor("amounts") {
		m := pattern.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		if v, err := parseDecimal(m[1]); err == nil {
			return &v, amountConfidencePattern
		}
	}

	tokens := tokenize(text)
	for i, tok := range tokens {
		low := strings.ToLower(tok)
		if !strings.Contains(low, "total") && !strings.Contains(low, "importe") {
			continue
		}
		if i+1 >= len(tokens) || !decimalToken.MatchString(tokens[i+1]) {
			continue
		}
		if v, err := parseDecimal(tokens[i+1]); err == nil {
			return &v, amountConfidenceTokenScan
		}
	}
	return nil, 0
}

// parseDecimal parses a voucher numeral, treating ',' as the decimal
// separator.
func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}
