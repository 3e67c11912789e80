package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/voucherscan/voucher-tracker/constants"
)

var (
	alpha3      = regexp.MustCompile(`^[A-Za-z]{3}$`)
	numericDate = regexp.MustCompile(`^\d{2}[-/]\d{2}[-/]\d{2,4}$`)
)

// extractDate applies the library's date patterns in order. A match
// whose month group is a 3-letter abbreviation is re-emitted as
// DD/MM/YY(YY) using the Spanish month table; numeric matches are
// returned verbatim. Falls back to a token scan for a "fecha"/"día"
// token followed by a numeric date.
func (p *Pipeline) extractDate(text string) *string {
	for _, pattern := range p.lib.PatternsFor("dates") {
		m := pattern.FindStringSubmatch(text)
		if len(m) < 4 {
			continue
		}
		if alpha3.MatchString(m[2]) {
			out := fmt.Sprintf("%s/%s/%s", m[1], constants.SpanishMonthNumber(m[2]), m[3])
			return &out
		}
		out := m[0]
		return &out
	}

	tokens := tokenize(text)
	for i, tok := range tokens {
		low := strings.ToLower(tok)
		if !strings.Contains(low, "fecha") && !strings.Contains(low, "día") {
			continue
		}
		if i+1 < len(tokens) && numericDate.MatchString(tokens[i+1]) {
			out := tokens[i+1]
			return &out
		}
	}
	return nil
}
