package extract

import (
	"regexp"
	"strings"
)

var beforeParen = regexp.MustCompile(`(.+?)\s*\(`)

// extractMerchantName tries the library's merchant label patterns first
// (Destino:, RAZÓN SOCIAL:, …), then the text before a parenthesis on
// any line, then the second line of the voucher as long as it is not an
// ID line.
func (p *Pipeline) extractMerchantName(text string) *string {
	for _, pattern := range p.lib.PatternsFor("merchants") {
		m := pattern.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		if name := strings.TrimSpace(m[1]); name != "" {
			return &name
		}
	}

	lines := splitLines(text)
	for _, line := range lines {
		if !strings.Contains(line, "(") {
			continue
		}
		if m := beforeParen.FindStringSubmatch(line); len(m) == 2 {
			name := strings.TrimSpace(m[1])
			if name != "" {
				return &name
			}
		}
	}

	if len(lines) > 1 && !strings.Contains(lines[1], "ID:") {
		name := strings.TrimSpace(lines[1])
		if name != "" {
			return &name
		}
	}
	return nil
}
