package extract

import "strings"

// Normalize cleans a raw OCR blob before any extraction runs: line
// endings are unified, each line is trimmed and its interior whitespace
// runs collapsed, and empty lines are dropped. Line boundaries survive
// because the merchant and item scans are line-oriented; token scans
// treat the newline as ordinary whitespace.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		out = append(out, strings.Join(fields, " "))
	}
	return strings.Join(out, "\n")
}

// splitLines returns the normalized text's lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// tokenize breaks text on whitespace and strips surrounding punctuation
// from each token, so "REF:" scans as "ref" while "45.50" keeps its
// decimal separator.
func tokenize(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := strings.Trim(f, `:;,.()[]"'`)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
