// Package patterns holds the per-category extraction patterns and the
// labeled phrases the text classifier trains on. The category set is
// closed: it is established when the library is built and only grows by
// appending examples or patterns to existing categories.
package patterns

import (
	"fmt"
	"regexp"

	"github.com/voucherscan/voucher-tracker/constants"
	"github.com/voucherscan/voucher-tracker/internal/common"
)

// Example is a labeled training phrase. Tags and Confidence carry
// provenance from the curated data set; the classifier only uses Text.
type Example struct {
	Text       string
	Confidence float64
	Tags       []string
}

// LabeledExample pairs a training phrase with its category label.
type LabeledExample struct {
	Text  string
	Label constants.Category
}

type category struct {
	label    constants.Category
	examples []Example
	patterns []*regexp.Regexp
}

// Library is the registry of field categories. Mutation is append-only
// and meant for startup wiring; it is not synchronized.
type Library struct {
	order      []string
	categories map[string]*category
}

// NewLibrary builds the registry pre-loaded with the curated voucher
// training data.
func NewLibrary() *Library {
	lib := &Library{categories: make(map[string]*category)}
	for _, seed := range seedData {
		lib.register(seed)
	}
	return lib
}

func (l *Library) register(seed seedCategory) {
	l.order = append(l.order, seed.name)
	l.categories[seed.name] = &category{
		label:    seed.label,
		examples: append([]Example(nil), seed.examples...),
		patterns: append([]*regexp.Regexp(nil), seed.patterns...),
	}
}

// Categories returns the registered category names in registration order.
func (l *Library) Categories() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Label returns the classifier label for a category name.
func (l *Library) Label(name string) (constants.Category, bool) {
	c, ok := l.categories[name]
	if !ok {
		return "", false
	}
	return c.label, true
}

// PatternsFor returns the ordered extraction patterns for a category,
// or nil if the category does not exist.
func (l *Library) PatternsFor(name string) []*regexp.Regexp {
	c, ok := l.categories[name]
	if !ok {
		return nil
	}
	out := make([]*regexp.Regexp, len(c.patterns))
	copy(out, c.patterns)
	return out
}

// AllPatterns returns every category's patterns keyed by category name.
func (l *Library) AllPatterns() map[string][]*regexp.Regexp {
	out := make(map[string][]*regexp.Regexp, len(l.categories))
	for name := range l.categories {
		out[name] = l.PatternsFor(name)
	}
	return out
}

// ExamplesFor returns the training examples for a category, or nil if
// the category does not exist.
func (l *Library) ExamplesFor(name string) []Example {
	c, ok := l.categories[name]
	if !ok {
		return nil
	}
	out := make([]Example, len(c.examples))
	copy(out, c.examples)
	return out
}

// TrainingPairs flattens every example into (text, label) pairs in
// registration order. This is the classifier's training corpus.
func (l *Library) TrainingPairs() []LabeledExample {
	var out []LabeledExample
	for _, name := range l.order {
		c := l.categories[name]
		for _, ex := range c.examples {
			out = append(out, LabeledExample{Text: ex.Text, Label: c.label})
		}
	}
	return out
}

// AddExample appends a training example to an existing category.
func (l *Library) AddExample(name string, ex Example) error {
	c, ok := l.categories[name]
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrUnknownCategory, name)
	}
	c.examples = append(c.examples, ex)
	return nil
}

// AddPattern appends an extraction pattern to an existing category.
func (l *Library) AddPattern(name string, p *regexp.Regexp) error {
	c, ok := l.categories[name]
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrUnknownCategory, name)
	}
	c.patterns = append(c.patterns, p)
	return nil
}
