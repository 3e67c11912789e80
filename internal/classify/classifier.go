// Package classify wraps a multinomial naive Bayes model trained from
// the pattern library's labeled examples. The model is built once,
// before any classification is served, and is immutable afterwards, so
// a single Classifier is safe for concurrent use.
package classify

import (
	"strings"
	"unicode"

	"github.com/jbrukh/bayesian"

	"github.com/voucherscan/voucher-tracker/constants"
	"github.com/voucherscan/voucher-tracker/internal/patterns"
)

type Classifier struct {
	model   *bayesian.Classifier
	classes []bayesian.Class
}

// New trains a classifier from every (text, label) pair in the library.
// Training happens here, in the constructor: by the time a Classifier
// exists it is ready to classify.
func New(lib *patterns.Library) *Classifier {
	classes := make([]bayesian.Class, 0, len(constants.AllCategories()))
	for _, cat := range constants.AllCategories() {
		classes = append(classes, bayesian.Class(cat))
	}
	model := bayesian.NewClassifier(classes...)

	for _, pair := range lib.TrainingPairs() {
		model.Learn(Tokenize(pair.Text), bayesian.Class(pair.Label))
	}

	return &Classifier{model: model, classes: classes}
}

// Classify returns the highest-posterior category for a text span. It
// never fails: with no vocabulary overlap the class priors decide, and
// ties resolve to the earliest-trained class.
func (c *Classifier) Classify(text string) constants.Category {
	_, inx, _ := c.model.LogScores(Tokenize(text))
	return constants.Category(c.classes[inx])
}

// Tokenize lowercases and splits on anything that is not a letter or a
// digit, mirroring how the training phrases are tokenized.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
