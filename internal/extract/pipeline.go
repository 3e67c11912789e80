// Package extract recovers structured voucher fields from raw OCR text.
// Extraction is pure computation: no extractor performs I/O, and a
// Pipeline is safe for concurrent use once constructed.
package extract

import (
	"math"

	"go.uber.org/zap"

	"github.com/voucherscan/voucher-tracker/constants"
	"github.com/voucherscan/voucher-tracker/internal/classify"
	"github.com/voucherscan/voucher-tracker/internal/common"
	"github.com/voucherscan/voucher-tracker/internal/entity"
	"github.com/voucherscan/voucher-tracker/internal/patterns"
)

// Pipeline orchestrates normalization, classification and the field
// extractors over one OCR blob.
type Pipeline struct {
	lib        *patterns.Library
	classifier *classify.Classifier
	logger     *zap.Logger
}

func NewPipeline(lib *patterns.Library, classifier *classify.Classifier, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{lib: lib, classifier: classifier, logger: logger}
}

// Extract turns raw OCR text into an ExtractedVoucherData. Empty input
// fails with ErrNoTextDetected; a voucher where individual fields are
// unrecoverable is still a success, with those fields absent and a
// lower completeness score.
//
// Every primary extractor always runs. An earlier revision gated them
// on the whole-text classification, which silently dropped fields
// whenever the blob's dominant category differed from the field being
// sought.
func (p *Pipeline) Extract(rawText string) (*entity.ExtractedVoucherData, error) {
	text := Normalize(rawText)
	if text == "" {
		return nil, common.ErrNoTextDetected
	}

	wholeLabel := p.classifier.Classify(text)

	amount, amountConf := p.extractAmount(text)

	data := &entity.ExtractedVoucherData{
		Amount:            amount,
		TransactionDate:   p.extractDate(text),
		TransactionNumber: extractTransactionNumber(text),
		MerchantName:      p.extractMerchantName(text),
		Items:             p.buildItems(text, amount),
		Currency:          detectCurrency(text),
		RawText:           text,
	}

	if data.Currency == "" {
		data.Currency = constants.DefaultCurrency
	}
	if amount != nil {
		total := *amount
		data.TotalAmount = &total
		tax := math.Round(*amount*constants.VATRate*100) / 100
		data.TaxAmount = &tax
	}

	p.logger.Debug("voucher extracted",
		zap.String("whole_text_label", string(wholeLabel)),
		zap.Float64("amount_confidence", amountConf),
		zap.Float64("completeness", Score(data)),
		zap.Int("items", len(data.Items)),
	)
	return data, nil
}
