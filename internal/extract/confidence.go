package extract

import "github.com/voucherscan/voucher-tracker/internal/entity"

// Field weights for the completeness score. Items carry double weight:
// a voucher with line items is materially more reviewable.
const (
	weightAmount      = 1
	weightDate        = 1
	weightTxNumber    = 1
	weightMerchant    = 1
	weightCurrency    = 1
	weightItems       = 2
	weightTotalAmount = 1
	weightTaxAmount   = 1

	totalWeight = weightAmount + weightDate + weightTxNumber + weightMerchant +
		weightCurrency + weightItems + weightTotalAmount + weightTaxAmount
)

// Score computes a 0–100 completeness percentage over the assembled
// result: each present/non-empty field contributes its weight.
func Score(d *entity.ExtractedVoucherData) float64 {
	if d == nil {
		return 0
	}
	got := 0
	if d.Amount != nil {
		got += weightAmount
	}
	if d.TransactionDate != nil {
		got += weightDate
	}
	if d.TransactionNumber != nil {
		got += weightTxNumber
	}
	if d.MerchantName != nil {
		got += weightMerchant
	}
	if d.Currency != "" {
		got += weightCurrency
	}
	if len(d.Items) > 0 {
		got += weightItems
	}
	if d.TotalAmount != nil {
		got += weightTotalAmount
	}
	if d.TaxAmount != nil {
		got += weightTaxAmount
	}
	return float64(got) / float64(totalWeight) * 100
}
