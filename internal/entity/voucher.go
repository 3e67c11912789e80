package entity

import (
	"time"

	"github.com/google/uuid"
)

// VoucherItem is a single line item recovered from a voucher.
type VoucherItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

// ExtractedVoucherData is the structured result of one extraction run.
// Optional fields are pointers so "not found" is distinguishable from a
// zero value; RawText is always the cleaned OCR text the result came
// from, retained for audit and re-processing.
type ExtractedVoucherData struct {
	Amount            *float64      `json:"amount,omitempty"`
	TransactionDate   *string       `json:"transactionDate,omitempty"`
	TransactionNumber *string       `json:"transactionNumber,omitempty"`
	MerchantName      *string       `json:"merchantName,omitempty"`
	Items             []VoucherItem `json:"items"`
	TotalAmount       *float64      `json:"totalAmount,omitempty"`
	TaxAmount         *float64      `json:"taxAmount,omitempty"`
	Currency          string        `json:"currency"`
	RawText           string        `json:"rawText"`
}

// Recalculate re-derives the money invariants after a reviewer edit:
// every item's totalPrice becomes quantity*unitPrice, and when items
// exist totalAmount becomes the sum of item totals. Externally supplied
// totals are never trusted.
func (d *ExtractedVoucherData) Recalculate() {
	if len(d.Items) == 0 {
		return
	}
	var sum float64
	for i := range d.Items {
		d.Items[i].TotalPrice = d.Items[i].Quantity * d.Items[i].UnitPrice
		sum += d.Items[i].TotalPrice
	}
	d.TotalAmount = &sum
}

// VoucherRecord is a persisted voucher: the extraction result plus the
// stored image location and bookkeeping columns.
type VoucherRecord struct {
	ID            uuid.UUID            `json:"id"`
	ImageURL      string               `json:"imageUrl"`
	ExtractedData ExtractedVoucherData `json:"extractedData"`
	CreatedAt     time.Time            `json:"createdAt"`
	Status        bool                 `json:"status"`
}
