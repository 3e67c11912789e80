package extract

import (
	"strings"

	"github.com/voucherscan/voucher-tracker/constants"
	"github.com/voucherscan/voucher-tracker/internal/entity"
)

// buildItems assembles the line-item list. When an amount was found the
// list is seeded with a synthetic "Total compra" item carrying it. Each
// line is then classified, and lines tagged producto/servicio are
// appended in discovery order. This is a tagging heuristic: per-item
// quantities and prices are not parsed out of the lines themselves.
func (p *Pipeline) buildItems(text string, amount *float64) []entity.VoucherItem {
	items := make([]entity.VoucherItem, 0, 4)

	lineAmount := 0.0
	if amount != nil {
		lineAmount = *amount
		items = append(items, entity.VoucherItem{
			Description: "Total compra",
			Quantity:    1,
			UnitPrice:   *amount,
			TotalPrice:  *amount,
		})
	}

	for _, line := range splitLines(text) {
		label := p.classifier.Classify(line)
		if !constants.IsItemCategory(label) {
			continue
		}
		items = append(items, entity.VoucherItem{
			Description: strings.TrimSpace(line),
			Quantity:    1,
			UnitPrice:   lineAmount,
			TotalPrice:  lineAmount,
		})
	}
	return items
}
