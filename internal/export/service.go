// Package export produces XLSX workbooks from voucher history.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/voucherscan/voucher-tracker/internal/entity"
)

type Service struct {
	logger *zap.Logger
}

func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// VouchersXLSX renders the given records into a single-sheet workbook
// and returns its bytes.
func (s *Service) VouchersXLSX(recs []*entity.VoucherRecord) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Vouchers"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// drop the default sheet so the workbook only carries ours
	_ = f.DeleteSheet("Sheet1")

	headers := []string{
		"Created At",
		"Merchant",
		"Transaction Date",
		"Transaction Number",
		"Amount",
		"Tax (IGV)",
		"Currency",
		"Items",
		"Image URL",
		"Active",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		d := r.ExtractedData

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.CreatedAt.Format("2006-01-02 15:04"))
		write(2, strOrEmpty(d.MerchantName))
		write(3, strOrEmpty(d.TransactionDate))
		write(4, strOrEmpty(d.TransactionNumber))
		if d.Amount != nil {
			write(5, *d.Amount)
		}
		if d.TaxAmount != nil {
			write(6, *d.TaxAmount)
		}
		write(7, d.Currency)
		write(8, itemsSummary(d.Items))
		write(9, r.ImageURL)
		write(10, r.Status)

		row++
	}

	// Widen the columns a reader actually scans
	_ = f.SetColWidth(sheet, "A", "A", 18)
	_ = f.SetColWidth(sheet, "B", "B", 28)
	_ = f.SetColWidth(sheet, "H", "H", 40)
	_ = f.SetColWidth(sheet, "I", "I", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Info("voucher export built", zap.Int("rows", len(recs)), zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func itemsSummary(items []entity.VoucherItem) string {
	if len(items) == 0 {
		return ""
	}
	out := ""
	for i, it := range items {
		if i > 0 {
			out += "; "
		}
		out += fmt.Sprintf("%s x%.0f", it.Description, it.Quantity)
	}
	return out
}
