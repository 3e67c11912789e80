package patterns

import (
	"regexp"

	"github.com/voucherscan/voucher-tracker/constants"
)

type seedCategory struct {
	name     string
	label    constants.Category
	examples []Example
	patterns []*regexp.Regexp
}

// seedData is the curated corpus for Peruvian payment vouchers. Example
// phrases train the classifier; patterns drive direct field capture.
var seedData = []seedCategory{
	{
		name:  "amounts",
		label: constants.CategoryAmount,
		examples: []Example{
			{Text: "total a pagar", Confidence: 1.0, Tags: []string{"total", "principal"}},
			{Text: "S/", Confidence: 1.0, Tags: []string{"amount"}},
			{Text: "importe total", Confidence: 1.0, Tags: []string{"total"}},
			{Text: "monto final", Confidence: 0.9, Tags: []string{"total"}},
			{Text: "subtotal", Confidence: 0.8, Tags: []string{"parcial"}},
			{Text: "total sin igv", Confidence: 0.9, Tags: []string{"parcial", "impuestos"}},
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)TOTAL\s*S/\.?\s*(\d+[.,]\d{2})`),
			regexp.MustCompile(`(?i)TOTAL\s*PEN\s*(\d+[.,]\d{2})`),
			regexp.MustCompile(`(?i)IMPORTE\s*S/\.?\s*(\d+[.,]\d{2})`),
			regexp.MustCompile(`(?i)MONTO\s*S/\.?\s*(\d+[.,]\d{2})`),
		},
	},
	{
		name:  "dates",
		label: constants.CategoryDate,
		examples: []Example{
			{Text: "fecha de emisión", Confidence: 1.0, Tags: []string{"emisión"}},
			{Text: "emitido el", Confidence: 0.9, Tags: []string{"emisión"}},
			{Text: "fecha del comprobante", Confidence: 0.9, Tags: []string{"documento"}},
			{Text: "21 ene. 2025", Confidence: 0.9, Tags: []string{"fecha"}},
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)FECHA:\s*(\d{2})([A-Za-z]{3})(\d{2})`),
			regexp.MustCompile(`(\d{2})[-/](\d{2})[-/](\d{2,4})`),
			regexp.MustCompile(`(\d{2})([A-Za-z]{3})(\d{2,4})`),
		},
	},
	{
		name:  "merchants",
		label: constants.CategoryMerchant,
		examples: []Example{
			{Text: "razón social", Confidence: 1.0, Tags: []string{"empresa"}},
			{Text: "denominación", Confidence: 0.9, Tags: []string{"empresa"}},
			{Text: "nombre comercial", Confidence: 0.9, Tags: []string{"empresa"}},
			{Text: "destino del pago", Confidence: 0.9, Tags: []string{"destino"}},
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)Destino:?\s*([^\n]+)`),
			regexp.MustCompile(`(?i)RAZÓN SOCIAL:?\s*([^\n]+)`),
			regexp.MustCompile(`(?i)DENOMINACIÓN:?\s*([^\n]+)`),
		},
	},
	{
		name:  "products",
		label: constants.CategoryProduct,
		examples: []Example{
			{Text: "n° de operación: 06144082", Confidence: 1.0, Tags: []string{"operación", "número"}},
			{Text: "descripción del producto", Confidence: 0.9, Tags: []string{"item"}},
			{Text: "cantidad", Confidence: 0.8, Tags: []string{"item"}},
			{Text: "precio unitario", Confidence: 0.9, Tags: []string{"item", "precio"}},
			{Text: "producto", Confidence: 0.8, Tags: []string{"item"}},
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(\d+)\s*x\s*(\d+[.,]\d{2})`),
			regexp.MustCompile(`(?i)UNIT\.\s*(\d+[.,]\d{2})`),
			regexp.MustCompile(`(?i)N°\s*de\s*operación:?\s*(\d+)`),
		},
	},
	{
		name:  "services",
		label: constants.CategoryService,
		examples: []Example{
			{Text: "servicio de transporte", Confidence: 0.9, Tags: []string{"item"}},
			{Text: "pago de servicio", Confidence: 0.9, Tags: []string{"item"}},
			{Text: "servicio técnico", Confidence: 0.8, Tags: []string{"item"}},
			{Text: "consumo restaurante", Confidence: 0.8, Tags: []string{"item"}},
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)SERVICIO:?\s*([^\n]+)`),
		},
	},
}
