package constants

// ISO 4217 codes for the currencies vouchers are issued in.
const (
	CurrencyPEN = "PEN"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
)

// DefaultCurrency applies when no explicit currency marker is found.
const DefaultCurrency = CurrencyPEN

// VATRate is the Peruvian IGV rate applied to derive taxAmount.
const VATRate = 0.18

// CurrencyMarkers describes how a currency shows up in OCR text:
// Symbols are matched as substrings, Words as whole lowercase tokens.
type CurrencyMarkers struct {
	Code    string
	Symbols []string
	Words   []string
}

// currencyOrder is a fixed detection order; the first currency with any
// matching marker wins.
var currencyOrder = []CurrencyMarkers{
	{
		Code:    CurrencyPEN,
		Symbols: []string{"s/"},
		Words:   []string{"pen", "soles"},
	},
	{
		Code:    CurrencyUSD,
		Symbols: []string{"us$", "$"},
		Words:   []string{"usd", "dolares", "dólares"},
	},
	{
		Code:    CurrencyEUR,
		Symbols: []string{"€"},
		Words:   []string{"eur", "euro", "euros"},
	},
}

func CurrencyDetectionOrder() []CurrencyMarkers {
	out := make([]CurrencyMarkers, len(currencyOrder))
	copy(out, currencyOrder)
	return out
}
