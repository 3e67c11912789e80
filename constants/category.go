package constants

// Category is a classifier label for a span of voucher text.
type Category string

// Stable values (the classifier is trained with these exact labels).
const (
	CategoryAmount   Category = "amount"
	CategoryDate     Category = "date"
	CategoryMerchant Category = "merchant"
	CategoryProduct  Category = "producto"
	CategoryService  Category = "servicio"
)

// allCategories fixes the training order; classifier ties resolve to the
// earliest entry.
var allCategories = []Category{
	CategoryAmount,
	CategoryDate,
	CategoryMerchant,
	CategoryProduct,
	CategoryService,
}

func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// IsItemCategory reports whether a label tags a line as a candidate
// voucher line item.
func IsItemCategory(c Category) bool {
	return c == CategoryProduct || c == CategoryService
}
