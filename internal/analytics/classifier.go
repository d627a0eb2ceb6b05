package analytics

import "strings"

// SaleClassifier scans free text for evidence that a sale happened. This is a
// coarse keyword heuristic, not NLP: a note mentioning a rejected deal still
// matches. That tolerance is accepted; finance entries are the authoritative
// signal wherever they exist.
type SaleClassifier struct {
	Keywords        []string
	CurrencySymbols []string
}

// NewSaleClassifier returns a classifier with the default keyword and
// currency-symbol sets.
func NewSaleClassifier() SaleClassifier {
	return SaleClassifier{
		Keywords:        []string{"sold", "deal"},
		CurrencySymbols: []string{"£", "$", "€"},
	}
}

// IsSaleIndicated reports whether the lowercased text contains any sale
// keyword, or the raw text contains any currency symbol. Empty text is never
// a sale.
func (c SaleClassifier) IsSaleIndicated(text string) bool {
	if text == "" {
		return false
	}
	lowered := strings.ToLower(text)
	for _, kw := range c.Keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	for _, sym := range c.CurrencySymbols {
		if strings.Contains(text, sym) {
			return true
		}
	}
	return false
}
