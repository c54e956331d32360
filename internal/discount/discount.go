// Package discount maps a free-text special occasion to a discount percentage.
package discount

import "strings"

// rule associates an occasion keyword with a discount percent. Matching is
// case-insensitive substring search in table order; the first hit wins.
type rule struct {
	keyword string
	percent float64
}

var rules = []rule{
	{"honeymoon", 15},
	{"birthday", 10},
	{"anniversary", 12},
	{"wedding", 20},
	{"special", 8},
	{"celebration", 8},
}

// Percent returns the discount percentage (0-100) for the given occasion.
// An empty occasion or one matching no keyword yields 0.
func Percent(occasion string) float64 {
	if occasion == "" {
		return 0
	}
	lower := strings.ToLower(occasion)
	for _, r := range rules {
		if strings.Contains(lower, r.keyword) {
			return r.percent
		}
	}
	return 0
}

// Quote is a price preview computed from a ceiling price and an occasion.
// It does not apply the room's price floor; only Book clamps.
type Quote struct {
	Percent    float64 `json:"discount_percentage"`
	Amount     float64 `json:"discount_amount"`
	FinalPrice float64 `json:"final_price"`
}

// Preview computes the unclamped discounted price from a ceiling price.
func Preview(ceiling float64, occasion string) Quote {
	p := Percent(occasion)
	amount := ceiling * p / 100
	return Quote{
		Percent:    p,
		Amount:     amount,
		FinalPrice: ceiling - amount,
	}
}
