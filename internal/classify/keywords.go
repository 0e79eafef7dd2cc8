package classify

import "strings"

// KeywordSets holds the lowercase keyword lists used for field
// classification. The sets are read-only after construction and shared
// without locking across pipeline workers; tests inject their own sets
// in place of the defaults.
//
// Matching is unanchored substring containment, not word-boundary
// matching, and the priority order among the sets is strict: product
// first, then retailer, then brand. Both behaviors are deliberate and
// classification outcomes depend on them.
type KeywordSets struct {
	Product  []string
	Retailer []string
	Brand    []string
}

// DefaultKeywords returns the built-in keyword sets for household
// product labels.
func DefaultKeywords() KeywordSets {
	return KeywordSets{
		Product: []string{
			"cleaner", "detergent", "disinfectant", "soda", "borax", "dishwasher",
			"soap", "shampoo", "conditioner", "toothpaste", "mouthwash", "deodorant",
			"lotion", "cream", "gel", "spray", "powder", "liquid", "tablets",
			"bleach", "softener", "freshener", "sanitizer", "wash", "rinse",
			"wipes", "towels", "tissue", "paper", "napkins", "rolls",
		},
		Retailer: []string{
			"atlas", "rayhong", "finish", "wrld", "walker", "walmart", "target",
			"costco", "amazon", "safeway", "kroger", "publix", "albertsons",
			"walgreens", "cvs", "rite aid", "whole foods", "trader joe's",
			"meijer", "wegmans", "aldi", "lidl", "dollar general", "family dollar",
		},
		Brand: []string{
			"tide", "gain", "downy", "cascade", "dawn", "febreze", "oxi clean",
			"arm & hammer", "lysol", "clorox", "mr. clean", "pine-sol", "ajax",
			"comet", "seventh generation", "method", "mrs. meyer's", "all",
			"persil", "woolite", "shout", "resolve", "pledge", "windex",
			"charmin", "bounty", "scott", "kleenex", "cottonelle", "pampers",
		},
	}
}

// containsAny reports whether text contains any of the keywords as a
// substring. text must already be lowercased.
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
