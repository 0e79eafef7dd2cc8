package classify

import "regexp"

// Pattern category names, in extraction order.
const (
	CategoryPrices       = "prices"
	CategoryDates        = "dates"
	CategoryPercentages  = "percentages"
	CategoryWeights      = "weights"
	CategoryVolumes      = "volumes"
	CategoryProductCodes = "product_codes"
	CategoryBarcodes     = "barcodes"
	CategoryExpiry       = "expiry"
	CategoryURLs         = "urls"
	CategoryEmails       = "emails"
)

type patternEntry struct {
	category string
	re       *regexp.Regexp
}

// Patterns is an ordered, immutable battery of category expressions.
// Construct once (typically DefaultPatterns) and share freely; it is
// read-only after construction and safe for concurrent use.
type Patterns struct {
	entries []patternEntry
}

// DefaultPatterns compiles the standard label pattern table. All
// expressions are case-insensitive.
func DefaultPatterns() *Patterns {
	compile := func(category, expr string) patternEntry {
		return patternEntry{category: category, re: regexp.MustCompile(`(?i)` + expr)}
	}
	return &Patterns{entries: []patternEntry{
		compile(CategoryPrices, `[$£€]\s*\d+(?:[.,]\d{2})?|\d+(?:[.,]\d{2})?\s*[$£€]`),
		compile(CategoryDates, `\d{1,2}[-/]\d{1,2}[-/]\d{2,4}|(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{1,2},?\s+\d{2,4}`),
		compile(CategoryPercentages, `\d+\.?\d*\s*%`),
		compile(CategoryWeights, `\d+\.?\d*\s*(?:kg|g|mg|lb|oz|lbs|ounces?)\b`),
		compile(CategoryVolumes, `\d+\.?\d*\s*(?:ml|l|gal|gallons?|fl\.?\s*oz)\b`),
		compile(CategoryProductCodes, `\b[A-Z]{2,}\d{3,}|\d{3,}[A-Z]{2,}\b|UPC\s*:\s*\d+`),
		compile(CategoryBarcodes, `\b\d{8,13}\b`),
		compile(CategoryExpiry, `(?:exp|expiry|expires?|best\s+before)[:\s]*[\d/\-\s]+\d{2,4}`),
		compile(CategoryURLs, `https?://\S+|www\.\S+`),
		compile(CategoryEmails, `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	}}
}

// Extract applies every pattern to text and returns matches per
// category: exact matched substrings in left-to-right order, duplicates
// included. Deduplication happens later at the classifier level. A
// category with no matches is simply absent from the map; callers treat
// absence as an empty list. Extract never fails; malformed or empty
// input yields an empty map.
func (p *Patterns) Extract(text string) map[string][]string {
	results := make(map[string][]string)
	if text == "" {
		return results
	}
	for _, entry := range p.entries {
		if matches := entry.re.FindAllString(text, -1); len(matches) > 0 {
			results[entry.category] = matches
		}
	}
	return results
}
