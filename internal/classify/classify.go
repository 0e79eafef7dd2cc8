package classify

import (
	"regexp"
	"strings"

	"github.com/shelfscan/labelscan/internal/extract"
)

const (
	// DefaultMinConfidence is the confidence floor below which an
	// extraction is ignored entirely.
	DefaultMinConfidence = 30.0

	// minClassifiableLength is the shortest trimmed text considered.
	minClassifiableLength = 3

	// maxOtherDetails caps the other_details category.
	maxOtherDetails = 10

	// minOtherDetailLength filters other_details entries.
	minOtherDetailLength = 3
)

// meaningfulText requires at least three consecutive alphabetic
// characters; anything less is symbol noise, not a detail worth keeping.
var meaningfulText = regexp.MustCompile(`[a-zA-Z]{3,}`)

// Classifier assigns extracted texts to product-information categories
// using keyword containment, and harvests typed values via the pattern
// table. It is total: any input, including none, yields a well-formed
// ProductInfo. Safe for concurrent use; its configuration is read-only.
type Classifier struct {
	keywords      KeywordSets
	patterns      *Patterns
	minConfidence float64
}

// NewClassifier builds a classifier around the given keyword sets and
// pattern table. Pass DefaultKeywords() and DefaultPatterns() for the
// standard configuration.
func NewClassifier(keywords KeywordSets, patterns *Patterns, minConfidence float64) *Classifier {
	return &Classifier{
		keywords:      keywords,
		patterns:      patterns,
		minConfidence: minConfidence,
	}
}

// Classify reduces OCR results into a ProductInfo.
//
// Per result, in input order: texts under the confidence floor or
// shorter than three characters after trimming are skipped; whitespace
// runs collapse to single spaces; pattern extraction always runs and
// its matches accumulate regardless of the categorical outcome (expiry
// matches fold into dates); then keyword containment assigns the text
// to exactly one of product, retailer or brand (strict first-match
// priority in that order) or to other_details when it still has a run
// of three letters. Finally every accumulator is deduplicated keeping
// first occurrences, and other_details is filtered to entries longer
// than three characters, capped at ten.
func (c *Classifier) Classify(results []extract.Result) *ProductInfo {
	var productNames, retailerNames, brandNames []string
	var prices, dates, weights, volumes, percentages []string
	var otherDetails []string

	for _, result := range results {
		trimmed := strings.TrimSpace(result.Text)
		if result.Confidence < c.minConfidence || len(trimmed) < minClassifiableLength {
			continue
		}

		cleaned := strings.Join(strings.Fields(result.Text), " ")

		matches := c.patterns.Extract(cleaned)
		prices = append(prices, matches[CategoryPrices]...)
		dates = append(dates, matches[CategoryDates]...)
		dates = append(dates, matches[CategoryExpiry]...)
		weights = append(weights, matches[CategoryWeights]...)
		volumes = append(volumes, matches[CategoryVolumes]...)
		percentages = append(percentages, matches[CategoryPercentages]...)

		lower := strings.ToLower(cleaned)
		switch {
		case containsAny(lower, c.keywords.Product):
			productNames = append(productNames, cleaned)
		case containsAny(lower, c.keywords.Retailer):
			retailerNames = append(retailerNames, cleaned)
		case containsAny(lower, c.keywords.Brand):
			brandNames = append(brandNames, cleaned)
		case meaningfulText.MatchString(cleaned):
			otherDetails = append(otherDetails, cleaned)
		}
	}

	return &ProductInfo{
		ProductNames:  uniqueStrings(productNames),
		RetailerNames: uniqueStrings(retailerNames),
		BrandNames:    uniqueStrings(brandNames),
		Prices:        uniqueStrings(prices),
		Dates:         uniqueStrings(dates),
		Weights:       uniqueStrings(weights),
		Volumes:       uniqueStrings(volumes),
		Percentages:   uniqueStrings(percentages),
		OtherDetails:  capDetails(uniqueStrings(otherDetails)),
	}
}

// uniqueStrings removes verbatim duplicates, keeping first occurrences.
// Always returns a non-nil slice so categories marshal as [] not null.
func uniqueStrings(values []string) []string {
	unique := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		unique = append(unique, v)
	}
	return unique
}

// capDetails applies the other_details constraints: entries must be
// longer than three characters, at most ten kept.
func capDetails(values []string) []string {
	kept := make([]string, 0, maxOtherDetails)
	for _, v := range values {
		if len(v) <= minOtherDetailLength {
			continue
		}
		kept = append(kept, v)
		if len(kept) == maxOtherDetails {
			break
		}
	}
	return kept
}
