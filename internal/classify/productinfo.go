package classify

// ProductInfo is the structured output of classification: per-category
// unique value lists. Every category is always present (possibly empty).
// A text lands in at most one of product/retailer/brand/other, while
// pattern-extracted values (prices, dates, weights, volumes,
// percentages) accumulate independently of that assignment.
type ProductInfo struct {
	ProductNames  []string `json:"product_names"`
	RetailerNames []string `json:"retailer_names"`
	BrandNames    []string `json:"brand_names"`
	Prices        []string `json:"prices"`
	Dates         []string `json:"dates"`
	Weights       []string `json:"weights"`
	Volumes       []string `json:"volumes"`
	Percentages   []string `json:"percentages"`
	OtherDetails  []string `json:"other_details"`
}

// CategoryValues pairs a category name with its values, for exporters
// that iterate categories in a stable order.
type CategoryValues struct {
	Name   string
	Values []string
}

// Items returns all categories in their canonical order.
func (p *ProductInfo) Items() []CategoryValues {
	return []CategoryValues{
		{Name: "product_names", Values: p.ProductNames},
		{Name: "retailer_names", Values: p.RetailerNames},
		{Name: "brand_names", Values: p.BrandNames},
		{Name: "prices", Values: p.Prices},
		{Name: "dates", Values: p.Dates},
		{Name: "weights", Values: p.Weights},
		{Name: "volumes", Values: p.Volumes},
		{Name: "percentages", Values: p.Percentages},
		{Name: "other_details", Values: p.OtherDetails},
	}
}

// Empty reports whether no category holds any value.
func (p *ProductInfo) Empty() bool {
	for _, item := range p.Items() {
		if len(item.Values) > 0 {
			return false
		}
	}
	return true
}
