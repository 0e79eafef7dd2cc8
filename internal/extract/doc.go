// Package extract runs multi-strategy OCR over a label image: one
// masked whole-image pass plus, per detected region, a search across
// preprocessing variants and page-segmentation modes that keeps the
// best-confidence result. Accepted snippets are deduplicated
// case-insensitively in first-discovery order.
package extract
