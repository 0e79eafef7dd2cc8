// Package classify turns OCR extractions into structured product
// information. A regex pattern battery harvests typed substrings
// (prices, dates, weights, volumes, percentages and more) while keyword
// containment assigns each text to at most one name category with a
// fixed product > retailer > brand priority. Classification is rule
// based and total; there is no learned component and no error path.
package classify
