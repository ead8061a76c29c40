package extract

import (
	"regexp"
)

// The two patterns are fixed-length on purpose: bill text is full of digit
// runs (invoice totals, dates, phone numbers) and only the exact
// "<prefix><10 digits> / <7 digits>" shape may match. Surrounding labels in
// any language are irrelevant to the match.
var (
	waterContractRegex       = regexp.MustCompile(`\b3701\d{6} / \d{7}\b`)
	electricityContractRegex = regexp.MustCompile(`\b4801\d{6} / \d{7}\b`)
)

// Contracts holds the extraction result. A nil slot means no contract of
// that service was found in the text.
type Contracts struct {
	Water       *string
	Electricity *string
}

// Empty reports whether neither service matched.
func (c Contracts) Empty() bool {
	return c.Water == nil && c.Electricity == nil
}

// FromText scans OCR or typed text for water and electricity contract
// numbers independently; either, both, or neither may be present. It is
// pattern matching only — an extracted number may still fail resolution.
func FromText(rawText string) Contracts {
	var result Contracts
	if match := waterContractRegex.FindString(rawText); match != "" {
		result.Water = &match
	}
	if match := electricityContractRegex.FindString(rawText); match != "" {
		result.Electricity = &match
	}
	return result
}
