package billsummary

import "strings"

// Normalize collapses every run of whitespace, line breaks included, into a
// single space and trims both ends so the page text can be scanned as one
// stream.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
