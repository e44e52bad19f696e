package billsummary

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	SectionMarker = "THIS BILL SUMMARY"
	LineTypeLabel = "Line Type"
	TotalLabel    = "Total"

	oneTimeCharges = "One-time charges"
)

var headerPattern = regexp.MustCompile(`Line Type (.+?) Total\b`)

// Schema is the ordered column list of the bill summary table. It always
// starts with "Line Type" and ends with "Total".
type Schema struct {
	columns []string
}

// NewSchema builds a schema from the interior cost categories.
func NewSchema(categories ...string) (Schema, error) {
	if len(categories) == 0 {
		return Schema{}, fmt.Errorf("%w: no cost categories", ErrHeaderNotFound)
	}
	cols := make([]string, 0, len(categories)+2)
	cols = append(cols, LineTypeLabel)
	cols = append(cols, categories...)
	cols = append(cols, TotalLabel)
	return Schema{columns: cols}, nil
}

// Columns returns a copy of the full column list.
func (s Schema) Columns() []string {
	return append([]string(nil), s.columns...)
}

// Categories returns the interior cost categories.
func (s Schema) Categories() []string {
	if len(s.columns) < 2 {
		return nil
	}
	return append([]string(nil), s.columns[1:len(s.columns)-1]...)
}

// Keys returns the lowercased interior categories, the names amounts are
// looked up by.
func (s Schema) Keys() []string {
	cats := s.Categories()
	for i, c := range cats {
		cats[i] = strings.ToLower(c)
	}
	return cats
}

// Width is the number of columns including "Line Type" and "Total".
func (s Schema) Width() int {
	return len(s.columns)
}

func (s Schema) index(key string) int {
	key = strings.ToLower(key)
	for i, k := range s.Keys() {
		if k == key {
			return i
		}
	}
	return -1
}

// LocateSection returns the text from the bill summary marker onwards.
func LocateSection(text string) (string, error) {
	start := strings.Index(text, SectionMarker)
	if start == -1 {
		return "", ErrSectionNotFound
	}
	return text[start:], nil
}

// DetectSchema locates the bill summary section in normalized text and infers
// its column schema from the "Line Type ... Total" header.
func DetectSchema(text string) (string, Schema, error) {
	section, err := LocateSection(text)
	if err != nil {
		return "", Schema{}, err
	}

	m := headerPattern.FindStringSubmatch(section)
	if m == nil {
		return "", Schema{}, ErrHeaderNotFound
	}

	schema, err := NewSchema(mergeHeaderWords(strings.Fields(m[1]))...)
	if err != nil {
		return "", Schema{}, err
	}
	return section, schema, nil
}

func mergeHeaderWords(words []string) []string {
	merged := make([]string, 0, len(words))
	for i := 0; i < len(words); i++ {
		if i+1 < len(words) &&
			strings.EqualFold(words[i], "one-time") &&
			strings.EqualFold(words[i+1], "charges") {
			merged = append(merged, oneTimeCharges)
			i++
			continue
		}
		merged = append(merged, words[i])
	}
	return merged
}
