package billsummary

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type LineType string

const (
	LineTypeVoice          LineType = "Voice"
	LineTypeWearable       LineType = "Wearable"
	LineTypeMobileInternet LineType = "Mobile Internet"
	LineTypeDigits         LineType = "Digits"
	LineTypeTablet         LineType = "Tablet"
	LineTypeOther          LineType = "Other"
	LineTypeWatch          LineType = "Watch"
)

// LineTypes is the closed set of line type keywords, in matching order.
var LineTypes = []LineType{
	LineTypeVoice,
	LineTypeWearable,
	LineTypeMobileInternet,
	LineTypeDigits,
	LineTypeTablet,
	LineTypeOther,
	LineTypeWatch,
}

// ParseLineType maps a keyword in any case or spacing to its canonical type.
func ParseLineType(s string) (LineType, bool) {
	s = Normalize(s)
	for _, t := range LineTypes {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}

const (
	KeyPlans          = "plans"
	KeyEquipment      = "equipment"
	KeyServices       = "services"
	KeyOneTimeCharges = "one-time charges"
	KeyTotal          = "total"
)

// Amounts is one table row's monetary values, bound to the schema it was
// parsed with.
type Amounts struct {
	schema Schema
	values []decimal.Decimal
	total  decimal.Decimal
}

// NewAmounts binds values to the schema's interior categories. The number of
// values must equal the number of categories.
func NewAmounts(schema Schema, values []decimal.Decimal, total decimal.Decimal) (Amounts, error) {
	if want := len(schema.Categories()); len(values) != want {
		return Amounts{}, fmt.Errorf("%w: got %d amounts for %d categories", ErrSchemaMismatch, len(values), want)
	}
	return Amounts{
		schema: schema,
		values: append([]decimal.Decimal(nil), values...),
		total:  total,
	}, nil
}

// ZeroAmounts is an all-zero row for schema.
func ZeroAmounts(schema Schema) Amounts {
	values := make([]decimal.Decimal, len(schema.Categories()))
	for i := range values {
		values[i] = decimal.Zero
	}
	return Amounts{schema: schema, values: values, total: decimal.Zero}
}

// Get returns the amount for a category name in any case, or "total".
// Categories the schema does not have are zero.
func (a Amounts) Get(key string) decimal.Decimal {
	if strings.EqualFold(key, KeyTotal) {
		return a.total
	}
	if i := a.schema.index(key); i >= 0 && i < len(a.values) {
		return a.values[i]
	}
	return decimal.Zero
}

func (a Amounts) Plans() decimal.Decimal          { return a.Get(KeyPlans) }
func (a Amounts) Equipment() decimal.Decimal      { return a.Get(KeyEquipment) }
func (a Amounts) Services() decimal.Decimal       { return a.Get(KeyServices) }
func (a Amounts) OneTimeCharges() decimal.Decimal { return a.Get(KeyOneTimeCharges) }
func (a Amounts) Total() decimal.Decimal          { return a.total }

// Map returns every category plus "total", keyed by lowercased name.
func (a Amounts) Map() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(a.values)+1)
	for i, k := range a.schema.Keys() {
		if i < len(a.values) {
			out[k] = a.values[i]
		}
	}
	out[KeyTotal] = a.total
	return out
}

// AccountRecord holds account-wide charges not tied to a single line.
type AccountRecord struct {
	Amounts
}

// TotalsRecord holds the document's own column totals.
type TotalsRecord struct {
	Amounts
}

// LineRecord is one phone line row of the bill summary table.
type LineRecord struct {
	Phone    string
	Label    string
	Type     LineType
	Excluded bool
	Amounts
}

func (l LineRecord) IsVoice() bool {
	return l.Type == LineTypeVoice
}
