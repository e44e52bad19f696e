package billsummary

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Placeholder is the table cell that stands for a zero amount.
const Placeholder = "-"

const dollarAmount = `\$\d[\d,]*(?:\.\d+)?`

// Field is a single typed token of a bill row. Its pattern is used both to
// validate a lone token and as a capture group inside a row pattern.
type Field struct {
	Name    string
	pattern string
	whole   *regexp.Regexp
}

func newField(name, pattern string) Field {
	return Field{
		Name:    name,
		pattern: pattern,
		whole:   regexp.MustCompile(`(?i)^(?:` + pattern + `)$`),
	}
}

// Matches reports whether token is exactly one value of this field.
func (f Field) Matches(token string) bool {
	return f.whole.MatchString(token)
}

func (f Field) group() string {
	return "(" + f.pattern + ")"
}

var (
	PhoneField        = newField("phone", `\(\d{3}\)\s*\d{3}-\d{4}`)
	AmountField       = newField("amount", dollarAmount+`|-`)
	SignedAmountField = newField("signed amount", `-?`+dollarAmount+`|-`)
	LineTypeField     = newField("line type", lineTypeAlternation())
)

var phonePattern = regexp.MustCompile(PhoneField.pattern)

func lineTypeAlternation() string {
	alts := make([]string, 0, len(LineTypes))
	for _, t := range LineTypes {
		alts = append(alts, strings.ReplaceAll(string(t), " ", `\s+`))
	}
	return strings.Join(alts, "|")
}

// ParseAmount converts "$1,234.56", "-$5.00" or the placeholder dash into a
// decimal value.
func ParseAmount(token string) (decimal.Decimal, error) {
	s := strings.TrimSpace(token)
	if s == "" || s == Placeholder {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", token, err)
	}
	return d, nil
}

func parseAmounts(tokens []string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, len(tokens))
	for i, tok := range tokens {
		d, err := ParseAmount(tok)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}
