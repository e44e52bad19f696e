package billsummary

import (
	"fmt"
	"regexp"
	"strings"
)

// Fields are whitespace separated and a row ends at whitespace or end of
// text, so a placeholder dash never matches the sign of "-$5.00".
const fieldEnd = `(?:\s|$)`

// LineGrammar selects which monetary fields of a line row may carry a sign.
type LineGrammar string

const (
	// GrammarSignedEdges allows a sign on the first category (plans, which
	// carries promotional credits) and on the row total only.
	GrammarSignedEdges LineGrammar = "signed-edges"
	// GrammarAllSigned allows a sign on every monetary field.
	GrammarAllSigned LineGrammar = "all-signed"
	// GrammarUnsigned rejects signs everywhere; rows with credits are skipped.
	GrammarUnsigned LineGrammar = "unsigned"
)

// ParseLineGrammar accepts a grammar name; empty selects the default.
func ParseLineGrammar(s string) (LineGrammar, error) {
	switch LineGrammar(strings.ToLower(strings.TrimSpace(s))) {
	case "", GrammarSignedEdges:
		return GrammarSignedEdges, nil
	case GrammarAllSigned:
		return GrammarAllSigned, nil
	case GrammarUnsigned:
		return GrammarUnsigned, nil
	default:
		return "", fmt.Errorf("unknown line grammar %q (want %s, %s or %s)", s, GrammarSignedEdges, GrammarAllSigned, GrammarUnsigned)
	}
}

// fields returns the monetary fields of a row with n categories plus total.
func (g LineGrammar) fields(n int) []Field {
	out := make([]Field, 0, n+1)
	if g == GrammarUnsigned {
		for i := 0; i <= n; i++ {
			out = append(out, AmountField)
		}
		return out
	}
	for i := 0; i < n; i++ {
		if g == GrammarAllSigned || i == 0 {
			out = append(out, SignedAmountField)
		} else {
			out = append(out, AmountField)
		}
	}
	return append(out, SignedAmountField)
}

// linePattern builds: phone, free-text label, line type keyword, then one
// field per category and the row total.
func (g LineGrammar) linePattern(schema Schema) *regexp.Regexp {
	var b strings.Builder
	b.WriteString(`(?i)`)
	b.WriteString(PhoneField.group())
	b.WriteString(`\s+(.*?)`)
	b.WriteString(LineTypeField.group())
	for _, f := range g.fields(len(schema.Categories())) {
		b.WriteString(`\s+`)
		b.WriteString(f.group())
	}
	b.WriteString(fieldEnd)
	return regexp.MustCompile(b.String())
}

// lineMatch is the raw text of one matched line row.
type lineMatch struct {
	phone  string
	label  string
	kind   string
	tokens []string
}

// scan finds every line row in section. A match whose label swallowed another
// phone number is restarted from that number, so one malformed row does not
// hide the row after it.
func (g LineGrammar) scan(section string, schema Schema) []lineMatch {
	re := g.linePattern(schema)
	var out []lineMatch
	pos := 0
	for pos < len(section) {
		loc := re.FindStringSubmatchIndex(section[pos:])
		if loc == nil {
			break
		}
		label := section[pos+loc[4] : pos+loc[5]]
		if inner := phonePattern.FindStringIndex(label); inner != nil {
			pos += loc[4] + inner[0]
			continue
		}

		m := lineMatch{
			phone: section[pos+loc[2] : pos+loc[3]],
			label: strings.TrimSpace(label),
			kind:  section[pos+loc[6] : pos+loc[7]],
		}
		for i := 8; i+1 < len(loc); i += 2 {
			m.tokens = append(m.tokens, section[pos+loc[i]:pos+loc[i+1]])
		}
		out = append(out, m)
		pos += loc[1]
	}
	return out
}

// rowPattern matches a keyword row such as "Account" or "Totals" followed by
// one field per category and the total.
func rowPattern(keyword string, schema Schema, field Field) *regexp.Regexp {
	var b strings.Builder
	b.WriteString(`\b`)
	b.WriteString(regexp.QuoteMeta(keyword))
	b.WriteString(`\s+`)
	for i := 0; i < len(schema.Categories())+1; i++ {
		if i > 0 {
			b.WriteString(`\s+`)
		}
		b.WriteString(field.group())
	}
	b.WriteString(fieldEnd)
	return regexp.MustCompile(b.String())
}
