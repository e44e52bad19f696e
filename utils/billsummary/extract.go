package billsummary

import (
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	accountKeyword = "Account"
	totalsKeyword  = "Totals"
)

// ExcludeKeywords mark a line that no longer belongs to the current holder.
var ExcludeKeywords = []string{"old number", "port out", "replaced"}

// Extraction is everything read from one bill summary section.
type Extraction struct {
	Schema       Schema
	Account      AccountRecord
	Totals       TotalsRecord
	Lines        []LineRecord
	VoiceTaxPool decimal.Decimal
	VoiceLines   int
	Skipped      int
	Warnings     []error
}

// Extractor reads account, totals and line rows from a bill summary section.
type Extractor struct {
	Grammar LineGrammar
}

func NewExtractor(grammar LineGrammar) *Extractor {
	return &Extractor{Grammar: grammar}
}

// Parse detects the schema in normalized text and extracts its records.
func (e *Extractor) Parse(text string) (*Extraction, error) {
	section, schema, err := DetectSchema(text)
	if err != nil {
		return nil, err
	}
	return e.Extract(section, schema), nil
}

// Extract never fails: missing account/totals rows default to zero and rows
// that do not parse are skipped. Both are reported in Warnings.
func (e *Extractor) Extract(section string, schema Schema) *Extraction {
	ex := &Extraction{
		Schema:       schema,
		VoiceTaxPool: decimal.Zero,
	}

	account, err := extractRow(section, accountKeyword, schema, AmountField)
	if err != nil {
		ex.Warnings = append(ex.Warnings, err)
	}
	ex.Account = AccountRecord{Amounts: account}

	totals, err := extractRow(section, totalsKeyword, schema, SignedAmountField)
	if err != nil {
		ex.Warnings = append(ex.Warnings, err)
	}
	ex.Totals = TotalsRecord{Amounts: totals}

	grammar := e.Grammar
	if grammar == "" {
		grammar = GrammarSignedEdges
	}

	for _, m := range grammar.scan(section, schema) {
		line, err := buildLine(m, schema)
		if err != nil {
			log.Printf("Skipping line row %s: %v", m.phone, err)
			continue
		}
		ex.Lines = append(ex.Lines, line)

		if line.IsVoice() {
			if !line.Excluded {
				ex.VoiceLines++
			}
			ex.VoiceTaxPool = ex.VoiceTaxPool.Add(line.Plans())
		}
	}

	if candidates := len(phonePattern.FindAllStringIndex(section, -1)); candidates > len(ex.Lines) {
		ex.Skipped = candidates - len(ex.Lines)
		log.Printf("Skipped %d phone number(s) that did not parse as line rows", ex.Skipped)
	}

	return ex
}

func extractRow(section, keyword string, schema Schema, field Field) (Amounts, error) {
	m := rowPattern(keyword, schema, field).FindStringSubmatch(section)
	if m == nil {
		if strings.Contains(section, keyword) {
			return ZeroAmounts(schema), fmt.Errorf("%w: %s row does not have %d amounts", ErrRowNotFound, keyword, schema.Width()-1)
		}
		return ZeroAmounts(schema), fmt.Errorf("%w: no %s row", ErrRowNotFound, keyword)
	}

	values, err := parseAmounts(m[1:])
	if err != nil {
		return ZeroAmounts(schema), fmt.Errorf("%w: %s row: %v", ErrRowNotFound, keyword, err)
	}
	amounts, err := NewAmounts(schema, values[:len(values)-1], values[len(values)-1])
	if err != nil {
		return ZeroAmounts(schema), err
	}
	return amounts, nil
}

func buildLine(m lineMatch, schema Schema) (LineRecord, error) {
	kind, ok := ParseLineType(m.kind)
	if !ok {
		return LineRecord{}, fmt.Errorf("unknown line type %q", m.kind)
	}
	values, err := parseAmounts(m.tokens)
	if err != nil {
		return LineRecord{}, err
	}
	if len(values) == 0 {
		return LineRecord{}, ErrSchemaMismatch
	}
	amounts, err := NewAmounts(schema, values[:len(values)-1], values[len(values)-1])
	if err != nil {
		return LineRecord{}, err
	}
	return LineRecord{
		Phone:    m.phone,
		Label:    m.label,
		Type:     kind,
		Excluded: isExcluded(m.label),
		Amounts:  amounts,
	}, nil
}

func isExcluded(label string) bool {
	lower := strings.ToLower(label)
	for _, k := range ExcludeKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
