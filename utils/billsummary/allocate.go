package billsummary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// AllocationPolicy selects how a voice line's own charges are counted before
// the shared account and tax amounts are added.
type AllocationPolicy string

const (
	// PolicyComponents bills a voice line its equipment and services.
	PolicyComponents AllocationPolicy = "components"
	// PolicyDeclaredTotal bills a voice line its declared total minus its
	// plan charge, which keeps one-time charges on the line.
	PolicyDeclaredTotal AllocationPolicy = "declared-total"
)

// ParseAllocationPolicy accepts a policy name; empty selects the default.
func ParseAllocationPolicy(s string) (AllocationPolicy, error) {
	switch AllocationPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyComponents:
		return PolicyComponents, nil
	case PolicyDeclaredTotal:
		return PolicyDeclaredTotal, nil
	default:
		return "", fmt.Errorf("unknown allocation policy %q (want %s or %s)", s, PolicyComponents, PolicyDeclaredTotal)
	}
}

// FinalLineSummary is the billed cost of one non-excluded line.
type FinalLineSummary struct {
	Phone      string
	Type       LineType
	Cost       decimal.Decimal
	FinalTotal decimal.Decimal
}

// Shares are the per-voice-line portions of account charges and voice tax.
type Shares struct {
	Account decimal.Decimal
	Tax     decimal.Decimal
}

// SharesFor splits the account total and tax pool evenly over voiceLines.
// Both shares are zero when there are no eligible voice lines.
func SharesFor(account AccountRecord, taxPool decimal.Decimal, voiceLines int) Shares {
	if voiceLines <= 0 {
		return Shares{Account: decimal.Zero, Tax: decimal.Zero}
	}
	n := decimal.NewFromInt(int64(voiceLines))
	return Shares{
		Account: account.Total().Div(n),
		Tax:     taxPool.Div(n),
	}
}

type Allocator struct {
	Policy AllocationPolicy
}

func NewAllocator(policy AllocationPolicy) *Allocator {
	return &Allocator{Policy: policy}
}

// Allocate computes the final cost of every non-excluded line, in document
// order.
func (a *Allocator) Allocate(account AccountRecord, taxPool decimal.Decimal, voiceLines int, lines []LineRecord) []FinalLineSummary {
	shares := SharesFor(account, taxPool, voiceLines)

	out := make([]FinalLineSummary, 0, len(lines))
	for _, line := range lines {
		if line.Excluded {
			continue
		}
		cost := line.Total()
		if line.IsVoice() {
			cost = a.ownCharges(line).Add(shares.Account).Add(shares.Tax)
		}
		out = append(out, FinalLineSummary{
			Phone:      line.Phone,
			Type:       line.Type,
			Cost:       cost.Round(2),
			FinalTotal: cost.Round(3),
		})
	}
	return out
}

func (a *Allocator) ownCharges(line LineRecord) decimal.Decimal {
	if a.Policy == PolicyDeclaredTotal {
		return line.Total().Sub(line.Plans())
	}
	return line.Equipment().Add(line.Services())
}

// AllocateExtraction runs Allocate over an extraction's records.
func (a *Allocator) AllocateExtraction(ex *Extraction) []FinalLineSummary {
	return a.Allocate(ex.Account, ex.VoiceTaxPool, ex.VoiceLines, ex.Lines)
}

// Reconciliation compares the summed final totals with the bill's own total.
type Reconciliation struct {
	Computed decimal.Decimal
	Declared decimal.Decimal
	Matches  bool
}

// Reconcile sums FinalTotal over lines and compares it, at cents precision,
// with the declared grand total. A mismatch is returned as an error wrapping
// ErrGrandTotalMismatch alongside the full result.
func Reconcile(lines []FinalLineSummary, totals TotalsRecord) (Reconciliation, error) {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.FinalTotal)
	}
	r := Reconciliation{
		Computed: sum,
		Declared: totals.Total(),
	}
	r.Matches = sum.Round(2).Equal(r.Declared.Round(2))
	if !r.Matches {
		return r, fmt.Errorf("%w: computed $%s, bill states $%s", ErrGrandTotalMismatch, sum.StringFixed(2), r.Declared.StringFixed(2))
	}
	return r, nil
}

// LineGroup is every summary of one line type.
type LineGroup struct {
	Type     LineType
	Lines    []FinalLineSummary
	Subtotal decimal.Decimal
}

// GroupByType groups lines by type name, then orders each group by phone.
func GroupByType(lines []FinalLineSummary) []LineGroup {
	sorted := append([]FinalLineSummary(nil), lines...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Type != sorted[j].Type {
			return sorted[i].Type < sorted[j].Type
		}
		return sorted[i].Phone < sorted[j].Phone
	})

	var groups []LineGroup
	for _, l := range sorted {
		if len(groups) == 0 || groups[len(groups)-1].Type != l.Type {
			groups = append(groups, LineGroup{Type: l.Type, Subtotal: decimal.Zero})
		}
		g := &groups[len(groups)-1]
		g.Lines = append(g.Lines, l)
		g.Subtotal = g.Subtotal.Add(l.FinalTotal)
	}
	return groups
}
