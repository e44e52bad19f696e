package billsummary

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `
T-Mobile   Statement for ALEX DOE
Page 2 of 6

THIS BILL SUMMARY
Line Type   Plans   Equipment   Services   One-time
Charges   Total
Totals $95.00 $30.00 $10.00 - $145.00
Account $40.00 - $5.00 - $45.00
(555) 123-4567  Alex
Pixel 8 Voice $20.00 $15.00 - - $35.00
(555) 234-5678 Sam iPhone 15 Voice $20.00 $15.00 $5.00 - $40.00
(555) 345-6789 Old number Voice $15.00 - - - $15.00
(555) 456-7890 Apple Watch Wearable $10.00 - - - $10.00
DETAILED CHARGES
`

func fourColumnSchema(t *testing.T) Schema {
	t.Helper()
	schema, err := NewSchema("Plans", "Equipment", "Services", "One-time charges")
	require.NoError(t, err)
	return schema
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func amounts(t *testing.T, schema Schema, total string, values ...string) Amounts {
	t.Helper()
	vals := make([]decimal.Decimal, len(values))
	for i, v := range values {
		vals[i] = dec(v)
	}
	a, err := NewAmounts(schema, vals, dec(total))
	require.NoError(t, err)
	return a
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}
