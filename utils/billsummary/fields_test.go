package billsummary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldMatchers(t *testing.T) {
	tests := []struct {
		field Field
		token string
		match bool
	}{
		{PhoneField, "(555) 123-4567", true},
		{PhoneField, "(555)123-4567", true},
		{PhoneField, "555-123-4567", false},
		{AmountField, "$20.00", true},
		{AmountField, "$1,234.56", true},
		{AmountField, "-", true},
		{AmountField, "-$5.00", false},
		{AmountField, "$", false},
		{SignedAmountField, "-$5.00", true},
		{SignedAmountField, "$5", true},
		{SignedAmountField, "-", true},
		{SignedAmountField, "5.00", false},
		{LineTypeField, "Voice", true},
		{LineTypeField, "voice", true},
		{LineTypeField, "Mobile Internet", true},
		{LineTypeField, "Phone", false},
	}

	for _, tt := range tests {
		t.Run(tt.field.Name+" "+tt.token, func(t *testing.T) {
			assert.Equal(t, tt.match, tt.field.Matches(tt.token))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"$20.00", "20"},
		{"-$5.25", "-5.25"},
		{"$1,234.56", "1234.56"},
		{"-", "0"},
		{"", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			require.NoError(t, err)
			assertAmount(t, tt.expected, got)
		})
	}

	_, err := ParseAmount("$1.2.3")
	assert.Error(t, err)
}

func TestParseLineType(t *testing.T) {
	got, ok := ParseLineType("mobile  internet")
	assert.True(t, ok)
	assert.Equal(t, LineTypeMobileInternet, got)

	got, ok = ParseLineType("VOICE")
	assert.True(t, ok)
	assert.Equal(t, LineTypeVoice, got)

	_, ok = ParseLineType("Landline")
	assert.False(t, ok)
}
