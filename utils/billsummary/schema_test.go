package billsummary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectSchemaMergesOneTimeCharges(t *testing.T) {
	text := "THIS BILL SUMMARY Line Type Plans Equipment Services One-time Charges Total"

	section, schema, err := DetectSchema(text)
	require.NoError(t, err)

	assert.Equal(t, text, section)
	assert.Equal(t,
		[]string{"Line Type", "Plans", "Equipment", "Services", "One-time charges", "Total"},
		schema.Columns())
	assert.Equal(t, []string{"plans", "equipment", "services", "one-time charges"}, schema.Keys())
	assert.Equal(t, 6, schema.Width())
}

func TestDetectSchemaWithoutOneTimeColumn(t *testing.T) {
	_, schema, err := DetectSchema("Intro THIS BILL SUMMARY Line Type Plans Equipment Services Total Totals $1.00")
	require.NoError(t, err)
	assert.Equal(t, []string{"Line Type", "Plans", "Equipment", "Services", "Total"}, schema.Columns())
}

func TestDetectSchemaDeterministic(t *testing.T) {
	text := Normalize(samplePage)
	_, first, err := DetectSchema(text)
	require.NoError(t, err)
	_, second, err := DetectSchema(text)
	require.NoError(t, err)
	assert.Equal(t, first.Columns(), second.Columns())
}

func TestDetectSchemaSectionMissing(t *testing.T) {
	_, _, err := DetectSchema("Line Type Plans Total")
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestDetectSchemaHeaderMissing(t *testing.T) {
	_, _, err := DetectSchema("Line Type Plans Total THIS BILL SUMMARY nothing here")
	assert.ErrorIs(t, err, ErrHeaderNotFound)
}

func TestNewSchemaRequiresCategory(t *testing.T) {
	_, err := NewSchema()
	assert.ErrorIs(t, err, ErrHeaderNotFound)
}
