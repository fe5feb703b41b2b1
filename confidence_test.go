package lpextract_test

import (
	"testing"

	"github.com/lpforge/lpextract"
	"github.com/stretchr/testify/assert"
)

func TestConfidence_EmptyFields(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, lpextract.Confidence(lpextract.Fields{}))
	assert.Equal(t, 0.0, lpextract.Confidence(nil))
}

func TestConfidence_AllPopulated(t *testing.T) {
	t.Parallel()

	fields := lpextract.Fields{
		"product_name":        "Wireless Headphones X1",
		"product_description": "Over-ear wireless headphones with active noise cancellation.",
		"key_features":        []string{"ANC", "40h battery"},
		"brand_name":          "Audiomax",
	}

	// All fields populated and every quality signal present.
	assert.InDelta(t, 1.0, lpextract.Confidence(fields), 0.0001)
}

func TestConfidence_PartiallyPopulated(t *testing.T) {
	t.Parallel()

	fields := lpextract.Fields{
		"product_name":        "Widget",
		"product_description": "short",
		"key_features":        nil,
		"brand_name":          nil,
	}

	// completeness 2/4, quality 0.25 for the name only.
	assert.InDelta(t, 0.5*0.7+0.25*0.3, lpextract.Confidence(fields), 0.0001)
}

func TestConfidence_DescriptionLengthGate(t *testing.T) {
	t.Parallel()

	short := lpextract.Fields{"product_description": "tiny"}
	long := lpextract.Fields{"product_description": "a description well over twenty characters"}

	assert.Less(t, lpextract.Confidence(short), lpextract.Confidence(long))
}

func TestConfidence_CategoryCountsForBrandSignal(t *testing.T) {
	t.Parallel()

	brand := lpextract.Confidence(lpextract.Fields{"brand_name": "Acme"})
	category := lpextract.Confidence(lpextract.Fields{"category": "electronics"})

	assert.Equal(t, brand, category)
}

func TestConfidence_BoundedByOne(t *testing.T) {
	t.Parallel()

	fields := lpextract.Fields{}
	for _, f := range lpextract.DefaultSchema() {
		if f.Type == lpextract.FieldStringList {
			fields[f.Name] = []string{"value one", "value two"}
			continue
		}
		fields[f.Name] = "a populated value over twenty characters long"
	}

	score := lpextract.Confidence(fields)
	assert.LessOrEqual(t, score, 1.0)
	assert.GreaterOrEqual(t, score, lpextract.UsableConfidence)
}
