package lpextract

import (
	"context"
	"strings"
	"time"
)

// FieldType describes the shape of a schema field value.
type FieldType string

// Supported schema field types.
const (
	FieldString     FieldType = "string"
	FieldStringList FieldType = "string_list"
)

// SchemaField declares one field the structured extraction should produce.
type SchemaField struct {
	Name        string
	Type        FieldType
	Description string
}

// Schema is an ordered list of fields for structured extraction.
type Schema []SchemaField

// DefaultSchema returns the standard landing-page extraction schema.
func DefaultSchema() Schema {
	return Schema{
		{Name: "product_name", Type: FieldString, Description: "Main product or service name"},
		{Name: "product_description", Type: FieldString, Description: "Detailed description of the product/service"},
		{Name: "key_features", Type: FieldStringList, Description: "List of main features or benefits"},
		{Name: "price_info", Type: FieldString, Description: "Price, cost, or pricing information"},
		{Name: "brand_name", Type: FieldString, Description: "Brand or company name"},
		{Name: "category", Type: FieldString, Description: "Product category or type"},
		{Name: "target_audience", Type: FieldString, Description: "Who this product/service is for"},
		{Name: "unique_selling_points", Type: FieldString, Description: "What makes this special or different"},
		{Name: "call_to_action", Type: FieldString, Description: "Main action the page wants users to take"},
		{Name: "availability", Type: FieldString, Description: "Stock status, availability information"},
		{Name: "reviews_sentiment", Type: FieldString, Description: "General sentiment from reviews if present"},
	}
}

// Fields maps schema field names to extracted values. String fields hold
// string values; list fields hold []string.
type Fields map[string]any

// NonEmpty reports whether the named field holds a usable value.
func (f Fields) NonEmpty(name string) bool {
	return fieldPopulated(f[name])
}

// String returns the field as a string, joining list values with ", ".
func (f Fields) String(name string) string {
	switch v := f[name].(type) {
	case string:
		return strings.TrimSpace(v)
	case []string:
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// fieldPopulated reports whether a raw field value carries content.
// Mirrors the notion of "non-empty" used by the confidence score: empty
// strings, empty lists, and nil are all unpopulated.
func fieldPopulated(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		s := strings.TrimSpace(val)
		return s != "" && s != "null"
	case []string:
		return len(val) > 0
	case []any:
		return len(val) > 0
	default:
		return true
	}
}

// StructuredRecord is the outcome of one language-model extraction call.
type StructuredRecord struct {
	Fields      Fields    `json:"fields"`
	Confidence  float64   `json:"confidence"`
	Model       string    `json:"modelUsed"`
	ExtractedAt time.Time `json:"extractedAt"`
}

// EmptyRecord returns the degraded record used when the model call fails:
// no fields, confidence zero. The pipeline continues with the non-LLM
// extraction result.
func EmptyRecord(model string) *StructuredRecord {
	return &StructuredRecord{
		Fields:      Fields{},
		Confidence:  0,
		Model:       model,
		ExtractedAt: time.Now().UTC(),
	}
}

// StructuredExtractor sends preprocessed text to a language model and
// parses the schema-typed response. Call failures and malformed responses
// degrade to EmptyRecord; implementations never surface them as errors.
type StructuredExtractor interface {
	ExtractStructured(ctx context.Context, text string, pageURL string, schema Schema) *StructuredRecord
}
