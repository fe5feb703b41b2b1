package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lpforge/lpextract"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for structured extraction.
const DefaultModel = "gemini-2.5-flash-lite"

// maxPromptTokens bounds the prompt handed to the model. Text beyond the
// budget is trimmed proportionally before the call.
const maxPromptTokens = 28000

// Ensure Extractor implements lpextract.StructuredExtractor at compile time.
var _ lpextract.StructuredExtractor = (*Extractor)(nil)

// Extractor implements structured landing-page extraction using Google
// Gemini. Model failures never propagate: every degradation path returns an
// empty record with confidence zero so the pipeline can continue with the
// non-LLM result.
type Extractor struct {
	client  *genai.Client
	model   string
	counter lpextract.TokenCounter
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithModel overrides the Gemini model.
func WithModel(model string) Option {
	return func(e *Extractor) {
		e.model = model
	}
}

// WithTokenCounter enables the prompt size guard.
func WithTokenCounter(counter lpextract.TokenCounter) Option {
	return func(e *Extractor) {
		e.counter = counter
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(client *genai.Client, opts ...Option) *Extractor {
	e := &Extractor{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractStructured sends preprocessed page text to Gemini and parses the
// schema-typed JSON response. It never returns an error.
func (e *Extractor) ExtractStructured(ctx context.Context, text string, pageURL string, schema lpextract.Schema) *lpextract.StructuredRecord {
	if strings.TrimSpace(text) == "" || len(schema) == 0 {
		return lpextract.EmptyRecord(e.model)
	}

	text = e.guardPromptSize(ctx, text)

	result, err := e.client.Models.GenerateContent(ctx, e.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(text, pageURL)}},
		}},
		BuildConfig(schema),
	)
	if err != nil || result == nil {
		return lpextract.EmptyRecord(e.model)
	}

	fields, err := parseFields(result.Text(), schema)
	if err != nil {
		return lpextract.EmptyRecord(e.model)
	}

	return &lpextract.StructuredRecord{
		Fields:      fields,
		Confidence:  lpextract.Confidence(fields),
		Model:       e.model,
		ExtractedAt: time.Now().UTC(),
	}
}

// guardPromptSize trims text that would exceed the prompt token budget.
// Counting failures leave the text untouched.
func (e *Extractor) guardPromptSize(ctx context.Context, text string) string {
	if e.counter == nil {
		return text
	}
	count, err := e.counter.CountTokens(ctx, text)
	if err != nil || count <= maxPromptTokens {
		return text
	}
	keep := len(text) * maxPromptTokens / count
	if keep < 1 {
		keep = 1
	}
	return text[:keep]
}

// BuildConfig returns the GenerateContentConfig for structured extraction:
// JSON output constrained to the schema, low temperature for consistency.
func BuildConfig(schema lpextract.Schema) *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a product information extractor. Extract structured data from landing page content. Use only information present in the provided text. Set a field to null when the page does not state it; never invent values.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(schema),
	}
}

// BuildUserPrompt builds the user prompt containing the page URL and text.
func BuildUserPrompt(text, pageURL string) string {
	var sb strings.Builder
	sb.WriteString("<page>\n")
	fmt.Fprintf(&sb, "<url>%s</url>\n", pageURL)
	fmt.Fprintf(&sb, "<content>%s</content>\n", text)
	sb.WriteString("</page>\n\n")
	sb.WriteString("Extract the product information from this landing page.")
	return sb.String()
}

// responseSchema converts an extraction schema into the genai response
// schema that constrains the model's JSON output.
func responseSchema(schema lpextract.Schema) *genai.Schema {
	properties := make(map[string]*genai.Schema, len(schema))
	for _, field := range schema {
		switch field.Type {
		case lpextract.FieldStringList:
			properties[field.Name] = &genai.Schema{
				Type:        genai.TypeArray,
				Description: field.Description,
				Items:       &genai.Schema{Type: genai.TypeString},
				Nullable:    genai.Ptr(true),
			}
		default:
			properties[field.Name] = &genai.Schema{
				Type:        genai.TypeString,
				Description: field.Description,
				Nullable:    genai.Ptr(true),
			}
		}
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: properties,
	}
}

// parseFields decodes the model's JSON response and keeps only declared
// schema fields with type-correct values.
func parseFields(response string, schema lpextract.Schema) (lpextract.Fields, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(response)), &raw); err != nil {
		return nil, err
	}

	fields := make(lpextract.Fields, len(schema))
	for _, field := range schema {
		value, ok := raw[field.Name]
		if !ok || value == nil {
			fields[field.Name] = nil
			continue
		}
		switch field.Type {
		case lpextract.FieldStringList:
			fields[field.Name] = stringList(value)
		default:
			if s, ok := value.(string); ok {
				fields[field.Name] = strings.TrimSpace(s)
			} else {
				fields[field.Name] = nil
			}
		}
	}
	return fields, nil
}

// stringList coerces a decoded JSON value into []string, dropping non-string
// and blank entries.
func stringList(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	list := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			list = append(list, strings.TrimSpace(s))
		}
	}
	if len(list) == 0 {
		return nil
	}
	return list
}
