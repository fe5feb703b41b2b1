// Package htmltomarkdown implements markup preprocessing for language-model
// input on top of html-to-markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/lpforge/lpextract"
)

// Converter turns page HTML into Markdown. The table plugin matters here:
// spec sheets on product pages are usually tables, and flattening them to
// prose loses the attribute/value pairing the model extracts from.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", lpextract.Errorf(lpextract.EINVALID, "empty HTML input")
	}

	return c.conv.ConvertString(html)
}
