package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// metaKeys maps metadata map keys to the meta name/property attributes
// they are read from.
var metaKeys = map[string]string{
	"description":         "description",
	"keywords":            "keywords",
	"author":              "author",
	"og_title":            "og:title",
	"og_description":      "og:description",
	"og_type":             "og:type",
	"og_image":            "og:image",
	"twitter_title":       "twitter:title",
	"twitter_description": "twitter:description",
	"twitter_image":       "twitter:image",
}

// extractMetadata builds the page metadata map: title, meta descriptions,
// Open Graph and Twitter Card values, canonical URL, language, and joined
// h1 text. Keys are always present so cached results pass structural
// validation; absent values are empty strings.
func extractMetadata(doc *goquery.Document) map[string]string {
	metadata := map[string]string{
		"title":       strings.TrimSpace(doc.Find("title").First().Text()),
		"canonical":   doc.Find(`link[rel="canonical"]`).First().AttrOr("href", ""),
		"lang":        doc.Find("html").First().AttrOr("lang", ""),
		"description": "",
	}

	for key, name := range metaKeys {
		metadata[key] = metaContent(doc, name)
	}

	var h1s []string
	doc.Find("h1").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			h1s = append(h1s, text)
		}
	})
	metadata["h1_text"] = strings.Join(h1s, " | ")

	return metadata
}

// metaContent reads a meta tag's content by name or property attribute.
func metaContent(doc *goquery.Document, name string) string {
	selector := `meta[name="` + name + `"], meta[property="` + name + `"]`
	return strings.TrimSpace(doc.Find(selector).First().AttrOr("content", ""))
}
