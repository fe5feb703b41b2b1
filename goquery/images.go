package goquery

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lpforge/lpextract"
)

// extractImages collects image candidates from the document, applies the
// size and visibility heuristics, and returns them sorted by natural area
// descending. The hero image is the first entry.
//
// Natural and display dimensions come from the data attributes the browser
// fetcher stamps before capture; on the HTTP path they fall back to plain
// width/height attributes.
func extractImages(doc *goquery.Document, pageURL string) []lpextract.ImageCandidate {
	base, _ := url.Parse(pageURL)

	var candidates []lpextract.ImageCandidate
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		candidate, ok := imageCandidate(sel, base)
		if !ok {
			return
		}
		candidates = append(candidates, candidate)
	})

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Area > candidates[j].Area
	})
	return candidates
}

func imageCandidate(sel *goquery.Selection, base *url.URL) (lpextract.ImageCandidate, bool) {
	src := strings.TrimSpace(sel.AttrOr("src", ""))
	if src == "" {
		src = strings.TrimSpace(sel.AttrOr("data-src", ""))
	}
	if src == "" || strings.HasPrefix(src, "data:") {
		return lpextract.ImageCandidate{}, false
	}

	resolved, ok := absoluteURL(src, base)
	if !ok {
		return lpextract.ImageCandidate{}, false
	}

	class := sel.AttrOr("class", "")
	if hintsIconOrLogo(class) || hintsIconOrLogo(resolved) {
		return lpextract.ImageCandidate{}, false
	}

	naturalW := intAttr(sel, "data-natural-width", "width")
	naturalH := intAttr(sel, "data-natural-height", "height")
	displayW := intAttr(sel, "data-display-width", "")
	displayH := intAttr(sel, "data-display-height", "")
	visible := sel.AttrOr("data-visible", "") == "true" || (displayW > 0 && displayH > 0)

	area := naturalW * naturalH
	if area < lpextract.MinImageArea {
		return lpextract.ImageCandidate{}, false
	}

	// Accept lazy-loaded images that report natural dimensions but have
	// not rendered yet.
	if !visible && (naturalW == 0 || naturalH == 0) {
		return lpextract.ImageCandidate{}, false
	}

	return lpextract.ImageCandidate{
		SourceURL:     resolved,
		AltText:       sel.AttrOr("alt", ""),
		NaturalWidth:  naturalW,
		NaturalHeight: naturalH,
		DisplayWidth:  displayW,
		DisplayHeight: displayH,
		Area:          area,
		Visible:       visible,
		ClassHints:    class,
	}, true
}

// absoluteURL resolves src against the page URL and requires an http(s)
// result. Relative sources without a usable base are rejected.
func absoluteURL(src string, base *url.URL) (string, bool) {
	ref, err := url.Parse(src)
	if err != nil {
		return "", false
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if ref.Scheme != "http" && ref.Scheme != "https" {
		return "", false
	}
	return ref.String(), true
}

func hintsIconOrLogo(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "icon") || strings.Contains(lower, "logo")
}

// intAttr reads the primary attribute, falling back to the secondary.
func intAttr(sel *goquery.Selection, primary, fallback string) int {
	for _, name := range []string{primary, fallback} {
		if name == "" {
			continue
		}
		if v, ok := sel.Attr(name); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 0 {
				return n
			}
		}
	}
	return 0
}
