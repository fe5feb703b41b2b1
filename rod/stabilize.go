package rod

import (
	"context"
	"time"

	"github.com/go-rod/rod"
)

// DefaultScrollAttempts bounds the scroll-and-wait cycles used to trigger
// lazy-loaded and infinite-scroll content.
const DefaultScrollAttempts = 2

// scrollInterval is the fixed wait between a scroll and the height
// re-measurement.
const scrollInterval = 1 * time.Second

// stabilize triggers lazy-loaded content with bounded scroll-and-wait
// cycles until the page height converges or the attempt budget runs out.
// Convergence is the success criterion; the attempt budget is the escape
// hatch. The page is always scrolled back to the top so image visibility
// checks see a consistent layout.
func stabilize(ctx context.Context, page *rod.Page, attempts int) error {
	for i := 0; i < attempts; i++ {
		prev, err := pageHeight(page)
		if err != nil {
			return err
		}

		if _, err := page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`); err != nil {
			return err
		}
		if err := wait(ctx, scrollInterval); err != nil {
			return err
		}

		next, err := pageHeight(page)
		if err != nil {
			return err
		}
		if next == prev {
			break
		}
	}

	if _, err := page.Eval(`() => window.scrollTo(0, 0)`); err != nil {
		return err
	}
	return wait(ctx, 300*time.Millisecond)
}

func pageHeight(page *rod.Page) (int, error) {
	res, err := page.Eval(`() => document.body.scrollHeight`)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

// stampImageMetrics writes each image's natural and rendered dimensions
// plus a visibility flag into data attributes, so the markup-level
// extractor can rank candidates without a live page.
func stampImageMetrics(page *rod.Page) error {
	_, err := page.Eval(`() => {
		for (const img of document.querySelectorAll('img')) {
			const rect = img.getBoundingClientRect();
			img.setAttribute('data-natural-width', String(img.naturalWidth));
			img.setAttribute('data-natural-height', String(img.naturalHeight));
			img.setAttribute('data-display-width', String(Math.round(rect.width)));
			img.setAttribute('data-display-height', String(Math.round(rect.height)));
			img.setAttribute('data-visible', rect.width > 0 && rect.height > 0 ? 'true' : 'false');
			if (img.src) { img.setAttribute('src', img.src); }
		}
	}`)
	return err
}
