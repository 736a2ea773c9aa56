package poster

import (
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
)

// ResolveImageURL visits an HTML page and extracts the poster image URL
// from its og:image (or twitter:image) meta tag. Movie database pages are
// a common source of poster links, and they serve HTML, not the image.
// The visit is bounded by timeout so a stalled page cannot hang the run.
func ResolveImageURL(ctx context.Context, pageURL string, timeout time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := colly.NewCollector(colly.AllowURLRevisit())
	if timeout > 0 {
		c.SetRequestTimeout(timeout)
	}

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", userAgent)
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	})

	var imageURL string
	c.OnHTML("head", func(e *colly.HTMLElement) {
		e.DOM.Find("meta[property='og:image'], meta[name='twitter:image']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			content, exists := s.Attr("content")
			if exists && content != "" {
				imageURL = e.Request.AbsoluteURL(content)
				return false
			}
			return true
		})
	})

	if err := c.Visit(pageURL); err != nil {
		return "", fmt.Errorf("failed to visit poster page %s: %w", pageURL, err)
	}

	if imageURL == "" {
		return "", fmt.Errorf("no og:image meta tag found at %s", pageURL)
	}
	return imageURL, nil
}
