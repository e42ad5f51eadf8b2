package scraper

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"
)

// staticFallback parses the rendered HTML for media metadata when the live
// DOM yielded nothing. Public posts expose og: tags and an ld+json block even
// when the interactive UI is withheld.
func (s *Scraper) staticFallback(page playwright.Page) []MediaReference {
	content, err := page.Content()
	if err != nil {
		return nil
	}

	refs := ExtractFromHTML(content)
	if len(refs) > 0 {
		s.log.Debug().Int("media", len(refs)).Msg("static fallback recovered media from page metadata")
	}
	return refs
}

// ExtractFromHTML pulls media references out of raw post HTML via og: meta
// tags and application/ld+json script blocks.
func ExtractFromHTML(content string) []MediaReference {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil
	}

	var refs []MediaReference

	if v, ok := doc.Find("meta[property='og:video']").Attr("content"); ok && v != "" {
		refs = append(refs, MediaReference{URL: v, Kind: KindVideo})
	}
	if img, ok := doc.Find("meta[property='og:image']").Attr("content"); ok && img != "" {
		refs = append(refs, MediaReference{URL: img, Kind: KindImage})
	}

	doc.Find("script[type='application/ld+json']").Each(func(_ int, sel *goquery.Selection) {
		var data map[string]interface{}
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			return
		}
		if contentURL, ok := data["contentUrl"].(string); ok && contentURL != "" {
			kind := KindVideo
			if t, _ := data["@type"].(string); strings.EqualFold(t, "ImageObject") {
				kind = KindImage
			}
			refs = append(refs, MediaReference{URL: contentURL, Kind: kind})
		}
	})

	return refs
}
