package scraper

import (
	"strings"

	"github.com/playwright-community/playwright-go"
)

// Instagram markup details. These are expected to be brittle and live in one
// place so they can be swapped when the site changes.
const (
	// Alt text on genuine post photos starts with this; avatars and UI
	// chrome do not carry it.
	photoAltMarker = "Photo by"

	// Elements smaller than this on both axes are icons or avatars.
	minMediaDimension = 100

	postContainerSelector = "article"
)

// ExtractMedia pulls image and video references out of a rendered scope in
// document order. No dedup here; the walker dedups across slides.
func ExtractMedia(scope playwright.Locator) []MediaReference {
	var refs []MediaReference
	refs = append(refs, extractImages(scope)...)
	refs = append(refs, extractVideos(scope)...)
	return refs
}

func extractImages(scope playwright.Locator) []MediaReference {
	var refs []MediaReference

	imgs, err := scope.Locator("img").All()
	if err != nil {
		return nil
	}

	for _, img := range imgs {
		src, _ := img.GetAttribute("src")
		alt, _ := img.GetAttribute("alt")
		if !KeepImage(src, alt) {
			continue
		}

		// Dimensions are a secondary filter only. If the box is not
		// queryable we keep the element; absence of evidence is not
		// evidence of absence.
		if box, err := img.BoundingBox(); err == nil && box != nil {
			if box.Width < minMediaDimension || box.Height < minMediaDimension {
				continue
			}
		}

		refs = append(refs, MediaReference{URL: src, Kind: KindImage})
	}
	return refs
}

func extractVideos(scope playwright.Locator) []MediaReference {
	var refs []MediaReference

	vids, err := scope.Locator("video").All()
	if err != nil {
		return nil
	}

	for _, vid := range vids {
		src, _ := vid.GetAttribute("src")
		if src == "" {
			// Fall back to the first nested <source> with a usable src.
			sources, err := vid.Locator("source").All()
			if err == nil {
				for _, s := range sources {
					if nested, _ := s.GetAttribute("src"); nested != "" {
						src = nested
						break
					}
				}
			}
		}
		if src == "" {
			continue
		}

		// blob: handles are browser-local and not fetchable; those videos
		// are only recoverable through the network interceptor.
		if IsBlobURL(src) {
			continue
		}

		refs = append(refs, MediaReference{URL: src, Kind: KindVideo})
	}
	return refs
}

// KeepImage applies the content-marker rule: a resolvable src plus alt text
// carrying the photo marker prefix.
func KeepImage(src, alt string) bool {
	if src == "" || IsBlobURL(src) {
		return false
	}
	return strings.Contains(alt, photoAltMarker)
}

// IsBlobURL reports whether src is an ephemeral browser-local handle.
func IsBlobURL(src string) bool {
	return strings.HasPrefix(src, "blob:")
}

// postScope prefers the primary content container, falling back to the whole
// page body when the article element is missing.
func postScope(page playwright.Page) playwright.Locator {
	article := page.Locator(postContainerSelector).First()
	if count, err := article.Count(); err == nil && count > 0 {
		return article
	}
	return page.Locator("body")
}
