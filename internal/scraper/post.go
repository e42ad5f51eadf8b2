package scraper

import (
	"github.com/playwright-community/playwright-go"
)

// Next-control candidates for carousel posts, ordered by reliability.
var nextControlSelectors = []string{
	"button[aria-label='Next']",
	"div[role='button'][aria-label='Next']",
	"button._afxw",
}

// slideRenderDelay gives the next slide time to swap in after a click.
const slideRenderDelay = 800

// playwrightPost adapts a live page to the walker's PostView.
type playwrightPost struct {
	page playwright.Page
}

func newPostView(page playwright.Page) *playwrightPost {
	return &playwrightPost{page: page}
}

func (p *playwrightPost) Extract() []MediaReference {
	return ExtractMedia(postScope(p.page))
}

// HasNextControl probes every next-control candidate. A match that is merely
// attached still counts; presence is what marks the post as a carousel.
func (p *playwrightPost) HasNextControl() bool {
	for _, selector := range nextControlSelectors {
		count, err := p.page.Locator(selector).Count()
		if err == nil && count > 0 {
			return true
		}
	}
	return false
}

// Advance clicks the first next control that is both present and
// interactable, then pauses for the slide to render. Returns false when no
// such control exists or the click fails, ending the traversal.
func (p *playwrightPost) Advance() bool {
	for _, selector := range nextControlSelectors {
		control := p.page.Locator(selector).First()

		count, err := control.Count()
		if err != nil || count == 0 {
			continue
		}
		visible, err := control.IsVisible()
		if err != nil || !visible {
			continue
		}

		if err := control.Click(playwright.LocatorClickOptions{
			Timeout: playwright.Float(selectorProbeTimeout),
		}); err != nil {
			return false
		}
		p.page.WaitForTimeout(slideRenderDelay)
		return true
	}
	return false
}
