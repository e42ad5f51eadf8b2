package scraper

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/ZacharyKim7/Instagram-Downloader/internal/session"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// BrowsingContext owns one live browser for the duration of a single request:
// the playwright driver, a browser context with zero or one restored session,
// one page, and the interceptor observing every request the page makes.
type BrowsingContext struct {
	pw          *playwright.Playwright
	browser     playwright.Browser
	context     playwright.BrowserContext
	page        playwright.Page
	interceptor *Interceptor
}

// NewBrowsingContext launches headless Chromium and registers the network
// interceptor before any navigation happens, so early media requests are not
// missed.
func NewBrowsingContext() (*BrowsingContext, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not launch playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(browserUserAgent),
		Viewport: &playwright.Size{
			Width:  1920,
			Height: 1080,
		},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("could not create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("could not create page: %w", err)
	}

	page.SetDefaultTimeout(15_000)

	// Stealth script before navigation
	page.AddInitScript(playwright.Script{
		Content: playwright.String(`
			Object.defineProperty(navigator, 'webdriver', {
				get: () => undefined,
			});
			Object.defineProperty(navigator, 'languages', {
				get: () => ['en-US', 'en'],
			});
			window.chrome = { runtime: {} };
		`),
	})

	interceptor := NewInterceptor()
	page.OnRequest(func(request playwright.Request) {
		interceptor.Observe(request.URL())
	})

	return &BrowsingContext{
		pw:          pw,
		browser:     browser,
		context:     context,
		page:        page,
		interceptor: interceptor,
	}, nil
}

func (bc *BrowsingContext) Page() playwright.Page {
	return bc.page
}

func (bc *BrowsingContext) Interceptor() *Interceptor {
	return bc.interceptor
}

// RestoreSession imports persisted cookies into the context. Call before
// navigating; cookies applied afterwards do not cover the first request.
func (bc *BrowsingContext) RestoreSession(state session.State) error {
	if len(state.Cookies) == 0 {
		return nil
	}

	cookies := make([]playwright.OptionalCookie, 0, len(state.Cookies))
	for _, c := range state.Cookies {
		cookie := playwright.OptionalCookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   playwright.String(c.Domain),
			Path:     playwright.String(c.Path),
			HttpOnly: playwright.Bool(c.HttpOnly),
			Secure:   playwright.Bool(c.Secure),
		}
		if c.Expires != 0 {
			cookie.Expires = playwright.Float(c.Expires)
		}
		cookies = append(cookies, cookie)
	}

	if err := bc.context.AddCookies(cookies); err != nil {
		return fmt.Errorf("could not import cookies: %w", err)
	}
	return nil
}

// ExportSession reads the context's current cookies for persistence.
func (bc *BrowsingContext) ExportSession() (session.State, error) {
	cookies, err := bc.context.Cookies()
	if err != nil {
		return session.State{}, fmt.Errorf("could not read cookies: %w", err)
	}

	state := session.State{Cookies: make([]session.Cookie, 0, len(cookies))}
	for _, c := range cookies {
		state.Cookies = append(state.Cookies, session.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  c.Expires,
			HttpOnly: c.HttpOnly,
			Secure:   c.Secure,
		})
	}
	return state, nil
}

// Close tears the whole stack down. Safe on every exit path; errors from the
// underlying driver are ignored because there is nothing left to do with them.
func (bc *BrowsingContext) Close() {
	if bc.browser != nil {
		bc.browser.Close()
	}
	if bc.pw != nil {
		bc.pw.Stop()
	}
}
