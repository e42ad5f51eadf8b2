package scraper

import (
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog"
)

const (
	instagramLoginURL = "https://www.instagram.com/accounts/login/"
	loginPathMarker   = "/accounts/login"
	challengePath     = "/challenge"

	// Per-strategy probe timeout while hunting for login inputs.
	selectorProbeTimeout = 3_000
	loginSettleTimeout   = 10 * time.Second
)

// Ordered selector strategies; the first that matches wins. Instagram swaps
// markup between experiments so each input gets several candidates.
var (
	usernameSelectors = []string{
		"input[name='username']",
		"input[aria-label='Phone number, username, or email']",
		"input[autocomplete='username']",
	}
	passwordSelectors = []string{
		"input[name='password']",
		"input[aria-label='Password']",
		"input[autocomplete='current-password']",
	}
	submitSelectors = []string{
		"button[type='submit']",
		"button:has-text('Log in')",
		"div[role='button']:has-text('Log in')",
	}
	dismissSelectors = []string{
		"button:has-text('Not Now')",
		"button:has-text('Not now')",
		"div[role='button']:has-text('Not Now')",
	}
	loginErrorSelectors = []string{
		"#slfErrorAlert",
		"p[data-testid='login-error-message']",
		"div[role='alert']",
	}
	loggedInSelectors = []string{
		"svg[aria-label='Home']",
		"a[href='/direct/inbox/']",
	}
)

// Authenticator drives the interactive Instagram login flow.
type Authenticator struct {
	username string
	password string
	log      zerolog.Logger
}

func NewAuthenticator(username, password string, log zerolog.Logger) *Authenticator {
	return &Authenticator{username: username, password: password, log: log}
}

// Login walks the login UI and reports whether the context ended up
// authenticated. Empty credentials fail immediately without navigating; that
// is the normal "proceed unauthenticated" path, not an error. Faults during
// the flow also report failure rather than propagating, because the caller
// can still try the post without a session.
func (a *Authenticator) Login(bc *BrowsingContext) bool {
	if a.username == "" || a.password == "" {
		return false
	}

	page := bc.Page()

	if _, err := page.Goto(instagramLoginURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(30_000),
	}); err != nil {
		a.log.Warn().Err(err).Msg("login page navigation failed")
		return false
	}

	usernameInput, ok := firstMatching(page, usernameSelectors)
	if !ok {
		a.log.Warn().Msg("no username input found on login page")
		return false
	}
	passwordInput, ok := firstMatching(page, passwordSelectors)
	if !ok {
		a.log.Warn().Msg("no password input found on login page")
		return false
	}

	// Human-paced character entry to reduce bot-detection risk.
	typeOpts := playwright.LocatorPressSequentiallyOptions{Delay: playwright.Float(90)}
	if err := usernameInput.PressSequentially(a.username, typeOpts); err != nil {
		a.log.Warn().Err(err).Msg("could not enter username")
		return false
	}
	if err := passwordInput.PressSequentially(a.password, typeOpts); err != nil {
		a.log.Warn().Err(err).Msg("could not enter password")
		return false
	}

	submit, ok := firstMatching(page, submitSelectors)
	if !ok {
		a.log.Warn().Msg("no login submit control found")
		return false
	}
	if err := submit.Click(); err != nil {
		a.log.Warn().Err(err).Msg("could not click login submit")
		return false
	}

	// Wait for navigation away from the login path. Timing out here is
	// inconclusive, not fatal; the combined checks below decide.
	waitForURLChange(page, loginPathMarker, loginSettleTimeout)

	a.dismissInterstitials(page)

	return a.loggedIn(page)
}

// dismissInterstitials clears the optional "save your login info" and
// "turn on notifications" dialogs. Absence of either is not an error.
func (a *Authenticator) dismissInterstitials(page playwright.Page) {
	for attempt := 0; attempt < 2; attempt++ {
		dismiss, ok := firstMatching(page, dismissSelectors)
		if !ok {
			return
		}
		if err := dismiss.Click(); err != nil {
			return
		}
		page.WaitForTimeout(1_000)
	}
}

// loggedIn combines several signals; any one alone gives false positives on
// interstitial redirects.
func (a *Authenticator) loggedIn(page playwright.Page) bool {
	current := page.URL()

	if strings.Contains(current, loginPathMarker) {
		return false
	}
	if _, found := firstMatching(page, loginErrorSelectors); found {
		return false
	}
	if _, found := firstMatching(page, loggedInSelectors); found {
		return true
	}
	return !strings.Contains(current, challengePath)
}

// firstMatching probes selectors in order and returns the first locator
// present on the page, visible or not, within a short per-strategy timeout.
func firstMatching(page playwright.Page, selectors []string) (playwright.Locator, bool) {
	for _, selector := range selectors {
		locator := page.Locator(selector).First()
		if err := locator.WaitFor(playwright.LocatorWaitForOptions{
			State:   playwright.WaitForSelectorStateAttached,
			Timeout: playwright.Float(selectorProbeTimeout),
		}); err == nil {
			return locator, true
		}
	}
	return nil, false
}

// waitForURLChange polls until the URL no longer contains marker or the
// deadline passes.
func waitForURLChange(page playwright.Page, marker string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if !strings.Contains(page.URL(), marker) {
			return
		}
		page.WaitForTimeout(500)
	}
}
