package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/ZacharyKim7/Instagram-Downloader/internal/session"
)

// contentSettleDelay lets Instagram's client-side rendering finish after the
// navigation itself has gone network idle.
const contentSettleDelay = 2_000

// sessionStore is the persistence surface the scraper uses. Satisfied by
// *session.Store.
type sessionStore interface {
	Load() (session.State, bool)
	Save(state session.State) error
	Clear()
}

// authSession is the slice of a live browsing context that authentication
// resolution touches: cookie transfer, the login flow, navigation. Mirrors
// the PostView seam so the login-then-persist ordering is testable without a
// browser.
type authSession interface {
	RestoreSession(state session.State) error
	ExportSession() (session.State, error)
	Login() bool
	Navigate(target string) error
	CurrentURL() string
	Settle()
}

// Scraper owns the full media discovery flow for one target site: session
// restore, login, carousel traversal, interceptor merge. Each call runs in
// its own browsing context; the only shared state is the session file and the
// browser-slot semaphore.
type Scraper struct {
	auth     *Authenticator
	sessions sessionStore
	hasCreds bool
	slots    *semaphore.Weighted
	log      zerolog.Logger
}

func NewScraper(auth *Authenticator, sessions *session.Store, hasCreds bool, maxBrowsers int64, log zerolog.Logger) *Scraper {
	return &Scraper{
		auth:     auth,
		sessions: sessions,
		hasCreds: hasCreds,
		slots:    semaphore.NewWeighted(maxBrowsers),
		log:      log,
	}
}

// ValidatePostURL rejects anything that is not an Instagram post or reel URL.
func ValidatePostURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Host != "www.instagram.com" && parsed.Host != "instagram.com" {
		return fmt.Errorf("not an Instagram URL")
	}
	if !strings.Contains(parsed.Path, "/p/") && !strings.Contains(parsed.Path, "/reel/") {
		return fmt.Errorf("URL must be an Instagram post or reel")
	}
	return nil
}

// ScrapePost discovers all media on a post. The returned slice is deduped by
// URL in first-seen order, traversal finds before interceptor recoveries. An
// unreachable post (login wall with no usable credentials) comes back empty
// with a nil error; that is a reportable outcome, not a fault.
func (s *Scraper) ScrapePost(ctx context.Context, postURL string) ([]MediaReference, error) {
	if err := s.slots.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("could not acquire browser slot: %w", err)
	}
	defer s.slots.Release(1)

	bc, err := NewBrowsingContext()
	if err != nil {
		return nil, err
	}
	// The context goes down on every exit path, success or failure.
	defer bc.Close()

	live := &liveSession{bc: bc, auth: s.auth}

	s.resolveAuthentication(live)

	if err := live.Navigate(postURL); err != nil {
		return nil, err
	}
	live.Settle()

	if !s.passLoginWall(live, postURL) {
		s.log.Warn().Str("url", postURL).Msg("post is behind a login wall, returning empty result")
		return nil, nil
	}

	collection := WalkPost(newPostView(bc.Page()))

	if collection.Len() == 0 {
		collection.AddAll(s.staticFallback(bc.Page()))
	}

	// Interceptor output merges last, so traversal-discovered URLs win on
	// collision.
	collection.AddAll(bc.Interceptor().Captured())

	s.log.Info().
		Str("url", postURL).
		Int("media", collection.Len()).
		Msg("post scrape finished")

	return collection.Items(), nil
}

// resolveAuthentication restores a persisted session when one exists,
// otherwise runs the login flow when credentials are configured, persisting
// the fresh session before any navigation to the target. A failed login
// degrades to unauthenticated browsing.
func (s *Scraper) resolveAuthentication(as authSession) {
	if state, ok := s.sessions.Load(); ok {
		if err := as.RestoreSession(state); err == nil {
			s.log.Debug().Int("cookies", len(state.Cookies)).Msg("restored persisted session")
			return
		}
		s.sessions.Clear()
	}

	if !s.hasCreds {
		return
	}

	if as.Login() {
		s.persistSession(as)
	} else {
		s.log.Warn().Msg("login failed, proceeding unauthenticated")
	}
}

// passLoginWall handles the post-navigation login redirect: retry
// authentication once and re-navigate. Reports whether the post content is
// reachable.
func (s *Scraper) passLoginWall(as authSession, postURL string) bool {
	if !strings.Contains(as.CurrentURL(), loginPathMarker) {
		return true
	}

	if !s.hasCreds {
		return false
	}

	// The persisted session was stale; drop it and log in fresh.
	s.sessions.Clear()
	if !as.Login() {
		return false
	}
	s.persistSession(as)

	if err := as.Navigate(postURL); err != nil {
		return false
	}
	as.Settle()

	return !strings.Contains(as.CurrentURL(), loginPathMarker)
}

func (s *Scraper) persistSession(as authSession) {
	state, err := as.ExportSession()
	if err != nil {
		s.log.Warn().Err(err).Msg("could not export session cookies")
		return
	}
	if err := s.sessions.Save(state); err != nil {
		s.log.Warn().Err(err).Msg("could not persist session")
		return
	}
	s.log.Info().Msg("session persisted")
}

// liveSession adapts a BrowsingContext and the interactive login flow to the
// authSession seam.
type liveSession struct {
	bc   *BrowsingContext
	auth *Authenticator
}

func (l *liveSession) RestoreSession(state session.State) error {
	return l.bc.RestoreSession(state)
}

func (l *liveSession) ExportSession() (session.State, error) {
	return l.bc.ExportSession()
}

func (l *liveSession) Login() bool {
	return l.auth.Login(l.bc)
}

func (l *liveSession) Navigate(target string) error {
	if _, err := l.bc.Page().Goto(target, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(30_000),
	}); err != nil {
		return fmt.Errorf("could not navigate to %s: %w", target, err)
	}
	return nil
}

func (l *liveSession) CurrentURL() string {
	return l.bc.Page().URL()
}

func (l *liveSession) Settle() {
	l.bc.Page().WaitForTimeout(contentSettleDelay)
}
