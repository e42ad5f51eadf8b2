package scraper

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/semaphore"

	"github.com/ZacharyKim7/Instagram-Downloader/internal/session"
)

type fakeSessionStore struct {
	ops     *[]string
	state   session.State
	present bool
}

func (f *fakeSessionStore) Load() (session.State, bool) {
	*f.ops = append(*f.ops, "load")
	return f.state, f.present
}

func (f *fakeSessionStore) Save(state session.State) error {
	*f.ops = append(*f.ops, "save")
	return nil
}

func (f *fakeSessionStore) Clear() {
	*f.ops = append(*f.ops, "clear")
}

type fakeAuthSession struct {
	ops     *[]string
	loginOK bool
	urls    []string
	urlIdx  int
}

func (f *fakeAuthSession) RestoreSession(state session.State) error {
	*f.ops = append(*f.ops, "restore")
	return nil
}

func (f *fakeAuthSession) ExportSession() (session.State, error) {
	*f.ops = append(*f.ops, "export")
	return session.State{Cookies: []session.Cookie{{Name: "sessionid", Value: "abc"}}}, nil
}

func (f *fakeAuthSession) Login() bool {
	*f.ops = append(*f.ops, "login")
	return f.loginOK
}

func (f *fakeAuthSession) Navigate(target string) error {
	*f.ops = append(*f.ops, "navigate")
	return nil
}

func (f *fakeAuthSession) CurrentURL() string {
	if f.urlIdx >= len(f.urls) {
		return f.urls[len(f.urls)-1]
	}
	u := f.urls[f.urlIdx]
	f.urlIdx++
	return u
}

func (f *fakeAuthSession) Settle() {}

func newTestScraper(store sessionStore, hasCreds bool) *Scraper {
	return &Scraper{
		sessions: store,
		hasCreds: hasCreds,
		slots:    semaphore.NewWeighted(1),
		log:      zerolog.Nop(),
	}
}

func indexOf(ops []string, op string) int {
	for i, o := range ops {
		if o == op {
			return i
		}
	}
	return -1
}

func TestFirstRunLoginPersistsSessionBeforeTraversal(t *testing.T) {
	// No session file yet, credentials configured: the login flow runs and
	// the fresh session is saved before any navigation to the post.
	var ops []string
	store := &fakeSessionStore{ops: &ops, present: false}
	as := &fakeAuthSession{ops: &ops, loginOK: true}

	newTestScraper(store, true).resolveAuthentication(as)

	loginAt := indexOf(ops, "login")
	saveAt := indexOf(ops, "save")
	require.NotEqual(t, -1, loginAt, "login flow must execute on first run")
	require.NotEqual(t, -1, saveAt, "successful login must be persisted")
	assert.Less(t, loginAt, saveAt)
	assert.Equal(t, -1, indexOf(ops, "navigate"), "no navigation happens before the session is saved")
}

func TestResolveAuthenticationRestoresPersistedSession(t *testing.T) {
	var ops []string
	store := &fakeSessionStore{
		ops:     &ops,
		present: true,
		state:   session.State{Cookies: []session.Cookie{{Name: "sessionid", Value: "old"}}},
	}
	as := &fakeAuthSession{ops: &ops, loginOK: true}

	newTestScraper(store, true).resolveAuthentication(as)

	assert.NotEqual(t, -1, indexOf(ops, "restore"))
	assert.Equal(t, -1, indexOf(ops, "login"), "a restored session skips the login flow")
}

func TestResolveAuthenticationWithoutCredentials(t *testing.T) {
	var ops []string
	store := &fakeSessionStore{ops: &ops, present: false}
	as := &fakeAuthSession{ops: &ops}

	newTestScraper(store, false).resolveAuthentication(as)

	assert.Equal(t, -1, indexOf(ops, "login"))
	assert.Equal(t, -1, indexOf(ops, "save"))
}

func TestLoginWallRetriesOnceAndRenavigates(t *testing.T) {
	var ops []string
	store := &fakeSessionStore{ops: &ops}
	as := &fakeAuthSession{
		ops:     &ops,
		loginOK: true,
		urls: []string{
			"https://www.instagram.com/accounts/login/?next=%2Fp%2FABC%2F",
			"https://www.instagram.com/p/ABC/",
		},
	}

	reachable := newTestScraper(store, true).passLoginWall(as, "https://www.instagram.com/p/ABC/")

	require.True(t, reachable)
	// Stale session dropped, fresh login persisted, then re-navigation.
	assert.Less(t, indexOf(ops, "clear"), indexOf(ops, "login"))
	assert.Less(t, indexOf(ops, "login"), indexOf(ops, "save"))
	assert.Less(t, indexOf(ops, "save"), indexOf(ops, "navigate"))
}

func TestLoginWallWithoutCredentialsIsUnreachable(t *testing.T) {
	var ops []string
	store := &fakeSessionStore{ops: &ops}
	as := &fakeAuthSession{
		ops:  &ops,
		urls: []string{"https://www.instagram.com/accounts/login/"},
	}

	reachable := newTestScraper(store, false).passLoginWall(as, "https://www.instagram.com/p/ABC/")

	assert.False(t, reachable)
	assert.Equal(t, -1, indexOf(ops, "login"))
}

func TestLoginWallRetryFailureIsUnreachable(t *testing.T) {
	var ops []string
	store := &fakeSessionStore{ops: &ops}
	as := &fakeAuthSession{
		ops:     &ops,
		loginOK: false,
		urls:    []string{"https://www.instagram.com/accounts/login/"},
	}

	reachable := newTestScraper(store, true).passLoginWall(as, "https://www.instagram.com/p/ABC/")

	assert.False(t, reachable)
	assert.Equal(t, 1, countOf(ops, "login"), "authentication retries exactly once")
	assert.Equal(t, -1, indexOf(ops, "navigate"))
}

func TestLoginWallAbsentPassesThrough(t *testing.T) {
	var ops []string
	store := &fakeSessionStore{ops: &ops}
	as := &fakeAuthSession{
		ops:  &ops,
		urls: []string{"https://www.instagram.com/p/ABC/"},
	}

	reachable := newTestScraper(store, true).passLoginWall(as, "https://www.instagram.com/p/ABC/")

	assert.True(t, reachable)
	assert.Empty(t, ops)
}

func countOf(ops []string, op string) int {
	n := 0
	for _, o := range ops {
		if o == op {
			n++
		}
	}
	return n
}
