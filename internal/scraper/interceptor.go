package scraper

import (
	"net/url"
	"path"
	"strings"
	"sync"
)

var videoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mov":  true,
	".m4v":  true,
}

// CDN hosts Instagram serves video bytes from. A "video" token alone is not
// enough; plenty of analytics URLs carry the word.
var videoCDNMarkers = []string{
	"cdninstagram.com",
	"fbcdn.net",
}

// Interceptor passively records video-like request URLs for the lifetime of
// one browsing context. It is the only way to recover video bytes whose DOM
// source is a blob: handle. Observe runs on playwright's event-dispatch
// goroutine while Captured is read on the request goroutine with the page
// still live (video segments may stream in mid-merge), so both take the lock.
type Interceptor struct {
	mu   sync.Mutex
	urls []string
	seen map[string]bool
}

func NewInterceptor() *Interceptor {
	return &Interceptor{seen: make(map[string]bool)}
}

// Observe classifies one outgoing request URL and records it if video-like.
func (i *Interceptor) Observe(requestURL string) {
	if !LooksLikeVideoURL(requestURL) {
		return
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.seen[requestURL] {
		return
	}
	i.seen[requestURL] = true
	i.urls = append(i.urls, requestURL)
}

// Captured returns the recorded URLs as video references, first-seen order.
func (i *Interceptor) Captured() []MediaReference {
	i.mu.Lock()
	defer i.mu.Unlock()

	refs := make([]MediaReference, 0, len(i.urls))
	for _, u := range i.urls {
		refs = append(refs, MediaReference{URL: u, Kind: KindVideo})
	}
	return refs
}

// LooksLikeVideoURL reports whether a request URL plausibly carries video
// bytes: a known file extension on the path, or a "video" token combined with
// a known CDN host.
func LooksLikeVideoURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}

	ext := strings.ToLower(path.Ext(u.Path))
	if videoExtensions[ext] {
		return true
	}

	lower := strings.ToLower(raw)
	if !strings.Contains(lower, "video") {
		return false
	}
	for _, marker := range videoCDNMarkers {
		if strings.Contains(u.Host, marker) {
			return true
		}
	}
	return false
}
