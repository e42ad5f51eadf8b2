package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakePost scripts a post: one slice of references per slide.
type fakePost struct {
	slides       [][]MediaReference
	current      int
	carousel     bool
	extractCalls int
	neverEnds    bool
}

func (f *fakePost) Extract() []MediaReference {
	f.extractCalls++
	if f.current >= len(f.slides) {
		return nil
	}
	return f.slides[f.current]
}

func (f *fakePost) HasNextControl() bool {
	return f.carousel
}

func (f *fakePost) Advance() bool {
	if f.neverEnds {
		return true
	}
	if f.current+1 >= len(f.slides) {
		return false
	}
	f.current++
	return true
}

func img(u string) MediaReference   { return MediaReference{URL: u, Kind: KindImage} }
func video(u string) MediaReference { return MediaReference{URL: u, Kind: KindVideo} }

func TestWalkSinglePostExtractsExactlyOnce(t *testing.T) {
	post := &fakePost{
		slides:   [][]MediaReference{{img("https://cdn.example/1.jpg")}},
		carousel: false,
	}

	collection := WalkPost(post)

	assert.Equal(t, 1, post.extractCalls)
	assert.Equal(t, 1, collection.Len())
}

func TestWalkCarouselDedupsAcrossSlides(t *testing.T) {
	// Three slides, each contributing one new image and repeating the
	// previous slide's image.
	post := &fakePost{
		carousel: true,
		slides: [][]MediaReference{
			{img("https://cdn.example/1.jpg")},
			{img("https://cdn.example/1.jpg"), img("https://cdn.example/2.jpg")},
			{img("https://cdn.example/2.jpg"), img("https://cdn.example/3.jpg")},
		},
	}

	collection := WalkPost(post)

	items := collection.Items()
	assert.Len(t, items, 3)
	assert.Equal(t, "https://cdn.example/1.jpg", items[0].URL)
	assert.Equal(t, "https://cdn.example/2.jpg", items[1].URL)
	assert.Equal(t, "https://cdn.example/3.jpg", items[2].URL)
}

func TestWalkTerminatesWhenNextControlNeverDisappears(t *testing.T) {
	post := &fakePost{
		carousel:  true,
		neverEnds: true,
		slides:    [][]MediaReference{{img("https://cdn.example/1.jpg")}},
	}

	collection := WalkPost(post)

	assert.Equal(t, maxCarouselSlides, post.extractCalls)
	assert.Equal(t, 1, collection.Len())
}

func TestWalkCarouselStopsOnFailedAdvance(t *testing.T) {
	post := &fakePost{
		carousel: true,
		slides: [][]MediaReference{
			{img("https://cdn.example/1.jpg")},
			{img("https://cdn.example/2.jpg")},
		},
	}

	collection := WalkPost(post)

	// Slide two has no next control; traversal ends there naturally.
	assert.Equal(t, 2, post.extractCalls)
	assert.Equal(t, 2, collection.Len())
}

func TestTraversalReferencesPrecedeInterceptorMerge(t *testing.T) {
	collection := NewMediaCollection()
	collection.AddAll([]MediaReference{img("https://cdn.example/1.jpg")})

	interceptor := NewInterceptor()
	interceptor.Observe("https://cdn.example/video123.mp4")
	interceptor.Observe("https://cdn.example/1.jpg") // not video-like, ignored

	collection.AddAll(interceptor.Captured())

	items := collection.Items()
	assert.Len(t, items, 2)
	assert.Equal(t, "https://cdn.example/1.jpg", items[0].URL)
	assert.Equal(t, "https://cdn.example/video123.mp4", items[1].URL)
	assert.Equal(t, KindVideo, items[1].Kind)
}

func TestInterceptorDuplicateOfTraversalURLIsDropped(t *testing.T) {
	collection := NewMediaCollection()
	collection.AddAll([]MediaReference{video("https://cdn.example/v.mp4")})

	interceptor := NewInterceptor()
	interceptor.Observe("https://cdn.example/v.mp4")
	collection.AddAll(interceptor.Captured())

	assert.Equal(t, 1, collection.Len())
}
