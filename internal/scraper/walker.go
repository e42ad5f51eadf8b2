package scraper

// maxCarouselSlides bounds traversal so a next control that never disappears
// cannot spin the walker forever. Instagram caps carousels at 20 items.
const maxCarouselSlides = 20

// PostView is the walker's window onto a rendered post: extract media from
// the current slide, probe for a next control, advance to the next slide.
type PostView interface {
	// Extract returns the media references visible on the current slide.
	Extract() []MediaReference

	// HasNextControl reports whether any next-slide control is present,
	// visible or not. Presence alone marks the post as a carousel.
	HasNextControl() bool

	// Advance activates the next control and waits for the slide to
	// render. It returns false when no interactable control exists or the
	// activation failed, which ends the traversal.
	Advance() bool
}

// WalkPost runs the carousel state machine over view and returns every unique
// reference in first-seen order. Single posts extract exactly once; carousels
// loop until the next control disappears or the slide bound is hit. Traversal
// anomalies terminate the walk, they never fail it.
func WalkPost(view PostView) *MediaCollection {
	collection := NewMediaCollection()

	if !view.HasNextControl() {
		collection.AddAll(view.Extract())
		return collection
	}

	for slide := 0; slide < maxCarouselSlides; slide++ {
		collection.AddAll(view.Extract())
		if !view.Advance() {
			break
		}
	}

	return collection
}
