package scraper

// MediaKind tags a discovered reference as image or video.
type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

// MediaReference is one discovered media source. Identity is the exact URL
// string; no canonicalization happens anywhere in the pipeline.
type MediaReference struct {
	URL  string    `json:"url"`
	Kind MediaKind `json:"kind"`
}

// MediaCollection keeps references in first-seen order with uniqueness on URL.
type MediaCollection struct {
	items []MediaReference
	seen  map[string]bool
}

func NewMediaCollection() *MediaCollection {
	return &MediaCollection{seen: make(map[string]bool)}
}

// Add appends ref unless its URL was already collected. Returns true when the
// reference was actually inserted.
func (c *MediaCollection) Add(ref MediaReference) bool {
	if ref.URL == "" || c.seen[ref.URL] {
		return false
	}
	c.seen[ref.URL] = true
	c.items = append(c.items, ref)
	return true
}

// AddAll merges refs in order under the same skip-if-seen rule.
func (c *MediaCollection) AddAll(refs []MediaReference) {
	for _, ref := range refs {
		c.Add(ref)
	}
}

func (c *MediaCollection) Len() int {
	return len(c.items)
}

// Items returns the collected references in insertion order. The returned
// slice is a copy; callers may not mutate collection state through it.
func (c *MediaCollection) Items() []MediaReference {
	out := make([]MediaReference, len(c.items))
	copy(out, c.items)
	return out
}
