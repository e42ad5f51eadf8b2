package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFromHTMLOgTags(t *testing.T) {
	content := `<html><head>
		<meta property="og:image" content="https://scontent.cdninstagram.com/v/photo.jpg"/>
		<meta property="og:video" content="https://scontent.cdninstagram.com/v/clip.mp4"/>
	</head><body></body></html>`

	refs := ExtractFromHTML(content)

	assert.Len(t, refs, 2)
	assert.Equal(t, KindVideo, refs[0].Kind)
	assert.Equal(t, "https://scontent.cdninstagram.com/v/clip.mp4", refs[0].URL)
	assert.Equal(t, KindImage, refs[1].Kind)
}

func TestExtractFromHTMLLdJSON(t *testing.T) {
	content := `<html><head>
		<script type="application/ld+json">
			{"@type":"VideoObject","contentUrl":"https://scontent.cdninstagram.com/v/clip.mp4"}
		</script>
	</head><body></body></html>`

	refs := ExtractFromHTML(content)

	assert.Len(t, refs, 1)
	assert.Equal(t, "https://scontent.cdninstagram.com/v/clip.mp4", refs[0].URL)
	assert.Equal(t, KindVideo, refs[0].Kind)
}

func TestExtractFromHTMLIgnoresBrokenJSON(t *testing.T) {
	content := `<html><head>
		<script type="application/ld+json">{not json</script>
	</head><body></body></html>`

	assert.Empty(t, ExtractFromHTML(content))
}

func TestExtractFromHTMLEmptyPage(t *testing.T) {
	assert.Empty(t, ExtractFromHTML("<html><body><p>nothing here</p></body></html>"))
}
