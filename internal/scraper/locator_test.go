package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeepImage(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		alt      string
		expected bool
	}{
		{
			name:     "marker prefixed alt",
			src:      "https://scontent.cdninstagram.com/v/photo.jpg",
			alt:      "Photo by Jane Doe on August 12, 2026.",
			expected: true,
		},
		{
			name:     "avatar without marker",
			src:      "https://scontent.cdninstagram.com/v/avatar.jpg",
			alt:      "janedoe's profile picture",
			expected: false,
		},
		{
			name:     "empty alt",
			src:      "https://scontent.cdninstagram.com/v/photo.jpg",
			alt:      "",
			expected: false,
		},
		{
			name:     "missing src",
			src:      "",
			alt:      "Photo by Jane Doe",
			expected: false,
		},
		{
			name:     "blob src",
			src:      "blob:https://www.instagram.com/abc",
			alt:      "Photo by Jane Doe",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KeepImage(tt.src, tt.alt))
		})
	}
}

func TestIsBlobURL(t *testing.T) {
	assert.True(t, IsBlobURL("blob:https://www.instagram.com/0a1b2c3d"))
	assert.False(t, IsBlobURL("https://cdn.example/v.mp4"))
	assert.False(t, IsBlobURL(""))
}
