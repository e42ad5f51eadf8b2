package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/ZacharyKim7/Instagram-Downloader/internal/scraper"
)

const fetchUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// maxMediaBytes caps a single download at 200 MB so a hostile CDN response
// cannot exhaust memory.
const maxMediaBytes = 200 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var videoExtensions = map[string]string{
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"video/quicktime": ".mov",
}

// fetchBytes downloads one media URL with browser-like headers. Instagram's
// CDN rejects requests without a plausible UA and referer. The request is tied
// to the caller's context so a dropped client cancels in-flight downloads.
func (s *Service) fetchBytes(ctx context.Context, mediaURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", fetchUserAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Referer", "https://www.instagram.com/")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMediaBytes))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if i := strings.Index(contentType, ";"); i != -1 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	return data, contentType, nil
}

// acceptContentType validates the declared content type against the expected
// media kind. On mismatch it falls back to the URL path extension; only when
// both disagree is the item rejected.
func acceptContentType(contentType, mediaURL string, kind scraper.MediaKind) bool {
	prefix := "image/"
	if kind == scraper.KindVideo {
		prefix = "video/"
	}
	if strings.HasPrefix(contentType, prefix) {
		return true
	}
	return hasKnownExtension(mediaURL, kind)
}

func hasKnownExtension(mediaURL string, kind scraper.MediaKind) bool {
	u, err := url.Parse(mediaURL)
	if err != nil {
		return false
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if ext == "" {
		return false
	}

	table := imageExtensions
	if kind == scraper.KindVideo {
		table = videoExtensions
	}
	for _, known := range table {
		if known == ext {
			return true
		}
	}
	// .jpeg maps to image/jpeg but is not a value in the table.
	return kind == scraper.KindImage && ext == ".jpeg"
}

// extensionFor picks the stored file extension: from the content type when
// recognized, else a kind-specific default.
func extensionFor(contentType string, kind scraper.MediaKind) string {
	if ext, ok := imageExtensions[contentType]; ok {
		return ext
	}
	if ext, ok := videoExtensions[contentType]; ok {
		return ext
	}

	switch kind {
	case scraper.KindImage:
		return ".jpg"
	case scraper.KindVideo:
		return ".mp4"
	default:
		return ".bin"
	}
}
