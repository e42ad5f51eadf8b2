package dto

// ExtractRequest is the body of POST /api/extract.
type ExtractRequest struct {
	URL string `json:"url"`
}

// StoredMedia is one manifest entry for a fetched and committed media item.
type StoredMedia struct {
	Handle      string `json:"handle"`
	Filename    string `json:"filename"`
	OriginalURL string `json:"original_url"`
	LocalPath   string `json:"local_path"`
	Size        int64  `json:"size"`
	Kind        string `json:"kind"`
	ContentType string `json:"content_type"`
}

// ExtractResponse is the success shape of POST /api/extract.
type ExtractResponse struct {
	Success bool          `json:"success"`
	Media   []StoredMedia `json:"media"`
	Total   int           `json:"total"`
}
