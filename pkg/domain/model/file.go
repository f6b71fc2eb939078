package model

import "strings"

const (
	// UnknownSize is reported when no size could be scraped
	UnknownSize = "Unknown size"

	// UnknownFile is the filename of last resort
	UnknownFile = "unknown-file"

	// PlaceholderFilename is what the upstream detail page shows instead of a real name
	PlaceholderFilename = "File Details"
)

// FileDetails is the outcome of resolving a single file's detail page
type FileDetails struct {
	DownloadURL string `json:"downloadUrl"`
	Filename    string `json:"filename"`
	Size        string `json:"size"`
}

// HasDownloadURL reports whether a direct download URL was found
func (d *FileDetails) HasDownloadURL() bool {
	return d != nil && strings.TrimSpace(d.DownloadURL) != ""
}

// DownloadRequest is the body of POST /api/download
type DownloadRequest struct {
	Link string `json:"link"`
}

// DownloadResponse is the body of a successful download resolution
type DownloadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     string `json:"size"`
	Success  bool   `json:"success"`
}

// NewDownloadResponse converts resolved details into the API envelope
func NewDownloadResponse(d *FileDetails) *DownloadResponse {
	return &DownloadResponse{
		URL:      d.DownloadURL,
		Filename: d.Filename,
		Size:     d.Size,
		Success:  true,
	}
}
