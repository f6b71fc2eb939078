package interfaces

//go:generate moq -out mocks/usecase_mock.go -pkg mocks . SearchUseCase DownloadUseCase

import (
	"context"

	"github.com/m-mizutani/scout/pkg/domain/model"
)

// SearchUseCase defines the interface for file search
type SearchUseCase interface {
	// Search runs the upstream token exchange and returns the parsed hits
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
}

// DownloadUseCase defines the interface for download link resolution
type DownloadUseCase interface {
	// Resolve scrapes the detail page behind linkOrURL. It fails with a
	// not_found tagged error when no download URL could be extracted.
	Resolve(ctx context.Context, linkOrURL string) (*model.FileDetails, error)

	// DownloadURL builds the "dl" form of the URL for a link fragment
	DownloadURL(linkID string) string

	// FileURL builds the canonical detail page URL for a link fragment
	FileURL(linkID string) string
}
