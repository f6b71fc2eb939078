package interfaces

import "context"

// SCloudClient fetches raw HTML from the upstream file-hosting site
type SCloudClient interface {
	// SearchResultsHTML performs the two-step token exchange for query
	SearchResultsHTML(ctx context.Context, query string) (string, error)

	// QuerySearchHTML fetches the lightweight "/s?q=" search page
	QuerySearchHTML(ctx context.Context, query string) (string, error)

	// RootSearchHTML fetches the "/?q=" search page
	RootSearchHTML(ctx context.Context, query string) (string, error)

	// PageHTML fetches an arbitrary page, typically a file detail page
	PageHTML(ctx context.Context, pageURL string) (string, error)

	// FileURL builds the canonical detail page URL for a link fragment
	FileURL(linkID string) string

	// DownloadURL builds the "dl" form of the URL for a link fragment
	DownloadURL(linkID string) string
}
