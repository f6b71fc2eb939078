package usecase

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/scout/pkg/domain/interfaces"
	"github.com/m-mizutani/scout/pkg/domain/model"
	"github.com/m-mizutani/scout/pkg/domain/types"
	"github.com/m-mizutani/scout/pkg/utils/logging"
)

const htmlExcerptLen = 300

type downloadUseCase struct {
	client interfaces.SCloudClient
}

// NewDownload creates a new instance of DownloadUseCase
func NewDownload(client interfaces.SCloudClient) interfaces.DownloadUseCase {
	return &downloadUseCase{
		client: client,
	}
}

// DownloadURL builds the "dl" form of the URL for a link fragment
func (uc *downloadUseCase) DownloadURL(linkID string) string {
	return uc.client.DownloadURL(linkID)
}

// FileURL builds the canonical detail page URL for a link fragment
func (uc *downloadUseCase) FileURL(linkID string) string {
	return uc.client.FileURL(linkID)
}

// Resolve scrapes download URL, filename and size for linkOrURL.
//
// The upstream markup differs between pages, so every field is looked up by
// a chain of heuristics where the first non-empty value wins. A filename and
// size listed on the search page for the same id, when found up front,
// override whatever the detail page yields.
func (uc *downloadUseCase) Resolve(ctx context.Context, linkOrURL string) (*model.FileDetails, error) {
	if strings.TrimSpace(linkOrURL) == "" {
		return nil, goerr.New("link is required", goerr.T(types.ErrTagValidation))
	}

	logger := logging.From(ctx).With("resolve_id", uuid.NewString())
	ctx = logging.With(ctx, logger)

	pageURL := uc.normalize(linkOrURL)
	linkID := lastSegment(pageURL)
	isFilePage := strings.Contains(pageURL, "/file/")

	logger.Info("Resolving download link", "link", linkOrURL, "url", pageURL, "link_id", linkID)

	var listedName, listedSize string
	if isFilePage && linkID != "" {
		listedName, listedSize = uc.lookupListing(ctx, linkID)
	}

	html, err := uc.client.PageHTML(ctx, pageURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch file page",
			goerr.V("link", linkOrURL),
			goerr.V("url", pageURL),
		)
	}
	logger.Debug("Fetched file page", "url", pageURL, "excerpt", excerpt(html, htmlExcerptLen))

	doc, err := loadDocument(html)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse file page",
			goerr.V("url", pageURL),
			goerr.T(types.ErrTagUpstream),
		)
	}

	downloadURL, via := firstMatch(doc, downloadURLExtractors)
	downloadURL = absoluteURL(pageURL, downloadURL)
	logger.Debug("Download URL lookup", "download_url", downloadURL, "matched", via)

	filename := extractFilename(doc)

	var size string
	if isFilePage && linkID != "" {
		size, err = uc.lookupSize(ctx, filename, linkID)
		if err != nil {
			return nil, err
		}
	}
	if size == "" {
		size, via = firstMatch(doc, detailSizeExtractors)
		logger.Debug("Size lookup on file page", "size", size, "matched", via)
	}
	if size == "" {
		size = model.UnknownSize
	}

	if isPlaceholderName(filename) {
		if isFilePage && linkID != "" {
			filename, err = uc.lookupTitle(ctx, linkID)
			if err != nil {
				return nil, err
			}
		}
		if isPlaceholderName(filename) {
			filename = linkID
		}
		if filename == "" {
			filename = model.UnknownFile
		}
	}

	logger.Info("Scraped file page",
		"download_url", downloadURL,
		"filename", filename,
		"size", size,
	)

	if listedName != "" {
		filename = listedName
	}
	if listedSize != "" {
		size = listedSize
	}

	details := &model.FileDetails{
		DownloadURL: downloadURL,
		Filename:    filename,
		Size:        size,
	}

	if !details.HasDownloadURL() {
		return details, goerr.New("download link not found",
			goerr.V("link", linkOrURL),
			goerr.V("url", pageURL),
			goerr.T(types.ErrTagNotFound),
		)
	}

	return details, nil
}

// normalize maps the "dl" link form and bare link fragments to the
// canonical detail page URL. Anything else is used as given.
func (uc *downloadUseCase) normalize(linkOrURL string) string {
	link := strings.TrimSpace(linkOrURL)
	switch {
	case strings.Contains(link, "/dl/"):
		return uc.client.FileURL(lastSegment(link))
	case !strings.HasPrefix(link, "http"):
		return uc.client.FileURL(link)
	default:
		return link
	}
}

// lookupListing searches the upstream for linkID and returns the listed
// title and size. Failures only cost the hint.
func (uc *downloadUseCase) lookupListing(ctx context.Context, linkID string) (string, string) {
	logger := logging.From(ctx)
	logger.Debug("Looking up listing for link id", "link_id", linkID)

	html, err := uc.client.QuerySearchHTML(ctx, linkID)
	if err != nil {
		logger.Warn("Listing lookup failed", "link_id", linkID, "error", err)
		return "", ""
	}
	doc, err := loadDocument(html)
	if err != nil {
		logger.Warn("Listing page unparsable", "link_id", linkID, "error", err)
		return "", ""
	}

	title, size := findListing(doc, linkID)
	if title != "" {
		logger.Info("Found listing in search results", "filename", title, "size", size)
	}
	return title, size
}

// lookupSize searches the upstream by filename, which may be empty, and
// returns the size listed next to linkID.
func (uc *downloadUseCase) lookupSize(ctx context.Context, filename, linkID string) (string, error) {
	html, err := uc.client.QuerySearchHTML(ctx, filename)
	if err != nil {
		return "", goerr.Wrap(err, "failed to look up size by filename",
			goerr.V("filename", filename),
			goerr.V("link_id", linkID),
		)
	}
	doc, err := loadDocument(html)
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse size lookup page",
			goerr.V("filename", filename),
			goerr.T(types.ErrTagUpstream),
		)
	}

	size := findListingSize(doc, linkID)
	logging.From(ctx).Debug("Size lookup by filename", "filename", filename, "size", size)
	return size, nil
}

func (uc *downloadUseCase) lookupTitle(ctx context.Context, linkID string) (string, error) {
	html, err := uc.client.RootSearchHTML(ctx, linkID)
	if err != nil {
		return "", goerr.Wrap(err, "failed to look up filename by link id", goerr.V("link_id", linkID))
	}
	doc, err := loadDocument(html)
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse filename lookup page",
			goerr.V("link_id", linkID),
			goerr.T(types.ErrTagUpstream),
		)
	}

	title := findListingTitle(doc, linkID)
	logging.From(ctx).Debug("Filename lookup by link id", "link_id", linkID, "filename", title)
	return title, nil
}

func isPlaceholderName(name string) bool {
	return name == "" || name == model.PlaceholderFilename
}

// absoluteURL resolves href against the page it was found on
func absoluteURL(pageURL, href string) string {
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil || ref.IsAbs() {
		return href
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
