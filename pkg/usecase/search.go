package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/scout/pkg/domain/interfaces"
	"github.com/m-mizutani/scout/pkg/domain/model"
	"github.com/m-mizutani/scout/pkg/domain/types"
	"github.com/m-mizutani/scout/pkg/utils/logging"
)

type searchUseCase struct {
	client interfaces.SCloudClient
}

// NewSearch creates a new instance of SearchUseCase
func NewSearch(client interfaces.SCloudClient) interfaces.SearchUseCase {
	return &searchUseCase{
		client: client,
	}
}

// Search runs the upstream token exchange for query and parses the results page
func (uc *searchUseCase) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	logger := logging.From(ctx)

	if strings.TrimSpace(query) == "" {
		return nil, goerr.New("search query is required", goerr.T(types.ErrTagValidation))
	}

	logger.Info("Searching upstream", "query", query)

	html, err := uc.client.SearchResultsHTML(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch search results", goerr.V("query", query))
	}

	results := ParseResults(html)
	logger.Info("Parsed search results",
		"query", query,
		"count", len(results),
		"html_bytes", len(html),
	)

	return results, nil
}
