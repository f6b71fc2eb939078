package http

import (
	"net/http"
	"strings"

	"github.com/m-mizutani/scout/pkg/domain/interfaces"
	"github.com/m-mizutani/scout/pkg/domain/model"
	"github.com/m-mizutani/scout/pkg/utils/logging"
)

// SearchHandler serves GET /api/search
type SearchHandler struct {
	searchUC interfaces.SearchUseCase
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searchUC interfaces.SearchUseCase) *SearchHandler {
	return &SearchHandler{
		searchUC: searchUC,
	}
}

// Handle runs a search for the "search" query parameter
func (h *SearchHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.From(ctx)

	query := r.URL.Query().Get("search")
	if strings.TrimSpace(query) == "" {
		writeError(w, r, http.StatusBadRequest, &model.ErrorResponse{
			Error:   "Search query is required",
			Message: "Please provide a search term using the 'search' query parameter",
		})
		return
	}

	results, err := h.searchUC.Search(ctx, query)
	if err != nil {
		status := statusOf(err)
		logger.Error("Failed to fetch search results", "error", err, "query", query)
		if status >= http.StatusInternalServerError {
			reportError(r, err)
		}
		writeError(w, r, status, &model.ErrorResponse{
			Error:   "Failed to fetch search results",
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, r, http.StatusOK, &model.SearchResponse{
		Query:   query,
		Count:   len(results),
		Results: results,
	})
}
