package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/scout/pkg/domain/interfaces"
	"github.com/m-mizutani/scout/pkg/domain/model"
	"github.com/m-mizutani/scout/pkg/domain/types"
	"github.com/m-mizutani/scout/pkg/utils/logging"
)

// maxDownloadBody bounds the JSON body of POST /api/download
const maxDownloadBody = 64 << 10

// DownloadHandler serves the download link endpoints
type DownloadHandler struct {
	downloadUC interfaces.DownloadUseCase
}

// NewDownloadHandler creates a new DownloadHandler
func NewDownloadHandler(downloadUC interfaces.DownloadUseCase) *DownloadHandler {
	return &DownloadHandler{
		downloadUC: downloadUC,
	}
}

// HandlePost resolves the link given in the JSON body. A bare link fragment
// is expanded into the "dl" URL form first.
func (h *DownloadHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	logger := logging.From(r.Context())

	var req model.DownloadRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDownloadBody))
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		writeError(w, r, http.StatusBadRequest, &model.ErrorResponse{
			Error:   "Failed to read request body",
			Message: err.Error(),
			Success: boolPtr(false),
		})
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			logger.Warn("Invalid JSON payload", "error", err)
			writeError(w, r, http.StatusBadRequest, &model.ErrorResponse{
				Error:   "Invalid JSON payload",
				Message: err.Error(),
				Success: boolPtr(false),
			})
			return
		}
	}

	link := strings.TrimSpace(req.Link)
	if link == "" {
		writeError(w, r, http.StatusBadRequest, &model.ErrorResponse{
			Error:   "Link is required",
			Message: "Please provide a 'link' parameter in the request body",
			Success: boolPtr(false),
		})
		return
	}

	fullURL := link
	if !strings.HasPrefix(link, "http") {
		fullURL = h.downloadUC.DownloadURL(link)
	}

	h.resolve(w, r, fullURL)
}

// HandleGet resolves the canonical detail page of the linkId path parameter
func (h *DownloadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	linkID := strings.TrimSpace(chi.URLParam(r, "linkId"))
	if linkID == "" {
		writeError(w, r, http.StatusBadRequest, &model.ErrorResponse{
			Error:   "Link ID is required",
			Message: "Please provide a linkId as part of the URL",
			Success: boolPtr(false),
		})
		return
	}

	h.resolve(w, r, h.downloadUC.FileURL(linkID))
}

func (h *DownloadHandler) resolve(w http.ResponseWriter, r *http.Request, link string) {
	ctx := r.Context()
	logger := logging.From(ctx)

	details, err := h.downloadUC.Resolve(ctx, link)
	if err == nil && !details.HasDownloadURL() {
		err = goerr.New("resolver returned no download link",
			goerr.V("link", link),
			goerr.T(types.ErrTagNotFound),
		)
	}

	if err != nil {
		status := statusOf(err)
		resp := &model.ErrorResponse{
			Error:   "Failed to fetch download link",
			Message: err.Error(),
			Success: boolPtr(false),
		}

		switch {
		case status == http.StatusNotFound:
			logger.Warn("Download link not found", "error", err, "link", link)
			resp.Error = "Download link not found"
			resp.Message = "Unable to extract download link from the provided URL"
		case status >= http.StatusInternalServerError:
			logger.Error("Failed to fetch download link", "error", err, "link", link)
			reportError(r, err)
		}

		writeError(w, r, status, resp)
		return
	}

	writeJSON(w, r, http.StatusOK, model.NewDownloadResponse(details))
}
