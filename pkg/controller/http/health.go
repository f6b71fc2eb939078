package http

import (
	"net/http"

	"github.com/m-mizutani/scout/pkg/domain/model"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, model.NewHealthStatus())
}

// handleNotFound answers unknown routes with the JSON error envelope
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, &model.ErrorResponse{Error: "Not Found"})
}
