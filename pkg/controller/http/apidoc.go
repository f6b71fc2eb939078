package http

import (
	"context"
	_ "embed"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/scout/pkg/domain/types"
	"github.com/m-mizutani/scout/pkg/utils/logging"
)

//go:embed openapi.yaml
var openapiSpec []byte

// loadAPIDoc parses and validates the embedded OpenAPI document
func loadAPIDoc(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load OpenAPI document")
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, goerr.Wrap(err, "invalid OpenAPI document")
	}

	doc.Info.Version = types.Version
	return doc, nil
}

// apiDocHandler serves the API description
func apiDocHandler(doc *openapi3.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := doc.MarshalJSON()
		if err != nil {
			logging.From(r.Context()).Error("Failed to marshal API document", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
