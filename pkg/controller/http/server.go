package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/scout/pkg/domain/interfaces"
)

// config holds internal HTTP server configuration
type config struct {
	addr string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	searchUC interfaces.SearchUseCase,
	downloadUC interfaces.DownloadUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr: "localhost:3000",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	apiDoc, err := loadAPIDoc(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to prepare API document")
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)
	router.Use(CORSMiddleware)

	router.Get("/", apiDocHandler(apiDoc))
	router.Get("/health", handleHealth)

	searchHandler := NewSearchHandler(searchUC)
	downloadHandler := NewDownloadHandler(downloadUC)

	router.Route("/api", func(r chi.Router) {
		r.Get("/search", searchHandler.Handle)
		r.Post("/download", downloadHandler.HandlePost)
		r.Get("/download/{linkId}", downloadHandler.HandleGet)
	})

	router.NotFound(handleNotFound)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
