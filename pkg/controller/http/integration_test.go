package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	controller "github.com/m-mizutani/scout/pkg/controller/http"
	"github.com/m-mizutani/scout/pkg/domain/model"
	"github.com/m-mizutani/scout/pkg/infra/scloud"
	"github.com/m-mizutani/scout/pkg/usecase"
)

type fakeUpstream struct {
	mu       sync.Mutex
	requests []string
}

func (f *fakeUpstream) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.RequestURI())
}

func (f *fakeUpstream) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

const fakeResultsPage = `<html><body>
<a href="https://new3.scloud.ninja/dl/abc123">
  <div class="title-container"><span>ubuntu-22.04.iso</span></div>
  <span class="inline-block">4.2 GB</span>
</a>
<a href="/about">About</a>
</body></html>`

const fakeDetailPage = `<html><body>
<p class="break-all">ubuntu-22.04.iso</p>
<a class="button" href="https://mirror.example.com/ubuntu.iso">Mirror</a>
<a class="block" href="https://cdn.example.com/ubuntu.iso">Download</a>
</body></html>`

func (f *fakeUpstream) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/get-search-token", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		if r.FormValue("search_query") == "busy" {
			http.Redirect(w, r, "/?token=bad-1", http.StatusFound)
			return
		}
		http.Redirect(w, r, "/?token=c0ffee-42", http.StatusFound)
	})
	mux.HandleFunc("/s", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		_, _ = w.Write([]byte(fakeResultsPage))
	})
	mux.HandleFunc("/file/", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		if r.URL.Path != "/file/abc123" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(fakeDetailPage))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		switch r.URL.Query().Get("token") {
		case "c0ffee-42":
			_, _ = w.Write([]byte(fakeResultsPage))
			return
		case "bad-1":
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("<html><a href=\"/status\">Try again later</a></html>"))
			return
		}
		_, _ = w.Write([]byte("<html></html>"))
	})
	return mux
}

func newIntegrationServer(t *testing.T) (*controller.Server, *fakeUpstream) {
	t.Helper()

	upstream := &fakeUpstream{}
	ts := httptest.NewServer(upstream.handler())
	t.Cleanup(ts.Close)

	client, err := scloud.New(
		scloud.WithBaseURL(ts.URL),
		scloud.WithDownloadBaseURL(ts.URL),
		scloud.WithTimeout(5*time.Second),
	)
	gt.NoError(t, err)

	server, err := controller.NewServer(
		context.Background(),
		usecase.NewSearch(client),
		usecase.NewDownload(client),
	)
	gt.NoError(t, err)

	return server, upstream
}

func TestIntegration_SearchRoundTrip(t *testing.T) {
	server, upstream := newIntegrationServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/search?search=ubuntu", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Value(t, w.Code).Equal(http.StatusOK)

	var resp model.SearchResponse
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	gt.Value(t, resp).Equal(model.SearchResponse{
		Query: "ubuntu",
		Count: 1,
		Results: []model.SearchResult{
			{Name: "ubuntu-22.04.iso", Size: "4.2 GB", Link: "abc123", FileType: "other"},
		},
	})

	gt.Value(t, upstream.seen()).Equal([]string{
		"POST /get-search-token",
		"GET /?token=c0ffee-42",
	})
}

func TestIntegration_DownloadByFragment(t *testing.T) {
	server, upstream := newIntegrationServer(t)

	payload, err := json.Marshal(model.DownloadRequest{Link: "abc123"})
	gt.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/download", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Value(t, w.Code).Equal(http.StatusOK)

	var resp model.DownloadResponse
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	gt.Value(t, resp).Equal(model.DownloadResponse{
		URL:      "https://cdn.example.com/ubuntu.iso",
		Filename: "ubuntu-22.04.iso",
		Size:     "4.2 GB",
		Success:  true,
	})

	// the dl form is never fetched, it is rewritten to the detail page
	seen := upstream.seen()
	gt.Value(t, seen[0]).Equal("GET /s?q=abc123")
	gt.Value(t, seen[1]).Equal("GET /file/abc123")
	for _, r := range seen {
		gt.String(t, r).NotContains("/dl/")
	}
}

func TestIntegration_DownloadMissingFileIsNotFound(t *testing.T) {
	server, upstream := newIntegrationServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/download/missing", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Value(t, w.Code).Equal(http.StatusNotFound)

	var resp model.ErrorResponse
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	gt.Value(t, resp.Error).Equal("Download link not found")
	gt.Value(t, resp.Message).Equal("Unable to extract download link from the provided URL")
	gt.True(t, resp.Success != nil && !*resp.Success)

	seen := upstream.seen()
	gt.Value(t, seen[1]).Equal("GET /file/missing")
}

func TestIntegration_SearchNonSuccessPageIsEmpty(t *testing.T) {
	server, _ := newIntegrationServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/search?search=busy", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Value(t, w.Code).Equal(http.StatusOK)

	var resp model.SearchResponse
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	gt.Value(t, resp.Query).Equal("busy")
	gt.Value(t, resp.Count).Equal(0)
	gt.A(t, resp.Results).Length(0)
}
