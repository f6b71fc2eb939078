package http_test

import (
	"context"
	"errors"

	"github.com/m-mizutani/scout/pkg/domain/model"
)

// MockSearchUseCase is a mock implementation of SearchUseCase
type MockSearchUseCase struct {
	searchFunc func(ctx context.Context, query string) ([]model.SearchResult, error)
	queries    []string
}

func (m *MockSearchUseCase) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	m.queries = append(m.queries, query)
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query)
	}
	return nil, errors.New("mock not configured")
}

// MockDownloadUseCase is a mock implementation of DownloadUseCase
type MockDownloadUseCase struct {
	resolveFunc func(ctx context.Context, linkOrURL string) (*model.FileDetails, error)
	links       []string
}

func (m *MockDownloadUseCase) Resolve(ctx context.Context, linkOrURL string) (*model.FileDetails, error) {
	m.links = append(m.links, linkOrURL)
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, linkOrURL)
	}
	return nil, errors.New("mock not configured")
}

func (m *MockDownloadUseCase) DownloadURL(linkID string) string {
	return "https://new3.scloud.ninja/dl/" + linkID
}

func (m *MockDownloadUseCase) FileURL(linkID string) string {
	return "https://new4.scloud.ninja/file/" + linkID
}
