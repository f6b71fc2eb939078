package usecase_test

import (
	"context"
	"errors"
)

const (
	testFileBase = "https://files.example.com"
	testDLBase   = "https://dl.example.com"
)

// MockSCloudClient is a mock implementation of SCloudClient
type MockSCloudClient struct {
	searchResultsHTMLFunc func(ctx context.Context, query string) (string, error)
	querySearchHTMLFunc   func(ctx context.Context, query string) (string, error)
	rootSearchHTMLFunc    func(ctx context.Context, query string) (string, error)
	pageHTMLFunc          func(ctx context.Context, pageURL string) (string, error)

	calls []MockCall
}

type MockCall struct {
	Method string
	Arg    string
}

func (m *MockSCloudClient) record(method, arg string) {
	m.calls = append(m.calls, MockCall{Method: method, Arg: arg})
}

func (m *MockSCloudClient) SearchResultsHTML(ctx context.Context, query string) (string, error) {
	m.record("SearchResultsHTML", query)
	if m.searchResultsHTMLFunc != nil {
		return m.searchResultsHTMLFunc(ctx, query)
	}
	return "", errors.New("mock not configured")
}

func (m *MockSCloudClient) QuerySearchHTML(ctx context.Context, query string) (string, error) {
	m.record("QuerySearchHTML", query)
	if m.querySearchHTMLFunc != nil {
		return m.querySearchHTMLFunc(ctx, query)
	}
	return "", nil
}

func (m *MockSCloudClient) RootSearchHTML(ctx context.Context, query string) (string, error) {
	m.record("RootSearchHTML", query)
	if m.rootSearchHTMLFunc != nil {
		return m.rootSearchHTMLFunc(ctx, query)
	}
	return "", nil
}

func (m *MockSCloudClient) PageHTML(ctx context.Context, pageURL string) (string, error) {
	m.record("PageHTML", pageURL)
	if m.pageHTMLFunc != nil {
		return m.pageHTMLFunc(ctx, pageURL)
	}
	return "", errors.New("mock not configured")
}

func (m *MockSCloudClient) FileURL(linkID string) string {
	return testFileBase + "/file/" + linkID
}

func (m *MockSCloudClient) DownloadURL(linkID string) string {
	return testDLBase + "/dl/" + linkID
}

// callsTo returns the arguments of every recorded call to method
func (m *MockSCloudClient) callsTo(method string) []string {
	var args []string
	for _, c := range m.calls {
		if c.Method == method {
			args = append(args, c.Arg)
		}
	}
	return args
}
