package mcp

import (
	"context"
	"sync"

	"github.com/chr33s/mcpdoc/internal/core/domain"
)

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	sources  []domain.DocSource
	rendered string
}

func (m *mockCatalogService) List() []domain.DocSource {
	return append([]domain.DocSource(nil), m.sources...)
}

func (m *mockCatalogService) Render() string {
	return m.rendered
}

// mockFetchService is a mock implementation of driving.FetchService.
type mockFetchService struct {
	mu      sync.Mutex
	targets []string
	text    string
	err     error
}

func (m *mockFetchService) Fetch(_ context.Context, target string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.targets = append(m.targets, target)
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

func (m *mockFetchService) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.targets...)
}

func newTestServer(catalog *mockCatalogService, fetch *mockFetchService) *Server {
	s, err := NewServer(&Ports{Catalog: catalog, Fetch: fetch}, &Options{Version: "test"})
	if err != nil {
		panic(err)
	}
	return s
}
