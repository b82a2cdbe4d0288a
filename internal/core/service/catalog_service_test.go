package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/playlog/playlog-api/internal/core/domain"
)

type stubCatalogClient struct {
	results []domain.CatalogGame
	err     error
	calls   int
}

func (c *stubCatalogClient) Search(_ context.Context, _ string) ([]domain.CatalogGame, error) {
	c.calls++
	return c.results, c.err
}

type stubCatalogCache struct {
	entries map[string][]domain.CatalogGame
	getErr  error
	setErr  error
}

func newStubCatalogCache() *stubCatalogCache {
	return &stubCatalogCache{entries: make(map[string][]domain.CatalogGame)}
}

func (c *stubCatalogCache) Get(_ context.Context, query string) ([]domain.CatalogGame, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	results, ok := c.entries[query]
	return results, ok, nil
}

func (c *stubCatalogCache) Set(_ context.Context, query string, results []domain.CatalogGame) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[query] = results
	return nil
}

func TestCatalogService_MissThenHit(t *testing.T) {
	client := &stubCatalogClient{results: []domain.CatalogGame{{ExternalID: "42", Title: "Disco Elysium"}}}
	cache := newStubCatalogCache()
	svc := NewCatalogService(client, cache, zerolog.Nop())

	first, err := svc.Search(context.Background(), "disco")
	if err != nil {
		t.Fatalf("first Search returned error: %v", err)
	}
	if len(first) != 1 || first[0].Title != "Disco Elysium" {
		t.Fatalf("unexpected results: %+v", first)
	}
	if client.calls != 1 {
		t.Fatalf("upstream calls = %d, want 1", client.calls)
	}

	// Second identical search is served from the cache.
	second, err := svc.Search(context.Background(), "disco")
	if err != nil {
		t.Fatalf("second Search returned error: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("unexpected cached results: %+v", second)
	}
	if client.calls != 1 {
		t.Fatalf("upstream calls after cache hit = %d, want 1", client.calls)
	}
}

func TestCatalogService_CacheErrorsAreNonFatal(t *testing.T) {
	client := &stubCatalogClient{results: []domain.CatalogGame{{ExternalID: "7", Title: "Hades"}}}
	cache := newStubCatalogCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	svc := NewCatalogService(client, cache, zerolog.Nop())

	results, err := svc.Search(context.Background(), "hades")
	if err != nil {
		t.Fatalf("Search must survive cache failure, got %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestCatalogService_UpstreamError(t *testing.T) {
	upstreamErr := errors.New("502 from catalog")
	client := &stubCatalogClient{err: upstreamErr}
	svc := NewCatalogService(client, newStubCatalogCache(), zerolog.Nop())

	if _, err := svc.Search(context.Background(), "anything"); !errors.Is(err, upstreamErr) {
		t.Fatalf("Search = %v, want upstream error", err)
	}
}

func TestCatalogService_EmptyQuery(t *testing.T) {
	svc := NewCatalogService(&stubCatalogClient{}, newStubCatalogCache(), zerolog.Nop())

	for _, query := range []string{"", "   "} {
		if _, err := svc.Search(context.Background(), query); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("Search(%q) = %v, want ErrInvalidInput", query, err)
		}
	}
}
