package publink

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/agendou/linkresolver/internal/cache"
	"github.com/agendou/linkresolver/internal/errx"
)

/***************
 * Mocks
 ***************/

// mockStore implements Store for testing.
type mockStore struct {
	findBySlugFunc         func(ctx context.Context, typ LinkType, slug string) (PublicLink, error)
	findStoreByStoreIDFunc func(ctx context.Context, storeID string) (PublicLink, error)
	findBrandByOrgIDFunc   func(ctx context.Context, orgID string) (PublicLink, error)
	findBySlugCalls        int
}

func (m *mockStore) FindBySlug(ctx context.Context, typ LinkType, slug string) (PublicLink, error) {
	m.findBySlugCalls++
	if m.findBySlugFunc != nil {
		return m.findBySlugFunc(ctx, typ, slug)
	}
	return PublicLink{}, errx.E("publink.repo.FindBySlug", errx.NotFound, errors.New("no rows"))
}

func (m *mockStore) FindStoreByStoreID(ctx context.Context, storeID string) (PublicLink, error) {
	if m.findStoreByStoreIDFunc != nil {
		return m.findStoreByStoreIDFunc(ctx, storeID)
	}
	return PublicLink{}, errx.E("publink.repo.FindStoreByStoreID", errx.NotFound, errors.New("no rows"))
}

func (m *mockStore) FindBrandByOrgID(ctx context.Context, orgID string) (PublicLink, error) {
	if m.findBrandByOrgIDFunc != nil {
		return m.findBrandByOrgIDFunc(ctx, orgID)
	}
	return PublicLink{}, errx.E("publink.repo.FindBrandByOrgID", errx.NotFound, errors.New("no rows"))
}

func (m *mockStore) Ping(ctx context.Context) error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestLookup(store Store) *Lookup {
	links := cache.New[PublicLink](cache.Config{Capacity: 10, DefaultTTL: time.Minute})
	displays := cache.New[DisplayModel](cache.Config{Capacity: 10, DefaultTTL: time.Minute})
	return NewLookup(store, links, displays, testLogger())
}

func proLink() PublicLink {
	return PublicLink{
		ID:     "p-1",
		Type:   TypeProfessional,
		Slug:   "maria-silva",
		Status: StatusActive,
		Target: Target{OrgID: "org-1", StoreID: "store-1", ProID: "pro-1"},
	}
}

/***************
 * FetchLink
 ***************/

func TestFetchLink(t *testing.T) {
	ctx := context.Background()

	t.Run("miss hits the store and backfills cache", func(t *testing.T) {
		store := &mockStore{
			findBySlugFunc: func(ctx context.Context, typ LinkType, slug string) (PublicLink, error) {
				return proLink(), nil
			},
		}
		l := newTestLookup(store)

		got, err := l.FetchLink(ctx, "professional/maria-silva", TypeProfessional, "maria-silva")
		if err != nil {
			t.Fatalf("FetchLink() error = %v", err)
		}
		if got == nil || got.ID != "p-1" {
			t.Fatalf("FetchLink() = %+v, want p-1", got)
		}

		// Second fetch is served from cache.
		_, err = l.FetchLink(ctx, "professional/maria-silva", TypeProfessional, "maria-silva")
		if err != nil {
			t.Fatalf("second FetchLink() error = %v", err)
		}
		if store.findBySlugCalls != 1 {
			t.Errorf("store queried %d times, want 1", store.findBySlugCalls)
		}
	})

	t.Run("distinct keys do not share cache entries", func(t *testing.T) {
		store := &mockStore{
			findBySlugFunc: func(ctx context.Context, typ LinkType, slug string) (PublicLink, error) {
				return proLink(), nil
			},
		}
		l := newTestLookup(store)

		if _, err := l.FetchLink(ctx, "professional/maria-silva", TypeProfessional, "maria-silva"); err != nil {
			t.Fatal(err)
		}
		if _, err := l.FetchLink(ctx, "u/maria-silva", TypeProfessional, "maria-silva"); err != nil {
			t.Fatal(err)
		}
		if store.findBySlugCalls != 2 {
			t.Errorf("store queried %d times, want 2 (one per cache key)", store.findBySlugCalls)
		}
	})

	t.Run("not found returns nil without error", func(t *testing.T) {
		l := newTestLookup(&mockStore{})

		got, err := l.FetchLink(ctx, "brand/nonexistent", TypeBrand, "nonexistent")
		if err != nil {
			t.Fatalf("FetchLink() error = %v, want nil", err)
		}
		if got != nil {
			t.Errorf("FetchLink() = %+v, want nil", got)
		}
	})

	t.Run("store fault propagates as error", func(t *testing.T) {
		store := &mockStore{
			findBySlugFunc: func(ctx context.Context, typ LinkType, slug string) (PublicLink, error) {
				return PublicLink{}, errx.E("publink.repo.FindBySlug", errx.Unavailable, errors.New("connection refused"))
			},
		}
		l := newTestLookup(store)

		got, err := l.FetchLink(ctx, "brand/glow", TypeBrand, "glow")
		if err == nil {
			t.Fatal("FetchLink() error = nil, want store fault")
		}
		if got != nil {
			t.Errorf("FetchLink() = %+v, want nil on fault", got)
		}
		if errx.KindOf(err) != errx.Unavailable {
			t.Errorf("error kind = %v, want %v", errx.KindOf(err), errx.Unavailable)
		}
	})

	t.Run("not found is not cached", func(t *testing.T) {
		store := &mockStore{}
		l := newTestLookup(store)

		_, _ = l.FetchLink(ctx, "brand/glow", TypeBrand, "glow")
		_, _ = l.FetchLink(ctx, "brand/glow", TypeBrand, "glow")
		if store.findBySlugCalls != 2 {
			t.Errorf("store queried %d times, want 2 (misses are not cached)", store.findBySlugCalls)
		}
	})
}

/***************
 * Correction lookups
 ***************/

func TestStoreByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		store := &mockStore{
			findStoreByStoreIDFunc: func(ctx context.Context, storeID string) (PublicLink, error) {
				return PublicLink{
					ID:     "s-2",
					Type:   TypeStore,
					Slug:   "porto-alegre",
					Status: StatusActive,
					Target: Target{OrgID: "org-1", StoreID: storeID},
				}, nil
			},
		}
		l := newTestLookup(store)

		got, err := l.StoreByID(ctx, "store-2")
		if err != nil {
			t.Fatalf("StoreByID() error = %v", err)
		}
		if got == nil || got.Slug != "porto-alegre" {
			t.Errorf("StoreByID() = %+v, want porto-alegre", got)
		}
	})

	t.Run("absent returns nil nil", func(t *testing.T) {
		l := newTestLookup(&mockStore{})
		got, err := l.StoreByID(ctx, "store-x")
		if err != nil || got != nil {
			t.Errorf("StoreByID() = (%+v, %v), want (nil, nil)", got, err)
		}
	})
}

func TestBrandByOrg(t *testing.T) {
	ctx := context.Background()

	t.Run("absent returns nil nil", func(t *testing.T) {
		l := newTestLookup(&mockStore{})
		got, err := l.BrandByOrg(ctx, "org-x")
		if err != nil || got != nil {
			t.Errorf("BrandByOrg() = (%+v, %v), want (nil, nil)", got, err)
		}
	})

	t.Run("fault propagates", func(t *testing.T) {
		store := &mockStore{
			findBrandByOrgIDFunc: func(ctx context.Context, orgID string) (PublicLink, error) {
				return PublicLink{}, errx.E("publink.repo.FindBrandByOrgID", errx.Unavailable, errors.New("timeout"))
			},
		}
		l := newTestLookup(store)
		if _, err := l.BrandByOrg(ctx, "org-1"); err == nil {
			t.Error("BrandByOrg() error = nil, want fault")
		}
	})
}

/***************
 * Display cache
 ***************/

func TestDisplay(t *testing.T) {
	l := newTestLookup(&mockStore{})

	link := proLink()
	d := l.Display("professional/maria-silva", link)
	if d.Name != "Maria Silva" {
		t.Errorf("Display().Name = %q, want %q", d.Name, "Maria Silva")
	}

	// A changed link does not affect the cached projection until a flush.
	link.Name = "Dr. Maria Silva"
	d2 := l.Display("professional/maria-silva", link)
	if d2.Name != "Maria Silva" {
		t.Errorf("cached Display().Name = %q, want %q", d2.Name, "Maria Silva")
	}

	l.ClearCaches()
	d3 := l.Display("professional/maria-silva", link)
	if d3.Name != "Dr. Maria Silva" {
		t.Errorf("Display() after flush = %q, want rebuilt %q", d3.Name, "Dr. Maria Silva")
	}
}

/***************
 * Maintenance
 ***************/

func TestCacheMaintenance(t *testing.T) {
	store := &mockStore{
		findBySlugFunc: func(ctx context.Context, typ LinkType, slug string) (PublicLink, error) {
			return proLink(), nil
		},
	}
	l := newTestLookup(store)
	ctx := context.Background()

	if _, err := l.FetchLink(ctx, "professional/maria-silva", TypeProfessional, "maria-silva"); err != nil {
		t.Fatal(err)
	}
	l.Display("professional/maria-silva", proLink())

	links, displays := l.CacheStats()
	if links.Size != 1 || displays.Size != 1 {
		t.Errorf("CacheStats() sizes = %d/%d, want 1/1", links.Size, displays.Size)
	}

	l.ClearCaches()
	links, displays = l.CacheStats()
	if links.Size != 0 || displays.Size != 0 {
		t.Errorf("CacheStats() after clear = %d/%d, want 0/0", links.Size, displays.Size)
	}

	if got := l.CleanExpired(); got != 0 {
		t.Errorf("CleanExpired() on empty caches = %d, want 0", got)
	}
}
