package publink

import (
	"context"
	"errors"
	"log/slog"

	"github.com/agendou/linkresolver/internal/cache"
	"github.com/agendou/linkresolver/internal/errx"
)

// Lookup is the cache-first read layer over the link store. It owns two
// independent caches: one for link records and one for display projections,
// so flushing display models never forces link re-fetches.
type Lookup struct {
	store    Store
	links    *cache.Cache[PublicLink]
	displays *cache.Cache[DisplayModel]
	logger   *slog.Logger
}

// NewLookup creates a Lookup. Both caches are constructed by the caller and
// injected, so tests can use isolated instances.
func NewLookup(store Store, links *cache.Cache[PublicLink], displays *cache.Cache[DisplayModel], logger *slog.Logger) *Lookup {
	if logger == nil {
		logger = slog.Default()
	}
	return &Lookup{
		store:    store,
		links:    links,
		displays: displays,
		logger:   logger,
	}
}

// FetchLink returns the link of the given type and slug, consulting the link
// cache under key before hitting the store. Absence returns (nil, nil);
// only store faults produce an error, which callers are expected to treat as
// not-found for user-facing purposes.
func (l *Lookup) FetchLink(ctx context.Context, key string, typ LinkType, slug string) (*PublicLink, error) {
	if link, ok := l.links.Get(key); ok {
		return &link, nil
	}

	link, err := l.store.FindBySlug(ctx, typ, slug)
	if err != nil {
		if errx.KindOf(err) == errx.NotFound {
			return nil, nil
		}
		l.logger.WarnContext(ctx, "link store fetch failed",
			"key", key,
			"type", string(typ),
			"slug", slug,
			"error", err.Error(),
		)
		return nil, err
	}

	l.links.Set(key, link)
	return &link, nil
}

// StoreByID returns the store link owning the given store id, or (nil, nil)
// when no such store link exists. Used only on the mismatch-correction path,
// which is rare enough to go straight to the store.
func (l *Lookup) StoreByID(ctx context.Context, storeID string) (*PublicLink, error) {
	link, err := l.store.FindStoreByStoreID(ctx, storeID)
	if err != nil {
		if errx.KindOf(err) == errx.NotFound {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// BrandByOrg returns the brand link for the given organization, or
// (nil, nil) when the organization has no brand link.
func (l *Lookup) BrandByOrg(ctx context.Context, orgID string) (*PublicLink, error) {
	link, err := l.store.FindBrandByOrgID(ctx, orgID)
	if err != nil {
		if errx.KindOf(err) == errx.NotFound {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// Display returns the cached display projection for key, building and
// caching it from link on a miss.
func (l *Lookup) Display(key string, link PublicLink) DisplayModel {
	if d, ok := l.displays.Get(key); ok {
		return d
	}
	d := BuildDisplay(link)
	l.displays.Set(key, d)
	return d
}

// Ping verifies store connectivity for health checks.
func (l *Lookup) Ping(ctx context.Context) error {
	if l.store == nil {
		return errors.New("no store configured")
	}
	return l.store.Ping(ctx)
}

// ClearCaches empties both caches.
func (l *Lookup) ClearCaches() {
	l.links.Clear()
	l.displays.Clear()
}

// CleanExpired sweeps expired entries from both caches and returns the total
// number removed.
func (l *Lookup) CleanExpired() int {
	return l.links.CleanExpired() + l.displays.CleanExpired()
}

// CacheStats reports the state of the link and display caches.
func (l *Lookup) CacheStats() (links cache.Stats, displays cache.Stats) {
	return l.links.Stats(), l.displays.Stats()
}
