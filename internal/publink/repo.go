package publink

import "context"

// Store defines the read-only query operations the resolver needs from the
// link store. All lookups are single equality-predicate queries returning at
// most one record; absence is reported as errx.NotFound.
type Store interface {
	// FindBySlug returns the link of the given type and slug. Slugs are
	// unique within a type; uniqueness is assumed here, not enforced.
	FindBySlug(ctx context.Context, typ LinkType, slug string) (PublicLink, error)

	// FindStoreByStoreID returns the store link whose target points at the
	// given store id. Used to locate a professional's true store when the
	// requested path does not own it.
	FindStoreByStoreID(ctx context.Context, storeID string) (PublicLink, error)

	// FindBrandByOrgID returns the brand link for the given organization.
	FindBrandByOrgID(ctx context.Context, orgID string) (PublicLink, error)

	// Ping verifies connectivity to the store.
	Ping(ctx context.Context) error
}
