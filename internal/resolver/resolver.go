package resolver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/agendou/linkresolver/cachekey"
	"github.com/agendou/linkresolver/internal/publink"
)

// LinkSource is the lookup capability the resolver needs. It is satisfied by
// *publink.Lookup.
type LinkSource interface {
	FetchLink(ctx context.Context, key string, typ publink.LinkType, slug string) (*publink.PublicLink, error)
	StoreByID(ctx context.Context, storeID string) (*publink.PublicLink, error)
	BrandByOrg(ctx context.Context, orgID string) (*publink.PublicLink, error)
	Display(key string, link publink.PublicLink) publink.DisplayModel
}

// Resolver turns a slug set into a resolved context. It checks redirect
// rules first, then dispatches by precedence: professional, then solo
// professional, then store, then brand.
type Resolver struct {
	source    LinkSource
	redirects *Table
	telemetry Telemetry
	logger    *slog.Logger
}

// Config holds the resolver's injected dependencies.
type Config struct {
	Source    LinkSource
	Redirects *Table
	Telemetry Telemetry
	Logger    *slog.Logger
}

// New creates a Resolver. A nil redirect table behaves as empty; a nil
// telemetry port discards events.
func New(cfg Config) *Resolver {
	redirects := cfg.Redirects
	if redirects == nil {
		redirects, _ = NewTable(nil)
	}
	telemetry := cfg.Telemetry
	if telemetry == nil {
		telemetry = NopTelemetry{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{
		source:    cfg.Source,
		redirects: redirects,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Resolve maps a slug set to a Result. It never returns an error or panics:
// unexpected failures are downgraded to not_found at this boundary so the
// caller-facing contract stays total.
func (r *Resolver) Resolve(ctx context.Context, slugs Slugs) (result Result) {
	path := slugs.Path()

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.ErrorContext(ctx, "panic during resolution",
				"path", path,
				"panic", fmt.Sprint(rec),
			)
			r.telemetry.Error(ctx, path, fmt.Sprintf("panic: %v", rec))
			result = failure(ErrNotFound)
		}
	}()

	// Redirect rules win over entity resolution: a matched path never
	// reaches the store.
	if rule := r.redirects.Find(path); rule != nil {
		r.telemetry.RedirectApplied(ctx, path, rule.To)
		return Result{
			Success: false,
			Error:   ErrRedirect,
			Redirect: &Redirect{
				To:     rule.To,
				Type:   rule.Type,
				Reason: rule.Reason,
			},
		}
	}

	switch {
	case slugs.Pro != "":
		return r.resolveProfessional(ctx, path, slugs)
	case slugs.SoloPro != "":
		return r.resolveSoloProfessional(ctx, path, slugs.SoloPro)
	case slugs.Store != "":
		return r.resolveStore(ctx, path, slugs)
	case slugs.Brand != "":
		return r.resolveBrand(ctx, path, slugs.Brand)
	default:
		return failure(ErrInvalidSlug)
	}
}

// resolveProfessional handles /{brand}/{store}/{pro}.
func (r *Resolver) resolveProfessional(ctx context.Context, path string, slugs Slugs) Result {
	if slugs.Brand == "" || slugs.Store == "" {
		return failure(ErrInvalidSlug)
	}

	proKey := cachekey.Join(string(publink.TypeProfessional), slugs.Pro)
	proLink, err := r.source.FetchLink(ctx, proKey, publink.TypeProfessional, slugs.Pro)
	if err != nil {
		return r.fault(ctx, path, err)
	}
	if proLink == nil {
		return r.notFound(ctx, path, publink.TypeProfessional)
	}
	if proLink.Status == publink.StatusDisabled {
		return failure(ErrDisabled)
	}

	storeKey := cachekey.Join(string(publink.TypeStore), slugs.Brand, slugs.Store)
	storeLink, err := r.source.FetchLink(ctx, storeKey, publink.TypeStore, slugs.Store)
	if err != nil {
		return r.fault(ctx, path, err)
	}
	if storeLink == nil {
		// The professional exists but the requested container does not.
		return r.notFound(ctx, path, publink.TypeStore)
	}

	if mismatched(proLink.Target, storeLink.Target) {
		return r.resolveMismatch(ctx, path, slugs, proLink, storeLink)
	}

	parent := r.parentFor(ctx, slugs.Brand, storeLink)
	result := &Context{
		Type:    publink.TypeProfessional,
		Entity:  *proLink,
		Display: r.source.Display(proKey, *proLink),
		Parent:  parent,
	}
	r.telemetry.ResolverHit(ctx, path, publink.TypeProfessional, proLink.Target)
	return success(result)
}

// mismatched reports whether a professional's recorded owner differs from
// the owner implied by the requested path.
func mismatched(pro, store publink.Target) bool {
	return pro.StoreID != store.StoreID || pro.OrgID != store.OrgID
}

// resolveMismatch builds the result for a professional served under the
// wrong brand/store. When the true store can be determined the result
// carries a corrected context pointing there; otherwise resolution proceeds
// with the mismatched data, flagged for observability, and the caller
// decides whether to render.
func (r *Resolver) resolveMismatch(ctx context.Context, path string, slugs Slugs, proLink, storeLink *publink.PublicLink) Result {
	proKey := cachekey.Join(string(publink.TypeProfessional), slugs.Pro)

	correctStore, err := r.source.StoreByID(ctx, proLink.Target.StoreID)
	if err != nil {
		r.logger.WarnContext(ctx, "mismatch correction lookup failed",
			"path", path,
			"store_id", proLink.Target.StoreID,
			"error", err.Error(),
		)
		correctStore = nil
	}

	result := &Context{
		Type:       publink.TypeProfessional,
		Entity:     *proLink,
		Display:    r.source.Display(proKey, *proLink),
		Parent:     r.parentFor(ctx, slugs.Brand, storeLink),
		IsMismatch: true,
	}

	if correctStore == nil {
		// No correct store could be determined; surface the state so it is
		// visible in dashboards even though resolution still succeeds.
		r.telemetry.Error(ctx, path, "mismatch detected but no corrected store found")
		return success(result)
	}

	correctedParent := &Parent{}
	correctBrandSlug := ""
	if brand, err := r.source.BrandByOrg(ctx, correctStore.Target.OrgID); err == nil && brand != nil {
		correctBrandSlug = brand.Slug
		correctedParent.Brand = r.brandEntity(brand)
	}
	correctedParent.Store = r.storeEntity(correctBrandSlug, correctStore)

	result.Corrected = &Context{
		Type:    publink.TypeProfessional,
		Entity:  *proLink,
		Display: result.Display,
		Parent:  correctedParent,
	}

	r.telemetry.MismatchCorrected(ctx, path, publink.TypeProfessional, proLink.Target)
	return success(result)
}

// resolveSoloProfessional handles /u/{slug}. A solo professional is the same
// entity type addressed through a flat personal path: no parent context is
// ever attached and no brand/store correction applies.
func (r *Resolver) resolveSoloProfessional(ctx context.Context, path, slug string) Result {
	key := cachekey.Join("u", slug)
	link, err := r.source.FetchLink(ctx, key, publink.TypeProfessional, slug)
	if err != nil {
		return r.fault(ctx, path, err)
	}
	if link == nil {
		return r.notFound(ctx, path, publink.TypeProfessional)
	}
	if link.Status == publink.StatusDisabled {
		return failure(ErrDisabled)
	}

	result := &Context{
		Type:    publink.TypeProfessional,
		Entity:  *link,
		Display: r.source.Display(key, *link),
	}
	r.telemetry.ResolverHit(ctx, path, publink.TypeProfessional, link.Target)
	return success(result)
}

// resolveStore handles /{brand}/{store}.
func (r *Resolver) resolveStore(ctx context.Context, path string, slugs Slugs) Result {
	if slugs.Brand == "" {
		return failure(ErrInvalidSlug)
	}

	key := cachekey.Join(string(publink.TypeStore), slugs.Brand, slugs.Store)
	link, err := r.source.FetchLink(ctx, key, publink.TypeStore, slugs.Store)
	if err != nil {
		return r.fault(ctx, path, err)
	}
	if link == nil {
		return r.notFound(ctx, path, publink.TypeStore)
	}
	if link.Status == publink.StatusDisabled {
		return failure(ErrDisabled)
	}

	var parent *Parent
	if brand := r.fetchBrand(ctx, slugs.Brand); brand != nil {
		parent = &Parent{Brand: r.brandEntity(brand)}
	}

	result := &Context{
		Type:    publink.TypeStore,
		Entity:  *link,
		Display: r.source.Display(key, *link),
		Parent:  parent,
	}
	r.telemetry.ResolverHit(ctx, path, publink.TypeStore, link.Target)
	return success(result)
}

// resolveBrand handles /{brand}.
func (r *Resolver) resolveBrand(ctx context.Context, path, slug string) Result {
	key := cachekey.Join(string(publink.TypeBrand), slug)
	link, err := r.source.FetchLink(ctx, key, publink.TypeBrand, slug)
	if err != nil {
		return r.fault(ctx, path, err)
	}
	if link == nil {
		return r.notFound(ctx, path, publink.TypeBrand)
	}
	if link.Status == publink.StatusDisabled {
		return failure(ErrDisabled)
	}

	result := &Context{
		Type:    publink.TypeBrand,
		Entity:  *link,
		Display: r.source.Display(key, *link),
	}
	r.telemetry.ResolverHit(ctx, path, publink.TypeBrand, link.Target)
	return success(result)
}

// parentFor assembles the brand/store parent context for an entity resolved
// under /{brand}/{store}. A missing brand link is omitted rather than failing
// the resolution.
func (r *Resolver) parentFor(ctx context.Context, brandSlug string, storeLink *publink.PublicLink) *Parent {
	parent := &Parent{Store: r.storeEntity(brandSlug, storeLink)}
	if brand := r.fetchBrand(ctx, brandSlug); brand != nil {
		parent.Brand = r.brandEntity(brand)
	}
	return parent
}

func (r *Resolver) fetchBrand(ctx context.Context, slug string) *publink.PublicLink {
	key := cachekey.Join(string(publink.TypeBrand), slug)
	link, err := r.source.FetchLink(ctx, key, publink.TypeBrand, slug)
	if err != nil {
		r.logger.WarnContext(ctx, "brand parent lookup failed",
			"brand", slug,
			"error", err.Error(),
		)
		return nil
	}
	return link
}

func (r *Resolver) brandEntity(link *publink.PublicLink) *Entity {
	key := cachekey.Join(string(publink.TypeBrand), link.Slug)
	return &Entity{
		Link:    *link,
		Display: r.source.Display(key, *link),
	}
}

// storeEntity keys the store display by the same composite path used for its
// link record.
func (r *Resolver) storeEntity(brandSlug string, link *publink.PublicLink) *Entity {
	key := cachekey.Join(string(publink.TypeStore), brandSlug, link.Slug)
	return &Entity{
		Link:    *link,
		Display: r.source.Display(key, *link),
	}
}

// notFound records the miss and returns the not_found result.
func (r *Resolver) notFound(ctx context.Context, path string, typ publink.LinkType) Result {
	r.telemetry.NotFound(ctx, path, typ)
	return failure(ErrNotFound)
}

// fault downgrades an unexpected lookup failure to not_found for the caller
// while keeping the underlying cause visible in logs and telemetry.
func (r *Resolver) fault(ctx context.Context, path string, err error) Result {
	r.logger.ErrorContext(ctx, "resolution failed",
		"path", path,
		"error", err.Error(),
	)
	r.telemetry.Error(ctx, path, err.Error())
	return failure(ErrNotFound)
}
