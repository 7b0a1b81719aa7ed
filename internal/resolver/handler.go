package resolver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/agendou/linkresolver/internal/cache"
	"github.com/agendou/linkresolver/internal/httpx"
)

// Service is the resolution capability the handler depends on.
type Service interface {
	Resolve(ctx context.Context, slugs Slugs) Result
}

// Maintenance is the operational cache interface exposed over HTTP.
type Maintenance interface {
	ClearCaches()
	CleanExpired() int
	CacheStats() (links cache.Stats, displays cache.Stats)
}

// Handler provides the HTTP surface of the resolver.
type Handler struct {
	service     Service
	maintenance Maintenance
	logger      *slog.Logger
}

// HandlerConfig holds configuration for the handler.
type HandlerConfig struct {
	Service     Service
	Maintenance Maintenance
	Logger      *slog.Logger
}

// NewHandler creates a new Handler instance.
func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		service:     cfg.Service,
		maintenance: cfg.Maintenance,
		logger:      logger,
	}
}

// ResolveBrand handles GET /{brand}.
func (h *Handler) ResolveBrand(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, Slugs{Brand: r.PathValue("brand")})
}

// ResolveStore handles GET /{brand}/{store}.
func (h *Handler) ResolveStore(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, Slugs{
		Brand: r.PathValue("brand"),
		Store: r.PathValue("store"),
	})
}

// ResolveProfessional handles GET /{brand}/{store}/{pro}.
func (h *Handler) ResolveProfessional(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, Slugs{
		Brand: r.PathValue("brand"),
		Store: r.PathValue("store"),
		Pro:   r.PathValue("pro"),
	})
}

// ResolveSoloProfessional handles GET /u/{pro}.
func (h *Handler) ResolveSoloProfessional(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, Slugs{SoloPro: r.PathValue("pro")})
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request, slugs Slugs) {
	ctx := r.Context()
	path := slugs.Path()

	logger := h.logger.With(
		"request_id", httpx.GetRequestID(ctx),
		"path", path,
	)

	result := h.service.Resolve(ctx, slugs)

	if result.Success {
		logger.InfoContext(ctx, "public path resolved",
			"type", string(result.Context.Type),
			"slug", result.Context.Entity.Slug,
			"mismatch", result.Context.IsMismatch,
		)
		httpx.WriteJSON(w, http.StatusOK, result)
		return
	}

	switch result.Error {
	case ErrRedirect:
		logger.InfoContext(ctx, "redirect applied",
			"to", result.Redirect.To,
			"redirect_type", string(result.Redirect.Type),
		)
		http.Redirect(w, r, result.Redirect.To, result.Redirect.Type.StatusCode())

	case ErrDisabled:
		logger.InfoContext(ctx, "public path disabled")
		httpx.WriteError(w, http.StatusGone, "disabled",
			"this page is no longer available", nil)

	case ErrInvalidSlug:
		logger.WarnContext(ctx, "unsupported slug combination")
		httpx.WriteError(w, http.StatusBadRequest, "invalid_slug",
			"the requested path is not a valid public address", nil)

	default:
		logger.InfoContext(ctx, "public path not found")
		httpx.WriteError(w, http.StatusNotFound, "not_found",
			"this page doesn't exist", nil)
	}
}

// cacheStatsResponse is the JSON shape of the cache stats endpoint.
type cacheStatsResponse struct {
	Links    cache.Stats `json:"links"`
	Displays cache.Stats `json:"displays"`
}

// CacheStats handles GET /x/cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	links, displays := h.maintenance.CacheStats()
	httpx.WriteJSON(w, http.StatusOK, cacheStatsResponse{
		Links:    links,
		Displays: displays,
	})
}

// CacheClear handles POST /x/cache/clear.
func (h *Handler) CacheClear(w http.ResponseWriter, r *http.Request) {
	h.maintenance.ClearCaches()
	h.logger.InfoContext(r.Context(), "caches cleared",
		"request_id", httpx.GetRequestID(r.Context()),
	)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// CacheClean handles POST /x/cache/clean. It sweeps expired entries from
// both caches and reports how many were removed.
func (h *Handler) CacheClean(w http.ResponseWriter, r *http.Request) {
	removed := h.maintenance.CleanExpired()
	h.logger.InfoContext(r.Context(), "expired cache entries swept",
		"request_id", httpx.GetRequestID(r.Context()),
		"removed", removed,
	)
	httpx.WriteJSON(w, http.StatusOK, map[string]int{"removed": removed})
}
