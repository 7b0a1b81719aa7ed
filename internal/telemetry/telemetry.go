// Package telemetry implements the resolver's event port on top of
// Prometheus counters and structured logs. Recording is synchronous but
// cheap: counter increments and one log line per event.
package telemetry

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agendou/linkresolver/internal/publink"
)

// Recorder counts resolution events and mirrors them to the log. It
// implements resolver.Telemetry.
type Recorder struct {
	logger *slog.Logger

	hits       *prometheus.CounterVec
	mismatches *prometheus.CounterVec
	notFounds  *prometheus.CounterVec
	redirects  prometheus.Counter
	errors     prometheus.Counter
}

// Config holds configuration for the Recorder.
type Config struct {
	// Registerer receives the recorder's collectors. Defaults to the
	// global Prometheus registerer.
	Registerer prometheus.Registerer
	Logger     *slog.Logger
}

// NewRecorder creates a Recorder and registers its collectors. It panics on
// duplicate registration, so build at most one per Registerer.
func NewRecorder(cfg Config) *Recorder {
	reg := cfg.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Recorder{
		logger: logger,
		hits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resolver_hits_total",
				Help: "Successful public path resolutions.",
			},
			[]string{"type"},
		),
		mismatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resolver_mismatch_corrected_total",
				Help: "Resolutions where the entity was found under the wrong container and a corrected location was attached.",
			},
			[]string{"type"},
		),
		notFounds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resolver_not_found_total",
				Help: "Resolutions that found no matching entity.",
			},
			[]string{"type"},
		),
		redirects: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "resolver_redirects_total",
				Help: "Resolutions short-circuited by a redirect rule.",
			},
		),
		errors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "resolver_errors_total",
				Help: "Unexpected failures during resolution, including uncorrectable mismatches.",
			},
		),
	}

	reg.MustRegister(r.hits, r.mismatches, r.notFounds, r.redirects, r.errors)
	return r
}

func (r *Recorder) ResolverHit(ctx context.Context, path string, typ publink.LinkType, target publink.Target) {
	r.hits.WithLabelValues(string(typ)).Inc()
	r.logger.DebugContext(ctx, "resolver hit",
		"path", path,
		"type", string(typ),
		"org_id", target.OrgID,
	)
}

func (r *Recorder) MismatchCorrected(ctx context.Context, path string, typ publink.LinkType, target publink.Target) {
	r.mismatches.WithLabelValues(string(typ)).Inc()
	r.logger.WarnContext(ctx, "ownership mismatch corrected",
		"path", path,
		"type", string(typ),
		"org_id", target.OrgID,
		"store_id", target.StoreID,
	)
}

func (r *Recorder) NotFound(ctx context.Context, path string, typ publink.LinkType) {
	r.notFounds.WithLabelValues(string(typ)).Inc()
	r.logger.DebugContext(ctx, "resolver miss",
		"path", path,
		"type", string(typ),
	)
}

func (r *Recorder) RedirectApplied(ctx context.Context, path, destination string) {
	r.redirects.Inc()
	r.logger.InfoContext(ctx, "redirect rule applied",
		"path", path,
		"destination", destination,
	)
}

func (r *Recorder) Error(ctx context.Context, path, message string) {
	r.errors.Inc()
	r.logger.ErrorContext(ctx, "resolver error event",
		"path", path,
		"message", message,
	)
}
