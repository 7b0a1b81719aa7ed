package resolver

import (
	"context"

	"github.com/agendou/linkresolver/internal/publink"
)

// Telemetry is the fire-and-forget event port of the resolver. Implementations
// must never block and must never fail a resolution; the resolver core has no
// compile-time dependency on any telemetry backend.
type Telemetry interface {
	ResolverHit(ctx context.Context, path string, typ publink.LinkType, target publink.Target)
	MismatchCorrected(ctx context.Context, path string, typ publink.LinkType, target publink.Target)
	NotFound(ctx context.Context, path string, typ publink.LinkType)
	RedirectApplied(ctx context.Context, path, destination string)
	Error(ctx context.Context, path, message string)
}

// NopTelemetry discards all events.
type NopTelemetry struct{}

func (NopTelemetry) ResolverHit(context.Context, string, publink.LinkType, publink.Target) {}
func (NopTelemetry) MismatchCorrected(context.Context, string, publink.LinkType, publink.Target) {
}
func (NopTelemetry) NotFound(context.Context, string, publink.LinkType) {}
func (NopTelemetry) RedirectApplied(context.Context, string, string)    {}
func (NopTelemetry) Error(context.Context, string, string)              {}
