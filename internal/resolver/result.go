// Package resolver maps hierarchical public URLs (brand, store, professional
// and solo-professional slugs) to backend entities, applying redirect rules,
// precedence, and ownership mismatch detection with correction.
package resolver

import "github.com/agendou/linkresolver/internal/publink"

// Slugs is the input of one resolution: the slug segments extracted from a
// public URL. All fields are optional; precedence decides which one wins.
type Slugs struct {
	Brand   string
	Store   string
	Pro     string
	SoloPro string
}

// Path builds the canonical path string for a slug set. The same rule is
// used for redirect lookups, telemetry and error reporting.
func (s Slugs) Path() string {
	switch {
	case s.Pro != "" && s.Store != "" && s.Brand != "":
		return "/" + s.Brand + "/" + s.Store + "/" + s.Pro
	case s.SoloPro != "":
		return "/u/" + s.SoloPro
	case s.Store != "" && s.Brand != "":
		return "/" + s.Brand + "/" + s.Store
	case s.Brand != "":
		return "/" + s.Brand
	default:
		return "/"
	}
}

// ErrorKind is the resolver's public failure taxonomy. Redirect is a signal
// to navigate elsewhere, not a true error.
type ErrorKind string

const (
	ErrNotFound    ErrorKind = "not_found"
	ErrDisabled    ErrorKind = "disabled"
	ErrInvalidSlug ErrorKind = "invalid_slug"
	ErrRedirect    ErrorKind = "redirect"
)

// Entity pairs a resolved link with its display projection.
type Entity struct {
	Link    publink.PublicLink   `json:"link"`
	Display publink.DisplayModel `json:"display"`
}

// Parent carries the container context of a resolved entity.
type Parent struct {
	Brand *Entity `json:"brand,omitempty"`
	Store *Entity `json:"store,omitempty"`
}

// Context is the ephemeral result of one successful resolution. It is
// constructed fresh per request and never persisted.
type Context struct {
	Type    publink.LinkType     `json:"type"`
	Entity  publink.PublicLink   `json:"entity"`
	Display publink.DisplayModel `json:"display"`
	Parent  *Parent              `json:"parent,omitempty"`

	// IsMismatch is set when the entity does not belong under the requested
	// path. Mismatch is not a failure; Corrected, when present, points at
	// the location where the entity actually lives.
	IsMismatch bool     `json:"is_mismatch"`
	Corrected  *Context `json:"corrected,omitempty"`
}

// Result is the tagged outcome of a resolution.
type Result struct {
	Success  bool      `json:"success"`
	Context  *Context  `json:"context,omitempty"`
	Error    ErrorKind `json:"error,omitempty"`
	Redirect *Redirect `json:"redirect,omitempty"`
}

func success(ctx *Context) Result {
	return Result{Success: true, Context: ctx}
}

func failure(kind ErrorKind) Result {
	return Result{Success: false, Error: kind}
}
