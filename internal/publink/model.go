// Package publink holds the public link domain model and the cache-first
// lookup layer over the link store.
package publink

import "time"

// LinkType identifies what kind of entity a public link points at.
// The set is fixed; a link never changes type after creation.
type LinkType string

const (
	TypeBrand        LinkType = "brand"
	TypeStore        LinkType = "store"
	TypeProfessional LinkType = "professional"
	TypeService      LinkType = "service"
)

// Valid reports whether t is one of the known link types.
func (t LinkType) Valid() bool {
	switch t {
	case TypeBrand, TypeStore, TypeProfessional, TypeService:
		return true
	}
	return false
}

// LinkStatus controls public visibility. A disabled link resolves to a
// distinct failure rather than not-found.
type LinkStatus string

const (
	StatusActive   LinkStatus = "active"
	StatusDisabled LinkStatus = "disabled"
)

// Valid reports whether s is one of the known statuses.
func (s LinkStatus) Valid() bool {
	return s == StatusActive || s == StatusDisabled
}

// Target is the ownership chain of a link. OrgID is always present; the
// other fields are present depending on the link type.
type Target struct {
	OrgID     string `json:"org_id"`
	StoreID   string `json:"store_id,omitempty"`
	ProID     string `json:"pro_id,omitempty"`
	ServiceID string `json:"service_id,omitempty"`
}

// PublicLink is a resolvable entity reference owned by the link store.
// The resolver only reads these records.
type PublicLink struct {
	ID          string     `json:"id"`
	Type        LinkType   `json:"type"`
	Slug        string     `json:"slug"`
	Status      LinkStatus `json:"status"`
	Target      Target     `json:"target"`
	Name        string     `json:"name,omitempty"`
	Logo        string     `json:"logo,omitempty"`
	Avatar      string     `json:"avatar,omitempty"`
	Description string     `json:"description,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DisplayModel is the presentation projection of a PublicLink. It is derived
// and cached independently of the link record because parts of it may be
// computed rather than stored.
type DisplayModel struct {
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Status      LinkStatus `json:"status"`
	Logo        string     `json:"logo,omitempty"`
	Avatar      string     `json:"avatar,omitempty"`
	Description string     `json:"description,omitempty"`
}
