package publink

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agendou/linkresolver/internal/errx"
)

// RawLink is a link record as it arrives from the store, before validation.
// Fields are plain strings so malformed rows can be inspected and rejected
// instead of propagating half-filled structs.
type RawLink struct {
	ID          string
	Type        string
	Slug        string
	Status      string
	OrgID       string
	StoreID     string
	ProID       string
	ServiceID   string
	Name        string
	Logo        string
	Avatar      string
	Description string
	UpdatedAt   time.Time
}

// Decode validates and normalizes a raw record into a PublicLink. Slugs and
// enum fields are lowercased and trimmed; any shape violation is rejected
// with errx.Invalid.
func Decode(raw RawLink) (PublicLink, error) {
	const op = "publink.Decode"

	id := strings.TrimSpace(raw.ID)
	if id == "" {
		return PublicLink{}, errx.E(op, errx.Invalid, errors.New("missing id"))
	}

	typ := LinkType(strings.ToLower(strings.TrimSpace(raw.Type)))
	if !typ.Valid() {
		return PublicLink{}, errx.E(op, errx.Invalid, fmt.Errorf("unknown link type %q", raw.Type))
	}

	slug := strings.ToLower(strings.TrimSpace(raw.Slug))
	if slug == "" {
		return PublicLink{}, errx.E(op, errx.Invalid, errors.New("missing slug"))
	}

	status := LinkStatus(strings.ToLower(strings.TrimSpace(raw.Status)))
	if !status.Valid() {
		return PublicLink{}, errx.E(op, errx.Invalid, fmt.Errorf("unknown status %q", raw.Status))
	}

	target := Target{
		OrgID:     strings.TrimSpace(raw.OrgID),
		StoreID:   strings.TrimSpace(raw.StoreID),
		ProID:     strings.TrimSpace(raw.ProID),
		ServiceID: strings.TrimSpace(raw.ServiceID),
	}
	if err := validateTarget(typ, target); err != nil {
		return PublicLink{}, errx.E(op, errx.Invalid, err)
	}

	return PublicLink{
		ID:          id,
		Type:        typ,
		Slug:        slug,
		Status:      status,
		Target:      target,
		Name:        strings.TrimSpace(raw.Name),
		Logo:        strings.TrimSpace(raw.Logo),
		Avatar:      strings.TrimSpace(raw.Avatar),
		Description: strings.TrimSpace(raw.Description),
		UpdatedAt:   raw.UpdatedAt,
	}, nil
}

// validateTarget enforces the ownership chain required by each link type:
// orgId always, storeId from store down, proId from professional down,
// serviceId for services only.
func validateTarget(typ LinkType, target Target) error {
	if target.OrgID == "" {
		return errors.New("target missing org id")
	}

	switch typ {
	case TypeBrand:
		// org only
	case TypeStore:
		if target.StoreID == "" {
			return errors.New("store link missing store id")
		}
	case TypeProfessional:
		if target.StoreID == "" {
			return errors.New("professional link missing store id")
		}
		if target.ProID == "" {
			return errors.New("professional link missing pro id")
		}
	case TypeService:
		if target.StoreID == "" {
			return errors.New("service link missing store id")
		}
		if target.ProID == "" {
			return errors.New("service link missing pro id")
		}
		if target.ServiceID == "" {
			return errors.New("service link missing service id")
		}
	}
	return nil
}
