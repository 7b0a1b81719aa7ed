package publink

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agendou/linkresolver/internal/errx"
)

const linkColumns = `id, link_type, slug, status, org_id, store_id, pro_id,
	service_id, display_name, logo_url, avatar_url, description, updated_at`

// pgxStore implements Store against the public_links table.
type pgxStore struct {
	pool *pgxpool.Pool
}

// NewPgxStore creates a Store backed by a pgx connection pool.
func NewPgxStore(pool *pgxpool.Pool) Store {
	return &pgxStore{pool: pool}
}

// linkRow mirrors the public_links columns. Optional columns are nullable so
// a partially filled row is visible as such before decoding.
type linkRow struct {
	ID          pgtype.Text
	LinkType    pgtype.Text
	Slug        pgtype.Text
	Status      pgtype.Text
	OrgID       pgtype.Text
	StoreID     pgtype.Text
	ProID       pgtype.Text
	ServiceID   pgtype.Text
	DisplayName pgtype.Text
	LogoURL     pgtype.Text
	AvatarURL   pgtype.Text
	Description pgtype.Text
	UpdatedAt   pgtype.Timestamptz
}

func (r linkRow) toRaw() RawLink {
	var updatedAt time.Time
	if r.UpdatedAt.Valid {
		updatedAt = r.UpdatedAt.Time
	}

	return RawLink{
		ID:          r.ID.String,
		Type:        r.LinkType.String,
		Slug:        r.Slug.String,
		Status:      r.Status.String,
		OrgID:       r.OrgID.String,
		StoreID:     r.StoreID.String,
		ProID:       r.ProID.String,
		ServiceID:   r.ServiceID.String,
		Name:        r.DisplayName.String,
		Logo:        r.LogoURL.String,
		Avatar:      r.AvatarURL.String,
		Description: r.Description.String,
		UpdatedAt:   updatedAt,
	}
}

func (s *pgxStore) queryOne(ctx context.Context, op, query string, args ...any) (PublicLink, error) {
	var row linkRow
	err := s.pool.QueryRow(ctx, query, args...).Scan(
		&row.ID,
		&row.LinkType,
		&row.Slug,
		&row.Status,
		&row.OrgID,
		&row.StoreID,
		&row.ProID,
		&row.ServiceID,
		&row.DisplayName,
		&row.LogoURL,
		&row.AvatarURL,
		&row.Description,
		&row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PublicLink{}, errx.E(op, errx.NotFound, err)
		}
		return PublicLink{}, errx.E(op, errx.Unavailable, err)
	}

	return Decode(row.toRaw())
}

func (s *pgxStore) FindBySlug(ctx context.Context, typ LinkType, slug string) (PublicLink, error) {
	const op = "publink.repo.FindBySlug"
	const query = `SELECT ` + linkColumns + `
		FROM public_links
		WHERE link_type = $1 AND slug = $2
		LIMIT 1`

	return s.queryOne(ctx, op, query, string(typ), slug)
}

func (s *pgxStore) FindStoreByStoreID(ctx context.Context, storeID string) (PublicLink, error) {
	const op = "publink.repo.FindStoreByStoreID"
	const query = `SELECT ` + linkColumns + `
		FROM public_links
		WHERE link_type = 'store' AND store_id = $1
		LIMIT 1`

	return s.queryOne(ctx, op, query, storeID)
}

func (s *pgxStore) FindBrandByOrgID(ctx context.Context, orgID string) (PublicLink, error) {
	const op = "publink.repo.FindBrandByOrgID"
	const query = `SELECT ` + linkColumns + `
		FROM public_links
		WHERE link_type = 'brand' AND org_id = $1
		LIMIT 1`

	return s.queryOne(ctx, op, query, orgID)
}

func (s *pgxStore) Ping(ctx context.Context) error {
	const op = "publink.repo.Ping"
	if err := s.pool.Ping(ctx); err != nil {
		return errx.E(op, errx.Unavailable, err)
	}
	return nil
}
