package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-touring-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// Schema of the services table, applied by operators:
//
//	CREATE TABLE services (
//	    slug              TEXT PRIMARY KEY,
//	    title             TEXT NOT NULL,
//	    short_description TEXT NOT NULL,
//	    hero_image        TEXT NOT NULL DEFAULT '',
//	    icon              TEXT NOT NULL,
//	    accent            TEXT NOT NULL,
//	    glow_color        TEXT NOT NULL,
//	    sort_order        INT  NOT NULL,
//	    sections          JSONB NOT NULL DEFAULT '[]',
//	    updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
//	);

type serviceRepo struct {
	db *pgxpool.Pool
}

// NewServiceRepository creates a content store backed by the services table
func NewServiceRepository(db *pgxpool.Pool) domain.ContentStore {
	return &serviceRepo{db: db}
}

// ListServices returns the catalogue cards in display order
func (r *serviceRepo) ListServices(ctx context.Context) ([]domain.ServiceSummary, error) {
	query := `
		SELECT slug, title, short_description, icon, accent, glow_color
		FROM services
		ORDER BY sort_order ASC, slug ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []domain.ServiceSummary{}
	for rows.Next() {
		var s domain.ServiceSummary
		if err := rows.Scan(&s.Slug, &s.Title, &s.ShortDescription, &s.Icon, &s.Accent, &s.GlowColor); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

// GetService retrieves a service page by slug
func (r *serviceRepo) GetService(ctx context.Context, slug string) (*domain.ServiceDetail, error) {
	query := `
		SELECT slug, title, short_description, hero_image, icon, accent, glow_color, sections
		FROM services
		WHERE slug = $1`

	var (
		s        domain.ServiceDetail
		sections []byte
	)
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&s.Slug, &s.Title, &s.ShortDescription, &s.HeroImage,
		&s.Icon, &s.Accent, &s.GlowColor, &sections,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(sections, &s.Sections); err != nil {
		return nil, fmt.Errorf("decode sections of %s: %w", slug, err)
	}
	return &s, nil
}

// ListSlugs returns every slug in display order
func (r *serviceRepo) ListSlugs(ctx context.Context) ([]string, error) {
	query := `SELECT COALESCE(array_agg(slug ORDER BY sort_order, slug), '{}') FROM services`

	var slugs []string
	if err := r.db.QueryRow(ctx, query).Scan(pq.Array(&slugs)); err != nil {
		return nil, err
	}
	if slugs == nil {
		slugs = []string{}
	}
	return slugs, nil
}

// ReplaceCatalogue upserts services with their position as sort order and
// deletes every other row, in one transaction.
func (r *serviceRepo) ReplaceCatalogue(ctx context.Context, services []domain.ServiceDetail) error {
	upsert := `
		INSERT INTO services (slug, title, short_description, hero_image, icon, accent, glow_color, sort_order, sections, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title,
			short_description = EXCLUDED.short_description,
			hero_image = EXCLUDED.hero_image,
			icon = EXCLUDED.icon,
			accent = EXCLUDED.accent,
			glow_color = EXCLUDED.glow_color,
			sort_order = EXCLUDED.sort_order,
			sections = EXCLUDED.sections,
			updated_at = now()`

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		slugs := make([]string, 0, len(services))
		for i, s := range services {
			sections := s.Sections
			if sections == nil {
				sections = domain.SectionList{}
			}
			body, err := json.Marshal(sections)
			if err != nil {
				return fmt.Errorf("encode sections of %s: %w", s.Slug, err)
			}
			if _, err := tx.Exec(ctx, upsert,
				s.Slug, s.Title, s.ShortDescription, s.HeroImage,
				s.Icon, s.Accent, s.GlowColor, i, string(body),
			); err != nil {
				return fmt.Errorf("upsert service %s: %w", s.Slug, err)
			}
			slugs = append(slugs, s.Slug)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM services WHERE NOT (slug = ANY($1))`, pq.Array(slugs)); err != nil {
			return fmt.Errorf("delete stale services: %w", err)
		}
		return nil
	})
}
