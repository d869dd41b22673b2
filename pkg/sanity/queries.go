package sanity

import (
	"context"
	"errors"

	"go-touring-backend/internal/domain"
)

const servicesListQuery = `*[_type == "service"] | order(order asc) {
  "slug": slug.current,
  title,
  shortDescription,
  icon,
  accent,
  glowColor
}`

const serviceDetailQuery = `*[_type == "service" && slug.current == $slug][0] {
  "slug": slug.current,
  title,
  shortDescription,
  heroImage,
  icon,
  accent,
  glowColor,
  sections[] {
    _type,
    type,
    title,
    content,
    imageUrl,
    videoUrl,
    images,
    imagePosition
  }
}`

const allServiceSlugsQuery = `*[_type == "service"] | order(order asc).slug.current`

// ListServices implements domain.ContentSource.
func (c *Client) ListServices(ctx context.Context) ([]domain.ServiceSummary, error) {
	var services []domain.ServiceSummary
	if err := c.Query(ctx, servicesListQuery, nil, &services); err != nil {
		if errors.Is(err, ErrNoResult) {
			return []domain.ServiceSummary{}, nil
		}
		return nil, err
	}
	return services, nil
}

// GetService implements domain.ContentSource.
func (c *Client) GetService(ctx context.Context, slug string) (*domain.ServiceDetail, error) {
	var service domain.ServiceDetail
	err := c.Query(ctx, serviceDetailQuery, map[string]interface{}{"slug": slug}, &service)
	if errors.Is(err, ErrNoResult) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// ListSlugs implements domain.ContentSource.
func (c *Client) ListSlugs(ctx context.Context) ([]string, error) {
	var slugs []string
	if err := c.Query(ctx, allServiceSlugsQuery, nil, &slugs); err != nil {
		if errors.Is(err, ErrNoResult) {
			return []string{}, nil
		}
		return nil, err
	}

	out := slugs[:0]
	for _, slug := range slugs {
		if slug != "" {
			out = append(out, slug)
		}
	}
	return out, nil
}
