package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sync/atomic"
	"time"

	"go-touring-backend/internal/domain"
	"go-touring-backend/internal/repository/cache"
	"go-touring-backend/pkg/i18n"
	"go-touring-backend/pkg/logger"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

const (
	sitemapChangeFrequency = "monthly"
	homePriority           = 1.0
	pagePriority           = 0.8
)

type contentUsecase struct {
	source  domain.ContentSource
	cache   domain.ContentCache
	ttl     time.Duration
	siteURL string
	now     func() time.Time

	// generation is bumped by every invalidation; loads that straddle one
	// are not written back.
	generation atomic.Uint64
}

// NewContentUsecase serves the catalogue from source, caching every read in
// cache for ttl.
func NewContentUsecase(source domain.ContentSource, cache domain.ContentCache, ttl time.Duration, siteURL string) domain.ContentUsecase {
	return &contentUsecase{
		source:  source,
		cache:   cache,
		ttl:     ttl,
		siteURL: siteURL,
		now:     time.Now,
	}
}

func (uc *contentUsecase) ListServices(ctx context.Context) ([]domain.ServiceSummary, error) {
	return cached(ctx, uc, cache.ServicesKey, func() ([]domain.ServiceSummary, error) {
		return uc.source.ListServices(ctx)
	})
}

func (uc *contentUsecase) GetService(ctx context.Context, slug string) (*domain.ServiceDetail, error) {
	if !slugPattern.MatchString(slug) {
		return nil, domain.ErrInvalidSlug
	}
	return cached(ctx, uc, cache.ServiceKey(slug), func() (*domain.ServiceDetail, error) {
		return uc.source.GetService(ctx, slug)
	})
}

func (uc *contentUsecase) listSlugs(ctx context.Context) ([]string, error) {
	return cached(ctx, uc, cache.SlugsKey, func() ([]string, error) {
		return uc.source.ListSlugs(ctx)
	})
}

// Sitemap lists the homepage and every service page in each locale. When the
// content source has no slugs the service catalogue is used instead.
func (uc *contentUsecase) Sitemap(ctx context.Context) ([]domain.SitemapEntry, error) {
	slugs, err := uc.listSlugs(ctx)
	if err != nil {
		logger.Log.WarnContext(ctx, "Sitemap falling back to service catalogue", "error", err)
		slugs = nil
	}
	if len(slugs) == 0 {
		for _, opt := range domain.ServiceOptions {
			slugs = append(slugs, string(opt.Value))
		}
	}

	routes := make([]string, 0, len(slugs)+1)
	routes = append(routes, "")
	for _, slug := range slugs {
		routes = append(routes, "/servicios/"+slug)
	}

	lastModified := uc.now().UTC()
	entries := make([]domain.SitemapEntry, 0, len(routes)*len(i18n.Locales))
	for _, locale := range i18n.Locales {
		for _, route := range routes {
			priority := pagePriority
			if route == "" {
				priority = homePriority
			}
			entries = append(entries, domain.SitemapEntry{
				Locale:          string(locale),
				URL:             i18n.URL(uc.siteURL, locale, route),
				LastModified:    lastModified,
				ChangeFrequency: sitemapChangeFrequency,
				Priority:        priority,
				Alternates:      i18n.Alternates(uc.siteURL, route),
			})
		}
	}
	return entries, nil
}

func (uc *contentUsecase) Invalidate(ctx context.Context, slug string) error {
	uc.generation.Add(1)
	keys := []string{cache.ServicesKey, cache.SlugsKey}
	if slug != "" {
		keys = append(keys, cache.ServiceKey(slug))
	}
	if err := uc.cache.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("failed to invalidate content cache: %w", err)
	}
	return nil
}

func (uc *contentUsecase) PurgeCache(ctx context.Context) error {
	uc.generation.Add(1)
	if err := uc.cache.Purge(ctx); err != nil {
		return fmt.Errorf("failed to purge content cache: %w", err)
	}
	return nil
}

// cached reads key from the cache and falls back to load on a miss. Cache
// failures are logged and never fail the read. A load that overlaps an
// invalidation is returned but not cached.
func cached[T any](ctx context.Context, uc *contentUsecase, key string, load func() (T, error)) (T, error) {
	var value T

	body, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		logger.Log.WarnContext(ctx, "Content cache read failed", "key", key, "error", err)
	}
	if ok {
		if err := json.Unmarshal(body, &value); err == nil {
			return value, nil
		}
		logger.Log.WarnContext(ctx, "Discarding corrupt cache entry", "key", key)
	}

	gen := uc.generation.Load()
	value, err = load()
	if err != nil {
		return value, err
	}
	if uc.generation.Load() != gen {
		logger.Log.DebugContext(ctx, "Skipping cache write after invalidation", "key", key)
		return value, nil
	}

	body, err = json.Marshal(value)
	if err != nil {
		return value, nil
	}
	if err := uc.cache.Set(ctx, key, body, uc.ttl); err != nil {
		logger.Log.WarnContext(ctx, "Content cache write failed", "key", key, "error", err)
	}
	return value, nil
}

type unconfiguredSource struct{}

// NewUnconfiguredSource is the content source used when no CMS or database is
// configured: listings are empty and every detail lookup is not found.
func NewUnconfiguredSource() domain.ContentSource {
	return unconfiguredSource{}
}

func (unconfiguredSource) ListServices(ctx context.Context) ([]domain.ServiceSummary, error) {
	return []domain.ServiceSummary{}, nil
}

func (unconfiguredSource) GetService(ctx context.Context, slug string) (*domain.ServiceDetail, error) {
	return nil, domain.ErrNotFound
}

func (unconfiguredSource) ListSlugs(ctx context.Context) ([]string, error) {
	return []string{}, nil
}
