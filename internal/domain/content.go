package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ServiceSummary is the card shown in the homepage services grid.
type ServiceSummary struct {
	Slug             string `json:"slug"`
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
	Icon             string `json:"icon"`
	Accent           string `json:"accent"`
	GlowColor        string `json:"glowColor"`
}

// ServiceDetail is the full content of a service page.
type ServiceDetail struct {
	ServiceSummary
	HeroImage string      `json:"heroImage,omitempty"`
	Sections  SectionList `json:"sections"`
}

// SectionType tags the variant of a Section.
type SectionType string

const (
	SectionText      SectionType = "text"
	SectionImage     SectionType = "image"
	SectionVideo     SectionType = "video"
	SectionGallery   SectionType = "gallery"
	SectionTextImage SectionType = "text-image"
)

// cmsObjectTypes maps CMS object names to section tags, used when a
// document predates the explicit type field.
var cmsObjectTypes = map[string]SectionType{
	"textSection":      SectionText,
	"imageSection":     SectionImage,
	"videoSection":     SectionVideo,
	"gallerySection":   SectionGallery,
	"textImageSection": SectionTextImage,
}

// Section is one block of a service page. The concrete types are
// TextSection, ImageSection, VideoSection, GallerySection and TextImageSection.
type Section interface {
	SectionType() SectionType
}

type TextSection struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}

type ImageSection struct {
	Title    string `json:"title,omitempty"`
	ImageURL string `json:"imageUrl"`
}

type VideoSection struct {
	Title    string `json:"title,omitempty"`
	VideoURL string `json:"videoUrl"`
}

type GallerySection struct {
	Title  string   `json:"title,omitempty"`
	Images []string `json:"images"`
}

// ImagePosition places the image of a TextImageSection.
type ImagePosition string

const (
	ImageLeft  ImagePosition = "left"
	ImageRight ImagePosition = "right"
)

type TextImageSection struct {
	Title         string        `json:"title,omitempty"`
	Content       string        `json:"content"`
	ImageURL      string        `json:"imageUrl"`
	ImagePosition ImagePosition `json:"imagePosition"`
}

func (TextSection) SectionType() SectionType      { return SectionText }
func (ImageSection) SectionType() SectionType     { return SectionImage }
func (VideoSection) SectionType() SectionType     { return SectionVideo }
func (GallerySection) SectionType() SectionType   { return SectionGallery }
func (TextImageSection) SectionType() SectionType { return SectionTextImage }

// SectionList encodes and decodes sections using the "type" tag.
type SectionList []Section

type sectionTag struct {
	Type    SectionType `json:"type"`
	CMSType string      `json:"_type"`
}

// DecodeSection decodes a single tagged section. ok is false for unknown tags.
func DecodeSection(raw json.RawMessage) (section Section, ok bool, err error) {
	var tag sectionTag
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, false, fmt.Errorf("decode section tag: %w", err)
	}

	kind := tag.Type
	if kind == "" {
		kind = cmsObjectTypes[tag.CMSType]
	}

	switch kind {
	case SectionText:
		var s TextSection
		err = json.Unmarshal(raw, &s)
		section = s
	case SectionImage:
		var s ImageSection
		err = json.Unmarshal(raw, &s)
		section = s
	case SectionVideo:
		var s VideoSection
		err = json.Unmarshal(raw, &s)
		section = s
	case SectionGallery:
		var s GallerySection
		err = json.Unmarshal(raw, &s)
		section = s
	case SectionTextImage:
		s := TextImageSection{ImagePosition: ImageRight}
		err = json.Unmarshal(raw, &s)
		if s.ImagePosition != ImageLeft {
			s.ImagePosition = ImageRight
		}
		section = s
	default:
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("decode %s section: %w", kind, err)
	}
	return section, true, nil
}

// UnmarshalJSON skips sections with an unknown tag.
func (l *SectionList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	out := make(SectionList, 0, len(raws))
	for _, raw := range raws {
		s, ok, err := DecodeSection(raw)
		if err != nil {
			return err
		}
		if ok {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

// MarshalJSON writes each section with its "type" tag.
func (l SectionList) MarshalJSON() ([]byte, error) {
	out := make([]map[string]interface{}, 0, len(l))
	for _, s := range l {
		body, err := json.Marshal(s)
		if err != nil {
			return nil, err
		}
		fields := map[string]interface{}{}
		if err := json.Unmarshal(body, &fields); err != nil {
			return nil, err
		}
		fields["type"] = s.SectionType()
		out = append(out, fields)
	}
	return json.Marshal(out)
}

// ContentSource reads the service catalogue from a content backend.
type ContentSource interface {
	ListServices(ctx context.Context) ([]ServiceSummary, error)
	// GetService returns ErrNotFound when no service has the slug.
	GetService(ctx context.Context, slug string) (*ServiceDetail, error)
	ListSlugs(ctx context.Context) ([]string, error)
}

// ContentStore is a writable ContentSource.
type ContentStore interface {
	ContentSource
	// ReplaceCatalogue makes services, in order, the whole catalogue.
	ReplaceCatalogue(ctx context.Context, services []ServiceDetail) error
}

// ContentCache stores serialized catalogue responses.
type ContentCache interface {
	// Get returns ok=false on a miss.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// Purge drops every catalogue entry.
	Purge(ctx context.Context) error
}

// SitemapEntry is one localized URL of the public site.
type SitemapEntry struct {
	Locale          string            `json:"locale"`
	URL             string            `json:"url"`
	LastModified    time.Time         `json:"lastModified"`
	ChangeFrequency string            `json:"changeFrequency"`
	Priority        float64           `json:"priority"`
	Alternates      map[string]string `json:"alternates"`
}

type ContentUsecase interface {
	ListServices(ctx context.Context) ([]ServiceSummary, error)
	GetService(ctx context.Context, slug string) (*ServiceDetail, error)
	Sitemap(ctx context.Context) ([]SitemapEntry, error)
	// Invalidate drops the cached pages affected by a change to slug.
	// An empty slug only drops the listings.
	Invalidate(ctx context.Context, slug string) error
	PurgeCache(ctx context.Context) error
}

// WebhookPayload is the projection the CMS sends on document changes.
type WebhookPayload struct {
	Type string `json:"_type"`
	Slug *struct {
		Current string `json:"current"`
	} `json:"slug,omitempty"`
}

// RevalidateResult reports which site paths were invalidated.
type RevalidateResult struct {
	Revalidated bool     `json:"revalidated"`
	Now         int64    `json:"now,omitempty"`
	Paths       []string `json:"paths,omitempty"`
	Message     string   `json:"message,omitempty"`
}

type RevalidateUsecase interface {
	// HandleWebhook verifies the signature header against body and
	// invalidates the affected pages.
	HandleWebhook(ctx context.Context, signatureHeader string, body []byte) (*RevalidateResult, error)
}
