// Package catalogue reads the service catalogue from a YAML file. It backs
// the "file" content backend and the seed command.
package catalogue

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go-touring-backend/internal/domain"

	"gopkg.in/yaml.v3"
)

type document struct {
	Services []interface{} `yaml:"services"`
}

// Load decodes a catalogue document. Sections use the same tagged form as
// the API, so the YAML tree is re-encoded as JSON before decoding.
func Load(r io.Reader) ([]domain.ServiceDetail, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}

	body, err := json.Marshal(doc.Services)
	if err != nil {
		return nil, fmt.Errorf("encode catalogue: %w", err)
	}
	var services []domain.ServiceDetail
	if err := json.Unmarshal(body, &services); err != nil {
		return nil, fmt.Errorf("decode catalogue: %w", err)
	}

	seen := make(map[string]bool, len(services))
	for i, s := range services {
		if s.Slug == "" {
			return nil, fmt.Errorf("catalogue entry %d has no slug", i)
		}
		if seen[s.Slug] {
			return nil, fmt.Errorf("duplicate slug %q", s.Slug)
		}
		seen[s.Slug] = true
		if services[i].Sections == nil {
			services[i].Sections = domain.SectionList{}
		}
	}
	return services, nil
}

func LoadFile(path string) ([]domain.ServiceDetail, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Source serves a loaded catalogue in file order.
type Source struct {
	services []domain.ServiceDetail
}

func NewSource(services []domain.ServiceDetail) *Source {
	return &Source{services: services}
}

func (s *Source) ListServices(ctx context.Context) ([]domain.ServiceSummary, error) {
	out := make([]domain.ServiceSummary, 0, len(s.services))
	for _, svc := range s.services {
		out = append(out, svc.ServiceSummary)
	}
	return out, nil
}

func (s *Source) GetService(ctx context.Context, slug string) (*domain.ServiceDetail, error) {
	for i := range s.services {
		if s.services[i].Slug == slug {
			detail := s.services[i]
			return &detail, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Source) ListSlugs(ctx context.Context) ([]string, error) {
	out := make([]string, 0, len(s.services))
	for _, svc := range s.services {
		out = append(out, svc.Slug)
	}
	return out, nil
}
