package catalogue_test

import (
	"context"
	"strings"
	"testing"

	"go-touring-backend/internal/domain"
	"go-touring-backend/pkg/catalogue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
services:
  - slug: tour-manager
    title: Tour Manager
    shortDescription: Coordinación integral de giras
    icon: compass
    accent: "#ff3366"
    glowColor: "rgba(255,51,102,0.4)"
    sections:
      - type: text
        title: Qué hacemos
        content: Todo el día a día de la gira.
      - _type: textImageSection
        content: Rutas y hoteles
        imageUrl: https://cdn.sanity.io/images/tour.jpg
      - type: carousel
        images: [a.jpg]
  - slug: vehiculos
    title: Vehículos
`

func TestLoad(t *testing.T) {
	services, err := catalogue.Load(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, services, 2)

	tm := services[0]
	assert.Equal(t, "#ff3366", tm.Accent)
	require.Len(t, tm.Sections, 2)
	assert.Equal(t, domain.TextSection{Title: "Qué hacemos", Content: "Todo el día a día de la gira."}, tm.Sections[0])

	textImage, ok := tm.Sections[1].(domain.TextImageSection)
	require.True(t, ok)
	assert.Equal(t, domain.ImageRight, textImage.ImagePosition)

	assert.NotNil(t, services[1].Sections)
	assert.Empty(t, services[1].Sections)
}

func TestLoadRejectsBadCatalogues(t *testing.T) {
	cases := map[string]string{
		"no slug":   "services:\n  - title: x\n",
		"duplicate": "services:\n  - slug: a\n  - slug: a\n",
		"not yaml":  "services: [",
	}
	for name, doc := range cases {
		_, err := catalogue.Load(strings.NewReader(doc))
		assert.Error(t, err, name)
	}
}

func TestSource(t *testing.T) {
	ctx := context.Background()
	services, err := catalogue.Load(strings.NewReader(sample))
	require.NoError(t, err)
	src := catalogue.NewSource(services)

	list, err := src.ListServices(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tour-manager", list[0].Slug)

	slugs, err := src.ListSlugs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"tour-manager", "vehiculos"}, slugs)

	detail, err := src.GetService(ctx, "vehiculos")
	require.NoError(t, err)
	assert.Equal(t, "Vehículos", detail.Title)

	_, err = src.GetService(ctx, "merchandising")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
