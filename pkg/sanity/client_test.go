package sanity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-touring-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{ProjectID: "abc123", Dataset: "production", BaseURL: srv.URL, Token: "tok"})
	require.NoError(t, err)
	return c
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(Config{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	c, err := NewClient(Config{ProjectID: "abc123", UseCDN: true})
	require.NoError(t, err)
	assert.Equal(t, "https://abc123.apicdn.sanity.io/v2024-01-01/data/query/production", c.endpoint)

	c, err = NewClient(Config{ProjectID: "abc123", UseCDN: true, Token: "secret", Dataset: "staging"})
	require.NoError(t, err)
	assert.Equal(t, "https://abc123.api.sanity.io/v2024-01-01/data/query/staging", c.endpoint, "tokens bypass the CDN")
}

func TestClient_ListServices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2024-01-01/data/query/production", r.URL.Path)
		assert.Equal(t, "published", r.URL.Query().Get("perspective"))
		assert.Contains(t, r.URL.Query().Get("query"), `order(order asc)`)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"result":[{"slug":"tour-manager","title":"Tour Manager","icon":"/icons/tm.png"}]}`))
	})

	services, err := c.ListServices(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "tour-manager", services[0].Slug)
	assert.Equal(t, "/icons/tm.png", services[0].Icon)
}

func TestClient_GetService(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("$slug") != `"vehiculos"` {
			_, _ = w.Write([]byte(`{"result":null}`))
			return
		}
		_, _ = w.Write([]byte(`{"result":{
			"slug":"vehiculos","title":"Vehículos","heroImage":"https://img/hero.jpg",
			"sections":[{"_type":"textSection","type":"text","content":"Flota propia"},
			            {"_type":"gallerySection","images":["https://img/1.jpg"]}]}}`))
	})

	svc, err := c.GetService(context.Background(), "vehiculos")
	require.NoError(t, err)
	assert.Equal(t, "Vehículos", svc.Title)
	assert.Equal(t, "https://img/hero.jpg", svc.HeroImage)
	require.Len(t, svc.Sections, 2)
	assert.Equal(t, domain.TextSection{Content: "Flota propia"}, svc.Sections[0])
	assert.Equal(t, domain.SectionGallery, svc.Sections[1].SectionType())

	_, err = c.GetService(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_ListSlugsSkipsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":["tour-manager",null,"vehiculos"]}`))
	})

	slugs, err := c.ListSlugs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"tour-manager", "vehiculos"}, slugs)
}

func TestClient_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"description":"unexpected token"}}`))
	})

	_, err := c.ListServices(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected token")
	assert.False(t, errors.Is(err, ErrNoResult))
}
