package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURL(t *testing.T) {
	assert.Equal(t, "https://bettercalljon.com/es", URL("https://bettercalljon.com/", Spanish, ""))
	assert.Equal(t, "https://bettercalljon.com/ca/servicios/vehiculos", URL("https://bettercalljon.com", Catalan, "/servicios/vehiculos"))
}

func TestAlternates(t *testing.T) {
	alt := Alternates("https://x.com", "/servicios/merchandising")
	assert.Equal(t, map[string]string{
		"es":        "https://x.com/es/servicios/merchandising",
		"ca":        "https://x.com/ca/servicios/merchandising",
		"en":        "https://x.com/en/servicios/merchandising",
		"x-default": "https://x.com/es/servicios/merchandising",
	}, alt)
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("ca"))
	assert.False(t, IsSupported("fr"))
	assert.Equal(t, Spanish, Default)
}
