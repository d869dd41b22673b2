package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionList_Unmarshal(t *testing.T) {
	raw := `[
		{"type":"text","title":"¿Qué es un Tour Manager?","content":"Gestión integral"},
		{"_type":"imageSection","imageUrl":"https://cdn.example.com/a.jpg"},
		{"type":"video","videoUrl":"https://video.example.com/v"},
		{"type":"gallery","images":["https://x/1.jpg","https://x/2.jpg"]},
		{"type":"text-image","content":"Texto","imageUrl":"https://x/3.jpg"},
		{"type":"carousel","images":["https://x/4.jpg"]}
	]`

	var list SectionList
	require.NoError(t, json.Unmarshal([]byte(raw), &list))
	require.Len(t, list, 5, "unknown section types are skipped")

	text, ok := list[0].(TextSection)
	require.True(t, ok)
	assert.Equal(t, "Gestión integral", text.Content)

	img, ok := list[1].(ImageSection)
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/a.jpg", img.ImageURL)

	assert.Equal(t, SectionVideo, list[2].SectionType())

	gallery, ok := list[3].(GallerySection)
	require.True(t, ok)
	assert.Len(t, gallery.Images, 2)

	ti, ok := list[4].(TextImageSection)
	require.True(t, ok)
	assert.Equal(t, ImageRight, ti.ImagePosition, "image position defaults to right")
}

func TestSectionList_MarshalWritesTag(t *testing.T) {
	list := SectionList{
		TextSection{Title: "Hola", Content: "Contenido"},
		TextImageSection{Content: "c", ImageURL: "https://x/1.jpg", ImagePosition: ImageLeft},
	}

	data, err := json.Marshal(list)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "text", decoded[0]["type"])
	assert.Equal(t, "text-image", decoded[1]["type"])
	assert.Equal(t, "left", decoded[1]["imagePosition"])

	var back SectionList
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, list, back)
}

func TestDecodeSection_BadJSON(t *testing.T) {
	_, ok, err := DecodeSection(json.RawMessage(`{"type":"gallery","images":"not-a-list"}`))
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestIsValidServiceID(t *testing.T) {
	assert.True(t, IsValidServiceID("tour-manager"))
	assert.True(t, IsValidServiceID("vehiculos"))
	assert.False(t, IsValidServiceID("Tour-Manager"))
	assert.False(t, IsValidServiceID(""))
}
