package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVariantsCapsLength(t *testing.T) {
	base := "#launch #viral " + strings.Repeat("a", 3000)

	variants := GenerateVariants(base, nil)

	require.Contains(t, variants, "instagram")
	require.Contains(t, variants, "twitter")
	require.Contains(t, variants, "tiktok")

	assert.Len(t, variants["instagram"].PrimaryText, 2200)
	assert.Len(t, variants["twitter"].PrimaryText, 280)
	assert.Len(t, variants["tiktok"].PrimaryText, 150)
}

func TestGenerateVariantsHashtagCaps(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("content")
	for i := 0; i < 40; i++ {
		sb.WriteString(" #tag")
		sb.WriteByte(byte('a' + i%26))
	}

	variants := GenerateVariants(sb.String(), []string{"instagram", "twitter", "tiktok"})

	assert.Len(t, variants["instagram"].Hashtags, 30)
	assert.Len(t, variants["twitter"].Hashtags, 2)
	assert.Len(t, variants["tiktok"].Hashtags, 5)
}

func TestGenerateVariantsDimensions(t *testing.T) {
	variants := GenerateVariants("short", nil)
	assert.Equal(t, "1080x1080", variants["instagram"].Dimensions)
	assert.Equal(t, "1200x675", variants["twitter"].Dimensions)
	assert.Equal(t, "1080x1920", variants["tiktok"].Dimensions)
}

func TestGenerateVariantsUnknownPlatformOmitted(t *testing.T) {
	variants := GenerateVariants("hello #world", []string{"instagram", "myspace"})
	assert.Contains(t, variants, "instagram")
	assert.NotContains(t, variants, "myspace")
	assert.Len(t, variants, 1)
}

func TestGenerateVariantsCaseInsensitivePlatform(t *testing.T) {
	variants := GenerateVariants("hello", []string{"Twitter"})
	assert.Contains(t, variants, "twitter")
}

func TestGenerateVariantsShortContentUntouched(t *testing.T) {
	variants := GenerateVariants("brief #note", nil)
	assert.Equal(t, "brief #note", variants["twitter"].PrimaryText)
	assert.Equal(t, []string{"#note"}, variants["twitter"].Hashtags)
}
