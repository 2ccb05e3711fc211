package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturePage = `<!DOCTYPE html>
<html>
<head><title>Fixture</title></head>
<body>
	<h1>Trending content feed</h1>
	<p>tiny</p>
	<p>This paragraph easily clears the length filter.</p>
	<p>Another qualifying paragraph with enough text.</p>
	<a href="https://example.test/one" title="first">First link</a>
	<a href="https://example.test/two">Second link</a>
	<a>No destination</a>
	<img src="https://cdn.example.test/a.png" alt="Poster" width="1080" height="1350">
	<img src="https://cdn.example.test/b.png">
	<img alt="no source">
	<span aria-label="1.2k likes">1.2k</span>
	<span aria-label="40k views">40k</span>
	<div data-testid="like-count">312</div>
	<div class="card highlight">Card body text goes here</div>
</body>
</html>`

func limitOf(n int) *int {
	return &n
}

func TestFromHTMLTextCategory(t *testing.T) {
	data, err := FromHTML(fixturePage, Config{DataTypes: []string{"text"}, Limit: limitOf(10)})
	require.NoError(t, err)

	texts, ok := data["allText"].([]string)
	require.True(t, ok)

	// The five-character paragraph is filtered out; the heading and the two
	// long paragraphs qualify.
	assert.Contains(t, texts, "This paragraph easily clears the length filter.")
	assert.Contains(t, texts, "Another qualifying paragraph with enough text.")
	assert.NotContains(t, texts, "tiny")
}

func TestFromHTMLParagraphFilter(t *testing.T) {
	page := `<html><body>
		<p>short</p>
		<p>first long enough paragraph</p>
		<p>second long enough paragraph</p>
	</body></html>`

	data, err := FromHTML(page, Config{DataTypes: []string{"text"}, Limit: limitOf(10)})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"first long enough paragraph",
		"second long enough paragraph",
	}, data["allText"])
}

func TestFromHTMLLinks(t *testing.T) {
	data, err := FromHTML(fixturePage, Config{DataTypes: []string{"links"}, Limit: limitOf(10)})
	require.NoError(t, err)

	links, ok := data["links"].([]Link)
	require.True(t, ok)
	require.Len(t, links, 2)
	assert.Equal(t, Link{Text: "First link", URL: "https://example.test/one", Title: "first"}, links[0])
	assert.Equal(t, "https://example.test/two", links[1].URL)
}

func TestFromHTMLImages(t *testing.T) {
	data, err := FromHTML(fixturePage, Config{DataTypes: []string{"images"}, Limit: limitOf(10)})
	require.NoError(t, err)

	images, ok := data["images"].([]Image)
	require.True(t, ok)
	require.Len(t, images, 2)
	assert.Equal(t, Image{Src: "https://cdn.example.test/a.png", Alt: "Poster", Width: 1080, Height: 1350}, images[0])
	assert.Equal(t, Image{Src: "https://cdn.example.test/b.png"}, images[1])
}

func TestFromHTMLMetrics(t *testing.T) {
	data, err := FromHTML(fixturePage, Config{DataTypes: []string{"metrics"}})
	require.NoError(t, err)

	metrics, ok := data["metrics"].([]Metric)
	require.True(t, ok)
	require.Len(t, metrics, 3)
	assert.Equal(t, Metric{Text: "1.2k", Label: "1.2k likes"}, metrics[0])
	assert.Equal(t, Metric{Text: "312", Label: ""}, metrics[2])
}

func TestFromHTMLCustomSelectors(t *testing.T) {
	data, err := FromHTML(fixturePage, Config{
		Selectors: map[string]string{"cards": "div.card"},
		DataTypes: []string{},
	})
	require.NoError(t, err)

	cards, ok := data["cards"].([]Element)
	require.True(t, ok)
	require.Len(t, cards, 1)
	assert.Equal(t, "Card body text goes here", cards[0].Text)
	assert.Equal(t, "card highlight", cards[0].Class)
}

func TestFromHTMLLimit(t *testing.T) {
	data, err := FromHTML(fixturePage, Config{DataTypes: []string{"links"}, Limit: limitOf(1)})
	require.NoError(t, err)

	links := data["links"].([]Link)
	assert.Len(t, links, 1)
}

func TestFromHTMLExplicitZeroLimit(t *testing.T) {
	data, err := FromHTML(fixturePage, Config{
		Selectors: map[string]string{"cards": "div.card"},
		DataTypes: []string{"text", "links", "images", "metrics"},
		Limit:     limitOf(0),
	})
	require.NoError(t, err)

	// Zero is an explicit cap, not a request for the default.
	assert.Empty(t, data["allText"])
	assert.Empty(t, data["links"])
	assert.Empty(t, data["images"])
	assert.Empty(t, data["cards"])

	// Metrics stay uncapped regardless of the limit.
	assert.Len(t, data["metrics"], 3)
}

func TestFromHTMLDefaults(t *testing.T) {
	data, err := FromHTML(fixturePage, Config{})
	require.NoError(t, err)

	// Default data types: text, links, images. Metrics only on request.
	assert.Contains(t, data, "allText")
	assert.Contains(t, data, "links")
	assert.Contains(t, data, "images")
	assert.NotContains(t, data, "metrics")
}

func TestFromHTMLEmptyCategories(t *testing.T) {
	data, err := FromHTML("<html><body></body></html>", Config{
		DataTypes: []string{"text", "links", "images", "metrics"},
	})
	require.NoError(t, err)

	assert.Empty(t, data["allText"])
	assert.Empty(t, data["links"])
	assert.Empty(t, data["images"])
	assert.Empty(t, data["metrics"])
}
