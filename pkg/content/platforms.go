// Package content implements the session-independent content pipeline:
// text analytics (word frequency, hashtags, human-readable metrics),
// template substitution, and platform-specific variant generation.
//
// Nothing in this package touches the browser session. All functions are
// pure and safe for concurrent use.
package content

// PlatformRule captures the publishing constraints for one platform.
type PlatformRule struct {
	// TextLimit is the maximum primary text length in characters.
	TextLimit int

	// HashtagLimit is the maximum number of hashtags.
	HashtagLimit int

	// Dimensions is the canonical media size, e.g. "1080x1080".
	Dimensions string
}

// PlatformRules is the static table of per-platform constraints used by
// variant generation and social-media template processing.
var PlatformRules = map[string]PlatformRule{
	"instagram": {TextLimit: 2200, HashtagLimit: 30, Dimensions: "1080x1080"},
	"twitter":   {TextLimit: 280, HashtagLimit: 2, Dimensions: "1200x675"},
	"tiktok":    {TextLimit: 150, HashtagLimit: 5, Dimensions: "1080x1920"},
}

// DefaultPlatforms is the platform set used when a request names none.
var DefaultPlatforms = []string{"instagram", "twitter", "tiktok"}
