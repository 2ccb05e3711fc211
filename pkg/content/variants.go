package content

import "strings"

// Variant is a platform-specific rendition of base content, constrained by
// that platform's rules.
type Variant struct {
	PrimaryText string   `json:"primaryText"`
	Hashtags    []string `json:"hashtags"`
	Dimensions  string   `json:"dimensions"`
}

// GenerateVariants builds one Variant per requested platform: the base
// content truncated to the platform's text limit, its hashtags capped at
// the platform's hashtag limit, and the platform's canonical dimensions.
// Platforms without a rule are omitted from the result.
func GenerateVariants(baseContent string, platforms []string) map[string]Variant {
	if len(platforms) == 0 {
		platforms = DefaultPlatforms
	}

	hashtags := ExtractHashtags(baseContent)
	variants := make(map[string]Variant)

	for _, platform := range platforms {
		name := strings.ToLower(platform)
		rule, ok := PlatformRules[name]
		if !ok {
			continue
		}

		tags := hashtags
		if len(tags) > rule.HashtagLimit {
			tags = tags[:rule.HashtagLimit]
		}

		variants[name] = Variant{
			PrimaryText: truncate(baseContent, rule.TextLimit),
			Hashtags:    tags,
			Dimensions:  rule.Dimensions,
		}
	}

	return variants
}
