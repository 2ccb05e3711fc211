package content

import (
	"fmt"
	"regexp"
)

// TemplateResult holds the outcome of template processing.
type TemplateResult struct {
	// Processed is the template with every matched placeholder substituted.
	Processed string `json:"processed"`

	// Platforms holds per-platform truncations of Processed. Only present
	// for the "social-media" template type.
	Platforms map[string]string `json:"platforms,omitempty"`
}

// ProcessTemplate substitutes {{key}} placeholders in template with the
// corresponding values from data. Whitespace inside the braces is ignored,
// so "{{ name }}" and "{{name}}" are equivalent. Placeholders whose key has
// no entry in data are left verbatim.
//
// When templateType is "social-media" the substituted text is additionally
// truncated to each platform's text limit.
func ProcessTemplate(template string, data map[string]any, templateType string) TemplateResult {
	processed := template
	for key, value := range data {
		pattern := regexp.MustCompile(`\{\{\s*` + regexp.QuoteMeta(key) + `\s*\}\}`)
		processed = pattern.ReplaceAllLiteralString(processed, stringify(value))
	}

	result := TemplateResult{Processed: processed}

	if templateType == "social-media" {
		result.Platforms = make(map[string]string, len(PlatformRules))
		for platform, rule := range PlatformRules {
			result.Platforms[platform] = truncate(processed, rule.TextLimit)
		}
	}

	return result
}

// stringify renders a template value the way it would appear in JSON,
// without the float artifacts of a naive %v on whole numbers.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
