package server

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/entrhq/pagedriver/pkg/browser"
)

// Per-route request schemas. Validation happens at the boundary so that
// malformed input never reaches the action queue.

type navigateRequest struct {
	URL string `json:"url"`
}

type typeRequest struct {
	Selector string  `json:"selector"`
	Text     *string `json:"text"`
	Delay    float64 `json:"delay"`
	Clear    bool    `json:"clear"`
}

type clickRequest struct {
	Selector string `json:"selector"`
}

type fillFormRequest struct {
	Fields         orderedFields `json:"fields"`
	SubmitSelector string        `json:"submitSelector"`
	SubmitDelay    *float64      `json:"submitDelay"`
}

type getTextRequest struct {
	Selector string `json:"selector"`
	Multiple bool   `json:"multiple"`
}

type screenshotRequest struct {
	Selector string `json:"selector"`
	FullPage bool   `json:"fullPage"`
}

type waitForElementRequest struct {
	Selector string   `json:"selector"`
	Timeout  *float64 `json:"timeout"`
	Visible  bool     `json:"visible"`
}

type extractDataRequest struct {
	Selectors map[string]string `json:"selectors"`
	DataTypes []string          `json:"dataTypes"`
	Limit     *int              `json:"limit"`
	WaitFor   string            `json:"waitFor"`
}

type downloadMediaRequest struct {
	URLs         []string `json:"urls"`
	OutputFormat string   `json:"outputFormat"`
}

type authenticatePlatformRequest struct {
	Platform string `json:"platform"`
}

type analyzeContentRequest struct {
	Content       json.RawMessage `json:"content"`
	AnalysisTypes []string        `json:"analysisTypes"`
}

type generateVariantsRequest struct {
	BaseContent string   `json:"baseContent"`
	Platforms   []string `json:"platforms"`
}

type templateProcessorRequest struct {
	Template     string         `json:"template"`
	Data         map[string]any `json:"data"`
	TemplateType string         `json:"templateType"`
}

// orderedFields decodes a JSON object of selector/value pairs while
// preserving the caller's key order, which a plain map cannot do. Fill
// order is part of the form-fill contract.
type orderedFields []browser.FormField

func (f *orderedFields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("fields must be an object of selector/value pairs")
	}

	fields := orderedFields{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		selector, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("field selector must be a string")
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}

		fields = append(fields, browser.FormField{
			Selector: selector,
			Value:    fieldValue(value),
		})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*f = fields
	return nil
}

// fieldValue renders a form value as the text to type. Non-string scalars
// are accepted and typed as their textual form.
func fieldValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case nil:
		return ""
	case float64:
		if value == float64(int64(value)) {
			return fmt.Sprintf("%d", int64(value))
		}
		return fmt.Sprintf("%g", value)
	default:
		return fmt.Sprintf("%v", value)
	}
}
