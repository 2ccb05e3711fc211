// Package extract implements structured data extraction over an HTML
// snapshot of the automation target's current page.
//
// Extraction operates on a static snapshot rather than live element
// handles: the executor captures the page's HTML once and the pipeline
// parses it here with goquery. Categories are computed independently; a
// category that matches nothing yields an empty list, never an error.
package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Config describes one extraction request.
type Config struct {
	// Selectors maps result names to CSS selectors. Each produces up to
	// Limit generic element records.
	Selectors map[string]string

	// DataTypes selects the built-in categories: "text", "links",
	// "images", "metrics".
	DataTypes []string

	// Limit caps the number of records per category. Nil applies
	// DefaultLimit; an explicit zero empties every capped category.
	Limit *int

	// WaitFor optionally names a selector the executor must wait for
	// before the snapshot is taken. Not used by the parser itself.
	WaitFor string
}

// DefaultDataTypes is applied when a request names no categories.
var DefaultDataTypes = []string{"text", "links", "images"}

// DefaultLimit caps each category when a request gives no limit.
const DefaultLimit = 50

// minTextLength filters boilerplate and whitespace-only fragments out of
// the "text" category.
const minTextLength = 10

// Element is the uniform record produced by custom selectors.
type Element struct {
	Text  string `json:"text"`
	Href  string `json:"href"`
	Src   string `json:"src"`
	Alt   string `json:"alt"`
	Class string `json:"className"`
}

// Link is one anchor record in the "links" category.
type Link struct {
	Text  string `json:"text"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Image is one image record in the "images" category.
type Image struct {
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Metric is one engagement-count record in the "metrics" category.
type Metric struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Data maps category and custom-selector names to their record lists.
type Data map[string]any

// textSelector lists the prose-bearing tags sampled by the "text" category.
const textSelector = "p, h1, h2, h3, span"

// metricSelector heuristically matches elements whose accessible label or
// test identifier suggests engagement counts.
const metricSelector = `[aria-label*="like"], [aria-label*="view"], [data-testid*="like"]`

// FromHTML runs the extraction pipeline against an HTML document.
func FromHTML(html string, cfg Config) (Data, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	limit := DefaultLimit
	if cfg.Limit != nil {
		limit = *cfg.Limit
		if limit < 0 {
			limit = 0
		}
	}
	if cfg.DataTypes == nil {
		cfg.DataTypes = DefaultDataTypes
	}

	data := Data{}

	for name, selector := range cfg.Selectors {
		data[name] = customElements(doc, selector, limit)
	}

	for _, dataType := range cfg.DataTypes {
		switch dataType {
		case "text":
			data["allText"] = proseText(doc, limit)
		case "links":
			data["links"] = links(doc, limit)
		case "images":
			data["images"] = images(doc, limit)
		case "metrics":
			// Deliberately uncapped: engagement elements are typically
			// few and the cap asymmetry matches observed page behavior.
			data["metrics"] = metrics(doc)
		}
	}

	return data, nil
}

func customElements(doc *goquery.Document, selector string, limit int) []Element {
	elements := []Element{}
	doc.Find(selector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= limit {
			return false
		}
		elements = append(elements, Element{
			Text:  strings.TrimSpace(s.Text()),
			Href:  s.AttrOr("href", ""),
			Src:   s.AttrOr("src", ""),
			Alt:   s.AttrOr("alt", ""),
			Class: s.AttrOr("class", ""),
		})
		return true
	})
	return elements
}

func proseText(doc *goquery.Document, limit int) []string {
	texts := []string{}
	doc.Find(textSelector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= limit {
			return false
		}
		text := strings.TrimSpace(s.Text())
		if len(text) > minTextLength {
			texts = append(texts, text)
		}
		return true
	})
	return texts
}

func links(doc *goquery.Document, limit int) []Link {
	result := []Link{}
	doc.Find("a[href]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= limit {
			return false
		}
		href := s.AttrOr("href", "")
		if href == "" {
			return true
		}
		result = append(result, Link{
			Text:  strings.TrimSpace(s.Text()),
			URL:   href,
			Title: s.AttrOr("title", ""),
		})
		return true
	})
	return result
}

func images(doc *goquery.Document, limit int) []Image {
	result := []Image{}
	doc.Find("img[src]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= limit {
			return false
		}
		src := s.AttrOr("src", "")
		if src == "" {
			return true
		}
		result = append(result, Image{
			Src:    src,
			Alt:    s.AttrOr("alt", ""),
			Width:  intAttr(s, "width"),
			Height: intAttr(s, "height"),
		})
		return true
	})
	return result
}

func metrics(doc *goquery.Document) []Metric {
	result := []Metric{}
	doc.Find(metricSelector).Each(func(_ int, s *goquery.Selection) {
		result = append(result, Metric{
			Text:  strings.TrimSpace(s.Text()),
			Label: s.AttrOr("aria-label", ""),
		})
	})
	return result
}

func intAttr(s *goquery.Selection, name string) int {
	n, err := strconv.Atoi(s.AttrOr(name, ""))
	if err != nil {
		return 0
	}
	return n
}
