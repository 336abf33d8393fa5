// Package render builds course cards as render trees. Each variant is a pure
// function of the course, so cards can be cached, diffed or serialized by the
// consumer that draws them.
package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/guttosm/catalog-service/internal/domain/model"
)

// Variant selects a card layout.
type Variant string

// Card variants.
const (
	VariantDefault  Variant = "default"
	VariantFeatured Variant = "featured"
	VariantCompact  Variant = "compact"
	VariantDetailed Variant = "detailed"
	VariantList     Variant = "list"
)

// Variants lists every supported variant.
var Variants = []Variant{VariantDefault, VariantFeatured, VariantCompact, VariantDetailed, VariantList}

// ErrUnknownVariant is returned by ParseVariant for unsupported names.
var ErrUnknownVariant = errors.New("unknown card variant")

// ParseVariant resolves a variant name. The empty string is VariantDefault.
func ParseVariant(s string) (Variant, error) {
	if s == "" {
		return VariantDefault, nil
	}
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Variants {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Node is one element of a render tree.
type Node struct {
	Tag      string            `json:"tag"`
	Class    string            `json:"class,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Text     string            `json:"text,omitempty"`
	Children []Node            `json:"children,omitempty"`
}

// Find returns the first node in a depth-first walk whose class list
// contains class.
func (n Node) Find(class string) (Node, bool) {
	for _, c := range strings.Fields(n.Class) {
		if c == class {
			return n, true
		}
	}
	for _, child := range n.Children {
		if found, ok := child.Find(class); ok {
			return found, true
		}
	}
	return Node{}, false
}

// Card renders course in the given variant. Unknown variants render as
// VariantDefault.
func Card(course model.Course, variant Variant) Node {
	switch variant {
	case VariantFeatured:
		return featuredCard(course)
	case VariantCompact:
		return compactCard(course)
	case VariantDetailed:
		return detailedCard(course)
	case VariantList:
		return listItem(course)
	default:
		return defaultCard(course)
	}
}

func defaultCard(c model.Course) Node {
	return Node{
		Tag:   "article",
		Class: "course-card",
		Attrs: dataAttrs(c),
		Children: []Node{
			thumbnail(c),
			{Tag: "div", Class: "course-card__body", Children: []Node{
				title(c, "h3"),
				{Tag: "p", Class: "course-card__description", Text: c.Description},
				meta(c),
			}},
		},
	}
}

func featuredCard(c model.Course) Node {
	body := []Node{
		{Tag: "span", Class: "course-card__badge", Text: "Featured"},
		title(c, "h2"),
		{Tag: "p", Class: "course-card__description", Text: c.Description},
		meta(c),
		rating(c),
	}
	if c.Instructor != "" {
		body = append(body, Node{Tag: "p", Class: "course-card__instructor", Text: c.Instructor})
	}
	return Node{
		Tag:   "article",
		Class: "course-card course-card--featured",
		Attrs: dataAttrs(c),
		Children: []Node{
			thumbnail(c),
			{Tag: "div", Class: "course-card__body", Children: body},
		},
	}
}

func compactCard(c model.Course) Node {
	return Node{
		Tag:   "article",
		Class: "course-card course-card--compact",
		Attrs: dataAttrs(c),
		Children: []Node{
			title(c, "h4"),
			duration(c),
		},
	}
}

func detailedCard(c model.Course) Node {
	body := []Node{
		title(c, "h2"),
		{Tag: "p", Class: "course-card__description", Text: c.Description},
		meta(c),
		rating(c),
	}
	if c.Instructor != "" {
		body = append(body, Node{Tag: "p", Class: "course-card__instructor", Text: c.Instructor})
	}
	if c.Students > 0 {
		body = append(body, Node{Tag: "span", Class: "course-card__students", Text: strconv.Itoa(c.Students) + " students"})
	}
	if len(c.Tags) > 0 {
		tags := Node{Tag: "ul", Class: "course-card__tags"}
		for _, tag := range c.Tags {
			tags.Children = append(tags.Children, Node{Tag: "li", Class: "course-card__tag", Text: tag})
		}
		body = append(body, tags)
	}
	if c.VideoURL != "" {
		body = append(body, Node{Tag: "a", Class: "course-card__watch", Attrs: map[string]string{"href": c.VideoURL}, Text: "Watch"})
	}

	return Node{
		Tag:   "article",
		Class: "course-card course-card--detailed",
		Attrs: dataAttrs(c),
		Children: []Node{
			thumbnail(c),
			{Tag: "div", Class: "course-card__body", Children: body},
		},
	}
}

func listItem(c model.Course) Node {
	return Node{
		Tag:   "li",
		Class: "course-row",
		Attrs: dataAttrs(c),
		Children: []Node{
			{Tag: "span", Class: "course-row__title", Text: c.Title},
			{Tag: "span", Class: "course-row__category", Text: c.CategoryID},
			difficulty(c),
			duration(c),
		},
	}
}

func dataAttrs(c model.Course) map[string]string {
	return map[string]string{
		"data-course-id":   c.ID,
		"data-category-id": c.CategoryID,
	}
}

func thumbnail(c model.Course) Node {
	return Node{
		Tag:   "img",
		Class: "course-card__thumbnail",
		Attrs: map[string]string{"src": c.ThumbnailURL, "alt": c.Title},
	}
}

func title(c model.Course, tag string) Node {
	return Node{Tag: tag, Class: "course-card__title", Text: c.Title}
}

func meta(c model.Course) Node {
	return Node{Tag: "div", Class: "course-card__meta", Children: []Node{difficulty(c), duration(c)}}
}

func difficulty(c model.Course) Node {
	return Node{
		Tag:   "span",
		Class: "difficulty difficulty--" + strings.ToLower(string(c.Difficulty)),
		Text:  string(c.Difficulty),
	}
}

func duration(c model.Course) Node {
	return Node{Tag: "span", Class: "duration", Text: FormatDuration(c.DurationMinutes)}
}

func rating(c model.Course) Node {
	return Node{Tag: "span", Class: "course-card__rating", Text: strconv.FormatFloat(c.Rating, 'f', 1, 64)}
}

// FormatDuration renders minutes as "45 min" or "2h 5m".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return strconv.Itoa(minutes) + " min"
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return strconv.Itoa(h) + "h"
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
