package htmlimport

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/dshills/richdoc/internal/content"
)

// tagStyles maps inline element names to the style they contribute.
var tagStyles = map[string]string{
	"b":      content.StyleBold,
	"strong": content.StyleBold,
	"i":      content.StyleItalic,
	"em":     content.StyleItalic,
	"u":      content.StyleUnderline,
	"ins":    content.StyleUnderline,
	"s":      content.StyleStrikethrough,
	"strike": content.StyleStrikethrough,
	"del":    content.StyleStrikethrough,
	"code":   content.StyleCode,
}

// inlineWrappers are elements that never introduce a block boundary. A
// node whose first element child is one of these joins its children
// concatenatively.
var inlineWrappers = map[string]bool{
	"a": true, "abbr": true, "b": true, "code": true, "del": true,
	"em": true, "i": true, "ins": true, "mark": true, "s": true,
	"small": true, "span": true, "strike": true, "strong": true,
	"sub": true, "sup": true, "u": true,
}

// styleForTag returns the inherited style set extended by an element's
// fixed tag style, if it has one.
func styleForTag(styles content.StyleSet, tag string) content.StyleSet {
	if name, ok := tagStyles[tag]; ok {
		return styles.With(name)
	}
	return styles
}

// applyStyleAttr folds a style attribute's declarations into a style set.
// Recognized properties can both add and cancel styles, so an explicit
// "font-style: normal" on a descendant undoes an inherited italic.
func applyStyleAttr(styles content.StyleSet, attr string) content.StyleSet {
	for _, decl := range strings.Split(attr, ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.ToLower(strings.TrimSpace(value))

		switch prop {
		case "font-weight":
			switch boldness(value) {
			case +1:
				styles = styles.With(content.StyleBold)
			case -1:
				styles = styles.Without(content.StyleBold)
			}
		case "font-style":
			switch value {
			case "italic", "oblique":
				styles = styles.With(content.StyleItalic)
			case "normal":
				styles = styles.Without(content.StyleItalic)
			}
		case "text-decoration", "text-decoration-line":
			for _, token := range strings.Fields(value) {
				switch token {
				case "underline":
					styles = styles.With(content.StyleUnderline)
				case "line-through":
					styles = styles.With(content.StyleStrikethrough)
				case "none":
					styles = styles.Without(content.StyleUnderline)
					styles = styles.Without(content.StyleStrikethrough)
				}
			}
		}
	}
	return styles
}

// boldness classifies a font-weight value: +1 bold, -1 not bold, 0 unknown.
func boldness(value string) int {
	switch value {
	case "bold", "bolder":
		return +1
	case "normal", "light", "lighter":
		return -1
	}
	if n, err := strconv.Atoi(value); err == nil {
		if n >= 500 {
			return +1
		}
		return -1
	}
	return 0
}

// attrValue returns the value of the named attribute on an element, if set.
func attrValue(attrs []html.Attribute, name string) (string, bool) {
	for _, a := range attrs {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}
