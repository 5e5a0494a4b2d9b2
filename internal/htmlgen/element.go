package htmlgen

import (
	"html"
	"sort"
	"strings"
)

// voidElements never take content or a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// Attrs is an attribute set. Keys render in sorted order so output is
// deterministic.
type Attrs map[string]string

// Element renders a tag with escaped attributes and content. Content is
// escaped; use ElementRaw to nest prebuilt markup.
func Element(tag string, attrs Attrs, content string) string {
	return ElementRaw(tag, attrs, html.EscapeString(content))
}

// ElementRaw renders a tag without escaping the inner markup. The caller
// vouches for the content.
func ElementRaw(tag string, attrs Attrs, inner string) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(tag)
	writeAttrs(&b, attrs)
	if voidElements[tag] {
		b.WriteString(" />")
		return b.String()
	}
	b.WriteString(">")
	b.WriteString(inner)
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">")
	return b.String()
}

func writeAttrs(b *strings.Builder, attrs Attrs) {
	if len(attrs) == 0 {
		return
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attrs[k]))
		b.WriteString(`"`)
	}
}

func Div(attrs Attrs, content string) string {
	return Element("div", attrs, content)
}

func Span(attrs Attrs, content string) string {
	return Element("span", attrs, content)
}

func Anchor(href, text string, attrs Attrs) string {
	merged := mergeAttrs(attrs, Attrs{"href": href})
	return Element("a", merged, text)
}

func mergeAttrs(base, overrides Attrs) Attrs {
	merged := make(Attrs, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
