package markup

import (
	"html"
	"strings"
)

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeAttribute escapes a value for use inside a double-quoted attribute.
func EscapeAttribute(value string) string {
	return html.EscapeString(value)
}

// EscapeText escapes text content. Quotes are left untouched since they carry
// no meaning outside attribute values.
func EscapeText(value string) string {
	return textEscaper.Replace(value)
}

// Tag assembles a single element. Children are not rendered recursively;
// callers hand in pre-rendered inner markup.
type Tag struct {
	name     string
	attrs    *Attributes
	inner    strings.Builder
	hasInner bool
}

// NewTag creates a tag with an optional seed attribute set. The seed is
// cloned so the caller's set is never mutated by the builder.
func NewTag(name string, attrs ...*Attributes) *Tag {
	tag := &Tag{name: strings.TrimSpace(name), attrs: &Attributes{}}
	for _, set := range attrs {
		tag.attrs.Merge(set)
	}
	return tag
}

// Name returns the element name.
func (t *Tag) Name() string {
	return t.name
}

// Attributes exposes the tag's attribute set for further mutation.
func (t *Tag) Attributes() *Attributes {
	return t.attrs
}

// Attr sets a single attribute and returns the tag for chaining.
func (t *Tag) Attr(name string, value any) *Tag {
	t.attrs.Set(name, value)
	return t
}

// SetInnerText replaces the content with escaped text.
func (t *Tag) SetInnerText(text string) *Tag {
	t.inner.Reset()
	t.inner.WriteString(EscapeText(text))
	t.hasInner = true
	return t
}

// SetInnerHTML replaces the content with raw, pre-rendered markup.
func (t *Tag) SetInnerHTML(raw string) *Tag {
	t.inner.Reset()
	t.inner.WriteString(raw)
	t.hasInner = true
	return t
}

// AppendInnerHTML appends raw markup to the content.
func (t *Tag) AppendInnerHTML(raw string) *Tag {
	t.inner.WriteString(raw)
	t.hasInner = true
	return t
}

// String renders the element. A tag without inner content renders
// self-closing; any inner content, including the empty string, renders as a
// container.
func (t *Tag) String() string {
	var b strings.Builder
	b.Grow(len(t.name)*2 + 16 + t.inner.Len())
	b.WriteByte('<')
	b.WriteString(t.name)
	t.attrs.writeTo(&b)
	if !t.hasInner {
		b.WriteString(" />")
		return b.String()
	}
	b.WriteByte('>')
	b.WriteString(t.inner.String())
	b.WriteString("</")
	b.WriteString(t.name)
	b.WriteByte('>')
	return b.String()
}

// Render is a shorthand for building a tag in one call. A nil inner pointer
// renders a void element.
func Render(name string, attrs *Attributes, inner *string) string {
	tag := NewTag(name, attrs)
	if inner != nil {
		tag.SetInnerHTML(*inner)
	}
	return tag.String()
}
