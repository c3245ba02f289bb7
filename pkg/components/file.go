package components

import (
	"strings"

	"github.com/goliatone/go-formbind/pkg/markup"
)

// FileUpload renders <input type="file">. Browsers ignore a value on file
// inputs, so the bound value is never rendered.
type FileUpload[P any] struct {
	Visible[*FileUpload[P], P]
	accept   []string
	multiple bool
}

// NewFileUpload creates an unbound file input.
func NewFileUpload[P any]() *FileUpload[P] {
	c := &FileUpload[P]{}
	c.initVisible(c, KindFileUpload, c.renderFile)
	return c
}

// WithAccept restricts selectable types (".pdf", "image/*").
func (c *FileUpload[P]) WithAccept(types ...string) *FileUpload[P] {
	for _, t := range types {
		if t = strings.TrimSpace(t); t != "" {
			c.accept = append(c.accept, t)
		}
	}
	return c
}

func (c *FileUpload[P]) WithMultiple() *FileUpload[P] {
	c.multiple = true
	return c
}

func (c *FileUpload[P]) renderFile() string {
	attrs := c.controlAttributes(false)
	c.writeAria(attrs, "")
	attrs.Set("type", "file")
	if len(c.accept) > 0 {
		attrs.Set("accept", strings.Join(c.accept, ","))
	}
	attrs.Set("multiple", c.multiple)
	return markup.NewTag("input", attrs).String()
}

// HiddenField renders <input type="hidden">. The name attribute is always
// emitted, even when empty, since a hidden field exists only to be
// submitted.
type HiddenField[P any] struct {
	Base[*HiddenField[P], P]
	toString func(P) string
}

// NewHiddenField creates a hidden field. toString controls the exact value
// text; nil formats with the bound culture.
func NewHiddenField[P any](toString func(P) string) *HiddenField[P] {
	c := &HiddenField[P]{toString: toString}
	c.init(c, KindHiddenField, c.renderHidden)
	return c
}

// Text returns the value text that will be rendered.
func (c *HiddenField[P]) Text() string {
	if !c.hasValue {
		return ""
	}
	if c.toString != nil {
		return c.toString(c.value)
	}
	text, _ := c.boundText(c.culture)
	return text
}

func (c *HiddenField[P]) renderHidden() string {
	attrs := c.controlAttributes(true)
	attrs.Set("type", "hidden")
	attrs.Set("value", c.Text())
	return markup.NewTag("input", attrs).String()
}
