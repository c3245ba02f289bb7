package components

import (
	"context"
	"io"

	"golang.org/x/text/language"

	"github.com/goliatone/go-formbind/pkg/format"
	"github.com/goliatone/go-formbind/pkg/markup"
)

// Base holds the state every control shares. S is the concrete control type
// returned by the fluent setters, P the bound value type.
type Base[S any, P any] struct {
	self       S
	kind       Kind
	name       string
	id         string
	value      P
	hasValue   bool
	attrs      *markup.Attributes
	culture    language.Tag
	configured bool
	render     func() string
}

func (b *Base[S, P]) init(self S, kind Kind, render func() string) {
	b.self = self
	b.kind = kind
	b.attrs = markup.NewAttributes()
	b.culture = format.Invariant
	b.render = render
}

func (b *Base[S, P]) Kind() Kind            { return b.kind }
func (b *Base[S, P]) ControlPrefix() string { return b.kind.Prefix() }
func (b *Base[S, P]) Name() string          { return b.name }
func (b *Base[S, P]) ID() string            { return b.id }
func (b *Base[S, P]) Value() P              { return b.value }
func (b *Base[S, P]) HasValue() bool        { return b.hasValue }
func (b *Base[S, P]) Culture() language.Tag { return b.culture }
func (b *Base[S, P]) Configured() bool      { return b.configured }

// Attributes returns the live attribute set.
func (b *Base[S, P]) Attributes() *markup.Attributes {
	if b.attrs == nil {
		b.attrs = markup.NewAttributes()
	}
	return b.attrs
}

func (b *Base[S, P]) WithName(name string) S {
	b.name = name
	return b.self
}

func (b *Base[S, P]) WithID(id string) S {
	b.id = id
	return b.self
}

func (b *Base[S, P]) WithValue(value P) S {
	b.value = value
	b.hasValue = true
	return b.self
}

// WithAttr sets an attribute. See markup.Attributes.Set for value handling.
func (b *Base[S, P]) WithAttr(name string, value any) S {
	b.Attributes().Set(name, value)
	return b.self
}

func (b *Base[S, P]) WithAttrs(attrs ...markup.Attr) S {
	for _, attr := range attrs {
		b.Attributes().Set(attr.Name, attr.Value)
	}
	return b.self
}

func (b *Base[S, P]) WithoutAttr(name string) S {
	b.Attributes().Remove(name)
	return b.self
}

func (b *Base[S, P]) WithClass(classes ...string) S {
	b.Attributes().AddClass(classes...)
	return b.self
}

func (b *Base[S, P]) WithDisabled(disabled bool) S {
	b.Attributes().Set("disabled", disabled)
	return b.self
}

func (b *Base[S, P]) WithCulture(culture language.Tag) S {
	b.culture = culture
	return b.self
}

func (b *Base[S, P]) SetName(name string)             { b.name = name }
func (b *Base[S, P]) SetID(id string)                 { b.id = id }
func (b *Base[S, P]) SetCulture(culture language.Tag) { b.culture = culture }
func (b *Base[S, P]) MarkConfigured()                 { b.configured = true }

func (b *Base[S, P]) SetValue(value P) {
	b.value = value
	b.hasValue = true
}

// String renders the control.
func (b *Base[S, P]) String() string {
	if b.render == nil {
		return ""
	}
	return b.render()
}

// Render writes the control to w, satisfying templ.Component.
func (b *Base[S, P]) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, b.String())
	return err
}

// controlAttributes starts an element's attributes with name and id followed
// by a copy of the configured set, leaving the component's own set intact.
func (b *Base[S, P]) controlAttributes(alwaysName bool) *markup.Attributes {
	attrs := markup.NewAttributes()
	if b.name != "" || alwaysName {
		attrs.Set("name", b.name)
	}
	if b.id != "" {
		attrs.Set("id", b.id)
	}
	return attrs.Merge(b.attrs)
}

// boundText formats the bound value, reporting false when nothing is bound.
func (b *Base[S, P]) boundText(culture language.Tag) (string, bool) {
	if !b.hasValue {
		return "", false
	}
	return format.Value(b.value, culture)
}
