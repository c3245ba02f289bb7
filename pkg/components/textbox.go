package components

import (
	"golang.org/x/text/language"

	"github.com/goliatone/go-formbind/pkg/format"
	"github.com/goliatone/go-formbind/pkg/markup"
)

// textInput carries the placeholder and value rules shared by the single
// line inputs and TextArea.
type textInput[S any, P any] struct {
	Visible[S, P]
	placeholder        string
	labelAsPlaceholder bool
	defaultAsEmpty     bool
	formatter          func(P) string
}

// WithPlaceholder sets a placeholder term, resolved through the term
// resolver at render time. It replaces WithLabelAsPlaceholder.
func (t *textInput[S, P]) WithPlaceholder(term string) S {
	t.placeholder = term
	t.labelAsPlaceholder = false
	return t.self
}

// WithLabelAsPlaceholder uses the label text as the placeholder.
func (t *textInput[S, P]) WithLabelAsPlaceholder() S {
	t.labelAsPlaceholder = true
	t.placeholder = ""
	return t.self
}

// WithDefaultAsEmpty renders the zero value of P as an empty value.
func (t *textInput[S, P]) WithDefaultAsEmpty() S {
	t.defaultAsEmpty = true
	return t.self
}

// WithFormatter overrides culture formatting of the bound value.
func (t *textInput[S, P]) WithFormatter(fn func(P) string) S {
	t.formatter = fn
	return t.self
}

// Placeholder returns the placeholder text that will be rendered.
func (t *textInput[S, P]) Placeholder() string {
	switch {
	case t.labelAsPlaceholder:
		return t.term(t.label)
	case t.placeholder != "":
		return t.term(t.placeholder)
	default:
		return ""
	}
}

// displayValue applies the precedence attempted value, formatted bound value,
// empty.
func (t *textInput[S, P]) displayValue(culture language.Tag) string {
	if t.hasAttempted {
		return t.attempted
	}
	if !t.hasValue {
		return ""
	}
	if t.defaultAsEmpty && format.IsZero(t.value) {
		return ""
	}
	if t.formatter != nil {
		return t.formatter(t.value)
	}
	text, _ := t.boundText(culture)
	return text
}

// inputAttributes assembles name, id, configured attributes, extra, then the
// placeholder and ARIA attributes.
func (t *textInput[S, P]) inputAttributes(extra func(*markup.Attributes)) *markup.Attributes {
	attrs := t.controlAttributes(false)
	if extra != nil {
		extra(attrs)
	}
	placeholder := t.Placeholder()
	if placeholder != "" {
		attrs.Set("placeholder", placeholder)
	}
	t.writeAria(attrs, t.placeholder)
	return attrs
}

func (t *textInput[S, P]) renderInput(inputType string, culture language.Tag, extra func(*markup.Attributes)) string {
	attrs := t.inputAttributes(extra)
	attrs.Set("type", inputType)
	attrs.Set("value", t.displayValue(culture))
	return markup.NewTag("input", attrs).String()
}

// TextBox renders <input type="text">.
type TextBox[P any] struct {
	textInput[*TextBox[P], P]
}

// NewTextBox creates an unbound text box.
func NewTextBox[P any]() *TextBox[P] {
	c := &TextBox[P]{}
	c.initVisible(c, KindTextBox, func() string {
		return c.renderInput("text", c.culture, nil)
	})
	return c
}

// EmailBox renders <input type="email">.
type EmailBox[P any] struct {
	textInput[*EmailBox[P], P]
}

// NewEmailBox creates an unbound email box.
func NewEmailBox[P any]() *EmailBox[P] {
	c := &EmailBox[P]{}
	c.initVisible(c, KindEmailBox, func() string {
		return c.renderInput("email", c.culture, nil)
	})
	return c
}

// PasswordBox renders <input type="password">. The bound value is rendered
// like any other text input; bind an empty value to avoid echoing secrets.
type PasswordBox[P any] struct {
	textInput[*PasswordBox[P], P]
}

// NewPasswordBox creates an unbound password box.
func NewPasswordBox[P any]() *PasswordBox[P] {
	c := &PasswordBox[P]{}
	c.initVisible(c, KindPasswordBox, func() string {
		return c.renderInput("password", c.culture, nil)
	})
	return c
}

// NumberBox renders <input type="number">. HTML requires the invariant
// representation, so the value ignores the bound culture.
type NumberBox[P any] struct {
	textInput[*NumberBox[P], P]
	min, max, step *float64
}

// NewNumberBox creates an unbound number box.
func NewNumberBox[P any]() *NumberBox[P] {
	c := &NumberBox[P]{}
	c.initVisible(c, KindNumberBox, func() string {
		return c.renderInput("number", format.Invariant, c.writeRange)
	})
	return c
}

func (c *NumberBox[P]) WithMin(v float64) *NumberBox[P] {
	c.min = &v
	return c
}

func (c *NumberBox[P]) WithMax(v float64) *NumberBox[P] {
	c.max = &v
	return c
}

func (c *NumberBox[P]) WithStep(v float64) *NumberBox[P] {
	c.step = &v
	return c
}

func (c *NumberBox[P]) writeRange(attrs *markup.Attributes) {
	for _, bound := range []struct {
		name  string
		value *float64
	}{{"min", c.min}, {"max", c.max}, {"step", c.step}} {
		if bound.value != nil {
			attrs.Set(bound.name, format.Number(*bound.value, format.Invariant))
		}
	}
}
