package components

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/goliatone/go-formbind/pkg/format"
	"github.com/goliatone/go-formbind/pkg/markup"
)

// DefaultNullOptionTerm is the term resolved for a null option without text.
const DefaultNullOptionTerm = "Choose"

// Item is a ready-made option entry for selection controls.
type Item[V comparable] struct {
	Value    V
	Text     string
	Disabled bool
}

// ItemValue projects an Item to its value.
func ItemValue[V comparable](item Item[V]) V { return item.Value }

// ItemText projects an Item to its text.
func ItemText[V comparable](item Item[V]) string { return item.Text }

// ItemAttrs marks disabled items.
func ItemAttrs[V comparable](item Item[V]) []markup.Attr {
	if !item.Disabled {
		return nil
	}
	return []markup.Attr{{Name: "disabled", Value: markup.Flag{}}}
}

// Items builds Items from parallel value and text slices.
func Items[V comparable](values []V, texts []string) []Item[V] {
	out := make([]Item[V], 0, len(values))
	for i, value := range values {
		text := ""
		if i < len(texts) {
			text = texts[i]
		}
		out = append(out, Item[V]{Value: value, Text: text})
	}
	return out
}

// optionSet renders <option> elements for items of type D projected to
// values of type V.
type optionSet[V comparable, D any] struct {
	items     []D
	itemValue func(D) V
	itemText  func(D) string
	itemAttrs func(D) []markup.Attr
	valueText func(V) string
}

func newOptionSet[V comparable, D any](items []D, value func(D) V, text func(D) string) (optionSet[V, D], error) {
	if items == nil {
		return optionSet[V, D]{}, ErrNilItems
	}
	if value == nil || text == nil {
		return optionSet[V, D]{}, ErrNilProjection
	}
	return optionSet[V, D]{items: items, itemValue: value, itemText: text}, nil
}

func (o *optionSet[V, D]) format(value V, culture language.Tag) string {
	if o.valueText != nil {
		return o.valueText(value)
	}
	return format.String(value, culture)
}

// render writes one option per item; selected reports whether an item with
// the given value and rendered value text is selected.
func (o *optionSet[V, D]) render(b *strings.Builder, culture language.Tag, selected func(V, string) bool) {
	for _, item := range o.items {
		value := o.itemValue(item)
		text := o.format(value, culture)

		attrs := markup.NewAttributes()
		if o.itemAttrs != nil {
			attrs.Merge(markup.NewAttributes(o.itemAttrs(item)...))
		}
		attrs.Set("value", text)
		if selected(value, text) {
			attrs.Set("selected", markup.Flag{})
		}
		b.WriteString(markup.NewTag("option", attrs).SetInnerText(o.itemText(item)).String())
	}
}

// DropDown renders a single-selection <select>.
type DropDown[V comparable, D any] struct {
	Visible[*DropDown[V, D], V]
	options      optionSet[V, D]
	nullOption   bool
	nullText     string
	nullValue    V
	nullValueSet bool
}

// NewDropDown creates a drop-down over items. value projects an item to the
// bound value type, text to its display text. A nil items slice is rejected.
func NewDropDown[V comparable, D any](items []D, value func(D) V, text func(D) string) (*DropDown[V, D], error) {
	options, err := newOptionSet(items, value, text)
	if err != nil {
		return nil, err
	}
	c := &DropDown[V, D]{options: options}
	c.initVisible(c, KindDropDown, c.renderSelect)
	return c, nil
}

// WithItemAttributes sets per-option attributes, rendered before value.
func (c *DropDown[V, D]) WithItemAttributes(fn func(D) []markup.Attr) *DropDown[V, D] {
	c.options.itemAttrs = fn
	return c
}

// WithValueText overrides how values render in option value attributes.
func (c *DropDown[V, D]) WithValueText(fn func(V) string) *DropDown[V, D] {
	c.options.valueText = fn
	return c
}

// WithNullOption prepends an option representing no selection. An empty
// text resolves DefaultNullOptionTerm through the term resolver; other text
// renders as given.
func (c *DropDown[V, D]) WithNullOption(text string) *DropDown[V, D] {
	c.nullOption = true
	c.nullText = text
	c.nullValueSet = false
	return c
}

// WithNullOptionValue is WithNullOption with an explicit option value.
func (c *DropDown[V, D]) WithNullOptionValue(text string, value V) *DropDown[V, D] {
	c.WithNullOption(text)
	c.nullValue = value
	c.nullValueSet = true
	return c
}

func (c *DropDown[V, D]) WithoutNullOption() *DropDown[V, D] {
	c.nullOption = false
	c.nullValueSet = false
	return c
}

// Items returns the option items.
func (c *DropDown[V, D]) Items() []D { return c.options.items }

func (c *DropDown[V, D]) renderSelect() string {
	attrs := c.controlAttributes(false)
	c.writeAria(attrs, "")

	var inner strings.Builder
	if c.nullOption {
		text := c.nullText
		if text == "" {
			text = c.term(DefaultNullOptionTerm)
		}
		value := ""
		if c.nullValueSet {
			value = c.options.format(c.nullValue, c.culture)
		}
		option := markup.NewTag("option", markup.NewAttributes(
			markup.Attr{Name: "value", Value: value},
			markup.Attr{Name: "data-null-value", Value: "true"},
		))
		inner.WriteString(option.SetInnerText(text).String())
	}

	attempted, hasAttempted := c.attempted, c.hasAttempted
	bound := c.hasValue && !format.IsNil(c.value)
	c.options.render(&inner, c.culture, func(value V, text string) bool {
		if hasAttempted {
			return text == attempted
		}
		return bound && value == c.value
	})

	return markup.NewTag("select", attrs).SetInnerHTML(inner.String()).String()
}

// ListBox renders a multiple-selection <select> bound to a slice.
type ListBox[V comparable, D any] struct {
	Visible[*ListBox[V, D], []V]
	options optionSet[V, D]
}

// NewListBox creates a list box over items. A nil items slice is rejected.
func NewListBox[V comparable, D any](items []D, value func(D) V, text func(D) string) (*ListBox[V, D], error) {
	options, err := newOptionSet(items, value, text)
	if err != nil {
		return nil, err
	}
	c := &ListBox[V, D]{options: options}
	c.initVisible(c, KindListBox, c.renderSelect)
	return c, nil
}

func (c *ListBox[V, D]) WithItemAttributes(fn func(D) []markup.Attr) *ListBox[V, D] {
	c.options.itemAttrs = fn
	return c
}

func (c *ListBox[V, D]) WithValueText(fn func(V) string) *ListBox[V, D] {
	c.options.valueText = fn
	return c
}

// Items returns the option items.
func (c *ListBox[V, D]) Items() []D { return c.options.items }

func (c *ListBox[V, D]) renderSelect() string {
	attrs := c.controlAttributes(false)
	c.writeAria(attrs, "")
	attrs.Set("multiple", markup.Flag{})

	selected := make(map[V]struct{}, len(c.value))
	for _, value := range c.value {
		selected[value] = struct{}{}
	}
	attempted, hasAttempted := c.attemptedSet()

	var inner strings.Builder
	c.options.render(&inner, c.culture, func(value V, text string) bool {
		if hasAttempted {
			_, ok := attempted[text]
			return ok
		}
		_, ok := selected[value]
		return ok
	})

	return markup.NewTag("select", attrs).SetInnerHTML(inner.String()).String()
}
