package components

import (
	"strings"

	"github.com/goliatone/go-formbind/pkg/format"
	"github.com/goliatone/go-formbind/pkg/markup"
)

// Submitted values of a boolean checkbox and its hidden fallback.
const (
	CheckedValue   = "TRUE"
	UncheckedValue = "FALSE"
)

// CheckBox renders a checkbox bound to a bool, followed by a hidden input
// with the same name submitting FALSE so an unchecked box still posts a
// value. A disabled checkbox gets no fallback, so an unchecked disabled box
// submits nothing.
type CheckBox struct {
	Visible[*CheckBox, bool]
}

// NewCheckBox creates an unbound boolean checkbox.
func NewCheckBox() *CheckBox {
	c := &CheckBox{}
	c.initVisible(c, KindCheckBox, c.renderCheckBox)
	return c
}

// Checked reports whether the box renders checked. An attempted value
// containing TRUE in any case wins over the bound value.
func (c *CheckBox) Checked() bool {
	if c.hasAttempted {
		return strings.Contains(strings.ToUpper(c.attempted), CheckedValue)
	}
	return c.hasValue && c.value
}

func (c *CheckBox) renderCheckBox() string {
	attrs := c.controlAttributes(false)
	c.writeAria(attrs, "")
	attrs.Set("type", "checkbox")
	attrs.Set("value", CheckedValue)
	attrs.Set("checked", c.Checked())

	out := markup.NewTag("input", attrs).String()
	if attrs.Has("disabled") {
		return out
	}

	hidden := markup.NewAttributes()
	if c.name != "" {
		hidden.Set("name", c.name)
	}
	hidden.Set("type", "hidden")
	hidden.Set("value", UncheckedValue)
	return out + markup.NewTag("input", hidden).String()
}

// CollectionCheckBox renders one checkbox bound to a slice: it is checked
// when the slice contains the checkbox's own value.
type CollectionCheckBox[V comparable] struct {
	Visible[*CollectionCheckBox[V], []V]
	option    V
	valueText func(V) string
}

// NewCollectionCheckBox creates a checkbox submitting option.
func NewCollectionCheckBox[V comparable](option V) *CollectionCheckBox[V] {
	c := &CollectionCheckBox[V]{option: option}
	c.initVisible(c, KindCheckBox, c.renderCheckBox)
	return c
}

// Option returns the value this checkbox submits.
func (c *CollectionCheckBox[V]) Option() V { return c.option }

// WithValueText overrides how the option renders in the value attribute.
func (c *CollectionCheckBox[V]) WithValueText(fn func(V) string) *CollectionCheckBox[V] {
	c.valueText = fn
	return c
}

// Checked reports whether the option is in the bound slice, or in the
// comma separated attempted value when one is set.
func (c *CollectionCheckBox[V]) Checked() bool {
	if attempted, ok := c.attemptedSet(); ok {
		_, found := attempted[c.optionText()]
		return found
	}
	for _, value := range c.value {
		if value == c.option {
			return true
		}
	}
	return false
}

func (c *CollectionCheckBox[V]) optionText() string {
	if c.valueText != nil {
		return c.valueText(c.option)
	}
	return format.String(c.option, c.culture)
}

func (c *CollectionCheckBox[V]) renderCheckBox() string {
	attrs := c.controlAttributes(false)
	c.writeAria(attrs, "")
	attrs.Set("type", "checkbox")
	attrs.Set("value", c.optionText())
	attrs.Set("checked", c.Checked())
	return markup.NewTag("input", attrs).String()
}
