package components

import (
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/goliatone/go-formbind/pkg/format"
	"github.com/goliatone/go-formbind/pkg/markup"
)

// choiceList renders a container with one input and label per item. P is
// the bound type, commonly a slice for checkbox lists and a scalar for radio
// lists.
type choiceList[S any, P any, D any] struct {
	Visible[S, P]
	inputType string
	items     []D
	itemValue func(D) string
	itemText  func(D) string
	selected  func(P, D) bool
	container string
}

func (l *choiceList[S, P, D]) initList(self S, kind Kind, inputType string, items []D, value, text func(D) string) error {
	if items == nil {
		return ErrNilItems
	}
	if value == nil || text == nil {
		return ErrNilProjection
	}
	l.items = items
	l.itemValue = value
	l.itemText = text
	l.inputType = inputType
	l.container = "div"
	l.initVisible(self, kind, l.renderList)
	return nil
}

// WithSelection sets the predicate deciding whether an item is selected for
// the bound value. It replaces the default value-text comparison.
func (l *choiceList[S, P, D]) WithSelection(fn func(P, D) bool) S {
	l.selected = fn
	return l.self
}

// WithContainer changes the wrapping element (default div).
func (l *choiceList[S, P, D]) WithContainer(element string) S {
	if element = strings.TrimSpace(element); element != "" {
		l.container = element
	}
	return l.self
}

// Items returns the list items.
func (l *choiceList[S, P, D]) Items() []D { return l.items }

// IsSelected reports whether item renders checked.
func (l *choiceList[S, P, D]) IsSelected(item D) bool {
	if attempted, ok := l.attemptedSet(); ok {
		_, found := attempted[l.itemValue(item)]
		return found
	}
	if !l.hasValue {
		return false
	}
	if l.selected != nil {
		return l.selected(l.value, item)
	}
	return containsText(l.value, l.itemValue(item), l.culture)
}

func (l *choiceList[S, P, D]) renderList() string {
	attrs := markup.NewAttributes()
	if l.id != "" {
		attrs.Set("id", l.id)
	}
	attrs.Merge(l.attrs)
	l.writeAria(attrs, "")

	var inner strings.Builder
	for i, item := range l.items {
		itemID := ""
		if l.id != "" {
			itemID = l.id + "_" + strconv.Itoa(i)
		}

		input := markup.NewAttributes()
		if l.name != "" {
			input.Set("name", l.name)
		}
		if itemID != "" {
			input.Set("id", itemID)
		}
		input.Set("type", l.inputType)
		input.Set("value", l.itemValue(item))
		input.Set("checked", l.IsSelected(item))
		inner.WriteString(markup.NewTag("input", input).String())

		label := markup.NewTag("label")
		if itemID != "" {
			label.Attr("for", itemID)
		}
		inner.WriteString(label.SetInnerText(l.itemText(item)).String())
	}

	return markup.NewTag(l.container, attrs).SetInnerHTML(inner.String()).String()
}

// containsText compares want with the formatted bound value, or with each
// element when the bound value is a slice or array.
func containsText(bound any, want string, culture language.Tag) bool {
	if format.IsNil(bound) {
		return false
	}
	rv := reflect.Indirect(reflect.ValueOf(bound))
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if format.String(rv.Index(i).Interface(), culture) == want {
				return true
			}
		}
		return false
	default:
		return format.String(bound, culture) == want
	}
}

// CheckBoxList renders a checkbox per item.
type CheckBoxList[P any, D any] struct {
	choiceList[*CheckBoxList[P, D], P, D]
}

// NewCheckBoxList creates a checkbox list. value gives each item's submitted
// value, text its label. A nil items slice is rejected.
func NewCheckBoxList[P any, D any](items []D, value, text func(D) string) (*CheckBoxList[P, D], error) {
	c := &CheckBoxList[P, D]{}
	if err := c.initList(c, KindCheckBoxList, "checkbox", items, value, text); err != nil {
		return nil, err
	}
	return c, nil
}

// RadioButtonList renders a radio button per item.
type RadioButtonList[P any, D any] struct {
	choiceList[*RadioButtonList[P, D], P, D]
}

// NewRadioButtonList creates a radio list. Without WithSelection an item is
// selected when its value equals the formatted bound value.
func NewRadioButtonList[P any, D any](items []D, value, text func(D) string) (*RadioButtonList[P, D], error) {
	c := &RadioButtonList[P, D]{}
	if err := c.initList(c, KindRadioButtonList, "radio", items, value, text); err != nil {
		return nil, err
	}
	return c, nil
}
