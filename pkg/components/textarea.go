package components

import (
	"strconv"

	"github.com/goliatone/go-formbind/pkg/markup"
)

// TextArea renders a <textarea> with the value as escaped content.
type TextArea[P any] struct {
	textInput[*TextArea[P], P]
	rows, cols int
}

// NewTextArea creates an unbound text area.
func NewTextArea[P any]() *TextArea[P] {
	c := &TextArea[P]{}
	c.initVisible(c, KindTextArea, c.renderTextArea)
	return c
}

func (c *TextArea[P]) WithRows(rows int) *TextArea[P] {
	c.rows = rows
	return c
}

func (c *TextArea[P]) WithCols(cols int) *TextArea[P] {
	c.cols = cols
	return c
}

func (c *TextArea[P]) renderTextArea() string {
	attrs := c.inputAttributes(func(attrs *markup.Attributes) {
		if c.rows > 0 {
			attrs.Set("rows", strconv.Itoa(c.rows))
		}
		if c.cols > 0 {
			attrs.Set("cols", strconv.Itoa(c.cols))
		}
	})
	return markup.NewTag("textarea", attrs).SetInnerText(c.displayValue(c.culture)).String()
}
