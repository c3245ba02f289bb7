package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

var (
	_ templ.Component = (*TextBox[string])(nil)
	_ templ.Component = (*CheckBox)(nil)
	_ templ.Component = (*HiddenField[string])(nil)
)

// Templ wraps c for use inside templ templates: @components.Templ(field).
// A nil component renders nothing.
func Templ(c Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if c == nil {
			return nil
		}
		return c.Render(ctx, w)
	})
}

// Group renders components in order, stopping at the first write error or
// when ctx is done.
func Group(items ...Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, c := range items {
			if err := ctx.Err(); err != nil {
				return err
			}
			if c == nil {
				continue
			}
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}
