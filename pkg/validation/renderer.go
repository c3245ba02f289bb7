package validation

import (
	"strings"

	"github.com/goliatone/go-formbind/pkg/markup"
)

// MessageRenderer produces the markup for a field's validation message.
type MessageRenderer interface {
	Render(state State, mode MarkerMode, errors []string, id string) string
}

// MessageRendererFunc adapts a function to MessageRenderer.
type MessageRendererFunc func(state State, mode MarkerMode, errors []string, id string) string

func (fn MessageRendererFunc) Render(state State, mode MarkerMode, errors []string, id string) string {
	if fn == nil {
		return ""
	}
	return fn(state, mode, errors, id)
}

// Class names used by HTMLRenderer.
const (
	ClassMessage = "validation-message"
	ClassInvalid = "invalid"
	ClassValid   = "valid"
	ClassError   = "validation-error"
)

// HTMLRenderer is the default MessageRenderer. Each error becomes a nested
// span inside the message element.
type HTMLRenderer struct{}

var _ MessageRenderer = HTMLRenderer{}

// DefaultRenderer is used when no renderer was configured.
var DefaultRenderer MessageRenderer = HTMLRenderer{}

func (HTMLRenderer) Render(state State, mode MarkerMode, errors []string, id string) string {
	if mode == Never {
		return ""
	}

	errors = normalizeMessages(errors)
	invalid := state == Invalid && len(errors) > 0
	if !invalid && mode != Always {
		return ""
	}

	attrs := markup.NewAttributes()
	if id != "" {
		attrs.Set("id", id)
	}

	class := ClassMessage
	switch {
	case invalid:
		class += " " + ClassInvalid
	case state == Valid:
		class += " " + ClassValid
	}
	attrs.Set("class", class)
	if invalid {
		attrs.Set("role", "alert")
	}

	var inner strings.Builder
	if invalid {
		for _, message := range errors {
			item := markup.NewTag("span", markup.NewAttributes(markup.Attr{Name: "class", Value: ClassError}))
			item.SetInnerText(message)
			inner.WriteString(item.String())
		}
	}

	tag := markup.NewTag("span", attrs)
	tag.SetInnerHTML(inner.String())
	return tag.String()
}
