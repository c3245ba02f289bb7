// Package preview renders a single component from a flat description, as
// used by the formbind command.
package preview

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbind/pkg/components"
	"github.com/goliatone/go-formbind/pkg/format"
	"github.com/goliatone/go-formbind/pkg/forms"
	"github.com/goliatone/go-formbind/pkg/i18n"
	"github.com/goliatone/go-formbind/pkg/seal"
	"github.com/goliatone/go-formbind/pkg/validation"
)

// ErrUnknownKind is returned for a kind ParseKind does not recognise.
var ErrUnknownKind = errors.New("preview: unknown component kind")

// Request describes the component to render. Items use "value=text" pairs;
// a bare entry is used as both. Values for list kinds are comma separated.
type Request struct {
	Kind        string   `mapstructure:"kind"`
	Name        string   `mapstructure:"name"`
	Value       string   `mapstructure:"value"`
	Culture     string   `mapstructure:"culture"`
	Label       bool     `mapstructure:"label"`
	Placeholder string   `mapstructure:"placeholder"`
	NullOption  string   `mapstructure:"null-option"`
	Items       []string `mapstructure:"items"`
	Errors      []string `mapstructure:"errors"`
	Attempted   string   `mapstructure:"attempted"`
	Marker      string   `mapstructure:"marker"`
	Sealed      bool     `mapstructure:"sealed"`
}

// Renderer turns requests into markup.
type Renderer struct {
	Config forms.Configuration
	Terms  i18n.TermResolver
	Sealer *seal.Sealer
	Logger *slog.Logger
}

// Kinds lists the kind names accepted by Render, in declaration order.
func Kinds() []string {
	var out []string
	for kind := components.KindTextBox; kind <= components.KindHiddenField; kind++ {
		out = append(out, kind.String())
	}
	return out
}

// Render builds the requested component and returns its markup.
func (r Renderer) Render(req Request) (string, error) {
	kind, ok := components.ParseKind(strings.ToLower(strings.TrimSpace(req.Kind)))
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownKind, req.Kind)
	}
	if strings.TrimSpace(req.Name) == "" {
		return "", errors.New("preview: name is required")
	}

	culture := format.Invariant
	if req.Culture != "" {
		parsed, err := format.ParseCulture(req.Culture)
		if err != nil {
			return "", err
		}
		culture = parsed
	}
	marker, err := ParseMarker(req.Marker)
	if err != nil {
		return "", err
	}

	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	f := forms.New[Request](
		forms.WithCulture(culture),
		forms.WithConfiguration(r.Config),
		forms.WithTermResolver(r.Terms),
		forms.WithErrorProvider(req.result()),
		forms.WithLogger(logger),
		forms.WithSealer(r.Sealer),
	)

	text := forms.Prop(req.Name, func(m Request) string { return m.Value })
	list := forms.Prop(req.Name, func(m Request) []string { return splitList(m.Value) })
	items := req.items()

	switch kind {
	case components.KindTextBox:
		return finish(forms.TextBoxFor(f, text, req))(req, marker, func(c *components.TextBox[string]) { c.WithPlaceholder(req.Placeholder) })
	case components.KindEmailBox:
		return finish(forms.EmailBoxFor(f, text, req))(req, marker, func(c *components.EmailBox[string]) { c.WithPlaceholder(req.Placeholder) })
	case components.KindPasswordBox:
		return finish(forms.PasswordBoxFor(f, text, req))(req, marker, func(c *components.PasswordBox[string]) { c.WithPlaceholder(req.Placeholder) })
	case components.KindTextArea:
		return finish(forms.TextAreaFor(f, text, req))(req, marker, func(c *components.TextArea[string]) { c.WithPlaceholder(req.Placeholder) })
	case components.KindNumberBox:
		number := forms.PropE(req.Name, func(m Request) (*float64, error) {
			if strings.TrimSpace(m.Value) == "" {
				return nil, nil
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(m.Value), 64)
			if err != nil {
				return nil, err
			}
			return &v, nil
		})
		return finish(forms.NumberBoxFor(f, number, req))(req, marker, nil)
	case components.KindCheckBox:
		checked := forms.PropE(req.Name, func(m Request) (bool, error) {
			if strings.TrimSpace(m.Value) == "" {
				return false, nil
			}
			return strconv.ParseBool(strings.TrimSpace(m.Value))
		})
		return finish(forms.CheckBoxFor(f, checked, req))(req, marker, nil)
	case components.KindDropDown:
		return finish(forms.DropDownFor(f, text, req, items, components.ItemValue[string], components.ItemText[string]))(req, marker,
			func(c *components.DropDown[string, components.Item[string]]) {
				c.WithItemAttributes(components.ItemAttrs[string])
				if req.NullOption != "" {
					c.WithNullOption(req.NullOption)
				}
			})
	case components.KindListBox:
		return finish(forms.ListBoxFor(f, list, req, items, components.ItemValue[string], components.ItemText[string]))(req, marker, nil)
	case components.KindCheckBoxList:
		return finish(forms.CheckBoxListFor(f, list, req, items, components.ItemValue[string], components.ItemText[string], nil))(req, marker, nil)
	case components.KindRadioButtonList:
		return finish(forms.RadioButtonListFor(f, text, req, items, components.ItemValue[string], components.ItemText[string], nil))(req, marker, nil)
	case components.KindFileUpload:
		return finish(forms.FileUploadFor(f, text, req))(req, marker, nil)
	case components.KindHiddenField:
		var (
			field *components.HiddenField[string]
			err   error
		)
		if req.Sealed {
			field, err = forms.SealedHiddenFieldFor(f, text, req)
		} else {
			field, err = forms.HiddenFieldFor(f, text, req, nil)
		}
		if err != nil {
			return "", err
		}
		return field.String(), nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownKind, req.Kind)
}

// ParseMarker maps "on-error", "always" and "never" to a marker mode. An
// empty string is on-error.
func ParseMarker(raw string) (validation.MarkerMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", validation.OnError.String():
		return validation.OnError, nil
	case validation.Always.String():
		return validation.Always, nil
	case validation.Never.String():
		return validation.Never, nil
	}
	return validation.OnError, fmt.Errorf("preview: unknown marker mode %q", raw)
}

type decorated[S any] interface {
	components.VisibleComponent
	WithLabel(text string) S
	WithValidationMarker(mode validation.MarkerMode) S
}

// finish applies the presentation flags shared by every visible kind, then
// kind specific tweaks, and renders.
func finish[S decorated[S]](c S, err error) func(Request, validation.MarkerMode, func(S)) (string, error) {
	return func(req Request, marker validation.MarkerMode, tweak func(S)) (string, error) {
		if err != nil {
			return "", err
		}
		if req.Label {
			c.WithLabel(c.Label())
		}
		c.WithValidationMarker(marker)
		if tweak != nil {
			tweak(c)
		}
		return c.String(), nil
	}
}

func (req Request) result() validation.ErrorProvider {
	if len(req.Errors) == 0 && req.Attempted == "" {
		return validation.NoErrors{}
	}
	opts := []validation.ResultOption{
		validation.Validated(),
		validation.WithErrors(map[string][]string{req.Name: req.Errors}),
	}
	if req.Attempted != "" {
		opts = append(opts, validation.WithAttemptedValues(map[string]string{req.Name: req.Attempted}))
	}
	return validation.NewResult(opts...)
}

func (req Request) items() []components.Item[string] {
	items := make([]components.Item[string], 0, len(req.Items))
	for _, raw := range req.Items {
		for _, entry := range splitList(raw) {
			value, text, found := strings.Cut(entry, "=")
			value = strings.TrimSpace(value)
			if !found {
				text = value
			}
			items = append(items, components.Item[string]{Value: value, Text: strings.TrimSpace(text)})
		}
	}
	return items
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
