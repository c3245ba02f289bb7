package prompt

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-formbind/internal/preview"
	"github.com/goliatone/go-formbind/pkg/components"
	"github.com/goliatone/go-formbind/pkg/format"
)

var markers = []string{"on-error", "always", "never"}

// Ask walks the user through a preview request, starting from defaults.
func Ask(ctx context.Context, d Driver, defaults preview.Request) (preview.Request, error) {
	req := defaults
	kinds := preview.Kinds()

	idx, err := d.Select(ctx, SelectConfig{
		Message:      "Component kind",
		Options:      kinds,
		DefaultIndex: indexOf(kinds, defaults.Kind),
		PageSize:     len(kinds),
	})
	if err != nil {
		return req, err
	}
	if idx < 0 {
		return req, errors.New("prompt: no kind selected")
	}
	req.Kind = kinds[idx]
	kind, _ := components.ParseKind(req.Kind)

	if req.Name, err = d.Input(ctx, InputConfig{
		Message:   "Property name",
		Default:   defaults.Name,
		Help:      "Dotted paths such as Address.City are allowed",
		Validator: required,
	}); err != nil {
		return req, err
	}

	if needsItems(kind) {
		items, err := d.Input(ctx, InputConfig{
			Message: "Items (value=text, comma separated)",
			Default: strings.Join(defaults.Items, ","),
		})
		if err != nil {
			return req, err
		}
		req.Items = []string{items}
	}

	if req.Value, err = d.Input(ctx, InputConfig{
		Message: "Bound value",
		Default: defaults.Value,
	}); err != nil {
		return req, err
	}

	if req.Culture, err = d.Input(ctx, InputConfig{
		Message: "Culture",
		Default: defaults.Culture,
		Validator: func(raw string) error {
			if strings.TrimSpace(raw) == "" {
				return nil
			}
			_, err := format.ParseCulture(raw)
			return err
		},
	}); err != nil {
		return req, err
	}

	if kind == components.KindHiddenField {
		return req, nil
	}

	if req.Label, err = d.Confirm(ctx, ConfirmConfig{
		Message: "Show label?",
		Default: defaults.Label,
	}); err != nil {
		return req, err
	}

	errorsText, err := d.Input(ctx, InputConfig{
		Message: "Validation errors (comma separated, empty for none)",
		Default: strings.Join(defaults.Errors, ","),
	})
	if err != nil {
		return req, err
	}
	req.Errors = nil
	for _, message := range strings.Split(errorsText, ",") {
		if message = strings.TrimSpace(message); message != "" {
			req.Errors = append(req.Errors, message)
		}
	}

	marker := indexOf(markers, defaults.Marker)
	if marker < 0 {
		marker = 0
	}
	if marker, err = d.Select(ctx, SelectConfig{
		Message:      "Validation marker",
		Options:      markers,
		DefaultIndex: marker,
	}); err != nil {
		return req, err
	}
	if marker >= 0 {
		req.Marker = markers[marker]
	}
	return req, nil
}

func needsItems(kind components.Kind) bool {
	switch kind {
	case components.KindDropDown, components.KindListBox, components.KindCheckBoxList, components.KindRadioButtonList:
		return true
	}
	return false
}

func required(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("a value is required")
	}
	return nil
}
