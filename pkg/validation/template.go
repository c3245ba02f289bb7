package validation

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// TemplateOption configures a TemplateRenderer.
type TemplateOption func(*templateConfig)

type templateConfig struct {
	fallback MessageRenderer
	logger   *slog.Logger
	globals  map[string]any
}

// WithFallback sets the renderer used when the template fails to execute.
// Defaults to HTMLRenderer.
func WithFallback(renderer MessageRenderer) TemplateOption {
	return func(cfg *templateConfig) {
		if renderer != nil {
			cfg.fallback = renderer
		}
	}
}

// WithTemplateLogger sets the logger used to report execution failures.
func WithTemplateLogger(logger *slog.Logger) TemplateOption {
	return func(cfg *templateConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithGlobals seeds values visible to every execution (CSS class names,
// icon markup).
func WithGlobals(data map[string]any) TemplateOption {
	return func(cfg *templateConfig) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			if key = strings.TrimSpace(key); key != "" {
				cfg.globals[key] = value
			}
		}
	}
}

// TemplateRenderer renders validation messages through a pongo2 template.
// The template sees state, mode, id, errors, invalid and valid; output is
// autoescaped.
//
//	{% if invalid %}<p id="{{ id }}">{{ errors|join:", " }}</p>{% endif %}
type TemplateRenderer struct {
	tpl      *pongo2.Template
	fallback MessageRenderer
	logger   *slog.Logger
}

var _ MessageRenderer = (*TemplateRenderer)(nil)

// NewTemplateRenderer parses source and returns a renderer.
func NewTemplateRenderer(source string, opts ...TemplateOption) (*TemplateRenderer, error) {
	if strings.TrimSpace(source) == "" {
		return nil, errors.New("validation: template source is required")
	}

	cfg := &templateConfig{
		fallback: HTMLRenderer{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	set := pongo2.NewSet("validation", pongo2.DefaultLoader)
	if len(cfg.globals) > 0 {
		set.Globals.Update(pongo2.Context(cfg.globals))
	}

	tpl, err := set.FromString(source)
	if err != nil {
		return nil, fmt.Errorf("validation: parse message template: %w", err)
	}

	return &TemplateRenderer{
		tpl:      tpl,
		fallback: cfg.fallback,
		logger:   cfg.logger,
	}, nil
}

// MustTemplateRenderer is like NewTemplateRenderer but panics on error.
func MustTemplateRenderer(source string, opts ...TemplateOption) *TemplateRenderer {
	renderer, err := NewTemplateRenderer(source, opts...)
	if err != nil {
		panic(err)
	}
	return renderer
}

// Render implements MessageRenderer.
func (r *TemplateRenderer) Render(state State, mode MarkerMode, errs []string, id string) string {
	if r == nil || r.tpl == nil {
		return DefaultRenderer.Render(state, mode, errs, id)
	}
	if mode == Never {
		return ""
	}

	messages := normalizeMessages(errs)
	if messages == nil {
		messages = []string{}
	}

	out, err := r.tpl.Execute(pongo2.Context{
		"state":   state.String(),
		"mode":    mode.String(),
		"id":      id,
		"errors":  messages,
		"invalid": state == Invalid && len(messages) > 0,
		"valid":   state == Valid,
	})
	if err != nil {
		r.logger.Warn("validation message template failed",
			slog.String("id", id),
			slog.String("state", state.String()),
			slog.Any("error", err),
		)
		return r.fallback.Render(state, mode, errs, id)
	}
	return out
}
