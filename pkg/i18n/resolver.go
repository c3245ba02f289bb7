// Package i18n resolves localized display text for form components. The
// culture is always passed explicitly; nothing here reads ambient locale.
package i18n

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
)

// ErrMissingTranslator is reported to MissingTranslationHandler when no
// Translator was configured.
var ErrMissingTranslator = errors.New("i18n: translator not configured")

// ErrMissingTranslation is returned by catalogs for unknown keys.
var ErrMissingTranslation = errors.New("i18n: translation not found")

// Translator looks up a message for locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate calls fn.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler decides the text used when a lookup fails.
// fallback is the text that would be used without the handler.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// TermResolver maps keys and property paths to display text for a culture.
type TermResolver interface {
	ResolveTerm(key string, culture language.Tag) string
	ResolveLabel(path string, culture language.Tag) string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithOnMissing installs a handler for failed lookups.
func WithOnMissing(handler MissingTranslationHandler) Option {
	return func(r *Resolver) {
		r.onMissing = handler
	}
}

// WithLabelPrefix changes the key namespace used for labels (default "labels").
func WithLabelPrefix(prefix string) Option {
	return func(r *Resolver) {
		r.labelPrefix = strings.Trim(strings.TrimSpace(prefix), ".")
	}
}

// WithLabeler overrides the humanising fallback used for untranslated labels.
func WithLabeler(labeler func(string) string) Option {
	return func(r *Resolver) {
		if labeler != nil {
			r.labeler = labeler
		}
	}
}

// Resolver is the default TermResolver, backed by a Translator.
type Resolver struct {
	translator  Translator
	onMissing   MissingTranslationHandler
	labelPrefix string
	labeler     func(string) string
}

var _ TermResolver = (*Resolver)(nil)

// NewTermResolver wraps t. A nil translator is allowed; every lookup then
// falls back to the key or the humanised property name.
func NewTermResolver(t Translator, opts ...Option) *Resolver {
	r := &Resolver{
		translator:  t,
		labelPrefix: "labels",
		labeler:     DefaultLabeler,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// ResolveTerm translates key, falling back to the key itself.
func (r *Resolver) ResolveTerm(key string, culture language.Tag) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	return r.translate(culture.String(), key, key)
}

// ResolveLabel translates "<labelPrefix>.<path>", falling back to a label
// derived from the last path segment.
func (r *Resolver) ResolveLabel(path string, culture language.Tag) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	key := path
	if r.labelPrefix != "" {
		key = r.labelPrefix + "." + path
	}
	return r.translate(culture.String(), key, r.labeler(lastSegment(path)))
}

func (r *Resolver) translate(locale, key, fallback string) string {
	if r.translator == nil {
		if r.onMissing != nil {
			return r.onMissing(locale, key, fallback, ErrMissingTranslator)
		}
		return fallback
	}

	result, err := r.translator.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	if err == nil {
		err = ErrMissingTranslation
	}
	if r.onMissing != nil {
		return r.onMissing(locale, key, fallback, err)
	}
	return fallback
}

func lastSegment(path string) string {
	path = strings.TrimRight(path, "]")
	if idx := strings.LastIndexAny(path, ".["); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
