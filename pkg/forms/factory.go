// Package forms binds view-model properties to form components. A Factory
// resolves names, ids and labels for each property, applies the configured
// attribute pass and defers the validation lookup to render time.
package forms

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/text/language"

	"github.com/goliatone/go-formbind/pkg/components"
	"github.com/goliatone/go-formbind/pkg/format"
	"github.com/goliatone/go-formbind/pkg/i18n"
	"github.com/goliatone/go-formbind/pkg/seal"
	"github.com/goliatone/go-formbind/pkg/validation"
)

// ErrNoSealer is returned by sealed operations on a factory without a sealer.
var ErrNoSealer = errors.New("forms: sealer not configured")

// Option customises a Factory.
type Option func(*settings)

type settings struct {
	culture  language.Tag
	names    NameResolver
	ids      IDResolver
	terms    i18n.TermResolver
	errors   validation.ErrorProvider
	config   Configuration
	messages validation.MessageRenderer
	logger   *slog.Logger
	sealer   *seal.Sealer
}

// WithCulture sets the culture used for formatting and term resolution.
func WithCulture(culture language.Tag) Option {
	return func(s *settings) {
		s.culture = culture
	}
}

// WithNameResolver overrides the default PathNames resolver.
func WithNameResolver(resolver NameResolver) Option {
	return func(s *settings) {
		if resolver != nil {
			s.names = resolver
		}
	}
}

// WithIDResolver overrides the default PrefixedIDs resolver.
func WithIDResolver(resolver IDResolver) Option {
	return func(s *settings) {
		if resolver != nil {
			s.ids = resolver
		}
	}
}

// WithTermResolver sets the resolver used for labels and terms.
func WithTermResolver(resolver i18n.TermResolver) Option {
	return func(s *settings) {
		if resolver != nil {
			s.terms = resolver
		}
	}
}

// WithErrorProvider sets the initial error provider.
func WithErrorProvider(provider validation.ErrorProvider) Option {
	return func(s *settings) {
		if provider != nil {
			s.errors = provider
		}
	}
}

// WithConfiguration installs the per-component configuration pass.
func WithConfiguration(cfg Configuration) Option {
	return func(s *settings) {
		s.config = cfg
	}
}

// WithMessageRenderer sets the validation message renderer handed to every
// visible component and used by ValidationMessageFor.
func WithMessageRenderer(renderer validation.MessageRenderer) Option {
	return func(s *settings) {
		if renderer != nil {
			s.messages = renderer
		}
	}
}

// WithLogger sets the logger used for binding diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSealer enables SealedHiddenFieldFor and Open.
func WithSealer(sealer *seal.Sealer) Option {
	return func(s *settings) {
		s.sealer = sealer
	}
}

// Factory builds components bound to properties of models of type M.
// Components it returns belong to the caller's request; the factory itself
// may be shared once configured.
type Factory[M any] struct {
	settings

	mu       sync.RWMutex
	provider validation.ErrorProvider
}

// New creates a Factory.
func New[M any](opts ...Option) *Factory[M] {
	s := settings{
		culture:  format.Invariant,
		names:    PathNames,
		ids:      PrefixedIDs,
		terms:    i18n.NewTermResolver(nil),
		errors:   validation.NoErrors{},
		messages: validation.DefaultRenderer,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return &Factory[M]{settings: s, provider: s.errors}
}

// Culture returns the factory culture.
func (f *Factory[M]) Culture() language.Tag { return f.culture }

// ErrorProvider returns the current error provider.
func (f *Factory[M]) ErrorProvider() validation.ErrorProvider {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.provider
}

// SetErrorProvider replaces the error provider. Components already bound
// observe the new provider when they next render.
func (f *Factory[M]) SetErrorProvider(provider validation.ErrorProvider) {
	if provider == nil {
		provider = validation.NoErrors{}
	}
	f.mu.Lock()
	f.provider = provider
	f.mu.Unlock()
}

// ValidationMessageFor renders the standalone message element for a field
// name. The element is always emitted so client scripts have a target.
func (f *Factory[M]) ValidationMessageFor(name string) string {
	provider := f.ErrorProvider()
	return f.messages.Render(
		provider.StateFor(name),
		validation.Always,
		provider.ErrorsFor(name),
		validation.MessageID(name),
	)
}

// Open decodes a value produced by SealedHiddenFieldFor.
func (f *Factory[M]) Open(token string, v any) error {
	if f.sealer == nil {
		return ErrNoSealer
	}
	return f.sealer.Open(token, v)
}

// ValidationMessageForProp renders the message element for prop.
func ValidationMessageForProp[M any, P any](f *Factory[M], prop Property[M, P]) string {
	return f.ValidationMessageFor(f.names.ResolveName(prop.Path()))
}

// Must panics when err is non-nil. It suits templates where a binding
// failure is a programming error.
func Must[T any](c T, err error) T {
	if err != nil {
		panic(err)
	}
	return c
}

func bind[M any, P any, C components.Binder[P]](f *Factory[M], c C, prop Property[M, P], model M) (C, error) {
	path := prop.Path()

	c.SetName(f.names.ResolveName(path))
	c.SetCulture(f.culture)
	value, ok, err := prop.Resolve(model)
	if err != nil {
		f.logger.Warn("form binding failed",
			slog.String("path", path),
			slog.String("kind", c.Kind().String()),
			slog.Any("error", err),
		)
		var zero C
		return zero, err
	}
	if ok {
		c.SetValue(value)
	}
	c.SetID(f.ids.ResolveID(path, c.ControlPrefix()))

	visible, isVisible := any(c).(components.VisibleBinder[P])
	if isVisible {
		visible.SetTermResolver(f.terms)
		visible.SetMessageRenderer(f.messages)
		visible.SetLabel(f.terms.ResolveLabel(path, f.culture))
		visible.HideLabel()
	}

	if f.config != nil {
		f.config.Initialize(c)
	}
	c.MarkConfigured()

	if isVisible {
		visible.AddPrepareHook(func() {
			visible.ApplyValidation(f.ErrorProvider())
		})
	}

	f.logger.Debug("form component bound",
		slog.String("path", path),
		slog.String("kind", c.Kind().String()),
		slog.String("name", c.Name()),
		slog.String("id", c.ID()),
		slog.Bool("resolved", ok),
	)
	return c, nil
}

func (f *Factory[M]) rejected(path string, kind components.Kind, err error) error {
	f.logger.Warn("form component rejected",
		slog.String("path", path),
		slog.String("kind", kind.String()),
		slog.Any("error", err),
	)
	return fmt.Errorf("forms: %s %q: %w", kind, path, err)
}
