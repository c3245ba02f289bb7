package components

import (
	"strings"

	"github.com/goliatone/go-formbind/pkg/i18n"
	"github.com/goliatone/go-formbind/pkg/markup"
	"github.com/goliatone/go-formbind/pkg/validation"
)

// Visible adds label, validation state and ARIA wiring to Base.
type Visible[S any, P any] struct {
	Base[S, P]
	label        string
	labelMarkup  string
	labelVisible bool
	ariaLabel    bool
	state        validation.State
	errors       []string
	attempted    string
	attemptedAll []string
	hasAttempted bool
	order        []Part
	marker       validation.MarkerMode
	messages     validation.MessageRenderer
	terms        i18n.TermResolver
	prepare      []func()
	userPrepare  []func(S)
	control      func() string
}

func (v *Visible[S, P]) initVisible(self S, kind Kind, control func() string) {
	v.init(self, kind, func() string { return v.compose(true) })
	v.labelVisible = true
	v.order = append([]Part(nil), DefaultRenderingOrder...)
	v.marker = validation.OnError
	v.control = control
}

func (v *Visible[S, P]) Label() string           { return v.label }
func (v *Visible[S, P]) LabelVisible() bool      { return v.labelVisible }
func (v *Visible[S, P]) State() validation.State { return v.state }
func (v *Visible[S, P]) RenderingOrder() []Part  { return append([]Part(nil), v.order...) }

func (v *Visible[S, P]) MarkerMode() validation.MarkerMode { return v.marker }

// Errors returns a copy of the current error messages.
func (v *Visible[S, P]) Errors() []string {
	return append([]string(nil), v.errors...)
}

// AttemptedValue returns the raw submitted value, if one was set.
func (v *Visible[S, P]) AttemptedValue() (string, bool) {
	return v.attempted, v.hasAttempted
}

// WithLabel sets the label text and makes it visible.
func (v *Visible[S, P]) WithLabel(text string) S {
	v.label = text
	v.labelMarkup = ""
	v.labelVisible = true
	return v.self
}

// WithLabelMarkup sets inline label markup. The markup is sanitised.
func (v *Visible[S, P]) WithLabelMarkup(raw string) S {
	v.labelMarkup = markup.Sanitize(raw)
	v.labelVisible = true
	return v.self
}

// WithoutLabel hides the label while keeping its text for aria-label.
func (v *Visible[S, P]) WithoutLabel() S {
	v.labelVisible = false
	return v.self
}

// WithAriaLabel emits the label (or placeholder) text as aria-label.
func (v *Visible[S, P]) WithAriaLabel() S {
	v.ariaLabel = true
	return v.self
}

// WithState records the validation outcome. Later calls replace earlier ones.
func (v *Visible[S, P]) WithState(state validation.State, errors []string) S {
	v.state = state
	v.errors = append([]string(nil), errors...)
	return v.self
}

// WithAttemptedValue redisplays raw instead of the bound value. Multi-value
// controls split raw on commas.
func (v *Visible[S, P]) WithAttemptedValue(raw string) S {
	v.attempted = raw
	v.attemptedAll = nil
	v.hasAttempted = true
	return v.self
}

// WithAttemptedValues redisplays every submitted value. Multi-value controls
// match each value whole; single-value controls see them comma joined.
func (v *Visible[S, P]) WithAttemptedValues(values ...string) S {
	v.attempted = strings.Join(values, ",")
	v.attemptedAll = append([]string{}, values...)
	v.hasAttempted = true
	return v.self
}

// WithRenderingOrder selects which parts render and in what order.
func (v *Visible[S, P]) WithRenderingOrder(parts ...Part) S {
	if len(parts) == 0 {
		parts = DefaultRenderingOrder
	}
	v.order = append([]Part(nil), parts...)
	return v.self
}

func (v *Visible[S, P]) WithValidationMarker(mode validation.MarkerMode) S {
	v.marker = mode
	return v.self
}

func (v *Visible[S, P]) WithMessageRenderer(renderer validation.MessageRenderer) S {
	v.messages = renderer
	return v.self
}

func (v *Visible[S, P]) WithTermResolver(terms i18n.TermResolver) S {
	v.terms = terms
	return v.self
}

// OnPrepareForRender registers fn to run immediately before every render.
func (v *Visible[S, P]) OnPrepareForRender(fn func(S)) S {
	if fn != nil {
		v.userPrepare = append(v.userPrepare, fn)
	}
	return v.self
}

func (v *Visible[S, P]) SetLabel(label string) {
	v.label = label
	v.labelMarkup = ""
}

func (v *Visible[S, P]) HideLabel() { v.labelVisible = false }

func (v *Visible[S, P]) SetTermResolver(terms i18n.TermResolver) { v.terms = terms }

func (v *Visible[S, P]) SetMessageRenderer(renderer validation.MessageRenderer) {
	v.messages = renderer
}

func (v *Visible[S, P]) AddPrepareHook(fn func()) {
	if fn != nil {
		v.prepare = append(v.prepare, fn)
	}
}

// ApplyValidation pulls state, errors and the attempted value for the
// control's name from provider. The attempted value is only taken for
// validated fields.
func (v *Visible[S, P]) ApplyValidation(provider validation.ErrorProvider) {
	if provider == nil {
		return
	}
	state := provider.StateFor(v.name)
	if state != validation.Unvalidated {
		if multi, ok := provider.(validation.MultiValueProvider); ok {
			if values, ok := multi.AttemptedValuesFor(v.name); ok {
				v.WithAttemptedValues(values...)
				v.WithState(state, provider.ErrorsFor(v.name))
				return
			}
		}
		if raw, ok := provider.AttemptedValueFor(v.name); ok {
			v.WithAttemptedValue(raw)
		}
	}
	v.WithState(state, provider.ErrorsFor(v.name))
}

// Finalize runs the prepare hooks, applies provider and renders. It is the
// explicit alternative to registering a hook that captures a provider.
func (v *Visible[S, P]) Finalize(provider validation.ErrorProvider) string {
	v.runPrepare()
	v.ApplyValidation(provider)
	return v.compose(false)
}

// AriaDescribedBy returns the validation message id when the control is
// invalid with errors, otherwise "".
func (v *Visible[S, P]) AriaDescribedBy() string {
	if v.state != validation.Invalid || len(v.errors) == 0 {
		return ""
	}
	return validation.MessageID(v.name)
}

func (v *Visible[S, P]) runPrepare() {
	for _, fn := range v.prepare {
		fn()
	}
	for _, fn := range v.userPrepare {
		fn(v.self)
	}
}

func (v *Visible[S, P]) compose(prepare bool) string {
	if prepare {
		v.runPrepare()
	}

	var b strings.Builder
	for _, part := range v.order {
		switch part {
		case PartLabel:
			b.WriteString(v.labelHTML())
		case PartComponent:
			if v.control != nil {
				b.WriteString(v.control())
			}
		case PartValidationMessage:
			b.WriteString(v.messageHTML())
		}
	}
	return b.String()
}

func (v *Visible[S, P]) labelHTML() string {
	if !v.labelVisible || (v.label == "" && v.labelMarkup == "") {
		return ""
	}
	tag := markup.NewTag("label")
	if v.id != "" {
		tag.Attr("for", v.id)
	}
	if v.labelMarkup != "" {
		tag.SetInnerHTML(v.labelMarkup)
	} else {
		tag.SetInnerText(v.label)
	}
	return tag.String()
}

func (v *Visible[S, P]) messageHTML() string {
	renderer := v.messages
	if renderer == nil {
		renderer = validation.DefaultRenderer
	}
	return renderer.Render(v.state, v.marker, v.errors, validation.MessageID(v.name))
}

// term resolves key through the term resolver, falling back to the key.
func (v *Visible[S, P]) term(key string) string {
	if key == "" || v.terms == nil {
		return key
	}
	return v.terms.ResolveTerm(key, v.culture)
}

// writeAria appends aria-label (when enabled) and the validation wiring.
// fallback supplies the aria-label text when the label is empty.
func (v *Visible[S, P]) writeAria(attrs *markup.Attributes, fallback string) {
	if v.ariaLabel {
		text := v.label
		if text == "" {
			text = fallback
		}
		if text != "" {
			attrs.Set("aria-label", v.term(text))
		}
	}
	if id := v.AriaDescribedBy(); id != "" {
		attrs.Set("aria-describedby", id)
		attrs.Set("aria-invalid", "true")
	}
}

// attemptedSet returns the attempted values for multi-value controls. A raw
// attempted value is split on commas.
func (v *Visible[S, P]) attemptedSet() (map[string]struct{}, bool) {
	if !v.hasAttempted {
		return nil, false
	}
	set := make(map[string]struct{})
	if v.attemptedAll != nil {
		for _, value := range v.attemptedAll {
			set[value] = struct{}{}
		}
		return set, true
	}
	for _, part := range strings.Split(v.attempted, ",") {
		if part = strings.TrimSpace(part); part != "" {
			set[part] = struct{}{}
		}
	}
	return set, true
}
