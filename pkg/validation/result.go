package validation

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Result is an ErrorProvider built from a processed submission: the raw
// values the user sent and the errors produced by validating them.
type Result struct {
	validated  bool
	fields     map[string][]string
	form       []string
	attempted  map[string]string
	submitted  map[string][]string
	fieldOrder []string
}

var (
	_ ErrorProvider      = (*Result)(nil)
	_ MultiValueProvider = (*Result)(nil)
)

// ResultOption configures NewResult.
type ResultOption func(*Result)

// Validated marks the submission as validated; fields without errors then
// report Valid instead of Unvalidated.
func Validated() ResultOption {
	return func(r *Result) {
		r.validated = true
	}
}

// WithErrors records error messages keyed by field path. Keys may be dotted
// paths, JSON pointers ("/body/owner/email") or bracket paths ("lines[0].sku");
// form level keys ("", "form", "__all__", "non_field_errors") are kept apart.
// Supplying errors implies Validated.
func WithErrors(errors map[string][]string) ResultOption {
	return func(r *Result) {
		r.validated = true
		for _, raw := range sortedKeys(errors) {
			messages := normalizeMessages(errors[raw])
			if len(messages) == 0 {
				continue
			}
			if isFormLevelKey(raw) {
				r.form = normalizeMessages(append(r.form, messages...))
				continue
			}
			name := NormalizePath(raw)
			if name == "" {
				r.form = normalizeMessages(append(r.form, messages...))
				continue
			}
			if _, exists := r.fields[name]; !exists {
				r.fieldOrder = append(r.fieldOrder, name)
			}
			r.fields[name] = normalizeMessages(append(r.fields[name], messages...))
		}
	}
}

// WithFieldError appends a single message for name.
func WithFieldError(name, message string) ResultOption {
	return WithErrors(map[string][]string{name: {message}})
}

// WithAttemptedValues records the raw submitted values keyed by field name.
func WithAttemptedValues(values map[string]string) ResultOption {
	return func(r *Result) {
		for key, value := range values {
			if name := NormalizePath(key); name != "" {
				r.attempted[name] = value
			}
		}
	}
}

// WithSubmittedValues records posted values. Each field keeps its value list
// for multi-value controls and a comma joined form for AttemptedValueFor.
func WithSubmittedValues(values url.Values) ResultOption {
	return func(r *Result) {
		for key, vals := range values {
			name := NormalizePath(key)
			if name == "" {
				continue
			}
			r.attempted[name] = strings.Join(vals, ",")
			r.submitted[name] = append([]string(nil), vals...)
		}
	}
}

// NewResult builds a Result. Without options every field is Unvalidated.
func NewResult(opts ...ResultOption) *Result {
	r := &Result{
		fields:    make(map[string][]string),
		attempted: make(map[string]string),
		submitted: make(map[string][]string),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// FromSubmission builds a validated Result from posted form values and the
// errors produced for them. Multi-valued fields are served whole through
// AttemptedValuesFor and comma joined through AttemptedValueFor.
func FromSubmission(values url.Values, errors map[string][]string) *Result {
	return NewResult(Validated(), WithErrors(errors), WithSubmittedValues(values))
}

// StateFor implements ErrorProvider.
func (r *Result) StateFor(name string) State {
	if r == nil || !r.validated {
		return Unvalidated
	}
	if len(r.fields[NormalizePath(name)]) > 0 {
		return Invalid
	}
	return Valid
}

// ErrorsFor implements ErrorProvider. The returned slice is a copy.
func (r *Result) ErrorsFor(name string) []string {
	if r == nil {
		return nil
	}
	errs := r.fields[NormalizePath(name)]
	if len(errs) == 0 {
		return nil
	}
	return append([]string(nil), errs...)
}

// AttemptedValueFor implements ErrorProvider.
func (r *Result) AttemptedValueFor(name string) (string, bool) {
	if r == nil {
		return "", false
	}
	value, ok := r.attempted[NormalizePath(name)]
	return value, ok
}

// AttemptedValuesFor implements MultiValueProvider. Only values recorded with
// WithSubmittedValues are reported. The returned slice is a copy.
func (r *Result) AttemptedValuesFor(name string) ([]string, bool) {
	if r == nil {
		return nil, false
	}
	values, ok := r.submitted[NormalizePath(name)]
	if !ok {
		return nil, false
	}
	return append([]string(nil), values...), true
}

// FormErrors returns messages not bound to a field.
func (r *Result) FormErrors() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.form...)
}

// InvalidFields lists fields with errors in the order first recorded.
func (r *Result) InvalidFields() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.fieldOrder...)
}

// Valid reports whether the submission was validated without any errors.
func (r *Result) Valid() bool {
	return r != nil && r.validated && len(r.fields) == 0 && len(r.form) == 0
}

// NormalizePath converts the supported path notations into a dotted name:
// "/body/owner/email" and "owner.email" both yield "owner.email",
// "lines[0].sku" yields "lines.0.sku". Leading request wrappers (body,
// request, payload, data) are dropped.
func NormalizePath(path string) string {
	segments := dropWrapperSegments(parsePathSegments(path))
	return strings.Join(segments, ".")
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return nil
	}

	clean = strings.TrimPrefix(clean, "#/")
	clean = strings.TrimPrefix(clean, "$.")
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = strings.TrimLeft(clean, "#/.$")
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

var wrapperSegments = map[string]struct{}{
	"body":    {},
	"request": {},
	"payload": {},
	"data":    {},
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	// keep at least one segment so a field literally named "data" survives
	for len(out) > 1 {
		if _, ok := wrapperSegments[strings.ToLower(out[0])]; ok {
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return less(keys[i], keys[j])
	})
	return keys
}

func less(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}
