// Package validation carries per-field validation outcomes from a prior
// submission into rendering, and renders the field level message markup.
package validation

// State is the per-field validation outcome.
type State int

const (
	Unvalidated State = iota
	Valid
	Invalid
)

func (s State) String() string {
	switch s {
	case Unvalidated:
		return "unvalidated"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// MarkerMode controls when a validation message element is emitted.
type MarkerMode int

const (
	// OnError renders a message only for invalid fields.
	OnError MarkerMode = iota
	// Always renders a marker element for every state so client scripts have
	// a stable target.
	Always
	// Never suppresses the message entirely.
	Never
)

func (m MarkerMode) String() string {
	switch m {
	case OnError:
		return "on-error"
	case Always:
		return "always"
	case Never:
		return "never"
	default:
		return "unknown"
	}
}

// ErrorProvider answers validation questions for a field name.
type ErrorProvider interface {
	StateFor(name string) State
	ErrorsFor(name string) []string
	AttemptedValueFor(name string) (string, bool)
}

// MultiValueProvider is implemented by providers that keep every submitted
// value of a field. Multi-value controls prefer it to splitting the joined
// attempted value, so option values containing commas survive redisplay.
type MultiValueProvider interface {
	AttemptedValuesFor(name string) ([]string, bool)
}

// NoErrors is an ErrorProvider reporting every field as unvalidated.
type NoErrors struct{}

func (NoErrors) StateFor(string) State                  { return Unvalidated }
func (NoErrors) ErrorsFor(string) []string              { return nil }
func (NoErrors) AttemptedValueFor(string) (string, bool) { return "", false }

// MessageID derives the id shared by a field's validation message and the
// control's aria-describedby attribute.
func MessageID(name string) string {
	if name == "" {
		return ""
	}
	return name + "-validation"
}
