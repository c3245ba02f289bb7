// Package components implements bindable form controls. Each control keeps
// its bound state in memory and serialises itself to HTML on String or
// Render; controls are owned by a single request and are not safe for
// concurrent use.
package components

import (
	"context"
	"errors"
	"io"

	"golang.org/x/text/language"

	"github.com/goliatone/go-formbind/pkg/i18n"
	"github.com/goliatone/go-formbind/pkg/markup"
	"github.com/goliatone/go-formbind/pkg/validation"
)

// ErrNilItems rejects collection controls constructed without items.
var ErrNilItems = errors.New("components: items cannot be nil")

// ErrNilProjection rejects collection controls missing a value or text
// projection.
var ErrNilProjection = errors.New("components: item projection cannot be nil")

// Kind enumerates the supported control kinds.
type Kind int

const (
	KindTextBox Kind = iota
	KindEmailBox
	KindNumberBox
	KindPasswordBox
	KindTextArea
	KindDropDown
	KindListBox
	KindCheckBox
	KindCheckBoxList
	KindRadioButtonList
	KindFileUpload
	KindHiddenField
)

var kindNames = map[Kind]string{
	KindTextBox:         "textbox",
	KindEmailBox:        "emailbox",
	KindNumberBox:       "numberbox",
	KindPasswordBox:     "passwordbox",
	KindTextArea:        "textarea",
	KindDropDown:        "dropdown",
	KindListBox:         "listbox",
	KindCheckBox:        "checkbox",
	KindCheckBoxList:    "checkboxlist",
	KindRadioButtonList: "radiobuttonlist",
	KindFileUpload:      "fileupload",
	KindHiddenField:     "hidden",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Prefix is the control prefix used when deriving ids.
func (k Kind) Prefix() string {
	switch k {
	case KindTextBox, KindEmailBox, KindNumberBox, KindPasswordBox, KindTextArea:
		return "txt"
	case KindDropDown:
		return "ddl"
	case KindListBox:
		return "lst"
	case KindCheckBox, KindCheckBoxList:
		return "chk"
	case KindRadioButtonList:
		return "rad"
	case KindFileUpload:
		return "file"
	case KindHiddenField:
		return "hdn"
	default:
		return ""
	}
}

// ParseKind resolves a kind from its String form.
func ParseKind(name string) (Kind, bool) {
	for kind, candidate := range kindNames {
		if candidate == name {
			return kind, true
		}
	}
	return 0, false
}

// Component is the behaviour shared by every control.
type Component interface {
	Kind() Kind
	ControlPrefix() string
	Name() string
	ID() string
	// Attributes exposes the live attribute set for configuration passes.
	Attributes() *markup.Attributes
	Culture() language.Tag
	Configured() bool
	String() string
	Render(ctx context.Context, w io.Writer) error
}

// VisibleComponent is a Component with a label and validation decoration.
type VisibleComponent interface {
	Component
	Label() string
	LabelVisible() bool
	State() validation.State
	Errors() []string
	AttemptedValue() (string, bool)
	AriaDescribedBy() string
	Finalize(provider validation.ErrorProvider) string
}

// Binder is the non-fluent surface a factory uses to populate a control of
// value type P.
type Binder[P any] interface {
	Component
	SetName(name string)
	SetID(id string)
	SetValue(value P)
	SetCulture(culture language.Tag)
	MarkConfigured()
}

// VisibleBinder extends Binder with label and validation wiring.
type VisibleBinder[P any] interface {
	Binder[P]
	VisibleComponent
	SetLabel(label string)
	HideLabel()
	SetTermResolver(terms i18n.TermResolver)
	SetMessageRenderer(renderer validation.MessageRenderer)
	AddPrepareHook(fn func())
	ApplyValidation(provider validation.ErrorProvider)
}

// Part names a section of a visible control's output.
type Part int

const (
	PartLabel Part = iota
	PartComponent
	PartValidationMessage
)

func (p Part) String() string {
	switch p {
	case PartLabel:
		return "label"
	case PartComponent:
		return "component"
	case PartValidationMessage:
		return "validation-message"
	default:
		return "unknown"
	}
}

// DefaultRenderingOrder is label, control, then validation message.
var DefaultRenderingOrder = []Part{PartLabel, PartComponent, PartValidationMessage}
