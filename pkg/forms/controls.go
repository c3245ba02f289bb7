package forms

import (
	"log/slog"
	"strings"

	"github.com/goliatone/go-formbind/pkg/components"
	"github.com/goliatone/go-formbind/pkg/format"
)

// TextBoxFor binds a text input.
func TextBoxFor[M any, P any](f *Factory[M], prop Property[M, P], model M) (*components.TextBox[P], error) {
	return bind(f, components.NewTextBox[P](), prop, model)
}

// EmailBoxFor binds an email input.
func EmailBoxFor[M any, P any](f *Factory[M], prop Property[M, P], model M) (*components.EmailBox[P], error) {
	return bind(f, components.NewEmailBox[P](), prop, model)
}

// NumberBoxFor binds a number input.
func NumberBoxFor[M any, P any](f *Factory[M], prop Property[M, P], model M) (*components.NumberBox[P], error) {
	return bind(f, components.NewNumberBox[P](), prop, model)
}

// PasswordBoxFor binds a password input.
func PasswordBoxFor[M any, P any](f *Factory[M], prop Property[M, P], model M) (*components.PasswordBox[P], error) {
	return bind(f, components.NewPasswordBox[P](), prop, model)
}

// TextAreaFor binds a textarea.
func TextAreaFor[M any, P any](f *Factory[M], prop Property[M, P], model M) (*components.TextArea[P], error) {
	return bind(f, components.NewTextArea[P](), prop, model)
}

// FileUploadFor binds a file input. The bound value is never rendered.
func FileUploadFor[M any, P any](f *Factory[M], prop Property[M, P], model M) (*components.FileUpload[P], error) {
	return bind(f, components.NewFileUpload[P](), prop, model)
}

// HiddenFieldFor binds a hidden input. toString controls the value text;
// nil formats with the factory culture.
func HiddenFieldFor[M any, P any](f *Factory[M], prop Property[M, P], model M, toString func(P) string) (*components.HiddenField[P], error) {
	return bind(f, components.NewHiddenField(toString), prop, model)
}

// SealedHiddenFieldFor binds a hidden input whose value is sealed with the
// factory sealer; read it back with Factory.Open.
func SealedHiddenFieldFor[M any, P any](f *Factory[M], prop Property[M, P], model M) (*components.HiddenField[P], error) {
	if f.sealer == nil {
		return nil, f.rejected(prop.Path(), components.KindHiddenField, ErrNoSealer)
	}
	sealer, logger := f.sealer, f.logger
	field, err := bind(f, components.NewHiddenField(func(v P) string {
		token, err := sealer.Seal(v)
		if err != nil {
			logger.Warn("sealing hidden field failed", slog.Any("error", err))
			return ""
		}
		return token
	}), prop, model)
	if err != nil {
		return nil, err
	}
	if field.HasValue() {
		if _, err := sealer.Seal(field.Value()); err != nil {
			return nil, f.rejected(prop.Path(), components.KindHiddenField, err)
		}
	}
	return field, nil
}

// DropDownFor binds a single-select list. value projects each item to the
// comparable value matched against the property.
func DropDownFor[M any, V comparable, D any](f *Factory[M], prop Property[M, V], model M, items []D, value func(D) V, text func(D) string) (*components.DropDown[V, D], error) {
	c, err := components.NewDropDown(items, value, text)
	if err != nil {
		return nil, f.rejected(prop.Path(), components.KindDropDown, err)
	}
	return bind(f, c, prop, model)
}

// ListBoxFor binds a multi-select list to a slice property.
func ListBoxFor[M any, V comparable, D any](f *Factory[M], prop Property[M, []V], model M, items []D, value func(D) V, text func(D) string) (*components.ListBox[V, D], error) {
	c, err := components.NewListBox(items, value, text)
	if err != nil {
		return nil, f.rejected(prop.Path(), components.KindListBox, err)
	}
	return bind(f, c, prop, model)
}

// CheckBoxFor binds a boolean checkbox with its hidden false fallback.
func CheckBoxFor[M any](f *Factory[M], prop Property[M, bool], model M) (*components.CheckBox, error) {
	return bind(f, components.NewCheckBox(), prop, model)
}

// CheckBoxForValue binds one checkbox of a slice property; it is checked when
// the slice contains option. The option text is appended to the id so
// sibling checkboxes for the same property stay unique.
func CheckBoxForValue[M any, V comparable](f *Factory[M], prop Property[M, []V], model M, option V) (*components.CollectionCheckBox[V], error) {
	c, err := bind(f, components.NewCollectionCheckBox(option), prop, model)
	if err != nil {
		return nil, err
	}
	if id := c.ID(); id != "" {
		if suffix := strings.TrimRight(idReplacer.Replace(format.String(option, f.culture)), "_"); suffix != "" {
			c.SetID(id + "_" + suffix)
		}
	}
	return c, nil
}

// CheckBoxListFor binds a checkbox per item. selected decides whether an
// item is checked for the bound value; nil compares value text.
func CheckBoxListFor[M any, P any, D any](f *Factory[M], prop Property[M, P], model M, items []D, value, text func(D) string, selected func(P, D) bool) (*components.CheckBoxList[P, D], error) {
	c, err := components.NewCheckBoxList[P](items, value, text)
	if err != nil {
		return nil, f.rejected(prop.Path(), components.KindCheckBoxList, err)
	}
	if selected != nil {
		c.WithSelection(selected)
	}
	return bind(f, c, prop, model)
}

// RadioButtonListFor binds a radio button per item. selected behaves as for
// CheckBoxListFor.
func RadioButtonListFor[M any, P any, D any](f *Factory[M], prop Property[M, P], model M, items []D, value, text func(D) string, selected func(P, D) bool) (*components.RadioButtonList[P, D], error) {
	c, err := components.NewRadioButtonList[P](items, value, text)
	if err != nil {
		return nil, f.rejected(prop.Path(), components.KindRadioButtonList, err)
	}
	if selected != nil {
		c.WithSelection(selected)
	}
	return bind(f, c, prop, model)
}
