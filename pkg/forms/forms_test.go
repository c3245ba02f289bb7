package forms_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formbind/pkg/components"
	"github.com/goliatone/go-formbind/pkg/format"
	"github.com/goliatone/go-formbind/pkg/forms"
	"github.com/goliatone/go-formbind/pkg/seal"
	"github.com/goliatone/go-formbind/pkg/validation"
)

type address struct {
	City string
}

type signup struct {
	Greeting     string
	EmailAddress string
	Age          int
	Agree        bool
	Colour       string
	Tags         []string
	Address      *address
	AccountRef   int64
}

var (
	greetingProp = forms.Prop("Greeting", func(m *signup) string { return m.Greeting })
	emailProp    = forms.Prop("EmailAddress", func(m *signup) string { return m.EmailAddress })
	ageProp      = forms.Prop("Age", func(m *signup) int { return m.Age })
	tagsProp     = forms.Prop("Tags", func(m *signup) []string { return m.Tags })
)

func TestTextBoxForRendersBoundInput(t *testing.T) {
	factory := forms.New[*signup](forms.WithCulture(format.MustCulture("en-GB")))

	box, err := forms.TextBoxFor(factory, greetingProp, &signup{Greeting: "hello"})
	require.NoError(t, err)
	require.Equal(t, `<input name="Greeting" id="txtGreeting" type="text" value="hello" />`, box.String())
	require.True(t, box.Configured())
	require.Equal(t, "Greeting", box.Label())
	require.False(t, box.LabelVisible())
}

func TestFactoryResolvesLabelsThroughTerms(t *testing.T) {
	factory := forms.New[*signup]()

	box, err := forms.EmailBoxFor(factory, emailProp, &signup{})
	require.NoError(t, err)
	require.Equal(t, "Email Address", box.Label())

	box.WithLabel(box.Label())
	require.Equal(t,
		`<label for="txtEmailAddress">Email Address</label><input name="EmailAddress" id="txtEmailAddress" type="email" value="" />`,
		box.String(),
	)
}

func TestNilModelLeavesValueUnset(t *testing.T) {
	factory := forms.New[*signup]()

	box, err := forms.NumberBoxFor(factory, ageProp, nil)
	require.NoError(t, err)
	require.False(t, box.HasValue())
	require.Equal(t, `<input name="Age" id="txtAge" type="number" value="" />`, box.String())
}

func TestBindingFailuresAreReported(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	factory := forms.New[*signup](forms.WithLogger(logger))

	city := forms.Prop("Address.City", func(m *signup) string { return m.Address.City })
	_, err := forms.TextBoxFor(factory, city, &signup{})
	require.Error(t, err)
	require.True(t, forms.IsBindError(err))
	require.ErrorIs(t, err, forms.ErrValueResolution)

	var bindErr *forms.BindError
	require.ErrorAs(t, err, &bindErr)
	require.Equal(t, "Address.City", bindErr.Path)
	require.Contains(t, logs.String(), "form binding failed")

	reflective := forms.Field[*signup, string]("Address.City")
	_, err = forms.TextBoxFor(factory, reflective, &signup{})
	require.ErrorIs(t, err, forms.ErrNilIntermediate)
	require.ErrorIs(t, err, forms.ErrValueResolution)

	box, err := forms.TextBoxFor(factory, reflective, &signup{Address: &address{City: "Leeds"}})
	require.NoError(t, err)
	require.Equal(t, "Leeds", box.Value())
	require.Equal(t, "txtAddress_City", box.ID())
	require.Contains(t, logs.String(), "form component bound")

	failing := forms.PropE("Age", func(m *signup) (int, error) { return 0, errors.New("boom") })
	_, err = forms.TextBoxFor(factory, failing, &signup{})
	require.ErrorIs(t, err, forms.ErrValueResolution)
	require.ErrorContains(t, err, "boom")
}

func TestFieldConvertsAndRejectsUnknownFields(t *testing.T) {
	ref, _, err := forms.Field[signup, int64]("AccountRef").Resolve(signup{AccountRef: 9})
	require.NoError(t, err)
	require.Equal(t, int64(9), ref)

	_, _, err = forms.Field[signup, string]("Missing").Resolve(signup{})
	require.ErrorContains(t, err, "unknown field")
}

func TestValidationIsLookedUpAtRender(t *testing.T) {
	factory := forms.New[*signup]()
	box, err := forms.TextBoxFor(factory, ageProp, &signup{Age: 42})
	require.NoError(t, err)
	require.Equal(t, validation.Unvalidated, box.State())

	factory.SetErrorProvider(validation.NewResult(
		validation.WithFieldError("Age", "Must be a number"),
		validation.WithAttemptedValues(map[string]string{"Age": "forty"}),
	))

	want := `<input name="Age" id="txtAge" aria-describedby="Age-validation" aria-invalid="true" type="text" value="forty" />` +
		`<span id="Age-validation" class="validation-message invalid" role="alert"><span class="validation-error">Must be a number</span></span>`
	require.Equal(t, want, box.String())
	require.Equal(t, validation.Invalid, box.State())
	require.Equal(t, []string{"Must be a number"}, box.Errors())
}

func TestAttemptedValueIgnoredWhileUnvalidated(t *testing.T) {
	factory := forms.New[*signup](forms.WithErrorProvider(validation.NewResult(
		validation.WithAttemptedValues(map[string]string{"Age": "forty"}),
	)))

	box, err := forms.TextBoxFor(factory, ageProp, &signup{Age: 42})
	require.NoError(t, err)
	require.Equal(t, `<input name="Age" id="txtAge" type="text" value="42" />`, box.String())
}

func TestValidationMessageFor(t *testing.T) {
	factory := forms.New[*signup]()
	require.Equal(t, `<span id="EmailAddress-validation" class="validation-message"></span>`,
		forms.ValidationMessageForProp(factory, emailProp))

	factory.SetErrorProvider(validation.NewResult(validation.WithFieldError("EmailAddress", "Required")))
	require.Equal(t,
		`<span id="EmailAddress-validation" class="validation-message invalid" role="alert"><span class="validation-error">Required</span></span>`,
		factory.ValidationMessageFor("EmailAddress"),
	)

	factory.SetErrorProvider(nil)
	require.Equal(t, validation.Unvalidated, factory.ErrorProvider().StateFor("EmailAddress"))
}

func TestConfigurationRunsOncePerComponent(t *testing.T) {
	var seen []string
	cfg := forms.Configurations{
		forms.ConfigurationFunc(func(c components.Component) {
			seen = append(seen, c.Kind().String()+":"+c.ID())
			require.False(t, c.Configured())
		}),
		forms.ConfigurationFunc(func(c components.Component) {
			c.Attributes().Set("data-field", c.Name())
		}),
	}
	factory := forms.New[*signup](forms.WithConfiguration(cfg))

	box, err := forms.CheckBoxFor(factory, forms.Prop("Agree", func(m *signup) bool { return m.Agree }), &signup{Agree: true})
	require.NoError(t, err)
	require.Equal(t, []string{"checkbox:chkAgree"}, seen)
	require.Equal(t,
		`<input name="Agree" id="chkAgree" data-field="Agree" type="checkbox" value="TRUE" checked="checked" /><input name="Agree" type="hidden" value="FALSE" />`,
		box.String(),
	)
}

const rulesYAML = `
defaults:
  class: form-control
kinds:
  txt:
    autocomplete: "off"
  checkbox:
    class: form-check-input
fields:
  EmailAddress:
    autocomplete: email
    required: true
  Greeting:
    class: wide
    spellcheck: false
`

func TestAttributeRulesApplyInDeclarationOrder(t *testing.T) {
	rules, err := forms.LoadAttributeRules([]byte(rulesYAML))
	require.NoError(t, err)
	require.False(t, rules.Empty())

	factory := forms.New[*signup](forms.WithConfiguration(rules))

	email, err := forms.EmailBoxFor(factory, emailProp, &signup{})
	require.NoError(t, err)
	require.Equal(t,
		`<input name="EmailAddress" id="txtEmailAddress" class="form-control" autocomplete="email" required="required" type="email" value="" />`,
		email.String(),
	)

	greeting, err := forms.TextBoxFor(factory, greetingProp, &signup{})
	require.NoError(t, err)
	require.Equal(t, "form-control wide", mustAttr(t, greeting, "class"))
	require.False(t, greeting.Attributes().Has("spellcheck"))

	agree, err := forms.CheckBoxFor(factory, forms.Prop("Agree", func(m *signup) bool { return m.Agree }), &signup{})
	require.NoError(t, err)
	require.Equal(t, "form-control form-check-input", mustAttr(t, agree, "class"))
}

func TestAttributeRulesRejectMalformedDocuments(t *testing.T) {
	for name, doc := range map[string]string{
		"empty":           "  ",
		"list root":       "- a",
		"unknown section": "widgets: {}",
		"nested value":    "defaults:\n  class: [a, b]",
		"kinds not map":   "kinds: txt",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := forms.LoadAttributeRules([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestAttributeRulesFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"rules/00-base.yaml":  {Data: []byte("defaults:\n  class: form-control\n")},
		"rules/10-extra.json": {Data: []byte(`{"fields": {"Greeting": {"maxlength": 40}}}`)},
		"rules/README.md":     {Data: []byte("ignored")},
	}
	rules, err := forms.LoadAttributeRulesFS(fsys)
	require.NoError(t, err)

	factory := forms.New[*signup](forms.WithConfiguration(rules))
	box, err := forms.TextBoxFor(factory, greetingProp, &signup{Greeting: "hi"})
	require.NoError(t, err)
	require.Equal(t, `<input name="Greeting" id="txtGreeting" class="form-control" maxlength="40" type="text" value="hi" />`, box.String())

	empty, err := forms.LoadAttributeRulesFS(nil)
	require.NoError(t, err)
	require.True(t, empty.Empty())
}

func TestCollectionFactories(t *testing.T) {
	factory := forms.New[*signup]()
	items := components.Items([]string{"red", "blue"}, []string{"Red", "Blue"})
	model := &signup{Colour: "blue", Tags: []string{"red"}}

	colour := forms.Prop("Colour", func(m *signup) string { return m.Colour })
	dd, err := forms.DropDownFor(factory, colour, model, items, components.ItemValue[string], components.ItemText[string])
	require.NoError(t, err)
	require.Equal(t,
		`<select name="Colour" id="ddlColour"><option value="red">Red</option><option value="blue" selected="selected">Blue</option></select>`,
		dd.String(),
	)

	lb, err := forms.ListBoxFor(factory, tagsProp, model, items, components.ItemValue[string], components.ItemText[string])
	require.NoError(t, err)
	require.Equal(t, "lstTags", lb.ID())
	require.Contains(t, lb.String(), `<option value="red" selected="selected">Red</option>`)

	list, err := forms.CheckBoxListFor(factory, tagsProp, model, items, components.ItemValue[string], components.ItemText[string], nil)
	require.NoError(t, err)
	require.Equal(t, "chkTags", list.ID())
	require.Contains(t, list.String(), `<input name="Tags" id="chkTags_0" type="checkbox" value="red" checked="checked" />`)

	radios, err := forms.RadioButtonListFor(factory, colour, model, items, components.ItemValue[string], components.ItemText[string],
		func(bound string, item components.Item[string]) bool { return item.Value == bound })
	require.NoError(t, err)
	require.Contains(t, radios.String(), `<input name="Colour" id="radColour_1" type="radio" value="blue" checked="checked" />`)

	red, err := forms.CheckBoxForValue(factory, tagsProp, model, "red")
	require.NoError(t, err)
	require.Equal(t, "chkTags_red", red.ID())
	require.True(t, red.Checked())

	_, err = forms.DropDownFor(factory, colour, model, nil, components.ItemValue[string], components.ItemText[string])
	require.ErrorIs(t, err, components.ErrNilItems)
}

func TestSubmittedValuesWithCommasAreReselected(t *testing.T) {
	items := components.Items([]string{"1,5", "2"}, []string{"One and a half", "Two"})
	submitted := url.Values{"Tags": {"1,5"}, "Greeting": {""}}
	factory := forms.New[*signup](forms.WithErrorProvider(
		validation.FromSubmission(submitted, map[string][]string{"Greeting": {"required"}}),
	))
	model := &signup{Tags: []string{"2"}}

	lb, err := forms.ListBoxFor(factory, tagsProp, model, items, components.ItemValue[string], components.ItemText[string])
	require.NoError(t, err)
	out := lb.String()
	require.Contains(t, out, `<option value="1,5" selected="selected">One and a half</option>`)
	require.Contains(t, out, `<option value="2">Two</option>`)

	list, err := forms.CheckBoxListFor(factory, tagsProp, model, items, components.ItemValue[string], components.ItemText[string], nil)
	require.NoError(t, err)
	out = list.String()
	require.Contains(t, out, `value="1,5" checked="checked"`)
	require.NotContains(t, out, `value="2" checked="checked"`)
}

func TestHiddenAndFileFactories(t *testing.T) {
	factory := forms.New[*signup]()
	model := &signup{AccountRef: 12, Greeting: "x"}
	ref := forms.Prop("AccountRef", func(m *signup) int64 { return m.AccountRef })

	hidden, err := forms.HiddenFieldFor(factory, ref, model, nil)
	require.NoError(t, err)
	require.Equal(t, `<input name="AccountRef" id="hdnAccountRef" type="hidden" value="12" />`, hidden.String())

	upload, err := forms.FileUploadFor(factory, greetingProp, model)
	require.NoError(t, err)
	require.Equal(t, `<input name="Greeting" id="fileGreeting" type="file" />`, upload.String())

	area, err := forms.TextAreaFor(factory, greetingProp, model)
	require.NoError(t, err)
	require.Equal(t, `<textarea name="Greeting" id="txtGreeting">x</textarea>`, area.String())

	password, err := forms.PasswordBoxFor(factory, greetingProp, model)
	require.NoError(t, err)
	require.Equal(t, `<input name="Greeting" id="txtGreeting" type="password" value="x" />`, password.String())
}

func TestSealedHiddenFieldRoundTrip(t *testing.T) {
	ref := forms.Prop("AccountRef", func(m *signup) int64 { return m.AccountRef })

	_, err := forms.SealedHiddenFieldFor(forms.New[*signup](), ref, &signup{})
	require.ErrorIs(t, err, forms.ErrNoSealer)

	sealer, err := seal.New([]byte("form-secret"))
	require.NoError(t, err)
	factory := forms.New[*signup](forms.WithSealer(sealer))

	hidden, err := forms.SealedHiddenFieldFor(factory, ref, &signup{AccountRef: 77})
	require.NoError(t, err)
	token := hidden.Text()
	require.NotEmpty(t, token)
	require.Contains(t, hidden.String(), `value="`+token+`"`)

	var got int64
	require.NoError(t, factory.Open(token, &got))
	require.Equal(t, int64(77), got)

	other, err := seal.New([]byte("other-secret"))
	require.NoError(t, err)
	foreign, err := other.Seal(int64(78))
	require.NoError(t, err)
	require.ErrorIs(t, factory.Open(foreign, &got), seal.ErrSignatureMismatch)
}

func TestIDResolution(t *testing.T) {
	require.Equal(t, "txtItems_0__Name", forms.PrefixedIDs.ResolveID("Items[0].Name", "txt"))
	require.Equal(t, "ddlTags", forms.PrefixedIDs.ResolveID("Tags[]", "ddl"))
	require.Equal(t, "", forms.PrefixedIDs.ResolveID("", "txt"))
	require.Equal(t, "Address.City", forms.PathNames.ResolveName("Address.City"))

	factory := forms.New[*signup](
		forms.WithNameResolver(forms.NameResolverFunc(strings.ToLower)),
		forms.WithIDResolver(forms.IDResolverFunc(func(path, prefix string) string { return prefix + "-" + path })),
	)
	box, err := forms.TextBoxFor(factory, greetingProp, &signup{})
	require.NoError(t, err)
	require.Equal(t, "greeting", box.Name())
	require.Equal(t, "txt-Greeting", box.ID())
}

func TestMustPanicsOnError(t *testing.T) {
	factory := forms.New[*signup]()
	require.NotPanics(t, func() { forms.Must(forms.TextBoxFor(factory, greetingProp, &signup{})) })
	require.Panics(t, func() {
		forms.Must(forms.TextBoxFor(factory, forms.Prop("Address.City", func(m *signup) string { return m.Address.City }), &signup{}))
	})
}

func mustAttr(t *testing.T, c components.Component, name string) string {
	t.Helper()
	value, ok := c.Attributes().Get(name)
	require.True(t, ok, "attribute %s missing", name)
	return value
}
