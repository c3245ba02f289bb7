package preview_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formbind/internal/preview"
	"github.com/goliatone/go-formbind/pkg/forms"
	"github.com/goliatone/go-formbind/pkg/seal"
)

func TestRenderKinds(t *testing.T) {
	tests := []struct {
		name string
		req  preview.Request
		want string
	}{
		{
			name: "textbox",
			req:  preview.Request{Kind: "textbox", Name: "Greeting", Value: "hello", Culture: "en-GB"},
			want: `<input name="Greeting" id="txtGreeting" type="text" value="hello" />`,
		},
		{
			name: "labelled email with placeholder",
			req:  preview.Request{Kind: "EmailBox", Name: "Email", Label: true, Placeholder: "you@example.com"},
			want: `<label for="txtEmail">Email</label><input name="Email" id="txtEmail" placeholder="you@example.com" type="email" value="" />`,
		},
		{
			name: "number uses invariant formatting",
			req:  preview.Request{Kind: "numberbox", Name: "Price", Value: "1234.5", Culture: "de-DE"},
			want: `<input name="Price" id="txtPrice" type="number" value="1234.5" />`,
		},
		{
			name: "checkbox",
			req:  preview.Request{Kind: "checkbox", Name: "Agree", Value: "true"},
			want: `<input name="Agree" id="chkAgree" type="checkbox" value="TRUE" checked="checked" /><input name="Agree" type="hidden" value="FALSE" />`,
		},
		{
			name: "dropdown with null option",
			req:  preview.Request{Kind: "dropdown", Name: "Colour", Value: "b", Items: []string{"a=A", "b=B"}, NullOption: "Choose"},
			want: `<select name="Colour" id="ddlColour"><option value="" data-null-value="true">Choose</option><option value="a">A</option><option value="b" selected="selected">B</option></select>`,
		},
		{
			name: "listbox",
			req:  preview.Request{Kind: "listbox", Name: "Tags", Value: "x, z", Items: []string{"x,y,z"}},
			want: `<select name="Tags" id="lstTags" multiple="multiple"><option value="x" selected="selected">x</option><option value="y">y</option><option value="z" selected="selected">z</option></select>`,
		},
		{
			name: "hidden",
			req:  preview.Request{Kind: "hidden", Name: "Ref", Value: "42"},
			want: `<input name="Ref" id="hdnRef" type="hidden" value="42" />`,
		},
		{
			name: "invalid with attempted value",
			req:  preview.Request{Kind: "textbox", Name: "Age", Value: "42", Attempted: "forty", Errors: []string{"Must be a number"}},
			want: `<input name="Age" id="txtAge" aria-describedby="Age-validation" aria-invalid="true" type="text" value="forty" />` +
				`<span id="Age-validation" class="validation-message invalid" role="alert"><span class="validation-error">Must be a number</span></span>`,
		},
		{
			name: "valid marker always",
			req:  preview.Request{Kind: "textbox", Name: "Age", Value: "42", Attempted: "42", Marker: "always"},
			want: `<input name="Age" id="txtAge" type="text" value="42" /><span id="Age-validation" class="validation-message valid"></span>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := preview.Renderer{}.Render(tt.req)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRenderAppliesConfiguration(t *testing.T) {
	rules, err := forms.LoadAttributeRules([]byte("defaults:\n  class: form-control\n"))
	require.NoError(t, err)

	got, err := preview.Renderer{Config: rules}.Render(preview.Request{Kind: "textarea", Name: "Notes", Value: "a < b"})
	require.NoError(t, err)
	require.Equal(t, `<textarea name="Notes" id="txtNotes" class="form-control">a &lt; b</textarea>`, got)
}

func TestRenderRejectsBadRequests(t *testing.T) {
	_, err := preview.Renderer{}.Render(preview.Request{Kind: "slider", Name: "X"})
	require.ErrorIs(t, err, preview.ErrUnknownKind)

	_, err = preview.Renderer{}.Render(preview.Request{Kind: "textbox"})
	require.Error(t, err)

	_, err = preview.Renderer{}.Render(preview.Request{Kind: "textbox", Name: "X", Marker: "sometimes"})
	require.Error(t, err)

	_, err = preview.Renderer{}.Render(preview.Request{Kind: "numberbox", Name: "X", Value: "abc"})
	require.ErrorIs(t, err, forms.ErrValueResolution)

	_, err = preview.Renderer{}.Render(preview.Request{Kind: "hidden", Name: "X", Sealed: true})
	require.ErrorIs(t, err, forms.ErrNoSealer)
}

func TestRenderSealedHiddenField(t *testing.T) {
	sealer, err := seal.New([]byte("preview"))
	require.NoError(t, err)

	got, err := preview.Renderer{Sealer: sealer}.Render(preview.Request{Kind: "hidden", Name: "Ref", Value: "42", Sealed: true})
	require.NoError(t, err)

	start := strings.Index(got, `value="`) + len(`value="`)
	token := got[start : start+strings.Index(got[start:], `"`)]
	var value string
	require.NoError(t, sealer.Open(token, &value))
	require.Equal(t, "42", value)
}

func TestKindsListsEveryKind(t *testing.T) {
	kinds := preview.Kinds()
	require.Len(t, kinds, 12)
	require.Equal(t, "textbox", kinds[0])
	require.Equal(t, "hidden", kinds[len(kinds)-1])
}

func TestParseMarker(t *testing.T) {
	for _, raw := range []string{"", "on-error", "Always", " never "} {
		_, err := preview.ParseMarker(raw)
		require.NoError(t, err, raw)
	}
}

func TestWatchFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(file, []byte("defaults: {}\n"), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- preview.Watch(ctx, []string{file}, 10*time.Millisecond, nil, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	deadline := time.After(4 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
loop:
	for {
		select {
		case <-changed:
			break loop
		case <-tick.C:
			require.NoError(t, os.WriteFile(file, []byte("defaults:\n  class: x\n"), 0o600))
		case <-deadline:
			t.Fatal("watch did not report the change")
		}
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatchRequiresFiles(t *testing.T) {
	err := preview.Watch(context.Background(), nil, 0, nil, func() {})
	require.ErrorContains(t, err, "no files to watch")
}
