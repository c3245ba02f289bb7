package i18n_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"

	"github.com/goliatone/go-formbind/pkg/i18n"
)

func TestDefaultLabeler(t *testing.T) {
	tests := map[string]string{
		"firstName":    "First Name",
		"first_name":   "First Name",
		"email-addr":   "Email Addr",
		"address2":     "Address 2",
		"HTMLPage":     "HTML Page",
		"ID":           "ID",
		"":             "",
		"DateOfBirth":  "Date Of Birth",
		"  spaced out": "Spaced Out",
	}
	for input, want := range tests {
		if got := i18n.DefaultLabeler(input); got != want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestLoadCatalogFSMatchesClosestLanguage(t *testing.T) {
	fsys := fstest.MapFS{
		"en.yaml": {Data: []byte(`
en:
  Choose: "Choose..."
  labels:
    Person:
      Email: Email address
`)},
		"de.json": {Data: []byte(`{"de": {"Choose": "Bitte wählen", "labels": {"Person": {"Email": "E-Mail"}}}}`)},
		"notes.txt": {Data: []byte("ignored")},
	}

	catalog, err := i18n.LoadCatalogFS(fsys)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	if diff := cmp.Diff([]string{"de", "en"}, catalog.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}

	got, err := catalog.Translate("en-GB", "labels.Person.Email")
	if err != nil || got != "Email address" {
		t.Fatalf("expected en-GB to match en, got %q, %v", got, err)
	}
	got, err = catalog.Translate("de-AT", "Choose")
	if err != nil || got != "Bitte wählen" {
		t.Fatalf("expected de-AT to match de, got %q, %v", got, err)
	}

	if _, err := catalog.Translate("ja", "Choose"); !errors.Is(err, i18n.ErrMissingTranslation) {
		t.Fatalf("expected missing translation without fallback, got %v", err)
	}

	if err := catalog.SetFallback("en"); err != nil {
		t.Fatalf("set fallback: %v", err)
	}
	if got, err := catalog.Translate("ja", "Choose"); err != nil || got != "Choose..." {
		t.Fatalf("expected fallback locale to answer, got %q, %v", got, err)
	}
}

func TestCatalogRejectsMalformedDocuments(t *testing.T) {
	if _, err := i18n.LoadCatalog([]byte("   ")); err == nil {
		t.Fatalf("expected empty document to fail")
	}
	if _, err := i18n.LoadCatalog([]byte("en: just-a-string")); err == nil {
		t.Fatalf("expected non-map locale to fail")
	}
	if err := i18n.NewCatalog().SetFallback("fr"); err == nil {
		t.Fatalf("expected fallback to unknown locale to fail")
	}
}

func TestCatalogTranslateFormatsArguments(t *testing.T) {
	catalog := i18n.NewCatalog()
	if err := catalog.Add("en", map[string]string{"MaxLength": "At most %d characters"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	got, err := catalog.Translate("en", "MaxLength", 12)
	if err != nil || got != "At most 12 characters" {
		t.Fatalf("unexpected translation %q, %v", got, err)
	}
}

func TestResolverFallsBackToKeyAndHumanisedLabel(t *testing.T) {
	catalog := i18n.NewCatalog()
	_ = catalog.Add("en", map[string]string{
		"Choose":              "Please choose",
		"labels.Person.Email": "Email address",
	})
	resolver := i18n.NewTermResolver(catalog)

	if got := resolver.ResolveTerm("Choose", language.BritishEnglish); got != "Please choose" {
		t.Fatalf("unexpected term %q", got)
	}
	if got := resolver.ResolveTerm("Unknown", language.BritishEnglish); got != "Unknown" {
		t.Fatalf("expected key fallback, got %q", got)
	}
	if got := resolver.ResolveLabel("Person.Email", language.BritishEnglish); got != "Email address" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := resolver.ResolveLabel("Person.DateOfBirth", language.BritishEnglish); got != "Date Of Birth" {
		t.Fatalf("expected humanised label, got %q", got)
	}
	if got := resolver.ResolveLabel("Lines[2].unitPrice", language.BritishEnglish); got != "Unit Price" {
		t.Fatalf("expected last segment label, got %q", got)
	}
}

func TestResolverOnMissingHandler(t *testing.T) {
	var calls []string
	resolver := i18n.NewTermResolver(nil,
		i18n.WithOnMissing(func(locale, key, fallback string, err error) string {
			calls = append(calls, locale+":"+key)
			if !errors.Is(err, i18n.ErrMissingTranslator) {
				t.Errorf("expected ErrMissingTranslator, got %v", err)
			}
			return "[" + fallback + "]"
		}),
		i18n.WithLabelPrefix("fields."),
	)

	if got := resolver.ResolveLabel("firstName", language.German); got != "[First Name]" {
		t.Fatalf("unexpected label %q", got)
	}
	if diff := cmp.Diff([]string{"de:fields.firstName"}, calls); diff != "" {
		t.Fatalf("handler calls mismatch (-want +got):\n%s", diff)
	}
}

func TestResolverTreatsBlankTranslationsAsMissing(t *testing.T) {
	translator := i18n.TranslatorFunc(func(_, key string, _ ...any) (string, error) {
		return "  ", nil
	})
	resolver := i18n.NewTermResolver(translator)
	if got := resolver.ResolveTerm("Choose", language.English); got != "Choose" {
		t.Fatalf("expected key fallback for blank translation, got %q", got)
	}
}
