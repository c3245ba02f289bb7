package i18n

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Catalog stores translations per language and implements Translator.
// Lookups for a locale without an exact entry are matched to the closest
// loaded language ("en-GB" resolves to "en").
type Catalog struct {
	mu       sync.RWMutex
	tags     []language.Tag
	messages []map[string]string
	matcher  language.Matcher
	fallback int
}

var _ Translator = (*Catalog)(nil)

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{fallback: -1}
}

// Add registers messages for locale, merging with existing entries.
func (c *Catalog) Add(locale string, messages map[string]string) error {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return fmt.Errorf("i18n: parse locale %q: %w", locale, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(tag)
	if idx < 0 {
		c.tags = append(c.tags, tag)
		c.messages = append(c.messages, make(map[string]string, len(messages)))
		idx = len(c.tags) - 1
		c.matcher = language.NewMatcher(c.tags)
	}
	for key, value := range messages {
		if key = strings.TrimSpace(key); key != "" {
			c.messages[idx][key] = value
		}
	}
	return nil
}

// SetFallback selects the locale used when nothing matches a request.
func (c *Catalog) SetFallback(locale string) error {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return fmt.Errorf("i18n: parse fallback locale %q: %w", locale, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(tag)
	if idx < 0 {
		return fmt.Errorf("i18n: fallback locale %q not loaded", locale)
	}
	c.fallback = idx
	return nil
}

// Locales returns the loaded locales, sorted.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.tags))
	for _, tag := range c.tags {
		out = append(out, tag.String())
	}
	sort.Strings(out)
	return out
}

// Translate implements Translator. Arguments are applied with fmt.Sprintf
// when present.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	key = strings.TrimSpace(key)

	c.mu.RLock()
	defer c.mu.RUnlock()

	idx := c.match(locale)
	if idx < 0 {
		return "", fmt.Errorf("%w: %q (%s)", ErrMissingTranslation, key, locale)
	}
	msg, ok := c.messages[idx][key]
	if !ok && c.fallback >= 0 && c.fallback != idx {
		msg, ok = c.messages[c.fallback][key]
	}
	if !ok {
		return "", fmt.Errorf("%w: %q (%s)", ErrMissingTranslation, key, locale)
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...), nil
	}
	return msg, nil
}

func (c *Catalog) match(locale string) int {
	if len(c.tags) == 0 {
		return -1
	}
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil || tag == language.Und {
		return c.fallback
	}
	if idx := c.indexOf(tag); idx >= 0 {
		return idx
	}
	_, idx, confidence := c.matcher.Match(tag)
	if confidence == language.No {
		return c.fallback
	}
	return idx
}

func (c *Catalog) indexOf(tag language.Tag) int {
	for i, existing := range c.tags {
		if existing == tag {
			return i
		}
	}
	return -1
}

// LoadCatalogFS reads every *.yaml, *.yml and *.json file in fsys. Each file
// maps locale codes to (optionally nested) message trees; nested keys are
// joined with dots:
//
//	en:
//	  labels:
//	    email: Email address
//	  Choose: Choose...
func LoadCatalogFS(fsys fs.FS) (*Catalog, error) {
	catalog := NewCatalog()
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", path, err)
		}
		return catalog.load(data, path)
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// LoadCatalog parses a single YAML or JSON document.
func LoadCatalog(data []byte) (*Catalog, error) {
	catalog := NewCatalog()
	if err := catalog.load(data, "catalog"); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (c *Catalog) load(data []byte, source string) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("i18n: file %s is empty", source)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("i18n: parse %s: %w", source, err)
	}

	locales := make([]string, 0, len(doc))
	for locale := range doc {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	for _, locale := range locales {
		tree, ok := doc[locale].(map[string]any)
		if !ok {
			return fmt.Errorf("i18n: file %s: locale %q must map keys to messages", source, locale)
		}
		flat := make(map[string]string)
		flatten("", tree, flat)
		if err := c.Add(locale, flat); err != nil {
			return fmt.Errorf("i18n: file %s: %w", source, err)
		}
	}
	return nil
}

func flatten(prefix string, tree map[string]any, dest map[string]string) {
	for key, value := range tree {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flatten(path, v, dest)
		case nil:
			dest[path] = ""
		default:
			dest[path] = fmt.Sprint(v)
		}
	}
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
