package forms

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbind/pkg/components"
	"github.com/goliatone/go-formbind/pkg/markup"
)

// Configuration is the cross-cutting pass run once per component after it
// has been populated and before validation is wired.
type Configuration interface {
	Initialize(c components.Component)
}

// ConfigurationFunc adapts a function into a Configuration.
type ConfigurationFunc func(c components.Component)

func (fn ConfigurationFunc) Initialize(c components.Component) {
	if fn != nil {
		fn(c)
	}
}

// Configurations runs each configuration in order.
type Configurations []Configuration

func (cs Configurations) Initialize(c components.Component) {
	for _, cfg := range cs {
		if cfg != nil {
			cfg.Initialize(c)
		}
	}
}

type attributeRule struct {
	name  string
	value any
}

// AttributeRules applies attributes declared in YAML or JSON:
//
//	defaults:
//	  class: form-control
//	kinds:
//	  chk:
//	    class: form-check-input
//	fields:
//	  Email:
//	    autocomplete: email
//	    required: true
//
// Kinds are keyed by control prefix or kind name. Rules apply in the order
// defaults, kinds, fields and, within a section, in declaration order.
// "class" values are appended to the existing class list; true renders a
// boolean attribute; false and null remove the attribute.
type AttributeRules struct {
	defaults []attributeRule
	kinds    map[string][]attributeRule
	fields   map[string][]attributeRule
}

var _ Configuration = (*AttributeRules)(nil)

// LoadAttributeRules parses a single rules document.
func LoadAttributeRules(data []byte) (*AttributeRules, error) {
	rules := newAttributeRules()
	if err := rules.load(data, "input"); err != nil {
		return nil, err
	}
	return rules, nil
}

// LoadAttributeRulesFS merges every .yaml, .yml and .json file in fsys, in
// lexical path order. Later files add to, and override, earlier ones.
func LoadAttributeRulesFS(fsys fs.FS) (*AttributeRules, error) {
	rules := newAttributeRules()
	if fsys == nil {
		return rules, nil
	}

	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.IsDir() && isRulesFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("forms: read %s: %w", path, err)
		}
		if err := rules.load(data, path); err != nil {
			return nil, err
		}
	}
	return rules, nil
}

func newAttributeRules() *AttributeRules {
	return &AttributeRules{
		kinds:  make(map[string][]attributeRule),
		fields: make(map[string][]attributeRule),
	}
}

// Initialize applies the matching rules to c.
func (r *AttributeRules) Initialize(c components.Component) {
	if r == nil || c == nil {
		return
	}
	attrs := c.Attributes()
	apply(attrs, r.defaults)
	apply(attrs, r.kinds[c.ControlPrefix()])
	apply(attrs, r.kinds[c.Kind().String()])
	if name := c.Name(); name != "" {
		apply(attrs, r.fields[name])
	}
}

// Empty reports whether no rules were loaded.
func (r *AttributeRules) Empty() bool {
	return r == nil || (len(r.defaults) == 0 && len(r.kinds) == 0 && len(r.fields) == 0)
}

func (r *AttributeRules) load(data []byte, source string) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("forms: rules %s are empty", source)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("forms: parse rules %s: %w", source, err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("forms: rules %s must be a mapping", source)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		section, body := root.Content[i].Value, root.Content[i+1]
		switch section {
		case "defaults":
			parsed, err := parseRules(body, source, section)
			if err != nil {
				return err
			}
			r.defaults = append(r.defaults, parsed...)
		case "kinds", "fields":
			target := r.kinds
			if section == "fields" {
				target = r.fields
			}
			if body.Kind != yaml.MappingNode {
				return fmt.Errorf("forms: rules %s: %s must be a mapping", source, section)
			}
			for j := 0; j+1 < len(body.Content); j += 2 {
				key := strings.TrimSpace(body.Content[j].Value)
				if key == "" {
					return fmt.Errorf("forms: rules %s: empty key in %s", source, section)
				}
				parsed, err := parseRules(body.Content[j+1], source, section+"."+key)
				if err != nil {
					return err
				}
				target[key] = append(target[key], parsed...)
			}
		default:
			return fmt.Errorf("forms: rules %s: unknown section %q", source, section)
		}
	}
	return nil
}

func parseRules(node *yaml.Node, source, where string) ([]attributeRule, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("forms: rules %s: %s must be a mapping of attributes", source, where)
	}

	rules := make([]attributeRule, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := strings.TrimSpace(node.Content[i].Value)
		valueNode := node.Content[i+1]
		if valueNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("forms: rules %s: %s.%s must be a scalar", source, where, name)
		}
		var value any
		if err := valueNode.Decode(&value); err != nil {
			return nil, fmt.Errorf("forms: rules %s: %s.%s: %w", source, where, name, err)
		}
		rules = append(rules, attributeRule{name: name, value: value})
	}
	return rules, nil
}

func apply(attrs *markup.Attributes, rules []attributeRule) {
	for _, rule := range rules {
		if rule.name == "class" {
			if text, ok := rule.value.(string); ok {
				attrs.AddClass(strings.Fields(text)...)
				continue
			}
		}
		attrs.Set(rule.name, rule.value)
	}
}

func isRulesFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
