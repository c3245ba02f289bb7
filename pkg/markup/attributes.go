package markup

import (
	"fmt"
	"strings"
)

// Flag marks a boolean attribute such as checked or disabled. Flags render
// using the name="name" convention so every call site agrees on one form.
type Flag struct{}

// Attr is a single name/value pair used when seeding attribute sets.
type Attr struct {
	Name  string
	Value any
}

type attribute struct {
	name  string
	value string
	flag  bool
}

// Attributes is an insertion-ordered attribute set. Keys are case sensitive;
// setting an existing key replaces its value but keeps its original position.
type Attributes struct {
	order []string
	index map[string]int
	items []attribute
}

// NewAttributes builds an attribute set from the supplied pairs in order.
func NewAttributes(attrs ...Attr) *Attributes {
	out := &Attributes{}
	for _, attr := range attrs {
		out.Set(attr.Name, attr.Value)
	}
	return out
}

// Set stores value under name. Strings are stored verbatim, Flag stores a
// boolean attribute, nil removes the attribute. Other values are rendered with
// fmt.Sprint.
func (a *Attributes) Set(name string, value any) *Attributes {
	name = strings.TrimSpace(name)
	if name == "" {
		return a
	}

	var entry attribute
	switch v := value.(type) {
	case nil:
		a.Remove(name)
		return a
	case *string:
		if v == nil {
			a.Remove(name)
			return a
		}
		entry = attribute{name: name, value: *v}
	case string:
		entry = attribute{name: name, value: v}
	case Flag, *Flag:
		entry = attribute{name: name, value: name, flag: true}
	case bool:
		if !v {
			a.Remove(name)
			return a
		}
		entry = attribute{name: name, value: name, flag: true}
	default:
		entry = attribute{name: name, value: fmt.Sprint(v)}
	}

	if a.index == nil {
		a.index = make(map[string]int)
	}
	if pos, ok := a.index[name]; ok {
		a.items[pos] = entry
		return a
	}
	a.index[name] = len(a.items)
	a.items = append(a.items, entry)
	a.order = append(a.order, name)
	return a
}

// Remove deletes the attribute if present.
func (a *Attributes) Remove(name string) *Attributes {
	pos, ok := a.index[name]
	if !ok {
		return a
	}
	a.items = append(a.items[:pos], a.items[pos+1:]...)
	a.order = append(a.order[:pos], a.order[pos+1:]...)
	delete(a.index, name)
	for i := pos; i < len(a.order); i++ {
		a.index[a.order[i]] = i
	}
	return a
}

// Get returns the stored value. Flags report their own name as value.
func (a *Attributes) Get(name string) (string, bool) {
	if a == nil {
		return "", false
	}
	pos, ok := a.index[name]
	if !ok {
		return "", false
	}
	return a.items[pos].value, true
}

// Has reports whether name is present.
func (a *Attributes) Has(name string) bool {
	if a == nil {
		return false
	}
	_, ok := a.index[name]
	return ok
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.items)
}

// Names returns attribute names in insertion order.
func (a *Attributes) Names() []string {
	if a == nil {
		return nil
	}
	return append([]string(nil), a.order...)
}

// Merge copies every attribute of other into a, in other's order.
func (a *Attributes) Merge(other *Attributes) *Attributes {
	if other == nil {
		return a
	}
	for _, item := range other.items {
		if item.flag {
			a.Set(item.name, Flag{})
			continue
		}
		a.Set(item.name, item.value)
	}
	return a
}

// Clone returns an independent copy.
func (a *Attributes) Clone() *Attributes {
	out := &Attributes{}
	if a == nil {
		return out
	}
	return out.Merge(a)
}

// AddClass appends class tokens to the class attribute, skipping duplicates.
func (a *Attributes) AddClass(classes ...string) *Attributes {
	existing, _ := a.Get("class")
	tokens := strings.Fields(existing)
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		seen[token] = struct{}{}
	}
	for _, class := range classes {
		for _, token := range strings.Fields(class) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			tokens = append(tokens, token)
		}
	}
	if len(tokens) == 0 {
		return a
	}
	return a.Set("class", strings.Join(tokens, " "))
}

func (a *Attributes) writeTo(b *strings.Builder) {
	if a == nil {
		return
	}
	for _, item := range a.items {
		b.WriteByte(' ')
		b.WriteString(item.name)
		b.WriteString(`="`)
		b.WriteString(EscapeAttribute(item.value))
		b.WriteByte('"')
	}
}

// String renders the attribute list with a leading space per attribute.
func (a *Attributes) String() string {
	var b strings.Builder
	a.writeTo(&b)
	return b.String()
}
