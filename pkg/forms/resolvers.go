package forms

import "strings"

// NameResolver maps a property path to the submitted field name.
type NameResolver interface {
	ResolveName(path string) string
}

// NameResolverFunc adapts a function into a NameResolver.
type NameResolverFunc func(path string) string

func (fn NameResolverFunc) ResolveName(path string) string { return fn(path) }

// IDResolver maps a property path and control prefix to a DOM id.
type IDResolver interface {
	ResolveID(path, prefix string) string
}

// IDResolverFunc adapts a function into an IDResolver.
type IDResolverFunc func(path, prefix string) string

func (fn IDResolverFunc) ResolveID(path, prefix string) string { return fn(path, prefix) }

// PathNames uses the property path as the field name, so "Address.City"
// binds back to the same path on submission.
var PathNames NameResolver = NameResolverFunc(func(path string) string { return path })

var idReplacer = strings.NewReplacer(".", "_", "[", "_", "]", "_")

// PrefixedIDs joins the control prefix with the path, replacing characters
// that need escaping in CSS selectors: "Items[0].Name" with prefix "txt"
// becomes "txtItems_0__Name".
var PrefixedIDs IDResolver = IDResolverFunc(func(path, prefix string) string {
	id := strings.TrimRight(idReplacer.Replace(path), "_")
	if id == "" {
		return ""
	}
	return prefix + id
})
