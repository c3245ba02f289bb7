package forms

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// ErrValueResolution marks failures evaluating a property accessor against a
// model.
var ErrValueResolution = errors.New("forms: value resolution failed")

// ErrNilIntermediate reports a nil pointer, map or interface found part way
// along a reflective property path.
var ErrNilIntermediate = errors.New("forms: nil intermediate value")

// BindError carries the failing property path and the underlying cause.
type BindError struct {
	Path string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("forms: bind %q: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrValueResolution and the cause to errors.Is/As.
func (e *BindError) Unwrap() []error {
	return []error{ErrValueResolution, e.Err}
}

// IsBindError reports whether err is, or wraps, a *BindError.
func IsBindError(err error) bool {
	var target *BindError
	return errors.As(err, &target)
}

// Property pairs a textual path with an accessor reading the value of type P
// from a model of type M. The path drives name, id and label resolution.
type Property[M any, P any] struct {
	path string
	get  func(M) (P, error)
}

// Prop builds a Property from a plain accessor.
func Prop[M any, P any](path string, get func(M) P) Property[M, P] {
	var fn func(M) (P, error)
	if get != nil {
		fn = func(m M) (P, error) { return get(m), nil }
	}
	return Property[M, P]{path: path, get: fn}
}

// PropE builds a Property from an accessor that can fail.
func PropE[M any, P any](path string, get func(M) (P, error)) Property[M, P] {
	return Property[M, P]{path: path, get: get}
}

// Field resolves a dotted path of exported struct fields by reflection, e.g.
// "Address.City". Pointers along the way are followed; a nil one yields
// ErrNilIntermediate.
func Field[M any, P any](path string) Property[M, P] {
	segments := strings.Split(path, ".")
	return Property[M, P]{
		path: path,
		get: func(m M) (P, error) {
			var zero P
			current := reflect.ValueOf(&m).Elem()
			for i, segment := range segments {
				current = indirect(current)
				if !current.IsValid() {
					return zero, fmt.Errorf("%w at %q", ErrNilIntermediate, strings.Join(segments[:i], "."))
				}
				if current.Kind() != reflect.Struct {
					return zero, fmt.Errorf("forms: %q is not a struct", strings.Join(segments[:i], "."))
				}
				current = current.FieldByName(segment)
				if !current.IsValid() {
					return zero, fmt.Errorf("forms: unknown field %q", segment)
				}
				if !current.CanInterface() {
					return zero, fmt.Errorf("forms: field %q is not exported", segment)
				}
			}
			if current.Kind() == reflect.Interface && current.IsNil() {
				return zero, nil
			}
			if value, ok := current.Interface().(P); ok {
				return value, nil
			}
			if current.Type().ConvertibleTo(reflect.TypeOf((*P)(nil)).Elem()) {
				return current.Convert(reflect.TypeOf((*P)(nil)).Elem()).Interface().(P), nil
			}
			return zero, fmt.Errorf("forms: field %q is %s", path, current.Type())
		},
	}
}

// Path returns the property path.
func (p Property[M, P]) Path() string { return p.path }

// Resolve evaluates the accessor. Failures, including nil dereference panics
// inside the accessor, are reported as *BindError. The second result is false
// when the model is nil and evaluation was skipped.
func (p Property[M, P]) Resolve(model M) (value P, ok bool, err error) {
	if p.get == nil {
		return value, false, &BindError{Path: p.path, Err: errors.New("accessor is nil")}
	}
	if isNilModel(model) {
		return value, false, nil
	}

	defer func() {
		if r := recover(); r != nil {
			rtErr, isRuntime := r.(runtime.Error)
			if !isRuntime || !strings.Contains(rtErr.Error(), "nil pointer") {
				panic(r)
			}
			var zero P
			value, ok, err = zero, false, &BindError{Path: p.path, Err: rtErr}
		}
	}()

	value, err = p.get(model)
	if err != nil {
		return value, false, &BindError{Path: p.path, Err: err}
	}
	return value, true, nil
}

func isNilModel(model any) bool {
	if model == nil {
		return true
	}
	rv := reflect.ValueOf(model)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Interface, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
