// Package format renders bound values as the text a form control displays,
// using an explicit culture rather than the process locale.
package format

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Invariant is the culture used where HTML mandates a fixed representation,
// such as the value of a number input.
var Invariant = language.Und

// DefaultTimeLayout formats time.Time values unless overridden.
const DefaultTimeLayout = "2006-01-02"

// Option configures a single Value call.
type Option func(*options)

type options struct {
	timeLayout string
}

// WithTimeLayout overrides the layout used for time.Time values.
func WithTimeLayout(layout string) Option {
	return func(o *options) {
		if strings.TrimSpace(layout) != "" {
			o.timeLayout = layout
		}
	}
}

// Value formats v for culture. The boolean is false when v is nil (including
// typed nil pointers, slices and maps); callers render those as empty.
func Value(v any, culture language.Tag, opts ...Option) (string, bool) {
	cfg := options{timeLayout: DefaultTimeLayout}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	v, ok := deref(v)
	if !ok {
		return "", false
	}

	switch val := v.(type) {
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case time.Time:
		if val.IsZero() {
			return "", true
		}
		return val.Format(cfg.timeLayout), true
	case fmt.Stringer:
		return val.String(), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Number(val, culture), true
	case float32, float64:
		return Number(val, culture), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(rv.Int(), culture), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Number(rv.Uint(), culture), true
	case reflect.Float32:
		return floatText(rv.Float(), 32, culture), true
	case reflect.Float64:
		return floatText(rv.Float(), 64, culture), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	}
	return fmt.Sprint(v), true
}

// String is Value without the presence flag.
func String(v any, culture language.Tag, opts ...Option) string {
	out, _ := Value(v, culture, opts...)
	return out
}

// Number formats a numeric value with the culture's decimal separator and no
// grouping separators, so the text round-trips through form submission.
// Floats use the shortest decimal that reads back as the same value at their
// own precision. NaN and infinities render as NaN, +Inf and -Inf.
func Number(v any, culture language.Tag) string {
	switch val := v.(type) {
	case float32:
		return floatText(float64(val), 32, culture)
	case float64:
		return floatText(val, 64, culture)
	}
	printer := message.NewPrinter(culture)
	return printer.Sprint(number.Decimal(v, number.NoSeparator()))
}

func floatText(f float64, bitSize int, culture language.Tag) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, bitSize)
	}
	if f == 0 {
		f = 0 // drops the sign of -0
	}
	text := strconv.FormatFloat(f, 'f', -1, bitSize)
	negative := strings.HasPrefix(text, "-")
	text = strings.TrimPrefix(text, "-")
	whole, frac, _ := strings.Cut(text, ".")

	sym := symbolsFor(culture)
	var b strings.Builder
	if negative {
		b.WriteString(sym.minus)
	}
	sym.writeDigits(&b, whole)
	if frac != "" {
		b.WriteString(sym.decimal)
		sym.writeDigits(&b, frac)
	}
	return b.String()
}

// symbols holds the pieces of a culture's number format needed to localise
// a decimal string.
type symbols struct {
	zero    rune
	decimal string
	minus   string
}

var symbolCache sync.Map

func symbolsFor(culture language.Tag) symbols {
	key := culture.String()
	if cached, ok := symbolCache.Load(key); ok {
		return cached.(symbols)
	}

	printer := message.NewPrinter(culture)
	zeroText := printer.Sprint(number.Decimal(0))
	zero, _ := utf8.DecodeRuneInString(zeroText)
	if !unicode.IsDigit(zero) {
		zero, zeroText = '0', "0"
	}
	five := string(zero + 5)
	one := string(zero + 1)

	sym := symbols{zero: zero, decimal: ".", minus: "-"}
	half := printer.Sprint(number.Decimal(0.5, number.NoSeparator()))
	if sep := strings.TrimSuffix(strings.TrimPrefix(half, zeroText), five); sep != "" && sep != half {
		sym.decimal = sep
	}
	negative := printer.Sprint(number.Decimal(-1))
	if minus := strings.TrimSuffix(negative, one); minus != "" && minus != negative {
		sym.minus = minus
	}

	symbolCache.Store(key, sym)
	return sym
}

func (s symbols) writeDigits(b *strings.Builder, digits string) {
	if s.zero == '0' {
		b.WriteString(digits)
		return
	}
	for _, r := range digits {
		b.WriteRune(s.zero + (r - '0'))
	}
}

// IsZero reports whether v is nil or the zero value of its type.
func IsZero(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return !rv.IsValid() || rv.IsZero()
}

// IsNil reports whether v is nil or a typed nil.
func IsNil(v any) bool {
	_, ok := deref(v)
	return !ok
}

func deref(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for {
		switch rv.Kind() {
		case reflect.Pointer, reflect.Interface:
			if rv.IsNil() {
				return nil, false
			}
			rv = rv.Elem()
			continue
		case reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			if rv.IsNil() {
				return nil, false
			}
		}
		return rv.Interface(), true
	}
}

// ParseCulture parses a BCP 47 tag such as "en-GB".
func ParseCulture(raw string) (language.Tag, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return language.Und, fmt.Errorf("format: culture is required")
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return language.Und, fmt.Errorf("format: parse culture %q: %w", raw, err)
	}
	return tag, nil
}

// MustCulture is ParseCulture that panics, for package level defaults.
func MustCulture(raw string) language.Tag {
	tag, err := ParseCulture(raw)
	if err != nil {
		panic(err)
	}
	return tag
}
