package filter

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// LikeWildcard is appended to every value of a LIKE condition.
const LikeWildcard = "%"

// Spec is one leaf condition: a dot-separated field path, an operator and
// a raw value. A Spec is immutable once created.
type Spec struct {
	path     string
	segments []string
	operator Operator
	value    any
}

// NewSpec creates a filter specification.
// The operator is optional and defaults to OpEqual.
//
// value may be nil, a scalar (string, bool, any integer or float kind,
// fmt.Stringer, or a pointer to one of these) or a slice/array of scalars.
// Values are not validated here; blank ones are dropped when the spec is
// normalized.
//
// An empty path, an empty path segment ("a..b") or an unknown operator is
// a programming error and panics.
//
// Example:
//
//	filter.NewSpec("user.number", 30000, filter.OpGreaterOrEqual)
//	filter.NewSpec("user.id", []int{1, 2, 3})
func NewSpec(path string, value any, op ...Operator) Spec {
	operator := OpEqual
	if len(op) > 0 && op[0] != "" {
		operator = op[0]
	}
	if !operator.Valid() {
		panic(fmt.Sprintf("filter: unknown operator %q for path %q", operator, path))
	}
	if path == "" {
		panic("filter: empty spec path")
	}

	segments := strings.Split(path, ".")
	for _, s := range segments {
		if s == "" {
			panic(fmt.Sprintf("filter: empty segment in spec path %q", path))
		}
	}

	return Spec{
		path:     path,
		segments: segments,
		operator: operator,
		value:    value,
	}
}

// Path returns the dot-separated field path.
func (s Spec) Path() string { return s.path }

// Segments returns a copy of the path segments.
func (s Spec) Segments() []string { return append([]string(nil), s.segments...) }

// Field returns the last path segment.
func (s Spec) Field() string { return s.segments[len(s.segments)-1] }

// Operator returns the comparison operator.
func (s Spec) Operator() Operator { return s.operator }

// Value returns the raw value as given to NewSpec.
func (s Spec) Value() any { return s.value }

// Normalize returns the normalized form of the raw value: every scalar
// converted to a string and trimmed, blank and nil entries removed, and
// for OpLike a trailing wildcard added to every survivor.
// The raw value is left untouched.
func (s Spec) Normalize() Value {
	v := normalizeValue(s.value)
	if s.operator == OpLike {
		for i := range v.Items {
			v.Items[i] += LikeWildcard
		}
	}
	return v
}

// Value is a normalized filter value.
// A scalar has List == false and at most one item.
type Value struct {
	Items []string
	List  bool
}

// IsEmpty reports whether nothing survived normalization.
func (v Value) IsEmpty() bool {
	return len(v.Items) == 0
}

func normalizeValue(raw any) Value {
	rv := indirect(reflect.ValueOf(raw))
	if !rv.IsValid() {
		return Value{}
	}

	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && !isBytes(rv) {
		items := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if s, ok := scalarString(rv.Index(i)); ok {
				items = append(items, s)
			}
		}
		return Value{Items: items, List: true}
	}

	if s, ok := scalarString(rv); ok {
		return Value{Items: []string{s}}
	}
	return Value{}
}

// scalarString formats a scalar and trims it.
// It reports false for nil, blank and non-scalar values.
func scalarString(rv reflect.Value) (string, bool) {
	rv = indirect(rv)
	if !rv.IsValid() {
		return "", false
	}

	var s string
	if st, ok := asStringer(rv); ok {
		s = st.String()
	} else {
		switch rv.Kind() {
		case reflect.String:
			s = rv.String()
		case reflect.Bool:
			s = strconv.FormatBool(rv.Bool())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			s = strconv.FormatInt(rv.Int(), 10)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			s = strconv.FormatUint(rv.Uint(), 10)
		case reflect.Float32:
			s = strconv.FormatFloat(rv.Float(), 'f', -1, 32)
		case reflect.Float64:
			s = strconv.FormatFloat(rv.Float(), 'f', -1, 64)
		case reflect.Slice:
			if !isBytes(rv) {
				return "", false
			}
			s = string(rv.Bytes())
		default:
			return "", false
		}
	}

	s = strings.TrimSpace(s)
	return s, s != ""
}

// indirect unwraps interfaces and pointers. A nil pointer or interface
// yields the invalid reflect.Value.
func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		if _, ok := asStringer(rv); ok && rv.Kind() == reflect.Pointer {
			return rv
		}
		rv = rv.Elem()
	}
	return rv
}

func asStringer(rv reflect.Value) (fmt.Stringer, bool) {
	if !rv.CanInterface() {
		return nil, false
	}
	st, ok := rv.Interface().(fmt.Stringer)
	return st, ok
}

func isBytes(rv reflect.Value) bool {
	return rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8
}
