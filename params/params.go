// Package params provides an immutable, insertion-ordered container for
// HTTP query parameters.
//
// Every mutating method returns a new Params and leaves the receiver
// untouched, so a Params value can be shared freely between goroutines and
// passed through several builders that each add their own entries:
//
//	p := params.New().Set("include", "user")
//	p = nested.Apply(p)
//	req.URL.RawQuery = p.String()
package params

import (
	"net/url"
	"strings"
)

// Params is an ordered multi-map of query parameters.
// The zero value is an empty container ready to use.
type Params struct {
	keys   []string
	values map[string][]string
}

// New returns an empty Params.
func New() Params {
	return Params{}
}

// Set returns a copy of p where key holds exactly values.
// A new key is appended after the existing ones; an existing key keeps
// its position. Calling Set without values removes the key.
func (p Params) Set(key string, values ...string) Params {
	if len(values) == 0 {
		return p.Delete(key)
	}

	out := p.clone()
	if _, ok := out.values[key]; !ok {
		out.keys = append(out.keys, key)
	}
	out.values[key] = append([]string(nil), values...)
	return out
}

// Append returns a copy of p with value added to the values of key.
func (p Params) Append(key, value string) Params {
	out := p.clone()
	if _, ok := out.values[key]; !ok {
		out.keys = append(out.keys, key)
	}
	out.values[key] = append(out.values[key], value)
	return out
}

// Delete returns a copy of p without key.
func (p Params) Delete(key string) Params {
	if !p.Has(key) {
		return p
	}

	out := p.clone()
	delete(out.values, key)
	for i, k := range out.keys {
		if k == key {
			out.keys = append(out.keys[:i], out.keys[i+1:]...)
			break
		}
	}
	return out
}

// Get returns the first value of key, or "" if absent.
func (p Params) Get(key string) string {
	if vs := p.values[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// GetAll returns a copy of all values of key.
func (p Params) GetAll(key string) []string {
	vs, ok := p.values[key]
	if !ok {
		return nil
	}
	return append([]string(nil), vs...)
}

// Has reports whether key is present.
func (p Params) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (p Params) Keys() []string {
	return append([]string(nil), p.keys...)
}

// Len returns the number of distinct keys.
func (p Params) Len() int {
	return len(p.keys)
}

// Values converts p to url.Values for use with net/http.
func (p Params) Values() url.Values {
	v := make(url.Values, len(p.keys))
	for _, k := range p.keys {
		v[k] = append([]string(nil), p.values[k]...)
	}
	return v
}

// String encodes p as a query string, keeping insertion order.
// Keys and values are escaped with url.QueryEscape.
func (p Params) String() string {
	var sb strings.Builder
	for _, k := range p.keys {
		ek := url.QueryEscape(k)
		for _, v := range p.values[k] {
			if sb.Len() > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(ek)
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(v))
		}
	}
	return sb.String()
}

func (p Params) clone() Params {
	out := Params{
		keys:   make([]string, len(p.keys), len(p.keys)+1),
		values: make(map[string][]string, len(p.values)+1),
	}
	copy(out.keys, p.keys)
	for k, vs := range p.values {
		out.values[k] = append([]string(nil), vs...)
	}
	return out
}
