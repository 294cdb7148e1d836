// Package query turns raw list-endpoint parameters into typed search, filter
// and pagination values.
package query

import "net/url"

type paramKind int

const (
	kindAbsent paramKind = iota
	kindScalar
	kindList
)

// Param is a single request parameter: absent, a scalar, or a list of values.
type Param struct {
	kind   paramKind
	values []string
}

// Absent returns a parameter that was not supplied.
func Absent() Param {
	return Param{}
}

// Scalar returns a single-valued parameter.
func Scalar(v string) Param {
	return Param{kind: kindScalar, values: []string{v}}
}

// List returns a repeated parameter.
func List(vs ...string) Param {
	return Param{kind: kindList, values: append([]string(nil), vs...)}
}

// Value reduces the parameter to one string. Lists yield their first element;
// absent parameters and empty lists yield ok == false.
func (p Param) Value() (string, bool) {
	if p.kind == kindAbsent || len(p.values) == 0 {
		return "", false
	}
	return p.values[0], true
}

// Present reports whether the parameter was supplied at all.
func (p Param) Present() bool {
	_, ok := p.Value()
	return ok
}

// Params maps parameter names to values. Missing keys are absent.
type Params map[string]Param

// Get returns the named parameter.
func (p Params) Get(name string) Param {
	if p == nil {
		return Absent()
	}
	return p[name]
}

// FromValues converts URL query values.
func FromValues(values url.Values) Params {
	params := make(Params, len(values))
	for name, vs := range values {
		switch len(vs) {
		case 0:
			params[name] = Absent()
		case 1:
			params[name] = Scalar(vs[0])
		default:
			params[name] = List(vs...)
		}
	}
	return params
}
