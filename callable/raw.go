/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package callable

import (
	"fmt"
	"reflect"
	"strconv"
)

// Raw is a callable representation before canonicalization. It is one of
// String, Pair, Closure or Object.
type Raw interface {
	isRaw()
}

// String is textual callable spec such as "pkg.Func", "Class::method()",
// "Class->method()", "Class()" or "function (int)".
type String string

// Pair names a method on a class (Target is a class name) or on an object
// (Target is a struct value or a non-nil pointer).
type Pair struct {
	Target any
	Method string
}

// Closure wraps a Go func value.
type Closure struct {
	Fn any
}

// Object wraps an object passed as a bare callback.
type Object struct {
	Value any
}

func (String) isRaw()  {}
func (Pair) isRaw()    {}
func (Closure) isRaw() {}
func (Object) isRaw()  {}

// Classify maps an arbitrary Go value onto a Raw variant. It only checks
// that v is syntactically plausible as a callable; nothing it refers to has
// to exist yet.
//
//   - string                                  -> String
//   - [2]any, []any, [2]string, []string of length 2 -> Pair
//   - func value                              -> Closure
//   - struct value, non-nil pointer or other
//     named value with methods                -> Object
//
// Raw values are returned unchanged.
func Classify(v any) (Raw, error) {
	switch x := v.(type) {
	case nil:
		return nil, invalid("nil", "nil is not callable", nil)
	case Raw:
		return x, nil
	case string:
		return String(x), nil
	case [2]string:
		return Pair{Target: x[0], Method: x[1]}, nil
	case []string:
		if len(x) != 2 {
			return nil, invalid(describeValue(v), "a pair must have exactly two elements", nil)
		}
		return Pair{Target: x[0], Method: x[1]}, nil
	case [2]any:
		return pairOf(x[0], x[1], v)
	case []any:
		if len(x) != 2 {
			return nil, invalid(describeValue(v), "a pair must have exactly two elements", nil)
		}
		return pairOf(x[0], x[1], v)
	}

	rv := reflect.ValueOf(v)
	switch {
	case rv.Kind() == reflect.Func:
		if rv.IsNil() {
			return nil, invalid(describeValue(v), "nil func is not callable", nil)
		}
		return Closure{Fn: v}, nil
	case rv.Kind() == reflect.Ptr && rv.IsNil():
		return nil, invalid(describeValue(v), "nil pointer is not callable", nil)
	case isObject(v):
		return Object{Value: v}, nil
	default:
		return nil, invalid(describeValue(v), "not a string, pair, func or object", nil)
	}
}

func pairOf(target, method, v any) (Raw, error) {
	name, ok := method.(string)
	if !ok {
		if s, isString := method.(String); isString {
			name, ok = string(s), true
		}
	}
	if !ok {
		return nil, invalid(describeValue(v), "pair method must be a string", nil)
	}
	return Pair{Target: target, Method: name}, nil
}

// Describe renders raw for diagnostics.
func Describe(raw Raw) string {
	switch r := raw.(type) {
	case String:
		return strconv.Quote(string(r))
	case Pair:
		return fmt.Sprintf("[%s, %q]", describeTarget(r.Target), r.Method)
	case Closure:
		return fmt.Sprintf("closure(%T)", r.Fn)
	case Object:
		return fmt.Sprintf("object(%T)", r.Value)
	default:
		return "nil"
	}
}

func describeTarget(target any) string {
	switch t := target.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(t)
	case String:
		return strconv.Quote(string(t))
	case Object:
		return fmt.Sprintf("object(%T)", t.Value)
	default:
		return fmt.Sprintf("object(%T)", t)
	}
}

func describeValue(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T(%v)", v, v)
}
