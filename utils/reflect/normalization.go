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

package reflect

import (
	"errors"
	"reflect"
	"sort"

	"dirpx.dev/callid/apis"
	"dirpx.dev/callid/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping pointers)
	// is not a named type (e.g., anonymous struct, func literal type).
	ErrReflectTypeNotNamed = errors.New("reflect: type has no name")
)

// Normalize unwraps pointers according to cfg.MaxUnwrap and returns the
// nearest named type, or an error if none is found.
//
// Only pointers are unwrapped: an object's class is the type it points to,
// while containers (slices, maps, channels) are never objects.
//
// If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; i < maxUnwrap && t.Kind() == reflect.Ptr; i++ {
		if t.Name() != "" {
			// Named pointer type: stop here.
			return t, nil
		}
		t = t.Elem()
	}

	if t.Name() != "" {
		return t, nil
	}
	return nil, ErrReflectTypeNotNamed
}

// MethodNames returns the sorted union of the exported method sets of t and *t.
// Interface types report their declared methods.
func MethodNames(t reflect.Type) []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]struct{})
	collect := func(tt reflect.Type) {
		for i := 0; i < tt.NumMethod(); i++ {
			seen[tt.Method(i).Name] = struct{}{}
		}
	}
	collect(t)
	if t.Kind() != reflect.Interface && t.Kind() != reflect.Ptr {
		collect(reflect.PointerTo(t))
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// HasMethod reports whether method can be called on v as it is, i.e. the
// method belongs to the method set of v's dynamic type.
func HasMethod(v any, method string) bool {
	if v == nil || method == "" {
		return false
	}
	return reflect.ValueOf(v).MethodByName(method).IsValid()
}
