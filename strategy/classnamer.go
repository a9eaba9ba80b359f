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

package strategy

import (
	"reflect"

	"dirpx.dev/callid/apis"
)

// NewClassNamerStrategy creates an apis.Strategy that uses apis.ClassNamer.
func NewClassNamerStrategy() apis.Strategy {
	return &classNamerStrategy{}
}

// classNamerStrategy is a zero-cost fast path: if v implements apis.ClassNamer,
// return its ClassName() and stop the chain.
type classNamerStrategy struct{}

// Ensure classNamerStrategy implements apis.Strategy.
var _ apis.Strategy = (*classNamerStrategy)(nil)

// TryResolve checks if v implements apis.ClassNamer and returns its ClassName().
// An empty ClassName() falls through to the next strategy.
func (*classNamerStrategy) TryResolve(v any, _ apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	if n, ok := v.(apis.ClassNamer); ok {
		if name := n.ClassName(); name != "" {
			return name, true
		}
	}
	return "", false
}

// TryResolveType always returns false: ClassNamer requires an instance.
func (*classNamerStrategy) TryResolveType(_ reflect.Type, _ apis.Config) (string, bool) {
	return "", false
}
