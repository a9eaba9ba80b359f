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

package resolver_test

import (
	"reflect"
	"testing"

	"dirpx.dev/callid/apis"
	"dirpx.dev/callid/resolver"
)

// fixed is a strategy that always answers with name, or never when name is "".
type fixed struct{ name string }

func (f fixed) TryResolve(any, apis.Config) (string, bool) { return f.name, f.name != "" }
func (f fixed) TryResolveType(reflect.Type, apis.Config) (string, bool) {
	return f.name, f.name != ""
}

func TestChain_FirstHandledWins(t *testing.T) {
	r := resolver.New(nil, fixed{}, fixed{name: "first.Class"}, fixed{name: "second.Class"})

	if got := r.Resolve(struct{}{}, apis.Config{}); got != "first.Class" {
		t.Fatalf("Resolve = %q, want first.Class", got)
	}
	if got := r.ResolveType(reflect.TypeOf(0), apis.Config{}); got != "first.Class" {
		t.Fatalf("ResolveType = %q, want first.Class", got)
	}
}

func TestChain_NoStrategyHandles(t *testing.T) {
	r := resolver.New(fixed{})
	if got := r.Resolve(struct{}{}, apis.Config{}); got != "" {
		t.Fatalf("Resolve = %q, want empty", got)
	}
	if got := resolver.New().ResolveType(reflect.TypeOf(0), apis.Config{}); got != "" {
		t.Fatalf("empty chain ResolveType = %q, want empty", got)
	}
}
