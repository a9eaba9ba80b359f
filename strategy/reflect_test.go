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
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/callid/apis"
)

// Local test types.
type A struct{}
type G[T any] struct{}

// cfg returns a convenient baseline Config for tests.
func cfg(opts ...func(*apis.Config)) apis.Config {
	c := apis.Config{
		InvokeMethod: "Invoke",
		MaxUnwrap:    8,
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func TestReflectStrategy_ByValue(t *testing.T) {
	s := NewReflectStrategy()

	cases := []struct {
		name     string
		val      any
		expected string
		ok       bool
	}{
		{"plain struct", A{}, "strategy.A", true},
		{"ptr", &A{}, "strategy.A", true},
		{"generic strips params", G[int]{}, "strategy.G", true},
		{"generic ptr", &G[string]{}, "strategy.G", true},
		{"builtin", 42, "", false},
		{"slice", []A{}, "", false},
		{"anonymous", struct{}{}, "", false},
		{"nil", nil, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.TryResolve(tc.val, cfg())
			if ok != tc.ok || got != tc.expected {
				t.Fatalf("TryResolve(%T) = (%q,%v), want (%q,%v)", tc.val, got, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestReflectStrategy_ByType(t *testing.T) {
	s := NewReflectStrategy()

	if got, ok := s.TryResolveType(reflect.TypeOf(&A{}), cfg()); !ok || got != "strategy.A" {
		t.Fatalf("TryResolveType(*A) = (%q,%v), want (strategy.A,true)", got, ok)
	}
	if got, ok := s.TryResolveType(nil, cfg()); ok || got != "" {
		t.Fatalf("TryResolveType(nil) = (%q,%v), want ('',false)", got, ok)
	}
}

func TestReflectStrategy_MaxUnwrap(t *testing.T) {
	s := NewReflectStrategy()
	tt := reflect.TypeOf((**A)(nil))

	t.Run("tight limit", func(t *testing.T) {
		got, ok := s.TryResolveType(tt, cfg(func(c *apis.Config) { c.MaxUnwrap = 1 }))
		if ok || got != "" {
			t.Fatalf("MaxUnwrap=1: got (%q,%v), want ('',false)", got, ok)
		}
	})

	t.Run("wide limit", func(t *testing.T) {
		got, ok := s.TryResolveType(tt, cfg(func(c *apis.Config) { c.MaxUnwrap = 8 }))
		if !ok || got != "strategy.A" {
			t.Fatalf("MaxUnwrap=8: got (%q,%v), want (strategy.A,true)", got, ok)
		}
	})
}

func TestPackageName(t *testing.T) {
	for in, want := range map[string]string{
		"dirpx.dev/callid/strategy":  "strategy",
		"github.com/acme/go-billing": "go_billing",
		"gopkg.in/yaml.v3":           "yaml_v3",
		"example.com/9p":             "_9p",
		"main":                       "main",
	} {
		if got := packageName(in); got != want {
			t.Errorf("packageName(%q) = %q, want %q", in, got, want)
		}
	}
}

// This test stresses the memoization and Normalize path under concurrency.
func TestReflectStrategy_Concurrent(t *testing.T) {
	s := NewReflectStrategy()
	vals := []any{A{}, &A{}, G[int]{}, &G[string]{}}

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				v := vals[i%len(vals)]
				if name, ok := s.TryResolve(v, cfg()); !ok || name == "" {
					t.Errorf("TryResolve(%T) failed under concurrency", v)
					return
				}
			}
		}()
	}
	wg.Wait()
}
