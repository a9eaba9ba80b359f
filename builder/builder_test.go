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

package builder_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/callid/apis"
	"dirpx.dev/callid/builder"
	"dirpx.dev/callid/config"
	"dirpx.dev/callid/registry"
)

// userType is a plain named type used to test fallback via reflection.
type userType struct{}

// hotType implements apis.ClassNamer and is used to verify that the
// ClassNamer strategy takes priority over other strategies.
type hotType struct{}

func (hotType) ClassName() string { return "hot.Name" }

// TestBuildRegistry_Basic asserts that BuildRegistry returns a working Registry.
func TestBuildRegistry_Basic(t *testing.T) {
	b := builder.New()

	reg := b.BuildRegistry(config.DefaultConfig(), nil, nil)
	if reg == nil {
		t.Fatal("BuildRegistry returned nil")
	}

	if err := reg.Register(apis.Class{Name: "billing.Invoice", Methods: []string{"Total"}}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if !reg.MethodExists("billing.Invoice", "Total") {
		t.Fatalf("MethodExists(billing.Invoice, Total) = false, want true")
	}
	if c := reg.Count(); c != 1 {
		t.Fatalf("Count = %d, want 1", c)
	}
}

// TestBuildRegistry_MigratesPrevious asserts that classes of a previous
// registry survive a rebuild.
func TestBuildRegistry_MigratesPrevious(t *testing.T) {
	b := builder.New()
	prev := b.BuildRegistry(config.DefaultConfig(), nil, nil)
	if err := prev.RegisterType("app.User", reflect.TypeOf(userType{})); err != nil {
		t.Fatalf("RegisterType failed: %v", err)
	}

	next := b.BuildRegistry(config.NewConfig(config.WithAllowUnicode(true)), prev, nil)
	if !next.ClassExists("app.User") {
		t.Fatal("class app.User was not migrated")
	}
	if got, ok := next.LookupType(reflect.TypeOf(&userType{})); !ok || got != "app.User" {
		t.Fatalf("LookupType after migration = (%q,%v), want (app.User,true)", got, ok)
	}
}

// TestBuildResolver_Order verifies resolution priority:
// ClassNamer, then registry type bindings, then reflection ("pkg.Type").
func TestBuildResolver_Order(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()

	reg := b.BuildRegistry(cfg, nil, nil)
	type fromRegistry struct{}
	ttReg := reflect.TypeOf(fromRegistry{})
	if err := reg.RegisterType("reg.Name", ttReg); err != nil {
		t.Fatalf("RegisterType(fromRegistry) failed: %v", err)
	}
	// ClassNamer still wins over a registry binding.
	if err := reg.RegisterType("reg.Hot", reflect.TypeOf(hotType{})); err != nil {
		t.Fatalf("RegisterType(hotType) failed: %v", err)
	}

	res := b.BuildResolver(cfg, reg, nil, nil)
	if res == nil {
		t.Fatal("BuildResolver returned nil")
	}

	if got := res.Resolve(hotType{}, cfg); got != "hot.Name" {
		t.Fatalf("ClassNamer priority broken: got %q want %q", got, "hot.Name")
	}
	if got := res.Resolve(&fromRegistry{}, cfg); got != "reg.Name" {
		t.Fatalf("Registry strategy broken: got %q want %q", got, "reg.Name")
	}
	if got := res.Resolve(&userType{}, cfg); got != "builder_test.userType" {
		t.Fatalf("Reflect strategy: got %q want %q", got, "builder_test.userType")
	}
}

// TestBuildResolver_WithExternalRegistry asserts that BuildResolver accepts
// any apis.Registry implementation.
func TestBuildResolver_WithExternalRegistry(t *testing.T) {
	r := registry.New(config.DefaultConfig())
	if err := r.RegisterType("u.User", reflect.TypeOf(userType{})); err != nil {
		t.Fatalf("RegisterType failed: %v", err)
	}

	res := builder.New().BuildResolver(config.DefaultConfig(), r, nil, nil)
	if got := res.ResolveType(reflect.TypeOf(userType{}), config.DefaultConfig()); got != "u.User" {
		t.Fatalf("resolver did not use registry binding: got %q want %q", got, "u.User")
	}
}

// TestBuildResolver_Concurrency_Smoke hammers the resolver in parallel.
func TestBuildResolver_Concurrency_Smoke(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()

	reg := b.BuildRegistry(cfg, nil, nil)
	_ = reg.RegisterType("app.User", reflect.TypeOf(userType{}))

	res := b.BuildResolver(cfg, reg, nil, nil)

	vals := []any{userType{}, &userType{}, hotType{}, &hotType{}}

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				if res.Resolve(vals[(i+id)%len(vals)], cfg) == "" {
					t.Error("Resolve returned empty class name")
					return
				}
			}
		}(w)
	}
	wg.Wait()
}

// Compile-time check: builder.New() must satisfy apis.Builder.
var _ apis.Builder = builder.New()
