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

package strategy_test

import (
	"reflect"
	"testing"

	"dirpx.dev/callid/apis"
	"dirpx.dev/callid/config"
	"dirpx.dev/callid/registry"
	"dirpx.dev/callid/strategy"
)

type Mailer struct{}

func (*Mailer) Send() {}

type Unbound struct{}

func TestRegistryStrategy_ByValue(t *testing.T) {
	conf := config.DefaultConfig()
	reg := registry.New(conf)

	if err := reg.RegisterType("notify.Mailer", reflect.TypeOf(Mailer{})); err != nil {
		t.Fatalf("RegisterType(Mailer): %v", err)
	}

	s := strategy.NewRegistryStrategy(reg)

	for _, v := range []any{Mailer{}, &Mailer{}} {
		if got, ok := s.TryResolve(v, conf); !ok || got != "notify.Mailer" {
			t.Fatalf("TryResolve(%T) = (%q,%v), want (notify.Mailer,true)", v, got, ok)
		}
	}
	if got, ok := s.TryResolve(&Unbound{}, conf); ok || got != "" {
		t.Fatalf("TryResolve(*Unbound) = (%q,%v), want ('',false)", got, ok)
	}
	if got, ok := s.TryResolveType(reflect.TypeOf(&Mailer{}), conf); !ok || got != "notify.Mailer" {
		t.Fatalf("TryResolveType(*Mailer) = (%q,%v), want (notify.Mailer,true)", got, ok)
	}
}

func TestRegistryStrategy_NilRegistry(t *testing.T) {
	s := strategy.NewRegistryStrategy(nil)
	if got, ok := s.TryResolve(&Mailer{}, apis.Config{}); ok || got != "" {
		t.Fatalf("TryResolve with nil registry = (%q,%v), want ('',false)", got, ok)
	}
	if got, ok := s.TryResolveType(reflect.TypeOf(Mailer{}), apis.Config{}); ok || got != "" {
		t.Fatalf("TryResolveType with nil registry = (%q,%v), want ('',false)", got, ok)
	}
}
