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

package config_test

import (
	"testing"

	"dirpx.dev/callid/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.InvokeMethod != config.DefaultInvokeMethod {
		t.Fatalf("InvokeMethod = %q, want %q", got.InvokeMethod, config.DefaultInvokeMethod)
	}
	if got.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("MaxUnwrap = %d, want %d", got.MaxUnwrap, config.DefaultMaxUnwrap)
	}
	if got.AllowUnicode != config.DefaultAllowUnicode {
		t.Fatalf("AllowUnicode = %v, want %v", got.AllowUnicode, config.DefaultAllowUnicode)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if got != def {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithInvokeMethod(t *testing.T) {
	c := config.NewConfig(config.WithInvokeMethod("Call"))
	if c.InvokeMethod != "Call" {
		t.Fatalf("InvokeMethod = %q, want Call", c.InvokeMethod)
	}

	c2 := config.NewConfig(config.WithInvokeMethod(""))
	if c2.InvokeMethod != config.DefaultInvokeMethod {
		t.Fatalf("InvokeMethod = %q, want default %q", c2.InvokeMethod, config.DefaultInvokeMethod)
	}
}

func TestWithAllowUnicode(t *testing.T) {
	c := config.NewConfig(config.WithAllowUnicode(true))
	if !c.AllowUnicode {
		t.Fatalf("AllowUnicode = %v, want true", c.AllowUnicode)
	}
}

func TestWithMaxUnwrap_Positive(t *testing.T) {
	c := config.NewConfig(config.WithMaxUnwrap(3))
	if c.MaxUnwrap != 3 {
		t.Fatalf("MaxUnwrap = %d, want 3", c.MaxUnwrap)
	}
}

func TestWithMaxUnwrap_Negative_ResetsToDefault(t *testing.T) {
	c := config.NewConfig(config.WithMaxUnwrap(-1))
	if c.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("MaxUnwrap = %d, want default %d", c.MaxUnwrap, config.DefaultMaxUnwrap)
	}
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithInvokeMethod("Call"),
		config.WithInvokeMethod("Run"),
		config.WithMaxUnwrap(2),
		config.WithMaxUnwrap(5),
		config.WithAllowUnicode(true),
		config.WithAllowUnicode(false),
	)

	if c.InvokeMethod != "Run" {
		t.Errorf("InvokeMethod = %q, want Run (last option wins)", c.InvokeMethod)
	}
	if c.MaxUnwrap != 5 {
		t.Errorf("MaxUnwrap = %d, want 5 (last option wins)", c.MaxUnwrap)
	}
	if c.AllowUnicode {
		t.Errorf("AllowUnicode = %v, want false (last option wins)", c.AllowUnicode)
	}
}

func TestNewConfig_MaxUnwrapZeroAllowed(t *testing.T) {
	c := config.NewConfig(config.WithMaxUnwrap(0))
	if c.MaxUnwrap != 0 {
		t.Fatalf("MaxUnwrap = %d, want 0", c.MaxUnwrap)
	}
}
