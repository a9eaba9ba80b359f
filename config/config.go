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

package config

import (
	"dirpx.dev/callid/apis"
)

const (
	// DefaultInvokeMethod represents the default for InvokeMethod.
	// Objects whose method set contains it may be used as bare callbacks.
	DefaultInvokeMethod = "Invoke"
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultAllowUnicode represents the default for AllowUnicode.
	DefaultAllowUnicode = false
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.InvokeMethod == "" {
		cfg.InvokeMethod = DefaultInvokeMethod
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		InvokeMethod: DefaultInvokeMethod,
		MaxUnwrap:    DefaultMaxUnwrap,
		AllowUnicode: DefaultAllowUnicode,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithInvokeMethod sets the InvokeMethod option.
// An empty name resets to the default.
func WithInvokeMethod(name string) Option {
	return func(c *apis.Config) {
		if name == "" {
			c.InvokeMethod = DefaultInvokeMethod
			return
		}
		c.InvokeMethod = name
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithAllowUnicode sets the AllowUnicode option.
func WithAllowUnicode(allow bool) Option {
	return func(c *apis.Config) {
		c.AllowUnicode = allow
	}
}
