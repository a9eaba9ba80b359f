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

package callid

import (
	"errors"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/callid/apis"
	"dirpx.dev/callid/builder"
	"dirpx.dev/callid/callable"
	"dirpx.dev/callid/config"
)

// init publishes the default snapshot.
func init() {
	s := &state{
		cfg:    config.DefaultConfig(),
		bld:    builder.New(),
		logger: slog.New(slog.DiscardHandler),
	}
	s.reg = s.bld.BuildRegistry(s.cfg, nil, nil)
	s.res = s.bld.BuildResolver(s.cfg, s.reg, nil, nil)
	publish(s)
}

var (
	// ErrNilRegistry is the panic value when a builder returns a nil registry.
	ErrNilRegistry = errors.New("callid: builder returned nil registry")
	// ErrNilResolver is the panic value when a builder returns a nil resolver.
	ErrNilResolver = errors.New("callid: builder returned nil resolver")
)

// Canonicalize returns the canonical identity of v using the process-wide
// configuration, symbol registry and class-name resolver.
func Canonicalize(v any) (callable.Identity, error) {
	return st.Load().can.Canonicalize(v)
}

// MustCanonicalize is like Canonicalize but panics on error.
// Intended for package-level hook tables built from literals.
func MustCanonicalize(v any) callable.Identity {
	id, err := Canonicalize(v)
	if err != nil {
		panic(err)
	}
	return id
}

// Equal reports whether a and b canonicalize to the same identity.
func Equal(a, b any) (bool, error) {
	return st.Load().can.Equal(a, b)
}

// Canonicalizer returns the canonicalizer of the current snapshot.
func Canonicalizer() *callable.Canonicalizer {
	return st.Load().can
}

// RegisterClass adds a class to the global registry, making it "loaded" for
// existence checks.
func RegisterClass(c apis.Class) error {
	return st.Load().reg.Register(c)
}

// RegisterType binds the Go type t to a class name in the global registry.
// An empty name registers t under the class name the global resolver
// derives for it, e.g. "billing.Invoice" for *billing.Invoice.
func RegisterType(name string, t reflect.Type) error {
	s := st.Load()
	if name == "" && t != nil {
		name = s.res.ResolveType(t, s.cfg)
	}
	return s.reg.RegisterType(name, t)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration and rebuilds the unpinned
// registry and resolver with it.
func SetConfig(cfg apis.Config) {
	update(func(old, next *state) {
		next.cfg = cfg
		rebuild(old, next)
	})
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry replaces and pins the global registry. An unpinned resolver is
// rebuilt over it.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	update(func(old, next *state) {
		next.reg = reg
		next.preg = true
		if !old.pres {
			next.res = next.bld.BuildResolver(next.cfg, reg, old.res, next.ext)
		}
	})
}

// Resolver returns the global class-name resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver replaces and pins the global resolver.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	update(func(_, next *state) {
		next.res = res
		next.pres = true
	})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder replaces the global builder and rebuilds unpinned layers with it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	update(func(old, next *state) {
		next.bld = b
		rebuild(old, next)
	})
}

// SetExt replaces the extension payload handed to the builder and rebuilds
// unpinned layers.
func SetExt[T any](ext T) {
	update(func(old, next *state) {
		next.ext = ext
		rebuild(old, next)
	})
}

// ExtAs returns the global extension payload as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// SetLogger sets the logger used for debug output of the global canonicalizer.
// A nil logger discards output.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	update(func(_, next *state) {
		next.logger = l
	})
}

// IsRegistryPinned reports whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops the global registry from being rebuilt.
func PinRegistry() {
	update(func(_, next *state) { next.preg = true })
}

// UnpinRegistry lets the global registry be rebuilt again.
func UnpinRegistry() {
	update(func(_, next *state) { next.preg = false })
}

// IsResolverPinned reports whether the global resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver stops the global resolver from being rebuilt.
func PinResolver() {
	update(func(_, next *state) { next.pres = true })
}

// UnpinResolver lets the global resolver be rebuilt again.
func UnpinResolver() {
	update(func(_, next *state) { next.pres = false })
}

// buildMu serializes writers so a partially-built snapshot is never published.
var buildMu sync.Mutex

// st is the published snapshot.
var st atomic.Pointer[state]

// state is an immutable snapshot published atomically via st.Store; never
// mutate fields of a published state.
type state struct {
	cfg    apis.Config
	ext    any
	reg    apis.Registry
	res    apis.Resolver
	bld    apis.Builder
	logger *slog.Logger
	// preg and pres mark the registry and resolver as pinned.
	preg bool
	pres bool
	// can is derived from the fields above on publish.
	can *callable.Canonicalizer
}

// update copies the current snapshot, lets mutate adjust the copy and
// publishes it.
func update(mutate func(old, next *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	mutate(old, &next)
	publish(&next)
}

// rebuild rebuilds the unpinned registry and resolver of next.
func rebuild(old, next *state) {
	if !old.preg {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg, next.ext)
		logDropped(next.logger, old.reg, next.reg)
	}
	if !old.pres {
		next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res, next.ext)
	}
}

// logDropped warns about classes of prev that reg no longer knows, e.g.
// Unicode names after AllowUnicode was switched off.
func logDropped(logger *slog.Logger, prev, reg apis.Registry) {
	if prev == nil || reg == nil {
		return
	}
	for _, c := range prev.Entries() {
		if !reg.ClassExists(c.Name) {
			logger.Warn("class dropped on registry rebuild", slog.String("class", c.Name))
		}
	}
}

// publish derives the canonicalizer and stores s.
func publish(s *state) {
	if s.reg == nil {
		panic(ErrNilRegistry)
	}
	if s.res == nil {
		panic(ErrNilResolver)
	}
	s.can = callable.New(
		callable.WithConfig(s.cfg),
		callable.WithSymbols(s.reg),
		callable.WithResolver(s.res),
		callable.WithLogger(s.logger),
	)
	st.Store(s)
}
