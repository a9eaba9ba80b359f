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

package registry

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"sync"

	"dirpx.dev/callid/apis"
	"dirpx.dev/callid/config"
	"dirpx.dev/callid/names"
	uref "dirpx.dev/callid/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("callid(registry): nil reflect.Type provided")
	// ErrEmptyName is returned when an empty class name is provided.
	ErrEmptyName = errors.New("callid(registry): empty name provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a class or type with a different definition.
	ErrConflictingRegistration = errors.New("callid(registry): conflicting class registration")
)

var magicCallerType = reflect.TypeOf((*apis.MagicCaller)(nil)).Elem()

// New constructs a Registry that validates class names and normalizes
// bound Go types according to cfg.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	if cfg.InvokeMethod == "" {
		cfg.InvokeMethod = config.DefaultInvokeMethod
	}
	return &registry{cfg: cfg, classNames: names.NewClassValidator(cfg)}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration used for name validation and type normalization.
	cfg        apis.Config
	classNames apis.ClassNameValidator
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// classes maps fully-qualified class name to apis.Class.
	classes sync.Map // map[string]apis.Class
	// types maps a normalized reflect.Type to its class name.
	types sync.Map // map[reflect.Type]string
	// count tracks the number of registered classes.
	count int
}

// Register adds c under its fully-qualified name.
// It is idempotent for identical definitions.
func (r *registry) Register(c apis.Class) error {
	if c.Name == "" {
		return ErrEmptyName
	}
	fq, err := r.classNames.FullyQualify(c.Name)
	if err != nil {
		return fmt.Errorf("callid(registry): register %q: %w", c.Name, err)
	}
	c.Name = fq
	c.Methods = normalizeMethods(c.Methods)

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.classes.Load(fq); ok {
		if sameClass(old.(apis.Class), c) {
			return nil
		}
		return ErrConflictingRegistration
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.classes.Load(fq); ok {
		if sameClass(old.(apis.Class), c) {
			return nil
		}
		return ErrConflictingRegistration
	}
	if c.Type != nil {
		if bound, ok := r.types.Load(c.Type); ok && bound.(string) != fq {
			return ErrConflictingRegistration
		}
		r.types.Store(c.Type, fq)
	}

	r.classes.Store(fq, c)
	r.count++
	return nil
}

// RegisterType registers the nearest named type of t as class name.
func (r *registry) RegisterType(name string, t reflect.Type) error {
	if t == nil {
		return ErrNilType
	}
	if name == "" {
		return ErrEmptyName
	}
	base, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return err
	}

	methods := uref.MethodNames(base)
	return r.Register(apis.Class{
		Name:      name,
		Methods:   methods,
		MagicCall: implementsMagicCaller(base),
		Invokable: slices.Contains(methods, r.cfg.InvokeMethod),
		Type:      base,
	})
}

// Lookup returns the class registered under name.
func (r *registry) Lookup(name string) (apis.Class, bool) {
	v, ok := r.classes.Load(name)
	if !ok {
		return apis.Class{}, false
	}
	c := v.(apis.Class)
	c.Methods = slices.Clone(c.Methods)
	return c, true
}

// LookupType returns the class name bound to the nearest named type of t.
func (r *registry) LookupType(t reflect.Type) (string, bool) {
	if t == nil {
		return "", false
	}
	nt, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return "", false
	}
	if v, ok := r.types.Load(nt); ok {
		return v.(string), true
	}
	return "", false
}

// ClassExists reports whether class is registered.
func (r *registry) ClassExists(class string) bool {
	_, ok := r.classes.Load(class)
	return ok
}

// MethodExists reports whether the registered class declares method.
func (r *registry) MethodExists(class, method string) bool {
	v, ok := r.classes.Load(class)
	return ok && v.(apis.Class).HasMethod(method)
}

// HasMagicCall reports whether the registered class accepts undeclared methods.
func (r *registry) HasMagicCall(class string) bool {
	v, ok := r.classes.Load(class)
	return ok && v.(apis.Class).MagicCall
}

// IsInvokable reports whether the registered class is invokable.
func (r *registry) IsInvokable(class string) bool {
	v, ok := r.classes.Load(class)
	return ok && v.(apis.Class).Invokable
}

// Entries returns a snapshot for diagnostics/docs, sorted by class name.
func (r *registry) Entries() []apis.Class {
	entries := make([]apis.Class, 0, r.Count())
	r.classes.Range(func(_, value any) bool {
		c := value.(apis.Class)
		c.Methods = slices.Clone(c.Methods)
		entries = append(entries, c)
		return true
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// Count returns the number of registered classes.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered classes and type bindings.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes.Clear()
	r.types.Clear()
	r.count = 0
}

// normalizeMethods returns a sorted, de-duplicated copy of methods.
func normalizeMethods(methods []string) []string {
	out := slices.Clone(methods)
	sort.Strings(out)
	return slices.Compact(out)
}

func sameClass(a, b apis.Class) bool {
	return a.Name == b.Name &&
		a.MagicCall == b.MagicCall &&
		a.Invokable == b.Invokable &&
		a.Type == b.Type &&
		slices.Equal(a.Methods, b.Methods)
}

func implementsMagicCaller(t reflect.Type) bool {
	if t.Implements(magicCallerType) {
		return true
	}
	return t.Kind() != reflect.Interface && reflect.PointerTo(t).Implements(magicCallerType)
}
