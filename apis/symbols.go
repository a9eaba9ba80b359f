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

package apis

import "reflect"

// Symbols answers "is this symbol currently known" for class names.
// A class that is not known is treated as not loaded yet, and every
// existence check that depends on it is skipped.
type Symbols interface {
	// ClassExists reports whether the class is currently loaded.
	ClassExists(class string) bool
	// MethodExists reports whether the loaded class declares method.
	MethodExists(class, method string) bool
	// HasMagicCall reports whether the loaded class accepts calls to
	// undeclared methods.
	HasMagicCall(class string) bool
	// IsInvokable reports whether instances of the loaded class can be
	// called as functions.
	IsInvokable(class string) bool
}

// Registry is a mutable, concurrency-safe Symbols implementation.
type Registry interface {
	Symbols

	// Register adds a class. Re-registering an identical class is a no-op;
	// a different definition under the same name is a conflict.
	Register(c Class) error
	// RegisterType registers the Go type t under the class name, deriving
	// its methods and invokability from the method sets of T and *T.
	RegisterType(name string, t reflect.Type) error
	// Lookup returns the class registered under name.
	Lookup(name string) (Class, bool)
	// LookupType returns the class name bound to t (or its nearest named type).
	LookupType(t reflect.Type) (name string, ok bool)
	// Entries returns a snapshot of all classes sorted by name.
	Entries() []Class
	// Count returns the number of registered classes.
	Count() int
	// Reset clears all registered classes.
	Reset()
}

// Class describes a loaded class.
type Class struct {
	// Name is the fully-qualified class name.
	Name string
	// Methods lists the declared method names.
	Methods []string
	// MagicCall marks classes that accept calls to undeclared methods.
	MagicCall bool
	// Invokable marks classes whose instances can be called directly.
	Invokable bool
	// Type is the bound Go type, if the class was registered from one.
	Type reflect.Type
}

// HasMethod reports whether c declares method.
func (c Class) HasMethod(method string) bool {
	for _, m := range c.Methods {
		if m == method {
			return true
		}
	}
	return false
}
