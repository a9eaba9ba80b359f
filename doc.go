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

// Package callid canonicalizes references to callables.
//
// A callable can be referenced in several ways: a function name
// ("strings.ToUpper"), a class and method as text ("billing.Invoice::Total()",
// "billing.Invoice->Send()"), a [class-or-object, method] pair, an invokable
// object, an invokable class name ("jobs.Action()") or a closure. callid maps
// every such reference onto one canonical text so that two references to the
// same target compare equal:
//
//	a := callid.MustCanonicalize("billing.Invoice::Total()")
//	b := callid.MustCanonicalize([]string{".billing.Invoice", "Total"})
//	a.Equal(b) // true
//
// # Canonical grammar
//
//	free function      pkg.Func
//	static method      pkg.Class::method()
//	instance method    pkg.Class->method()
//	invokable class    pkg.Class()
//	closure            function (int, ...string)
//
// The free-function form carries no trailing "()"; every other form does.
//
// # Deferred validation
//
// Canonicalization checks syntax always, and existence only when it is cheap:
// a class is checked against the symbol registry only if it is registered
// there ("loaded"). References to classes that are registered later are
// accepted as they are. Objects are checked through their Go method set:
// an object passed as a bare callback must have the configured invoke method
// (Invoke by default), and [object, method] requires method to be callable
// on the object, or the object to implement apis.MagicCaller.
//
// # Global state
//
// The package-level functions read a process-wide snapshot holding the
// configuration, the symbol registry, the class-name resolver and a
// canonicalizer built from them. Reads are lock-free; writers (SetConfig,
// SetRegistry, SetResolver, SetBuilder, SetExt, SetLogger) build a new
// snapshot under a mutex and publish it atomically.
//
// SetRegistry and SetResolver pin the layer they install: later SetConfig,
// SetBuilder or SetExt calls leave a pinned layer untouched until it is
// unpinned again.
//
// Programs that need isolated state construct their own canonicalizer with
// callable.New instead.
package callid
