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

package callable

import (
	"log/slog"
	"reflect"

	"dirpx.dev/callid/apis"
	"dirpx.dev/callid/closure"
	"dirpx.dev/callid/config"
	"dirpx.dev/callid/names"
	"dirpx.dev/callid/resolver"
	"dirpx.dev/callid/strategy"
	uref "dirpx.dev/callid/utils/reflect"
)

const (
	instanceSeparator = "->"
	staticSeparator   = "::"
	callSuffix        = "()"
)

var magicCallerType = reflect.TypeOf((*apis.MagicCaller)(nil)).Elem()

// Canonicalizer turns raw callable representations into Identities.
// It holds no mutable state and is safe for concurrent use.
type Canonicalizer struct {
	cfg       apis.Config
	symbols   apis.Symbols
	resolver  apis.Resolver
	classes   apis.ClassNameValidator
	methods   apis.MethodNameValidator
	functions apis.FunctionNameValidator
	closures  apis.ClosureNormalizer
	logger    *slog.Logger
}

// Option configures a Canonicalizer.
type Option func(*Canonicalizer)

// WithConfig sets the configuration. Validators that were not set
// explicitly are derived from it.
func WithConfig(cfg apis.Config) Option {
	return func(c *Canonicalizer) { c.cfg = cfg }
}

// WithSymbols sets the table consulted for opportunistic existence checks.
// Without it every class is treated as not loaded.
func WithSymbols(s apis.Symbols) Option {
	return func(c *Canonicalizer) { c.symbols = s }
}

// WithResolver sets the resolver that names the class of objects.
func WithResolver(r apis.Resolver) Option {
	return func(c *Canonicalizer) { c.resolver = r }
}

// WithClassNameValidator overrides the class-name validator.
func WithClassNameValidator(v apis.ClassNameValidator) Option {
	return func(c *Canonicalizer) { c.classes = v }
}

// WithMethodNameValidator overrides the method-name validator.
func WithMethodNameValidator(v apis.MethodNameValidator) Option {
	return func(c *Canonicalizer) { c.methods = v }
}

// WithFunctionNameValidator overrides the function-name validator.
func WithFunctionNameValidator(v apis.FunctionNameValidator) Option {
	return func(c *Canonicalizer) { c.functions = v }
}

// WithClosureNormalizer overrides the closure normalizer.
func WithClosureNormalizer(n apis.ClosureNormalizer) Option {
	return func(c *Canonicalizer) { c.closures = n }
}

// WithLogger sets the logger used for debug output about deferred checks.
func WithLogger(l *slog.Logger) Option {
	return func(c *Canonicalizer) { c.logger = l }
}

// New returns a Canonicalizer. Unset collaborators get defaults: validators
// from the names package, the closure package normalizer, and a resolver
// chain of ClassNamer, registry (when the symbols are an apis.Registry) and
// reflection strategies.
func New(opts ...Option) *Canonicalizer {
	c := &Canonicalizer{cfg: config.DefaultConfig()}
	for _, opt := range opts {
		opt(c)
	}
	if c.cfg.InvokeMethod == "" {
		c.cfg.InvokeMethod = config.DefaultInvokeMethod
	}
	if c.classes == nil {
		c.classes = names.NewClassValidator(c.cfg)
	}
	if c.methods == nil {
		c.methods = names.NewMethodValidator(c.cfg)
	}
	if c.functions == nil {
		c.functions = names.NewFunctionValidator(c.cfg)
	}
	if c.closures == nil {
		c.closures = closure.New()
	}
	if c.resolver == nil {
		var fromRegistry apis.Strategy
		if reg, ok := c.symbols.(apis.Registry); ok {
			fromRegistry = strategy.NewRegistryStrategy(reg)
		}
		c.resolver = resolver.New(
			strategy.NewClassNamerStrategy(),
			fromRegistry,
			strategy.NewReflectStrategy(),
		)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Canonicalize classifies v and constructs its Identity.
func (c *Canonicalizer) Canonicalize(v any) (Identity, error) {
	raw, err := Classify(v)
	if err != nil {
		return Identity{}, err
	}
	return c.Construct(raw)
}

// Equal canonicalizes a and b and compares their identities.
func (c *Canonicalizer) Equal(a, b any) (bool, error) {
	ia, err := c.Canonicalize(a)
	if err != nil {
		return false, err
	}
	ib, err := c.Canonicalize(b)
	if err != nil {
		return false, err
	}
	return ia.Equal(ib), nil
}

// Construct builds the Identity of raw.
func (c *Canonicalizer) Construct(raw Raw) (Identity, error) {
	switch r := raw.(type) {
	case String:
		return c.parse(string(r), Describe(r))
	case Pair:
		return c.constructPair(r)
	case Closure:
		return c.constructClosure(r.Fn, Describe(r))
	case Object:
		return c.constructObject(r)
	default:
		return Identity{}, invalid(Describe(raw), "unsupported callable representation", nil)
	}
}

func (c *Canonicalizer) constructClosure(fn any, desc string) (Identity, error) {
	name, err := c.closures.NameFor(fn)
	if err != nil || name == "" {
		return Identity{}, invalid(desc, "cannot name closure", err)
	}
	return Identity{text: name}, nil
}

func (c *Canonicalizer) constructObject(o Object) (Identity, error) {
	desc := Describe(o)
	if !isObject(o.Value) {
		if reflect.ValueOf(o.Value).Kind() == reflect.Func {
			return c.constructClosure(o.Value, desc)
		}
		return Identity{}, invalid(desc, "not an object", nil)
	}
	if !uref.HasMethod(o.Value, c.cfg.InvokeMethod) {
		return Identity{}, notInvokable(desc, "object has no "+c.cfg.InvokeMethod+" method")
	}
	class, err := c.classOf(o.Value, desc)
	if err != nil {
		return Identity{}, err
	}
	return Identity{text: class + callSuffix}, nil
}

func (c *Canonicalizer) constructPair(p Pair) (Identity, error) {
	desc := Describe(p)
	method, err := c.methods.Validate(p.Method)
	if err != nil {
		return Identity{}, invalid(desc, "bad method name", err)
	}

	target := p.Target
	switch t := target.(type) {
	case String:
		target = string(t)
	case Object:
		target = t.Value
	}

	if name, ok := target.(string); ok {
		class, err := c.classes.FullyQualify(name)
		if err != nil {
			return Identity{}, invalid(desc, "bad class name", err)
		}
		if err := c.assertMethod(class, method, desc); err != nil {
			return Identity{}, err
		}
		return Identity{text: class + staticSeparator + method + callSuffix}, nil
	}

	if !isObject(target) {
		return Identity{}, invalid(desc, "pair target must be a class name or an object", nil)
	}
	if !uref.HasMethod(target, method) && !reflect.TypeOf(target).Implements(magicCallerType) {
		return Identity{}, notInvokable(desc, "object has no callable method "+method)
	}
	class, err := c.classOf(target, desc)
	if err != nil {
		return Identity{}, err
	}
	return Identity{text: class + instanceSeparator + method + callSuffix}, nil
}

// assertMethod fails only when class is loaded and method is neither
// declared nor reachable through magic call. Unloaded classes are not checked.
func (c *Canonicalizer) assertMethod(class, method, desc string) error {
	if c.symbols == nil || !c.symbols.ClassExists(class) {
		c.logger.Debug("class not loaded, method check deferred",
			slog.String("class", class),
			slog.String("method", method))
		return nil
	}
	if c.symbols.MethodExists(class, method) || c.symbols.HasMagicCall(class) {
		return nil
	}
	return invalid(desc, "class "+class+" has no method "+method, nil)
}

// classOf resolves and validates the class name of an object.
func (c *Canonicalizer) classOf(v any, desc string) (string, error) {
	name := c.resolver.Resolve(v, c.cfg)
	if name == "" {
		return "", invalid(desc, "cannot determine object class", nil)
	}
	class, err := c.classes.FullyQualify(name)
	if err != nil {
		return "", invalid(desc, "bad object class name", err)
	}
	return class, nil
}

// isObject reports whether v is a struct value, a non-nil pointer, or a
// value of any other named type that has methods. Funcs are never objects.
func isObject(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Invalid, reflect.Func:
		return false
	case reflect.Ptr:
		return !rv.IsNil()
	case reflect.Struct:
		return true
	default:
		return rv.Type().Name() != "" && rv.Type().NumMethod() > 0
	}
}
