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
	"strconv"
	"strings"

	"dirpx.dev/callid/closure"
	"dirpx.dev/callid/config"
)

var (
	// syntaxOnly canonicalizes strings without a symbol table.
	syntaxOnly = New()
	// decoder re-parses stored identities. It accepts Unicode names so that
	// anything a configured canonicalizer produced can be read back.
	decoder = New(WithConfig(config.NewConfig(config.WithAllowUnicode(true))))
)

// Parse canonicalizes textual callable spec using default validators and no
// symbol table, so only syntax is checked.
func Parse(s string) (Identity, error) {
	return syntaxOnly.parse(s, strconv.Quote(s))
}

// parse recognizes, in priority order: closure literal text, a plain
// function name, then the parenthesized forms "C->m()", "C::m()" and "C()".
func (c *Canonicalizer) parse(s, desc string) (Identity, error) {
	s = strings.TrimSpace(s)

	if name := c.closures.NormalizeString(s); name != "" {
		return Identity{text: name}, nil
	}
	if closure.IsLiteral(s) {
		return Identity{}, invalid(desc, "malformed closure literal", nil)
	}

	if !strings.HasSuffix(s, callSuffix) {
		fn, err := c.functions.FullyQualify(s)
		if err != nil {
			return Identity{}, invalid(desc, "bad function name", err)
		}
		return Identity{text: fn}, nil
	}

	body := strings.TrimSuffix(s, callSuffix)
	switch {
	case strings.Count(body, instanceSeparator) == 1:
		return c.parseMethod(body, instanceSeparator, desc)
	case strings.Count(body, staticSeparator) == 1:
		return c.parseMethod(body, staticSeparator, desc)
	}

	class, err := c.classes.FullyQualify(body)
	if err != nil {
		return Identity{}, invalid(desc, "bad invokable class name", err)
	}
	if c.symbols != nil && c.symbols.ClassExists(class) && !c.symbols.IsInvokable(class) {
		return Identity{}, notInvokable(desc, "class "+class+" is not invokable")
	}
	return Identity{text: class + callSuffix}, nil
}

func (c *Canonicalizer) parseMethod(body, sep, desc string) (Identity, error) {
	rawClass, rawMethod, _ := strings.Cut(body, sep)

	class, err := c.classes.FullyQualify(rawClass)
	if err != nil {
		return Identity{}, invalid(desc, "bad class name", err)
	}
	method, err := c.methods.Validate(rawMethod)
	if err != nil {
		return Identity{}, invalid(desc, "bad method name", err)
	}
	if err := c.assertMethod(class, method, desc); err != nil {
		return Identity{}, err
	}
	return Identity{text: class + sep + method + callSuffix}, nil
}
