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

// Package manifest loads class symbol tables from TOML files.
//
//	[[class]]
//	name = "billing.Invoice"
//	methods = ["Total", "Send"]
//	magic_call = false
//	invokable = true
package manifest

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"dirpx.dev/callid/apis"
)

// ErrUnknownKeys is returned when a manifest carries keys this package does not understand.
var ErrUnknownKeys = errors.New("callid(manifest): unknown keys")

type file struct {
	Classes []class `toml:"class"`
}

type class struct {
	Name      string   `toml:"name"`
	Methods   []string `toml:"methods"`
	MagicCall bool     `toml:"magic_call"`
	Invokable bool     `toml:"invokable"`
}

// Load reads the manifest at path.
func Load(path string) ([]apis.Class, error) {
	var f file
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("callid(manifest): %s: %w", path, err)
	}
	if err := checkUndecoded(meta); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f.classes(), nil
}

// Decode reads a manifest from r.
func Decode(r io.Reader) ([]apis.Class, error) {
	var f file
	meta, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("callid(manifest): %w", err)
	}
	if err := checkUndecoded(meta); err != nil {
		return nil, err
	}
	return f.classes(), nil
}

// Apply registers classes with reg, stopping at the first failure.
func Apply(reg apis.Registry, classes []apis.Class) error {
	for _, c := range classes {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("callid(manifest): class %q: %w", c.Name, err)
		}
	}
	return nil
}

func (f file) classes() []apis.Class {
	out := make([]apis.Class, 0, len(f.Classes))
	for _, c := range f.Classes {
		out = append(out, apis.Class{
			Name:      c.Name,
			Methods:   c.Methods,
			MagicCall: c.MagicCall,
			Invokable: c.Invokable,
		})
	}
	return out
}

func checkUndecoded(meta toml.MetaData) error {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, 0, len(undecoded))
	for _, k := range undecoded {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)
	return fmt.Errorf("%w: %s", ErrUnknownKeys, strings.Join(keys, ", "))
}
