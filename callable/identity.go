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

	"github.com/vmihailenco/msgpack/v5"
)

// Identity is the canonical identity of a callable. Two identities are equal
// iff their canonical texts are identical. The zero Identity denotes "no
// identity" and is never returned alongside a nil error.
type Identity struct {
	text string
}

// String returns the canonical text.
func (id Identity) String() string {
	return id.text
}

// IsZero reports whether id is the zero Identity.
func (id Identity) IsZero() bool {
	return id.text == ""
}

// Equal reports whether id and other have the same canonical text.
func (id Identity) Equal(other Identity) bool {
	return id.text == other.text
}

// MarshalText implements encoding.TextMarshaler.
func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.text), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The text is parsed
// again, so only texts that satisfy the canonical grammar are accepted.
// Unicode names are always allowed.
func (id *Identity) UnmarshalText(text []byte) error {
	return id.decode(string(text))
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (id Identity) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(id.text)
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (id *Identity) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return err
	}
	return id.decode(s)
}

func (id *Identity) decode(s string) error {
	if s == "" {
		*id = Identity{}
		return nil
	}
	parsed, err := decoder.parse(s, strconv.Quote(s))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

var (
	_ msgpack.CustomEncoder = Identity{}
	_ msgpack.CustomDecoder = (*Identity)(nil)
)
