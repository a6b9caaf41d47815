// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abc

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxArrayElements: 1 << 20,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Marshal a method descriptor.  The compiled-code slot is not encoded.
func Marshal(m *Method) ([]byte, error) {
	return encMode.Marshal(m)
}

// Unmarshal a method descriptor and validate it.
func Unmarshal(data []byte) (*Method, error) {
	m := new(Method)
	if err := decMode.Unmarshal(data, m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Decode a sequence of method descriptors.
func Decode(r io.Reader) ([]*Method, error) {
	dec := decMode.NewDecoder(r)

	var methods []*Method
	for {
		m := new(Method)
		if err := dec.Decode(m); err != nil {
			if err == io.EOF {
				return methods, nil
			}
			return nil, err
		}
		if err := m.Validate(); err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
}
