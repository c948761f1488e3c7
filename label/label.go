/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package label implements the opaque, compositional byte labels that bind
// DSum, MCFE and DMCFE ciphertexts and keys to a single session.
package label

import (
	"encoding/binary"
	"math/big"
)

// Label owns a growable byte buffer. Two labels are equal iff their full
// buffers are byte-equal.
type Label struct {
	buf []byte
}

// From builds a label from an arbitrary string, e.g. "Setup".
func From(s string) *Label {
	return &Label{buf: []byte(s)}
}

// FromBytes builds a label directly from a byte slice.
func FromBytes(b []byte) *Label {
	l := &Label{buf: make([]byte, len(b))}
	copy(l.buf, b)
	return l
}

// FromScalars serializes each scalar in y as 32 big-endian bytes,
// concatenated in order. This is the fixed-width encoding used for a
// decryption function y, so that two distinct vectors never collide under
// concatenation.
func FromScalars(y []*big.Int) *Label {
	buf := make([]byte, 0, 32*len(y))
	for _, yi := range y {
		buf = append(buf, scalarBytes(yi)...)
	}
	return &Label{buf: buf}
}

// Aggregate appends bytes verbatim to the label. Callers are responsible
// for injecting length prefixes or fixed-width encodings when ambiguity
// between two different compositions is possible.
func (l *Label) Aggregate(b []byte) *Label {
	l.buf = append(l.buf, b...)
	return l
}

// AggregateUint8 appends a single big-endian byte, e.g. a small loop index.
func (l *Label) AggregateUint8(i uint8) *Label {
	return l.Aggregate([]byte{i})
}

// AggregateUint64 appends 8 big-endian bytes.
func (l *Label) AggregateUint64(i uint64) *Label {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], i)
	return l.Aggregate(b[:])
}

// Bytes returns the label's full buffer. The caller must not mutate it.
func (l *Label) Bytes() []byte {
	return l.buf
}

// Equal reports whether l and other hold the same buffer.
func (l *Label) Equal(other *Label) bool {
	if len(l.buf) != len(other.buf) {
		return false
	}
	for i := range l.buf {
		if l.buf[i] != other.buf[i] {
			return false
		}
	}
	return true
}

// FromUint64 builds a label from the fixed-width big-endian encoding of a
// numeric label, for schemes such as MCFE that index labels by l in N
// rather than by an opaque byte string.
func FromUint64(l uint64) *Label {
	lbl := &Label{}
	return lbl.AggregateUint64(l)
}

func scalarBytes(x *big.Int) []byte {
	var out [32]byte
	x.FillBytes(out[:])
	return out[:]
}
