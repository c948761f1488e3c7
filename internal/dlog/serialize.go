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

package dlog

import (
	"encoding/binary"
	"io"
	"math/big"

	"github.com/fentec-project/dmcfe/internal/errs"
)

// scalarSize is the fixed width a jump or table scalar is padded to on
// disk, wide enough for any exponent this package produces.
const scalarSize = 32

func writeScalar(w io.Writer, x *big.Int) error {
	var buf [scalarSize]byte
	b := x.Bytes()
	if len(b) > scalarSize {
		return errs.Wrap(errs.Corrupt, "scalar does not fit in %d bytes", scalarSize)
	}
	copy(buf[scalarSize-len(b):], b)
	if _, err := w.Write(buf[:]); err != nil {
		return errs.Wrap(errs.IO, "write scalar: %v", err)
	}
	return nil
}

func readScalar(r io.Reader) (*big.Int, error) {
	var buf [scalarSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return nil, errs.Wrap(errs.Corrupt, "truncated scalar")
		}
		return nil, errs.Wrap(errs.IO, "read scalar: %v", err)
	}
	return new(big.Int).SetBytes(buf[:]), nil
}

func writeCount(w io.Writer, n int) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(n))
	if _, err := w.Write(buf[:]); err != nil {
		return errs.Wrap(errs.IO, "write count: %v", err)
	}
	return nil
}

func readCount(r io.Reader) (int, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return 0, errs.Wrap(errs.Corrupt, "truncated count")
		}
		return 0, errs.Wrap(errs.IO, "read count: %v", err)
	}
	return int(binary.LittleEndian.Uint32(buf[:])), nil
}

// WriteJumps serializes jumps as a little-endian u32 count followed by
// that many fixed-width scalars.
func WriteJumps(w io.Writer, jumps Jumps) error {
	if err := writeCount(w, len(jumps)); err != nil {
		return err
	}
	for _, j := range jumps {
		if err := writeScalar(w, j); err != nil {
			return err
		}
	}
	return nil
}

// ReadJumps reads a Jumps value written by WriteJumps.
func ReadJumps(r io.Reader) (Jumps, error) {
	n, err := readCount(r)
	if err != nil {
		return nil, err
	}
	jumps := make(Jumps, n)
	for i := range jumps {
		j, err := readScalar(r)
		if err != nil {
			return nil, err
		}
		jumps[i] = j
	}
	return jumps, nil
}

// WriteTable serializes table as a little-endian u32 count followed by
// that many (32-byte digest, 32-byte scalar) entries. Entry order is not
// specified; ReadTable reconstructs the same map regardless of order.
func WriteTable(w io.Writer, table Table) error {
	if err := writeCount(w, len(table)); err != nil {
		return err
	}
	for digest, scalar := range table {
		if _, err := w.Write(digest[:]); err != nil {
			return errs.Wrap(errs.IO, "write digest: %v", err)
		}
		if err := writeScalar(w, scalar); err != nil {
			return err
		}
	}
	return nil
}

// ReadTable reads a Table value written by WriteTable.
func ReadTable(r io.Reader) (Table, error) {
	n, err := readCount(r)
	if err != nil {
		return nil, err
	}
	table := make(Table, n)
	for i := 0; i < n; i++ {
		var digest [32]byte
		if _, err := io.ReadFull(r, digest[:]); err != nil {
			if err == io.ErrUnexpectedEOF || err == io.EOF {
				return nil, errs.Wrap(errs.Corrupt, "truncated table entry %d", i)
			}
			return nil, errs.Wrap(errs.IO, "read digest: %v", err)
		}
		scalar, err := readScalar(r)
		if err != nil {
			return nil, err
		}
		table[digest] = scalar
	}
	return table, nil
}
