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

// Package dlog recovers the discrete logarithm of a pairing-group element
// produced by MCFE or DMCFE decryption: BSGS for small, single-threaded
// intervals on G1, and a parallel Kangaroo solver for large intervals on
// GT.
package dlog

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/fentec-project/dmcfe/hash"
	"github.com/fentec-project/dmcfe/internal/curve"
	"github.com/fentec-project/dmcfe/internal/errs"
)

// BSGS finds x < m*n such that x*G1 = p, using the baby-step/giant-step
// method. It precomputes a table of m baby steps, then takes up to n giant
// steps looking for a match. Not thread-safe: callers needing concurrent
// solves should use independent calls, each with its own table.
//
// m and n together bound the search range: x is only found if x < m*n. The
// precomputed table holds m entries, so memory and precompute time scale
// linearly with m; choose m, n to balance precompute cost against the
// number of giant steps.
func BSGS(p *bls12381.G1Jac, m, n uint32) (uint64, error) {
	if m == 0 || n == 0 {
		return 0, errs.Wrap(errs.PreconditionViolation, "m and n must both be positive, got m=%d n=%d", m, n)
	}

	table := make(map[[32]byte]uint32, m)
	g := curve.G1Generator()
	pi := curve.G1Identity()
	for i := uint32(0); i < m; i++ {
		digest := hash.Digest32(compressG1(&pi))
		if j, ok := table[digest]; ok {
			return 0, errs.Wrap(errs.HashCollision, "baby step %d collides with %d", i, j)
		}
		table[digest] = i
		pi = curve.G1Add(&pi, &g)
	}

	mG := curve.G1ScalarMul(&g, new(big.Int).SetUint64(uint64(m)))
	q := curve.G1Neg(&mG)

	qk := curve.G1Identity()
	pk := *p
	for k := uint32(0); k < n; k++ {
		digest := hash.Digest32(compressG1(&pk))
		if i, ok := table[digest]; ok {
			return uint64(k)*uint64(m) + uint64(i), nil
		}
		qk = curve.G1Add(&qk, &q)
		pk = curve.G1Add(p, &qk)
	}

	return 0, errs.Wrap(errs.NotFound, "no discrete log found for x < %d", uint64(m)*uint64(n))
}

func compressG1(p *bls12381.G1Jac) []byte {
	b := curve.CompressG1(p)
	return b[:]
}
