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

// Package hash implements the deterministic, domain-separated maps from
// byte labels into G1, G2 and the scalar field F that DSum, MCFE and DMCFE
// use to derive shared randomness from a label alone. Every map here hashes
// with a fixed-time digest (SHA-256/SHA-512) so no branch depends on the
// label's content, avoiding a timing leak through branch-dependent hashing.
package hash

import (
	"crypto/sha256"
	"crypto/sha512"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/fentec-project/dmcfe/internal/curve"
)

// Domain separation tags, one per target, so the same label never collides
// across H_G1, H_G2 and H_F.
const (
	tagG1 = 0x01
	tagG2 = 0x02
	tagF  = 0x03
)

// ToScalar reduces an arbitrary byte string into F by hashing it with
// SHA-512 (64 bytes of input entropy, comfortably more than the 255-bit
// field order) and reducing modulo the group order.
func ToScalar(tag byte, parts ...[]byte) *big.Int {
	h := sha512.New()
	h.Write([]byte{tag})
	for _, p := range parts {
		h.Write(p)
	}
	digest := h.Sum(nil)
	x := new(big.Int).SetBytes(digest)
	return x.Mod(x, curve.Order)
}

// ToG1 hashes a label into G1 by reducing it to a scalar and multiplying
// the G1 generator.
func ToG1(label []byte) bls12381.G1Jac {
	x := ToScalar(tagG1, label)
	return curve.G1BaseMul(x)
}

// ToG2 hashes a label into G2, analogous to ToG1.
func ToG2(label []byte) bls12381.G2Jac {
	x := ToScalar(tagG2, label)
	return curve.G2BaseMul(x)
}

// ToF hashes three group elements' canonical encodings plus a label into a
// scalar. Used by DSum's pairwise mask h(L, ski, pkj).
func ToF(a, b, c []byte, label []byte) *big.Int {
	return ToScalar(tagF, a, b, c, label)
}

// DoubleG1 returns the 2-vector (H_G1(L||0x01), H_G1(L||0x02)), the "double
// hash" used to build the 2-dimensional per-label U_l/u vectors MCFE and
// DMCFE encrypt under.
func DoubleG1(label []byte) [2]bls12381.G1Jac {
	return [2]bls12381.G1Jac{
		ToG1(append(append([]byte{}, label...), 0x01)),
		ToG1(append(append([]byte{}, label...), 0x02)),
	}
}

// DoubleG2 returns the 2-vector (H_G2(L||0x01), H_G2(L||0x02)).
func DoubleG2(label []byte) [2]bls12381.G2Jac {
	return [2]bls12381.G2Jac{
		ToG2(append(append([]byte{}, label...), 0x01)),
		ToG2(append(append([]byte{}, label...), 0x02)),
	}
}

// Digest32 is a plain SHA-256 of b, used by BSGS/Kangaroo as a compact map
// key for group-element preimages.
func Digest32(b []byte) [32]byte {
	return sha256.Sum256(b)
}
