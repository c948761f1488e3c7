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

// Package decentralized implements DMCFE, the decentralized variant of
// multi-client inner-product functional encryption: there is no trusted
// dealer, clients jointly fix the scheme's shared randomness through DSum.
package decentralized

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/fentec-project/dmcfe/internal/curve"
)

// DVecF is a fixed 2-dimensional vector of scalars. The scheme's security
// proof fixes every such vector at dimension 2, so this is a plain value
// type rather than a general Vector: see data.Vector for the variable-size
// case MCFE and the linear-algebra layer use.
type DVecF [2]*big.Int

// MulScalar multiplies both components of v by x.
func (v DVecF) MulScalar(x *big.Int) DVecF {
	return DVecF{
		new(big.Int).Mul(v[0], x),
		new(big.Int).Mul(v[1], x),
	}
}

// MulG2 raises the G2 generator to each component of v.
func (v DVecF) MulG2() DVecG2 {
	a := curve.G2BaseMul(v[0])
	b := curve.G2BaseMul(v[1])
	return DVecG2{&a, &b}
}

// DVecG1 is a fixed 2-dimensional vector of G1 points.
type DVecG1 [2]*bls12381.G1Jac

// InnerProduct computes sum_i s[i]*v[i], the pairing-free inner product of
// a DVecG1 and a DVecF.
func (v DVecG1) InnerProduct(s DVecF) bls12381.G1Jac {
	a := curve.G1ScalarMul(v[0], s[0])
	b := curve.G1ScalarMul(v[1], s[1])
	return curve.G1Add(&a, &b)
}

// DVecG2 is a fixed 2-dimensional vector of G2 points.
type DVecG2 [2]*bls12381.G2Jac

// Add adds two DVecG2 instances component-wise.
func (v DVecG2) Add(other DVecG2) DVecG2 {
	a := curve.G2Add(v[0], other[0])
	b := curve.G2Add(v[1], other[1])
	return DVecG2{&a, &b}
}

// TMatF is a fixed 2x2, row-major matrix of scalars: a client's share of
// the matrix that sums to zero across all clients in DMCFE setup.
type TMatF [2][2]*big.Int

// MulVecG2 computes t*v, a matrix-vector product in the exponent: row i of
// the result is sum_j t[i][j]*v[j].
func (t TMatF) MulVecG2(v DVecG2) DVecG2 {
	row := func(i int) bls12381.G2Jac {
		a := curve.G2ScalarMul(v[0], t[i][0])
		b := curve.G2ScalarMul(v[1], t[i][1])
		return curve.G2Add(&a, &b)
	}
	r0, r1 := row(0), row(1)
	return DVecG2{&r0, &r1}
}
