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

// Package curve wraps the BLS12-381 curve, its two source groups, target
// group and bilinear pairing from gnark-crypto. It carries no scheme logic
// of its own: DSum, MCFE and DMCFE build on these primitives, they don't
// reimplement them.
package curve

import (
	"crypto/rand"
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// Order is the order r of the BLS12-381 scalar field, and of the G1, G2
// prime-order subgroups.
var Order, _ = new(big.Int).SetString(
	"52435875175126190479447740508185965837690552500527637822603658699938581184513", 10)

// RandomScalar samples a uniform element of [0, Order) from r.
func RandomScalar(r io.Reader) (*big.Int, error) {
	return rand.Int(r, Order)
}

func reduce(x *big.Int) *big.Int {
	return new(big.Int).Mod(x, Order)
}

// G1Generator returns the fixed generator of G1.
func G1Generator() bls12381.G1Jac {
	_, _, g1Aff, _ := bls12381.Generators()
	var p bls12381.G1Jac
	p.FromAffine(&g1Aff)
	return p
}

// G2Generator returns the fixed generator of G2.
func G2Generator() bls12381.G2Jac {
	_, _, _, g2Aff := bls12381.Generators()
	var p bls12381.G2Jac
	p.FromAffine(&g2Aff)
	return p
}

// G1BaseMul computes x*G1 for the G1 generator.
func G1BaseMul(x *big.Int) bls12381.G1Jac {
	p := G1Generator()
	p.ScalarMultiplication(&p, reduce(x))
	return p
}

// G2BaseMul computes x*G2 for the G2 generator.
func G2BaseMul(x *big.Int) bls12381.G2Jac {
	p := G2Generator()
	p.ScalarMultiplication(&p, reduce(x))
	return p
}

// G1ScalarMul computes x*p in G1.
func G1ScalarMul(p *bls12381.G1Jac, x *big.Int) bls12381.G1Jac {
	r := *p
	r.ScalarMultiplication(&r, reduce(x))
	return r
}

// G2ScalarMul computes x*p in G2.
func G2ScalarMul(p *bls12381.G2Jac, x *big.Int) bls12381.G2Jac {
	r := *p
	r.ScalarMultiplication(&r, reduce(x))
	return r
}

// G1Add returns a+b in G1.
func G1Add(a, b *bls12381.G1Jac) bls12381.G1Jac {
	r := *a
	r.AddAssign(b)
	return r
}

// G2Add returns a+b in G2.
func G2Add(a, b *bls12381.G2Jac) bls12381.G2Jac {
	r := *a
	r.AddAssign(b)
	return r
}

// G1Neg returns -p in G1.
func G1Neg(p *bls12381.G1Jac) bls12381.G1Jac {
	return G1ScalarMul(p, big.NewInt(-1))
}

// G2Neg returns -p in G2.
func G2Neg(p *bls12381.G2Jac) bls12381.G2Jac {
	return G2ScalarMul(p, big.NewInt(-1))
}

// G1Identity returns the identity element of G1.
func G1Identity() bls12381.G1Jac {
	var p bls12381.G1Jac
	p.FromAffine(new(bls12381.G1Affine))
	return p
}

// G2Identity returns the identity element of G2.
func G2Identity() bls12381.G2Jac {
	var p bls12381.G2Jac
	p.FromAffine(new(bls12381.G2Affine))
	return p
}

// ToAffineG1 converts a G1 element to its affine representation, the form
// used for the compressed encoding and as pairing input.
func ToAffineG1(p *bls12381.G1Jac) bls12381.G1Affine {
	var aff bls12381.G1Affine
	aff.FromJacobian(p)
	return aff
}

// ToAffineG2 converts a G2 element to its affine representation.
func ToAffineG2(p *bls12381.G2Jac) bls12381.G2Affine {
	var aff bls12381.G2Affine
	aff.FromJacobian(p)
	return aff
}

// CompressG1 returns the canonical 48-byte compressed encoding of p.
func CompressG1(p *bls12381.G1Jac) [48]byte {
	aff := ToAffineG1(p)
	return aff.Bytes()
}

// CompressG2 returns the canonical 96-byte compressed encoding of p.
func CompressG2(p *bls12381.G2Jac) [96]byte {
	aff := ToAffineG2(p)
	return aff.Bytes()
}

// Pair computes the product of pairings prod_i e(g1s[i], g2s[i]) in GT.
// len(g1s) must equal len(g2s).
func Pair(g1s []bls12381.G1Jac, g2s []bls12381.G2Jac) (bls12381.GT, error) {
	g1aff := make([]bls12381.G1Affine, len(g1s))
	g2aff := make([]bls12381.G2Affine, len(g2s))
	for i := range g1s {
		g1aff[i] = ToAffineG1(&g1s[i])
	}
	for i := range g2s {
		g2aff[i] = ToAffineG2(&g2s[i])
	}
	return bls12381.Pair(g1aff, g2aff)
}

// PairSingle computes e(a, b) in GT.
func PairSingle(a *bls12381.G1Jac, b *bls12381.G2Jac) (bls12381.GT, error) {
	return Pair([]bls12381.G1Jac{*a}, []bls12381.G2Jac{*b})
}

// GTIdentity returns the identity of GT (written multiplicatively).
func GTIdentity() bls12381.GT {
	var r bls12381.GT
	r.SetOne()
	return r
}

// GTMul returns a*b in GT, i.e. a+b when GT is read additively by its
// discrete-log exponent.
func GTMul(a, b *bls12381.GT) bls12381.GT {
	r := *a
	r.Mul(&r, b)
	return r
}

// GTInverse returns a^-1 in GT, i.e. the additive inverse in exponent
// notation.
func GTInverse(a *bls12381.GT) bls12381.GT {
	var r bls12381.GT
	r.Inverse(a)
	return r
}

// GTExp returns a^x in GT.
func GTExp(a *bls12381.GT, x *big.Int) bls12381.GT {
	var r bls12381.GT
	r.Exp(*a, reduce(x))
	return r
}

// GTEqual reports whether a and b are the same GT element.
func GTEqual(a, b *bls12381.GT) bool {
	return a.Equal(b)
}

// GTBytes returns the canonical byte encoding of a GT element, used as the
// hash preimage for the Kangaroo distinguished-point predicate.
func GTBytes(a *bls12381.GT) []byte {
	b := a.Bytes()
	return b[:]
}
