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

// Package mcfe implements the centralized variant of multi-client
// inner-product functional encryption: a trusted dealer runs setup once and
// distributes one encryption key per client. Decryption recovers <x,y>·G1
// for a functional key y, given one ciphertext per client under the same
// label.
package mcfe

import (
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/fentec-project/dmcfe/data"
	"github.com/fentec-project/dmcfe/hash"
	"github.com/fentec-project/dmcfe/internal/curve"
	"github.com/fentec-project/dmcfe/internal/errs"
	"github.com/fentec-project/dmcfe/label"
)

// EncryptionKey is a single client's MCFE key: a random m x 2 matrix S and
// an m-dimensional inner-product-FE master secret.
type EncryptionKey struct {
	S   data.Matrix
	Msk data.Vector
}

// PartialDecryptionKey is one client's contribution to a functional key for
// y, produced without any interaction with other clients.
type PartialDecryptionKey struct {
	Y    data.Vector
	Dky  [2]*big.Int
	IPDk *big.Int
}

// DecryptionKey is the combination of every client's PartialDecryptionKey
// for the same weight vector y.
type DecryptionKey struct {
	Y    []data.Vector
	Dky  [2]*big.Int
	IPDk []*big.Int
}

// Setup samples n client encryption keys, each holding an m-dimensional
// contribution slot. rand must be a cryptographically secure source; every
// scalar drawn here comes from it, not from a package-level generator.
func Setup(rand io.Reader, n, m int) ([]*EncryptionKey, error) {
	eks := make([]*EncryptionKey, n)
	for i := 0; i < n; i++ {
		s := make(data.Matrix, m)
		for row := 0; row < m; row++ {
			s[row] = make(data.Vector, 2)
			for col := 0; col < 2; col++ {
				v, err := curve.RandomScalar(rand)
				if err != nil {
					return nil, err
				}
				s[row][col] = v
			}
		}

		msk := make(data.Vector, m)
		for j := 0; j < m; j++ {
			v, err := curve.RandomScalar(rand)
			if err != nil {
				return nil, err
			}
			msk[j] = v
		}

		eks[i] = &EncryptionKey{S: s, Msk: msk}
	}
	return eks, nil
}

// Encrypt produces client i's ciphertext vector for contribution x under
// numeric label l.
func Encrypt(ek *EncryptionKey, x data.Vector, l uint64) (data.VectorG1, error) {
	if len(x) != ek.S.Rows() {
		return nil, errs.Wrap(errs.SizeMismatch, "contribution has length %d, encryption key expects %d", len(x), ek.S.Rows())
	}

	lbl := label.FromUint64(l)
	ul := hash.ToG1(lbl.Bytes())
	vl := hash.DoubleG1(lbl.Bytes())
	vlVec := data.VectorG1{&vl[0], &vl[1]}

	r1, err := ek.S.MatMulVecG1(vlVec)
	if err != nil {
		return nil, err
	}

	c := make(data.VectorG1, len(x))
	for j := range x {
		r2 := curve.G1ScalarMul(&ul, ek.Msk[j])
		xg := curve.G1BaseMul(x[j])
		cij := curve.G1Add(r1[j], &r2)
		cij = curve.G1Add(&cij, &xg)
		c[j] = &cij
	}

	return c, nil
}

// PartialKeyGen computes client i's contribution to the functional key for
// weight vector y.
func PartialKeyGen(ek *EncryptionKey, y data.Vector) (*PartialDecryptionKey, error) {
	if len(y) != ek.S.Rows() {
		return nil, errs.Wrap(errs.SizeMismatch, "weight vector has length %d, encryption key expects %d", len(y), ek.S.Rows())
	}

	dky, err := ek.S.Transpose().MulVec(y)
	if err != nil {
		return nil, err
	}
	if len(dky) != 2 {
		return nil, errs.Wrap(errs.SizeMismatch, "dky_i should have length 2, got %d", len(dky))
	}

	ipdk, err := y.Dot(ek.Msk)
	if err != nil {
		return nil, err
	}

	return &PartialDecryptionKey{
		Y:    y,
		Dky:  [2]*big.Int{dky[0], dky[1]},
		IPDk: ipdk,
	}, nil
}

// KeyComb combines every client's partial decryption key into the final
// decryption key for the label-independent weight vector y.
func KeyComb(dks []*PartialDecryptionKey) (*DecryptionKey, error) {
	y := make([]data.Vector, len(dks))
	d := [2]*big.Int{big.NewInt(0), big.NewInt(0)}
	ipdk := make([]*big.Int, len(dks))

	for i, dk := range dks {
		y[i] = dk.Y
		d[0].Add(d[0], dk.Dky[0])
		d[1].Add(d[1], dk.Dky[1])
		ipdk[i] = dk.IPDk
	}

	return &DecryptionKey{Y: y, Dky: d, IPDk: ipdk}, nil
}

// Decrypt combines every client's ciphertext with the decryption key to
// recover <x,y>*G1, the G1-encoded inner product. The caller feeds the
// result to a discrete-log solver to recover the integer.
func Decrypt(ciphertexts []data.VectorG1, dk *DecryptionKey, l uint64) (bls12381.G1Jac, error) {
	if len(ciphertexts) != len(dk.Y) || len(ciphertexts) != len(dk.IPDk) {
		return bls12381.G1Jac{}, errs.Wrap(errs.SizeMismatch,
			"%d ciphertexts do not match decryption key for %d clients", len(ciphertexts), len(dk.Y))
	}

	lbl := label.FromUint64(l)
	ul := hash.ToG1(lbl.Bytes())
	vl := hash.DoubleG1(lbl.Bytes())

	dl := curve.G1Identity()
	for i, ci := range ciphertexts {
		yi := dk.Y[i]
		if len(ci) != len(yi) {
			return bls12381.G1Jac{}, errs.Wrap(errs.SizeMismatch,
				"client %d ciphertext has length %d, weight vector has length %d", i, len(ci), len(yi))
		}
		term := ci.Dot(yi)
		mask := curve.G1ScalarMul(&ul, dk.IPDk[i])
		negMask := curve.G1Neg(&mask)
		di := curve.G1Add(&term, &negMask)
		dl = curve.G1Add(&dl, &di)
	}

	d := curve.G1Identity()
	for k := 0; k < 2; k++ {
		term := curve.G1ScalarMul(&vl[k], dk.Dky[k])
		d = curve.G1Add(&d, &term)
	}
	negD := curve.G1Neg(&d)

	result := curve.G1Add(&dl, &negD)
	return result, nil
}
