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

package decentralized

import (
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/fentec-project/dmcfe/data"
	"github.com/fentec-project/dmcfe/dsum"
	"github.com/fentec-project/dmcfe/hash"
	"github.com/fentec-project/dmcfe/internal/curve"
	"github.com/fentec-project/dmcfe/internal/errs"
	"github.com/fentec-project/dmcfe/label"
)

// PrivateKey is a DMCFE client's secret state: a random 2-vector s used to
// mask its contribution, and its share T of a matrix that sums to zero
// across every client in the session.
type PrivateKey struct {
	S DVecF
	T TMatF
}

// CipherText is one client's encrypted contribution for a single label.
// Decrypt rejects any batch whose ciphertexts disagree on their label.
type CipherText struct {
	c bls12381.G1Jac
	l *label.Label
}

// PartialDecryptionKey is one client's contribution to a functional key for
// weight vector y.
type PartialDecryptionKey struct {
	D DVecG2
}

// DecryptionKey is the combination of every client's PartialDecryptionKey
// for the same weight vector y.
type DecryptionKey struct {
	Y data.Vector
	D DVecG2
}

// tGen derives this client's share Ti of the all-zero matrix: each of the
// four entries is a DSum encoding of 0 under a distinct "Setup"||k label, so
// that summing every client's Ti across the session yields the zero matrix.
func tGen(dski *dsum.PrivateKey, pkSelf *dsum.PublicKey, peers []*dsum.PublicKey) TMatF {
	var entries [4]*big.Int
	for k := 0; k < 4; k++ {
		l := label.From("Setup").AggregateUint8(uint8(k))
		c := dsum.Encode(big.NewInt(0), dski, pkSelf, peers, l)
		entries[k] = c.Scalar()
	}
	return TMatF{
		{entries[0], entries[1]},
		{entries[2], entries[3]},
	}
}

// Setup runs a client's DMCFE key generation: dski/pkSelf is this client's
// DSum key pair (from dsum.ClientSetup), and peers is the full DSum public
// key set received from every client in the session, including this one.
func Setup(rand io.Reader, dski *dsum.PrivateKey, pkSelf *dsum.PublicKey, peers []*dsum.PublicKey) (*PrivateKey, error) {
	s0, err := curve.RandomScalar(rand)
	if err != nil {
		return nil, err
	}
	s1, err := curve.RandomScalar(rand)
	if err != nil {
		return nil, err
	}

	return &PrivateKey{
		S: DVecF{s0, s1},
		T: tGen(dski, pkSelf, peers),
	}, nil
}

// Encrypt encrypts a client's scalar contribution x under label l.
func Encrypt(sk *PrivateKey, x *big.Int, l *label.Label) CipherText {
	h := hash.DoubleG1(l.Bytes())
	u := DVecG1{&h[0], &h[1]}

	ip := u.InnerProduct(sk.S)
	xg := curve.G1BaseMul(x)
	c := curve.G1Add(&ip, &xg)

	return CipherText{c: c, l: l}
}

// PartialKeyGen computes this client's contribution to the functional key
// for weight vector y, where id is this client's index into y.
func PartialKeyGen(sk *PrivateKey, id int, y data.Vector) (*PartialDecryptionKey, error) {
	if id < 0 || id >= len(y) {
		return nil, errs.Wrap(errs.PreconditionViolation, "client index %d out of range for a %d-vector y", id, len(y))
	}

	ly := label.FromScalars(y)
	h := hash.DoubleG2(ly.Bytes())
	v := DVecG2{&h[0], &h[1]}

	term1 := sk.S.MulScalar(y[id]).MulG2()
	term2 := sk.T.MulVecG2(v)

	return &PartialDecryptionKey{D: term1.Add(term2)}, nil
}

// Combine combines every client's partial decryption key into the final
// decryption key for weight vector y.
func Combine(dks []*PartialDecryptionKey, y data.Vector) (*DecryptionKey, error) {
	if len(dks) != len(y) {
		return nil, errs.Wrap(errs.SizeMismatch, "%d partial keys do not match a %d-vector y", len(dks), len(y))
	}

	idG2 := curve.G2Identity()
	d := DVecG2{&idG2, &idG2}
	for _, dk := range dks {
		d = d.Add(dk.D)
	}

	return &DecryptionKey{Y: y, D: d}, nil
}

// Decrypt combines every client's ciphertext with the decryption key to
// recover e(G1,G2)^<x,y> in GT. The caller feeds the result to the Kangaroo
// solver to recover the integer <x,y>. All ciphertexts must share the same
// label l; mixing labels is a protocol violation.
func Decrypt(cs []CipherText, dk *DecryptionKey, l *label.Label) (bls12381.GT, error) {
	if len(cs) != len(dk.Y) {
		return bls12381.GT{}, errs.Wrap(errs.SizeMismatch, "%d ciphertexts do not match decryption key for %d clients", len(cs), len(dk.Y))
	}
	for i, c := range cs {
		if !c.l.Equal(l) {
			return bls12381.GT{}, errs.Wrap(errs.PreconditionViolation, "ciphertext %d was encrypted under a different label", i)
		}
	}

	sum1 := curve.GTIdentity()
	for i, c := range cs {
		yg2 := curve.G2BaseMul(dk.Y[i])
		p, err := curve.PairSingle(&c.c, &yg2)
		if err != nil {
			return bls12381.GT{}, err
		}
		sum1 = curve.GTMul(&sum1, &p)
	}

	h := hash.DoubleG1(l.Bytes())
	sum2 := curve.GTIdentity()
	for k := 0; k < 2; k++ {
		p, err := curve.PairSingle(&h[k], dk.D[k])
		if err != nil {
			return bls12381.GT{}, err
		}
		sum2 = curve.GTMul(&sum2, &p)
	}

	inv := curve.GTInverse(&sum2)
	return curve.GTMul(&sum1, &inv), nil
}
