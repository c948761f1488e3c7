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

// Package dsum implements the decentralized sum subprotocol: a
// non-interactive, one-shot masking scheme where n clients each publish a
// masked contribution under a shared label, and the sum of masks cancels
// once all contributions are combined. DMCFE uses it to let clients jointly
// derive a matrix that sums to zero without a trusted dealer.
package dsum

import (
	"bytes"
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/fentec-project/dmcfe/hash"
	"github.com/fentec-project/dmcfe/internal/curve"
	"github.com/fentec-project/dmcfe/label"
)

// PrivateKey is a DSum client's secret scalar.
type PrivateKey struct {
	sk *big.Int
}

// PublicKey is a DSum client's public point pk = sk*G1.
type PublicKey struct {
	pk bls12381.G1Jac
}

// KeyPair bundles a client's private and public DSum key.
type KeyPair struct {
	Private *PrivateKey
	Public  *PublicKey
}

// CipherText is the scalar a DSum client emits for one round.
type CipherText struct {
	c *big.Int
}

// ClientSetup samples a fresh key pair: sk uniform in F, pk = sk*G1.
func ClientSetup(rand io.Reader) (*KeyPair, error) {
	sk, err := curve.RandomScalar(rand)
	if err != nil {
		return nil, err
	}
	pk := curve.G1BaseMul(sk)
	return &KeyPair{
		Private: &PrivateKey{sk: sk},
		Public:  &PublicKey{pk: pk},
	}, nil
}

// compressed returns the canonical compressed encoding of a public key,
// the only representation independent implementations can agree to order
// by, since Jacobian coordinates are not canonical.
func (pk *PublicKey) compressed() [48]byte {
	return curve.CompressG1(&pk.pk)
}

// Equal reports whether pk and other are the same public key.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	a, b := pk.compressed(), other.compressed()
	return a == b
}

// sharedPoint returns ski*pkj, the Diffie-Hellman point shared by this
// client (holding ski) and the peer owning pkj.
func sharedPoint(ski *PrivateKey, pkj *PublicKey) bls12381.G1Jac {
	return curve.G1ScalarMul(&pkj.pk, ski.sk)
}

// pairwiseMask computes h(L, ski, pkj): zero against oneself, otherwise a
// signed hash of the two keys (ordered by their compressed encoding) and
// their shared DH point.
func pairwiseMask(l *label.Label, ski *PrivateKey, pkSelf, pkj *PublicKey) *big.Int {
	if pkSelf.Equal(pkj) {
		return big.NewInt(0)
	}

	shared := sharedPoint(ski, pkj)
	sharedBytes := curve.CompressG1(&shared)

	selfBytes := pkSelf.compressed()
	peerBytes := pkj.compressed()

	if bytes.Compare(selfBytes[:], peerBytes[:]) < 0 {
		// pkj is "greater than" pk_self: positive contribution.
		v := hash.ToF(selfBytes[:], peerBytes[:], sharedBytes[:], l.Bytes())
		return v
	}
	// pkj is "smaller than or equal to" pk_self: negative contribution.
	v := hash.ToF(peerBytes[:], selfBytes[:], sharedBytes[:], l.Bytes())
	return new(big.Int).Neg(v)
}

// Encode masks payload x under this client's key, the full peer public key
// list (including the client's own key) and a label. The self term
// contributes zero by construction, and for any two distinct peers i, j
// their contributions to the sum are equal and opposite, so the masks
// cancel once every client's ciphertext is combined.
func Encode(x *big.Int, ski *PrivateKey, pkSelf *PublicKey, peers []*PublicKey, l *label.Label) CipherText {
	acc := new(big.Int).Set(x)
	for _, pkj := range peers {
		acc.Add(acc, pairwiseMask(l, ski, pkSelf, pkj))
	}
	return CipherText{c: new(big.Int).Mod(acc, curve.Order)}
}

// Combine sums the ciphertexts produced by Encode across all clients for a
// single label, cancelling every pairwise mask.
func Combine(cs []CipherText) *big.Int {
	sum := new(big.Int)
	for _, c := range cs {
		sum.Add(sum, c.c)
	}
	return sum.Mod(sum, curve.Order)
}

// Scalar returns the underlying ciphertext scalar.
func (c CipherText) Scalar() *big.Int {
	return new(big.Int).Set(c.c)
}

// Scalar returns the underlying private scalar.
func (sk *PrivateKey) Scalar() *big.Int {
	return new(big.Int).Set(sk.sk)
}

// Point returns the underlying public point.
func (pk *PublicKey) Point() bls12381.G1Jac {
	return pk.pk
}
