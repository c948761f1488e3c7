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

package decentralized_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fentec-project/dmcfe/data"
	"github.com/fentec-project/dmcfe/dsum"
	"github.com/fentec-project/dmcfe/innerprod/decentralized"
	"github.com/fentec-project/dmcfe/internal/curve"
	"github.com/fentec-project/dmcfe/label"
)

// session runs full DMCFE setup for n clients and returns their private
// keys, indexed the same way as the DSum public keys used to derive them.
func session(t *testing.T, n int) []*decentralized.PrivateKey {
	t.Helper()

	dsClients := make([]*dsum.KeyPair, n)
	for i := range dsClients {
		kp, err := dsum.ClientSetup(rand.Reader)
		require.NoError(t, err)
		dsClients[i] = kp
	}

	peers := make([]*dsum.PublicKey, n)
	for i, c := range dsClients {
		peers[i] = c.Public
	}

	keys := make([]*decentralized.PrivateKey, n)
	for i, c := range dsClients {
		key, err := decentralized.Setup(rand.Reader, c.Private, c.Public, peers)
		require.NoError(t, err)
		keys[i] = key
	}

	return keys
}

func gtOfExponent(t *testing.T, x *big.Int) bls12381.GT {
	t.Helper()
	g1 := curve.G1Generator()
	g2 := curve.G2Generator()
	base, err := curve.PairSingle(&g1, &g2)
	require.NoError(t, err)
	return curve.GTExp(&base, x)
}

func TestDMCFE_Correctness(t *testing.T) {
	x := data.NewVector([]*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)})
	y := data.NewVector([]*big.Int{big.NewInt(1), big.NewInt(1), big.NewInt(1)})

	n := len(x)
	keys := session(t, n)
	l := label.From("n=3 scenario")

	cs := make([]decentralized.CipherText, n)
	for i := range keys {
		cs[i] = decentralized.Encrypt(keys[i], x[i], l)
	}

	dks := make([]*decentralized.PartialDecryptionKey, n)
	for i := range keys {
		var err error
		dks[i], err = decentralized.PartialKeyGen(keys[i], i, y)
		require.NoError(t, err)
	}

	dk, err := decentralized.Combine(dks, y)
	require.NoError(t, err)

	got, err := decentralized.Decrypt(cs, dk, l)
	require.NoError(t, err)

	want := gtOfExponent(t, big.NewInt(6))
	assert.Equal(t, want, got)
}

func TestDMCFE_ZeroContributionsDecryptToIdentity(t *testing.T) {
	x := data.NewVector([]*big.Int{big.NewInt(0), big.NewInt(0)})
	y := data.NewVector([]*big.Int{big.NewInt(7), big.NewInt(11)})

	n := len(x)
	keys := session(t, n)
	l := label.From("n=2 zero scenario")

	cs := make([]decentralized.CipherText, n)
	for i := range keys {
		cs[i] = decentralized.Encrypt(keys[i], x[i], l)
	}

	dks := make([]*decentralized.PartialDecryptionKey, n)
	for i := range keys {
		var err error
		dks[i], err = decentralized.PartialKeyGen(keys[i], i, y)
		require.NoError(t, err)
	}

	dk, err := decentralized.Combine(dks, y)
	require.NoError(t, err)

	got, err := decentralized.Decrypt(cs, dk, l)
	require.NoError(t, err)

	identity := curve.GTIdentity()
	assert.True(t, curve.GTEqual(&identity, &got))
}

func TestDMCFE_MixedLabelsRejected(t *testing.T) {
	keys := session(t, 2)
	y := data.NewVector([]*big.Int{big.NewInt(1), big.NewInt(1)})
	l1 := label.From("round-1")
	l2 := label.From("round-2")

	c0 := decentralized.Encrypt(keys[0], big.NewInt(1), l1)
	c1 := decentralized.Encrypt(keys[1], big.NewInt(1), l2)

	dks := make([]*decentralized.PartialDecryptionKey, 2)
	for i := range keys {
		var err error
		dks[i], err = decentralized.PartialKeyGen(keys[i], i, y)
		require.NoError(t, err)
	}
	dk, err := decentralized.Combine(dks, y)
	require.NoError(t, err)

	_, err = decentralized.Decrypt([]decentralized.CipherText{c0, c1}, dk, l1)
	assert.Error(t, err)
}

func TestDMCFE_NegativeWeightWraps(t *testing.T) {
	x := data.NewVector([]*big.Int{
		big.NewInt(10), big.NewInt(20), big.NewInt(30), big.NewInt(40), big.NewInt(50),
	})
	y := data.NewVector([]*big.Int{
		big.NewInt(1), big.NewInt(0), big.NewInt(0), big.NewInt(0), big.NewInt(-1),
	})

	n := len(x)
	keys := session(t, n)
	l := label.From("n=5 negative weight scenario")

	cs := make([]decentralized.CipherText, n)
	for i := range keys {
		cs[i] = decentralized.Encrypt(keys[i], x[i], l)
	}

	dks := make([]*decentralized.PartialDecryptionKey, n)
	for i := range keys {
		var err error
		dks[i], err = decentralized.PartialKeyGen(keys[i], i, y)
		require.NoError(t, err)
	}

	dk, err := decentralized.Combine(dks, y)
	require.NoError(t, err)

	got, err := decentralized.Decrypt(cs, dk, l)
	require.NoError(t, err)

	wantExp := new(big.Int).Mod(big.NewInt(10-50), curve.Order)
	want := gtOfExponent(t, wantExp)
	assert.Equal(t, want, got)
}

func TestDMCFE_TSumIsZero(t *testing.T) {
	keys := session(t, 4)

	sum := decentralized.TMatF{}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			sum[i][j] = big.NewInt(0)
		}
	}
	for _, k := range keys {
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				sum[i][j].Add(sum[i][j], k.T[i][j])
			}
		}
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.Equal(t, big.NewInt(0), new(big.Int).Mod(sum[i][j], curve.Order))
		}
	}
}

func TestClient_StateMachine(t *testing.T) {
	n := 3
	clients := make([]*decentralized.Client, n)
	for i := range clients {
		c, err := decentralized.NewClient(rand.Reader, i)
		require.NoError(t, err)
		assert.Equal(t, decentralized.KeysPublished, c.State())
		clients[i] = c
	}

	peers := make([]*dsum.PublicKey, n)
	for i, c := range clients {
		peers[i] = c.PublicKey()
	}

	for _, c := range clients {
		require.NoError(t, c.Setup(rand.Reader, peers))
		assert.Equal(t, decentralized.Ready, c.State())
	}

	l := label.From("client state machine")
	_, err := clients[0].Encrypt(big.NewInt(5), l)
	require.NoError(t, err)

	uninit := &decentralized.Client{}
	_, err = uninit.Encrypt(big.NewInt(1), l)
	assert.Error(t, err)
}
