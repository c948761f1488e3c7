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

package dsum_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fentec-project/dmcfe/dsum"
	"github.com/fentec-project/dmcfe/internal/curve"
	"github.com/fentec-project/dmcfe/label"
)

func setupClients(t *testing.T, n int) []*dsum.KeyPair {
	t.Helper()
	clients := make([]*dsum.KeyPair, n)
	for i := range clients {
		kp, err := dsum.ClientSetup(rand.Reader)
		require.NoError(t, err)
		clients[i] = kp
	}
	return clients
}

func peerKeys(clients []*dsum.KeyPair) []*dsum.PublicKey {
	pks := make([]*dsum.PublicKey, len(clients))
	for i, c := range clients {
		pks[i] = c.Public
	}
	return pks
}

func Test_DSum_Correctness(t *testing.T) {
	for n := 2; n <= 16; n++ {
		clients := setupClients(t, n)
		pks := peerKeys(clients)
		l := label.From("a dsum round")

		xs := make([]*big.Int, n)
		sumX := big.NewInt(0)
		ciphertexts := make([]dsum.CipherText, n)
		for i := 0; i < n; i++ {
			x, err := curve.RandomScalar(rand.Reader)
			require.NoError(t, err)
			xs[i] = x
			sumX.Add(sumX, x)
			ciphertexts[i] = dsum.Encode(x, clients[i].Private, clients[i].Public, pks, l)
		}
		sumX.Mod(sumX, curve.Order)

		combined := dsum.Combine(ciphertexts)
		assert.Equal(t, sumX, combined, "n=%d: combined sum should equal sum of contributions", n)
	}
}

func Test_DSum_Masking(t *testing.T) {
	n := 5
	clients := setupClients(t, n)
	pks := peerKeys(clients)
	l := label.From("masking round")

	xs := make([]*big.Int, n)
	for i := range xs {
		x, err := curve.RandomScalar(rand.Reader)
		require.NoError(t, err)
		xs[i] = x
	}

	encode := func(xs []*big.Int) *big.Int {
		cs := make([]dsum.CipherText, n)
		for i := range cs {
			cs[i] = dsum.Encode(xs[i], clients[i].Private, clients[i].Public, pks, l)
		}
		return dsum.Combine(cs)
	}

	before := encode(xs)

	delta := big.NewInt(42)
	xsPerturbed := make([]*big.Int, n)
	copy(xsPerturbed, xs)
	xsPerturbed[2] = new(big.Int).Add(xs[2], delta)

	after := encode(xsPerturbed)

	diff := new(big.Int).Sub(after, before)
	diff.Mod(diff, curve.Order)
	assert.Equal(t, delta, diff, "perturbing one contribution by delta should shift the combined sum by delta")
}

func Test_DSum_DifferentLabelsDisagree(t *testing.T) {
	n := 3
	clients := setupClients(t, n)
	pks := peerKeys(clients)

	x := big.NewInt(7)
	l1 := label.From("round-1")
	l2 := label.From("round-2")

	c1 := dsum.Encode(x, clients[0].Private, clients[0].Public, pks, l1)
	c2 := dsum.Encode(x, clients[0].Private, clients[0].Public, pks, l2)

	assert.NotEqual(t, c1.Scalar(), c2.Scalar(), "the same payload under different labels should encode differently")
}
