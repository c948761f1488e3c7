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

package mcfe_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fentec-project/dmcfe/data"
	"github.com/fentec-project/dmcfe/innerprod/mcfe"
	"github.com/fentec-project/dmcfe/internal/curve"
)

func vec(xs ...int64) data.Vector {
	v := make(data.Vector, len(xs))
	for i, x := range xs {
		v[i] = big.NewInt(x)
	}
	return v
}

func TestMCFE_Correctness(t *testing.T) {
	n, m := 3, 2
	x := []data.Vector{vec(1, 2), vec(3, 4), vec(5, 6)}
	y := []data.Vector{vec(1, 1), vec(1, 1), vec(1, 1)}
	l := uint64(7)

	eks, err := mcfe.Setup(rand.Reader, n, m)
	require.NoError(t, err)

	ciphertexts := make([]data.VectorG1, n)
	dks := make([]*mcfe.PartialDecryptionKey, n)
	for i := 0; i < n; i++ {
		ciphertexts[i], err = mcfe.Encrypt(eks[i], x[i], l)
		require.NoError(t, err)
		dks[i], err = mcfe.PartialKeyGen(eks[i], y[i])
		require.NoError(t, err)
	}

	dk, err := mcfe.KeyComb(dks)
	require.NoError(t, err)

	got, err := mcfe.Decrypt(ciphertexts, dk, l)
	require.NoError(t, err)

	want := curve.G1BaseMul(big.NewInt(21))
	assert.Equal(t, curve.CompressG1(&want), curve.CompressG1(&got))
}

func TestMCFE_EncryptSizeMismatch(t *testing.T) {
	eks, err := mcfe.Setup(rand.Reader, 1, 3)
	require.NoError(t, err)

	_, err = mcfe.Encrypt(eks[0], vec(1, 2), 0)
	assert.Error(t, err)
}

func TestMCFE_DecryptZero(t *testing.T) {
	n, m := 2, 1
	x := []data.Vector{vec(0), vec(0)}
	y := []data.Vector{vec(1), vec(1)}
	l := uint64(42)

	eks, err := mcfe.Setup(rand.Reader, n, m)
	require.NoError(t, err)

	ciphertexts := make([]data.VectorG1, n)
	dks := make([]*mcfe.PartialDecryptionKey, n)
	for i := 0; i < n; i++ {
		ciphertexts[i], err = mcfe.Encrypt(eks[i], x[i], l)
		require.NoError(t, err)
		dks[i], err = mcfe.PartialKeyGen(eks[i], y[i])
		require.NoError(t, err)
	}

	dk, err := mcfe.KeyComb(dks)
	require.NoError(t, err)

	got, err := mcfe.Decrypt(ciphertexts, dk, l)
	require.NoError(t, err)

	identity := curve.G1Identity()
	assert.Equal(t, curve.CompressG1(&identity), curve.CompressG1(&got))
}
