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

package dlog_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fentec-project/dmcfe/internal/curve"
	"github.com/fentec-project/dmcfe/internal/dlog"
)

// smallParams picks T relative to L so the distinguished-point density
// T/L matches a walk length around W: too sparse (T too small) and a
// walk of only W jumps rarely lands on a distinguished point at all.
func smallParams() dlog.Params {
	return dlog.Params{
		L:       big.NewInt(1 << 12),
		T:       1 << 10,
		W:       16,
		K:       8,
		U:       4,
		N:       4,
		Retries: 8,
	}
}

func TestKangaroo_RoundTrip(t *testing.T) {
	params := smallParams()
	jumps, err := dlog.GenerateJumps(rand.Reader, params)
	require.NoError(t, err)

	table, err := dlog.BuildTable(rand.Reader, params, jumps)
	require.NoError(t, err)
	require.NotEmpty(t, table)

	g1 := curve.G1Generator()
	g2 := curve.G2Generator()
	base, err := curve.PairSingle(&g1, &g2)
	require.NoError(t, err)

	for _, x := range []int64{0, 1, 17, 200, 4000} {
		h := curve.GTExp(&base, big.NewInt(x))
		got, err := dlog.Solve(rand.Reader, h, table, jumps, params, nil)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(x), got)
	}
}

func TestKangaroo_CancelledSolveReturnsNotFound(t *testing.T) {
	params := smallParams()
	jumps, err := dlog.GenerateJumps(rand.Reader, params)
	require.NoError(t, err)

	table, err := dlog.BuildTable(rand.Reader, params, jumps)
	require.NoError(t, err)

	g1 := curve.G1Generator()
	g2 := curve.G2Generator()
	base, err := curve.PairSingle(&g1, &g2)
	require.NoError(t, err)
	h := curve.GTExp(&base, big.NewInt(3000))

	stop := dlog.NewStopFlag()
	stop.Stop()

	_, err = dlog.Solve(rand.Reader, h, table, jumps, params, stop)
	assert.Error(t, err)
}

func TestKangaroo_RejectsNonPositiveParams(t *testing.T) {
	_, err := dlog.GenerateJumps(rand.Reader, dlog.Params{L: big.NewInt(16), K: 0})
	assert.Error(t, err)

	_, err = dlog.BuildTable(rand.Reader, dlog.Params{L: big.NewInt(16)}, dlog.Jumps{big.NewInt(1)})
	assert.Error(t, err)

	_, err = dlog.Solve(rand.Reader, curve.GTIdentity(), dlog.Table{}, dlog.Jumps{}, dlog.Params{L: big.NewInt(16)}, nil)
	assert.Error(t, err)
}
