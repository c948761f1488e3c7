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
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fentec-project/dmcfe/internal/curve"
	"github.com/fentec-project/dmcfe/internal/dlog"
)

func TestBSGS_RoundTrip(t *testing.T) {
	for _, x := range []int64{0, 1, 5, 21, 63} {
		p := curve.G1BaseMul(big.NewInt(x))
		got, err := dlog.BSGS(&p, 8, 8)
		require.NoError(t, err)
		assert.Equal(t, uint64(x), got)
	}
}

func TestBSGS_NotFound(t *testing.T) {
	p := curve.G1BaseMul(big.NewInt(100))
	_, err := dlog.BSGS(&p, 4, 4)
	assert.Error(t, err)
}

func TestBSGS_RejectsZeroBounds(t *testing.T) {
	p := curve.G1BaseMul(big.NewInt(1))
	_, err := dlog.BSGS(&p, 0, 8)
	assert.Error(t, err)
}
