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

package data

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/fentec-project/dmcfe/internal/curve"
)

// VectorG1 is a vector of G1 points, the image of a Vector under
// coordinate-wise scalar-base multiplication.
type VectorG1 []*bls12381.G1Jac

// Add adds two VectorG1 instances coordinate-wise.
func (v VectorG1) Add(other VectorG1) VectorG1 {
	sum := make(VectorG1, len(v))
	for i := range v {
		p := curve.G1Add(v[i], other[i])
		sum[i] = &p
	}
	return sum
}

// Dot contracts v against a field Vector: sum_i y[i]*v[i]. Used to combine
// per-client partial decryption keys into a weighted group-element image
// without ever exponentiating the decrypted value itself.
func (v VectorG1) Dot(y Vector) bls12381.G1Jac {
	acc := curve.G1Identity()
	for i := range v {
		term := curve.G1ScalarMul(v[i], y[i])
		acc = curve.G1Add(&acc, &term)
	}
	return acc
}

// VectorG2 is a vector of G2 points, the image of a Vector under
// coordinate-wise scalar-base multiplication.
type VectorG2 []*bls12381.G2Jac

// Add adds two VectorG2 instances coordinate-wise.
func (v VectorG2) Add(other VectorG2) VectorG2 {
	sum := make(VectorG2, len(v))
	for i := range v {
		p := curve.G2Add(v[i], other[i])
		sum[i] = &p
	}
	return sum
}

// MatrixG1 wraps a slice of VectorG1 rows, the image of a Matrix under
// entry-wise scalar-base multiplication in G1.
type MatrixG1 []VectorG1

// Rows returns the number of rows of m.
func (m MatrixG1) Rows() int {
	return len(m)
}

// Cols returns the number of columns of m.
func (m MatrixG1) Cols() int {
	if len(m) != 0 {
		return len(m[0])
	}
	return 0
}

// MatrixG2 wraps a slice of VectorG2 rows, the image of a Matrix under
// entry-wise scalar-base multiplication in G2.
type MatrixG2 []VectorG2

// Rows returns the number of rows of m.
func (m MatrixG2) Rows() int {
	return len(m)
}

// Cols returns the number of columns of m.
func (m MatrixG2) Cols() int {
	if len(m) != 0 {
		return len(m[0])
	}
	return 0
}
