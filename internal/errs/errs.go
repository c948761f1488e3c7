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

// Package errs defines the typed error kinds shared by the DSum, MCFE,
// DMCFE and dlog packages.
package errs

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// Kind is a sentinel identifying why an operation failed.
var (
	// SizeMismatch: input dimensions are inconsistent (linear algebra, MCFE keygen).
	SizeMismatch = stderrors.New("size mismatch")
	// PreconditionViolation: a caller-supplied parameter is out of the
	// range an operation supports (e.g. BSGS's m*n bound), or a call was
	// made out of sequence (e.g. ciphertexts mixing labels in a decrypt
	// batch, a client calling Encrypt before Setup).
	PreconditionViolation = stderrors.New("precondition violation")
	// HashCollision: BSGS precomputation found two distinct indices
	// hashing to the same digest.
	HashCollision = stderrors.New("hash collision during precomputation")
	// NotFound: a solver (BSGS, Kangaroo) exhausted its budget without a hit.
	NotFound = stderrors.New("discrete logarithm not found within bound")
	// Corrupt: a persisted table/jumps file is truncated or malformed.
	Corrupt = stderrors.New("corrupt table or jumps data")
	// IO: a filesystem error occurred while reading/writing table/jumps data.
	IO = stderrors.New("i/o error")
)

// Wrap attaches context to a sentinel error kind, preserving errors.Is
// matching against the kind.
func Wrap(kind error, format string, args ...interface{}) error {
	return errors.Wrapf(kind, format, args...)
}
