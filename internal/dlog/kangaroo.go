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

package dlog

import (
	"crypto/rand"
	"io"
	"math/big"
	"sort"
	"sync"
	"sync/atomic"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/fentec-project/dmcfe/hash"
	"github.com/fentec-project/dmcfe/internal/curve"
	"github.com/fentec-project/dmcfe/internal/errs"
)

// Jumps is a fixed set of scalars used to deterministically pick the next
// step of a kangaroo walk from its current position.
type Jumps []*big.Int

// Table maps a distinguished point's fingerprint to the scalar exponent a
// tame kangaroo reached it at. It is read-only once built; concurrent
// lookups are safe.
type Table map[[32]byte]*big.Int

// Params bounds one kangaroo run.
type Params struct {
	// L is the exclusive upper bound on the recovered exponent.
	L *big.Int
	// T is the target number of distinguished points kept in the table.
	T int
	// W is the mean walk length, approximately alpha*sqrt(L/T).
	W int
	// K is the number of distinct jumps.
	K int
	// U is the oversampling factor used when building the table: U*T
	// walks are launched to retain the best T.
	U int
	// N is the number of parallel workers.
	N int
	// Retries bounds how many independent solve rounds are attempted
	// before giving up. At least 1.
	Retries int
}

// StopFlag is the single atomic signal shared by every worker in a solve:
// the first worker to verify a hit sets it, and every other worker checks
// it between jumps. A caller may also hold a StopFlag to cancel a solve in
// progress.
type StopFlag struct {
	v int32
}

// NewStopFlag returns an unset flag.
func NewStopFlag() *StopFlag {
	return &StopFlag{}
}

// Stop sets the flag.
func (f *StopFlag) Stop() {
	atomic.StoreInt32(&f.v, 1)
}

// Stopped reports whether the flag has been set.
func (f *StopFlag) Stopped() bool {
	return atomic.LoadInt32(&f.v) != 0
}

// GenerateJumps samples K scalars uniformly from [1, L).
func GenerateJumps(rnd io.Reader, params Params) (Jumps, error) {
	if params.K <= 0 {
		return nil, errs.Wrap(errs.PreconditionViolation, "K must be positive, got %d", params.K)
	}

	lMinusOne := new(big.Int).Sub(params.L, big.NewInt(1))
	jumps := make(Jumps, params.K)
	for i := range jumps {
		f, err := rand.Int(rnd, lMinusOne)
		if err != nil {
			return nil, err
		}
		jumps[i] = f.Add(f, big.NewInt(1))
	}
	return jumps, nil
}

func gtBase() (bls12381.GT, error) {
	g1 := curve.G1Generator()
	g2 := curve.G2Generator()
	return curve.PairSingle(&g1, &g2)
}

func fingerprint(p *bls12381.GT) [32]byte {
	return hash.Digest32(curve.GTBytes(p))
}

// distinguishedBits returns the bit-width d such that roughly 1 in 2^d
// points is distinguished, chosen so the expected density of distinguished
// points among all points is T/L: 2^d approximates L/T.
func distinguishedBits(params Params) uint {
	if params.T <= 0 {
		return 0
	}
	density := new(big.Int).Div(params.L, big.NewInt(int64(params.T)))
	if density.Sign() <= 0 {
		return 0
	}
	return uint(density.BitLen())
}

func isDistinguished(p *bls12381.GT, params Params) bool {
	d := distinguishedBits(params)
	if d == 0 {
		return true
	}
	digest := fingerprint(p)

	fullBytes := d / 8
	rem := d % 8
	for i := uint(0); i < fullBytes; i++ {
		if digest[31-i] != 0 {
			return false
		}
	}
	if rem > 0 {
		b := digest[31-fullBytes]
		mask := byte(1<<rem - 1)
		if b&mask != 0 {
			return false
		}
	}
	return true
}

// jumpIndex selects one of K jumps from a point's fingerprint.
func jumpIndex(p *bls12381.GT, k int) int {
	digest := fingerprint(p)
	n := new(big.Int).SetBytes(digest[:])
	return int(n.Mod(n, big.NewInt(int64(k))).Int64())
}

type walkResult struct {
	digest [32]byte
	scalar *big.Int
	steps  int
}

// BuildTable runs the offline tame-kangaroo phase: U*T walks of up to W
// jumps each, keeping the T distinguished points reached by the shortest
// walks.
func BuildTable(rnd io.Reader, params Params, jumps Jumps) (Table, error) {
	if params.T <= 0 || params.W <= 0 || params.U <= 0 || params.N <= 0 || len(jumps) == 0 {
		return nil, errs.Wrap(errs.PreconditionViolation, "kangaroo table-build parameters must all be positive")
	}

	g, err := gtBase()
	if err != nil {
		return nil, err
	}

	walks := params.U * params.T
	results := make(chan *walkResult, walks)
	sem := make(chan struct{}, params.N)
	var wg sync.WaitGroup

	for j := 0; j < walks; j++ {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			a, err := rand.Int(rnd, params.L)
			if err != nil {
				results <- nil
				return
			}
			pt := curve.GTExp(&g, a)
			scalar := new(big.Int).Set(a)

			for s := 0; s < params.W; s++ {
				if isDistinguished(&pt, params) {
					results <- &walkResult{digest: fingerprint(&pt), scalar: scalar, steps: s}
					return
				}
				step := jumps[jumpIndex(&pt, len(jumps))]
				stepPt := curve.GTExp(&g, step)
				pt = curve.GTMul(&pt, &stepPt)
				scalar = new(big.Int).Add(scalar, step)
			}
			results <- nil
		}()
	}

	wg.Wait()
	close(results)

	candidates := make([]*walkResult, 0, walks)
	for r := range results {
		if r != nil {
			candidates = append(candidates, r)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].steps != candidates[j].steps {
			return candidates[i].steps < candidates[j].steps
		}
		return string(candidates[i].digest[:]) < string(candidates[j].digest[:])
	})

	table := make(Table, params.T)
	for i := 0; i < len(candidates) && len(table) < params.T; i++ {
		if _, ok := table[candidates[i].digest]; ok {
			continue
		}
		table[candidates[i].digest] = candidates[i].scalar
	}

	return table, nil
}

// Solve recovers x such that e(G1,G2)^x == h, x in [0, params.L), given a
// table built by BuildTable over the same jumps. stop may be nil; if
// provided, it both signals cancellation to Solve and is set by Solve once
// a verified hit is found, so any caller holding it observes completion.
func Solve(rnd io.Reader, h bls12381.GT, table Table, jumps Jumps, params Params, stop *StopFlag) (*big.Int, error) {
	if params.T <= 0 || params.W <= 0 || params.N <= 0 || len(jumps) == 0 {
		return nil, errs.Wrap(errs.PreconditionViolation, "kangaroo solve parameters must all be positive")
	}
	retries := params.Retries
	if retries < 1 {
		retries = 1
	}

	g, err := gtBase()
	if err != nil {
		return nil, err
	}

	if stop != nil && stop.Stopped() {
		return nil, errs.Wrap(errs.NotFound, "solve was cancelled before starting")
	}

	for attempt := 0; attempt < retries; attempt++ {
		found := NewStopFlag()
		var result *big.Int
		var mu sync.Mutex
		var wg sync.WaitGroup

		for w := 0; w < params.N; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				b, err := rand.Int(rnd, params.L)
				if err != nil {
					return
				}
				bg := curve.GTExp(&g, b)
				pt := curve.GTMul(&h, &bg)
				dist := new(big.Int).Set(b)

				for s := 0; s < params.W; s++ {
					if found.Stopped() || (stop != nil && stop.Stopped()) {
						return
					}
					if isDistinguished(&pt, params) {
						if t, ok := table[fingerprint(&pt)]; ok {
							x := new(big.Int).Sub(t, dist)
							x.Mod(x, curve.Order)
							check := curve.GTExp(&g, x)
							if curve.GTEqual(&check, &h) {
								mu.Lock()
								if result == nil {
									result = x
								}
								mu.Unlock()
								found.Stop()
								return
							}
						}
						return
					}
					step := jumps[jumpIndex(&pt, len(jumps))]
					stepPt := curve.GTExp(&g, step)
					pt = curve.GTMul(&pt, &stepPt)
					dist.Add(dist, step)
				}
			}()
		}
		wg.Wait()

		if result != nil {
			return result, nil
		}
		if stop != nil && stop.Stopped() {
			return nil, errs.Wrap(errs.NotFound, "solve was cancelled")
		}
	}

	return nil, errs.Wrap(errs.NotFound, "kangaroo exhausted %d retries", retries)
}
