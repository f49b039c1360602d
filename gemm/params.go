// Copyright 2026 go-gemm Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gemm

import "github.com/juju/errors"

// Params is the problem shape an engine is constructed for. It is
// immutable after construction; shape changes require a new engine.
type Params struct {
	// M, N, K are the logical GEMM dimensions: op(A) is M x K,
	// op(B) is K x N, C is M x N.
	M, N, K int

	// Batches is the number of independent inputs multiplied against
	// shared weights. Multis is the number of independent weight sets
	// (grouped computation); operand B carries a multi stride but no
	// batch stride.
	Batches int
	Multis  int

	// TransA and TransB mark an operand as stored transposed: with
	// TransA set, A is laid out K x M and op(A)[i][k] reads A[k][i].
	TransA, TransB bool

	// MaxThreads is the partitioning ceiling. Execute accepts any
	// totalThreads in [1, MaxThreads]; scratch is sized for the
	// ceiling once, at construction.
	MaxThreads int

	// PretransposeB promises that B's contents and shape are stable
	// for the engine's lifetime. Panels are then packed once, by
	// PackB, and reused verbatim across Execute calls.
	PretransposeB bool
}

// Validate reports the first configuration error. Zero-sized problems
// are rejected outright; there is no empty-GEMM fast path.
func (p Params) Validate() error {
	switch {
	case p.M < 1:
		return errors.NotValidf("dimension M=%d", p.M)
	case p.N < 1:
		return errors.NotValidf("dimension N=%d", p.N)
	case p.K < 1:
		return errors.NotValidf("dimension K=%d", p.K)
	case p.Batches < 1:
		return errors.NotValidf("batches=%d", p.Batches)
	case p.Multis < 1:
		return errors.NotValidf("multis=%d", p.Multis)
	case p.MaxThreads < 1:
		return errors.NotValidf("max threads=%d", p.MaxThreads)
	}
	return nil
}
