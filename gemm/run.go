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

import (
	"github.com/juju/errors"

	"github.com/ajroetker/go-gemm/gemm/cpuinfo"
	"github.com/ajroetker/go-gemm/gemm/workerpool"
)

// Run fans an engine out across the pool, one Execute call per thread
// slot, and joins. The thread count is the smaller of the pool width
// and the engine's configured ceiling. Pretransposed engines must have
// PackB'd before Run; the fan-out join is the only barrier Run adds.
func Run[TIn Scalar, TAcc Accum](pool *workerpool.Pool, e Engine[TIn, TAcc], op Operands[TIn, TAcc]) error {
	threads := min(pool.NumWorkers(), e.Params().MaxThreads)
	return errors.Trace(pool.FanOut(threads, func(thread, total int) error {
		return e.Execute(op, thread, total)
	}))
}

// Gemm is the one-shot convenience path: construct an engine for p,
// pack B when pretransposition is hinted, and run it over densely
// packed row-major buffers. Callers that reuse a shape should hold the
// Engine themselves and call Run per invocation instead.
func Gemm[TIn Scalar, TAcc Accum](ci *cpuinfo.CPUInfo, pool *workerpool.Pool, p Params, alpha, beta TAcc, a, b []TIn, c []TAcc) error {
	e, err := New[TIn, TAcc](ci, p, alpha, beta)
	if err != nil {
		return errors.Trace(err)
	}
	op := Dense[TIn, TAcc](p, a, b, c)
	if p.PretransposeB {
		if err := e.PackB(b, op.LDB, op.BMultiStride); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(Run(pool, e, op))
}
