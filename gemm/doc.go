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

// Package gemm provides a runtime-dispatched, blocked matrix
// multiplication engine: C = alpha*op(A)*op(B) + beta*C, repeated over
// independent batch and multi (weight set) dimensions.
//
// Construction inspects a CPU capability probe and binds the engine to
// one fixed-shape micro-kernel variant; the faster dot-product tier is
// chosen when the hardware supports it, a baseline tier otherwise. The
// engine packs operand panels into the kernel's interleaved layout,
// partitions output tiles across caller-driven threads, and clamps
// boundary tiles so C is never written outside its logical bounds.
//
// Example usage:
//
//	ci := cpuinfo.New()
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	p := gemm.Params{M: m, N: n, K: k, Batches: 1, Multis: 1, MaxThreads: pool.NumWorkers()}
//	eng, err := gemm.New[uint8, uint32](ci, p, 1, 0)
//	if err != nil { ... }
//	err = gemm.Run(pool, eng, gemm.Dense[uint8, uint32](p, a, b, c))
//
// The engine never spawns threads itself: Execute(op, thread, total)
// runs one thread's partition, and any parallel-for collaborator (the
// workerpool package, or the caller's own scheduler) owns fan-out and
// join. Work partitions never overlap in their output regions, so no
// locking happens on the hot path.
package gemm
