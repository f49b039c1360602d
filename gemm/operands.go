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

	"github.com/ajroetker/go-gemm/gemm/kernel"
)

// Scalar is the set of operand element types. Alias of the kernel
// package's constraint so callers only import gemm.
type Scalar = kernel.Scalar

// Accum is the set of accumulator/output element types.
type Accum = kernel.Accum

// Operands are the caller-owned buffers for one engine invocation.
// All strides are in elements. The engine borrows these views for the
// duration of the call and never takes ownership; A and B are read
// only, and each region of C is written by exactly one thread.
//
// B deliberately has no batch stride: the multi dimension selects a
// weight set, and every batch within it reuses the same B.
type Operands[TIn Scalar, TAcc Accum] struct {
	A            []TIn
	LDA          int // row stride of stored A
	ABatchStride int
	AMultiStride int

	B            []TIn
	LDB          int // row stride of stored B
	BMultiStride int

	C            []TAcc
	LDC          int // row stride of C
	CBatchStride int
	CMultiStride int
}

// Dense builds Operands for tightly packed row-major buffers laid out
// [multi][batch][rows][cols] (B: [multi][rows][cols]), honoring the
// transpose flags in p.
func Dense[TIn Scalar, TAcc Accum](p Params, a, b []TIn, c []TAcc) Operands[TIn, TAcc] {
	lda := p.K
	if p.TransA {
		lda = p.M
	}
	ldb := p.N
	if p.TransB {
		ldb = p.K
	}
	return Operands[TIn, TAcc]{
		A: a, LDA: lda, ABatchStride: p.M * p.K, AMultiStride: p.Batches * p.M * p.K,
		B: b, LDB: ldb, BMultiStride: p.K * p.N,
		C: c, LDC: p.N, CBatchStride: p.M * p.N, CMultiStride: p.Batches * p.M * p.N,
	}
}

// storedShape returns the stored (rows, cols) of an operand given its
// logical shape and transpose flag.
func storedShape(rows, cols int, trans bool) (int, int) {
	if trans {
		return cols, rows
	}
	return rows, cols
}

// validate checks the execute-time buffer contract against the
// configured shape: non-nil buffers, strides at least as wide as the
// stored row, and lengths covering every addressed element. Violations
// are fatal to the call.
func (op Operands[TIn, TAcc]) validate(p Params) error {
	if op.A == nil || op.B == nil || op.C == nil {
		return errors.NotValidf("nil operand buffer")
	}
	if op.ABatchStride < 0 || op.AMultiStride < 0 || op.BMultiStride < 0 ||
		op.CBatchStride < 0 || op.CMultiStride < 0 {
		return errors.NotValidf("negative operand stride")
	}

	aRows, aCols := storedShape(p.M, p.K, p.TransA)
	if op.LDA < aCols {
		return errors.NotValidf("LDA=%d for stored row of %d", op.LDA, aCols)
	}
	aExtent := (aRows-1)*op.LDA + aCols
	if need := (p.Multis-1)*op.AMultiStride + (p.Batches-1)*op.ABatchStride + aExtent; len(op.A) < need {
		return errors.NotValidf("A length %d, need %d", len(op.A), need)
	}

	bRows, bCols := storedShape(p.K, p.N, p.TransB)
	if op.LDB < bCols {
		return errors.NotValidf("LDB=%d for stored row of %d", op.LDB, bCols)
	}
	bExtent := (bRows-1)*op.LDB + bCols
	if need := (p.Multis-1)*op.BMultiStride + bExtent; len(op.B) < need {
		return errors.NotValidf("B length %d, need %d", len(op.B), need)
	}

	if op.LDC < p.N {
		return errors.NotValidf("LDC=%d for N=%d", op.LDC, p.N)
	}
	cExtent := (p.M-1)*op.LDC + p.N
	if need := (p.Multis-1)*op.CMultiStride + (p.Batches-1)*op.CBatchStride + cExtent; len(op.C) < need {
		return errors.NotValidf("C length %d, need %d", len(op.C), need)
	}
	return nil
}
