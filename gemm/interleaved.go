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
	"sync/atomic"
	"unsafe"

	"github.com/juju/errors"

	"github.com/ajroetker/go-gemm/gemm/kernel"
)

// ErrBNotPacked is returned by Execute when the engine was constructed
// with PretransposeB but PackB has not been called yet. The caller's
// scheduler must sequence PackB before the parallel region.
var ErrBNotPacked = errors.New("gemm: operand B not pretransposed")

// Engine is an opaque handle to a configured GEMM instance, bound to
// exactly one kernel variant at construction. The caller drives
// execution: one Execute call per thread slot, fan-out and join owned
// by the caller's scheduler. Engines are safe for concurrent Execute
// as long as each thread index is used by at most one goroutine at a
// time.
type Engine[TIn Scalar, TAcc Accum] interface {
	// Kernel names the variant this engine was bound to.
	Kernel() string

	// Params returns the configuration the engine was built with.
	Params() Params

	// WorkingSize is the scratch byte count the engine allocated at
	// construction: per-thread packed panels and tile buffers, plus
	// the pretransposed B store when that mode is on. No further
	// allocation happens after construction.
	WorkingSize() int

	// PackB packs every B panel once into engine-owned storage. Only
	// valid on engines constructed with PretransposeB; must complete
	// before any Execute that depends on it.
	PackB(b []TIn, ldb, bMultiStride int) error

	// Execute runs this thread's partition of tile work, writing only
	// the output regions the partition owns. A failed Execute leaves
	// that partition's output undefined and fails the whole GEMM.
	Execute(op Operands[TIn, TAcc], thread, totalThreads int) error
}

// threadScratch is one thread's private packing and tile storage.
// Sized once at construction; never grows.
type threadScratch[TIn Scalar, TAcc Accum] struct {
	panelA []TIn
	panelB []TIn
	tile   []TAcc
}

// interleaved is the blocked engine. It realizes
// C = alpha*op(A)*op(B) + beta*C for every (multi, batch) index by
// invoking the bound kernel once per output tile over panel-packed
// operands.
type interleaved[TIn Scalar, TAcc Accum] struct {
	kern        kernel.Kernel[TIn, TAcc]
	p           Params
	alpha, beta TAcc

	mTiles int
	nTiles int
	units  int

	scratch []threadScratch[TIn, TAcc]

	// Pretransposed mode only: B panels packed once by PackB, read
	// verbatim by every thread afterwards.
	packedB []TIn
	bPacked atomic.Bool
}

func newInterleaved[TIn Scalar, TAcc Accum](kern kernel.Kernel[TIn, TAcc], p Params, alpha, beta TAcc) *interleaved[TIn, TAcc] {
	mr, nr := kern.OutHeight(), kern.OutWidth()
	e := &interleaved[TIn, TAcc]{
		kern:   kern,
		p:      p,
		alpha:  alpha,
		beta:   beta,
		mTiles: (p.M + mr - 1) / mr,
		nTiles: (p.N + nr - 1) / nr,
	}
	e.units = p.Multis * p.Batches * e.mTiles * e.nTiles

	e.scratch = make([]threadScratch[TIn, TAcc], p.MaxThreads)
	for i := range e.scratch {
		e.scratch[i].panelA = make([]TIn, p.K*mr)
		if !p.PretransposeB {
			e.scratch[i].panelB = make([]TIn, p.K*nr)
		}
		e.scratch[i].tile = make([]TAcc, mr*nr)
	}
	if p.PretransposeB {
		e.packedB = make([]TIn, p.Multis*e.nTiles*p.K*nr)
	}
	return e
}

func (e *interleaved[TIn, TAcc]) Kernel() string {
	return e.kern.Name()
}

func (e *interleaved[TIn, TAcc]) Params() Params {
	return e.p
}

func (e *interleaved[TIn, TAcc]) WorkingSize() int {
	var in TIn
	var acc TAcc
	szIn, szAcc := int(unsafe.Sizeof(in)), int(unsafe.Sizeof(acc))

	per := 0
	for i := range e.scratch {
		per += len(e.scratch[i].panelA)*szIn + len(e.scratch[i].panelB)*szIn + len(e.scratch[i].tile)*szAcc
	}
	return per + len(e.packedB)*szIn
}

func (e *interleaved[TIn, TAcc]) PackB(b []TIn, ldb, bMultiStride int) error {
	if !e.p.PretransposeB {
		return errors.NotValidf("PackB on engine without PretransposeB")
	}
	if b == nil {
		return errors.NotValidf("nil B buffer")
	}
	bRows, bCols := storedShape(e.p.K, e.p.N, e.p.TransB)
	if ldb < bCols {
		return errors.NotValidf("LDB=%d for stored row of %d", ldb, bCols)
	}
	if bMultiStride < 0 {
		return errors.NotValidf("negative B multi stride")
	}
	bExtent := (bRows-1)*ldb + bCols
	if need := (e.p.Multis-1)*bMultiStride + bExtent; len(b) < need {
		return errors.NotValidf("B length %d, need %d", len(b), need)
	}

	nr := e.kern.OutWidth()
	panelLen := e.p.K * nr
	for multi := 0; multi < e.p.Multis; multi++ {
		src := b[multi*bMultiStride:]
		for nt := 0; nt < e.nTiles; nt++ {
			dst := e.packedB[(multi*e.nTiles+nt)*panelLen : (multi*e.nTiles+nt+1)*panelLen]
			cols := min(nr, e.p.N-nt*nr)
			packPanelB(dst, src, ldb, e.p.TransB, nt*nr, cols, e.p.K, nr)
		}
	}
	e.bPacked.Store(true)
	return nil
}

func (e *interleaved[TIn, TAcc]) Execute(op Operands[TIn, TAcc], thread, totalThreads int) error {
	if totalThreads < 1 || totalThreads > e.p.MaxThreads {
		return errors.NotValidf("total threads %d with ceiling %d", totalThreads, e.p.MaxThreads)
	}
	if thread < 0 || thread >= totalThreads {
		return errors.NotValidf("thread index %d of %d", thread, totalThreads)
	}
	if err := op.validate(e.p); err != nil {
		return errors.Trace(err)
	}
	if e.p.PretransposeB && !e.bPacked.Load() {
		return ErrBNotPacked
	}

	mr, nr := e.kern.OutHeight(), e.kern.OutWidth()
	s := &e.scratch[thread]
	panelBLen := e.p.K * nr

	// Packed panel identity caches. Units iterate nTile fastest, so
	// the A panel survives a whole N sweep and is repacked only on
	// strip change. Reset per call: operand buffers may differ between
	// calls even though the shape cannot.
	aKey, bKey := -1, -1

	start, end := splitRange(e.units, totalThreads, thread)
	for u := start; u < end; u++ {
		multi, batch, mt, nt := decodeUnit(u, e.p.Batches, e.mTiles, e.nTiles)

		if key := (multi*e.p.Batches+batch)*e.mTiles + mt; key != aKey {
			aBase := multi*op.AMultiStride + batch*op.ABatchStride
			rows := min(mr, e.p.M-mt*mr)
			packPanelA(s.panelA, op.A[aBase:], op.LDA, e.p.TransA, mt*mr, rows, e.p.K, mr)
			aKey = key
		}

		var panelB []TIn
		if e.p.PretransposeB {
			panelB = e.packedB[(multi*e.nTiles+nt)*panelBLen : (multi*e.nTiles+nt+1)*panelBLen]
		} else {
			if key := multi*e.nTiles + nt; key != bKey {
				cols := min(nr, e.p.N-nt*nr)
				packPanelB(s.panelB, op.B[multi*op.BMultiStride:], op.LDB, e.p.TransB, nt*nr, cols, e.p.K, nr)
				bKey = key
			}
			panelB = s.panelB
		}

		e.kern.Run(s.panelA, panelB, s.tile, nr, e.p.K)
		e.applyTile(op, s.tile, multi, batch, mt, nt, mr, nr)
	}
	return nil
}

// applyTile scales the raw kernel tile by alpha/beta and writes the
// valid sub-rectangle into C. Boundary tiles are clamped here; the
// kernel always ran at full shape over zero-padded panels, and only
// the logically valid region ever reaches C.
func (e *interleaved[TIn, TAcc]) applyTile(op Operands[TIn, TAcc], tile []TAcc, multi, batch, mt, nt, mr, nr int) {
	rows := min(mr, e.p.M-mt*mr)
	cols := min(nr, e.p.N-nt*nr)
	cBase := multi*op.CMultiStride + batch*op.CBatchStride + mt*mr*op.LDC + nt*nr

	var zero TAcc
	if e.beta == zero {
		for r := 0; r < rows; r++ {
			cRow := op.C[cBase+r*op.LDC : cBase+r*op.LDC+cols]
			tRow := tile[r*nr : r*nr+cols]
			for c := range cRow {
				cRow[c] = e.alpha * tRow[c]
			}
		}
		return
	}
	for r := 0; r < rows; r++ {
		cRow := op.C[cBase+r*op.LDC : cBase+r*op.LDC+cols]
		tRow := tile[r*nr : r*nr+cols]
		for c := range cRow {
			cRow[c] = e.alpha*tRow[c] + e.beta*cRow[c]
		}
	}
}
