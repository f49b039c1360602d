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

package kernel

// F32Wide12x8 is the wide float32 kernel for FMA-capable CPUs. The K
// loop is unrolled 4x for instruction-level parallelism; accumulators
// for the whole tile stay live across the loop.
type F32Wide12x8 struct{}

func (F32Wide12x8) Name() string   { return "f32_wide_12x8" }
func (F32Wide12x8) OutHeight() int { return DotHeight }
func (F32Wide12x8) OutWidth() int  { return DotWidth }

func (F32Wide12x8) Run(packedA, packedB []float32, out []float32, outStride, kLen int) {
	const mr, nr = DotHeight, DotWidth
	var acc [mr * nr]float32

	k := 0
	for ; k+4 <= kLen; k += 4 {
		a0 := packedA[(k+0)*mr : (k+0)*mr+mr]
		a1 := packedA[(k+1)*mr : (k+1)*mr+mr]
		a2 := packedA[(k+2)*mr : (k+2)*mr+mr]
		a3 := packedA[(k+3)*mr : (k+3)*mr+mr]
		b0 := packedB[(k+0)*nr : (k+0)*nr+nr]
		b1 := packedB[(k+1)*nr : (k+1)*nr+nr]
		b2 := packedB[(k+2)*nr : (k+2)*nr+nr]
		b3 := packedB[(k+3)*nr : (k+3)*nr+nr]

		for r := 0; r < mr; r++ {
			ar0, ar1, ar2, ar3 := a0[r], a1[r], a2[r], a3[r]
			row := acc[r*nr : r*nr+nr]
			for c := 0; c < nr; c++ {
				row[c] += ar0*b0[c] + ar1*b1[c] + ar2*b2[c] + ar3*b3[c]
			}
		}
	}

	for ; k < kLen; k++ {
		ak := packedA[k*mr : k*mr+mr]
		bk := packedB[k*nr : k*nr+nr]
		for r := 0; r < mr; r++ {
			ar := ak[r]
			row := acc[r*nr : r*nr+nr]
			for c := 0; c < nr; c++ {
				row[c] += ar * bk[c]
			}
		}
	}

	for r := 0; r < mr; r++ {
		copy(out[r*outStride:r*outStride+nr], acc[r*nr:r*nr+nr])
	}
}

// F32Base4x4 is the baseline float32 kernel.
type F32Base4x4 struct{}

func (F32Base4x4) Name() string   { return "f32_4x4" }
func (F32Base4x4) OutHeight() int { return BaseHeight }
func (F32Base4x4) OutWidth() int  { return BaseWidth }

func (F32Base4x4) Run(packedA, packedB []float32, out []float32, outStride, kLen int) {
	const mr, nr = BaseHeight, BaseWidth
	var acc [mr * nr]float32

	for k := 0; k < kLen; k++ {
		ak := packedA[k*mr : k*mr+mr]
		bk := packedB[k*nr : k*nr+nr]
		for r := 0; r < mr; r++ {
			ar := ak[r]
			row := acc[r*nr : r*nr+nr]
			for c := 0; c < nr; c++ {
				row[c] += ar * bk[c]
			}
		}
	}

	for r := 0; r < mr; r++ {
		copy(out[r*outStride:r*outStride+nr], acc[r*nr:r*nr+nr])
	}
}
