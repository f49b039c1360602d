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

// U8U32Dot12x8 is the dot-product tier uint8 kernel. It consumes the
// reduction dimension in groups of four, mirroring the lane arithmetic
// of widening 8-bit dot product instructions (UDOT / VPDPBUSD): four
// uint8 products summed into a uint32 accumulator per step. uint32
// accumulation wraps; the result is bit-identical to the baseline
// variant for all inputs.
type U8U32Dot12x8 struct{}

func (U8U32Dot12x8) Name() string   { return "u8u32_dot_12x8" }
func (U8U32Dot12x8) OutHeight() int { return DotHeight }
func (U8U32Dot12x8) OutWidth() int  { return DotWidth }

func (U8U32Dot12x8) Run(packedA, packedB []uint8, out []uint32, outStride, kLen int) {
	const mr, nr = DotHeight, DotWidth
	var acc [mr * nr]uint32

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
			ar0 := uint32(a0[r])
			ar1 := uint32(a1[r])
			ar2 := uint32(a2[r])
			ar3 := uint32(a3[r])
			row := acc[r*nr : r*nr+nr]
			for c := 0; c < nr; c++ {
				row[c] += ar0*uint32(b0[c]) + ar1*uint32(b1[c]) +
					ar2*uint32(b2[c]) + ar3*uint32(b3[c])
			}
		}
	}

	// K tail (0-3 columns)
	for ; k < kLen; k++ {
		ak := packedA[k*mr : k*mr+mr]
		bk := packedB[k*nr : k*nr+nr]
		for r := 0; r < mr; r++ {
			ar := uint32(ak[r])
			row := acc[r*nr : r*nr+nr]
			for c := 0; c < nr; c++ {
				row[c] += ar * uint32(bk[c])
			}
		}
	}

	for r := 0; r < mr; r++ {
		copy(out[r*outStride:r*outStride+nr], acc[r*nr:r*nr+nr])
	}
}

// U8U32Base4x4 is the baseline uint8 kernel. It uses only base
// instructions and must run correctly on every supported CPU; the
// dispatcher falls back to it when the dot product extension is absent.
type U8U32Base4x4 struct{}

func (U8U32Base4x4) Name() string   { return "u8u32_4x4" }
func (U8U32Base4x4) OutHeight() int { return BaseHeight }
func (U8U32Base4x4) OutWidth() int  { return BaseWidth }

func (U8U32Base4x4) Run(packedA, packedB []uint8, out []uint32, outStride, kLen int) {
	const mr, nr = BaseHeight, BaseWidth
	var acc [mr * nr]uint32

	for k := 0; k < kLen; k++ {
		ak := packedA[k*mr : k*mr+mr]
		bk := packedB[k*nr : k*nr+nr]
		for r := 0; r < mr; r++ {
			ar := uint32(ak[r])
			row := acc[r*nr : r*nr+nr]
			for c := 0; c < nr; c++ {
				row[c] += ar * uint32(bk[c])
			}
		}
	}

	for r := 0; r < mr; r++ {
		copy(out[r*outStride:r*outStride+nr], acc[r*nr:r*nr+nr])
	}
}
