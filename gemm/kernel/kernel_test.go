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

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

// tileReference computes the raw tile sums the same way the engine's
// naive reference does: out[r][c] = sum_k a[k][r] * b[k][c].
func tileReferenceU32(packedA, packedB []uint8, mr, nr, kLen int) []uint32 {
	out := make([]uint32, mr*nr)
	for k := 0; k < kLen; k++ {
		for r := 0; r < mr; r++ {
			for c := 0; c < nr; c++ {
				out[r*nr+c] += uint32(packedA[k*mr+r]) * uint32(packedB[k*nr+c])
			}
		}
	}
	return out
}

func tileReferenceF32(packedA, packedB []float32, mr, nr, kLen int) []float32 {
	out := make([]float32, mr*nr)
	for k := 0; k < kLen; k++ {
		for r := 0; r < mr; r++ {
			for c := 0; c < nr; c++ {
				out[r*nr+c] += packedA[k*mr+r] * packedB[k*nr+c]
			}
		}
	}
	return out
}

func TestU8U32KernelsMatchReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	kernels := []Kernel[uint8, uint32]{U8U32Dot12x8{}, U8U32Base4x4{}}
	for _, kern := range kernels {
		t.Run(kern.Name(), func(t *testing.T) {
			mr, nr := kern.OutHeight(), kern.OutWidth()
			for _, kLen := range []int{1, 3, 4, 7, 16, 33} {
				packedA := make([]uint8, kLen*mr)
				packedB := make([]uint8, kLen*nr)
				for i := range packedA {
					packedA[i] = uint8(rng.Intn(256))
				}
				for i := range packedB {
					packedB[i] = uint8(rng.Intn(256))
				}

				out := make([]uint32, mr*nr)
				kern.Run(packedA, packedB, out, nr, kLen)
				assert.Equal(t, tileReferenceU32(packedA, packedB, mr, nr, kLen), out,
					"kLen=%d", kLen)
			}
		})
	}
}

func TestU8U32VariantsBitExactEqual(t *testing.T) {
	// Both uint8 variants must produce identical wrapped sums. Compare
	// them over a shared logical problem at the dot kernel's shape by
	// checking each against the reference with large values that force
	// uint32 wrap-around.
	const kLen = 1 << 14
	mr, nr := DotHeight, DotWidth
	packedA := make([]uint8, kLen*mr)
	packedB := make([]uint8, kLen*nr)
	for i := range packedA {
		packedA[i] = 255
	}
	for i := range packedB {
		packedB[i] = 255
	}
	out := make([]uint32, mr*nr)
	U8U32Dot12x8{}.Run(packedA, packedB, out, nr, kLen)
	assert.Equal(t, tileReferenceU32(packedA, packedB, mr, nr, kLen), out)
}

func TestF32KernelsMatchReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	kernels := []Kernel[float32, float32]{F32Wide12x8{}, F32Base4x4{}}
	for _, kern := range kernels {
		t.Run(kern.Name(), func(t *testing.T) {
			mr, nr := kern.OutHeight(), kern.OutWidth()
			for _, kLen := range []int{1, 5, 8, 31, 64} {
				packedA := make([]float32, kLen*mr)
				packedB := make([]float32, kLen*nr)
				for i := range packedA {
					packedA[i] = rng.Float32()*2 - 1
				}
				for i := range packedB {
					packedB[i] = rng.Float32()*2 - 1
				}

				out := make([]float32, mr*nr)
				kern.Run(packedA, packedB, out, nr, kLen)
				want := tileReferenceF32(packedA, packedB, mr, nr, kLen)
				for i := range want {
					diff := math32.Abs(out[i] - want[i])
					limit := math32.Max(1e-5, math32.Abs(want[i])*1e-4)
					assert.LessOrEqual(t, diff, limit, "kLen=%d idx=%d", kLen, i)
				}
			}
		})
	}
}

func TestRunOverwritesStaleOutput(t *testing.T) {
	// Run must overwrite, not accumulate into, the output tile.
	kern := U8U32Base4x4{}
	mr, nr := kern.OutHeight(), kern.OutWidth()
	packedA := make([]uint8, 2*mr)
	packedB := make([]uint8, 2*nr)
	out := make([]uint32, mr*nr)
	for i := range out {
		out[i] = 0xdeadbeef
	}
	kern.Run(packedA, packedB, out, nr, 2)
	for i := range out {
		assert.Zero(t, out[i])
	}
}

func BenchmarkU8U32Dot12x8(b *testing.B) {
	kern := U8U32Dot12x8{}
	const kLen = 256
	packedA := make([]uint8, kLen*DotHeight)
	packedB := make([]uint8, kLen*DotWidth)
	out := make([]uint32, DotHeight*DotWidth)
	b.SetBytes(int64(len(packedA) + len(packedB)))
	for i := 0; i < b.N; i++ {
		kern.Run(packedA, packedB, out, DotWidth, kLen)
	}
}

func BenchmarkF32Wide12x8(b *testing.B) {
	kern := F32Wide12x8{}
	const kLen = 256
	packedA := make([]float32, kLen*DotHeight)
	packedB := make([]float32, kLen*DotWidth)
	out := make([]float32, DotHeight*DotWidth)
	b.SetBytes(int64(4 * (len(packedA) + len(packedB))))
	for i := 0; i < b.N; i++ {
		kern.Run(packedA, packedB, out, DotWidth, kLen)
	}
}
