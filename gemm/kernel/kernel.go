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

// Package kernel holds the fixed-shape micro-kernels the interleaved
// engine dispatches to, and the contract they satisfy.
//
// A micro-kernel computes one OutHeight x OutWidth output tile from
// packed operand panels. Panels use a K-first interleaved layout:
//
//	packedA: [kLen][OutHeight] - column k holds OutHeight consecutive
//	         A values, one per tile row, zero-padded at the M edge
//	packedB: [kLen][OutWidth]  - row k holds OutWidth consecutive
//	         B values, one per tile column, zero-padded at the N edge
//
// Run overwrites the full tile with the raw accumulation; alpha/beta
// scaling and boundary clamping are the engine's job, so one kernel
// body serves both accumulate and overwrite uses.
package kernel

// Scalar is the set of operand element types.
type Scalar interface {
	uint8 | float32
}

// Accum is the set of accumulator/output element types.
type Accum interface {
	uint32 | float32
}

// Kernel is the contract every dispatch-compatible variant satisfies.
// OutHeight and OutWidth surface the variant's compile-time tile shape;
// they are constants for a given variant, never per-call values.
type Kernel[TIn Scalar, TAcc Accum] interface {
	// Name identifies the variant, e.g. "u8u32_dot_12x8".
	Name() string

	// OutHeight is the tile height (output rows) in elements.
	OutHeight() int

	// OutWidth is the tile width (output columns) in elements.
	OutWidth() int

	// Run computes the full OutHeight x OutWidth tile from packed
	// panels of reduction length kLen, writing raw sums to out with
	// row stride outStride. out is overwritten, not accumulated into.
	Run(packedA, packedB []TIn, out []TAcc, outStride, kLen int)
}

// Tile shape constants, one pair per variant.
const (
	DotHeight = 12 // u8u32_dot_12x8, f32_wide_12x8
	DotWidth  = 8

	BaseHeight = 4 // u8u32_4x4, f32_4x4
	BaseWidth  = 4
)
