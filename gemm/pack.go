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

// Panel packing: operand strips are copied into the K-first interleaved
// layout the kernels consume (see package kernel). Packing reads the
// raw operand through its stride, honoring the transpose flag, and
// zero-pads the tile edge so kernels always run at full tile shape.

// packPanelA packs rows [rowStart, rowStart+rows) of op(A) into dst as
// [kLen][mr]. rows may be less than mr at the M boundary; the padding
// rows are zeroed on every pack because dst is reused scratch.
//
// With trans set, A is stored K x M and op(A)[i][k] reads a[k*lda+i],
// which makes the packed column a contiguous copy; without it the read
// is strided by lda.
func packPanelA[TIn Scalar](dst, a []TIn, lda int, trans bool, rowStart, rows, kLen, mr int) {
	if trans {
		for k := 0; k < kLen; k++ {
			col := dst[k*mr : k*mr+mr]
			src := a[k*lda+rowStart : k*lda+rowStart+rows]
			copy(col, src)
			for r := rows; r < mr; r++ {
				col[r] = 0
			}
		}
		return
	}
	for k := 0; k < kLen; k++ {
		col := dst[k*mr : k*mr+mr]
		for r := 0; r < rows; r++ {
			col[r] = a[(rowStart+r)*lda+k]
		}
		for r := rows; r < mr; r++ {
			col[r] = 0
		}
	}
}

// packPanelB packs columns [colStart, colStart+cols) of op(B) into dst
// as [kLen][nr], zero-padding the N boundary. Without trans, B is
// stored K x N and each packed row is a contiguous copy; with trans
// the read is strided by ldb.
func packPanelB[TIn Scalar](dst, b []TIn, ldb int, trans bool, colStart, cols, kLen, nr int) {
	if trans {
		for k := 0; k < kLen; k++ {
			row := dst[k*nr : k*nr+nr]
			for c := 0; c < cols; c++ {
				row[c] = b[(colStart+c)*ldb+k]
			}
			for c := cols; c < nr; c++ {
				row[c] = 0
			}
		}
		return
	}
	for k := 0; k < kLen; k++ {
		row := dst[k*nr : k*nr+nr]
		src := b[k*ldb+colStart : k*ldb+colStart+cols]
		copy(row, src)
		for c := cols; c < nr; c++ {
			row[c] = 0
		}
	}
}
