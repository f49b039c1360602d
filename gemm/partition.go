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

// Work partitioning. The 4-D iteration space multi x batch x mTile x
// nTile is flattened into a linear sequence of tile units (nTile
// fastest) and split into one contiguous range per thread by index
// arithmetic. The ranges cover the unit space exactly once with no
// overlap, which is what makes the hot path lock-free: no two threads
// ever write the same region of C.
//
// The reduction dimension is never split across threads. K-splitting
// would require either accumulator merging or a second barrier, and
// the tile space of real workloads (batches x multis x tiles) already
// exceeds any plausible thread count.

// splitRange returns thread's contiguous [start, end) share of units
// work units. Remainder units go to the earliest-indexed threads, so
// shares differ by at most one. Threads beyond the unit count receive
// empty ranges.
func splitRange(units, totalThreads, thread int) (start, end int) {
	base := units / totalThreads
	rem := units % totalThreads
	if thread < rem {
		start = thread * (base + 1)
		return start, start + base + 1
	}
	start = rem*(base+1) + (thread-rem)*base
	return start, start + base
}

// decodeUnit maps a flat unit index back to its coordinates. The
// layout matches the flattening order: nTile varies fastest, then
// mTile, then batch, then multi.
func decodeUnit(u, batches, mTiles, nTiles int) (multi, batch, mTile, nTile int) {
	nTile = u % nTiles
	u /= nTiles
	mTile = u % mTiles
	u /= mTiles
	batch = u % batches
	multi = u / batches
	return multi, batch, mTile, nTile
}
