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

//go:build amd64

package cpuinfo

import "golang.org/x/sys/cpu"

func detect() *CPUInfo {
	// AVX-512 VNNI (VPDPBUSD) is the x86 counterpart of the 8-bit dot
	// product extension. FMA has been present since Haswell but is still
	// optional in the ISA, so probe it rather than assume.
	return &CPUInfo{
		dotProd: cpu.X86.HasAVX512VNNI,
		fma:     cpu.X86.HasFMA,
	}
}
