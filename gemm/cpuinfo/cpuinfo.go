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

// Package cpuinfo probes the instruction-set capabilities that gate
// kernel selection. Detection happens once per CPUInfo value; the
// result is immutable afterwards, so a single value can be shared
// across many engine constructions.
package cpuinfo

import (
	"os"
	"strconv"
)

// CPUInfo reports which optional instruction extensions the running
// processor supports. Construct with New for the local machine, or
// with Force to pin capabilities (useful in tests and when the caller's
// platform layer does its own probing).
type CPUInfo struct {
	dotProd bool
	fma     bool
}

// New probes the local CPU. Environment overrides are applied after
// hardware detection: GEMM_NO_DOTPROD and GEMM_NO_FMA force the
// corresponding capability off, pushing dispatch onto the baseline
// kernels regardless of what the hardware reports.
func New() *CPUInfo {
	ci := detect()
	if noEnv("GEMM_NO_DOTPROD") {
		ci.dotProd = false
	}
	if noEnv("GEMM_NO_FMA") {
		ci.fma = false
	}
	return ci
}

// Force returns a CPUInfo with the given capabilities, bypassing
// detection entirely.
func Force(dotProd, fma bool) *CPUInfo {
	return &CPUInfo{dotProd: dotProd, fma: fma}
}

// HasDotProd reports whether the CPU supports widening 8-bit dot
// product instructions (SDOT/UDOT on ARM64, AVX-512 VNNI on x86).
func (ci *CPUInfo) HasDotProd() bool {
	return ci.dotProd
}

// HasFMA reports whether the CPU supports fused multiply-add on
// packed float32 lanes.
func (ci *CPUInfo) HasFMA() bool {
	return ci.fma
}

// noEnv checks a disable-style environment variable. Any non-empty
// value counts as set, but values that parse as bool are honored, so
// GEMM_NO_DOTPROD=false leaves detection untouched.
func noEnv(name string) bool {
	val := os.Getenv(name)
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
