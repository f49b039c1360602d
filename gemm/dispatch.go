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

	"github.com/ajroetker/go-gemm/gemm/cpuinfo"
	"github.com/ajroetker/go-gemm/gemm/kernel"
)

// Kernel selection. Each element-type pair holds an ordered rule list
// of (capability predicate, kernel variant), evaluated in decreasing
// preference; the first match wins. The last rule of every list
// accepts any CPU, so selection is total: adding a CPU extension or a
// variant means prepending a rule, never touching existing ones.

type rule[TIn Scalar, TAcc Accum] struct {
	usable func(*cpuinfo.CPUInfo) bool
	kern   kernel.Kernel[TIn, TAcc]
}

func anyCPU(*cpuinfo.CPUInfo) bool { return true }

var u8u32Rules = []rule[uint8, uint32]{
	{usable: (*cpuinfo.CPUInfo).HasDotProd, kern: kernel.U8U32Dot12x8{}},
	{usable: anyCPU, kern: kernel.U8U32Base4x4{}},
}

var f32Rules = []rule[float32, float32]{
	{usable: (*cpuinfo.CPUInfo).HasFMA, kern: kernel.F32Wide12x8{}},
	{usable: anyCPU, kern: kernel.F32Base4x4{}},
}

func selectKernel[TIn Scalar, TAcc Accum](ci *cpuinfo.CPUInfo, rules []rule[TIn, TAcc]) kernel.Kernel[TIn, TAcc] {
	for _, r := range rules {
		if r.usable(ci) {
			return r.kern
		}
	}
	// Unreachable: every rule list ends in an anyCPU row.
	return rules[len(rules)-1].kern
}

// New constructs an engine for the given shape, bound to the kernel
// variant the capability probe selects. A nil probe means "probe the
// local CPU". alpha scales the product; beta scales the pre-existing
// contents of C (beta == 0 overwrites).
//
// Recognized type pairs are (uint8, uint32) and (float32, float32);
// anything else is a construction error, as are zero dimensions and a
// zero thread ceiling. Selection itself never fails: the baseline
// kernels run on every supported CPU.
func New[TIn Scalar, TAcc Accum](ci *cpuinfo.CPUInfo, p Params, alpha, beta TAcc) (Engine[TIn, TAcc], error) {
	if ci == nil {
		ci = cpuinfo.New()
	}
	if err := p.Validate(); err != nil {
		return nil, errors.Trace(err)
	}

	var zin TIn
	switch any(zin).(type) {
	case uint8:
		a, aok := any(alpha).(uint32)
		b, bok := any(beta).(uint32)
		if !aok || !bok {
			return nil, errors.NotSupportedf("type pair %T/%T", zin, alpha)
		}
		e := newInterleaved(selectKernel(ci, u8u32Rules), p, a, b)
		return any(e).(Engine[TIn, TAcc]), nil
	case float32:
		a, aok := any(alpha).(float32)
		b, bok := any(beta).(float32)
		if !aok || !bok {
			return nil, errors.NotSupportedf("type pair %T/%T", zin, alpha)
		}
		e := newInterleaved(selectKernel(ci, f32Rules), p, a, b)
		return any(e).(Engine[TIn, TAcc]), nil
	}
	return nil, errors.NotSupportedf("element type %T", zin)
}
