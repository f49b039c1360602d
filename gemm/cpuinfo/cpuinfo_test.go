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

package cpuinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForce(t *testing.T) {
	ci := Force(true, false)
	assert.True(t, ci.HasDotProd())
	assert.False(t, ci.HasFMA())

	ci = Force(false, true)
	assert.False(t, ci.HasDotProd())
	assert.True(t, ci.HasFMA())
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("GEMM_NO_DOTPROD", "1")
	t.Setenv("GEMM_NO_FMA", "1")
	ci := New()
	assert.False(t, ci.HasDotProd())
	assert.False(t, ci.HasFMA())
}

func TestEnvOverrideFalseValue(t *testing.T) {
	// An explicit false must leave hardware detection untouched.
	t.Setenv("GEMM_NO_DOTPROD", "false")
	t.Setenv("GEMM_NO_FMA", "false")
	want := detect()
	ci := New()
	assert.Equal(t, want.HasDotProd(), ci.HasDotProd())
	assert.Equal(t, want.HasFMA(), ci.HasFMA())
}

func TestNewIsStable(t *testing.T) {
	a, b := New(), New()
	assert.Equal(t, a.HasDotProd(), b.HasDotProd())
	assert.Equal(t, a.HasFMA(), b.HasFMA())
}
