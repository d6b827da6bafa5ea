// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package shadow

import "testing"

func TestBoxRadiiZeroSigmaIsZero(t *testing.T) {
	if got := BoxRadii(0); got != ([3]int{0, 0, 0}) {
		t.Errorf("BoxRadii(0) = %v, want all zero", got)
	}
}

func TestBoxRadiiGrowsWithSigma(t *testing.T) {
	small := BoxRadii(1)
	large := BoxRadii(10)
	sum := func(r [3]int) int { return r[0] + r[1] + r[2] }
	if sum(large) <= sum(small) {
		t.Errorf("BoxRadii(10) = %v, BoxRadii(1) = %v; want larger sigma to give larger radii", large, small)
	}
}

func TestBlurUniformFieldIsUnchanged(t *testing.T) {
	const w, h = 10, 10
	src := make([]float64, w*h)
	for i := range src {
		src[i] = 0.5
	}
	dst := make([]float64, w*h)
	Blur(src, dst, w, h, 3)
	for i, v := range dst {
		if v < 0.49 || v > 0.51 {
			t.Fatalf("pixel %d = %v, want ~0.5 (blurring a uniform field changes nothing)", i, v)
		}
	}
}

func TestBlurSpreadsSingleSpike(t *testing.T) {
	const w, h = 21, 21
	src := make([]float64, w*h)
	center := h/2*w + w/2
	src[center] = 1
	dst := make([]float64, w*h)
	Blur(src, dst, w, h, 3)

	if dst[center] >= 1 {
		t.Errorf("center after blur = %v, want < 1 (spike should spread out)", dst[center])
	}
	neighbor := h/2*w + w/2 + 1
	if dst[neighbor] <= 0 {
		t.Errorf("neighbor after blur = %v, want > 0 (energy should spread)", dst[neighbor])
	}
	var total float64
	for _, v := range dst {
		total += v
	}
	if total <= 0 {
		t.Errorf("blurred total mass = %v, want > 0", total)
	}
}

func TestBlurZeroSigmaIsNoop(t *testing.T) {
	const w, h = 4, 4
	src := []float64{
		0, 1, 0, 1,
		1, 0, 1, 0,
		0, 1, 0, 1,
		1, 0, 1, 0,
	}
	dst := make([]float64, w*h)
	Blur(src, dst, w, h, 0)
	for i := range src {
		if dst[i] != src[i] {
			t.Errorf("zero-sigma blur changed pixel %d: %v -> %v", i, src[i], dst[i])
		}
	}
}
