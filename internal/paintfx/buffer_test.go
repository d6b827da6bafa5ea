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

package paintfx

import "testing"

func TestBufferSetAndAtRoundTrip(t *testing.T) {
	buf := NewBuffer(4, 4)
	c := Color{R: 0.1, G: 0.2, B: 0.3, A: 0.4}
	buf.Set(2, 1, c)
	if got := buf.At(2, 1); got != c {
		t.Errorf("At(2,1) = %v, want %v", got, c)
	}
}

func TestBufferSetOutOfRangeIsIgnored(t *testing.T) {
	buf := NewBuffer(2, 2)
	buf.Set(-1, 0, Color{R: 1, A: 1})
	buf.Set(0, 5, Color{R: 1, A: 1})
	for _, c := range buf.Pix {
		if c != (Color{}) {
			t.Errorf("out-of-range Set mutated buffer: %v", buf.Pix)
			break
		}
	}
}

func TestBufferAtClampsToEdge(t *testing.T) {
	buf := NewBuffer(3, 3)
	corner := Color{R: 1, A: 1}
	buf.Set(2, 2, corner)
	if got := buf.At(100, 100); got != corner {
		t.Errorf("At(100,100) = %v, want clamped corner %v", got, corner)
	}
	if got := buf.At(-100, -100); got != (Color{}) {
		t.Errorf("At(-100,-100) = %v, want clamped to (0,0) which is transparent", got)
	}
}

func TestNewBufferIsTransparent(t *testing.T) {
	buf := NewBuffer(5, 5)
	for _, c := range buf.Pix {
		if c != (Color{}) {
			t.Errorf("NewBuffer produced non-zero pixel %v", c)
			break
		}
	}
}
