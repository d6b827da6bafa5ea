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

// Operator names one of the eleven Porter-Duff compositing operators
// the canvas model exposes as globalCompositeOperation. All formulas
// below operate on premultiplied linear-light components and follow
// the standard Porter-Duff Fa/Fb coefficient table: result = S*Fa +
// D*Fb.
type Operator int

const (
	SourceOver Operator = iota
	DestinationOver
	SourceIn
	DestinationIn
	SourceOut
	DestinationOut
	SourceAtop
	DestinationAtop
	Lighter
	Copy
	XOR
)

// Composite blends src over dst under op, both premultiplied linear.
func Composite(op Operator, src, dst Color) Color {
	fa, fb := op.coefficients(src.A, dst.A)
	return Color{
		R: src.R*fa + dst.R*fb,
		G: src.G*fa + dst.G*fb,
		B: src.B*fa + dst.B*fb,
		A: src.A*fa + dst.A*fb,
	}
}

// coefficients returns the (Fa, Fb) pair for op given source/dest
// alpha, per the Porter-Duff compositing algebra. Lighter and Copy fall
// outside the strict Fa/Fb model (Lighter is a clamped sum, Copy
// ignores the destination) but are expressed the same way here for a
// uniform Composite implementation; Copy's Fb=0 already drops the
// destination term, and Lighter's Fa=Fb=1 matches "S+D" before the
// caller clamps the result to [0,1] if it paints into an 8-bit buffer.
func (op Operator) coefficients(sa, da float64) (fa, fb float64) {
	switch op {
	case SourceOver:
		return 1, 1 - sa
	case DestinationOver:
		return 1 - da, 1
	case SourceIn:
		return da, 0
	case DestinationIn:
		return 0, sa
	case SourceOut:
		return 1 - da, 0
	case DestinationOut:
		return 0, 1 - sa
	case SourceAtop:
		return da, 1 - sa
	case DestinationAtop:
		return 1 - da, sa
	case Lighter:
		return 1, 1
	case Copy:
		return 1, 0
	case XOR:
		return 1 - da, 1 - sa
	default:
		return 1, 1 - sa
	}
}
