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

package raster

// Subpath is an ordered sequence of device-space points with a closed
// flag. A closed subpath implies an implicit line from the last point
// back to the first. A subpath with a single point and Closed set is
// "degenerate": it has no orientation, so a fill ignores it and a stroke
// draws it only under a round line cap (a dot), matching a dash pattern
// collapsing a segment to zero length, or a bare move_to immediately
// followed by close_path.
type Subpath struct {
	Points []Point
	Closed bool
}

// Path is an ordered sequence of subpaths, already flattened to line
// segments and already in device space. It is reset by Reset (mirroring
// begin_path) and is otherwise append-only. Subpaths that never receive a
// second point and are never closed (a move_to immediately superseded by
// another move_to) are left in place but are ignored by both Fill and
// Stroke, so callers don't need to special-case them.
type Path struct {
	Subpaths []Subpath

	hasCurrent bool
	start      Point
	last       Point
}

// Reset clears the path, retaining the underlying storage.
func (p *Path) Reset() {
	p.Subpaths = p.Subpaths[:0]
	p.hasCurrent = false
}

// MoveTo begins a new subpath at pt.
func (p *Path) MoveTo(pt Point) {
	p.Subpaths = append(p.Subpaths, Subpath{Points: []Point{pt}})
	p.hasCurrent = true
	p.start = pt
	p.last = pt
}

// LineTo appends a line segment to the current subpath. If no subpath is
// open, it implicitly starts one at pt (matching the HTML5 canvas rule
// that a path with no current point treats the first draw call as a
// move_to).
func (p *Path) LineTo(pt Point) {
	if !p.hasCurrent {
		p.MoveTo(pt)
		return
	}
	idx := len(p.Subpaths) - 1
	p.Subpaths[idx].Points = append(p.Subpaths[idx].Points, pt)
	p.last = pt
}

// Close closes the current subpath (adding the implicit closing segment)
// and opens a fresh subpath at the same start point, matching
// close_path's "closes and opens a new one" semantics. A no-op if there
// is no open subpath.
func (p *Path) Close() {
	if !p.hasCurrent {
		return
	}
	idx := len(p.Subpaths) - 1
	p.Subpaths[idx].Closed = true
	start := p.start
	p.MoveTo(start)
}

// CurrentPoint returns the last point appended and whether a subpath is
// currently open.
func (p *Path) CurrentPoint() (Point, bool) {
	return p.last, p.hasCurrent
}

// IsEmpty reports whether the path contains no drawable geometry: no
// subpath with two or more points, and no closed single-point subpath.
func (p *Path) IsEmpty() bool {
	for _, sp := range p.Subpaths {
		if len(sp.Points) >= 2 || (len(sp.Points) == 1 && sp.Closed) {
			return false
		}
	}
	return true
}
