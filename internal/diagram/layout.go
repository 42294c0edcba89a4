// Package diagram lays out the Hasse diagram of an algebra and exports it as
// an image. Positions run bottom to top; symbols sharing a position are
// spread horizontally on one level.
package diagram

import (
	"sort"

	"github.com/agbru/hassecalc/internal/algebra"
)

// Spacing is the horizontal distance between symbols of one level, in data
// units. Levels are one unit apart vertically.
const Spacing = 1.0

// Point is a coordinate in data units.
type Point struct{ X, Y float64 }

// Level is one occupied position of the diagram.
type Level struct {
	Position int
	// Symbols are ordered by the first rule entry that lists them, then by
	// alphabet order.
	Symbols []algebra.Symbol
}

// Edge is a successor relation drawn between two placed symbols.
type Edge struct {
	From, To algebra.Symbol
}

// Diagram is the computed layout. The zero value is an empty diagram.
type Diagram struct {
	Levels []Level
	Edges  []Edge
	// Unmapped lists symbols the position map could not place; they are not drawn.
	Unmapped []algebra.Symbol
	points   map[algebra.Symbol]Point
}

// Layout computes the diagram of a. Only occupied positions become levels,
// so gaps in the position map do not leave empty rows.
func Layout(a *algebra.Algebra) Diagram {
	positions := a.Positions()
	rule := a.Rule()
	source := sourceIndex(a)

	d := Diagram{points: make(map[algebra.Symbol]Point), Unmapped: positions.Unmapped()}
	for p, group := range positions.Levels() {
		if len(group) == 0 {
			continue
		}
		members := append([]algebra.Symbol(nil), group...)
		sort.SliceStable(members, func(i, j int) bool { return source[members[i]] < source[members[j]] })

		y := float64(len(d.Levels))
		for j, s := range members {
			d.points[s] = Point{X: (float64(j) - float64(len(members)-1)/2) * Spacing, Y: y}
		}
		d.Levels = append(d.Levels, Level{Position: p, Symbols: members})
	}

	top := positions.MaxPosition()
	for _, from := range a.Alphabet().Symbols() {
		if _, ok := d.points[from]; !ok {
			continue
		}
		pf, _ := positions.Position(from)
		for _, to := range rule.Successors(from) {
			if _, ok := d.points[to]; !ok {
				continue
			}
			pt, _ := positions.Position(to)
			// The wrap from the top level to zero is drawn as the cycle edge.
			if pf == top && pt == 0 {
				continue
			}
			d.Edges = append(d.Edges, Edge{From: from, To: to})
		}
	}
	return d
}

// sourceIndex maps each symbol to the first input whose rule entry lists it.
// Symbols no entry lists sort last.
func sourceIndex(a *algebra.Algebra) map[algebra.Symbol]int {
	rule := a.Rule()
	size := a.Size()
	idx := make(map[algebra.Symbol]int, size)
	for _, s := range a.Alphabet().Symbols() {
		idx[s] = size
	}
	for _, in := range a.Alphabet().Symbols() {
		for _, out := range rule.Successors(in) {
			if idx[out] == size {
				idx[out] = int(in)
			}
		}
	}
	return idx
}

// Point returns where s is drawn.
func (d Diagram) Point(s algebra.Symbol) (Point, bool) {
	p, ok := d.points[s]
	return p, ok
}

// Empty reports whether there is nothing to draw.
func (d Diagram) Empty() bool { return len(d.Levels) == 0 }

// Cycle returns the path of the dashed cycle edge: from the rightmost symbol
// of the top level out to the right, down, and back to the rightmost symbol
// of the bottom level. It is absent when the diagram has fewer than two levels.
func (d Diagram) Cycle() ([]Point, bool) {
	if len(d.Levels) < 2 {
		return nil, false
	}
	top := d.rightmost(d.Levels[len(d.Levels)-1])
	bottom := d.rightmost(d.Levels[0])
	x := max(top.X, bottom.X) + Spacing
	return []Point{top, {X: x, Y: top.Y}, {X: x, Y: bottom.Y}, bottom}, true
}

// TopBar returns the segment joining the symbols of the top level when it
// has more than one member.
func (d Diagram) TopBar() ([]Point, bool) {
	if len(d.Levels) == 0 {
		return nil, false
	}
	lvl := d.Levels[len(d.Levels)-1]
	if len(lvl.Symbols) < 2 {
		return nil, false
	}
	return []Point{d.points[lvl.Symbols[0]], d.rightmost(lvl)}, true
}

func (d Diagram) rightmost(l Level) Point {
	return d.points[l.Symbols[len(l.Symbols)-1]]
}

// Bounds returns the extent of the drawn points.
func (d Diagram) Bounds() (minPt, maxPt Point) {
	first := true
	for _, p := range d.points {
		if first {
			minPt, maxPt = p, p
			first = false
			continue
		}
		minPt.X, minPt.Y = min(minPt.X, p.X), min(minPt.Y, p.Y)
		maxPt.X, maxPt.Y = max(maxPt.X, p.X), max(maxPt.Y, p.Y)
	}
	if c, ok := d.Cycle(); ok {
		maxPt.X = max(maxPt.X, c[1].X)
	}
	return minPt, maxPt
}
