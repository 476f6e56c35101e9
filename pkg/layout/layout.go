// Package layout places the atoms of a solution on a 2-D integer grid.
//
// Bonds are walked in order. The first atom goes to the origin; every
// further atom is placed one step from an already placed neighbour. Each
// atom remembers the directions it has used, and a new bond takes the next
// compass direction (east, north, west, south) not yet used at that atom.
// Bonds between two atoms of the same element prefer east; bonds touching
// a ring's start or end atom prefer north or south.
//
// Bonds whose atoms are both still unplaced are retried after the others,
// so the result does not depend on the bonds being listed parent first.
package layout

import (
	"errors"
	"fmt"

	"github.com/matzehuels/lewis/pkg/chem"
)

// Point is a grid position or a unit direction.
type Point struct {
	X, Y int
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Compass directions.
var (
	East  = Point{1, 0}
	North = Point{0, 1}
	West  = Point{-1, 0}
	South = Point{0, -1}
)

// diagonal is the step used when every direction at an atom is taken.
var diagonal = Point{1, 1}

// rotate returns the direction a quarter turn counter-clockwise from d.
func rotate(d Point) Point { return Point{-d.Y, d.X} }

func inverse(d Point) Point { return Point{-d.X, -d.Y} }

// ErrOccupied is returned by [Layout.Place] when another atom already
// holds the point.
var ErrOccupied = errors.New("grid point already occupied")

// Layout maps atoms to grid positions. It keeps a reverse index from points
// to atoms; once the index exists, change positions through Place only.
type Layout struct {
	Positions map[chem.ID]Point
	occupied  map[Point]chem.ID
}

// Place puts id at p, moving it if it was placed before.
func (l *Layout) Place(id chem.ID, p Point) error {
	l.index()
	if other, ok := l.occupied[p]; ok && other != id {
		return fmt.Errorf("%w: %v holds atom %d", ErrOccupied, p, other)
	}
	if old, ok := l.Positions[id]; ok {
		delete(l.occupied, old)
	}
	l.Positions[id] = p
	l.occupied[p] = id
	return nil
}

// index builds the reverse index for layouts created as literals.
func (l *Layout) index() {
	if l.Positions == nil {
		l.Positions = make(map[chem.ID]Point)
	}
	if l.occupied != nil {
		return
	}
	l.occupied = make(map[Point]chem.ID, len(l.Positions))
	for id, p := range l.Positions {
		l.occupied[p] = id
	}
}

// Bounds returns the smallest and largest coordinates in use.
func (l Layout) Bounds() (min, max Point) {
	first := true
	for _, p := range l.Positions {
		if first {
			min, max = p, p
			first = false
			continue
		}
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// At returns the atom placed at p.
func (l *Layout) At(p Point) (chem.ID, bool) {
	l.index()
	id, ok := l.occupied[p]
	return id, ok
}

// Compute lays out sol. Every atom of sol receives exactly one position and
// no two atoms share one.
func Compute(sol chem.Solution) Layout {
	e := &engine{
		sol: sol,
		l: Layout{
			Positions: make(map[chem.ID]Point, len(sol.Atoms)),
			occupied:  make(map[Point]chem.ID, len(sol.Atoms)),
		},
		history: make(map[chem.ID][]Point, len(sol.Atoms)),
	}

	pending := sol.Bonds
	for len(pending) > 0 {
		var deferred []chem.Bond
		for _, b := range pending {
			if !e.place(b) {
				deferred = append(deferred, b)
			}
		}
		if len(deferred) == len(pending) {
			// Disconnected fragment: start it beside what is placed.
			e.seed(deferred[0].From)
		}
		pending = deferred
	}

	for _, a := range sol.Atoms {
		if _, ok := e.l.Positions[a.ID]; !ok {
			e.seed(a.ID)
		}
	}
	return e.l
}

type engine struct {
	sol     chem.Solution
	l       Layout
	history map[chem.ID][]Point
}

// put places an atom on a point already checked with taken.
func (e *engine) put(id chem.ID, p Point) {
	_ = e.l.Place(id, p)
}

func (e *engine) taken(p Point) bool {
	_, ok := e.l.At(p)
	return ok
}

// seed places id at the origin, or right of the current bounding box once
// something has been placed.
func (e *engine) seed(id chem.ID) {
	if len(e.l.Positions) == 0 {
		e.put(id, Point{})
		return
	}
	_, max := e.l.Bounds()
	p := Point{max.X + 2, 0}
	for e.taken(p) {
		p = p.Add(East)
	}
	e.put(id, p)
}

// place positions the unplaced endpoint of b. It reports false when neither
// endpoint is placed yet and the bond has to wait.
func (e *engine) place(b chem.Bond) bool {
	from, to := b.From, b.To
	_, fromOK := e.l.Positions[from]
	_, toOK := e.l.Positions[to]
	switch {
	case !fromOK && !toOK:
		if len(e.l.Positions) > 0 {
			return false
		}
		e.seed(from)
	case !fromOK:
		from, to = to, from
	case toOK:
		return true
	}
	if from == to {
		return true
	}

	base := e.l.Positions[from]
	h := e.history[from]
	if len(h) == 0 {
		h = []Point{South}
	}
	pref := e.preferred(from, to)

	var dir Point
	for {
		d, ok := next(h, pref)
		if !ok {
			dir = rotate(h[len(h)-1])
			h = append(h, dir)
			target := base.Add(dir)
			for e.taken(target) {
				target = target.Add(diagonal)
			}
			e.put(to, target)
			break
		}
		h = append(h, d)
		if target := base.Add(d); !e.taken(target) {
			dir = d
			e.put(to, target)
			break
		}
	}
	e.history[from] = h
	e.history[to] = append(e.history[to], inverse(dir))
	return true
}

// preferred returns the direction a bond would like to take, or the zero
// point when it has no preference. Ring endpoints win over element pairs.
func (e *engine) preferred(from, to chem.ID) Point {
	if ep := e.sol.Endpoints; ep != nil {
		if from == ep.Start || to == ep.Start {
			return North
		}
		if from == ep.End || to == ep.End {
			return South
		}
	}
	if e.element(from) != "" && e.element(from) == e.element(to) {
		return East
	}
	return Point{}
}

func (e *engine) element(id chem.ID) string {
	if int(id) < 0 || int(id) >= len(e.sol.Atoms) {
		return ""
	}
	return e.sol.Atoms[id].Element
}

// next returns the preferred direction if it is unused, otherwise the
// first unused quarter turn from the most recently used directions.
func next(history []Point, pref Point) (Point, bool) {
	if pref != (Point{}) && !contains(history, pref) {
		return pref, true
	}
	for i := len(history) - 1; i >= 0; i-- {
		if d := rotate(history[i]); !contains(history, d) {
			return d, true
		}
	}
	return Point{}, false
}

func contains(ps []Point, p Point) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}
