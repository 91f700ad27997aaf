package geometry

import (
	"fmt"
	"sort"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Intersection is a ray parameter at which a ray meets a shape
type Intersection struct {
	T       float64
	ShapeID ID
}

// Intersections is a list of intersections kept sorted ascending by T.
// The zero value is an empty list ready to use.
type Intersections struct {
	items []Intersection
}

// NewIntersections builds a sorted list from xs in any order
func NewIntersections(xs ...Intersection) Intersections {
	var list Intersections
	for _, x := range xs {
		list.Push(x)
	}
	return list
}

// Push inserts x keeping the list sorted. Entries whose T is within Epsilon of x.T
// stay ahead of it, so equal hits keep insertion order.
func (l *Intersections) Push(x Intersection) {
	i := sort.Search(len(l.items), func(i int) bool {
		return core.FloatLess(x.T, l.items[i].T)
	})
	l.items = append(l.items, Intersection{})
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = x
}

// Merge pushes every intersection of other into l
func (l *Intersections) Merge(other Intersections) {
	for _, x := range other.items {
		l.Push(x)
	}
}

// Len returns the number of intersections
func (l Intersections) Len() int { return len(l.items) }

// At returns the i-th intersection in ascending T order
func (l Intersections) At(i int) Intersection { return l.items[i] }

// All returns a copy of the sorted intersections
func (l Intersections) All() []Intersection {
	out := make([]Intersection, len(l.items))
	copy(out, l.items)
	return out
}

// Hit returns the visible intersection: the one with the smallest non-negative T.
// It binary-searches for T = 0 and takes the entry at the insertion point, so negative
// hits sorted ahead of it are skipped. ok is false when every T is negative.
func (l Intersections) Hit() (hit Intersection, ok bool) {
	i := sort.Search(len(l.items), func(i int) bool {
		return !core.FloatLess(l.items[i].T, 0)
	})
	if i >= len(l.items) {
		return Intersection{}, false
	}
	return l.items[i], true
}

func (l Intersections) String() string {
	return fmt.Sprint(l.items)
}
