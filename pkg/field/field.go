// Package field holds the coordinate types shared by the policy and the
// external field mapper.
//
// A Point is a raw field coordinate and depends on the side the team plays
// on. A Region is a cell of the mapper's grid and is mirrored by the mapper,
// so regions read the same for both sides.
package field

import (
	"errors"
	"fmt"
)

// Field dimensions in raw units.
const (
	FieldWidth   = 20000
	FieldHeight  = 10000
	FieldCenterY = FieldHeight / 2
)

// ErrOutOfField is returned by mappers for points or cells outside the grid.
var ErrOutOfField = errors.New("outside of the field")

// Point is an (x, y) coordinate in raw field units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint is a shorthand for Point{X: x, Y: y}.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// DistanceSquared returns the squared euclidean distance between a and b.
// Callers that only rank distances never need the square root.
func DistanceSquared(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Region is a cell of the mapper grid.
type Region struct {
	Col    int   `json:"col"`
	Row    int   `json:"row"`
	Center Point `json:"center"`
}

func (r Region) String() string {
	return fmt.Sprintf("[%d,%d]", r.Col, r.Row)
}

// Goal describes one of the two goals in raw coordinates.
type Goal struct {
	Center     Point `json:"center"`
	TopPole    Point `json:"top_pole"`
	BottomPole Point `json:"bottom_pole"`
}

// Mapper converts raw points into grid regions for one team side.
// The grid size is fixed when the mapper is built and does not change
// during a match.
type Mapper interface {
	Cols() int
	Rows() int
	RegionFromPoint(p Point) (Region, error)
	Region(col, row int) (Region, error)
	AttackGoal() Goal
	DefenseGoal() Goal
}
