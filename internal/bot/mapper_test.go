package bot

import (
	"fmt"

	"github.com/freeeve/lugo-striker/pkg/field"
)

// gridMapper is a home-side mapper over the standard field, enough to drive
// the behaviors in tests.
type gridMapper struct {
	cols, rows int
	attack     field.Goal
	defense    field.Goal
	err        error
}

func newGridMapper() *gridMapper {
	return &gridMapper{
		cols: 10,
		rows: 6,
		attack: field.Goal{
			Center:     field.NewPoint(field.FieldWidth, field.FieldCenterY),
			TopPole:    field.NewPoint(field.FieldWidth, 5500),
			BottomPole: field.NewPoint(field.FieldWidth, 4500),
		},
		defense: field.Goal{
			Center:     field.NewPoint(0, field.FieldCenterY),
			TopPole:    field.NewPoint(0, 5400),
			BottomPole: field.NewPoint(0, 4600),
		},
	}
}

func (m *gridMapper) Cols() int               { return m.cols }
func (m *gridMapper) Rows() int               { return m.rows }
func (m *gridMapper) AttackGoal() field.Goal  { return m.attack }
func (m *gridMapper) DefenseGoal() field.Goal { return m.defense }

func (m *gridMapper) cellSize() (float64, float64) {
	return float64(field.FieldWidth) / float64(m.cols), float64(field.FieldHeight) / float64(m.rows)
}

func (m *gridMapper) RegionFromPoint(p field.Point) (field.Region, error) {
	if m.err != nil {
		return field.Region{}, m.err
	}
	if p.X < 0 || p.X > field.FieldWidth || p.Y < 0 || p.Y > field.FieldHeight {
		return field.Region{}, fmt.Errorf("point %s: %w", p, field.ErrOutOfField)
	}
	w, h := m.cellSize()
	col := min(int(p.X/w), m.cols-1)
	row := min(int(p.Y/h), m.rows-1)
	return m.Region(col, row)
}

func (m *gridMapper) Region(col, row int) (field.Region, error) {
	if col < 0 || col >= m.cols || row < 0 || row >= m.rows {
		return field.Region{}, fmt.Errorf("cell (%d,%d): %w", col, row, field.ErrOutOfField)
	}
	w, h := m.cellSize()
	return field.Region{
		Col:    col,
		Row:    row,
		Center: field.NewPoint((float64(col)+0.5)*w, (float64(row)+0.5)*h),
	}, nil
}

func player(number int, x, y float64) Player {
	return Player{Number: number, Position: field.NewPoint(x, y)}
}

func snapshot(ball field.Point, me Player, team ...Player) *Snapshot {
	return &Snapshot{BallPosition: ball, Self: me, Team: team}
}
