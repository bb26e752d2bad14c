package bot

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/viper"

	"github.com/freeeve/lugo-striker/pkg/field"
)

// FormationState is the team posture, chosen by which third of the field the ball is in.
type FormationState int

const (
	Defensive FormationState = iota
	Normal
	Offensive
)

func (s FormationState) String() string {
	switch s {
	case Defensive:
		return "defensive"
	case Normal:
		return "normal"
	case Offensive:
		return "offensive"
	}
	return fmt.Sprintf("formation(%d)", int(s))
}

var (
	ErrUnknownJersey       = errors.New("jersey not in formation")
	ErrIncompleteFormation = errors.New("formation is missing jerseys")
	ErrCellOutOfGrid       = errors.New("formation cell outside mapper grid")
)

// Cell is a (col, row) position on the mapper grid.
type Cell struct {
	Col int `json:"col" mapstructure:"col"`
	Row int `json:"row" mapstructure:"row"`
}

// Formation maps jersey numbers to grid cells.
type Formation map[int]Cell

// Tactics holds the formation tables the supporting behavior moves players to,
// plus the kick-off layout handed to the engine before the match.
type Tactics struct {
	Defensive Formation
	Normal    Formation
	Offensive Formation
	Initial   Formation
}

// DefaultTactics returns the preset tables for a 10x6 grid.
func DefaultTactics() *Tactics {
	return &Tactics{
		Defensive: Formation{
			2: {1, 1}, 3: {2, 2}, 4: {2, 3}, 5: {1, 4}, 6: {3, 1},
			7: {3, 2}, 8: {3, 3}, 9: {3, 4}, 10: {4, 3}, 11: {4, 2},
		},
		Normal: Formation{
			2: {2, 1}, 3: {4, 2}, 4: {4, 3}, 5: {2, 4}, 6: {6, 1},
			7: {8, 2}, 8: {8, 3}, 9: {6, 4}, 10: {7, 4}, 11: {7, 1},
		},
		Offensive: Formation{
			2: {3, 1}, 3: {5, 2}, 4: {5, 3}, 5: {3, 4}, 6: {7, 1},
			7: {8, 2}, 8: {8, 3}, 9: {7, 4}, 10: {9, 4}, 11: {9, 1},
		},
		Initial: Formation{
			1: {0, 0}, 2: {1, 1}, 3: {2, 2}, 4: {2, 3}, 5: {1, 4}, 6: {3, 1},
			7: {3, 2}, 8: {3, 3}, 9: {3, 4}, 10: {4, 3}, 11: {4, 2},
		},
	}
}

// Formation returns the table used for the given state.
func (t *Tactics) Formation(s FormationState) Formation {
	switch s {
	case Defensive:
		return t.Defensive
	case Normal:
		return t.Normal
	default:
		return t.Offensive
	}
}

// Validate checks that every outfield jersey has a cell in each posture table,
// that the initial table also places the goalkeeper, and that all cells fit
// a cols x rows grid.
func (t *Tactics) Validate(cols, rows int) error {
	tables := []struct {
		name  string
		f     Formation
		first int
	}{
		{Defensive.String(), t.Defensive, 2},
		{Normal.String(), t.Normal, 2},
		{Offensive.String(), t.Offensive, 2},
		{"initial", t.Initial, GoalkeeperNumber},
	}
	for _, tbl := range tables {
		var missing []int
		for n := tbl.first; n <= 11; n++ {
			if _, ok := tbl.f[n]; !ok {
				missing = append(missing, n)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("%s: %w: %v", tbl.name, ErrIncompleteFormation, missing)
		}
		for _, n := range tbl.f.Numbers() {
			c := tbl.f[n]
			if c.Col < 0 || c.Col >= cols || c.Row < 0 || c.Row >= rows {
				return fmt.Errorf("%s jersey %d at (%d,%d): %w", tbl.name, n, c.Col, c.Row, ErrCellOutOfGrid)
			}
		}
	}
	return nil
}

// Numbers returns the jersey numbers in f in ascending order.
func (f Formation) Numbers() []int {
	nums := make([]int, 0, len(f))
	for n := range f {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// FormationFor classifies a ball column into a posture. The field is split in
// thirds using real division, so with 10 columns the thresholds are 3.33 and 6.67.
func FormationFor(ballCol, cols int) FormationState {
	third := float64(cols) / 3
	col := float64(ballCol)
	switch {
	case col < third:
		return Defensive
	case col < third*2:
		return Normal
	default:
		return Offensive
	}
}

// ExpectedPosition returns the center of the region the player should occupy
// given where the ball is.
func (t *Tactics) ExpectedPosition(ball field.Point, m field.Mapper, number int) (field.Point, error) {
	ballRegion, err := m.RegionFromPoint(ball)
	if err != nil {
		return field.Point{}, fmt.Errorf("ball region: %w", err)
	}
	state := FormationFor(ballRegion.Col, m.Cols())
	return cellCenter(t.Formation(state), state.String(), m, number)
}

// InitialPosition returns where the player should stand at kick-off.
func (t *Tactics) InitialPosition(m field.Mapper, number int) (field.Point, error) {
	return cellCenter(t.Initial, "initial", m, number)
}

func cellCenter(f Formation, name string, m field.Mapper, number int) (field.Point, error) {
	cell, ok := f[number]
	if !ok {
		return field.Point{}, fmt.Errorf("%s jersey %d: %w", name, number, ErrUnknownJersey)
	}
	region, err := m.Region(cell.Col, cell.Row)
	if err != nil {
		return field.Point{}, fmt.Errorf("%s region (%d,%d): %w", name, cell.Col, cell.Row, err)
	}
	return region.Center, nil
}

// LoadTactics reads a tactics file (any format viper understands, usually
// yaml or json). Tables absent from the file keep their default values.
//
//	normal:
//	  "2": {col: 2, row: 1}
func LoadTactics(path string) (*Tactics, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read tactics %s: %w", path, err)
	}

	t := DefaultTactics()
	targets := map[string]*Formation{
		"defensive": &t.Defensive,
		"normal":    &t.Normal,
		"offensive": &t.Offensive,
		"initial":   &t.Initial,
	}
	for key, dst := range targets {
		if !v.IsSet(key) {
			continue
		}
		var raw map[string]Cell
		if err := v.UnmarshalKey(key, &raw); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		f := make(Formation, len(raw))
		for k, c := range raw {
			n, err := strconv.Atoi(k)
			if err != nil {
				return nil, fmt.Errorf("%s: bad jersey %q: %w", key, k, err)
			}
			f[n] = c
		}
		*dst = f
	}
	return t, nil
}
