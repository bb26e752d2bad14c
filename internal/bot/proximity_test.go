package bot

import (
	"testing"

	"github.com/freeeve/lugo-striker/pkg/field"
)

func TestIsNear(t *testing.T) {
	tests := []struct {
		name string
		a, b field.Region
		want bool
	}{
		{"same cell", field.Region{Col: 4, Row: 3}, field.Region{Col: 4, Row: 3}, true},
		{"two away diagonally", field.Region{Col: 4, Row: 3}, field.Region{Col: 6, Row: 5}, true},
		{"three cols away", field.Region{Col: 4, Row: 3}, field.Region{Col: 7, Row: 3}, false},
		{"three rows away", field.Region{Col: 4, Row: 0}, field.Region{Col: 4, Row: 3}, false},
		{"negative direction", field.Region{Col: 2, Row: 2}, field.Region{Col: 0, Row: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNear(tt.a, tt.b); got != tt.want {
				t.Errorf("IsNear(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestIsNear_SymmetricAndReflexive(t *testing.T) {
	var cells []field.Region
	for col := 0; col < 10; col++ {
		for row := 0; row < 6; row++ {
			cells = append(cells, field.Region{Col: col, Row: row})
		}
	}
	for _, a := range cells {
		if !IsNear(a, a) {
			t.Fatalf("IsNear(%s, %s) should be true", a, a)
		}
		for _, b := range cells {
			if IsNear(a, b) != IsNear(b, a) {
				t.Fatalf("IsNear not symmetric for %s and %s", a, b)
			}
		}
	}
}

// fullTeam puts the goalkeeper in goal, me next to the ball and spreads
// the other nine outfield players; farther of them are placed far from the
// ball, the rest closer than me.
func fullTeam(me Player, farther int) []Player {
	team := []Player{player(GoalkeeperNumber, 0, 5000), me}
	n := 2
	for i := 0; i < 9; i++ {
		if n == me.Number {
			n++
		}
		if i < farther {
			team = append(team, player(n, 18000, float64(1000+i*500)))
		} else {
			team = append(team, player(n, 10000, 5000))
		}
		n++
	}
	return team
}

func TestHasOtherClosest(t *testing.T) {
	ball := field.NewPoint(10000, 5000)
	me := player(7, 10500, 5000)

	tests := []struct {
		name    string
		farther int
		want    bool
	}{
		{"all nine others farther", 9, false},
		{"eight farther", 8, true},
		{"nobody farther", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insp := snapshot(ball, me, fullTeam(me, tt.farther)...)
			if got := HasOtherClosest(insp); got != tt.want {
				t.Errorf("HasOtherClosest = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasOtherClosest_IgnoresGoalkeeper(t *testing.T) {
	ball := field.NewPoint(10000, 5000)
	me := player(7, 10500, 5000)
	team := fullTeam(me, 8)
	// The keeper is far from the ball but does not count toward the nine.
	team[0].Position = field.NewPoint(0, 0)

	if !HasOtherClosest(snapshot(ball, me, team...)) {
		t.Error("goalkeeper must not be counted as a farther teammate")
	}
}

func TestHasOtherClosest_EqualDistanceNotFarther(t *testing.T) {
	ball := field.NewPoint(10000, 5000)
	me := player(7, 10500, 5000)
	team := fullTeam(me, 9)
	team[2].Position = field.NewPoint(9500, 5000)

	if !HasOtherClosest(snapshot(ball, me, team...)) {
		t.Error("a teammate at the same distance is not strictly farther")
	}
}

// With fewer than ten outfield players the count never reaches nine, so the
// player always defers even when it is the closest one.
func TestHasOtherClosest_ShortHandedAlwaysDefers(t *testing.T) {
	ball := field.NewPoint(10000, 5000)
	me := player(7, 10100, 5000)
	team := []Player{player(GoalkeeperNumber, 0, 5000), me}
	for n := 2; n <= 9; n++ {
		if n == me.Number {
			continue
		}
		team = append(team, player(n, 19000, 9000))
	}

	if !HasOtherClosest(snapshot(ball, me, team...)) {
		t.Error("expected true with fewer than ten outfield players")
	}
}
