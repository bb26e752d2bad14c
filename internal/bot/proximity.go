package bot

import "github.com/freeeve/lugo-striker/pkg/field"

// NearThreshold is the maximum row and column distance for two regions to be near.
const NearThreshold = 2

// farTeammatesForClosest is how many teammates must be farther from the ball
// before a player treats itself as the one who should chase it.
const farTeammatesForClosest = 9

// IsNear reports whether two regions are within NearThreshold cells on both axes.
func IsNear(a, b field.Region) bool {
	return absInt(a.Row-b.Row) <= NearThreshold && absInt(a.Col-b.Col) <= NearThreshold
}

// HasOtherClosest reports whether the acting player should leave the ball to
// someone else. It counts outfield teammates strictly farther from the ball
// than the player and returns false only when at least nine are.
//
// With fewer than ten outfield players on the team the count can never reach
// nine, so the result is always true.
func HasOtherClosest(insp Inspector) bool {
	ball := insp.Ball()
	me := insp.Me()
	mine := field.DistanceSquared(me.Position, ball)

	farther := 0
	for _, p := range insp.MyTeamPlayers() {
		if p.Number == GoalkeeperNumber {
			continue
		}
		if field.DistanceSquared(p.Position, ball) > mine {
			farther++
		}
	}
	return farther < farTeammatesForClosest
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
