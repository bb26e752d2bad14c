package bot

import "github.com/freeeve/lugo-striker/pkg/field"

// GoalkeeperNumber is the jersey reserved for the goalkeeper.
const GoalkeeperNumber = 1

// Player is a team member as seen in a snapshot.
type Player struct {
	Number   int         `json:"number"`
	Position field.Point `json:"position"`
}

// Inspector exposes the parts of a game snapshot the policy reads.
type Inspector interface {
	Ball() field.Point
	Me() Player
	MyTeamPlayers() []Player
	IsBallHolder() bool
}

// Snapshot is a plain Inspector built from already decoded values.
type Snapshot struct {
	BallPosition field.Point `json:"ball"`
	Self         Player      `json:"me"`
	Team         []Player    `json:"team"`
	HoldsBall    bool        `json:"holds_ball"`
}

func (s *Snapshot) Ball() field.Point       { return s.BallPosition }
func (s *Snapshot) Me() Player              { return s.Self }
func (s *Snapshot) MyTeamPlayers() []Player { return s.Team }
func (s *Snapshot) IsBallHolder() bool      { return s.HoldsBall }
