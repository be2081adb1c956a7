package doppelkopf

import "slices"

// Game is the authoritative state of one Doppelkopf deal. All fields are
// exported so a game can be snapshotted; mutate it only through its methods.
type Game struct {
	Rules     Rules   `json:"rules"`
	Seed      int64   `json:"seed"`
	CardGiver int     `json:"card_giver"`
	Phase     Phase   `json:"phase"`
	Variant   Variant `json:"variant"`

	Hands        [NumSeats][]Card `json:"hands"`
	Tricks       []Trick          `json:"tricks"`
	CurrentTrick Trick            `json:"current_trick"`
	CurrentSeat  int              `json:"current_seat"`

	Teams [NumSeats]Team `json:"teams"`
	Votes [NumSeats]Vote `json:"votes"`
	// Declarer is the seat whose vote decided the variant, -1 for normal.
	Declarer int `json:"declarer"`
	// HochzeitSeat holds both Queens of Clubs in a Hochzeit game, else -1.
	HochzeitSeat int  `json:"hochzeit_seat"`
	PartnerBound bool `json:"partner_bound"`

	// Announcements holds the Re chain at index 0 and the Kontra chain at 1.
	Announcements [2]Announcement `json:"announcements"`

	PlayerCardScores [NumSeats]int `json:"player_card_scores"`
	// TeamBonus holds the bonus swings of Re and Kontra; they sum to zero.
	TeamBonus   [2]int    `json:"team_bonus"`
	Captures    []Capture `json:"captures"`
	CardsPlayed int       `json:"cards_played"`

	History []Action `json:"history"`
	Result  *Result  `json:"result,omitempty"`
}

// FirstSeat is the seat left of the card giver. It votes first and leads the
// first trick.
func (g *Game) FirstSeat() int {
	return (g.CardGiver + 1) % NumSeats
}

// Hand returns a copy of the cards held by seat.
func (g *Game) Hand(seat int) []Card {
	if !validSeat(seat) {
		return nil
	}
	return slices.Clone(g.Hands[seat])
}

// TeamOf returns the current team of seat.
func (g *Game) TeamOf(seat int) Team {
	if !validSeat(seat) {
		return TeamUnknown
	}
	return g.Teams[seat]
}

// IsFinished reports whether every card has been played.
func (g *Game) IsFinished() bool {
	return g.Phase == Finished
}

// HasHochzeit reports whether seat holds both Queens of Clubs.
func (g *Game) HasHochzeit(seat int) bool {
	if !validSeat(seat) {
		return false
	}
	n := 0
	for _, c := range g.Hands[seat] {
		if c.isQueenOfClubs() {
			n++
		}
	}
	return n == 2
}

// TeamScores returns the card points of Re and Kontra under the current team
// assignment, including the bonus swings.
func (g *Game) TeamScores() (re, kontra int) {
	for seat, pts := range g.PlayerCardScores {
		if g.Teams[seat] == Re {
			re += pts
		} else {
			kontra += pts
		}
	}
	return re + g.TeamBonus[Re.slot()], kontra + g.TeamBonus[Kontra.slot()]
}

// SeatsOf lists the seats on team t.
func (g *Game) SeatsOf(t Team) []int {
	var seats []int
	for seat, team := range g.Teams {
		if team == t {
			seats = append(seats, seat)
		}
	}
	return seats
}

// Clone returns a deep copy of the game.
func (g *Game) Clone() *Game {
	c := *g
	for i := range g.Hands {
		c.Hands[i] = slices.Clone(g.Hands[i])
	}
	if g.Tricks != nil {
		c.Tricks = make([]Trick, len(g.Tricks))
		for i, t := range g.Tricks {
			c.Tricks[i] = t.clone()
		}
	}
	c.CurrentTrick = g.CurrentTrick.clone()
	c.Captures = slices.Clone(g.Captures)
	c.History = slices.Clone(g.History)
	if g.Result != nil {
		r := g.Result.clone()
		c.Result = &r
	}
	return &c
}

func (t Trick) clone() Trick {
	t.Cards = slices.Clone(t.Cards)
	return t
}

func validSeat(seat int) bool {
	return seat >= 0 && seat < NumSeats
}

func nextSeat(seat int) int {
	return (seat + 1) % NumSeats
}
