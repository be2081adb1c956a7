package table

import (
	"cmp"
	"slices"

	"github.com/luca-patrignani/doppelkopf/domain/doppelkopf"
)

// Standings is the running score over the games played at a table.
type Standings struct {
	Names  [doppelkopf.NumSeats]string
	Points [doppelkopf.NumSeats]int
	Wins   [doppelkopf.NumSeats]int
	Games  int
	// Deltas holds the game points of every finished game in order.
	Deltas [][doppelkopf.NumSeats]int
}

func (s *Standings) add(r doppelkopf.Result) {
	s.Games++
	for seat, p := range r.GamePoints {
		s.Points[seat] += p
		if p > 0 {
			s.Wins[seat]++
		}
	}
	s.Deltas = append(s.Deltas, r.GamePoints)
}

func (s Standings) clone() Standings {
	s.Deltas = slices.Clone(s.Deltas)
	return s
}

// Ranking returns the seats ordered by points, best first. Ties keep seat
// order.
func (s Standings) Ranking() []int {
	seats := []int{0, 1, 2, 3}
	slices.SortStableFunc(seats, func(a, b int) int {
		return cmp.Compare(s.Points[b], s.Points[a])
	})
	return seats
}
