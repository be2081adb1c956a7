package bot

import (
	"math/rand/v2"
	"slices"

	"github.com/luca-patrignani/doppelkopf/domain/deck"
	"github.com/luca-patrignani/doppelkopf/domain/doppelkopf"
)

const (
	// soloTrumps is the number of own trumps that makes a solo worth voting.
	soloTrumps = 5
	// strongTrumps is the number of queens and hearts tens that makes Re or
	// Contra worth announcing.
	strongTrumps = 3
)

// HeuristicAgent follows a few rules of thumb and does not count cards.
type HeuristicAgent struct {
	rng *rand.Rand
}

func NewHeuristic(seed int64) *HeuristicAgent {
	return &HeuristicAgent{rng: rand.New(deck.NewSource(seed))}
}

var soloOrder = []doppelkopf.Variant{doppelkopf.Fleshless, doppelkopf.KingSolo, doppelkopf.QueenSolo, doppelkopf.JackSolo}

func (a *HeuristicAgent) ChooseVariant(g *doppelkopf.Game, seat int) (doppelkopf.Variant, error) {
	legal, err := g.LegalVariants(seat)
	if err != nil {
		return doppelkopf.Normal, err
	}
	if slices.Contains(legal, doppelkopf.Hochzeit) {
		return doppelkopf.Hochzeit, nil
	}
	hand := g.Hand(seat)
	best, bestCount := doppelkopf.Normal, soloTrumps-1
	for _, v := range soloOrder {
		if n := countTrumps(hand, v); n > bestCount {
			best, bestCount = v, n
		}
	}
	return best, nil
}

func (a *HeuristicAgent) ChooseAnnouncement(g *doppelkopf.Game, seat int) (doppelkopf.Declaration, bool) {
	legal := g.LegalDeclarations(seat)
	strong := 0
	for _, c := range g.Hand(seat) {
		if doppelkopf.IsTrump(c, g.Variant) && doppelkopf.OrderValue(c, g.Variant) >= 100 {
			strong++
		}
	}
	for _, d := range legal {
		switch d {
		case doppelkopf.DeclareRe, doppelkopf.DeclareContra:
			if strong >= strongTrumps {
				return d, true
			}
		case doppelkopf.DeclareHochzeit:
			return d, true
		}
	}
	return 0, false
}

func (a *HeuristicAgent) ChooseCard(g *doppelkopf.Game, seat int) (doppelkopf.Card, error) {
	legal, err := g.LegalActions(seat)
	if err != nil {
		return doppelkopf.Card{}, err
	}
	if len(legal) == 0 {
		return doppelkopf.Card{}, ErrNoLegalCard
	}
	v := g.Variant
	trick := g.CurrentTrick
	if len(trick.Cards) == 0 {
		return a.lead(legal, v), nil
	}

	bestSeat := trick.SeatOf(doppelkopf.WinningCard(trick.Cards, v))
	if g.TeamOf(bestSeat) == g.TeamOf(seat) {
		return smear(legal, v), nil
	}

	var winning []doppelkopf.Card
	for _, c := range legal {
		cards := append(slices.Clone(trick.Cards), c)
		if doppelkopf.WinningCard(cards, v) == len(cards)-1 {
			winning = append(winning, c)
		}
	}
	if len(winning) > 0 {
		return cheapest(winning, v), nil
	}
	return cheapest(legal, v), nil
}

// lead plays a plain Ace when there is one, otherwise a random low card.
func (a *HeuristicAgent) lead(legal []doppelkopf.Card, v doppelkopf.Variant) doppelkopf.Card {
	for _, c := range legal {
		if c.Rank == doppelkopf.Ace && !doppelkopf.IsTrump(c, v) {
			return c
		}
	}
	sorted := byCost(legal, v)
	return sorted[a.rng.IntN((len(sorted)+1)/2)]
}

// smear gives the most points to a trick the own team already holds,
// keeping trumps where possible.
func smear(legal []doppelkopf.Card, v doppelkopf.Variant) doppelkopf.Card {
	best := legal[0]
	for _, c := range legal[1:] {
		cp, bp := c.Points(), best.Points()
		ct, bt := doppelkopf.IsTrump(c, v), doppelkopf.IsTrump(best, v)
		if cp > bp || (cp == bp && !ct && bt) {
			best = c
		}
	}
	return best
}

func cheapest(cards []doppelkopf.Card, v doppelkopf.Variant) doppelkopf.Card {
	return byCost(cards, v)[0]
}

// byCost orders cards from cheapest to dearest: fewest points first, then
// plain before trump, then lowest order value.
func byCost(cards []doppelkopf.Card, v doppelkopf.Variant) []doppelkopf.Card {
	sorted := slices.Clone(cards)
	slices.SortStableFunc(sorted, func(x, y doppelkopf.Card) int {
		if d := x.Points() - y.Points(); d != 0 {
			return d
		}
		xt, yt := doppelkopf.IsTrump(x, v), doppelkopf.IsTrump(y, v)
		if xt != yt {
			if xt {
				return 1
			}
			return -1
		}
		return doppelkopf.OrderValue(x, v) - doppelkopf.OrderValue(y, v)
	})
	return sorted
}

func countTrumps(hand []doppelkopf.Card, v doppelkopf.Variant) int {
	n := 0
	for _, c := range hand {
		if doppelkopf.IsTrump(c, v) {
			n++
		}
	}
	return n
}
