// Package bot provides computer players for a Doppelkopf table.
package bot

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/luca-patrignani/doppelkopf/domain/deck"
	"github.com/luca-patrignani/doppelkopf/domain/doppelkopf"
)

// Agent decides for one seat. Agents only read the game; the table applies
// their choices.
type Agent interface {
	ChooseVariant(g *doppelkopf.Game, seat int) (doppelkopf.Variant, error)
	ChooseCard(g *doppelkopf.Game, seat int) (doppelkopf.Card, error)
	// ChooseAnnouncement returns false to stay silent.
	ChooseAnnouncement(g *doppelkopf.Game, seat int) (doppelkopf.Declaration, bool)
}

// Kind names an agent implementation.
type Kind string

const (
	KindRandom    Kind = "random"
	KindHeuristic Kind = "heuristic"
)

var ErrNoLegalCard = errors.New("no legal card")

// NewAgent creates an agent of the given kind seeded with seed.
func NewAgent(kind Kind, seed int64) (Agent, error) {
	switch kind {
	case KindRandom:
		return NewRandom(seed), nil
	case KindHeuristic:
		return NewHeuristic(seed), nil
	default:
		return nil, fmt.Errorf("unknown agent kind: %q", kind)
	}
}

// RandomAgent picks uniformly among the legal choices and announces now and
// then.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandom(seed int64) *RandomAgent {
	return &RandomAgent{rng: rand.New(deck.NewSource(seed))}
}

func (a *RandomAgent) ChooseVariant(g *doppelkopf.Game, seat int) (doppelkopf.Variant, error) {
	legal, err := g.LegalVariants(seat)
	if err != nil {
		return doppelkopf.Normal, err
	}
	return legal[a.rng.IntN(len(legal))], nil
}

func (a *RandomAgent) ChooseCard(g *doppelkopf.Game, seat int) (doppelkopf.Card, error) {
	legal, err := g.LegalActions(seat)
	if err != nil {
		return doppelkopf.Card{}, err
	}
	if len(legal) == 0 {
		return doppelkopf.Card{}, ErrNoLegalCard
	}
	return legal[a.rng.IntN(len(legal))], nil
}

func (a *RandomAgent) ChooseAnnouncement(g *doppelkopf.Game, seat int) (doppelkopf.Declaration, bool) {
	legal := g.LegalDeclarations(seat)
	if len(legal) == 0 || a.rng.IntN(8) != 0 {
		return 0, false
	}
	return legal[a.rng.IntN(len(legal))], true
}
