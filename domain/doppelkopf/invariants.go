package doppelkopf

import (
	"errors"
	"fmt"
)

// CheckInvariants verifies the structural invariants of the game: card
// conservation, the zero-sum bonus swings, team point totals, and the
// zero-sum result of a finished game.
func (g *Game) CheckInvariants() error {
	var errs []error

	held := 0
	seen := make(map[Card]bool, g.Rules.DeckSize())
	note := func(c Card) {
		if seen[c] {
			errs = append(errs, fmt.Errorf("card %s appears twice", c.Code()))
		}
		seen[c] = true
	}
	for _, h := range g.Hands {
		held += len(h)
		for _, c := range h {
			note(c)
		}
	}
	for _, c := range g.CurrentTrick.Cards {
		note(c)
	}
	trickPoints := 0
	for _, t := range g.Tricks {
		if len(t.Cards) != NumSeats {
			errs = append(errs, fmt.Errorf("completed trick holds %d cards", len(t.Cards)))
		}
		for _, c := range t.Cards {
			note(c)
		}
		trickPoints += t.Points
	}
	if total := held + len(g.CurrentTrick.Cards) + NumSeats*len(g.Tricks); total != g.Rules.DeckSize() {
		errs = append(errs, fmt.Errorf("card count mismatch: %d, want %d", total, g.Rules.DeckSize()))
	}
	if played := len(g.CurrentTrick.Cards) + NumSeats*len(g.Tricks); played != g.CardsPlayed {
		errs = append(errs, fmt.Errorf("cards played is %d, tricks hold %d", g.CardsPlayed, played))
	}

	if sum := g.TeamBonus[0] + g.TeamBonus[1]; sum != 0 {
		errs = append(errs, fmt.Errorf("bonus swings sum to %d", sum))
	}
	re, kontra := g.TeamScores()
	if re+kontra != trickPoints {
		errs = append(errs, fmt.Errorf("team scores %d+%d differ from trick points %d", re, kontra, trickPoints))
	}

	if g.Phase == Finished {
		if trickPoints != TotalCardPoints {
			errs = append(errs, fmt.Errorf("finished game captured %d card points", trickPoints))
		}
		if g.Result == nil {
			errs = append(errs, errors.New("finished game has no result"))
		} else {
			sum := 0
			for _, p := range g.Result.GamePoints {
				sum += p
			}
			if sum != 0 {
				errs = append(errs, fmt.Errorf("game points sum to %d", sum))
			}
		}
	}
	return errors.Join(errs...)
}

// check panics on a broken invariant when the rules ask for strict checks.
func (g *Game) check() {
	if !g.Rules.StrictChecks {
		return
	}
	if err := g.CheckInvariants(); err != nil {
		panic(fmt.Errorf("doppelkopf: invariant violated: %w", err))
	}
}
