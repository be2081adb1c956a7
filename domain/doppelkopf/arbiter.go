package doppelkopf

import "fmt"

// LegalVariants lists the variants seat may vote for. Hochzeit is offered
// only to a seat holding both Queens of Clubs.
func (g *Game) LegalVariants(seat int) ([]Variant, error) {
	if g.Phase != VariantSelection {
		return nil, fmt.Errorf("%w: variants are chosen in %s, game is in %s", ErrWrongPhase, VariantSelection, g.Phase)
	}
	if !validSeat(seat) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}
	variants := []Variant{Normal}
	if g.HasHochzeit(seat) {
		variants = append(variants, Hochzeit)
	}
	return append(variants, QueenSolo, JackSolo, KingSolo, Fleshless), nil
}

// VoteVariant records the vote of the seat in turn. The fourth vote closes
// the election and returns its outcome; earlier votes return nil.
func (g *Game) VoteVariant(seat int, v Variant) (*Arbitration, error) {
	if g.Phase != VariantSelection {
		return nil, fmt.Errorf("%w: cannot vote in %s", ErrWrongPhase, g.Phase)
	}
	if !validSeat(seat) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}
	if seat != g.CurrentSeat {
		return nil, fmt.Errorf("%w: seat %d voted, seat %d is to vote", ErrNotSeatTurn, seat, g.CurrentSeat)
	}
	if !g.mayVote(seat, v) {
		return nil, fmt.Errorf("%w: seat %d cannot vote %s", ErrInvalidVariant, seat, v)
	}

	g.Votes[seat] = Vote{Cast: true, Variant: v}
	g.History = append(g.History, VoteAction(seat, v))
	g.CurrentSeat = nextSeat(seat)
	if g.CurrentSeat != g.FirstSeat() {
		g.check()
		return nil, nil
	}

	arb := g.arbitrate()
	g.Variant = arb.Variant
	g.Declarer = arb.Declarer
	g.Teams = arb.Teams
	if arb.Variant == Hochzeit {
		g.HochzeitSeat = arb.Declarer
	}
	g.Phase = Playing
	g.CurrentSeat = g.FirstSeat()
	g.CurrentTrick = newTrick(g.CurrentSeat)
	g.check()
	return &arb, nil
}

func (g *Game) mayVote(seat int, v Variant) bool {
	legal, err := g.LegalVariants(seat)
	if err != nil {
		return false
	}
	for _, l := range legal {
		if l == v {
			return true
		}
	}
	return false
}

// arbitrate picks the vote with the lowest priority number, scanning in
// voting order so the earlier voter wins a tie.
func (g *Game) arbitrate() Arbitration {
	arb := Arbitration{Variant: Normal, Declarer: -1, Teams: g.queenOfClubsTeams()}
	seat := g.FirstSeat()
	for range NumSeats {
		v := g.Votes[seat].Variant
		if v.Priority() < arb.Variant.Priority() {
			arb.Variant = v
			arb.Declarer = seat
		}
		seat = nextSeat(seat)
	}
	if arb.Declarer >= 0 {
		for s := range arb.Teams {
			arb.Teams[s] = Kontra
		}
		arb.Teams[arb.Declarer] = Re
	}
	return arb
}
