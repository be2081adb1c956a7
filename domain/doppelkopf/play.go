package doppelkopf

import (
	"fmt"
	"slices"
)

// LegalActions returns the cards seat may play now.
func (g *Game) LegalActions(seat int) ([]Card, error) {
	if g.Phase != Playing {
		return nil, fmt.Errorf("%w: cards are played in %s, game is in %s", ErrWrongPhase, Playing, g.Phase)
	}
	if !validSeat(seat) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}
	if seat != g.CurrentSeat {
		return nil, fmt.Errorf("%w: seat %d asked, seat %d is to play", ErrNotSeatTurn, seat, g.CurrentSeat)
	}
	return g.legalCards(seat), nil
}

func (g *Game) legalCards(seat int) []Card {
	hand := g.Hands[seat]
	if len(g.CurrentTrick.Cards) == 0 {
		return slices.Clone(hand)
	}
	lead := g.CurrentTrick.Cards[0]
	var follow []Card
	for _, c := range hand {
		if g.follows(c, lead) {
			follow = append(follow, c)
		}
	}
	if len(follow) > 0 {
		return follow
	}
	return slices.Clone(hand)
}

// follows reports whether c serves the lead: trump on trump, otherwise the
// same plain suit.
func (g *Game) follows(c, lead Card) bool {
	leadTrump := IsTrump(lead, g.Variant)
	if IsTrump(c, g.Variant) != leadTrump {
		return false
	}
	return leadTrump || c.Suit == lead.Suit
}

// PlayCard plays card for seat. When the card completes a trick the trick is
// resolved and described by the returned TrickResult; otherwise the result
// is nil.
func (g *Game) PlayCard(seat int, card Card) (*TrickResult, error) {
	legal, err := g.LegalActions(seat)
	if err != nil {
		return nil, err
	}
	if !containsCard(g.Hands[seat], card) {
		return nil, fmt.Errorf("%w: seat %d does not hold %s", ErrIllegalCard, seat, card.Code())
	}
	if !containsCard(legal, card) {
		return nil, fmt.Errorf("%w: seat %d must follow %s", ErrIllegalCard, seat, g.CurrentTrick.Cards[0].Code())
	}

	g.Hands[seat], _ = removeCard(g.Hands[seat], card)
	g.CurrentTrick.Cards = append(g.CurrentTrick.Cards, card)
	g.CardsPlayed++
	g.CurrentSeat = nextSeat(seat)
	g.History = append(g.History, PlayAction(seat, card))

	var res *TrickResult
	if len(g.CurrentTrick.Cards) == NumSeats {
		res = g.resolveTrick()
	}
	g.check()
	return res, nil
}

func (g *Game) resolveTrick() *TrickResult {
	trick := g.CurrentTrick
	winner := trick.SeatOf(WinningCard(trick.Cards, g.Variant))
	points := 0
	for _, c := range trick.Cards {
		points += c.Points()
	}
	trick.Winner = winner
	trick.Points = points
	g.PlayerCardScores[winner] += points

	idx := len(g.Tricks)
	res := &TrickResult{Winner: winner, Points: points}
	if g.Variant == Hochzeit && !g.PartnerBound && g.Teams[winner] != Re && !g.hasTrump(trick.Cards) {
		g.Teams[winner] = Re
		g.PartnerBound = true
		res.PartnerBound = true
		g.resettleCaptures()
	}
	winTeam := g.Teams[winner]

	if g.Rules.FoxBonus && g.Variant.hasFox() {
		for i, c := range trick.Cards {
			from := trick.SeatOf(i)
			if c.isDiamondAce() && g.Teams[from] != winTeam {
				res.Captures = append(res.Captures, g.award(Capture{
					Kind: CaptureDiamondAce, Trick: idx, Winner: winner, From: from, Team: winTeam,
				}))
			}
		}
	}
	if g.Rules.DoppelkopfBonus && points >= 40 {
		res.Captures = append(res.Captures, g.award(Capture{
			Kind: CaptureFortyPlus, Trick: idx, Winner: winner, From: -1, Team: winTeam,
		}))
	}

	g.Tricks = append(g.Tricks, trick)
	res.Trick = trick.clone()
	g.CurrentSeat = winner
	g.CurrentTrick = newTrick(winner)

	if g.handsEmpty() {
		g.Phase = Finished
		r := g.score()
		g.Result = &r
	}
	return res
}

// award applies a bonus swing and records it.
func (g *Game) award(c Capture) Capture {
	g.TeamBonus[c.Team.slot()]++
	g.TeamBonus[c.Team.Opponent().slot()]--
	g.Captures = append(g.Captures, c)
	return c
}

// resettleCaptures recomputes the bonus swings under the current teams. A
// Diamond Ace taken from a seat that is now a partner no longer counts.
func (g *Game) resettleCaptures() {
	kept := g.Captures[:0]
	g.TeamBonus = [2]int{}
	for _, c := range g.Captures {
		c.Team = g.Teams[c.Winner]
		if c.Kind == CaptureDiamondAce && g.Teams[c.From] == c.Team {
			continue
		}
		g.TeamBonus[c.Team.slot()]++
		g.TeamBonus[c.Team.Opponent().slot()]--
		kept = append(kept, c)
	}
	g.Captures = kept
}

func (g *Game) hasTrump(cards []Card) bool {
	for _, c := range cards {
		if IsTrump(c, g.Variant) {
			return true
		}
	}
	return false
}

func (g *Game) handsEmpty() bool {
	for _, h := range g.Hands {
		if len(h) > 0 {
			return false
		}
	}
	return true
}
