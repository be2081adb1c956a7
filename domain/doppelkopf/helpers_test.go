package doppelkopf

import (
	"strings"
	"testing"
)

// layoutNormal deals the Queens of Clubs to seats 0 and 2.
var layoutNormal = [NumSeats]string{
	"QC0 QS0 QH0 QD0 JC0 AD0 AC0 TC0 KC0 AS0",
	"QS1 QH1 QD1 JC1 JS0 JS1 AC1 TC1 KC1 TS0",
	"QC1 JH0 JH1 JD0 JD1 AD1 TD0 TS1 KS0 KS1",
	"TD1 KD0 KD1 TH0 TH1 AH0 AH1 KH0 KH1 AS1",
}

// layoutHochzeit deals both Queens of Clubs to seat 0, and the spade Ace to
// seat 2 so seat 2 can take a trump-free first trick.
var layoutHochzeit = [NumSeats]string{
	"QC0 QC1 QS0 QH0 JC0 AD0 AC0 TC0 KC0 KS1",
	"QS1 QH1 QD1 JC1 JS0 JS1 AC1 TC1 KC1 TS0",
	"QD0 JH0 JH1 JD0 JD1 AD1 TD0 TS1 KS0 AS0",
	"TD1 KD0 KD1 TH0 TH1 AH0 AH1 KH0 KH1 AS1",
}

func card(t testing.TB, code string) Card {
	t.Helper()
	c, err := ParseCard(code)
	if err != nil {
		t.Fatalf("bad card code %q: %v", code, err)
	}
	return c
}

func cards(t testing.TB, codes string) []Card {
	t.Helper()
	out := []Card{}
	for _, code := range strings.Fields(codes) {
		out = append(out, card(t, code))
	}
	return out
}

// dealt builds a game from a fixed layout with the card giver on seat 3, so
// seat 0 votes and leads first.
func dealt(t testing.TB, layout [NumSeats]string, opts ...Option) *Game {
	t.Helper()
	var hands [NumSeats][]Card
	for i, codes := range layout {
		hands[i] = cards(t, codes)
	}
	opts = append([]Option{WithStrictChecks()}, opts...)
	g, err := NewGameWithHands(hands, 3, opts...)
	if err != nil {
		t.Fatalf("failed to deal layout: %v", err)
	}
	return g
}

// voteAll casts votes in seat order starting at the first seat.
func voteAll(t testing.TB, g *Game, votes ...Variant) *Arbitration {
	t.Helper()
	var arb *Arbitration
	seat := g.FirstSeat()
	for _, v := range votes {
		var err error
		arb, err = g.VoteVariant(seat, v)
		if err != nil {
			t.Fatalf("seat %d failed to vote %s: %v", seat, v, err)
		}
		seat = nextSeat(seat)
	}
	return arb
}

func play(t testing.TB, g *Game, seat int, code string) *TrickResult {
	t.Helper()
	res, err := g.PlayCard(seat, card(t, code))
	if err != nil {
		t.Fatalf("seat %d failed to play %s: %v", seat, code, err)
	}
	return res
}

// playTrick plays one card per seat starting at the current seat.
func playTrick(t testing.TB, g *Game, codes ...string) *TrickResult {
	t.Helper()
	var res *TrickResult
	for _, code := range codes {
		res = play(t, g, g.CurrentSeat, code)
	}
	if res == nil {
		t.Fatalf("trick %v did not complete", codes)
	}
	return res
}

// finishedGame builds a terminal state with the given per-seat card points.
func finishedGame(variant Variant, teams [NumSeats]Team, points [NumSeats]int) *Game {
	g := &Game{
		Rules:            NewRules(),
		Phase:            Finished,
		Variant:          variant,
		Teams:            teams,
		PlayerCardScores: points,
		Declarer:         -1,
		HochzeitSeat:     -1,
		Announcements: [2]Announcement{
			{Level: LevelNone, BaseCard: -1},
			{Level: LevelNone, BaseCard: -1},
		},
	}
	return g
}

var twoVsTwo = [NumSeats]Team{Re, Kontra, Re, Kontra}
