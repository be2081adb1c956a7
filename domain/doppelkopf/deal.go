package doppelkopf

import (
	"fmt"
	"slices"

	"github.com/luca-patrignani/doppelkopf/domain/deck"
)

// BuildDeck returns the double deck for rules in canonical order.
func BuildDeck(rules Rules) []Card {
	cards := make([]Card, 0, rules.DeckSize())
	for _, suit := range Suits {
		for _, rank := range rules.ranks() {
			for cp := uint8(0); cp < 2; cp++ {
				cards = append(cards, Card{Suit: suit, Rank: rank, Copy: cp})
			}
		}
	}
	sortCanonical(cards)
	return cards
}

// NewGame shuffles the deck with seed and deals it. The seat left of
// cardGiver receives the first packet, votes first and leads first.
func NewGame(seed int64, cardGiver int, opts ...Option) *Game {
	rules := NewRules(opts...)
	cards := BuildDeck(rules)
	deck.Shuffle(cards, seed)

	cardGiver = normalizeSeat(cardGiver)
	n := rules.HandSize()
	var hands [NumSeats][]Card
	for i := 0; i < NumSeats; i++ {
		seat := (cardGiver + 1 + i) % NumSeats
		hands[seat] = slices.Clone(cards[i*n : (i+1)*n])
	}
	g := newGame(rules, cardGiver, hands)
	g.Seed = seed
	return g
}

// NewGameWithHands deals a fixed layout. The hands together must be exactly
// the deck selected by opts.
func NewGameWithHands(hands [NumSeats][]Card, cardGiver int, opts ...Option) (*Game, error) {
	rules := NewRules(opts...)
	if err := validateLayout(hands, rules); err != nil {
		return nil, err
	}
	var own [NumSeats][]Card
	for i := range hands {
		own[i] = slices.Clone(hands[i])
	}
	return newGame(rules, normalizeSeat(cardGiver), own), nil
}

func newGame(rules Rules, cardGiver int, hands [NumSeats][]Card) *Game {
	g := &Game{
		Rules:        rules,
		CardGiver:    cardGiver,
		Phase:        VariantSelection,
		Variant:      Normal,
		Hands:        hands,
		Declarer:     -1,
		HochzeitSeat: -1,
		Announcements: [2]Announcement{
			{Level: LevelNone, BaseCard: -1},
			{Level: LevelNone, BaseCard: -1},
		},
	}
	for seat := range g.Hands {
		sortCanonical(g.Hands[seat])
	}
	g.CurrentSeat = g.FirstSeat()
	g.CurrentTrick = newTrick(g.CurrentSeat)
	g.Teams = g.queenOfClubsTeams()
	return g
}

// queenOfClubsTeams puts every holder of a Queen of Clubs on Re.
func (g *Game) queenOfClubsTeams() [NumSeats]Team {
	var teams [NumSeats]Team
	for seat, hand := range g.Hands {
		teams[seat] = Kontra
		if slices.ContainsFunc(hand, Card.isQueenOfClubs) {
			teams[seat] = Re
		}
	}
	return teams
}

func validateLayout(hands [NumSeats][]Card, rules Rules) error {
	n := rules.HandSize()
	want := make(map[Card]bool, rules.DeckSize())
	for _, c := range BuildDeck(rules) {
		want[c] = true
	}
	for seat, hand := range hands {
		if len(hand) != n {
			return fmt.Errorf("%w: seat %d holds %d cards, want %d", ErrInvalidDeal, seat, len(hand), n)
		}
		for _, c := range hand {
			if !want[c] {
				return fmt.Errorf("%w: card %s is not in the deck or dealt twice", ErrInvalidDeal, c.Code())
			}
			delete(want, c)
		}
	}
	return nil
}

func normalizeSeat(seat int) int {
	return ((seat % NumSeats) + NumSeats) % NumSeats
}
