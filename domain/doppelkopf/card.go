package doppelkopf

import (
	"fmt"
	"slices"

	"github.com/pterm/pterm"
)

// Suit of a card. The numeric order is the trump tiebreak:
// Clubs > Spades > Hearts > Diamonds.
type Suit uint8

const (
	Diamonds Suit = iota
	Hearts
	Spades
	Clubs
)

// Suits lists the suits from highest to lowest tiebreak.
var Suits = []Suit{Clubs, Spades, Hearts, Diamonds}

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "Clubs"
	case Spades:
		return "Spades"
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	default:
		return fmt.Sprintf("Suit(%d)", uint8(s))
	}
}

func (s Suit) letter() byte {
	return "DHSC"[s]
}

// Rank of a card. The declaration order is not the playing order: see
// Rank.Value for that.
type Rank uint8

const (
	Nine Rank = iota
	Jack
	Queen
	King
	Ten
	Ace
)

// Ranks lists every rank, Nine included.
var Ranks = []Rank{Nine, Jack, Queen, King, Ten, Ace}

func (r Rank) String() string {
	switch r {
	case Nine:
		return "Nine"
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	case Ten:
		return "Ten"
	case Ace:
		return "Ace"
	default:
		return fmt.Sprintf("Rank(%d)", uint8(r))
	}
}

// Value is the non-trump ordering value of the rank.
func (r Rank) Value() int {
	switch r {
	case Ace:
		return 14
	case King:
		return 13
	case Queen:
		return 12
	case Jack:
		return 11
	case Ten:
		return 10
	default:
		return 9
	}
}

// Points is the card-point value counted when a trick is captured.
func (r Rank) Points() int {
	switch r {
	case Ace:
		return 11
	case Ten:
		return 10
	case King:
		return 4
	case Queen:
		return 3
	case Jack:
		return 2
	default:
		return 0
	}
}

func (r Rank) letter() byte {
	return "9JQKTA"[r]
}

// Card is one physical card of the double deck. The two copies of a face
// are distinct cards.
type Card struct {
	Suit Suit
	Rank Rank
	Copy uint8
}

// NewCard creates a new Card with validation.
func NewCard(suit Suit, rank Rank, cp uint8) (Card, error) {
	if suit > Clubs || rank > Ace || cp > 1 {
		return Card{}, fmt.Errorf("invalid card %d, %d, %d", suit, rank, cp)
	}
	return Card{Suit: suit, Rank: rank, Copy: cp}, nil
}

// Points is the card-point value of the card.
func (c Card) Points() int {
	return c.Rank.Points()
}

// SameFace reports whether c and o differ at most in their copy.
func (c Card) SameFace(o Card) bool {
	return c.Suit == o.Suit && c.Rank == o.Rank
}

func (c Card) isQueenOfClubs() bool {
	return c.Suit == Clubs && c.Rank == Queen
}

func (c Card) isTenOfHearts() bool {
	return c.Suit == Hearts && c.Rank == Ten
}

func (c Card) isDiamondAce() bool {
	return c.Suit == Diamonds && c.Rank == Ace
}

// Code is the compact text form of the card: rank, suit and copy, e.g. "QC0".
func (c Card) Code() string {
	return string([]byte{c.Rank.letter(), c.Suit.letter(), '0' + c.Copy})
}

// String returns a human-readable representation of the Card using suit
// symbols (♣, ♠, ♥, ♦) and rank abbreviations.
func (c Card) String() string {
	var suit string
	switch c.Suit {
	case Clubs:
		suit = pterm.Black("♣")
	case Spades:
		suit = pterm.Black("♠")
	case Hearts:
		suit = pterm.LightRed("♥")
	case Diamonds:
		suit = pterm.LightRed("♦")
	default:
		suit = "?"
	}
	rank := string(c.Rank.letter())
	if c.Rank == Ten {
		rank = "10"
	}
	return rank + suit
}

// MarshalText encodes the card as its Code.
func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.Code()), nil
}

// UnmarshalText decodes a card from its Code.
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard reads a card code such as "QC0" or "th1". A missing copy digit
// means copy 0.
func ParseCard(code string) (Card, error) {
	if len(code) != 2 && len(code) != 3 {
		return Card{}, fmt.Errorf("invalid card code %q", code)
	}
	rank, ok := rankFromLetter(code[0])
	if !ok {
		return Card{}, fmt.Errorf("invalid rank in card code %q", code)
	}
	suit, ok := suitFromLetter(code[1])
	if !ok {
		return Card{}, fmt.Errorf("invalid suit in card code %q", code)
	}
	var cp uint8
	if len(code) == 3 {
		switch code[2] {
		case '0':
		case '1':
			cp = 1
		default:
			return Card{}, fmt.Errorf("invalid copy in card code %q", code)
		}
	}
	return NewCard(suit, rank, cp)
}

func rankFromLetter(b byte) (Rank, bool) {
	switch b {
	case '9':
		return Nine, true
	case 'J', 'j':
		return Jack, true
	case 'Q', 'q':
		return Queen, true
	case 'K', 'k':
		return King, true
	case 'T', 't':
		return Ten, true
	case 'A', 'a':
		return Ace, true
	}
	return 0, false
}

func suitFromLetter(b byte) (Suit, bool) {
	switch b {
	case 'C', 'c':
		return Clubs, true
	case 'S', 's':
		return Spades, true
	case 'H', 'h':
		return Hearts, true
	case 'D', 'd':
		return Diamonds, true
	}
	return 0, false
}

// index gives the canonical position of the card: Clubs first, Ace first
// within a suit, copy 0 before copy 1.
func (c Card) index() int {
	return int(Clubs-c.Suit)*12 + int(Ace-c.Rank)*2 + int(c.Copy)
}

func sortCanonical(cards []Card) {
	slices.SortFunc(cards, func(a, b Card) int {
		return a.index() - b.index()
	})
}

// SortForVariant orders cards the way a player holds them: trumps first from
// highest to lowest, then each plain suit from Ace down.
func SortForVariant(cards []Card, v Variant) {
	slices.SortStableFunc(cards, func(a, b Card) int {
		ta, tb := IsTrump(a, v), IsTrump(b, v)
		switch {
		case ta && !tb:
			return -1
		case !ta && tb:
			return 1
		case ta && tb:
			if d := OrderValue(b, v) - OrderValue(a, v); d != 0 {
				return d
			}
			return int(a.Copy) - int(b.Copy)
		}
		if a.Suit != b.Suit {
			return int(b.Suit) - int(a.Suit)
		}
		if d := OrderValue(b, v) - OrderValue(a, v); d != 0 {
			return d
		}
		return int(a.Copy) - int(b.Copy)
	})
}

func containsCard(cards []Card, c Card) bool {
	return slices.Contains(cards, c)
}

func removeCard(cards []Card, c Card) ([]Card, bool) {
	i := slices.Index(cards, c)
	if i < 0 {
		return cards, false
	}
	return slices.Delete(cards, i, i+1), true
}
