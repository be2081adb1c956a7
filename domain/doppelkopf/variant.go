package doppelkopf

import (
	"fmt"
	"strings"
)

// Variant is the game type chosen for one deal. It decides which cards are
// trump and whether the Queens of Clubs form the teams.
type Variant uint8

const (
	Normal Variant = iota
	Hochzeit
	QueenSolo
	JackSolo
	KingSolo
	Fleshless
)

// Variants lists every variant in declaration order.
var Variants = []Variant{Normal, Hochzeit, QueenSolo, JackSolo, KingSolo, Fleshless}

var variantTokens = map[Variant]string{
	Normal:    "normal",
	Hochzeit:  "hochzeit",
	QueenSolo: "queen_solo",
	JackSolo:  "jack_solo",
	KingSolo:  "king_solo",
	Fleshless: "fleshless",
}

func (v Variant) String() string {
	if s, ok := variantTokens[v]; ok {
		return s
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// ParseVariant reads a variant token. The legacy token "trump_solo" has no
// rules of its own and is read as normal.
func ParseVariant(token string) (Variant, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "trump_solo" {
		return Normal, nil
	}
	for v, s := range variantTokens {
		if s == token {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown variant %q", ErrInvalidVariant, token)
}

func (v Variant) MarshalText() ([]byte, error) {
	if _, ok := variantTokens[v]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVariant, uint8(v))
	}
	return []byte(v.String()), nil
}

func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// IsSolo reports whether the variant is played by one seat against three.
func (v Variant) IsSolo() bool {
	switch v {
	case QueenSolo, JackSolo, KingSolo, Fleshless:
		return true
	}
	return false
}

// Priority is the arbitration rank of a vote: the lowest number wins.
func (v Variant) Priority() int {
	switch v {
	case Fleshless:
		return 1
	case KingSolo:
		return 2
	case QueenSolo:
		return 3
	case JackSolo:
		return 4
	case Hochzeit:
		return 5
	default:
		return 6
	}
}

// hasFox reports whether the Diamond Ace capture bonus exists in the variant.
func (v Variant) hasFox() bool {
	return v == Normal || v == Hochzeit
}

// IsTrump reports whether c is a trump card under variant v.
func IsTrump(c Card, v Variant) bool {
	switch v {
	case Normal, Hochzeit:
		return c.Rank == Queen || c.Rank == Jack || c.Suit == Diamonds || c.isTenOfHearts()
	case QueenSolo:
		return c.Rank == Queen
	case JackSolo:
		return c.Rank == Jack
	case KingSolo:
		return c.Rank == King
	case Fleshless:
		return c.Suit == Diamonds || c.isTenOfHearts()
	}
	return false
}

// OrderValue is the strength of c under variant v. Trump values start at 60
// and always exceed plain values, which never exceed 14.
func OrderValue(c Card, v Variant) int {
	if !IsTrump(c, v) {
		return c.Rank.Value()
	}
	switch {
	case c.isTenOfHearts():
		return 120
	case c.Rank == Queen:
		return 100 + int(c.Suit)
	case c.Rank == Jack:
		return 80 + int(c.Suit)
	default:
		return 60 + c.Rank.Value() + int(c.Suit)
	}
}

// beats reports whether challenger takes the trick from the current best
// card, given the lead card. Equal cards keep the earlier one.
func beats(challenger, best, lead Card, v Variant) bool {
	ct, bt := IsTrump(challenger, v), IsTrump(best, v)
	switch {
	case ct && !bt:
		return true
	case !ct && bt:
		return false
	case ct && bt:
		return OrderValue(challenger, v) > OrderValue(best, v)
	}
	// neither is trump: only the lead suit can win
	if challenger.Suit != lead.Suit {
		return false
	}
	if best.Suit != lead.Suit {
		return true
	}
	return challenger.Rank.Value() > best.Rank.Value()
}

// WinningCard returns the index of the card that takes a trick holding cards
// in play order, or -1 for no cards.
func WinningCard(cards []Card, v Variant) int {
	if len(cards) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(cards); i++ {
		if beats(cards[i], cards[best], cards[0], v) {
			best = i
		}
	}
	return best
}
