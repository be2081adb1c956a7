package doppelkopf

import "fmt"

// NumSeats is the number of players at a Doppelkopf table.
const NumSeats = 4

// Team of a seat. Every seat is on Re or Kontra once the cards are dealt.
type Team uint8

const (
	TeamUnknown Team = iota
	Re
	Kontra
)

func (t Team) String() string {
	switch t {
	case Re:
		return "re"
	case Kontra:
		return "kontra"
	default:
		return "unknown"
	}
}

// Opponent returns the other team.
func (t Team) Opponent() Team {
	switch t {
	case Re:
		return Kontra
	case Kontra:
		return Re
	default:
		return TeamUnknown
	}
}

// slot indexes per-team arrays: Re is 0, Kontra is 1.
func (t Team) slot() int {
	if t == Kontra {
		return 1
	}
	return 0
}

func (t Team) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Team) UnmarshalText(text []byte) error {
	switch string(text) {
	case "re":
		*t = Re
	case "kontra":
		*t = Kontra
	case "unknown":
		*t = TeamUnknown
	default:
		return fmt.Errorf("unknown team %q", text)
	}
	return nil
}

// Phase of a game. Phases only move forward.
type Phase uint8

const (
	VariantSelection Phase = iota
	Playing
	Finished
)

func (p Phase) String() string {
	switch p {
	case VariantSelection:
		return "variant_selection"
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "variant_selection":
		*p = VariantSelection
	case "playing":
		*p = Playing
	case "finished":
		*p = Finished
	default:
		return fmt.Errorf("unknown phase %q", text)
	}
	return nil
}

// Vote is a seat's variant preference. Cast is false until the seat votes.
type Vote struct {
	Cast    bool    `json:"cast"`
	Variant Variant `json:"variant"`
}

// Trick is a trick in progress or completed. Winner is -1 until the fourth
// card is played.
type Trick struct {
	Lead   int    `json:"lead"`
	Cards  []Card `json:"cards"`
	Winner int    `json:"winner"`
	Points int    `json:"points"`
}

func newTrick(lead int) Trick {
	return Trick{Lead: lead, Cards: []Card{}, Winner: -1}
}

// SeatOf returns the seat that played the i-th card of the trick.
func (t Trick) SeatOf(i int) int {
	return (t.Lead + i) % NumSeats
}

// CaptureKind identifies a trick bonus.
type CaptureKind string

const (
	// CaptureDiamondAce is a Diamond Ace won from the other team.
	CaptureDiamondAce CaptureKind = "diamond_ace"
	// CaptureFortyPlus is a trick worth 40 card points or more.
	CaptureFortyPlus CaptureKind = "forty_plus"
)

// Capture records one bonus swing of +1 for Team and -1 for its opponent.
type Capture struct {
	Kind   CaptureKind `json:"kind"`
	Trick  int         `json:"trick"`
	Winner int         `json:"winner"`
	// From is the seat that lost the Diamond Ace, -1 for a forty-plus trick.
	From int  `json:"from"`
	Team Team `json:"team"`
}

// Arbitration is the outcome of the variant vote.
type Arbitration struct {
	Variant Variant
	// Declarer is the seat whose vote won, -1 when everyone voted normal.
	Declarer int
	Teams    [NumSeats]Team
}

// TrickResult describes a completed trick.
type TrickResult struct {
	Trick    Trick
	Winner   int
	Points   int
	Captures []Capture
	// PartnerBound is set when the trick bound the Hochzeit partner.
	PartnerBound bool
}
