package doppelkopf

import (
	"fmt"
	"strings"
)

// Declaration is a token a seat may announce during play.
type Declaration uint8

const (
	DeclareRe Declaration = iota
	DeclareContra
	DeclareNo90
	DeclareNo60
	DeclareNo30
	DeclareBlack
	DeclareHochzeit
)

// Declarations lists every declaration token.
var Declarations = []Declaration{DeclareRe, DeclareContra, DeclareNo90, DeclareNo60, DeclareNo30, DeclareBlack, DeclareHochzeit}

var declarationTokens = []string{"re", "contra", "no90", "no60", "no30", "black", "hochzeit"}

func (d Declaration) String() string {
	if int(d) < len(declarationTokens) {
		return declarationTokens[d]
	}
	return fmt.Sprintf("Declaration(%d)", uint8(d))
}

// ParseDeclaration reads a declaration token.
func ParseDeclaration(token string) (Declaration, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	for i, s := range declarationTokens {
		if s == token {
			return Declaration(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown declaration %q", ErrOutOfOrder, token)
}

func (d Declaration) MarshalText() ([]byte, error) {
	if int(d) >= len(declarationTokens) {
		return nil, fmt.Errorf("%w: declaration %d", ErrInvalidAction, uint8(d))
	}
	return []byte(d.String()), nil
}

func (d *Declaration) UnmarshalText(text []byte) error {
	parsed, err := ParseDeclaration(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// AnnouncementLevel is a step of a team's announcement chain.
type AnnouncementLevel uint8

const (
	LevelNone AnnouncementLevel = iota
	LevelReContra
	LevelNo90
	LevelNo60
	LevelNo30
	LevelBlack
)

// Multiplier is the game-value factor reached at this step.
func (l AnnouncementLevel) Multiplier() int {
	return int(l) + 1
}

// Announcement is the state of one team's chain. BaseCard is the number of
// cards played when Re or Contra was declared, -1 before that.
type Announcement struct {
	Level    AnnouncementLevel `json:"level"`
	BaseCard int               `json:"base_card"`
}

func (d Declaration) level() AnnouncementLevel {
	switch d {
	case DeclareRe, DeclareContra:
		return LevelReContra
	case DeclareNo90:
		return LevelNo90
	case DeclareNo60:
		return LevelNo60
	case DeclareNo30:
		return LevelNo30
	case DeclareBlack:
		return LevelBlack
	}
	return LevelNone
}

// Announce records a declaration by seat. Announcements are not bound to the
// turn order and never change whose turn it is.
func (g *Game) Announce(seat int, d Declaration) error {
	if g.Phase != Playing {
		return fmt.Errorf("%w: announcements are made in %s, game is in %s", ErrWrongPhase, Playing, g.Phase)
	}
	if !validSeat(seat) {
		return fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}

	switch d {
	case DeclareRe, DeclareContra:
		if err := g.announceBase(seat, d); err != nil {
			return err
		}
	case DeclareNo90, DeclareNo60, DeclareNo30, DeclareBlack:
		if err := g.announceEscalation(seat, d); err != nil {
			return err
		}
	case DeclareHochzeit:
		if err := g.announceHochzeit(seat); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown declaration %d", ErrOutOfOrder, uint8(d))
	}

	g.History = append(g.History, AnnounceAction(seat, d))
	g.check()
	return nil
}

func (g *Game) announceBase(seat int, d Declaration) error {
	team := Re
	if d == DeclareContra {
		team = Kontra
	}
	if g.Teams[seat] != team {
		return fmt.Errorf("%w: seat %d is %s and cannot announce %s", ErrNotOnTeam, seat, g.Teams[seat], d)
	}
	chain := &g.Announcements[team.slot()]
	if chain.Level != LevelNone {
		return fmt.Errorf("%w: %s already announced", ErrOutOfOrder, d)
	}
	if g.CardsPlayed >= AnnouncementWindow {
		return fmt.Errorf("%w: %s must come before card %d, %d played", ErrWindowClosed, d, AnnouncementWindow, g.CardsPlayed)
	}
	chain.Level = LevelReContra
	chain.BaseCard = g.CardsPlayed
	return nil
}

func (g *Game) announceEscalation(seat int, d Declaration) error {
	team := g.Teams[seat]
	chain := &g.Announcements[team.slot()]
	if chain.Level != d.level()-1 {
		return fmt.Errorf("%w: %s needs %s at step %d, chain is at step %d", ErrOutOfOrder, d, team, d.level()-1, chain.Level)
	}
	if g.CardsPlayed-chain.BaseCard > AnnouncementWindow {
		return fmt.Errorf("%w: %s must come within %d cards of the base announcement", ErrWindowClosed, d, AnnouncementWindow)
	}
	chain.Level = d.level()
	return nil
}

// announceHochzeit reveals a silent Hochzeit: a Normal game becomes a
// Hochzeit with the caller on Re looking for a partner.
func (g *Game) announceHochzeit(seat int) error {
	if !g.HasHochzeit(seat) {
		return fmt.Errorf("%w: seat %d does not hold both Queens of Clubs", ErrInvalidVariant, seat)
	}
	if g.CardsPlayed >= AnnouncementWindow {
		return fmt.Errorf("%w: hochzeit must come before card %d, %d played", ErrWindowClosed, AnnouncementWindow, g.CardsPlayed)
	}
	if g.Variant != Normal {
		return fmt.Errorf("%w: the variant is already %s", ErrOutOfOrder, g.Variant)
	}
	g.Variant = Hochzeit
	g.HochzeitSeat = seat
	g.Declarer = seat
	g.PartnerBound = false
	for s := range g.Teams {
		g.Teams[s] = Kontra
	}
	g.Teams[seat] = Re
	return nil
}

// LegalDeclarations lists the declarations seat may make right now.
func (g *Game) LegalDeclarations(seat int) []Declaration {
	var out []Declaration
	for _, d := range Declarations {
		probe := g.Clone()
		probe.Rules.StrictChecks = false
		if probe.Announce(seat, d) == nil {
			out = append(out, d)
		}
	}
	return out
}

// ReAnnounced reports whether Re has announced.
func (g *Game) ReAnnounced() bool {
	return g.Announcements[Re.slot()].Level >= LevelReContra
}

// ContraAnnounced reports whether Kontra has announced.
func (g *Game) ContraAnnounced() bool {
	return g.Announcements[Kontra.slot()].Level >= LevelReContra
}

// ReCardIndex is the number of cards played when Re was announced, -1 if not.
func (g *Game) ReCardIndex() int {
	return g.Announcements[Re.slot()].BaseCard
}

// ContraCardIndex is the number of cards played when Contra was announced,
// -1 if not.
func (g *Game) ContraCardIndex() int {
	return g.Announcements[Kontra.slot()].BaseCard
}

func (g *Game) No90Announced() bool  { return g.maxLevel() >= LevelNo90 }
func (g *Game) No60Announced() bool  { return g.maxLevel() >= LevelNo60 }
func (g *Game) No30Announced() bool  { return g.maxLevel() >= LevelNo30 }
func (g *Game) BlackAnnounced() bool { return g.maxLevel() >= LevelBlack }

func (g *Game) maxLevel() AnnouncementLevel {
	return max(g.Announcements[0].Level, g.Announcements[1].Level)
}
