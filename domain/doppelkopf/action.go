package doppelkopf

import (
	"encoding/json"
	"fmt"
)

type ActionType string

const (
	ActionVote     ActionType = "vote"
	ActionPlay     ActionType = "play"
	ActionAnnounce ActionType = "announce"
)

// Action is one seat input. Only the field matching Type is meaningful.
type Action struct {
	Type        ActionType   `json:"type"`
	Seat        int          `json:"seat"`
	Variant     *Variant     `json:"variant,omitempty"`
	Card        *Card        `json:"card,omitempty"`
	Declaration *Declaration `json:"declaration,omitempty"`
}

func VoteAction(seat int, v Variant) Action {
	return Action{Type: ActionVote, Seat: seat, Variant: &v}
}

func PlayAction(seat int, c Card) Action {
	return Action{Type: ActionPlay, Seat: seat, Card: &c}
}

func AnnounceAction(seat int, d Declaration) Action {
	return Action{Type: ActionAnnounce, Seat: seat, Declaration: &d}
}

func (a Action) String() string {
	switch a.Type {
	case ActionVote:
		if a.Variant != nil {
			return fmt.Sprintf("seat %d votes %s", a.Seat, *a.Variant)
		}
	case ActionPlay:
		if a.Card != nil {
			return fmt.Sprintf("seat %d plays %s", a.Seat, a.Card.Code())
		}
	case ActionAnnounce:
		if a.Declaration != nil {
			return fmt.Sprintf("seat %d announces %s", a.Seat, *a.Declaration)
		}
	}
	return fmt.Sprintf("seat %d: malformed %s action", a.Seat, a.Type)
}

// Apply dispatches a to the matching game operation. Every accepted action
// is appended to History.
func (g *Game) Apply(a Action) (*TrickResult, error) {
	switch a.Type {
	case ActionVote:
		if a.Variant == nil {
			return nil, fmt.Errorf("%w: vote without variant", ErrInvalidAction)
		}
		_, err := g.VoteVariant(a.Seat, *a.Variant)
		return nil, err
	case ActionPlay:
		if a.Card == nil {
			return nil, fmt.Errorf("%w: play without card", ErrInvalidAction)
		}
		return g.PlayCard(a.Seat, *a.Card)
	case ActionAnnounce:
		if a.Declaration == nil {
			return nil, fmt.Errorf("%w: announce without declaration", ErrInvalidAction)
		}
		return nil, g.Announce(a.Seat, *a.Declaration)
	default:
		return nil, fmt.Errorf("%w: unknown action type %q", ErrInvalidAction, a.Type)
	}
}

// Validate reports whether a would be accepted, without changing g.
func (g *Game) Validate(a Action) error {
	probe := g.Clone()
	probe.Rules.StrictChecks = false
	_, err := probe.Apply(a)
	return err
}

// Replay deals a new game from seed and cardGiver and applies actions in
// order. It stops at the first rejected action.
func Replay(seed int64, cardGiver int, actions []Action, opts ...Option) (*Game, error) {
	g := NewGame(seed, cardGiver, opts...)
	for i, a := range actions {
		if _, err := g.Apply(a); err != nil {
			return g, fmt.Errorf("replay action %d (%s): %w", i, a, err)
		}
	}
	return g, nil
}

// Snapshot serializes the game.
func (g *Game) Snapshot() ([]byte, error) {
	return json.Marshal(g)
}

// Restore rebuilds a game from a Snapshot.
func Restore(data []byte) (*Game, error) {
	var g Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}
	return &g, nil
}
