package table

import "github.com/luca-patrignani/doppelkopf/domain/doppelkopf"

type EventKind string

const (
	EventDeal     EventKind = "deal"
	EventVote     EventKind = "vote"
	EventVariant  EventKind = "variant"
	EventAnnounce EventKind = "announce"
	EventPlay     EventKind = "play"
	EventTrick    EventKind = "trick"
	EventFinished EventKind = "finished"
)

// Event reports a change at the table. Only the fields of its kind are set:
// Action for votes, announcements and plays, Arbitration for the variant,
// Trick for a completed trick and Result for a finished game.
type Event struct {
	Kind        EventKind
	Seat        int
	Action      doppelkopf.Action
	Arbitration *doppelkopf.Arbitration
	Trick       *doppelkopf.TrickResult
	Result      *doppelkopf.Result
}
