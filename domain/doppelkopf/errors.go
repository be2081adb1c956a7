package doppelkopf

import "errors"

var (
	ErrWrongPhase     = errors.New("wrong phase")
	ErrNotSeatTurn    = errors.New("not seat's turn")
	ErrInvalidVariant = errors.New("invalid variant")
	ErrIllegalCard    = errors.New("illegal card")
	ErrOutOfOrder     = errors.New("announcement out of order")
	ErrNotOnTeam      = errors.New("announcement reserved for the other team")
	ErrWindowClosed   = errors.New("announcement window closed")
	ErrNotFinished    = errors.New("game not finished")
	ErrInvalidSeat    = errors.New("invalid seat")
	ErrInvalidAction  = errors.New("invalid action")
	ErrInvalidDeal    = errors.New("invalid deal")
)

// ErrInvalidVote is returned for votes the arbiter cannot accept.
var ErrInvalidVote = ErrInvalidVariant
