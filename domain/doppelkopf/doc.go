// Package doppelkopf implements the rules and scoring of Doppelkopf, the
// four-player German trick-taking game played with a doubled deck.
//
// # Core Types
//
// Game: the complete state of one deal, from the variant vote to the final
// score. Every operation is a synchronous method on *Game; callers own
// the game and serialize access to it.
//
// Card: a physical card identified by suit, rank and copy.
//
// Variant: the game type (normal, hochzeit, the solos, fleshless) which
// decides the trump set.
//
// Action: a tagged seat input (vote, play, announce) used for logs and
// replay.
//
// # Game Flow
//
// NewGame deals the cards and opens the variant vote. Four calls to
// VoteVariant, in seat order starting left of the card giver, decide the
// variant and the teams. PlayCard then plays the tricks; Announce may
// interleave with the plays. When the last trick is taken the game is
// Finished and FinalScoring returns the per-seat game points, which always
// sum to zero.
//
// # Determinism
//
// A game is fully determined by its seed, card giver, rules and action
// history. Replay rebuilds a game from those, and Snapshot/Restore move it
// through JSON.
package doppelkopf
