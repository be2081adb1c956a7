// Package table seats four agents around a Doppelkopf game and runs it.
//
// Every action goes through Submit: the acting seat signs it with its
// ed25519 key, the table verifies the signature, the game validates and
// applies the action, and the ledger records it with the digest of the
// resulting state. Agents that return an error or an illegal choice are
// replaced for that turn by a random legal choice, so a game always
// finishes.
//
// A Table plays any number of consecutive games. The seed advances by one
// and the card giver moves one seat to the left after each game, and the
// game points accumulate in Standings.
package table
