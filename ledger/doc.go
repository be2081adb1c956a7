// Package ledger records a Doppelkopf game as a hash-chained, signed log.
//
// # Core Components
//
// Blockchain: an append-only list of blocks. The genesis block holds the
// deal parameters (game id, seed, card giver, rules) and the public key of
// every seat.
//
// Block: one accepted action, the acting seat's ed25519 signature over it,
// and the digest of the game snapshot the action produced.
//
// # Verification
//
// Verify checks the hash links and the signatures. Replay goes further: it
// deals the game again from the genesis block, applies every action and
// compares each snapshot digest, so a ledger that verifies and replays is a
// faithful record of the game.
package ledger
