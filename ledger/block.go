package ledger

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/luca-patrignani/doppelkopf/domain/doppelkopf"
)

// Genesis holds everything needed to deal the recorded game again.
type Genesis struct {
	GameID    string                                 `json:"game_id"`
	Seed      int64                                  `json:"seed"`
	CardGiver int                                    `json:"card_giver"`
	Rules     doppelkopf.Rules                       `json:"rules"`
	SeatNames [doppelkopf.NumSeats]string            `json:"seat_names"`
	SeatKeys  [doppelkopf.NumSeats]ed25519.PublicKey `json:"seat_keys"`
}

// Block is one accepted action. The genesis block carries no action.
type Block struct {
	Index     int                `json:"index"`
	Timestamp int64              `json:"timestamp"`
	PrevHash  string             `json:"prev_hash"`
	Hash      string             `json:"hash"`
	Genesis   *Genesis           `json:"genesis,omitempty"`
	Action    *doppelkopf.Action `json:"action,omitempty"`
	// Signature is the acting seat's signature over SigningPayload.
	Signature []byte `json:"signature,omitempty"`
	// StateHash is the digest of the game snapshot after the action.
	StateHash string `json:"state_hash"`
}

// signedAction is what a seat signs: the action bound to one game and one
// position in its chain, so a signature cannot be replayed elsewhere.
type signedAction struct {
	GameID string            `json:"game_id"`
	Index  int               `json:"index"`
	Action doppelkopf.Action `json:"action"`
}

// SigningPayload returns the bytes a seat signs to submit a as the index-th
// block of game gameID.
func SigningPayload(gameID string, index int, a doppelkopf.Action) ([]byte, error) {
	b, err := json.Marshal(signedAction{GameID: gameID, Index: index, Action: a})
	if err != nil {
		return nil, fmt.Errorf("failed to encode action: %w", err)
	}
	return b, nil
}

// Sign signs a for the index-th block of gameID.
func Sign(priv ed25519.PrivateKey, gameID string, index int, a doppelkopf.Action) ([]byte, error) {
	b, err := SigningPayload(gameID, index, a)
	if err != nil {
		return nil, err
	}
	return ed25519.Sign(priv, b), nil
}

// VerifySignature checks sig against pub for the index-th block of gameID.
func VerifySignature(pub ed25519.PublicKey, gameID string, index int, a doppelkopf.Action, sig []byte) error {
	if len(sig) == 0 {
		return ErrMissingSignature
	}
	if len(pub) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: no key for seat %d", ErrBadSignature, a.Seat)
	}
	b, err := SigningPayload(gameID, index, a)
	if err != nil {
		return err
	}
	if !ed25519.Verify(pub, b, sig) {
		return fmt.Errorf("%w: seat %d", ErrBadSignature, a.Seat)
	}
	return nil
}

// StateDigest is the hex sha256 of a game snapshot.
func StateDigest(snapshot []byte) string {
	sum := sha256.Sum256(snapshot)
	return hex.EncodeToString(sum[:])
}
