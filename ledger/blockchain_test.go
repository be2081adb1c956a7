package ledger

import (
	"crypto/ed25519"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/luca-patrignani/doppelkopf/domain/doppelkopf"
)

type testTable struct {
	game  *doppelkopf.Game
	chain *Blockchain
	privs [doppelkopf.NumSeats]ed25519.PrivateKey
}

// newTestTable creates a chain for a fresh game with one key pair per seat.
func newTestTable(t *testing.T, seed int64) *testTable {
	t.Helper()
	tt := &testTable{}
	genesis := Genesis{Seed: seed, CardGiver: 1, Rules: doppelkopf.NewRules()}
	for seat := range doppelkopf.NumSeats {
		pub, priv, err := ed25519.GenerateKey(nil)
		if err != nil {
			t.Fatalf("failed to generate key: %v", err)
		}
		genesis.SeatKeys[seat] = pub
		tt.privs[seat] = priv
	}
	tt.game = genesis.NewGame()
	snap, err := tt.game.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	tt.chain = NewBlockchain(genesis, snap)
	return tt
}

// submit signs a with the acting seat's key, applies it and records it.
func (tt *testTable) submit(t *testing.T, a doppelkopf.Action) {
	t.Helper()
	sig, err := Sign(tt.privs[a.Seat], tt.chain.GameID(), tt.chain.Len(), a)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tt.game.Apply(a); err != nil {
		t.Fatalf("failed to apply %s: %v", a, err)
	}
	snap, err := tt.game.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if err := tt.chain.Append(a, sig, snap); err != nil {
		t.Fatalf("failed to append %s: %v", a, err)
	}
}

// playOut votes normal everywhere and plays the first legal card until the
// game ends, or for at most n cards when n > 0.
func (tt *testTable) playOut(t *testing.T, n int) {
	t.Helper()
	for range doppelkopf.NumSeats {
		tt.submit(t, doppelkopf.VoteAction(tt.game.CurrentSeat, doppelkopf.Normal))
	}
	for played := 0; !tt.game.IsFinished() && (n <= 0 || played < n); played++ {
		legal, err := tt.game.LegalActions(tt.game.CurrentSeat)
		if err != nil {
			t.Fatal(err)
		}
		tt.submit(t, doppelkopf.PlayAction(tt.game.CurrentSeat, legal[0]))
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewBlockchain(t *testing.T) {
	tt := newTestTable(t, 5)
	if tt.chain.Len() != 1 {
		t.Fatalf("expected only the genesis block, got %d", tt.chain.Len())
	}
	genesis, err := tt.chain.GetByIndex(0)
	if err != nil {
		t.Fatal(err)
	}
	if genesis.Index != 0 || genesis.PrevHash != "0" || genesis.Hash == "" {
		t.Fatalf("malformed genesis block %+v", genesis)
	}
	if genesis.Action != nil {
		t.Fatal("genesis should carry no action")
	}
	if tt.chain.GameID() == "" {
		t.Fatal("expected a generated game id")
	}
	if len(tt.chain.Actions()) != 0 {
		t.Fatal("expected no actions")
	}
	if err := tt.chain.Verify(); err != nil {
		t.Fatal(err)
	}
}

func TestGameIDsAreUnique(t *testing.T) {
	a, b := newTestTable(t, 1), newTestTable(t, 1)
	if a.chain.GameID() == b.chain.GameID() {
		t.Fatal("two chains share a game id")
	}
}

func TestAppendAndVerify(t *testing.T) {
	tt := newTestTable(t, 9)
	tt.playOut(t, 6)

	if tt.chain.Len() != 1+4+6 {
		t.Fatalf("expected 11 blocks, got %d", tt.chain.Len())
	}
	latest, err := tt.chain.GetLatest()
	if err != nil {
		t.Fatal(err)
	}
	prev, err := tt.chain.GetByIndex(latest.Index - 1)
	if err != nil {
		t.Fatal(err)
	}
	if latest.PrevHash != prev.Hash {
		t.Fatal("latest block is not linked to its predecessor")
	}
	actions := tt.chain.Actions()
	if len(actions) != len(tt.game.History) {
		t.Fatalf("expected %d actions, got %d", len(tt.game.History), len(actions))
	}
	for i, a := range actions {
		if a.String() != tt.game.History[i].String() {
			t.Fatalf("action %d: recorded %s, played %s", i, a, tt.game.History[i])
		}
	}
	if err := tt.chain.Verify(); err != nil {
		t.Fatal(err)
	}
	if _, err := tt.chain.GetByIndex(99); err == nil {
		t.Fatal("expected an out of range error")
	}
}

func TestAppendRejectsForeignSignature(t *testing.T) {
	tt := newTestTable(t, 3)
	a := doppelkopf.VoteAction(tt.game.CurrentSeat, doppelkopf.Normal)
	other := (a.Seat + 1) % doppelkopf.NumSeats
	sig, err := Sign(tt.privs[other], tt.chain.GameID(), 1, a)
	if err != nil {
		t.Fatal(err)
	}
	if err := tt.chain.Append(a, sig, []byte("{}")); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
	if err := tt.chain.Append(a, nil, []byte("{}")); !errors.Is(err, ErrMissingSignature) {
		t.Fatalf("expected ErrMissingSignature, got %v", err)
	}
	if tt.chain.Len() != 1 {
		t.Fatal("rejected blocks must not be appended")
	}
}

func TestSignatureIsBoundToIndex(t *testing.T) {
	tt := newTestTable(t, 3)
	a := doppelkopf.VoteAction(tt.game.CurrentSeat, doppelkopf.Normal)
	sig, err := Sign(tt.privs[a.Seat], tt.chain.GameID(), 2, a)
	if err != nil {
		t.Fatal(err)
	}
	if err := tt.chain.Append(a, sig, []byte("{}")); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	tests := []struct {
		name   string
		tamper func(b *Block)
	}{
		{"action", func(b *Block) {
			c := doppelkopf.Fleshless
			b.Action.Variant = &c
		}},
		{"state digest", func(b *Block) { b.StateHash = StateDigest([]byte("forged")) }},
		{"prev hash", func(b *Block) { b.PrevHash = "0" }},
		{"signature", func(b *Block) { b.Signature[0] ^= 0xff }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tt := newTestTable(t, 4)
			tt.playOut(t, 2)
			b := &tt.chain.blocks[2]
			tc.tamper(b)
			if err := tt.chain.Verify(); err == nil {
				t.Fatal("expected tampering to be detected")
			}
		})
	}
}

func TestVerifyDetectsRehashedForgery(t *testing.T) {
	tt := newTestTable(t, 4)
	tt.playOut(t, 0)
	b := &tt.chain.blocks[1]
	c := doppelkopf.KingSolo
	b.Action.Variant = &c
	b.Hash = calculateHash(*b)
	if err := tt.chain.Verify(); err == nil {
		t.Fatal("a rehashed block must still fail on the next link or the signature")
	}
}

func TestSaveLoadReplay(t *testing.T) {
	tt := newTestTable(t, 21)
	tt.playOut(t, 0)
	if !tt.game.IsFinished() {
		t.Fatal("expected a finished game")
	}

	path := filepath.Join(t.TempDir(), "game.json")
	if err := tt.chain.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != tt.chain.Len() || loaded.GameID() != tt.chain.GameID() {
		t.Fatalf("loaded chain differs: %d blocks, id %s", loaded.Len(), loaded.GameID())
	}

	game, err := Replay(loaded, discard())
	if err != nil {
		t.Fatal(err)
	}
	want, err := tt.game.FinalScoring()
	if err != nil {
		t.Fatal(err)
	}
	got, err := game.FinalScoring()
	if err != nil {
		t.Fatal(err)
	}
	if got.GamePoints != want.GamePoints {
		t.Fatalf("replayed game points %v, played %v", got.GamePoints, want.GamePoints)
	}
}

func TestReplayDetectsStateMismatch(t *testing.T) {
	tt := newTestTable(t, 8)
	for range doppelkopf.NumSeats {
		tt.submit(t, doppelkopf.VoteAction(tt.game.CurrentSeat, doppelkopf.Normal))
	}
	a := doppelkopf.PlayAction(tt.game.CurrentSeat, tt.game.Hand(tt.game.CurrentSeat)[0])
	sig, err := Sign(tt.privs[a.Seat], tt.chain.GameID(), tt.chain.Len(), a)
	if err != nil {
		t.Fatal(err)
	}
	if err := tt.chain.Append(a, sig, []byte(`{"forged":true}`)); err != nil {
		t.Fatal(err)
	}
	if _, err := Replay(tt.chain, discard()); !errors.Is(err, ErrStateMismatch) {
		t.Fatalf("expected ErrStateMismatch, got %v", err)
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error")
	}
}

func TestEmptyChain(t *testing.T) {
	var decoded Blockchain
	if err := decoded.UnmarshalJSON([]byte("[]")); err != nil {
		t.Fatal(err)
	}
	for name, bc := range map[string]*Blockchain{"zero value": {}, "decoded": &decoded} {
		t.Run(name, func(t *testing.T) {
			if actions := bc.Actions(); actions != nil {
				t.Fatalf("expected no actions, got %v", actions)
			}
			if bc.Len() != 0 || bc.GameID() != "" {
				t.Fatalf("expected an empty chain, got %d blocks", bc.Len())
			}
			if _, err := bc.GetLatest(); err == nil {
				t.Fatal("expected an error from GetLatest")
			}
			if err := bc.Verify(); err == nil {
				t.Fatal("expected Verify to reject an empty chain")
			}
			if err := bc.Append(doppelkopf.VoteAction(0, doppelkopf.Normal), nil, nil); err == nil {
				t.Fatal("expected Append to reject an empty chain")
			}
		})
	}
}
