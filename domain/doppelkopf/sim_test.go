package doppelkopf_test

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/luca-patrignani/doppelkopf/domain/deck"
	"github.com/luca-patrignani/doppelkopf/domain/doppelkopf"
)

// selfPlay drives a game to the end with random legal inputs and checks the
// invariants after every step.
func selfPlay(t *testing.T, seed int64, opts ...doppelkopf.Option) *doppelkopf.Game {
	t.Helper()
	rng := rand.New(deck.NewSource(seed))
	g := doppelkopf.NewGame(seed, int(seed%4), opts...)

	for steps := 0; !g.IsFinished(); steps++ {
		if steps > 500 {
			t.Fatalf("seed %d: game did not finish", seed)
		}
		seat := g.CurrentSeat
		switch g.Phase {
		case doppelkopf.VariantSelection:
			legal, err := g.LegalVariants(seat)
			if err != nil {
				t.Fatalf("seed %d: %v", seed, err)
			}
			if _, err := g.VoteVariant(seat, legal[rng.IntN(len(legal))]); err != nil {
				t.Fatalf("seed %d: vote rejected: %v", seed, err)
			}
		case doppelkopf.Playing:
			if rng.IntN(4) == 0 {
				announcer := rng.IntN(doppelkopf.NumSeats)
				if ds := g.LegalDeclarations(announcer); len(ds) > 0 {
					if err := g.Announce(announcer, ds[rng.IntN(len(ds))]); err != nil {
						t.Fatalf("seed %d: legal declaration rejected: %v", seed, err)
					}
				}
			}
			legal, err := g.LegalActions(seat)
			if err != nil {
				t.Fatalf("seed %d: %v", seed, err)
			}
			if _, err := g.PlayCard(seat, legal[rng.IntN(len(legal))]); err != nil {
				t.Fatalf("seed %d: legal card rejected: %v", seed, err)
			}
		}
		if err := g.CheckInvariants(); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
	}
	return g
}

func checkFinished(t *testing.T, seed int64, g *doppelkopf.Game) {
	t.Helper()
	r, err := g.FinalScoring()
	if err != nil {
		t.Fatalf("seed %d: %v", seed, err)
	}
	sum := 0
	for _, p := range r.GamePoints {
		sum += p
	}
	if sum != 0 {
		t.Fatalf("seed %d: game points %v sum to %d", seed, r.GamePoints, sum)
	}
	if r.ReScore+r.KontraScore != doppelkopf.TotalCardPoints {
		t.Fatalf("seed %d: scores %d+%d", seed, r.ReScore, r.KontraScore)
	}
	if !r.Solo && len(g.SeatsOf(doppelkopf.Re)) != 2 {
		t.Fatalf("seed %d: two-against-two game with teams %v", seed, g.Teams)
	}
	if (r.Winner == doppelkopf.Re) != (r.ReScore >= doppelkopf.WinThreshold) {
		t.Fatalf("seed %d: %s won with re at %d", seed, r.Winner, r.ReScore)
	}
}

func TestSelfPlay(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		opts := []doppelkopf.Option{doppelkopf.WithStrictChecks()}
		if seed%2 == 1 {
			opts = append(opts, doppelkopf.WithNines(true))
		}
		g := selfPlay(t, seed, opts...)
		checkFinished(t, seed, g)
	}
}

func TestReplayReproducesGame(t *testing.T) {
	for seed := int64(100); seed < 120; seed++ {
		g := selfPlay(t, seed)
		replayed, err := doppelkopf.Replay(seed, int(seed%4), g.History)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		want, err := g.Snapshot()
		if err != nil {
			t.Fatal(err)
		}
		got, err := replayed.Snapshot()
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(want, got) {
			t.Fatalf("seed %d: replay differs from the original game", seed)
		}
	}
}

func TestSnapshotRestore(t *testing.T) {
	g := selfPlay(t, 7)
	data, err := g.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	restored, err := doppelkopf.Restore(data)
	if err != nil {
		t.Fatal(err)
	}
	again, err := restored.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, again) {
		t.Fatalf("snapshot changed across restore:\n%s\n%s", data, again)
	}
	if err := restored.CheckInvariants(); err != nil {
		t.Fatal(err)
	}
}

func TestSnapshotRestoreMidGame(t *testing.T) {
	g := doppelkopf.NewGame(11, 0)
	for range doppelkopf.NumSeats {
		if _, err := g.VoteVariant(g.CurrentSeat, doppelkopf.Normal); err != nil {
			t.Fatal(err)
		}
	}
	legal, err := g.LegalActions(g.CurrentSeat)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.PlayCard(g.CurrentSeat, legal[0]); err != nil {
		t.Fatal(err)
	}
	data, err := g.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	restored, err := doppelkopf.Restore(data)
	if err != nil {
		t.Fatal(err)
	}
	legal, err = restored.LegalActions(restored.CurrentSeat)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := restored.PlayCard(restored.CurrentSeat, legal[0]); err != nil {
		t.Fatalf("restored game rejected a legal card: %v", err)
	}
}

func TestReplayStopsAtRejectedAction(t *testing.T) {
	actions := []doppelkopf.Action{
		doppelkopf.VoteAction(1, doppelkopf.Normal),
		doppelkopf.VoteAction(1, doppelkopf.Normal),
	}
	g, err := doppelkopf.Replay(3, 0, actions)
	if err == nil {
		t.Fatal("expected the duplicate vote to be rejected")
	}
	if len(g.History) != 1 {
		t.Fatalf("expected one applied action, got %d", len(g.History))
	}
}

func FuzzSelfPlay(f *testing.F) {
	for _, seed := range []int64{0, 1, 42, -7, 1 << 40} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, seed int64) {
		g := selfPlay(t, seed, doppelkopf.WithStrictChecks())
		checkFinished(t, seed, g)
	})
}
