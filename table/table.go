package table

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/luca-patrignani/doppelkopf/bot"
	"github.com/luca-patrignani/doppelkopf/domain/doppelkopf"
	"github.com/luca-patrignani/doppelkopf/ledger"
)

var (
	ErrNoGame    = errors.New("no game in progress")
	ErrNoAgent   = errors.New("seat has no agent")
	ErrSignature = errors.New("action signature rejected")
)

// Seat is one player at the table. Agent decides for the seat; a human is an
// Agent that prompts.
type Seat struct {
	Name  string
	Agent bot.Agent

	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
}

// PublicKey returns the key the seat signs its actions with.
func (s Seat) PublicKey() ed25519.PublicKey {
	return s.pub
}

// Table runs consecutive games for four seats and records each one in a
// ledger.
type Table struct {
	seats     [doppelkopf.NumSeats]Seat
	logger    *slog.Logger
	rules     doppelkopf.Rules
	seed      int64
	cardGiver int
	observer  func(Event)

	fallback  *bot.RandomAgent
	game      *doppelkopf.Game
	chain     *ledger.Blockchain
	played    int
	standings Standings
}

type option func(Table) Table

func WithLogger(logger *slog.Logger) option {
	return func(t Table) Table {
		t.logger = logger
		return t
	}
}

func WithRules(rules doppelkopf.Rules) option {
	return func(t Table) Table {
		t.rules = rules
		return t
	}
}

// WithSeed sets the seed of the first game. Every following game uses the
// next seed.
func WithSeed(seed int64) option {
	return func(t Table) Table {
		t.seed = seed
		return t
	}
}

// WithCardGiver sets the card giver of the first game. The role moves one
// seat to the left after each game.
func WithCardGiver(seat int) option {
	return func(t Table) Table {
		t.cardGiver = seat
		return t
	}
}

// WithObserver registers a callback for every table event.
func WithObserver(fn func(Event)) option {
	return func(t Table) Table {
		t.observer = fn
		return t
	}
}

// New seats the players and generates a signing key for each of them.
func New(seats [doppelkopf.NumSeats]Seat, opts ...option) (*Table, error) {
	t := Table{
		seats:    seats,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		rules:    doppelkopf.NewRules(),
		observer: func(Event) {},
	}
	for _, opt := range opts {
		t = opt(t)
	}
	for i := range t.seats {
		if t.seats[i].Agent == nil {
			return nil, fmt.Errorf("%w: seat %d", ErrNoAgent, i)
		}
		if t.seats[i].Name == "" {
			t.seats[i].Name = fmt.Sprintf("Seat %d", i)
		}
		pub, priv, err := ed25519.GenerateKey(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to generate key for seat %d: %w", i, err)
		}
		t.seats[i].pub, t.seats[i].priv = pub, priv
		t.standings.Names[i] = t.seats[i].Name
	}
	t.fallback = bot.NewRandom(t.seed)
	return &t, nil
}

// Seats returns the seats in order.
func (t *Table) Seats() [doppelkopf.NumSeats]Seat {
	return t.seats
}

// Game returns the current game, nil before the first deal. Callers must
// not modify it.
func (t *Table) Game() *doppelkopf.Game {
	return t.game
}

// Ledger returns the record of the current game.
func (t *Table) Ledger() *ledger.Blockchain {
	return t.chain
}

// Standings returns the running tally over all finished games.
func (t *Table) Standings() Standings {
	return t.standings.clone()
}

// Deal starts the next game and its ledger.
func (t *Table) Deal() error {
	seed := t.seed + int64(t.played)
	giver := (t.cardGiver + t.played) % doppelkopf.NumSeats
	game := doppelkopf.NewGame(seed, giver, doppelkopf.WithRules(t.rules))

	genesis := ledger.Genesis{Seed: seed, CardGiver: giver, Rules: t.rules}
	for i, s := range t.seats {
		genesis.SeatNames[i] = s.Name
		genesis.SeatKeys[i] = s.pub
	}
	snap, err := game.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to snapshot new game: %w", err)
	}
	t.game = game
	t.chain = ledger.NewBlockchain(genesis, snap)
	t.logger.Info("cards dealt", "game", t.chain.GameID(), "seed", seed, "giver", giver)
	t.observer(Event{Kind: EventDeal, Seat: giver})
	return nil
}

// Submit signs a with the acting seat's key, checks the signature, applies
// the action and appends it to the ledger. A rejected action leaves the
// game and the ledger unchanged.
func (t *Table) Submit(a doppelkopf.Action) (*doppelkopf.TrickResult, error) {
	if t.game == nil {
		return nil, ErrNoGame
	}
	if a.Seat < 0 || a.Seat >= doppelkopf.NumSeats {
		return nil, fmt.Errorf("%w: %d", doppelkopf.ErrInvalidSeat, a.Seat)
	}
	seat := t.seats[a.Seat]
	gameID, index := t.chain.GameID(), t.chain.Len()

	sig, err := ledger.Sign(seat.priv, gameID, index, a)
	if err != nil {
		return nil, err
	}
	if err := ledger.VerifySignature(seat.pub, gameID, index, a, sig); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSignature, err)
	}
	if err := t.game.Validate(a); err != nil {
		return nil, err
	}

	selecting := t.game.Phase == doppelkopf.VariantSelection
	res, err := t.game.Apply(a)
	if err != nil {
		return nil, err
	}
	snap, err := t.game.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot game: %w", err)
	}
	if err := t.chain.Append(a, sig, snap); err != nil {
		return nil, fmt.Errorf("failed to record action: %w", err)
	}

	logger := t.logger.With("game", gameID, "seat", a.Seat)
	logger.Debug("action applied", "action", a.String())
	t.emit(a, res, selecting)
	if res != nil {
		logger.Info("trick taken", "trick", len(t.game.Tricks), "winner", res.Winner, "points", res.Points)
		for _, c := range res.Captures {
			logger.Info("bonus", "kind", string(c.Kind), "winner", c.Winner, "team", c.Team.String())
		}
	}
	if t.game.IsFinished() {
		t.finish(logger)
	}
	return res, nil
}

func (t *Table) emit(a doppelkopf.Action, res *doppelkopf.TrickResult, selecting bool) {
	switch a.Type {
	case doppelkopf.ActionVote:
		t.observer(Event{Kind: EventVote, Seat: a.Seat, Action: a})
		if selecting && t.game.Phase == doppelkopf.Playing {
			arb := &doppelkopf.Arbitration{Variant: t.game.Variant, Declarer: t.game.Declarer, Teams: t.game.Teams}
			t.observer(Event{Kind: EventVariant, Seat: arb.Declarer, Arbitration: arb})
		}
	case doppelkopf.ActionAnnounce:
		t.observer(Event{Kind: EventAnnounce, Seat: a.Seat, Action: a})
	case doppelkopf.ActionPlay:
		t.observer(Event{Kind: EventPlay, Seat: a.Seat, Action: a})
		if res != nil {
			t.observer(Event{Kind: EventTrick, Seat: res.Winner, Trick: res})
		}
	}
}

func (t *Table) finish(logger *slog.Logger) {
	r, err := t.game.FinalScoring()
	if err != nil {
		logger.Error("finished game has no score", "err", err)
		return
	}
	t.played++
	t.standings.add(r)
	logger.Info("game over", "winner", r.Winner.String(), "re", r.ReScore, "kontra", r.KontraScore, "value", r.Value())
	t.observer(Event{Kind: EventFinished, Seat: -1, Result: &r})
}

// Run deals a game if none is in progress and drives the agents until it is
// finished. Cancelling ctx stops the table between two actions.
func (t *Table) Run(ctx context.Context) (doppelkopf.Result, error) {
	if t.game == nil || t.game.IsFinished() {
		if err := t.Deal(); err != nil {
			return doppelkopf.Result{}, err
		}
	}
	for !t.game.IsFinished() {
		if err := ctx.Err(); err != nil {
			return doppelkopf.Result{}, err
		}
		if err := t.step(); err != nil {
			return doppelkopf.Result{}, err
		}
	}
	return t.game.FinalScoring()
}

// step performs one turn: a vote, or the announcements followed by one card.
func (t *Table) step() error {
	g := t.game
	seat := g.CurrentSeat
	agent := t.seats[seat].Agent
	logger := t.logger.With("game", t.chain.GameID(), "seat", seat)

	switch g.Phase {
	case doppelkopf.VariantSelection:
		v, err := agent.ChooseVariant(g, seat)
		if err == nil {
			_, err = t.Submit(doppelkopf.VoteAction(seat, v))
		}
		if err != nil {
			logger.Warn("agent vote rejected, voting for it", "err", err)
			if v, err = t.fallback.ChooseVariant(g, seat); err != nil {
				return err
			}
			_, err = t.Submit(doppelkopf.VoteAction(seat, v))
			return err
		}
	case doppelkopf.Playing:
		for i := range doppelkopf.NumSeats {
			s := (seat + i) % doppelkopf.NumSeats
			d, ok := t.seats[s].Agent.ChooseAnnouncement(g, s)
			if !ok {
				continue
			}
			if _, err := t.Submit(doppelkopf.AnnounceAction(s, d)); err != nil {
				logger.Warn("announcement rejected", "action", d.String(), "err", err)
			}
		}
		c, err := agent.ChooseCard(g, seat)
		if err == nil {
			_, err = t.Submit(doppelkopf.PlayAction(seat, c))
		}
		if err != nil {
			logger.Warn("agent card rejected, playing for it", "err", err)
			if c, err = t.fallback.ChooseCard(g, seat); err != nil {
				return err
			}
			_, err = t.Submit(doppelkopf.PlayAction(seat, c))
			return err
		}
	default:
		return fmt.Errorf("%w: %s", doppelkopf.ErrWrongPhase, g.Phase)
	}
	return nil
}
