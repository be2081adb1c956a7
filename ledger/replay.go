package ledger

import (
	"fmt"
	"log/slog"

	"github.com/luca-patrignani/doppelkopf/domain/doppelkopf"
)

// NewGame deals the game recorded in the genesis parameters.
func (g Genesis) NewGame() *doppelkopf.Game {
	return doppelkopf.NewGame(g.Seed, g.CardGiver, doppelkopf.WithRules(g.Rules))
}

// Replay verifies bc, deals its game again and applies every recorded
// action, checking each resulting snapshot against the block's digest. It
// returns the game reached and stops at the first divergence.
func Replay(bc *Blockchain, logger *slog.Logger) (*doppelkopf.Game, error) {
	if err := bc.Verify(); err != nil {
		return nil, err
	}
	genesis := bc.Genesis()
	logger = logger.With("game", genesis.GameID)

	game := genesis.NewGame()
	if err := checkState(game, bc, 0); err != nil {
		return game, err
	}
	for i := 1; i < bc.Len(); i++ {
		block, err := bc.GetByIndex(i)
		if err != nil {
			return game, err
		}
		a := *block.Action
		if _, err := game.Apply(a); err != nil {
			logger.Error("recorded action rejected", "action", a.String(), "err", err)
			return game, fmt.Errorf("block %d: failed to apply action: %w", i, err)
		}
		if err := checkState(game, bc, i); err != nil {
			logger.Error("state diverged", "action", a.String(), "err", err)
			return game, err
		}
		logger.Debug("replayed", "seat", a.Seat, "action", a.String())
	}
	logger.Info("ledger replayed", "blocks", bc.Len(), "finished", game.IsFinished())
	return game, nil
}

func checkState(game *doppelkopf.Game, bc *Blockchain, index int) error {
	block, err := bc.GetByIndex(index)
	if err != nil {
		return err
	}
	snap, err := game.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to snapshot game: %w", err)
	}
	if got := StateDigest(snap); got != block.StateHash {
		return fmt.Errorf("%w at block %d: recorded %s, replayed %s", ErrStateMismatch, index, block.StateHash, got)
	}
	return nil
}
