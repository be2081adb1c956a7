// Package config loads the table configuration of the doppelkopf command.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/luca-patrignani/doppelkopf/bot"
	"github.com/luca-patrignani/doppelkopf/domain/doppelkopf"
)

// KindHuman marks a seat played from the terminal.
const KindHuman = "human"

type SeatConfig struct {
	Name string `json:"name"`
	// Kind is "human", "random" or "heuristic".
	Kind string `json:"kind"`
}

type Config struct {
	Seats     [doppelkopf.NumSeats]SeatConfig `json:"seats"`
	Seed      int64                           `json:"seed"`
	CardGiver int                             `json:"card_giver"`
	Games     int                             `json:"games"`
	Nines     bool                            `json:"nines"`
	// FoxBonus and DoppelkopfBonus default to true when omitted.
	FoxBonus        *bool `json:"fox_bonus,omitempty"`
	DoppelkopfBonus *bool `json:"doppelkopf_bonus,omitempty"`
	// LedgerDir receives one ledger file per game; empty disables them.
	LedgerDir string `json:"ledger_dir"`
}

// Default seats a human against three heuristic bots for one game.
func Default() Config {
	return Config{
		Seats: [doppelkopf.NumSeats]SeatConfig{
			{Name: "You", Kind: KindHuman},
			{Name: "Anna", Kind: string(bot.KindHeuristic)},
			{Name: "Bernd", Kind: string(bot.KindHeuristic)},
			{Name: "Clara", Kind: string(bot.KindHeuristic)},
		},
		Seed:  1,
		Games: 1,
	}
}

// Load reads a JSON config from path on top of Default and validates it.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks seat kinds and counts.
func (c Config) Validate() error {
	humans := 0
	for i, s := range c.Seats {
		switch s.Kind {
		case KindHuman:
			humans++
		case string(bot.KindRandom), string(bot.KindHeuristic):
		default:
			return fmt.Errorf("seat %d: unknown kind %q", i, s.Kind)
		}
	}
	if humans > 1 {
		return fmt.Errorf("at most one human seat is supported, got %d", humans)
	}
	if c.Games < 1 {
		return fmt.Errorf("games must be at least 1, got %d", c.Games)
	}
	if c.CardGiver < 0 || c.CardGiver >= doppelkopf.NumSeats {
		return fmt.Errorf("card giver must be a seat, got %d", c.CardGiver)
	}
	return nil
}

// Rules returns the engine rules the config selects.
func (c Config) Rules() doppelkopf.Rules {
	opts := []doppelkopf.Option{doppelkopf.WithNines(c.Nines)}
	if c.FoxBonus != nil {
		opts = append(opts, doppelkopf.WithFoxBonus(*c.FoxBonus))
	}
	if c.DoppelkopfBonus != nil {
		opts = append(opts, doppelkopf.WithDoppelkopfBonus(*c.DoppelkopfBonus))
	}
	return doppelkopf.NewRules(opts...)
}

// AllBots replaces a human seat with a heuristic bot.
func (c Config) AllBots() Config {
	for i := range c.Seats {
		if c.Seats[i].Kind == KindHuman {
			c.Seats[i].Kind = string(bot.KindHeuristic)
		}
	}
	return c
}
