package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/luca-patrignani/doppelkopf/bot"
	"github.com/luca-patrignani/doppelkopf/config"
	"github.com/luca-patrignani/doppelkopf/domain/doppelkopf"
	"github.com/luca-patrignani/doppelkopf/ledger"
	"github.com/luca-patrignani/doppelkopf/table"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON table config")
	seed := flag.Int64("seed", 0, "seed of the first game (overrides the config)")
	games := flag.Int("games", 0, "number of games to play (overrides the config)")
	auto := flag.Bool("auto", false, "replace the human seat with a bot")
	replay := flag.String("replay", "", "verify and replay a ledger file, then exit")
	verbose := flag.Bool("v", false, "log every action")
	flag.Parse()

	level := pterm.LogLevelWarn
	if *verbose {
		level = pterm.LogLevelDebug
	}
	handler := pterm.NewSlogHandler(pterm.DefaultLogger.WithLevel(level))
	logger := slog.New(handler)

	if *replay != "" {
		if err := replayLedger(*replay, logger); err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *games > 0 {
		cfg.Games = *games
	}
	if *auto {
		cfg = cfg.AllBots()
	}

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Doppel", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("kopf", pterm.FgDarkGray.ToStyle()),
	).Render()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := play(ctx, cfg, logger); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func play(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	var seats [doppelkopf.NumSeats]table.Seat
	var names [doppelkopf.NumSeats]string
	for i, sc := range cfg.Seats {
		names[i] = sc.Name
	}
	human := -1
	for i, sc := range cfg.Seats {
		seats[i].Name = sc.Name
		if sc.Kind == config.KindHuman {
			human = i
			seats[i].Agent = &terminalAgent{names: names}
			continue
		}
		a, err := bot.NewAgent(bot.Kind(sc.Kind), cfg.Seed*int64(doppelkopf.NumSeats)+int64(i))
		if err != nil {
			return err
		}
		seats[i].Agent = a
	}

	out := &view{names: names, human: human, quiet: human < 0 && cfg.Games > 1}
	tb, err := table.New(seats,
		table.WithLogger(logger),
		table.WithRules(cfg.Rules()),
		table.WithSeed(cfg.Seed),
		table.WithCardGiver(cfg.CardGiver),
		table.WithObserver(out.observe),
	)
	if err != nil {
		return err
	}

	var spinner *pterm.SpinnerPrinter
	if out.quiet {
		spinner, _ = pterm.DefaultSpinner.Start(fmt.Sprintf("Playing %d games ...", cfg.Games))
	}
	for i := range cfg.Games {
		out.game = i + 1
		if _, err := tb.Run(ctx); err != nil {
			if spinner != nil {
				spinner.Fail()
			}
			return err
		}
		if cfg.LedgerDir != "" {
			path := filepath.Join(cfg.LedgerDir, tb.Ledger().GameID()+".json")
			if err := tb.Ledger().Save(path); err != nil {
				return err
			}
			logger.Info("ledger written", "game", tb.Ledger().GameID(), "path", path)
		}
	}
	if spinner != nil {
		spinner.Success(fmt.Sprintf("%d games played", cfg.Games))
	}
	return printStandings(tb.Standings())
}

func replayLedger(path string, logger *slog.Logger) error {
	spinner, _ := pterm.DefaultSpinner.Start("Verifying " + path + " ...")
	bc, err := ledger.Load(path)
	if err != nil {
		spinner.Fail()
		return err
	}
	game, err := ledger.Replay(bc, logger)
	if err != nil {
		spinner.Fail()
		return err
	}
	spinner.Success(fmt.Sprintf("%d actions replayed, every state digest matches", bc.Len()-1))

	genesis := bc.Genesis()
	pterm.Info.Printfln("Game %s, seed %d, dealt by %s", genesis.GameID, genesis.Seed, genesis.SeatNames[genesis.CardGiver])
	if !game.IsFinished() {
		pterm.Warning.Printfln("The recorded game stopped after %d cards", game.CardsPlayed)
		return nil
	}
	r, err := game.FinalScoring()
	if err != nil {
		return err
	}
	pterm.Println(resultBox(r, genesis.SeatNames))
	return nil
}
