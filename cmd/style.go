package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/doppelkopf/domain/doppelkopf"
	"github.com/luca-patrignani/doppelkopf/table"
)

// view prints table events. In quiet mode only finished games are shown.
type view struct {
	names [doppelkopf.NumSeats]string
	human int
	quiet bool
	game  int
}

func (v *view) observe(e table.Event) {
	if v.quiet {
		return
	}
	switch e.Kind {
	case table.EventDeal:
		pterm.DefaultSection.Printfln("Game %d, %s deals", v.game, v.names[e.Seat])
	case table.EventVote:
		pterm.Info.Printfln("%s votes %s", v.name(e.Seat), *e.Action.Variant)
	case table.EventVariant:
		pterm.Println(variantBox(*e.Arbitration, v.names, v.human))
	case table.EventAnnounce:
		pterm.Warning.Printfln("%s announces %s", v.name(e.Seat), strings.ToUpper(e.Action.Declaration.String()))
	case table.EventPlay:
		pterm.Printfln("  %s plays %s", v.name(e.Seat), e.Action.Card.String())
	case table.EventTrick:
		pterm.Println(trickLine(*e.Trick, v.names))
	case table.EventFinished:
		pterm.Println(resultBox(*e.Result, v.names))
	}
}

func (v *view) name(seat int) string {
	return pterm.LightCyan(v.names[seat])
}

func handString(cards []doppelkopf.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func trickLine(res doppelkopf.TrickResult, names [doppelkopf.NumSeats]string) string {
	line := pterm.Sprintf("%s takes %s for %d points", pterm.LightGreen(names[res.Winner]), handString(res.Trick.Cards), res.Points)
	for _, c := range res.Captures {
		line += "\n" + captureLine(c, names)
	}
	return line
}

func captureLine(c doppelkopf.Capture, names [doppelkopf.NumSeats]string) string {
	switch c.Kind {
	case doppelkopf.CaptureDiamondAce:
		return pterm.LightMagenta(fmt.Sprintf("  Fox caught: %s takes the Diamond Ace from %s", names[c.Winner], names[c.From]))
	case doppelkopf.CaptureFortyPlus:
		return pterm.LightMagenta(fmt.Sprintf("  Doppelkopf: %s takes a trick of 40 points or more", names[c.Winner]))
	}
	return ""
}

func teamLabel(t doppelkopf.Team) string {
	if t == doppelkopf.Re {
		return pterm.LightRed("Re")
	}
	return pterm.LightBlue("Kontra")
}

func variantBox(arb doppelkopf.Arbitration, names [doppelkopf.NumSeats]string, human int) string {
	var b strings.Builder
	if arb.Declarer >= 0 {
		fmt.Fprintf(&b, "%s plays %s\n", names[arb.Declarer], arb.Variant)
	} else {
		fmt.Fprintf(&b, "Normal game\n")
	}
	if human >= 0 {
		fmt.Fprintf(&b, "You are %s", teamLabel(arb.Teams[human]))
	}
	return pterm.DefaultBox.WithTitle(pterm.LightYellow("|VARIANT|")).WithTitleTopCenter().Sprint(b.String())
}

// resultLines describes a result as plain text lines.
func resultLines(r doppelkopf.Result, names [doppelkopf.NumSeats]string) []string {
	lines := []string{
		fmt.Sprintf("Re %d : %d Kontra, %s wins", r.ReScore, r.KontraScore, r.Winner),
	}
	achievements := make([]string, len(r.Achievements))
	for i, a := range r.Achievements {
		achievements[i] = string(a)
	}
	lines = append(lines, fmt.Sprintf("Value %d x %d (%s)", r.Base, r.Multiplier, strings.Join(achievements, ", ")))
	for seat, p := range r.GamePoints {
		lines = append(lines, fmt.Sprintf("%-10s %-6s %+d", names[seat], r.Teams[seat], p))
	}
	return lines
}

func resultBox(r doppelkopf.Result, names [doppelkopf.NumSeats]string) string {
	title := "|GAME OVER|"
	if r.Solo {
		title = "|SOLO OVER|"
	}
	return pterm.DefaultBox.WithTitle(pterm.LightGreen(title)).WithTitleTopCenter().
		WithHorizontalPadding(4).Sprint(strings.Join(resultLines(r, names), "\n"))
}

func standingsData(s table.Standings) pterm.TableData {
	data := pterm.TableData{{"#", "Player", "Points", "Won"}}
	for rank, seat := range s.Ranking() {
		data = append(data, []string{
			strconv.Itoa(rank + 1),
			s.Names[seat],
			fmt.Sprintf("%+d", s.Points[seat]),
			fmt.Sprintf("%d/%d", s.Wins[seat], s.Games),
		})
	}
	return data
}

func printStandings(s table.Standings) error {
	pterm.DefaultSection.Println("Standings")
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(standingsData(s)).Render()
}
