package main

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/doppelkopf/domain/doppelkopf"
)

const silent = "no announcement"

// terminalAgent asks the person at the terminal.
type terminalAgent struct {
	names [doppelkopf.NumSeats]string
}

func (a *terminalAgent) ChooseVariant(g *doppelkopf.Game, seat int) (doppelkopf.Variant, error) {
	legal, err := g.LegalVariants(seat)
	if err != nil {
		return doppelkopf.Normal, err
	}
	pterm.Println(handPanel(g, seat))
	options := make([]string, len(legal))
	for i, v := range legal {
		options[i] = v.String()
	}
	choice, err := pterm.DefaultInteractiveSelect.WithDefaultText(a.names[seat] + ", which game do you want to play?").WithOptions(options).Show()
	if err != nil {
		return doppelkopf.Normal, err
	}
	return doppelkopf.ParseVariant(choice)
}

func (a *terminalAgent) ChooseCard(g *doppelkopf.Game, seat int) (doppelkopf.Card, error) {
	legal, err := g.LegalActions(seat)
	if err != nil {
		return doppelkopf.Card{}, err
	}
	pterm.Println(handPanel(g, seat))
	labels, byLabel := cardOptions(legal)
	choice, err := pterm.DefaultInteractiveSelect.WithDefaultText("Play a card").WithOptions(labels).WithMaxHeight(len(labels)).Show()
	if err != nil {
		return doppelkopf.Card{}, err
	}
	c, ok := byLabel[choice]
	if !ok {
		return doppelkopf.Card{}, fmt.Errorf("%w: %q", doppelkopf.ErrIllegalCard, choice)
	}
	return c, nil
}

func (a *terminalAgent) ChooseAnnouncement(g *doppelkopf.Game, seat int) (doppelkopf.Declaration, bool) {
	legal := g.LegalDeclarations(seat)
	if len(legal) == 0 {
		return 0, false
	}
	options := []string{silent}
	for _, d := range legal {
		options = append(options, d.String())
	}
	choice, err := pterm.DefaultInteractiveSelect.WithDefaultText(a.names[seat] + ", announce?").WithOptions(options).Show()
	if err != nil || choice == silent {
		return 0, false
	}
	d, err := doppelkopf.ParseDeclaration(choice)
	if err != nil {
		return 0, false
	}
	return d, true
}

// cardOptions labels cards for a select prompt. Both copies of a card share
// one label since either may be played.
func cardOptions(cards []doppelkopf.Card) ([]string, map[string]doppelkopf.Card) {
	var labels []string
	byLabel := make(map[string]doppelkopf.Card, len(cards))
	for _, c := range cards {
		label := c.String()
		if _, ok := byLabel[label]; ok {
			continue
		}
		byLabel[label] = c
		labels = append(labels, label)
	}
	return labels, byLabel
}

func handPanel(g *doppelkopf.Game, seat int) string {
	hand := g.Hand(seat)
	doppelkopf.SortForVariant(hand, g.Variant)
	body := pterm.Sprintf("Hand: %s", handString(hand))
	if trick := g.CurrentTrick.Cards; len(trick) > 0 {
		body += pterm.Sprintf("\nTrick: %s", handString(trick))
	}
	if g.Phase == doppelkopf.Playing {
		re, kontra := g.TeamScores()
		body += pterm.Sprintf("\nRe %d : %d Kontra", re, kontra)
	}
	title := fmt.Sprintf("|%s|", g.Variant)
	if g.Phase == doppelkopf.VariantSelection {
		title = "|VOTE|"
	}
	return pterm.DefaultBox.WithTitle(pterm.LightYellow(title)).WithTitleTopLeft().Sprint(body)
}
