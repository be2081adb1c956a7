package doppelkopf

import (
	"fmt"
	"slices"
)

// Achievement is one line of the final score sheet.
type Achievement string

const (
	AchievementWon             Achievement = "won"
	AchievementNo90            Achievement = "no90"
	AchievementNo60            Achievement = "no60"
	AchievementNo30            Achievement = "no30"
	AchievementBlack           Achievement = "black"
	AchievementAnnouncedRe     Achievement = "announced_re"
	AchievementAnnouncedContra Achievement = "announced_contra"
	AchievementAnnouncedNo90   Achievement = "announced_no90"
	AchievementAnnouncedNo60   Achievement = "announced_no60"
	AchievementAnnouncedNo30   Achievement = "announced_no30"
	AchievementAnnouncedBlack  Achievement = "announced_black"
)

// Result is the terminal score of a game.
type Result struct {
	Winner      Team `json:"winner"`
	ReScore     int  `json:"re_score"`
	KontraScore int  `json:"kontra_score"`
	// Base counts the won points before the multiplier.
	Base       int `json:"base"`
	Multiplier int `json:"multiplier"`
	// Solo is set when one seat played against three.
	Solo         bool           `json:"solo"`
	Achievements []Achievement  `json:"achievements"`
	GamePoints   [NumSeats]int  `json:"game_points"`
	Teams        [NumSeats]Team `json:"teams"`
}

// Value is the game value every loser pays in a two-against-two game.
func (r Result) Value() int {
	return r.Base * r.Multiplier
}

func (r Result) clone() Result {
	r.Achievements = slices.Clone(r.Achievements)
	return r
}

// FinalScoring returns the score of a finished game.
func (g *Game) FinalScoring() (Result, error) {
	if g.Phase != Finished {
		return Result{}, fmt.Errorf("%w: %d of %d cards played", ErrNotFinished, g.CardsPlayed, g.Rules.DeckSize())
	}
	if g.Result != nil {
		return g.Result.clone(), nil
	}
	return g.score(), nil
}

var achievedSteps = []struct {
	level       AnnouncementLevel
	threshold   int
	achievement Achievement
	announced   Achievement
}{
	{LevelNo90, 89, AchievementNo90, AchievementAnnouncedNo90},
	{LevelNo60, 59, AchievementNo60, AchievementAnnouncedNo60},
	{LevelNo30, 29, AchievementNo30, AchievementAnnouncedNo30},
	{LevelBlack, 0, AchievementBlack, AchievementAnnouncedBlack},
}

func (g *Game) score() Result {
	re, kontra := g.TeamScores()
	r := Result{
		ReScore:     re,
		KontraScore: kontra,
		Teams:       g.Teams,
		Winner:      Kontra,
	}
	if re >= WinThreshold {
		r.Winner = Re
	}
	loserScore := kontra
	if r.Winner == Kontra {
		loserScore = re
	}

	r.Base = 1
	r.Achievements = []Achievement{AchievementWon}
	for _, step := range achievedSteps {
		if loserScore <= step.threshold {
			r.Base++
			r.Achievements = append(r.Achievements, step.achievement)
		}
	}

	chain := g.Announcements[r.Winner.slot()]
	if chain.Level >= LevelReContra {
		r.Base++
		if r.Winner == Re {
			r.Achievements = append(r.Achievements, AchievementAnnouncedRe)
		} else {
			r.Achievements = append(r.Achievements, AchievementAnnouncedContra)
		}
	}
	for _, step := range achievedSteps {
		if chain.Level >= step.level && loserScore <= step.threshold {
			r.Base++
			r.Achievements = append(r.Achievements, step.announced)
		}
	}

	r.Multiplier = g.maxLevel().Multiplier()
	value := r.Value()

	reSeats, kontraSeats := g.SeatsOf(Re), g.SeatsOf(Kontra)
	switch {
	case len(reSeats) == 1 || len(kontraSeats) == 1:
		r.Solo = true
		single, others := reSeats, kontraSeats
		if len(kontraSeats) == 1 {
			single, others = kontraSeats, reSeats
		}
		sign := -1
		if g.Teams[single[0]] == r.Winner {
			sign = 1
		}
		r.GamePoints[single[0]] = sign * len(others) * value
		for _, s := range others {
			r.GamePoints[s] = -sign * value
		}
	default:
		for s, team := range g.Teams {
			if team == r.Winner {
				r.GamePoints[s] = value
			} else {
				r.GamePoints[s] = -value
			}
		}
	}
	return r
}
