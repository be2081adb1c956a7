package doppelkopf

const (
	// TotalCardPoints is the card-point sum of either deck form.
	TotalCardPoints = 240
	// WinThreshold is the team score Re needs to win.
	WinThreshold = 121
	// AnnouncementWindow is the number of played cards after which Re and
	// Contra can no longer be announced. Escalations get the same number of
	// cards counted from their base announcement.
	AnnouncementWindow = 5
)

// Rules are the table rules fixed for one game.
type Rules struct {
	// Nines selects the 48-card deck. The default is the 40-card deck.
	Nines           bool `json:"nines"`
	FoxBonus        bool `json:"fox_bonus"`
	DoppelkopfBonus bool `json:"doppelkopf_bonus"`
	// StrictChecks verifies every invariant after each transition and
	// panics on a violation.
	StrictChecks bool `json:"strict_checks"`
}

type Option func(Rules) Rules

// NewRules returns the default rules with opts applied.
func NewRules(opts ...Option) Rules {
	r := Rules{
		FoxBonus:        true,
		DoppelkopfBonus: true,
	}
	for _, opt := range opts {
		r = opt(r)
	}
	return r
}

func WithNines(nines bool) Option {
	return func(r Rules) Rules {
		r.Nines = nines
		return r
	}
}

func WithFoxBonus(enabled bool) Option {
	return func(r Rules) Rules {
		r.FoxBonus = enabled
		return r
	}
}

func WithDoppelkopfBonus(enabled bool) Option {
	return func(r Rules) Rules {
		r.DoppelkopfBonus = enabled
		return r
	}
}

func WithStrictChecks() Option {
	return func(r Rules) Rules {
		r.StrictChecks = true
		return r
	}
}

// WithRules replaces the whole rule set, e.g. one restored from a log.
func WithRules(rules Rules) Option {
	return func(Rules) Rules {
		return rules
	}
}

// DeckSize is 48 with Nines and 40 without.
func (r Rules) DeckSize() int {
	if r.Nines {
		return 48
	}
	return 40
}

// HandSize is the number of cards dealt to each seat.
func (r Rules) HandSize() int {
	return r.DeckSize() / NumSeats
}

func (r Rules) ranks() []Rank {
	if r.Nines {
		return Ranks
	}
	return Ranks[1:]
}
