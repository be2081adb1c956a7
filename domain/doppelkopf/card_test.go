package doppelkopf

import (
	"encoding/json"
	"testing"
)

func TestBuildDeck(t *testing.T) {
	tests := []struct {
		name  string
		rules Rules
		size  int
	}{
		{"without nines", NewRules(), 40},
		{"with nines", NewRules(WithNines(true)), 48},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deck := BuildDeck(tt.rules)
			if len(deck) != tt.size {
				t.Fatalf("expected %d cards, got %d", tt.size, len(deck))
			}
			points := 0
			seen := map[Card]bool{}
			for _, c := range deck {
				if seen[c] {
					t.Fatalf("card %s built twice", c.Code())
				}
				seen[c] = true
				points += c.Points()
			}
			if points != TotalCardPoints {
				t.Fatalf("deck totals %d points, want %d", points, TotalCardPoints)
			}
			qc := 0
			for _, c := range deck {
				if c.isQueenOfClubs() {
					qc++
				}
			}
			if qc != 2 {
				t.Fatalf("expected 2 Queens of Clubs, got %d", qc)
			}
		})
	}
}

func TestCardCodeRoundTrip(t *testing.T) {
	for _, c := range BuildDeck(NewRules(WithNines(true))) {
		parsed, err := ParseCard(c.Code())
		if err != nil {
			t.Fatalf("failed to parse %s: %v", c.Code(), err)
		}
		if parsed != c {
			t.Fatalf("expected %v, got %v", c, parsed)
		}
	}
}

func TestParseCard(t *testing.T) {
	tests := []struct {
		code    string
		want    Card
		wantErr bool
	}{
		{code: "QC0", want: Card{Suit: Clubs, Rank: Queen}},
		{code: "th1", want: Card{Suit: Hearts, Rank: Ten, Copy: 1}},
		{code: "AD", want: Card{Suit: Diamonds, Rank: Ace}},
		{code: "9S1", want: Card{Suit: Spades, Rank: Nine, Copy: 1}},
		{code: "XC0", wantErr: true},
		{code: "QX0", wantErr: true},
		{code: "QC2", wantErr: true},
		{code: "Q", wantErr: true},
		{code: "QC01", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := ParseCard(tt.code)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.code, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCardJSON(t *testing.T) {
	in := []Card{{Suit: Hearts, Rank: Ten, Copy: 1}, {Suit: Clubs, Rank: Queen}}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `["TH1","QC0"]` {
		t.Fatalf("unexpected encoding %s", data)
	}
	var out []Card
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("expected %v, got %v", in, out)
	}
}

func TestNewCardValidation(t *testing.T) {
	if _, err := NewCard(Clubs, Ace, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewCard(Suit(4), Ace, 0); err == nil {
		t.Fatal("expected error for invalid suit")
	}
	if _, err := NewCard(Clubs, Rank(6), 0); err == nil {
		t.Fatal("expected error for invalid rank")
	}
	if _, err := NewCard(Clubs, Ace, 2); err == nil {
		t.Fatal("expected error for invalid copy")
	}
}

func TestSortForVariant(t *testing.T) {
	hand := cards(t, "AC0 JD0 TH0 AD0 QC0 KS0")
	SortForVariant(hand, Normal)
	want := cards(t, "TH0 QC0 JD0 AD0 AC0 KS0")
	for i := range want {
		if hand[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, hand)
		}
	}
}
