package models

import "testing"

func TestDeck(t *testing.T) {
	if len(Deck) != 78 {
		t.Fatalf("deck size = %d, want 78", len(Deck))
	}
	seen := make(map[string]bool, len(Deck))
	for i, name := range Deck {
		if name == "" {
			t.Errorf("card %d has no name", i)
		}
		if seen[name] {
			t.Errorf("duplicate card %q", name)
		}
		seen[name] = true
	}
	if Deck[0] != "The Fool" {
		t.Errorf("Deck[0] = %q, want The Fool", Deck[0])
	}
	if Deck[21] != "The World" {
		t.Errorf("Deck[21] = %q, want The World", Deck[21])
	}
	if Deck[22] != "Ace of Wands" {
		t.Errorf("Deck[22] = %q, want Ace of Wands", Deck[22])
	}
	if Deck[77] != "King of Pentacles" {
		t.Errorf("Deck[77] = %q, want King of Pentacles", Deck[77])
	}
}
