package models

// Deck is the fixed 78-card tarot deck. Card indices in a Reading point into
// this slice.
var Deck = buildDeck()

var majorArcana = []string{
	"The Fool", "The Magician", "The High Priestess", "The Empress",
	"The Emperor", "The Hierophant", "The Lovers", "The Chariot",
	"Strength", "The Hermit", "Wheel of Fortune", "Justice",
	"The Hanged Man", "Death", "Temperance", "The Devil",
	"The Tower", "The Star", "The Moon", "The Sun",
	"Judgement", "The World",
}

var suits = []string{"Wands", "Cups", "Swords", "Pentacles"}

var ranks = []string{
	"Ace", "Two", "Three", "Four", "Five", "Six", "Seven",
	"Eight", "Nine", "Ten", "Page", "Knight", "Queen", "King",
}

func buildDeck() []string {
	deck := make([]string, 0, 78)
	deck = append(deck, majorArcana...)
	for _, suit := range suits {
		for _, rank := range ranks {
			deck = append(deck, rank+" of "+suit)
		}
	}
	return deck
}
