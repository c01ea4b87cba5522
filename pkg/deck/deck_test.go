package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"holdem-server/internal/rng"
)

func TestNewDeck(t *testing.T) {
	a := assert.New(t)
	d := New()

	a.Equal(52, d.CardsLeft())
	a.Equal(Card{Rank: Ace, Suit: Spades}, *d.Cards[0])
	a.Equal(Card{Rank: King, Suit: Clubs}, *d.Cards[51])
	a.False(Hand(d.Cards).HasDuplicates())

	unshuffled := d.HashCode()
	d.Shuffle(rng.NewSeeded(1))
	a.Equal(52, d.CardsLeft())
	a.False(Hand(d.Cards).HasDuplicates())
	a.NotEqual(unshuffled, d.HashCode())

	// the same seed always produces the same order
	d2 := New()
	d2.Shuffle(rng.NewSeeded(1))
	a.Equal(d.HashCode(), d2.HashCode())

	// shuffling always starts over from a complete deck
	_, _ = d.Draw()
	d.Shuffle(rng.NewSeeded(1))
	a.Equal(52, d.CardsLeft())
	a.Equal(d2.HashCode(), d.HashCode())
}

func TestDeck_Draw(t *testing.T) {
	deck := New()

	if !deck.CanDraw(52) {
		t.Errorf("expected CanDraw(52) to be true")
	}

	if deck.CanDraw(53) {
		t.Errorf("expected CanDraw(53) to be false")
	}

	for i := 0; i < 52; i++ {
		card, err := deck.Draw()
		if card == nil {
			t.Error("expected card, got nil")
		}

		if err != nil {
			t.Errorf("expected err to be nil, got %v", err)
		}
	}

	if deck.CanDraw(1) {
		t.Errorf("expected CanDraw(1) to be false")
	}

	card, err := deck.Draw()
	if card != nil {
		t.Errorf("expected card to be nil, got %#v", card)
	}

	if err != ErrEndOfDeck {
		t.Errorf("expected err to be ErrEndOfDeck, got %#v", err)
	}

	deck.Shuffle(rng.Crypto{})
	if !deck.CanDraw(52) {
		t.Errorf("expected Shuffle() to reshuffle the deck")
	}
}
