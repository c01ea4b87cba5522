package deck

import (
	"fmt"
	"unicode/utf8"
)

// first code point (the ace) of each suit in the Playing Cards block
var suitBase = map[Suit]rune{
	Spades:   0x1F0A1,
	Hearts:   0x1F0B1,
	Diamonds: 0x1F0C1,
	Clubs:    0x1F0D1,
}

// the block places a Knight between the Jack and the Queen
const knightOffset = 11

// Symbol returns the Unicode playing card for c, i.e., 🂡 for the ace of spades
func (c *Card) Symbol() string {
	base, ok := suitBase[c.Suit]
	if !ok || c.Rank < 2 || c.Rank > Ace {
		panic(fmt.Sprintf("cannot encode card: rank %d, suit %q", c.Rank, c.Suit))
	}

	offset := c.Rank - 1
	if c.Rank == Ace {
		offset = 0
	} else if offset >= knightOffset {
		offset++
	}

	return string(base + rune(offset))
}

// CardFromSymbol decodes a single Unicode playing card
func CardFromSymbol(symbol string) (*Card, error) {
	r, size := utf8.DecodeRuneInString(symbol)
	if r == utf8.RuneError || size != len(symbol) {
		return nil, fmt.Errorf("invalid card symbol: %q", symbol)
	}

	for suit, base := range suitBase {
		offset := int(r - base)
		if offset < 0 || offset > 14 || offset == knightOffset {
			continue
		}

		if offset > knightOffset {
			offset--
		}

		// 14 is past the king
		if offset > 12 {
			continue
		}

		rank := offset + 1
		if offset == 0 {
			rank = Ace
		}

		return &Card{Rank: rank, Suit: suit}, nil
	}

	return nil, fmt.Errorf("invalid card symbol: %q", symbol)
}

// MustCardFromSymbol is like CardFromSymbol, but panics on an unknown symbol
func MustCardFromSymbol(symbol string) *Card {
	card, err := CardFromSymbol(symbol)
	if err != nil {
		panic(err)
	}

	return card
}

// Symbols returns the symbols of each card
func (h Hand) Symbols() []string {
	s := make([]string, len(h))
	for i, card := range h {
		s[i] = card.Symbol()
	}

	return s
}
