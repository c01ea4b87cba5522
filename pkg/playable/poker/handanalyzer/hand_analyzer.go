package handanalyzer

import (
	"fmt"
	"math"
	"sort"

	"holdem-server/pkg/deck"
)

// HandSize is the number of cards that make up a poker hand
const HandSize = 5

// Rank is a comparable ranking of a five-card hand: the category followed by
// tie-break ranks, most significant first
type Rank struct {
	Hand     Hand  `json:"hand"`
	TieBreak []int `json:"tieBreak"`
}

// Values returns the rank as a single tuple, category first
func (r Rank) Values() []int {
	return append([]int{int(r.Hand)}, r.TieBreak...)
}

// Compare returns -1, 0, or 1 when r is worse than, equal to, or better than o
func (r Rank) Compare(o Rank) int {
	a, b := r.Values(), o.Values()
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}

			return 1
		}
	}

	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}

	return 0
}

// Strength encodes the rank into an int that preserves the ordering of Compare
func (r Rank) Strength() int {
	return calculateStrength(r.Hand, r.TieBreak)
}

// HandAnalyzer finds the best five-card hand within a set of cards
type HandAnalyzer struct {
	cards deck.Hand
	best  deck.Hand
	rank  Rank
}

// New will return a new HandAnalyzer instance
// At least five cards are required. Every five-card subset is ranked, and the best one is kept.
func New(cards []*deck.Card) *HandAnalyzer {
	if len(cards) < HandSize {
		panic(fmt.Sprintf("at least %d cards are required, got %d", HandSize, len(cards)))
	}

	for _, card := range cards {
		if card == nil || !card.Valid() {
			panic(fmt.Sprintf("cannot analyze invalid card: %#v", card))
		}
	}

	h := &HandAnalyzer{
		cards: deck.Hand(cards).Clone(),
	}

	h.analyzeHand()
	return h
}

// analyzeHand walks every five-card combination. A combination only replaces the current
// best if it is strictly better, so the first of equal combinations wins.
func (h *HandAnalyzer) analyzeHand() {
	n := len(h.cards)
	idx := make([]int, HandSize)
	for i := range idx {
		idx[i] = i
	}

	five := make(deck.Hand, HandSize)
	found := false
	for {
		for i, j := range idx {
			five[i] = h.cards[j]
		}

		rank, ordered := rankFive(five)
		if !found || rank.Compare(h.rank) > 0 {
			h.rank = rank
			h.best = ordered
			found = true
		}

		// advance to the next combination in lexicographic order
		i := HandSize - 1
		for i >= 0 && idx[i] == n-HandSize+i {
			i--
		}

		if i < 0 {
			return
		}

		idx[i]++
		for j := i + 1; j < HandSize; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// rankGroup is every card of a single rank
type rankGroup struct {
	rank  int
	cards deck.Hand
}

// groupByRank groups the cards by rank, largest group first, then highest rank first
func groupByRank(cards deck.Hand) []*rankGroup {
	byRank := make(map[int]*rankGroup)
	groups := make([]*rankGroup, 0, len(cards))
	for _, card := range cards {
		g, ok := byRank[card.Rank]
		if !ok {
			g = &rankGroup{rank: card.Rank}
			byRank[card.Rank] = g
			groups = append(groups, g)
		}

		g.cards.AddCard(card)
	}

	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].cards) != len(groups[j].cards) {
			return len(groups[i].cards) > len(groups[j].cards)
		}

		return groups[i].rank > groups[j].rank
	})

	return groups
}

// rankFive ranks exactly five cards and returns them ordered by significance
func rankFive(five deck.Hand) (Rank, deck.Hand) {
	groups := groupByRank(five)

	ordered := make(deck.Hand, 0, HandSize)
	ranks := make([]int, len(groups))
	for i, g := range groups {
		ranks[i] = g.rank
		ordered = append(ordered, g.cards...)
	}

	flush := true
	for _, card := range five[1:] {
		if card.Suit != five[0].Suit {
			flush = false
			break
		}
	}

	high := straightHigh(ranks)
	if high == 5 {
		// the ace plays low in a wheel
		ordered = append(ordered[1:], ordered[0])
	}

	switch {
	case high > 0 && flush:
		return Rank{Hand: StraightFlush, TieBreak: []int{high}}, ordered
	case len(groups[0].cards) == 4:
		return Rank{Hand: FourOfAKind, TieBreak: ranks}, ordered
	case len(groups[0].cards) == 3 && len(groups[1].cards) == 2:
		return Rank{Hand: FullHouse, TieBreak: ranks}, ordered
	case flush:
		return Rank{Hand: Flush, TieBreak: ranks}, ordered
	case high > 0:
		return Rank{Hand: Straight, TieBreak: []int{high}}, ordered
	case len(groups[0].cards) == 3:
		return Rank{Hand: ThreeOfAKind, TieBreak: ranks}, ordered
	case len(groups[0].cards) == 2 && len(groups[1].cards) == 2:
		return Rank{Hand: TwoPair, TieBreak: ranks}, ordered
	case len(groups[0].cards) == 2:
		return Rank{Hand: OnePair, TieBreak: ranks}, ordered
	}

	return Rank{Hand: HighCard, TieBreak: ranks}, ordered
}

// GetHand will return the best possible hand the cards can make
func (h *HandAnalyzer) GetHand() Hand {
	return h.rank.Hand
}

// GetRank returns the rank of the best five-card hand
func (h *HandAnalyzer) GetRank() Rank {
	return h.rank
}

// GetBestFive returns the best five cards, ordered by significance
func (h *HandAnalyzer) GetBestFive() deck.Hand {
	return h.best.Clone()
}

// GetRoyalFlush will return true if there's a royal flush
func (h *HandAnalyzer) GetRoyalFlush() bool {
	return h.rank.Hand == StraightFlush && h.rank.TieBreak[0] == deck.Ace
}

// Describe returns a human readable name for the best hand
func (h *HandAnalyzer) Describe() string {
	if h.GetRoyalFlush() {
		return "Royal flush"
	}

	return h.rank.Hand.String()
}

func calculateStrength(hand Hand, cards []int) int {
	fiveCards := make([]int, 5)
	copy(fiveCards, cards)

	strength := math.Pow(15, 5) * float64(hand)
	for i := 0; i < 5; i++ {
		val := fiveCards[4-i]
		strength += math.Pow(15, float64(i)) * float64(val)
	}

	return int(strength)
}

// GetStrength returns the strength of the hand
func (h *HandAnalyzer) GetStrength() int {
	return h.rank.Strength()
}
