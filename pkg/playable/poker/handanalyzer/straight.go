package handanalyzer

import "holdem-server/pkg/deck"

// straightHigh returns the high card of a straight made by five distinct ranks sorted
// from highest to lowest, or 0 if the ranks are not consecutive.
// The wheel (A-2-3-4-5) is a five-high straight.
func straightHigh(ranks []int) int {
	if len(ranks) != 5 {
		return 0
	}

	if ranks[0]-ranks[4] == 4 {
		return ranks[0]
	}

	if ranks[0] == deck.Ace && ranks[1] == 5 && ranks[4] == 2 {
		return 5
	}

	return 0
}
