package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"holdem-server/internal/rng"
)

type sequence []int

func (s *sequence) Intn(n int) int {
	next := (*s)[0]
	*s = (*s)[1:]
	return next % n
}

func TestGetRandomName(t *testing.T) {
	orig := random
	defer func() {
		random = orig
	}()

	random = &sequence{6, 9, 27, 11}
	assert.Equal(t, "Waiving Lion", GetRandomName())
	assert.Equal(t, "Jumping Bear", GetRandomName())

	random = rng.NewSeeded(3)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, `^[A-Z][a-z]+ [A-Z][a-z]+$`, GetRandomName())
	}
}
