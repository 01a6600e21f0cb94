package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLetterToIndex(t *testing.T) {
	testCases := []struct {
		letter string
		idx    int
		ok     bool
	}{
		{letter: "A", idx: 0, ok: true},
		{letter: "d", idx: 3, ok: true},
		{letter: " F ", idx: 5, ok: true},
		{letter: "G", idx: -1, ok: false},
		{letter: "", idx: -1, ok: false},
		{letter: "AB", idx: -1, ok: false},
	}

	for _, tc := range testCases {
		idx, ok := LetterToIndex(tc.letter)
		assert.Equal(t, tc.idx, idx, tc.letter)
		assert.Equal(t, tc.ok, ok, tc.letter)
	}
}

func TestIndexToLetter(t *testing.T) {
	assert.Equal(t, "A", IndexToLetter(0))
	assert.Equal(t, "F", IndexToLetter(5))
	assert.Equal(t, "", IndexToLetter(6))
	assert.Equal(t, "", IndexToLetter(-1))
}
