package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letsssgooo/triviaQuiz/internal/domain/models"
)

func TestSampleStorage_Categories(t *testing.T) {
	s := NewSampleStorage()

	categories, err := s.Categories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []models.Category{
		{ID: models.CategoryScience, Name: "Science"},
		{ID: models.CategoryComputers, Name: "Computers"},
		{ID: models.CategoryHistory, Name: "History"},
	}, categories)
}

func TestMemoryStorage_FetchByCategory(t *testing.T) {
	s := NewSampleStorage()
	category := models.CategoryHistory

	questions, err := s.Fetch(context.Background(), 10, &category, "")
	require.NoError(t, err)
	require.Len(t, questions, 4)

	for _, q := range questions {
		assert.Equal(t, "History", q.Category)
		assert.NotEmpty(t, q.CorrectAnswer)
		assert.Len(t, q.IncorrectAnswers, 3)
	}
}

func TestMemoryStorage_FetchLimitAndDifficulty(t *testing.T) {
	s := NewSampleStorage()

	questions, err := s.Fetch(context.Background(), 2, nil, "")
	require.NoError(t, err)
	assert.Len(t, questions, 2)

	questions, err = s.Fetch(context.Background(), 10, nil, "HARD")
	require.NoError(t, err)
	require.Len(t, questions, 3)

	for _, q := range questions {
		assert.Equal(t, "hard", q.Difficulty)
	}
}

func TestMemoryStorage_FetchDoesNotMutateBank(t *testing.T) {
	s := NewMemoryStorage()
	s.Add(models.Category{ID: 1, Name: "Test"},
		models.RawQuestion{Question: "Q1", CorrectAnswer: "A", IncorrectAnswers: []string{"B"}},
		models.RawQuestion{Question: "Q2", CorrectAnswer: "A", IncorrectAnswers: []string{"B"}},
		models.RawQuestion{Question: "Q3", CorrectAnswer: "A", IncorrectAnswers: []string{"B"}},
	)

	for i := 0; i < 10; i++ {
		_, err := s.Fetch(context.Background(), 3, nil, "")
		require.NoError(t, err)
	}

	assert.Equal(t, "Q1", s.questions[1][0].Question)
	assert.Equal(t, "Q2", s.questions[1][1].Question)
	assert.Equal(t, "Q3", s.questions[1][2].Question)
}

func TestMemoryStorage_UnknownCategory(t *testing.T) {
	s := NewSampleStorage()
	category := 999

	questions, err := s.Fetch(context.Background(), 10, &category, "")
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestMemoryStorage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSampleStorage().Fetch(ctx, 10, nil, "")
	assert.ErrorIs(t, err, context.Canceled)
}

var _ Storage = (*MemoryStorage)(nil)
