package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letsssgooo/triviaQuiz/internal/storage"
)

func TestFetchArgs(t *testing.T) {
	category := 17

	args := fetchArgs(10, &category, "HARD")
	assert.Equal(t, []interface{}{17, "hard", 10}, args)

	args = fetchArgs(5, nil, "")
	require.Len(t, args, 3)
	assert.Nil(t, args[0])
	assert.Equal(t, "", args[1])
	assert.Equal(t, 5, args[2])
}

// Интеграционный тест, запускается при заданном TEST_DATABASE_URL.
func TestStorage_Fetch(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()

	s, err := NewStorage(ctx, dsn, 2)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Migrate(ctx))

	_, err = s.pool.Exec(ctx, `INSERT INTO trivia_categories (id, name) VALUES (9001, 'Test') ON CONFLICT DO NOTHING`)
	require.NoError(t, err)

	_, err = s.pool.Exec(ctx, `
	INSERT INTO trivia_questions (category_id, difficulty, question, correct_answer, incorrect_answers)
	VALUES (9001, 'easy', 'Q?', 'A', ARRAY['B', 'C', 'D'])
	`)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = s.pool.Exec(ctx, `DELETE FROM trivia_questions WHERE category_id = 9001`)
		_, _ = s.pool.Exec(ctx, `DELETE FROM trivia_categories WHERE id = 9001`)
	})

	category := 9001

	questions, err := s.Fetch(ctx, 10, &category, "easy")
	require.NoError(t, err)
	require.NotEmpty(t, questions)

	assert.Equal(t, "Test", questions[0].Category)
	assert.Equal(t, "A", questions[0].CorrectAnswer)
	assert.Equal(t, []string{"B", "C", "D"}, questions[0].IncorrectAnswers)

	categories, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Contains(t, categories[len(categories)-1].Name, "Test")
}

var _ storage.Storage = (*Storage)(nil)
