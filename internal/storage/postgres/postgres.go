package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/letsssgooo/triviaQuiz/internal/domain/models"
)

// Storage — банк вопросов в PostgreSQL.
type Storage struct {
	pool *pgxpool.Pool
}

func NewStorage(ctx context.Context, dsn string, maxConns int32) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return &Storage{pool: pool}, nil
}

// Migrate создаёт таблицы банка, если их нет.
func (s *Storage) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}

func (s *Storage) Fetch(
	ctx context.Context,
	amount int,
	category *int,
	difficulty string,
) ([]models.RawQuestion, error) {
	query := `
	SELECT c.name, q.type, q.difficulty, q.question, q.correct_answer, q.incorrect_answers
	FROM trivia_questions q
	JOIN trivia_categories c ON c.id = q.category_id
	WHERE ($1::int IS NULL OR q.category_id = $1)
	  AND ($2::text = '' OR q.difficulty = $2)
	ORDER BY random()
	LIMIT $3
	`

	rows, err := s.pool.Query(ctx, query, fetchArgs(amount, category, difficulty)...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	questions := make([]models.RawQuestion, 0, amount)
	for rows.Next() {
		var q models.RawQuestion
		err = rows.Scan(&q.Category, &q.Type, &q.Difficulty, &q.Question, &q.CorrectAnswer, &q.IncorrectAnswers)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}

		questions = append(questions, q)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}

	return questions, nil
}

func (s *Storage) Categories(ctx context.Context) ([]models.Category, error) {
	query := `
	SELECT c.id, c.name
	FROM trivia_categories c
	WHERE EXISTS (SELECT 1 FROM trivia_questions q WHERE q.category_id = c.id)
	ORDER BY c.id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err = rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}

		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (s *Storage) Close() {
	s.pool.Close()
}

// fetchArgs готовит аргументы запроса: nil категория передаётся как NULL.
func fetchArgs(amount int, category *int, difficulty string) []interface{} {
	var categoryArg interface{}
	if category != nil {
		categoryArg = *category
	}

	return []interface{}{categoryArg, strings.ToLower(difficulty), amount}
}
