package storage

import (
	"context"

	"github.com/letsssgooo/triviaQuiz/internal/domain/models"
)

// Storage определяет локальный банк вопросов, который может заменить HTTP API.
type Storage interface {
	// Fetch возвращает до amount случайных записей с учётом фильтров.
	Fetch(ctx context.Context, amount int, category *int, difficulty string) ([]models.RawQuestion, error)

	// Categories возвращает категории, для которых есть вопросы.
	Categories(ctx context.Context) ([]models.Category, error)

	// Close освобождает ресурсы хранилища.
	Close()
}
