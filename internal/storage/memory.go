package storage

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/letsssgooo/triviaQuiz/internal/domain/models"
)

// MemoryStorage реализует Storage в памяти.
type MemoryStorage struct {
	mu         sync.RWMutex
	questions  map[int][]models.RawQuestion // ключ - ID категории
	categories map[int]string
}

// NewMemoryStorage создаёт пустой MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		questions:  make(map[int][]models.RawQuestion),
		categories: make(map[int]string),
	}
}

// NewSampleStorage создаёт MemoryStorage со встроенным набором вопросов.
func NewSampleStorage() *MemoryStorage {
	s := NewMemoryStorage()
	for _, c := range sampleCategories {
		s.Add(c, sampleQuestions[c.ID]...)
	}

	return s
}

// Add добавляет вопросы в категорию.
func (s *MemoryStorage) Add(category models.Category, questions ...models.RawQuestion) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories[category.ID] = category.Name
	s.questions[category.ID] = append(s.questions[category.ID], questions...)
}

// Fetch возвращает до amount случайных вопросов.
func (s *MemoryStorage) Fetch(
	ctx context.Context,
	amount int,
	category *int,
	difficulty string,
) ([]models.RawQuestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()

	var candidates []models.RawQuestion
	for categoryID, questions := range s.questions {
		if category != nil && *category != categoryID {
			continue
		}

		for _, q := range questions {
			if difficulty != "" && !strings.EqualFold(q.Difficulty, difficulty) {
				continue
			}

			candidates = append(candidates, q)
		}
	}

	s.mu.RUnlock()

	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if amount > 0 && amount < len(candidates) {
		candidates = candidates[:amount]
	}

	return candidates, nil
}

// Categories возвращает категории по возрастанию ID.
func (s *MemoryStorage) Categories(ctx context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]models.Category, 0, len(s.categories))
	for id, name := range s.categories {
		categories = append(categories, models.Category{ID: id, Name: name})
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].ID < categories[j].ID
	})

	return categories, nil
}

// Close ничего не делает.
func (s *MemoryStorage) Close() {}
