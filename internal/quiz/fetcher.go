package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"strings"

	"github.com/letsssgooo/triviaQuiz/internal/domain/models"
)

// DefaultAmount — размер набора, если не задан явно.
const DefaultAmount = 10

// ShuffleFunc переставляет n элементов через swap (сигнатура rand.Shuffle).
type ShuffleFunc func(n int, swap func(i, j int))

// Fetcher реализует Loader поверх Source: запрашивает сырые записи
// и нормализует их в вопросы с перемешанными вариантами.
type Fetcher struct {
	source     Source
	shuffle    ShuffleFunc
	categoryOf func(raw models.RawQuestion) int
	log        *slog.Logger
}

// FetcherOption настраивает Fetcher.
type FetcherOption func(*Fetcher)

// WithShuffle задаёт функцию перемешивания вариантов.
func WithShuffle(shuffle ShuffleFunc) FetcherOption {
	return func(f *Fetcher) {
		f.shuffle = shuffle
	}
}

// WithCategoryMapping задаёт сопоставление записи с ID категории.
func WithCategoryMapping(categoryOf func(raw models.RawQuestion) int) FetcherOption {
	return func(f *Fetcher) {
		f.categoryOf = categoryOf
	}
}

// WithFetcherLogger задаёт логгер.
func WithFetcherLogger(log *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.log = log
	}
}

// NewFetcher создаёт Fetcher для источника source.
func NewFetcher(source Source, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		source:  source,
		shuffle: rand.Shuffle,
		log:     slog.Default().With("component", "fetcher"),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// FetchQuestions запрашивает amount вопросов и нормализует их.
// Любая ошибка источника возвращается как *FetchError.
// Битые записи пропускаются, остальная часть набора сохраняется.
func (f *Fetcher) FetchQuestions(
	ctx context.Context,
	amount int,
	category *int,
	difficulty *models.Difficulty,
) ([]models.Question, error) {
	if amount < 1 {
		amount = DefaultAmount
	}

	label := ""
	if difficulty != nil {
		label = difficulty.Label()
	}

	raws, err := f.source.Fetch(ctx, amount, category, label)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	questions := make([]models.Question, 0, len(raws))
	for i, raw := range raws {
		question, err := f.normalize(raw, len(questions))
		if err != nil {
			f.log.Warn("skip question record", "idx", i, "err", err)
			continue
		}

		questions = append(questions, question)
	}

	if len(questions) == 0 {
		return nil, &FetchError{Err: ErrNoQuestions}
	}

	if len(questions) < amount {
		f.log.Debug("partial batch", "requested", amount, "got", len(questions))
	}

	return questions, nil
}

// normalize собирает варианты из неправильных ответов и правильного,
// перемешивает их и находит новую позицию правильного ответа.
func (f *Fetcher) normalize(raw models.RawQuestion, id int) (models.Question, error) {
	if strings.TrimSpace(raw.Question) == "" {
		return models.Question{}, fmt.Errorf("%w: missing question text", ErrMalformedRecord)
	}

	if strings.TrimSpace(raw.CorrectAnswer) == "" {
		return models.Question{}, fmt.Errorf("%w: missing correct answer", ErrMalformedRecord)
	}

	options := make([]string, 0, len(raw.IncorrectAnswers)+1)
	for _, answer := range raw.IncorrectAnswers {
		if strings.TrimSpace(answer) == "" {
			continue
		}

		options = append(options, answer)
	}
	options = append(options, raw.CorrectAnswer)

	if len(options) < 2 {
		return models.Question{}, fmt.Errorf("%w: need at least two options", ErrMalformedRecord)
	}

	f.shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	// при дублях правильного ответа берётся первое совпадение
	correctIdx := slices.Index(options, raw.CorrectAnswer)

	difficulty, ok := models.ParseDifficulty(raw.Difficulty)
	if !ok {
		f.log.Debug("unknown difficulty, using medium", "difficulty", raw.Difficulty)
	}

	categoryID := models.CategoryUnassigned
	if f.categoryOf != nil {
		categoryID = f.categoryOf(raw)
	}

	return models.Question{
		ID:          id,
		Text:        raw.Question,
		Options:     options,
		CorrectIdx:  correctIdx,
		Difficulty:  difficulty,
		CategoryID:  categoryID,
		Explanation: "Correct answer: " + raw.CorrectAnswer,
	}, nil
}

// CatalogCategory сопоставляет запись с каталогом models.Categories по названию.
// Названия вида "Science: Computers" сверяются и целиком, и по части после двоеточия.
func CatalogCategory(raw models.RawQuestion) int {
	if c, ok := models.CategoryByName(raw.Category); ok {
		return c.ID
	}

	if _, sub, found := strings.Cut(raw.Category, ":"); found {
		if c, ok := models.CategoryByName(strings.TrimSpace(sub)); ok {
			return c.ID
		}
	}

	return models.CategoryUnassigned
}
