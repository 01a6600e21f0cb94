package quiz

import (
	"context"
	"errors"

	"github.com/letsssgooo/triviaQuiz/internal/domain/models"
)

// Source определяет внешний источник сырых вопросов (HTTP API, БД, память).
type Source interface {
	// Fetch запрашивает amount записей. category == nil — любая категория,
	// difficulty == "" — любая сложность.
	Fetch(ctx context.Context, amount int, category *int, difficulty string) ([]models.RawQuestion, error)
}

// Loader определяет получение готового к сессии набора вопросов.
type Loader interface {
	// FetchQuestions загружает и нормализует набор вопросов.
	FetchQuestions(
		ctx context.Context,
		amount int,
		category *int,
		difficulty *models.Difficulty,
	) ([]models.Question, error)
}

// Ошибки сессии.
var (
	ErrNoQuestionAvailable = errors.New("no question available")
	ErrNoQuestions         = errors.New("source returned no usable questions")
	ErrMalformedRecord     = errors.New("malformed question record")
	ErrUnknownEvent        = errors.New("unknown event type")
	ErrSessionClosed       = errors.New("session is closed")
	ErrSessionRunning      = errors.New("session is already running")
)

// FetchError — ошибка получения вопросов из источника.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return "failed to load questions: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// EventType — тип входящего события сессии.
type EventType string

const (
	EventTypeSelectCategory EventType = "select_category"
	EventTypeLoadQuestions  EventType = "load_questions"
	EventTypeSelectAnswer   EventType = "select_answer"
	EventTypeNextQuestion   EventType = "next_question"
	EventTypeRestartQuiz    EventType = "restart_quiz"
)

// Event представляет входящее событие сессии.
type Event struct {
	Type       EventType
	CategoryID int
	AnswerIdx  int
}

// SelectCategory выбирает категорию и загружает для неё вопросы.
func SelectCategory(categoryID int) Event {
	return Event{Type: EventTypeSelectCategory, CategoryID: categoryID}
}

// LoadQuestions загружает вопросы категории.
func LoadQuestions(categoryID int) Event {
	return Event{Type: EventTypeLoadQuestions, CategoryID: categoryID}
}

// SelectAnswer выбирает вариант ответа (0-based) текущего вопроса.
func SelectAnswer(answerIdx int) Event {
	return Event{Type: EventTypeSelectAnswer, AnswerIdx: answerIdx}
}

// NextQuestion засчитывает выбранный ответ и переходит к следующему вопросу.
func NextQuestion() Event {
	return Event{Type: EventTypeNextQuestion}
}

// RestartQuiz загружает новый набор вопросов для последней выбранной категории.
func RestartQuiz() Event {
	return Event{Type: EventTypeRestartQuiz}
}

// EffectType — тип одноразового уведомления.
type EffectType string

const (
	EffectTypeNavigateBack EffectType = "navigate_back"
	EffectTypeShowError    EffectType = "show_error"
	EffectTypeShowToast    EffectType = "show_toast"
)

// Effect — одноразовое уведомление для UI. Не входит в State
// и доставляется ровно одному получателю.
type Effect struct {
	Type    EffectType
	Message string
}

// Тексты уведомлений.
const (
	msgCorrectAnswer       = "Correct answer!"
	msgNoQuestionAvailable = "No question available"
	msgLoadFailed          = "Failed to load questions"
)

// Phase — фаза сессии, вычисляемая из State.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseLoading    Phase = "loading"
	PhaseInProgress Phase = "in_progress"
	PhaseComplete   Phase = "complete"
)

// State — снимок состояния сессии. Снимки не изменяются после публикации,
// каждое событие создаёт новый.
type State struct {
	Questions          []models.Question
	CurrentIdx         int
	SelectedAnswer     *int
	Score              int
	IsLoading          bool
	Error              string
	IsComplete         bool
	SelectedCategoryID *int
}

// CurrentQuestion возвращает текущий вопрос, если он есть.
func (s State) CurrentQuestion() (models.Question, bool) {
	if s.CurrentIdx < 0 || s.CurrentIdx >= len(s.Questions) {
		return models.Question{}, false
	}

	return s.Questions[s.CurrentIdx], true
}

// IsLastQuestion сообщает, что текущий вопрос последний в наборе.
func (s State) IsLastQuestion() bool {
	return len(s.Questions) > 0 && s.CurrentIdx == len(s.Questions)-1
}

// Progress возвращает долю пройденного (номер текущего вопроса / всего).
func (s State) Progress() float64 {
	if len(s.Questions) == 0 {
		return 0
	}

	shown := s.CurrentIdx + 1
	if shown > len(s.Questions) {
		shown = len(s.Questions)
	}

	return float64(shown) / float64(len(s.Questions))
}

// Phase возвращает фазу сессии.
func (s State) Phase() Phase {
	switch {
	case s.IsLoading:
		return PhaseLoading
	case len(s.Questions) == 0:
		return PhaseIdle
	case s.IsComplete:
		return PhaseComplete
	default:
		return PhaseInProgress
	}
}

func intPtr(v int) *int {
	return &v
}
