package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/letsssgooo/triviaQuiz/internal/domain/models"
)

// DefaultEffectBuffer — ёмкость очереди уведомлений по умолчанию.
const DefaultEffectBuffer = 16

// Session — конечный автомат одной викторины. Состоянием владеет
// единственная горутина Run, события обрабатываются строго по очереди.
type Session struct {
	id         string
	loader     Loader
	amount     int
	difficulty *models.Difficulty
	log        *slog.Logger

	requests chan request
	effects  chan Effect
	done     chan struct{}
	running  atomic.Bool

	state atomic.Pointer[State]

	mu          sync.Mutex
	subscribers map[*subscriber]struct{}

	// seq — номер последней запрошенной загрузки, меняется только в Run.
	seq          uint64
	staleResults atomic.Int64
}

// request — событие пользователя либо результат загрузки.
type request struct {
	event   Event
	result  *loadResult
	applied chan error
}

type loadResult struct {
	seq        uint64
	categoryID int
	questions  []models.Question
	err        error
}

// Option настраивает Session.
type Option func(*Session)

// WithAmount задаёт размер набора вопросов.
func WithAmount(amount int) Option {
	return func(s *Session) {
		s.amount = amount
	}
}

// WithDifficulty ограничивает сложность загружаемых вопросов.
func WithDifficulty(difficulty models.Difficulty) Option {
	return func(s *Session) {
		s.difficulty = &difficulty
	}
}

// WithLogger задаёт логгер.
func WithLogger(log *slog.Logger) Option {
	return func(s *Session) {
		s.log = log
	}
}

// WithEffectBuffer задаёт ёмкость очереди уведомлений.
func WithEffectBuffer(size int) Option {
	return func(s *Session) {
		if size > 0 {
			s.effects = make(chan Effect, size)
		}
	}
}

// NewSession создаёт сессию, которая берёт вопросы из loader.
func NewSession(loader Loader, opts ...Option) *Session {
	s := &Session{
		id:          uuid.NewString(),
		loader:      loader,
		amount:      DefaultAmount,
		log:         slog.Default(),
		requests:    make(chan request),
		effects:     make(chan Effect, DefaultEffectBuffer),
		done:        make(chan struct{}),
		subscribers: make(map[*subscriber]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.log = s.log.With("component", "session", "session_id", s.id)
	s.state.Store(&State{})

	return s
}

// ID возвращает идентификатор сессии.
func (s *Session) ID() string {
	return s.id
}

// Snapshot возвращает текущее состояние.
func (s *Session) Snapshot() State {
	return *s.state.Load()
}

// Effects возвращает очередь одноразовых уведомлений. Читать её могут
// несколько получателей, каждое уведомление достанется только одному.
func (s *Session) Effects() <-chan Effect {
	return s.effects
}

// Done закрывается после остановки Run.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Run обрабатывает события до отмены ctx. Запускается один раз.
func (s *Session) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrSessionRunning
	}

	s.log.Info("session started")

	loadCtx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup

	defer func() {
		cancel()
		wg.Wait()
		close(s.done)
		s.log.Info("session stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-s.requests:
			if req.result != nil {
				s.applyLoadResult(*req.result)
				continue
			}

			err := s.handle(loadCtx, &wg, req.event)
			if req.applied != nil {
				req.applied <- err
			}
		}
	}
}

// Dispatch отправляет событие в очередь и ждёт, пока оно будет применено.
// Загрузка вопросов при этом только запускается, её результат придёт позже.
func (s *Session) Dispatch(ctx context.Context, event Event) error {
	req := request{
		event:   event,
		applied: make(chan error, 1),
	}

	select {
	case s.requests <- req:
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.applied:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// handle применяет событие пользователя к состоянию.
func (s *Session) handle(ctx context.Context, wg *sync.WaitGroup, event Event) error {
	s.log.Debug("handle event", "type", event.Type)

	switch event.Type {
	case EventTypeSelectCategory, EventTypeLoadQuestions:
		s.startLoad(ctx, wg, event.CategoryID)
		return nil
	case EventTypeSelectAnswer:
		s.selectAnswer(event.AnswerIdx)
		return nil
	case EventTypeNextQuestion:
		return s.nextQuestion()
	case EventTypeRestartQuiz:
		s.restart(ctx, wg)
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event.Type)
	}
}

// startLoad запускает загрузку. Результат применится, только если
// к его приходу не была запрошена более новая загрузка.
func (s *Session) startLoad(ctx context.Context, wg *sync.WaitGroup, categoryID int) {
	s.seq++
	seq := s.seq

	s.update(func(st *State) {
		st.SelectedCategoryID = intPtr(categoryID)
		st.IsLoading = true
		st.Error = ""
	})

	s.log.Info("load questions", "category", categoryID, "seq", seq, "amount", s.amount)

	wg.Add(1)

	go func() {
		defer wg.Done()

		questions, err := s.loader.FetchQuestions(ctx, s.amount, intPtr(categoryID), s.difficulty)

		res := &loadResult{
			seq:        seq,
			categoryID: categoryID,
			questions:  questions,
			err:        err,
		}

		select {
		case s.requests <- request{result: res}:
		case <-ctx.Done():
		}
	}()
}

func (s *Session) applyLoadResult(res loadResult) {
	if res.seq != s.seq {
		s.staleResults.Add(1)
		s.log.Debug("discard stale load result", "seq", res.seq, "latest", s.seq, "category", res.categoryID)
		return
	}

	if res.err != nil {
		message := res.err.Error()
		if message == "" {
			message = msgLoadFailed
		}

		s.log.Error("failed to load questions", "category", res.categoryID, "err", res.err)

		s.update(func(st *State) {
			st.IsLoading = false
			st.Error = message
		})
		s.emit(Effect{Type: EffectTypeShowError, Message: message})

		return
	}

	s.log.Info("questions loaded", "category", res.categoryID, "count", len(res.questions))

	s.update(func(st *State) {
		st.Questions = res.questions
		st.CurrentIdx = 0
		st.Score = 0
		st.SelectedAnswer = nil
		st.IsComplete = false
		st.IsLoading = false
		st.Error = ""
	})
}

// selectAnswer запоминает выбор. Очки начисляются только при переходе дальше.
func (s *Session) selectAnswer(answerIdx int) {
	current := s.state.Load()
	if current.IsLoading || current.IsComplete {
		s.log.Debug("ignore answer outside of active question", "phase", current.Phase())
		return
	}

	if _, ok := current.CurrentQuestion(); !ok {
		s.log.Debug("ignore answer without question")
		return
	}

	s.update(func(st *State) {
		st.SelectedAnswer = intPtr(answerIdx)
	})
}

func (s *Session) nextQuestion() error {
	current := s.state.Load()

	question, ok := current.CurrentQuestion()
	if !ok {
		s.emit(Effect{Type: EffectTypeShowError, Message: msgNoQuestionAvailable})
		return ErrNoQuestionAvailable
	}

	isCorrect := current.SelectedAnswer != nil && question.IsCorrect(*current.SelectedAnswer)

	s.update(func(st *State) {
		if isCorrect {
			st.Score++
		}

		st.CurrentIdx++
		st.IsComplete = st.CurrentIdx >= len(st.Questions)
		st.SelectedAnswer = nil
	})

	if isCorrect {
		s.emit(Effect{Type: EffectTypeShowToast, Message: msgCorrectAnswer})
	}

	return nil
}

// restart всегда берёт новый набор, прошлый не переигрывается.
func (s *Session) restart(ctx context.Context, wg *sync.WaitGroup) {
	categoryID := s.state.Load().SelectedCategoryID
	if categoryID == nil {
		s.log.Debug("restart without selected category is ignored")
		return
	}

	s.startLoad(ctx, wg, *categoryID)
}

// update публикует новое состояние, построенное из копии текущего.
func (s *Session) update(mutate func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *s.state.Load()
	mutate(&next)
	s.state.Store(&next)

	for sub := range s.subscribers {
		sub.push(next)
	}
}

// emit кладёт уведомление в очередь, не блокируя цикл событий.
func (s *Session) emit(effect Effect) {
	select {
	case s.effects <- effect:
	default:
		s.log.Warn("effect queue is full, effect dropped", "type", effect.Type, "message", effect.Message)
	}
}
