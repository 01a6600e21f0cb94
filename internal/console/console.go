package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/letsssgooo/triviaQuiz/internal/domain/models"
	"github.com/letsssgooo/triviaQuiz/internal/quiz"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	selectColor  = color.New(color.FgYellow, color.Bold)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	hintColor    = color.New(color.Faint)
)

// Console — терминальный интерфейс викторины: читает команды,
// отправляет события в сессию и выводит состояния и уведомления.
type Console struct {
	session    *quiz.Session
	categories []models.Category
	in         io.Reader
	out        io.Writer
	log        *slog.Logger

	last    renderKey
	hasLast bool
}

// renderKey — то, что видно на экране; одинаковые состояния не перерисовываются.
type renderKey struct {
	phase    quiz.Phase
	idx      int
	selected int
	count    int
	err      string
}

// NewConsole создаёт консоль для сессии. categories — пункты меню.
func NewConsole(session *quiz.Session, categories []models.Category, in io.Reader, out io.Writer) *Console {
	return &Console{
		session:    session,
		categories: categories,
		in:         in,
		out:        out,
		log:        slog.Default().With("component", "console"),
	}
}

// Run обрабатывает ввод до команды выхода, конца ввода или отмены ctx.
func (c *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	states := c.session.Subscribe(ctx)
	lines := c.readLines(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case st, ok := <-states:
			if !ok {
				return nil
			}

			c.render(st)
		case effect := <-c.session.Effects():
			c.showEffect(effect)
		case line, ok := <-lines:
			if !ok {
				return nil
			}

			quit, err := c.HandleInput(ctx, line)
			if err != nil {
				return err
			}

			if quit {
				return nil
			}
		}
	}
}

// HandleInput обрабатывает одну команду. Возвращает true, если нужно выйти.
func (c *Console) HandleInput(ctx context.Context, line string) (bool, error) {
	cmd := strings.ToLower(strings.TrimSpace(line))
	st := c.session.Snapshot()

	switch cmd {
	case "q", "quit", "exit":
		return true, nil
	case "h", "help":
		c.println(msgHelp)
		return false, nil
	case "m", "menu":
		c.printMenu()
		return false, nil
	case "r", "restart":
		if st.SelectedCategoryID == nil {
			c.println(msgNoCategory)
			return false, nil
		}

		return false, c.dispatch(ctx, quiz.RestartQuiz())
	case "", "n", "next":
		if st.Phase() != quiz.PhaseInProgress {
			return false, nil
		}

		return false, c.dispatch(ctx, quiz.NextQuestion())
	}

	if idx, ok := quiz.LetterToIndex(cmd); ok && st.Phase() == quiz.PhaseInProgress {
		return false, c.dispatch(ctx, quiz.SelectAnswer(idx))
	}

	if categoryID, ok := c.parseCategory(cmd); ok {
		return false, c.dispatch(ctx, quiz.SelectCategory(categoryID))
	}

	c.println(msgUnknownCommand)

	return false, nil
}

func (c *Console) dispatch(ctx context.Context, event quiz.Event) error {
	err := c.session.Dispatch(ctx, event)
	if errors.Is(err, quiz.ErrNoQuestionAvailable) {
		// уже показано уведомлением
		c.log.Debug("next question is not available")
		return nil
	}

	return err
}

// parseCategory принимает номер пункта меню либо ID категории.
func (c *Console) parseCategory(cmd string) (int, bool) {
	n, err := strconv.Atoi(cmd)
	if err != nil {
		return 0, false
	}

	if n >= 1 && n <= len(c.categories) {
		return c.categories[n-1].ID, true
	}

	for _, category := range c.categories {
		if category.ID == n {
			return n, true
		}
	}

	return 0, false
}

func (c *Console) render(st quiz.State) {
	key := renderKey{
		phase: st.Phase(),
		idx:   st.CurrentIdx,
		count: len(st.Questions),
		err:   st.Error,
	}

	key.selected = -1
	if st.SelectedAnswer != nil {
		key.selected = *st.SelectedAnswer
	}

	if c.hasLast && key == c.last {
		return
	}

	c.last, c.hasLast = key, true

	switch key.phase {
	case quiz.PhaseLoading:
		c.println(hintColor.Sprint(msgLoading))
	case quiz.PhaseIdle:
		if st.Error != "" {
			c.println(hintColor.Sprint(msgRetry))
			return
		}

		c.printMenu()
	case quiz.PhaseInProgress:
		c.printQuestion(st)
	case quiz.PhaseComplete:
		c.println("")
		c.println(titleColor.Sprint(msgComplete))
		c.println(fmt.Sprintf("Score: %d/%d", st.Score, len(st.Questions)))
		c.println(hintColor.Sprint(msgAfterComplete))
	}
}

func (c *Console) printQuestion(st quiz.State) {
	q, ok := st.CurrentQuestion()
	if !ok {
		return
	}

	c.println("")
	c.println(titleColor.Sprintf("Question %d/%d", st.CurrentIdx+1, len(st.Questions)) +
		hintColor.Sprintf("  [%s]  score %d  %.0f%%", q.Difficulty.Label(), st.Score, st.Progress()*100))
	c.println(q.Text)

	for i, option := range q.Options {
		line := fmt.Sprintf("  %s) %s", quiz.IndexToLetter(i), option)
		if st.SelectedAnswer != nil && *st.SelectedAnswer == i {
			line = selectColor.Sprint(line + "  <")
		}

		c.println(line)
	}

	if st.IsLastQuestion() {
		c.println(hintColor.Sprint("Last question. Press Enter to finish."))
	}
}

func (c *Console) printMenu() {
	c.println("")
	c.println(titleColor.Sprint(msgChooseCategory))

	for i, category := range c.categories {
		c.println(fmt.Sprintf("  %d. %s", i+1, category.Name))
	}
}

func (c *Console) showEffect(effect quiz.Effect) {
	switch effect.Type {
	case quiz.EffectTypeShowToast:
		c.println(successColor.Sprint(effect.Message))
	case quiz.EffectTypeShowError:
		c.println(errorColor.Sprint("Error: " + effect.Message))
	case quiz.EffectTypeNavigateBack:
		c.printMenu()
	}
}

func (c *Console) println(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}

// readLines читает ввод построчно в отдельной горутине: Scan нельзя прервать по ctx.
func (c *Console) readLines(ctx context.Context) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			c.log.Error("failed to read input", "err", err)
		}
	}()

	return lines
}
