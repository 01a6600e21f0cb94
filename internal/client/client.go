package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/letsssgooo/triviaQuiz/internal/domain/models"
)

// HTTPClient реализует quiz.Source через HTTP API Open Trivia DB.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
	log        *slog.Logger
}

// NewHTTPClient создаёт клиента для baseURL. Таймаут запроса задаётся timeout,
// maxRetries — число повторов при 429/5xx и response_code 5.
func NewHTTPClient(baseURL string, timeout time.Duration, maxRetries int) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}

	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		baseDelay:  retryBaseDelay,
		log:        slog.Default().With("component", "trivia_client"),
	}
}

// Fetch запрашивает amount вопросов с вариантами ответа.
// Если вопросов по запросу не хватает (response_code 1), возвращает пустой слайс.
func (c *HTTPClient) Fetch(
	ctx context.Context,
	amount int,
	category *int,
	difficulty string,
) ([]models.RawQuestion, error) {
	params := url.Values{}
	params.Set("amount", strconv.Itoa(amount))
	params.Set("type", questionTypeMultiple)

	if category != nil {
		params.Set("category", strconv.Itoa(*category))
	}

	if difficulty != "" {
		params.Set("difficulty", difficulty)
	}

	resp, err := c.doWithRetry(ctx, params)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.ResponseCode == responseCodeNoResults {
			c.log.Warn("provider has no questions for query", "query", params.Encode())
			return []models.RawQuestion{}, nil
		}

		return nil, err
	}

	questions := make([]models.RawQuestion, 0, len(resp.Results))
	for _, q := range resp.Results {
		questions = append(questions, toRawQuestion(q))
	}

	return questions, nil
}

// toRawQuestion декодирует HTML-сущности, которыми API экранирует текст.
func toRawQuestion(q triviaQuestion) models.RawQuestion {
	incorrect := make([]string, 0, len(q.IncorrectAnswers))
	for _, answer := range q.IncorrectAnswers {
		incorrect = append(incorrect, html.UnescapeString(answer))
	}

	return models.RawQuestion{
		Category:         html.UnescapeString(q.Category),
		Type:             q.Type,
		Difficulty:       q.Difficulty,
		Question:         html.UnescapeString(q.Question),
		CorrectAnswer:    html.UnescapeString(q.CorrectAnswer),
		IncorrectAnswers: incorrect,
	}
}

// doWithRetry повторяет запрос с экспоненциальной задержкой,
// пока ошибка считается временной.
func (c *HTTPClient) doWithRetry(ctx context.Context, params url.Values) (*triviaResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		resp, err := c.doRequest(ctx, params)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.Retryable() || attempt == c.maxRetries {
			return nil, err
		}

		c.log.Debug("retry trivia request", "attempt", attempt+1, "err", err)

		if err = c.sleep(ctx, attempt); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

// doRequest выполняет один запрос к API.
func (c *HTTPClient) doRequest(ctx context.Context, params url.Values) (*triviaResponse, error) {
	link := c.baseURL + "?" + params.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	request.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to do get request for url %s: %w", c.baseURL, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	var result triviaResponse
	if err = json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode trivia response: %w", err)
	}

	if result.ResponseCode != responseCodeSuccess {
		return nil, &APIError{
			ResponseCode: result.ResponseCode,
			Message:      responseCodeMessage(result.ResponseCode),
		}
	}

	return &result, nil
}

func (c *HTTPClient) sleep(ctx context.Context, attempt int) error {
	delay := c.baseDelay * time.Duration(1<<attempt)
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
