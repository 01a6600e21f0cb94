package client

import (
	"fmt"
	"time"
)

// DefaultBaseURL — адрес API Open Trivia DB.
const DefaultBaseURL = "https://opentdb.com/api.php"

// questionTypeMultiple — запрашиваются только вопросы с вариантами ответа.
const questionTypeMultiple = "multiple"

// Коды ответа Open Trivia DB (поле response_code).
const (
	responseCodeSuccess          = 0
	responseCodeNoResults        = 1
	responseCodeInvalidParameter = 2
	responseCodeTokenNotFound    = 3
	responseCodeTokenEmpty       = 4
	responseCodeRateLimit        = 5
)

// Повторы запросов
const (
	defaultMaxRetries = 3
	retryBaseDelay    = 500 * time.Millisecond
	retryMaxDelay     = 5 * time.Second
)

// triviaResponse представляет ответ API.
type triviaResponse struct {
	ResponseCode int              `json:"response_code"`
	Results      []triviaQuestion `json:"results"`
}

// triviaQuestion представляет вопрос в формате API.
type triviaQuestion struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// APIError — ненулевой response_code либо HTTP статус, отличный от 2xx.
type APIError struct {
	StatusCode   int
	ResponseCode int
	Message      string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("trivia api error: status %d: %s", e.StatusCode, e.Message)
	}

	return fmt.Sprintf("trivia api error: code %d: %s", e.ResponseCode, e.Message)
}

// Retryable сообщает, имеет ли смысл повторить запрос.
func (e *APIError) Retryable() bool {
	switch e.StatusCode {
	case 429, 500, 502, 503, 504:
		return true
	}

	return e.StatusCode == 0 && e.ResponseCode == responseCodeRateLimit
}

func responseCodeMessage(code int) string {
	switch code {
	case responseCodeNoResults:
		return "not enough questions for the query"
	case responseCodeInvalidParameter:
		return "invalid parameter"
	case responseCodeTokenNotFound:
		return "session token not found"
	case responseCodeTokenEmpty:
		return "session token has returned all possible questions"
	case responseCodeRateLimit:
		return "too many requests"
	default:
		return "unknown response code"
	}
}
