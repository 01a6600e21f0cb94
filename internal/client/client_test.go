package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
	"response_code": 0,
	"results": [
		{
			"category": "Science: Computers",
			"type": "multiple",
			"difficulty": "easy",
			"question": "What does &quot;HTML&quot; stand for?",
			"correct_answer": "Hypertext Markup Language",
			"incorrect_answers": ["Hyperlink &amp; Text", "Home Tool Markup Language", "Hyper Tool Language"]
		},
		{
			"category": "History",
			"type": "multiple",
			"difficulty": "hard",
			"question": "In which year did World War II end?",
			"correct_answer": "1945",
			"incorrect_answers": ["1943", "1944", "1946"]
		}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewHTTPClient(server.URL, time.Second, 2)
	c.baseDelay = time.Millisecond

	return c
}

func TestFetch_Success(t *testing.T) {
	var query url.Values

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(sampleResponse))
	})

	category := 18

	questions, err := c.Fetch(context.Background(), 2, &category, "easy")
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, "2", query.Get("amount"))
	assert.Equal(t, "multiple", query.Get("type"))
	assert.Equal(t, "18", query.Get("category"))
	assert.Equal(t, "easy", query.Get("difficulty"))

	// HTML-сущности раскодированы
	assert.Equal(t, `What does "HTML" stand for?`, questions[0].Question)
	assert.Equal(t, "Hyperlink & Text", questions[0].IncorrectAnswers[0])
	assert.Equal(t, "Hypertext Markup Language", questions[0].CorrectAnswer)
	assert.Equal(t, "Science: Computers", questions[0].Category)
	assert.Equal(t, "easy", questions[0].Difficulty)

	assert.Equal(t, "1945", questions[1].CorrectAnswer)
	assert.Equal(t, []string{"1943", "1944", "1946"}, questions[1].IncorrectAnswers)
}

func TestFetch_OptionalParamsOmitted(t *testing.T) {
	var query url.Values

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(`{"response_code": 0, "results": []}`))
	})

	_, err := c.Fetch(context.Background(), 10, nil, "")
	require.NoError(t, err)

	assert.Equal(t, "10", query.Get("amount"))
	assert.False(t, query.Has("category"))
	assert.False(t, query.Has("difficulty"))
}

func TestFetch_NoResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response_code": 1, "results": []}`))
	})

	questions, err := c.Fetch(context.Background(), 50, nil, "hard")
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestFetch_InvalidParameter(t *testing.T) {
	var calls atomic.Int32

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"response_code": 2, "results": []}`))
	})

	questions, err := c.Fetch(context.Background(), 10, nil, "")
	require.Error(t, err)
	assert.Nil(t, questions)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 2, apiErr.ResponseCode)
	assert.Contains(t, err.Error(), "invalid parameter")
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetch_RetriesTemporaryErrors(t *testing.T) {
	var calls atomic.Int32

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch calls.Add(1) {
		case 1:
			w.WriteHeader(http.StatusServiceUnavailable)
		case 2:
			_, _ = w.Write([]byte(`{"response_code": 5, "results": []}`))
		default:
			_, _ = w.Write([]byte(sampleResponse))
		}
	})

	questions, err := c.Fetch(context.Background(), 2, nil, "")
	require.NoError(t, err)
	assert.Len(t, questions, 2)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetch_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Fetch(context.Background(), 2, nil, "")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetch_NotRetryableStatus(t *testing.T) {
	var calls atomic.Int32

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Fetch(context.Background(), 2, nil, "")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetch_InvalidJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{invalid json}`))
	})

	_, err := c.Fetch(context.Background(), 2, nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestFetch_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	c.baseDelay = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Fetch(ctx, 2, nil, "")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestFetch_TransportError(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1", time.Second, 0)

	_, err := c.Fetch(context.Background(), 2, nil, "")
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
