package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Send(t *testing.T) {
	var got Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, Path, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Mark works at Microsoft."}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second)
	msg, err := client.Send(context.Background(), "where does mark work")
	require.NoError(t, err)
	assert.Equal(t, "Mark works at Microsoft.", msg)
	assert.Equal(t, "where does mark work", got.Prompt)
}

func TestNewHTTPClient_Endpoint(t *testing.T) {
	assert.Equal(t, "http://h/api/chat", NewHTTPClient("http://h", time.Second).Endpoint())
	assert.Equal(t, "http://h/api/chat", NewHTTPClient("http://h/", time.Second).Endpoint())
	assert.Equal(t, "http://h/api/chat", NewHTTPClient("http://h/api/chat", time.Second).Endpoint())
}

func TestHTTPClient_EmptyPromptDoesNoIO(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	_, err := NewHTTPClient(server.URL, time.Second).Send(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
	assert.False(t, called)
}

func TestHTTPClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "bad request", status: http.StatusBadRequest, body: `{"error":"Prompt is required"}`},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`},
		{name: "undecodable ok", status: http.StatusOK, body: `not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewHTTPClient(server.URL, time.Second).Send(context.Background(), "hi")
			require.Error(t, err)
			if tt.status != http.StatusOK {
				var statusErr *StatusError
				require.True(t, errors.As(err, &statusErr))
				assert.Equal(t, tt.status, statusErr.StatusCode)
			}
		})
	}
}

func TestHTTPClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewHTTPClient(url, time.Second).Send(context.Background(), "hi")
	assert.Error(t, err)
}

type stubResponder struct {
	prompt string
}

func (s *stubResponder) Respond(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return "answer to " + prompt, nil
}

func TestLocalSender(t *testing.T) {
	r := &stubResponder{}
	s := NewLocalSender(r)

	msg, err := s.Send(context.Background(), "foo")
	require.NoError(t, err)
	assert.Equal(t, "answer to foo", msg)

	_, err = s.Send(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
	assert.Equal(t, "foo", r.prompt)
}
