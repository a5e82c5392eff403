package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Path is where the chat endpoint is mounted.
const Path = "/api/chat"

// ErrEmptyPrompt is returned without any I/O when asked to send a blank prompt.
var ErrEmptyPrompt = errors.New("prompt is empty")

// Request is the body of POST /api/chat.
type Request struct {
	Prompt string `json:"prompt"`
}

// Response is the body returned by the chat endpoint. Exactly one field is set.
type Response struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Sender answers a prompt that matched no portfolio command.
type Sender interface {
	Send(ctx context.Context, prompt string) (string, error)
}

// StatusError reports a non-200 reply from the endpoint.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("chat endpoint returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("chat endpoint returned %d", e.StatusCode)
}

// HTTPClient talks to a remote chat endpoint.
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPClient creates a client for the given endpoint URL. A URL without a path
// gets the default chat path appended.
func NewHTTPClient(endpoint string, timeout time.Duration) *HTTPClient {
	endpoint = strings.TrimRight(endpoint, "/")
	if !strings.HasSuffix(endpoint, Path) {
		endpoint += Path
	}
	return &HTTPClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Endpoint() string {
	return c.endpoint
}

func (c *HTTPClient) Send(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	body, err := json.Marshal(Request{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var out Response
	decodeErr := json.Unmarshal(data, &out)

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{StatusCode: resp.StatusCode, Message: out.Error}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	return out.Message, nil
}

// Responder produces the endpoint's answer for a prompt in process.
type Responder interface {
	Respond(ctx context.Context, prompt string) (string, error)
}

// LocalSender skips HTTP and asks a Responder directly.
type LocalSender struct {
	responder Responder
}

func NewLocalSender(r Responder) *LocalSender {
	return &LocalSender{responder: r}
}

func (s *LocalSender) Send(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}
	return s.responder.Respond(ctx, prompt)
}
