package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"cosmic-portfolio/internal/llm"
)

// ChatRequest and ChatResponse are the /api/chat wire format.
type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply,omitempty"`
	Error string `json:"error,omitempty"`
}

// StatusError is a non-2xx answer from the remote endpoint.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("relay endpoint returned %d", e.Code)
	}
	return fmt.Sprintf("relay endpoint returned %d: %s", e.Code, e.Message)
}

// Remote is an llm.Client backed by another service's /api/chat. Only the
// last user message is sent; the remote side owns its system prompt.
type Remote struct {
	endpoint string
	http     *http.Client
}

func NewRemote(endpoint string, client *http.Client) *Remote {
	if client == nil {
		client = http.DefaultClient
	}
	return &Remote{endpoint: endpoint, http: client}
}

func (r *Remote) Generate(ctx context.Context, messages []llm.Message) (llm.Response, error) {
	var msg string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == llm.RoleUser {
			msg = messages[i].Content
			break
		}
	}

	body, err := json.Marshal(ChatRequest{Message: msg})
	if err != nil {
		return llm.Response{}, fmt.Errorf("encode chat request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return llm.Response{}, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return llm.Response{}, fmt.Errorf("post chat: %w", err)
	}
	defer resp.Body.Close()

	var out ChatResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return llm.Response{}, &StatusError{Code: resp.StatusCode, Message: out.Error}
	}
	if decodeErr != nil {
		return llm.Response{}, fmt.Errorf("decode chat response: %w", decodeErr)
	}
	return llm.Response{Content: out.Reply, Model: "remote"}, nil
}
