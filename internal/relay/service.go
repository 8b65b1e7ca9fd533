package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"cosmic-portfolio/internal/llm"
	"cosmic-portfolio/internal/widget"
)

var ErrUnavailable = errors.New("assistant unavailable")

// EmptyReply is returned when the model answers with no text.
const EmptyReply = "I could not generate a reply."

// Prompter supplies the current system prompt.
type Prompter interface {
	SystemPrompt() string
}

type staticPrompt string

func (p staticPrompt) SystemPrompt() string { return string(p) }

type Option func(*Service)

func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithRetryWait(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.retryWait = d
		}
	}
}

func WithPrompter(p Prompter) Option {
	return func(s *Service) {
		if p != nil {
			s.prompt = p
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// Service forwards one user message to a language model. Each attempt has
// its own timeout; transient failures are retried once.
type Service struct {
	client    llm.Client
	prompt    Prompter
	timeout   time.Duration
	retryWait time.Duration
	logger    *zap.Logger
}

func NewService(client llm.Client, opts ...Option) *Service {
	s := &Service{
		client:    client,
		prompt:    staticPrompt(DefaultPrompt("")),
		timeout:   20 * time.Second,
		retryWait: 500 * time.Millisecond,
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Reply(ctx context.Context, message string) (string, error) {
	msgs := []llm.Message{{Role: llm.RoleUser, Content: message}}
	if sp := s.prompt.SystemPrompt(); sp != "" {
		msgs = append([]llm.Message{{Role: llm.RoleSystem, Content: sp}}, msgs...)
	}

	var (
		resp    llm.Response
		attempt int
	)
	op := func() error {
		attempt++
		actx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		r, err := s.client.Generate(actx, msgs)
		if err == nil {
			resp = r
			return nil
		}
		if ctx.Err() != nil || !Transient(err) {
			return backoff.Permanent(err)
		}
		s.logger.Warn("relay attempt failed", zap.Int("attempt", attempt), zap.Error(err))
		return err
	}
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(s.retryWait), 1), ctx)
	if err := backoff.Retry(op, b); err != nil {
		s.logger.Error("relay failed", zap.Int("attempts", attempt), zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return EmptyReply, nil
	}
	s.logger.Debug("relay reply",
		zap.String("model", resp.Model),
		zap.Int("total_tokens", resp.TotalTokens),
		zap.Int("attempts", attempt))
	return text, nil
}

// Respond makes the service a widget responder.
func (s *Service) Respond(ctx context.Context, text string) (widget.Answer, error) {
	reply, err := s.Reply(ctx, text)
	if err != nil {
		return widget.Answer{}, err
	}
	return widget.Answer{Text: reply, Directive: "relay", Source: widget.SourceRelay}, nil
}

// Transient reports whether err is worth one more attempt: timeouts,
// dropped connections, rate limiting and server-side errors.
func Transient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.EOF) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return retryableStatus(reqErr.HTTPStatusCode)
	}
	var se *StatusError
	if errors.As(err, &se) {
		return retryableStatus(se.Code)
	}
	return false
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
