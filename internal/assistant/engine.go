package assistant

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"cosmic-portfolio/internal/intent"
	"cosmic-portfolio/internal/knowledge"
	"cosmic-portfolio/internal/render"
	"cosmic-portfolio/internal/widget"
)

// Result is one local reply.
type Result struct {
	Directive intent.Directive
	Text      string
	HTML      string
}

// Engine answers from the knowledge base alone: match, then render.
type Engine struct {
	kb       *knowledge.Base
	matcher  *intent.Matcher
	renderer *render.Renderer
	logger   *zap.Logger
}

func New(kb *knowledge.Base, logger *zap.Logger, opts ...intent.Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		kb:       kb,
		matcher:  intent.NewMatcher(kb, opts...),
		renderer: render.New(kb),
		logger:   logger,
	}
}

func (e *Engine) Knowledge() *knowledge.Base { return e.kb }

func (e *Engine) Reply(input string) Result {
	d := e.matcher.Match(input)
	text := e.renderer.Render(d)
	e.logger.Debug("matched", zap.String("directive", d.ID()))
	return Result{Directive: d, Text: text, HTML: render.Format(text)}
}

// Greeting is the opening message for a page.
func (e *Engine) Greeting(page widget.Page) string {
	return e.renderer.Welcome(string(page))
}

// Respond makes the engine a widget responder. It never fails.
func (e *Engine) Respond(_ context.Context, text string) (widget.Answer, error) {
	r := e.Reply(text)
	return widget.Answer{Text: r.Text, Directive: r.Directive.ID(), Source: widget.SourceLocal}, nil
}

// OwnerFirstName is used for quick-action prompts.
func (e *Engine) OwnerFirstName() string {
	if f := strings.Fields(e.kb.Owner().Name); len(f) > 0 {
		return f[0]
	}
	return ""
}
