package widget

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"cosmic-portfolio/internal/history"
	"cosmic-portfolio/internal/render"
	"cosmic-portfolio/internal/storage"
)

var (
	ErrEmptyMessage   = errors.New("empty message")
	ErrWidgetClosed   = errors.New("widget is closed")
	ErrSessionClosed  = errors.New("session torn down")
	ErrUnknownAction  = errors.New("unknown quick action")
	ErrUnknownSession = errors.New("unknown session")
)

// UnavailableText is the turn shown when the responder fails.
const UnavailableText = "⚠️ The assistant is unavailable right now. Please try again in a moment."

const (
	SourceLocal = "local"
	SourceRelay = "relay"
)

// Directives recorded for turns that no responder produced.
const (
	DirectiveWelcome     = "welcome"
	DirectiveUnavailable = "unavailable"
)

// Answer is a responder's reply to one submission.
type Answer struct {
	Text      string
	Directive string
	Source    string
}

// Responder produces the reply for one user message.
type Responder interface {
	Respond(ctx context.Context, text string) (Answer, error)
}

// Greeter produces the one-time opening message for a page.
type Greeter interface {
	Greeting(page Page) string
}

// Observer is told about every turn appended to the session, in log order.
// It must not call Open, Submit or QuickAction on the same controller.
type Observer func(history.Turn)

type State int

const (
	StateClosed State = iota
	StateOpenUninitialized
	StateOpenGreeted
)

func (s State) String() string {
	switch s {
	case StateOpenUninitialized:
		return "open-uninitialized"
	case StateOpenGreeted:
		return "open-greeted"
	default:
		return "closed"
	}
}

// Delay returns the cosmetic wait before a reply is shown.
type Delay func() time.Duration

// Jitter waits base plus a random share of jitter.
func Jitter(base, jitter time.Duration) Delay {
	return func() time.Duration {
		if jitter <= 0 {
			return base
		}
		return base + rand.N(jitter)
	}
}

func NoDelay() time.Duration { return 0 }

type Option func(*Controller)

func WithDelay(d Delay) Option {
	return func(c *Controller) {
		if d != nil {
			c.delay = d
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observer = o }
}

func WithRecorder(r storage.Recorder) Option {
	return func(c *Controller) {
		if r != nil {
			c.recorder = r
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithLog(l *history.Log) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

func WithPrompts(p map[Action]string) Option {
	return func(c *Controller) {
		if len(p) > 0 {
			c.prompts = p
		}
	}
}

// Controller is one chat widget instance. Submissions are answered in
// order by a single drain goroutine; user turns are appended immediately,
// replies after the cosmetic delay.
type Controller struct {
	id        string
	page      Page
	mode      Mode
	responder Responder
	greeter   Greeter
	log       *history.Log
	delay     Delay
	observer  Observer
	recorder  storage.Recorder
	logger    *zap.Logger
	prompts   map[Action]string

	// emitMu orders log appends with their observer calls. Taken before mu.
	emitMu sync.Mutex

	mu         sync.Mutex
	open       bool
	greeted    bool
	torn       bool
	queue      []string
	lastActive time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wake   chan struct{}
	wg     sync.WaitGroup
}

func NewController(id string, page Page, mode Mode, responder Responder, greeter Greeter, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		id:         id,
		page:       page,
		mode:       mode,
		responder:  responder,
		greeter:    greeter,
		log:        history.NewLog(),
		delay:      NoDelay,
		recorder:   storage.Nop{},
		logger:     zap.NewNop(),
		prompts:    QuickPrompts(""),
		lastActive: time.Now(),
		ctx:        ctx,
		cancel:     cancel,
		wake:       make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(c)
	}
	c.logger = c.logger.With(zap.String("session", id))
	c.wg.Add(1)
	go c.drain()
	return c
}

func (c *Controller) ID() string { return c.id }

func (c *Controller) Page() Page { return c.page }

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state()
}

func (c *Controller) state() State {
	switch {
	case !c.open:
		return StateClosed
	case !c.greeted:
		return StateOpenUninitialized
	default:
		return StateOpenGreeted
	}
}

// Open shows the widget. The page greeting is appended the first time only.
func (c *Controller) Open() error {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	c.mu.Lock()
	if c.torn {
		c.mu.Unlock()
		return ErrSessionClosed
	}
	c.open = true
	c.lastActive = time.Now()
	if c.greeted {
		c.mu.Unlock()
		return nil
	}
	c.greeted = true
	text := c.greeter.Greeting(c.page)
	turn := history.Turn{Role: history.RoleAssistant, Text: text, HTML: render.Format(text), At: time.Now()}
	c.log.Append(turn)
	c.mu.Unlock()

	c.notify(turn)
	c.record(storage.Event{Timestamp: turn.At, Directive: DirectiveWelcome, Source: SourceLocal})
	return nil
}

func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.torn {
		return ErrSessionClosed
	}
	c.open = false
	return nil
}

func (c *Controller) Toggle() error {
	c.mu.Lock()
	open := c.open
	c.mu.Unlock()
	if open {
		return c.Close()
	}
	return c.Open()
}

// Submit appends the user turn and queues the reply.
func (c *Controller) Submit(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}

	c.emitMu.Lock()
	c.mu.Lock()
	switch {
	case c.torn:
		c.mu.Unlock()
		c.emitMu.Unlock()
		return ErrSessionClosed
	case !c.open:
		c.mu.Unlock()
		c.emitMu.Unlock()
		return ErrWidgetClosed
	}
	c.lastActive = time.Now()
	turn := history.Turn{Role: history.RoleUser, Text: text, HTML: render.Format(text), At: time.Now()}
	// appended under the lock so the log order matches the queue order
	c.log.Append(turn)
	c.queue = append(c.queue, text)
	c.mu.Unlock()
	c.notify(turn)
	c.emitMu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
	return nil
}

// QuickAction submits the canned prompt bound to a.
func (c *Controller) QuickAction(a Action) error {
	prompt, ok := c.prompts[a]
	if !ok {
		return ErrUnknownAction
	}
	return c.Submit(prompt)
}

func (c *Controller) Turns() []history.Turn { return c.log.Turns() }

// Pending is the number of submissions still waiting for a reply.
func (c *Controller) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

func (c *Controller) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

// Teardown cancels pending replies and waits for the drain goroutine. It is
// safe to call more than once.
func (c *Controller) Teardown() {
	c.mu.Lock()
	c.torn = true
	c.open = false
	c.queue = nil
	c.mu.Unlock()
	c.cancel()
	c.wg.Wait()
}

func (c *Controller) drain() {
	defer c.wg.Done()
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-c.wake:
		}
		for {
			text, ok := c.next()
			if !ok {
				break
			}
			if !c.reply(text) {
				return
			}
		}
	}
}

func (c *Controller) next() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 || c.torn {
		return "", false
	}
	return c.queue[0], true
}

func (c *Controller) pop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) > 0 {
		c.queue = c.queue[1:]
	}
}

// reply waits the delay, asks the responder and appends the answer. It
// reports false when the session was torn down meanwhile.
func (c *Controller) reply(text string) bool {
	timer := time.NewTimer(c.delay())
	select {
	case <-c.ctx.Done():
		timer.Stop()
		return false
	case <-timer.C:
	}

	ans, err := c.responder.Respond(c.ctx, text)
	if c.ctx.Err() != nil {
		return false
	}
	// the queue entry stays until the reply is in the log so Pending never
	// reports zero while a reply is still outstanding
	defer c.pop()

	turn := history.Turn{Role: history.RoleAssistant, At: time.Now()}
	ev := storage.Event{SessionID: c.id, Page: string(c.page)}
	if err != nil {
		c.logger.Warn("responder failed", zap.Error(err))
		turn.Text = UnavailableText
		turn.Failed = true
		ev.Failed = true
		ev.Source = SourceRelay
		ev.Directive = DirectiveUnavailable
	} else {
		turn.Text = ans.Text
		ev.Directive = ans.Directive
		ev.Source = ans.Source
	}
	turn.HTML = render.Format(turn.Text)
	ev.Timestamp = turn.At

	c.emitMu.Lock()
	c.log.Append(turn)
	c.notify(turn)
	c.emitMu.Unlock()
	c.record(ev)
	return true
}

func (c *Controller) notify(t history.Turn) {
	if c.observer != nil {
		c.observer(t)
	}
}

func (c *Controller) record(ev storage.Event) {
	if ev.SessionID == "" {
		ev.SessionID = c.id
	}
	if ev.Page == "" {
		ev.Page = string(c.page)
	}
	if err := c.recorder.AppendInteraction(ev); err != nil {
		c.logger.Warn("record interaction failed", zap.Error(err))
	}
}
