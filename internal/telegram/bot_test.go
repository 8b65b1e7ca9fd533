package telegram

import (
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cosmic-portfolio/internal/assistant"
	"cosmic-portfolio/internal/intent"
	"cosmic-portfolio/internal/knowledge"
	"cosmic-portfolio/internal/widget"
)

type sentMessage struct {
	chatID    int64
	text      string
	parseMode string
	keyboard  bool
}

type fakeSender struct {
	mu        sync.Mutex
	sent      []sentMessage
	callbacks []string
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m := c.(tgbotapi.MessageConfig)
	_, kb := m.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	f.mu.Lock()
	f.sent = append(f.sent, sentMessage{chatID: m.ChatID, text: m.Text, parseMode: m.ParseMode, keyboard: kb})
	f.mu.Unlock()
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	cb := c.(tgbotapi.CallbackConfig)
	f.mu.Lock()
	f.callbacks = append(f.callbacks, cb.CallbackQueryID)
	f.mu.Unlock()
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

func waitForMessages(t *testing.T, fs *fakeSender, n int) []sentMessage {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := fs.messages(); len(got) >= n {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d messages, got %+v", n, fs.messages())
	return nil
}

func newTestBot(t *testing.T, adminID int64) (*Bot, *fakeSender, *widget.Registry) {
	t.Helper()
	kb, err := knowledge.Default()
	if err != nil {
		t.Fatalf("knowledge: %v", err)
	}
	e := assistant.New(kb, nil, intent.WithTipPicker(func(int) int { return 0 }))
	reg := widget.NewRegistry(widget.RegistryConfig{
		Local:   e,
		Greeter: e,
		Prompts: widget.QuickPrompts(e.OwnerFirstName()),
	})
	t.Cleanup(reg.Close)
	fs := &fakeSender{}
	return newBot(fs, reg, adminID, nil), fs, reg
}

func command(chatID int64, cmd string) *tgbotapi.Message {
	text := "/" + cmd
	return &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: chatID},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
	}
}

func text(chatID int64, s string) *tgbotapi.Message {
	return &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}, Text: s}
}

func TestStart_GreetsOnce(t *testing.T) {
	b, fs, _ := newTestBot(t, 0)
	b.handleIncomingMessage(command(10, "start"))
	b.handleIncomingMessage(command(10, "start"))

	got := fs.messages()
	if len(got) != 1 {
		t.Fatalf("expected one greeting, got %+v", got)
	}
	if got[0].chatID != 10 || got[0].parseMode != tgbotapi.ModeHTML || !got[0].keyboard {
		t.Fatalf("unexpected greeting message: %+v", got[0])
	}
	if !strings.Contains(got[0].text, "I can help you explore") || !strings.Contains(got[0].text, "<b>") {
		t.Fatalf("greeting not rendered: %q", got[0].text)
	}
}

func TestText_WithoutStartGetsGreetingAndReply(t *testing.T) {
	b, fs, _ := newTestBot(t, 0)
	b.handleIncomingMessage(text(20, "How can I contact you?"))

	got := waitForMessages(t, fs, 2)
	if !strings.Contains(got[0].text, "I can help you explore") {
		t.Fatalf("first message should be the greeting: %q", got[0].text)
	}
	if !strings.Contains(got[1].text, "<b>Contact Mayank</b>") {
		t.Fatalf("contact reply missing: %q", got[1].text)
	}
}

func TestText_EscapesMarkup(t *testing.T) {
	b, fs, _ := newTestBot(t, 0)
	b.handleIncomingMessage(command(30, "start"))
	b.handleIncomingMessage(text(30, "<b>zzqx</b>"))

	got := waitForMessages(t, fs, 2)
	for _, m := range got {
		if strings.Contains(m.text, "<b>zzqx") {
			t.Fatalf("user markup leaked: %q", m.text)
		}
	}
}

func TestCallback_QuickAction(t *testing.T) {
	b, fs, _ := newTestBot(t, 0)
	b.handleIncomingMessage(command(40, "start"))
	b.handleCallback(&tgbotapi.CallbackQuery{
		ID:      "cb-1",
		Data:    quickPrefix + string(widget.ActionSkills),
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 40}},
	})

	got := waitForMessages(t, fs, 2)
	if !strings.Contains(got[1].text, "Core Skills") {
		t.Fatalf("skills reply missing: %q", got[1].text)
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if len(fs.callbacks) != 1 || fs.callbacks[0] != "cb-1" {
		t.Fatalf("callback not acknowledged: %+v", fs.callbacks)
	}
}

func TestCallback_UnknownActionIgnored(t *testing.T) {
	b, fs, _ := newTestBot(t, 0)
	b.handleIncomingMessage(command(41, "start"))
	b.handleCallback(&tgbotapi.CallbackQuery{
		ID:      "cb-2",
		Data:    quickPrefix + "dance",
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 41}},
	})
	time.Sleep(20 * time.Millisecond)
	if got := fs.messages(); len(got) != 1 {
		t.Fatalf("unexpected messages: %+v", got)
	}
}

func TestReset_StartsNewSession(t *testing.T) {
	b, fs, reg := newTestBot(t, 0)
	b.handleIncomingMessage(command(50, "start"))
	first := b.session(50).ID()

	b.handleIncomingMessage(command(50, "reset"))
	second := b.session(50).ID()
	if first == second {
		t.Fatal("reset kept the old session")
	}
	if reg.Len() != 1 {
		t.Fatalf("expected one live session, got %d", reg.Len())
	}
	if got := fs.messages(); len(got) != 2 {
		t.Fatalf("expected a second greeting, got %+v", got)
	}
}

func TestSession_RecreatedAfterSweep(t *testing.T) {
	b, _, reg := newTestBot(t, 0)
	first := b.session(60).ID()
	time.Sleep(5 * time.Millisecond)
	if n := reg.SweepIdle(time.Millisecond); n != 1 {
		t.Fatalf("expected one swept session, got %d", n)
	}
	if b.session(60).ID() == first {
		t.Fatal("swept session reused")
	}
}

func TestHelpAndUnknownCommand(t *testing.T) {
	b, fs, _ := newTestBot(t, 0)
	b.handleIncomingMessage(command(70, "help"))
	b.handleIncomingMessage(command(70, "weather"))
	got := fs.messages()
	if len(got) != 2 || got[0].text != helpText || !strings.Contains(got[1].text, "/help") {
		t.Fatalf("unexpected replies: %+v", got)
	}
}

func TestNotifyAdmin(t *testing.T) {
	b, fs, _ := newTestBot(t, 0)
	b.NotifyAdmin("report")
	if len(fs.messages()) != 0 {
		t.Fatal("sent without an admin")
	}

	b, fs, _ = newTestBot(t, 999)
	b.NotifyAdmin("report")
	got := fs.messages()
	if len(got) != 1 || got[0].chatID != 999 || got[0].text != "report" {
		t.Fatalf("admin notify not sent: %+v", got)
	}
}

func TestQuickKeyboard(t *testing.T) {
	kb := quickKeyboard()
	if len(kb.InlineKeyboard) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(kb.InlineKeyboard))
	}
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			if btn.CallbackData == nil || !strings.HasPrefix(*btn.CallbackData, quickPrefix) {
				t.Fatalf("bad callback data: %+v", btn)
			}
			if btn.Text == "" {
				t.Fatalf("button without label: %+v", btn)
			}
		}
	}
}
