package telegram

import (
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"cosmic-portfolio/internal/widget"
)

const helpText = "Ask me anything about the portfolio, or tap one of the buttons below.\n\n" +
	"/start opens the chat\n/reset starts over\n/help shows this message"

func (b *Bot) handleIncomingMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if msg.IsCommand() {
		b.handleCommand(chatID, msg.Command())
		return
	}
	if strings.TrimSpace(msg.Text) == "" {
		return
	}
	b.logger.Info("incoming message", zap.Int64("chat_id", chatID), zap.String("text", msg.Text))
	b.submit(chatID, func(c *widget.Controller) error { return c.Submit(msg.Text) })
}

func (b *Bot) handleCommand(chatID int64, cmd string) {
	switch cmd {
	case "start":
		b.open(chatID)
	case "reset":
		b.forget(chatID)
		b.open(chatID)
	case "help":
		b.sendMessage(chatID, helpText)
	default:
		b.sendMessage(chatID, "Unknown command. Try /help.")
	}
}

// open shows the chat's widget; the first open pushes the greeting through
// the observer.
func (b *Bot) open(chatID int64) {
	if err := b.session(chatID).Open(); err != nil {
		b.logger.Warn("open session failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// submit opens the widget when needed, so a chat that never sent /start
// still gets an answer after the greeting.
func (b *Bot) submit(chatID int64, do func(*widget.Controller) error) {
	c := b.session(chatID)
	err := do(c)
	if errors.Is(err, widget.ErrWidgetClosed) {
		if err = c.Open(); err == nil {
			err = do(c)
		}
	}
	if err != nil {
		b.logger.Warn("submit failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	if _, err := b.s.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.logger.Debug("callback ack failed", zap.Error(err))
	}
	if cb.Message == nil || !strings.HasPrefix(cb.Data, quickPrefix) {
		return
	}
	action := widget.Action(strings.TrimPrefix(cb.Data, quickPrefix))
	b.submit(cb.Message.Chat.ID, func(c *widget.Controller) error { return c.QuickAction(action) })
}
