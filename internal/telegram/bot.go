package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"cosmic-portfolio/internal/history"
	"cosmic-portfolio/internal/render"
	"cosmic-portfolio/internal/widget"
)

const quickPrefix = "quick:"

// Bot exposes the portfolio assistant as a Telegram chat. Every chat gets
// its own widget session; replies are pushed back by the session observer.
type Bot struct {
	api         *tgbotapi.BotAPI
	s           sender
	widgets     *widget.Registry
	adminUserID int64
	logger      *zap.Logger

	mu    sync.Mutex
	chats map[int64]string
}

func New(botToken string, widgets *widget.Registry, adminUserID int64, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	b := newBot(botAPISender{api: api}, widgets, adminUserID, logger)
	b.api = api
	b.logger.Info("telegram bot authorized", zap.String("username", api.Self.UserName))
	return b, nil
}

func newBot(s sender, widgets *widget.Registry, adminUserID int64, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{
		s:           s,
		widgets:     widgets,
		adminUserID: adminUserID,
		logger:      logger.Named("telegram"),
		chats:       make(map[int64]string),
	}
}

// Start polls for updates until ctx is done.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message != nil {
		b.handleIncomingMessage(update.Message)
		return
	}
	if update.CallbackQuery != nil {
		b.handleCallback(update.CallbackQuery)
	}
}

// session returns the chat's widget session, creating it when the chat is
// new or its previous session was swept as idle.
func (b *Bot) session(chatID int64) *widget.Controller {
	b.mu.Lock()
	defer b.mu.Unlock()
	if id, ok := b.chats[chatID]; ok {
		if c, err := b.widgets.Get(id); err == nil {
			return c
		}
	}
	c := b.widgets.Create(widget.PageHome, widget.ModeLocal, widget.WithObserver(b.observer(chatID)))
	b.chats[chatID] = c.ID()
	b.logger.Debug("chat session started", zap.Int64("chat_id", chatID), zap.String("session", c.ID()))
	return c
}

// forget drops the chat's session so the next message starts fresh.
func (b *Bot) forget(chatID int64) {
	b.mu.Lock()
	id, ok := b.chats[chatID]
	delete(b.chats, chatID)
	b.mu.Unlock()
	if ok {
		_ = b.widgets.Remove(id)
	}
}

// observer forwards assistant turns to the chat. User turns are already
// visible in Telegram.
func (b *Bot) observer(chatID int64) widget.Observer {
	return func(t history.Turn) {
		if t.Role != history.RoleAssistant {
			return
		}
		b.sendHTML(chatID, render.TelegramHTML(t.Text), quickKeyboard())
	}
}

func quickKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, a := range widget.Actions {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(actionLabels[a], quickPrefix+string(a)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

var actionLabels = map[widget.Action]string{
	widget.ActionGreeting:   "👋 Say hi",
	widget.ActionSkills:     "🛠 Skills",
	widget.ActionProjects:   "📂 Projects",
	widget.ActionMLProjects: "🤖 ML projects",
	widget.ActionDLProjects: "🧠 DL projects",
	widget.ActionContact:    "📬 Contact",
	widget.ActionExperience: "💼 Experience",
	widget.ActionTip:        "💡 Learning tip",
}

func (b *Bot) sendHTML(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = kb
	if _, err := b.s.Send(msg); err != nil {
		b.logger.Warn("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		b.logger.Warn("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// NotifyAdmin sends text to the configured admin. It is a no-op without one.
func (b *Bot) NotifyAdmin(text string) {
	if b.adminUserID == 0 {
		return
	}
	b.sendMessage(b.adminUserID, text)
}
