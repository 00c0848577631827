// Package telegram binds the conversation engine to the Telegram Bot API.
package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/kretovds/company-registry-bot/internal/models"
	"github.com/kretovds/company-registry-bot/internal/services"
)

var mainKeyboard = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(services.MenuAddCompany),
		tgbotapi.NewKeyboardButton(services.MenuFindCompany),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(services.MenuSendToAPI),
		tgbotapi.NewKeyboardButton(services.MenuShowAll),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(services.MenuHelp),
	),
)

var searchKeyboard = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(services.MenuSearchByName),
		tgbotapi.NewKeyboardButton(services.MenuSearchByTaxID),
		tgbotapi.NewKeyboardButton(services.MenuSearchByEmail),
	),
)

// Bot long-polls Telegram, classifies updates into engine events and sends
// the engine's replies back with their keyboard hints.
type Bot struct {
	api    *tgbotapi.BotAPI
	engine *services.ConversationEngine
}

func NewBot(token string, engine *services.ConversationEngine) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Info().Str("username", api.Self.UserName).Msg("✅ Telegram bot authorized")
	return &Bot{api: api, engine: engine}, nil
}

// Run blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message == nil {
			continue
		}
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, m *tgbotapi.Message) {
	in, ok := b.classify(m)
	if !ok {
		return
	}

	for _, reply := range b.engine.Handle(ctx, m.Chat.ID, in) {
		out := tgbotapi.NewMessage(m.Chat.ID, reply.Text)
		switch reply.Keyboard {
		case services.KeyboardMain:
			out.ReplyMarkup = mainKeyboard
		case services.KeyboardSearch:
			out.ReplyMarkup = searchKeyboard
		case services.KeyboardRemove:
			out.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
		}
		if _, err := b.api.Send(out); err != nil {
			log.Error().Err(err).Int64("chat_id", m.Chat.ID).Msg("failed to send reply")
		}
	}
}

// classify converts a Telegram message into an engine event. Messages that
// are neither text nor a supported file kind are dropped.
func (b *Bot) classify(m *tgbotapi.Message) (services.Inbound, bool) {
	in := services.Inbound{MessageID: m.MessageID, Text: m.Text}

	fileID, fileType, fileSize := "", models.FileType(""), 0
	switch {
	case m.Document != nil:
		fileID, fileType, fileSize = m.Document.FileID, models.FileTypeDocument, m.Document.FileSize
	case len(m.Photo) > 0:
		largest := m.Photo[len(m.Photo)-1]
		fileID, fileType, fileSize = largest.FileID, models.FileTypePhoto, largest.FileSize
	case m.Audio != nil:
		fileID, fileType, fileSize = m.Audio.FileID, models.FileTypeAudio, m.Audio.FileSize
	case m.Video != nil:
		fileID, fileType, fileSize = m.Video.FileID, models.FileTypeVideo, m.Video.FileSize
	}

	if fileID != "" {
		url, err := b.api.GetFileDirectURL(fileID)
		if err != nil {
			log.Error().Err(err).Int64("chat_id", m.Chat.ID).Msg("failed to resolve file URL")
			return services.Inbound{}, false
		}
		in.File = &services.InboundFile{
			URL:     url,
			Type:    fileType,
			Size:    int64(fileSize),
			Caption: m.Caption,
		}
		return in, true
	}

	if in.Text == "" {
		return services.Inbound{}, false
	}
	return in, true
}
