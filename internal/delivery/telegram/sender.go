package telegram

import (
	"context"

	"gopkg.in/telebot.v3"
)

// ChatSender posts plain text to one fixed chat.
type ChatSender struct {
	Bot    *telebot.Bot
	ChatID int64
}

func (s *ChatSender) SendText(_ context.Context, text string) error {
	_, err := s.Bot.Send(telebot.ChatID(s.ChatID), text)
	return err
}
