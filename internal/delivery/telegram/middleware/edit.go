package middleware

import (
	"strings"

	"gopkg.in/telebot.v3"

	"transapp/pkg/logger"
)

// EditOrSend replaces the callback's message, or sends a new one when there
// is nothing to edit. An unchanged message is not an error.
func EditOrSend(c telebot.Context, text string, opts ...any) error {
	if c.Callback() == nil {
		return c.Send(text, opts...)
	}
	err := c.Edit(text, opts...)
	if err == nil || notModified(err) {
		return nil
	}
	logger.Log.WithError(err).Debug("Edit failed, sending new message")
	return c.Send(text, opts...)
}

// Recover turns a handler panic into an error reply so the poller survives.
func Recover() telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Log.WithField("panic", r).Error("Handler panicked")
					err = c.Send("Error interno.")
				}
			}()
			return next(c)
		}
	}
}

func notModified(err error) bool {
	return strings.Contains(err.Error(), "message is not modified")
}
