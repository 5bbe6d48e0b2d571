package router

import (
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"transapp/pkg/logger"
)

type HandlerFunc func(c telebot.Context, payload string) error

// PrefixFunc serves a whole family of callback keys.
type PrefixFunc func(c telebot.Context, key, payload string) error

type prefixRoute struct {
	prefix string
	h      PrefixFunc
}

// CallbackRouter dispatches inline button callbacks by their unique key.
type CallbackRouter struct {
	handlers  map[string]HandlerFunc
	prefixes  []prefixRoute
	protected []string

	// Allow decides whether a chat may use protected keys. Nil allows all.
	Allow func(c telebot.Context) bool
	// Deny answers a refused callback. May be nil.
	Deny func(c telebot.Context) error
}

func New() *CallbackRouter {
	return &CallbackRouter{handlers: make(map[string]HandlerFunc)}
}

func (r *CallbackRouter) Register(key string, h HandlerFunc) {
	r.handlers[key] = h
}

// RegisterPrefix routes every key starting with prefix to h. Exact keys win.
func (r *CallbackRouter) RegisterPrefix(prefix string, h PrefixFunc) {
	r.prefixes = append(r.prefixes, prefixRoute{prefix: prefix, h: h})
}

// Protect puts every key starting with one of prefixes behind Allow.
func (r *CallbackRouter) Protect(prefixes ...string) {
	r.protected = append(r.protected, prefixes...)
}

func (r *CallbackRouter) Attach(bot *telebot.Bot) {
	bot.Handle(telebot.OnCallback, func(c telebot.Context) error {
		_, err := r.Dispatch(c)
		return err
	})
}

// Dispatch answers the callback and runs the matching handler. It reports
// whether any route matched.
func (r *CallbackRouter) Dispatch(c telebot.Context) (bool, error) {
	key, payload := ParseCallback(c.Data())
	logger.Log.WithFields(logrus.Fields{"key": key, "payload": payload}).Debug("Callback")
	_ = c.Respond()

	h, ok := r.lookup(key)
	if !ok {
		return false, nil
	}
	if !r.allowed(c, key) {
		logger.Log.WithField("key", key).Warn("Callback refused")
		if r.Deny != nil {
			return true, r.Deny(c)
		}
		return true, nil
	}
	return true, h(c, payload)
}

func (r *CallbackRouter) allowed(c telebot.Context, key string) bool {
	if r.Allow == nil {
		return true
	}
	for _, p := range r.protected {
		if strings.HasPrefix(key, p) {
			return r.Allow(c)
		}
	}
	return true
}

func (r *CallbackRouter) lookup(key string) (HandlerFunc, bool) {
	if h, ok := r.handlers[key]; ok {
		return h, true
	}
	for _, p := range r.prefixes {
		if strings.HasPrefix(key, p.prefix) {
			ph := p.h
			return func(c telebot.Context, payload string) error {
				return ph(c, key, payload)
			}, true
		}
	}
	return nil, false
}

// ParseCallback splits telebot callback data ("\funique|payload") into its
// key and payload.
func ParseCallback(raw string) (key, payload string) {
	raw = strings.TrimPrefix(raw, "\f")
	key, payload, _ = strings.Cut(raw, "|")
	return key, payload
}
