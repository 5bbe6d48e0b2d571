package telegram

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"

	"transapp/internal/app/service"
	"transapp/internal/delivery/telegram/router"
	"transapp/internal/repository/sqlite"
	"transapp/pkg/calendar"
)

const adminChat = 10

// testContext implements the parts of telebot.Context the handlers touch.
type testContext struct {
	telebot.Context
	chat    int64
	data    string
	payload string
	sent    []string
}

func (c *testContext) Chat() *telebot.Chat { return &telebot.Chat{ID: c.chat} }
func (c *testContext) Data() string { return c.data }
func (c *testContext) Callback() *telebot.Callback { return nil }
func (c *testContext) Message() *telebot.Message { return &telebot.Message{Payload: c.payload} }
func (c *testContext) Respond(...*telebot.CallbackResponse) error { return nil }
func (c *testContext) Send(what interface{}, _ ...interface{}) error {
	c.sent = append(c.sent, fmt.Sprint(what))
	return nil
}

func newHandler(t *testing.T) *Handler {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(context.Background(), db))

	workers := sqlite.NewSqliteWorkerRepo(db)
	_, err = workers.UpsertWorker(context.Background(), "Ana")
	require.NoError(t, err)

	h := &Handler{
		Workers:     service.NewWorkerService(workers),
		Holidays:    service.NewHolidayService(sqlite.NewSqliteHolidayRepo(db), nil),
		Calendar:    &calendar.CalendarController{},
		Router:      router.New(),
		AdminChatID: adminChat,
	}
	h.registerCallbacks()
	return h
}

func storedHolidays(t *testing.T, h *Handler) int {
	t.Helper()
	list, err := h.Holidays.List(context.Background(),
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return len(list)
}

func TestCalendarCallbackNeedsAdminChat(t *testing.T) {
	h := newHandler(t)

	outsider := &testContext{chat: 99, data: "\fcal_day|2026-08-07"}
	matched, err := h.Router.Dispatch(outsider)
	require.NoError(t, err)
	assert.True(t, matched)
	assert.Equal(t, []string{"Comando reservado a administración."}, outsider.sent)
	assert.Zero(t, storedHolidays(t, h))

	admin := &testContext{chat: adminChat, data: "\fcal_day|2026-08-07"}
	_, err = h.Router.Dispatch(admin)
	require.NoError(t, err)
	assert.Equal(t, 1, storedHolidays(t, h))
}

func TestPayrollCallbacksNeedAdminChat(t *testing.T) {
	h := newHandler(t)
	for _, data := range []string{"\fpay_month|2026-08", "\fexport_month|2026-08", "\fmonth_nav|pay_month|2025"} {
		c := &testContext{chat: 99, data: data}
		matched, err := h.Router.Dispatch(c)
		require.NoError(t, err, data)
		assert.True(t, matched, data)
		assert.Equal(t, []string{"Comando reservado a administración."}, c.sent, data)
	}
}

func TestStartDoesNotTakeOverLinkedWorker(t *testing.T) {
	h := newHandler(t)

	first := &testContext{chat: 100, payload: "Ana"}
	require.NoError(t, h.handleStart(first))
	assert.Equal(t, []string{"Chat vinculado a Ana."}, first.sent)

	other := &testContext{chat: 200, payload: "ana"}
	require.NoError(t, h.handleStart(other))
	require.Len(t, other.sent, 1)
	assert.Contains(t, other.sent[0], "ya está vinculado")

	w, err := h.Workers.ByChat(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "Ana", w.Name)
}
