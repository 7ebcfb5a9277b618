package notification

import (
	"context"
	"testing"
	"time"

	"f1acleaderboard/pkg/analytics"
	"f1acleaderboard/pkg/dashboard"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	messages []string
	err      error
}

func (r *recorder) Send(_ context.Context, subject, message string) error {
	if r.err != nil {
		return r.err
	}
	r.messages = append(r.messages, message)
	return nil
}

func snapshot(message string) dashboard.Snapshot {
	return dashboard.Snapshot{
		Comparison: analytics.Comparison{
			Status: analytics.Status{Level: analytics.LevelSuccess, Message: message},
		},
	}
}

func TestHandleSkipsRepeatedStatus(t *testing.T) {
	rec := &recorder{}
	m := NewManager(context.Background(), rec)

	m.Handle(snapshot("analysis complete: 1 circuits compared"))
	m.Handle(snapshot("analysis complete: 1 circuits compared"))
	m.Handle(snapshot("analysis complete: 2 circuits compared"))

	assert.Equal(t, []string{
		"analysis complete: 1 circuits compared",
		"analysis complete: 2 circuits compared",
	}, rec.messages)
}

func TestHandleRetriesAfterFailure(t *testing.T) {
	rec := &recorder{err: errors.New("boom")}
	m := NewManager(context.Background(), rec)

	m.Handle(snapshot("a"))
	assert.Empty(t, rec.messages)

	rec.err = nil
	m.Handle(snapshot("a"))
	assert.Equal(t, []string{"a"}, rec.messages)
}

func TestMessageReportsErrors(t *testing.T) {
	assert.Equal(t, "Error: missing column", Message(dashboard.Snapshot{Error: "missing column"}))
	assert.Equal(t, "ok", Message(snapshot("ok")))
}

func TestStartStopsOnExit(t *testing.T) {
	rec := &recorder{}
	m := NewManager(context.Background(), rec, Log{})

	updates := make(chan dashboard.Snapshot)
	exit := make(chan bool)
	done := make(chan struct{})
	go func() {
		m.Start(updates, exit)
		close(done)
	}()

	updates <- snapshot("x")
	exit <- true

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("manager did not stop")
	}
	assert.Equal(t, []string{"x"}, rec.messages)
}

type fakeBot struct {
	sent []tgbotapi.MessageConfig
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func TestTelegramSendsToEveryReceiver(t *testing.T) {
	bot := &fakeBot{}
	tg := &Telegram{}
	tg.SetClient(bot)
	tg.AddReceivers(1, 2)

	require.NoError(t, tg.Send(context.Background(), "s", "m"))
	require.Len(t, bot.sent, 2)
	assert.Equal(t, int64(1), bot.sent[0].ChatID)
	assert.Equal(t, int64(2), bot.sent[1].ChatID)
	assert.Equal(t, "s\nm", bot.sent[0].Text)
}

func TestTelegramWithoutClient(t *testing.T) {
	tg := &Telegram{}
	assert.Error(t, tg.Send(context.Background(), "s", "m"))
}
