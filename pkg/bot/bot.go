// Package bot serves the leaderboard and the comparison over Telegram.
package bot

import (
	"context"
	"fmt"
	"strings"

	"f1acleaderboard/pkg/analytics"
	"f1acleaderboard/pkg/circuitimage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const (
	menuStart = "/start"
	menuMenu  = "/menu"
)

// Sender is the part of *tgbotapi.BotAPI the bot uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Dashboard interface {
	Comparison(ctx context.Context) (analytics.Comparison, error)
	Selector(ctx context.Context) (*analytics.Selector, error)
}

type ImageFetcher interface {
	Fetch(ctx context.Context, circuit string) (circuitimage.Image, error)
}

type Accepter interface {
	AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error)
	AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error)
	AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error)
}

type Bot struct {
	bot          Sender
	accepters    []Accepter
	menuKeyboard tgbotapi.ReplyKeyboardMarkup
}

func New(bot Sender, dash Dashboard, images ImageFetcher) *Bot {
	accepters := []Accepter{
		NewLeaderboardApp(bot, dash, images),
		NewComparisonApp(bot, dash),
	}
	return &Bot{
		bot:       bot,
		accepters: accepters,
		menuKeyboard: tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(buttonLeaderboard),
				tgbotapi.NewKeyboardButton(buttonComparison),
			),
		),
	}
}

// Start handles updates until ctx is cancelled or the channel closes.
func (b *Bot) Start(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	var err error
	switch {
	case update.Message != nil:
		err = b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		err = b.handleCallback(ctx, update.CallbackQuery)
	}
	if err != nil {
		logrus.WithError(err).Error("could not handle telegram update")
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) error {
	if message.From == nil {
		return nil
	}
	text := strings.TrimSpace(message.Text)
	logrus.WithField("user", message.From.UserName).Debugf("received %q", text)

	if message.IsCommand() {
		command := "/" + message.Command()
		if ok, handler := b.AcceptCommand(command); ok {
			return handler(ctx, message.Chat.ID)
		}
		return nil
	}
	if ok, handler := b.AcceptButton(text); ok {
		return handler(ctx, message.Chat.ID)
	}
	return nil
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	// stop the spinner on the pressed button
	if _, err := b.bot.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		logrus.WithError(err).Debug("could not answer callback")
	}
	if ok, handler := b.AcceptCallback(query); ok {
		return handler(ctx, query)
	}
	return nil
}

func (b *Bot) AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error) {
	if command == menuStart {
		return true, b.renderStart()
	} else if command == menuMenu {
		return true, b.renderMenu()
	}
	for _, accepter := range b.accepters {
		if accept, handler := accepter.AcceptCommand(command); accept {
			return true, handler
		}
	}
	return false, nil
}

func (b *Bot) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	for _, accepter := range b.accepters {
		if accept, handler := accepter.AcceptButton(button); accept {
			return true, handler
		}
	}
	return false, nil
}

func (b *Bot) AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error) {
	for _, accepter := range b.accepters {
		if accept, handler := accepter.AcceptCallback(query); accept {
			return true, handler
		}
	}
	return false, nil
}

func (b *Bot) renderStart() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		message := "Hola, soy el bot que compara los tiempos de F1 con los de Assetto Corsa.\n\n"
		message += "Puedes usar los siguientes comandos:\n\n"
		message += fmt.Sprintf("%s - Clasificación por temporada, ronda y circuito\n", commandLeaderboard)
		message += fmt.Sprintf("%s - Comparativa F1 vs Assetto Corsa\n", commandComparison)
		message += fmt.Sprintf("%s - Muestra el menú del bot\n", menuMenu)
		msg := tgbotapi.NewMessage(chatId, message)
		msg.ReplyMarkup = b.menuKeyboard
		_, err := b.bot.Send(msg)
		return err
	}
}

func (b *Bot) renderMenu() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		msg := tgbotapi.NewMessage(chatId, "Menú del bot.\n\n")
		msg.ReplyMarkup = b.menuKeyboard
		_, err := b.bot.Send(msg)
		return err
	}
}

// codeBlock wraps text in a MarkdownV2 pre block.
func codeBlock(title, body string) string {
	r := strings.NewReplacer("\\", "\\\\", "`", "\\`")
	return fmt.Sprintf("```\n%s\n\n%s```", r.Replace(title), r.Replace(body))
}
