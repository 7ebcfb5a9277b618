package bot

import (
	"context"
	"fmt"

	"f1acleaderboard/pkg/analytics"
	"f1acleaderboard/pkg/dashboard"
	"f1acleaderboard/pkg/metrics"
	"f1acleaderboard/pkg/render"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	commandLeaderboard = "/leaderboard"
	buttonLeaderboard  = "Clasificación"

	messageNoData  = "No hay datos suficientes para mostrar la clasificación"
	messageExpired = "La selección ya no está disponible. Vuelve a probar " + commandLeaderboard
)

type LeaderboardApp struct {
	bot    Sender
	dash   Dashboard
	images ImageFetcher
}

func NewLeaderboardApp(bot Sender, dash Dashboard, images ImageFetcher) *LeaderboardApp {
	return &LeaderboardApp{
		bot:    bot,
		dash:   dash,
		images: images,
	}
}

func (la *LeaderboardApp) AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error) {
	if command == commandLeaderboard {
		return true, la.renderSeasons()
	}
	return false, nil
}

func (la *LeaderboardApp) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	if button == buttonLeaderboard {
		return true, la.renderSeasons()
	}
	return false, nil
}

func (la *LeaderboardApp) AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error) {
	if !isLeaderboardCallback(query.Data) {
		return false, nil
	}
	return true, la.handleCallback
}

func (la *LeaderboardApp) renderSeasons() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		s, err := la.dash.Selector(ctx)
		if err != nil {
			return la.sendError(chatId, err)
		}
		seasons := s.Seasons()
		if len(seasons) == 0 {
			_, err := la.bot.Send(tgbotapi.NewMessage(chatId, messageNoData))
			return err
		}
		msg := tgbotapi.NewMessage(chatId, "Elige temporada:")
		msg.ReplyMarkup = seasonsKeyboard(seasons)
		_, err = la.bot.Send(msg)
		return err
	}
}

func (la *LeaderboardApp) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query.Message == nil {
		return nil
	}
	chatId := query.Message.Chat.ID
	messageId := query.Message.MessageID

	cb, err := parseLeaderboardCallback(query.Data)
	if err != nil {
		return err
	}

	s, err := la.dash.Selector(ctx)
	if err != nil {
		return la.sendError(chatId, err)
	}

	switch cb.step {
	case stepSeason:
		rounds := s.Rounds(cb.season)
		if len(rounds) == 0 {
			return la.edit(chatId, messageId, messageExpired, nil)
		}
		keyboard := roundsKeyboard(cb.season, rounds)
		return la.edit(chatId, messageId, fmt.Sprintf("Temporada %d. Elige ronda:", cb.season), &keyboard)

	case stepRound:
		circuits := s.Circuits(cb.season, cb.round)
		if len(circuits) == 0 {
			return la.edit(chatId, messageId, messageExpired, nil)
		}
		keyboard := circuitsKeyboard(cb.season, cb.round, circuits)
		return la.edit(chatId, messageId, fmt.Sprintf("Temporada %d, ronda %d. Elige circuito:", cb.season, cb.round), &keyboard)

	default:
		circuit, found := circuitByID(s.Circuits(cb.season, cb.round), cb.circuitID)
		if !found {
			return la.edit(chatId, messageId, messageExpired, nil)
		}
		return la.renderLeaderboard(ctx, s, chatId, messageId, cb.season, cb.round, circuit)
	}
}

func (la *LeaderboardApp) renderLeaderboard(ctx context.Context, s *analytics.Selector, chatId int64, messageId int, season, round int, circuit string) error {
	rows, err := s.Leaderboard(season, round, circuit)
	if err != nil {
		return la.sendError(chatId, err)
	}

	title := fmt.Sprintf("Clasificación en %q (%d, ronda %d)", circuit, season, round)
	msg := tgbotapi.NewEditMessageText(chatId, messageId, codeBlock(title, render.LeaderboardTable(rows)))
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	if _, err := la.bot.Send(msg); err != nil {
		return err
	}

	return la.sendCircuitImage(ctx, chatId, circuit)
}

// sendCircuitImage sends the circuit picture, or a warning when it cannot be
// fetched. A missing picture never fails the leaderboard.
func (la *LeaderboardApp) sendCircuitImage(ctx context.Context, chatId int64, circuit string) error {
	img, err := la.images.Fetch(ctx, circuit)
	if err != nil {
		metrics.ImageFailures.Inc()
		logrus.WithError(err).Warn("circuit image unavailable")
		_, err := la.bot.Send(tgbotapi.NewMessage(chatId, fmt.Sprintf("No se pudo cargar la imagen de %s", circuit)))
		return err
	}
	photo := tgbotapi.NewPhoto(chatId, tgbotapi.FileBytes{Name: circuit + ".png", Bytes: img.Data})
	photo.Caption = circuit
	_, err = la.bot.Send(photo)
	return err
}

func (la *LeaderboardApp) edit(chatId int64, messageId int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewEditMessageText(chatId, messageId, text)
	msg.ReplyMarkup = keyboard
	_, err := la.bot.Send(msg)
	return err
}

func (la *LeaderboardApp) sendError(chatId int64, err error) error {
	text := "Se ha producido un error al cargar los datos"
	switch {
	case errors.Is(err, dashboard.ErrInsufficientData):
		text = messageNoData
	case errors.Is(err, analytics.ErrNoLaps):
		text = "No hay vueltas para esa selección"
	case errors.Is(err, analytics.ErrMissingColumn):
		text = "Los datos no tienen el formato esperado: " + err.Error()
	default:
		logrus.WithError(err).Error("could not load leaderboard")
	}
	_, sendErr := la.bot.Send(tgbotapi.NewMessage(chatId, text))
	return sendErr
}
