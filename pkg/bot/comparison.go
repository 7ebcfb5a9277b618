package bot

import (
	"bytes"
	"context"

	"f1acleaderboard/pkg/analytics"
	"f1acleaderboard/pkg/model"
	"f1acleaderboard/pkg/render"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	commandComparison = "/comparacion"
	buttonComparison  = "Comparativa"
)

type ComparisonApp struct {
	bot  Sender
	dash Dashboard
}

func NewComparisonApp(bot Sender, dash Dashboard) *ComparisonApp {
	return &ComparisonApp{
		bot:  bot,
		dash: dash,
	}
}

func (ca *ComparisonApp) AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error) {
	if command == commandComparison {
		return true, ca.renderComparison()
	}
	return false, nil
}

func (ca *ComparisonApp) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	if button == buttonComparison {
		return true, ca.renderComparison()
	}
	return false, nil
}

func (ca *ComparisonApp) AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error) {
	return false, nil
}

func (ca *ComparisonApp) renderComparison() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		c, err := ca.dash.Comparison(ctx)
		if err != nil {
			text := "Se ha producido un error al calcular la comparativa"
			if errors.Is(err, analytics.ErrMissingColumn) {
				text = "Los datos no tienen el formato esperado: " + err.Error()
			}
			_, sendErr := ca.bot.Send(tgbotapi.NewMessage(chatId, text))
			return sendErr
		}
		if len(c.Rows) == 0 {
			_, err := ca.bot.Send(tgbotapi.NewMessage(chatId, c.Status.Message))
			return err
		}
		msg := tgbotapi.NewMessage(chatId, codeBlock(c.Status.Message, render.ComparisonTable(c.Rows)))
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		if _, err := ca.bot.Send(msg); err != nil {
			return err
		}
		return ca.sendPicture(chatId, c.Rows)
	}
}

// sendPicture sends the bar chart of the comparison. Failing to draw it is
// only logged.
func (ca *ComparisonApp) sendPicture(chatId int64, rows []model.ComparisonRow) error {
	var b bytes.Buffer
	if err := render.ComparisonPNG(&b, rows); err != nil {
		logrus.WithError(err).Warn("could not draw comparison")
		return nil
	}
	photo := tgbotapi.NewPhoto(chatId, tgbotapi.FileBytes{Name: "comparacion.png", Bytes: b.Bytes()})
	photo.Caption = "F1 (rojo) vs Assetto Corsa (gris)"
	_, err := ca.bot.Send(photo)
	return err
}
