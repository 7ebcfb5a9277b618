package notification

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Log writes notifications to the logrus standard logger.
type Log struct{}

func (Log) Send(_ context.Context, subject, message string) error {
	logrus.WithField("subject", subject).Info(message)
	return nil
}
