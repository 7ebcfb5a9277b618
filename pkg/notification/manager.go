package notification

import (
	"context"

	"f1acleaderboard/pkg/dashboard"

	"github.com/nikoksr/notify"
	"github.com/sirupsen/logrus"
)

const subject = "Comparativa F1 vs Assetto Corsa:"

type Manager struct {
	ctx      context.Context
	services []notify.Notifier
	last     string
}

func NewManager(ctx context.Context, services ...notify.Notifier) *Manager {
	return &Manager{
		ctx:      ctx,
		services: services,
	}
}

// Start forwards the status of every snapshot until exitChan fires. A status
// identical to the previous one is not sent again.
func (m *Manager) Start(updates <-chan dashboard.Snapshot, exitChan <-chan bool) {
	for {
		select {
		case <-exitChan:
			return
		case <-m.ctx.Done():
			return
		case s, ok := <-updates:
			if !ok {
				return
			}
			m.Handle(s)
		}
	}
}

// Handle sends the snapshot status when it differs from the last one sent.
func (m *Manager) Handle(s dashboard.Snapshot) {
	message := Message(s)
	if message == m.last {
		return
	}
	if err := m.send(message); err != nil {
		logrus.WithError(err).Error("could not notify comparison status")
		return
	}
	m.last = message
}

func (m *Manager) send(message string) error {
	if len(m.services) == 0 {
		return nil
	}
	n := notify.NewWithServices(m.services...)
	return n.Send(m.ctx, subject, message)
}

// Message is the human readable status of a snapshot.
func Message(s dashboard.Snapshot) string {
	if s.Error != "" {
		return "Error: " + s.Error
	}
	return s.Comparison.Status.Message
}
