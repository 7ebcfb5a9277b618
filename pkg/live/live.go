// Package live recomputes the comparison on a ticker and pushes every result
// to websocket clients.
package live

import (
	"context"
	"net/http"
	"sync"
	"time"

	"f1acleaderboard/pkg/dashboard"
	"f1acleaderboard/pkg/pubsub"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	TopicComparison = "comparison"

	writeWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{} // use default options

type Computer interface {
	Snapshot(ctx context.Context) dashboard.Snapshot
}

type Broadcaster struct {
	computer Computer
	ps       *pubsub.PubSub[dashboard.Snapshot]

	mu   sync.Mutex
	last *dashboard.Snapshot
}

func NewBroadcaster(computer Computer, ps *pubsub.PubSub[dashboard.Snapshot]) *Broadcaster {
	return &Broadcaster{
		computer: computer,
		ps:       ps,
	}
}

// Sync computes a fresh snapshot on every tick until exitChan fires.
func (b *Broadcaster) Sync(ctx context.Context, ticker *time.Ticker, exitChan <-chan bool) {
	go func() {
		for {
			select {
			case <-exitChan:
				return
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				logrus.Debugf("refreshing comparison at %s", t)
				b.Refresh(ctx)
			}
		}
	}()
}

// Refresh computes and publishes one snapshot.
func (b *Broadcaster) Refresh(ctx context.Context) dashboard.Snapshot {
	s := b.computer.Snapshot(ctx)

	b.mu.Lock()
	b.last = &s
	b.mu.Unlock()

	b.ps.Publish(TopicComparison, s)
	return s
}

// Last is the most recent snapshot, if any. It is only used to greet new
// clients; every tick recomputes from the source.
func (b *Broadcaster) Last() (dashboard.Snapshot, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.last == nil {
		return dashboard.Snapshot{}, false
	}
	return *b.last, true
}

// ServeHTTP upgrades the connection and streams snapshots as JSON.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Error("could not upgrade websocket")
		return
	}
	defer c.Close()

	sub := b.ps.Subscribe(TopicComparison)
	defer b.ps.Unsubscribe(TopicComparison, sub)

	// reader: detects the client going away
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if s, ok := b.Last(); ok {
		if err := write(c, s); err != nil {
			return
		}
	}

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case s, ok := <-sub:
			if !ok {
				return
			}
			if err := write(c, s); err != nil {
				logrus.WithError(err).Debug("websocket client gone")
				return
			}
		}
	}
}

func write(c *websocket.Conn, s dashboard.Snapshot) error {
	_ = c.SetWriteDeadline(time.Now().Add(writeWait))
	return c.WriteJSON(s)
}
