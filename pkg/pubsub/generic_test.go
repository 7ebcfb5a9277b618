package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishSubscribe(t *testing.T) {
	ps := NewPubSub[int]()
	a := ps.Subscribe("laps")
	b := ps.Subscribe("laps")
	other := ps.Subscribe("other")

	ps.Publish("laps", 1)

	assert.Equal(t, 1, <-a)
	assert.Equal(t, 1, <-b)
	assert.Len(t, other, 0)
	assert.Equal(t, 2, ps.Subscribers("laps"))
}

func TestSlowSubscriberGetsLatestValue(t *testing.T) {
	ps := NewPubSub[int]()
	sub := ps.Subscribe("laps")

	ps.Publish("laps", 1)
	ps.Publish("laps", 2)
	ps.Publish("laps", 3)

	assert.Equal(t, 3, <-sub)
	assert.Len(t, sub, 0)

	ps.Publish("laps", 4)
	assert.Equal(t, 4, <-sub)
}

func TestUnsubscribe(t *testing.T) {
	ps := NewPubSub[string]()
	sub := ps.Subscribe("laps")
	keep := ps.Subscribe("laps")

	ps.Unsubscribe("laps", sub)
	_, open := <-sub
	assert.False(t, open)
	assert.Equal(t, 1, ps.Subscribers("laps"))

	ps.Publish("laps", "x")
	assert.Equal(t, "x", <-keep)
}
