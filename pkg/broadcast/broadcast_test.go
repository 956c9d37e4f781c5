package broadcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type langChanged struct{ Lang string }

func TestBus_DeliversToEverySubscriber(t *testing.T) {
	bus := New[langChanged]()
	a, cancelA := bus.Subscribe()
	defer cancelA()
	b, cancelB := bus.Subscribe()
	defer cancelB()

	n := bus.Publish(langChanged{Lang: "ru"})

	assert.Equal(t, 2, n)
	assert.Equal(t, langChanged{Lang: "ru"}, <-a)
	assert.Equal(t, langChanged{Lang: "ru"}, <-b)
}

func TestBus_CancelClosesChannel(t *testing.T) {
	bus := New[int]()
	ch, cancel := bus.Subscribe()

	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, bus.Len())
	assert.Equal(t, 0, bus.Publish(1))
}

func TestBus_FullSubscriberDoesNotBlock(t *testing.T) {
	bus := NewBuffered[int](1)
	ch, cancel := bus.Subscribe()
	defer cancel()

	assert.Equal(t, 1, bus.Publish(1))
	assert.Equal(t, 0, bus.Publish(2))
	assert.Equal(t, 1, <-ch)
}
