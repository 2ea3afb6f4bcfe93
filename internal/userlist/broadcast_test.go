package userlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBroadcasterDropsWhenFull(t *testing.T) {
	b := NewBroadcaster[int](false)
	ch, unsubscribe := b.Subscribe(2)
	defer unsubscribe()

	b.Publish(1)
	b.Publish(2)
	b.Publish(3)

	assert.Equal(t, 1, <-ch)
	assert.Equal(t, 2, <-ch)
	assert.Empty(t, ch)
}

func TestBroadcasterConflatesToLatest(t *testing.T) {
	b := NewBroadcaster[int](true)
	ch, unsubscribe := b.Subscribe(1)
	defer unsubscribe()

	for i := 1; i <= 5; i++ {
		b.Publish(i)
	}

	assert.Equal(t, 5, <-ch)
}

func TestBroadcasterFansOut(t *testing.T) {
	b := NewBroadcaster[string](false)
	a, unsubA := b.Subscribe(1)
	c, unsubC := b.Subscribe(1)
	defer unsubC()

	b.Publish("hello")
	assert.Equal(t, "hello", <-a)
	assert.Equal(t, "hello", <-c)

	unsubA()
	unsubA()
	_, open := <-a
	assert.False(t, open)

	b.Publish("again")
	assert.Equal(t, "again", <-c)
}

func TestBroadcasterNoSubscribers(t *testing.T) {
	b := NewBroadcaster[int](false)
	b.Publish(1)

	ch, _ := b.Subscribe(1)
	assert.Empty(t, ch, "values published before subscribing are not replayed")
}

func TestBroadcasterClose(t *testing.T) {
	b := NewBroadcaster[int](false)
	ch, unsubscribe := b.Subscribe(1)

	b.Close()
	_, open := <-ch
	assert.False(t, open)

	unsubscribe()
	b.Publish(1)
	b.Close()

	late, _ := b.Subscribe(1)
	_, open = <-late
	assert.False(t, open)
}
