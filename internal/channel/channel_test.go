package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSendReceive(t *testing.T) {
	ch := NewBuffered[int](2)
	ch.Send(1)
	ch.Send(2)
	assert.Equal(t, 2, ch.Len())

	ch.Close()
	var got []int
	for v := range ch.Receive() {
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2}, got)
}

func TestBufferedTrySend(t *testing.T) {
	ch := NewBuffered[string](1)
	require.True(t, ch.TrySend("a"))
	assert.False(t, ch.TrySend("b"))

	<-ch.Receive()
	assert.True(t, ch.TrySend("c"))
}

func TestUnbufferedTrySendWithoutReceiver(t *testing.T) {
	ch := NewUnbuffered[int]()
	assert.False(t, ch.TrySend(1))
}
