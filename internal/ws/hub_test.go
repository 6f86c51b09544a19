package ws

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"canvaspilot.io/canvaspilot/internal/pkg/worker"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	pools, err := worker.NewPools(context.Background(), worker.DefaultPoolConfig())
	require.NoError(t, err)
	t.Cleanup(pools.Shutdown)
	return NewHub(pools)
}

func TestHubSubscribeAndDrop(t *testing.T) {
	hub := newTestHub(t)
	a := &Client{hub: hub, send: make(chan []byte, 4), projects: make(map[int64]struct{})}
	b := &Client{hub: hub, send: make(chan []byte, 4), projects: make(map[int64]struct{})}

	hub.Subscribe(a, 1)
	hub.Subscribe(b, 1)
	hub.Subscribe(a, 2)
	require.Equal(t, 2, hub.RoomSize(1))
	require.Equal(t, 1, hub.RoomSize(2))

	// Dropping a client clears every room it joined.
	hub.Drop(a)
	require.Equal(t, 1, hub.RoomSize(1))
	require.Zero(t, hub.RoomSize(2))
	require.Empty(t, a.projects)
}

func TestHubBroadcastReachesRoomOnly(t *testing.T) {
	hub := newTestHub(t)
	in := &Client{hub: hub, send: make(chan []byte, 4), projects: make(map[int64]struct{})}
	out := &Client{hub: hub, send: make(chan []byte, 4), projects: make(map[int64]struct{})}

	hub.Subscribe(in, 1)
	hub.Subscribe(out, 2)

	hub.Broadcast(1, []byte("hello"))

	select {
	case got := <-in.send:
		require.Equal(t, "hello", string(got))
	case <-time.After(2 * time.Second):
		t.Fatal("room member did not receive the broadcast")
	}

	select {
	case got := <-out.send:
		t.Fatalf("other room received the broadcast: %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubBroadcastWhileHandleChanges(t *testing.T) {
	hub := newTestHub(t)
	c := &Client{hub: hub, send: make(chan []byte, 1), projects: make(map[int64]struct{})}
	hub.Subscribe(c, 1)

	// A full send queue forces every broadcast onto the slow-client log
	// path, which reads the handle while the frames below rewrite it.
	require.True(t, c.trySend([]byte("full")))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			c.setHandle("sender-" + strconv.Itoa(i))
		}
	}()
	for i := 0; i < 100; i++ {
		hub.Broadcast(1, []byte("update"))
	}
	<-done

	require.Equal(t, "sender-99", c.handleName())
}

func TestHubBroadcastSkipsClosedClient(t *testing.T) {
	hub := newTestHub(t)
	c := &Client{hub: hub, send: make(chan []byte, 1), projects: make(map[int64]struct{})}
	hub.Subscribe(c, 1)

	c.closeSend()
	// Must not panic on the closed send queue.
	hub.Broadcast(1, []byte("late"))
	time.Sleep(50 * time.Millisecond)
}
