package websocket

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/gridmaze/internal/maze"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	srv := httptest.NewServer(NewMux(hub))
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var m Message
	require.NoError(t, conn.ReadJSON(&m))
	return m
}

func testFrame(t *testing.T) maze.Frame {
	t.Helper()
	cfg := maze.DefaultConfig()
	cfg.Policy = maze.PolicyFixedList
	s, err := maze.New(cfg, nil)
	require.NoError(t, err)
	return s.Frame()
}

// publishUntil re-sends the frame until conn sees it; registration is
// asynchronous, so the first broadcasts may reach no one.
func publishUntil(t *testing.T, hub *Hub, conn *websocket.Conn, f maze.Frame) Message {
	t.Helper()
	got := make(chan Message, 1)
	go func() {
		var m Message
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		if err := conn.ReadJSON(&m); err == nil {
			got <- m
		}
		close(got)
	}()
	for i := 0; i < 100; i++ {
		hub.Render(f)
		select {
		case m, ok := <-got:
			require.True(t, ok, "connection closed")
			return m
		case <-time.After(20 * time.Millisecond):
		}
	}
	t.Fatal("no frame received")
	return Message{}
}

func TestHubBroadcastsFrames(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)

	f := testFrame(t)
	m := publishUntil(t, hub, conn, f)
	assert.Equal(t, TypeFrame, m.Type)
	require.NotNil(t, m.Frame)
	assert.Equal(t, f, *m.Frame)
}

func TestHubReplaysLastFrame(t *testing.T) {
	hub, url := startHub(t)
	first := dial(t, url)
	f := testFrame(t)
	publishUntil(t, hub, first, f)

	late := dial(t, url)
	m := read(t, late)
	assert.Equal(t, TypeFrame, m.Type)
	assert.Equal(t, f.Player, m.Frame.Player)
}

func TestHubBroadcastsEvents(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)
	publishUntil(t, hub, conn, testFrame(t))

	hub.Notify(maze.Event{Kind: maze.EventWon, ObstacleCount: 1})
	// Frames from the registration loop may still be queued ahead of the event.
	for i := 0; i < 200; i++ {
		m := read(t, conn)
		if m.Type != TypeEvent {
			continue
		}
		require.NotNil(t, m.Event)
		assert.Equal(t, maze.EventWon, m.Event.Kind)
		return
	}
	t.Fatal("no event received")
}

func TestHubNeverBlocksPublisher(t *testing.T) {
	hub := NewHub() // not running: nothing drains the queue
	f := maze.Frame{Size: 3}

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10*sendBuffer; i++ {
			hub.Render(f)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Render blocked")
	}
}

func TestWatchReceivesEngineOutput(t *testing.T) {
	hub, url := startHub(t)

	cfg := maze.DefaultConfig()
	cfg.TickPeriod = time.Hour
	state, err := maze.New(cfg, nil)
	require.NoError(t, err)
	engine := maze.NewEngine(state, maze.WithRenderer(hub), maze.WithNotifier(hub))
	t.Cleanup(engine.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	frames := make(chan maze.Frame, 16)
	errc := make(chan error, 1)
	go func() {
		errc <- Watch(ctx, url, func(m Message) {
			if m.Frame == nil {
				return
			}
			select {
			case frames <- *m.Frame:
			default:
			}
		})
	}()

	deadline := time.After(2 * time.Second)
	for {
		_, err := engine.Move(maze.Right)
		require.NoError(t, err)
		_, err = engine.Move(maze.Left)
		require.NoError(t, err)

		select {
		case f := <-frames:
			assert.Equal(t, 8, f.Size)
			cancel()
			assert.ErrorIs(t, <-errc, context.Canceled)
			return
		case <-deadline:
			t.Fatal("watcher got no frame")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(NewMux(NewHub()))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
}
