package chat

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pet-adoption-marketplace/internal/client"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wsServer(t *testing.T, frames []snapshotFrame) *httptest.Server {
	t.Helper()
	up := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, f := range frames {
			if err := conn.WriteJSON(f); err != nil {
				return
			}
		}
		// mantener abierto hasta que el cliente cierre
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func TestWebSocketFeed_DeliversSnapshots(t *testing.T) {
	ts := wsServer(t, []snapshotFrame{
		{Type: "snapshot", Messages: []client.Message{{ID: "m1"}}},
		{Type: "ignored"},
		{Type: "snapshot", Messages: []client.Message{{ID: "m1"}, {ID: "m2"}}},
	})
	defer ts.Close()

	feed := &WebSocketFeed{
		URLFor: func(a, b string) string {
			return "ws" + strings.TrimPrefix(ts.URL, "http") + "/messages/" + a + "/" + b + "/ws"
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := feed.Subscribe(ctx, "a", "b")
	require.NoError(t, err)

	u := <-ch
	require.NoError(t, u.Err)
	assert.Len(t, u.Messages, 1)

	u = <-ch
	require.NoError(t, u.Err)
	assert.Len(t, u.Messages, 2)

	cancel()
	select {
	case _, ok := <-ch:
		for ok {
			_, ok = <-ch
		}
	case <-time.After(time.Second):
		t.Fatal("expected feed to close after cancel")
	}
}

type failingFeed struct{}

func (failingFeed) Subscribe(ctx context.Context, a, b string) (<-chan Update, error) {
	return nil, errors.New("no push")
}

func TestFallbackFeed_UsesSecondaryWhenPrimaryFails(t *testing.T) {
	f := &fakeFetcher{msgs: []client.Message{{ID: "m1"}}}
	feed := &FallbackFeed{
		Primary:   failingFeed{},
		Secondary: &PollingFeed{Fetcher: f, Interval: time.Hour},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := feed.Subscribe(ctx, "a", "b")
	require.NoError(t, err)

	u := <-ch
	require.Len(t, u.Messages, 1)
	assert.Equal(t, "m1", u.Messages[0].ID)
}

func TestWebSocketFeed_DialError(t *testing.T) {
	feed := &WebSocketFeed{URLFor: func(a, b string) string { return "ws://127.0.0.1:1/nope" }}
	_, err := feed.Subscribe(context.Background(), "a", "b")
	assert.Error(t, err)
}
