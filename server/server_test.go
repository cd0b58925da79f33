package server

import (
	"encoding/gob"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/maize/cfg"
	"github.com/zucenko/maize/model"
)

const tick = 1.0 / 60

func testConfig() cfg.Config {
	c := cfg.Defaults()
	c.Seed = 42
	return c
}

func TestFollowingRotates(t *testing.T) {
	assert.Equal(t, model.Intermediate, following(model.Basic))
	assert.Equal(t, model.Advanced, following(model.Intermediate))
	assert.Equal(t, model.Basic, following(model.Advanced))
	assert.Equal(t, model.Basic, following(model.Ruleset(99)))
}

func TestResponseCodes(t *testing.T) {
	assert.Equal(t, HTTP_SUCCESS, HUB_READY.ToHttp())
	assert.Equal(t, HTTP_SERVER_ERR, HUB_FULL.ToHttp())
	assert.Equal(t, HTTP_NOT_FOUND, HUB_CLOSED.ToHttp())
	assert.Equal(t, "DS_NEW", DS_NEW.Name())
	assert.Equal(t, "DS_OVER", DS_OVER.Name())
	assert.Equal(t, "WATCH", WS_WATCH.Name())
}

func TestDemoFinishesAndRotates(t *testing.T) {
	h := NewHub(testConfig())
	h.RestartAfter = time.Second

	h.Step(tick)
	require.NotNil(t, h.Demo)
	assert.Equal(t, DS_PLAY, h.Demo.State)
	assert.Equal(t, model.Basic, h.Demo.Ruleset)
	first := h.Demo.Session.ID()

	for i := 0; i < 20000 && h.Demo.State == DS_PLAY; i++ {
		h.Step(tick)
	}
	require.Equal(t, DS_OVER, h.Demo.State)
	assert.Equal(t, model.GoalReached, h.Demo.Session.Outcome())

	h.Step(0.5)
	assert.Equal(t, DS_OVER, h.Demo.State)
	h.Step(0.5)
	assert.Equal(t, DS_NEW, h.Demo.State)
	assert.Equal(t, model.Intermediate, h.Demo.Ruleset)
	assert.NotEqual(t, first, h.Demo.Session.ID())
	assert.Zero(t, h.Demo.Session.Elapsed())

	h.Step(tick)
	assert.Equal(t, DS_PLAY, h.Demo.State)
	assert.Greater(t, h.Demo.Session.Elapsed(), 0.0)
}

func TestBroadcastDropsWhenFull(t *testing.T) {
	h := NewHub(testConfig())
	wt := &Watcher{MessagesToSend: make(chan model.ServerMessage, 2)}
	h.Watchers = append(h.Watchers, wt)

	for i := 0; i < 5; i++ {
		h.broadcast(model.ServerMessage{})
	}
	assert.Len(t, wt.MessagesToSend, 2)
	assert.Equal(t, 3, wt.DebugDropped)
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

// refused dials the hub and returns the HTTP status of the failed handshake.
func refused(t *testing.T, srv *httptest.Server) int {
	t.Helper()
	con, res, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if con != nil {
		con.Close()
	}
	require.Equal(t, websocket.ErrBadHandshake, err)
	require.NotNil(t, res)
	res.Body.Close()
	return res.StatusCode
}

func TestWatchRejectsPlainRequest(t *testing.T) {
	h := NewHub(testConfig())
	srv := httptest.NewServer(h.HandleHttpCall())
	defer srv.Close()

	res, err := http.Get(srv.URL)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, HTTP_BAD_REQUEST, res.StatusCode)
}

func TestWatchAnswersClosedHub(t *testing.T) {
	h := NewHub(testConfig())
	srv := httptest.NewServer(h.HandleHttpCall())
	defer srv.Close()

	h.Close()
	assert.Equal(t, HUB_CLOSED.ToHttp(), refused(t, srv))
}

func TestWatchTimesOutWithoutLoop(t *testing.T) {
	h := NewHub(testConfig())
	srv := httptest.NewServer(h.HandleHttpCall())
	defer srv.Close()

	assert.Equal(t, HTTP_TIMEOUT, refused(t, srv))
}

func TestWatchAnswersFullHub(t *testing.T) {
	h := NewHub(testConfig())
	for i := 0; i < MAX_WATCHERS; i++ {
		h.Watchers = append(h.Watchers, &Watcher{
			MessagesToSend: make(chan model.ServerMessage, WATCHER_BUFFER),
			GameOver:       make(chan struct{}),
		})
	}
	go h.Loop()
	srv := httptest.NewServer(h.HandleHttpCall())
	defer srv.Close()
	defer h.Close()

	assert.Equal(t, HUB_FULL.ToHttp(), refused(t, srv))
}

func read(t *testing.T, con *websocket.Conn) model.ServerMessage {
	t.Helper()
	_, r, err := con.NextReader()
	require.NoError(t, err)
	msg := model.ServerMessage{}
	require.NoError(t, gob.NewDecoder(r).Decode(&msg))
	return msg
}

func TestWatcherReceivesDemoAndSwitchesRuleset(t *testing.T) {
	h := NewHub(testConfig())
	go h.Loop()
	srv := httptest.NewServer(h.HandleHttpCall())
	defer srv.Close()
	defer h.Close()

	con, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	defer con.Close()
	require.NoError(t, con.SetReadDeadline(time.Now().Add(10*time.Second)))

	first := read(t, con)
	require.Len(t, first.Setup, 1)
	require.Len(t, first.Frames, 1)
	assert.Equal(t, first.Setup[0].SessionID, first.Frames[0].SessionID)
	assert.Len(t, first.Setup[0].Layout, first.Setup[0].Rows)

	w, err := con.NextWriter(websocket.BinaryMessage)
	require.NoError(t, err)
	require.NoError(t, gob.NewEncoder(w).Encode(model.ClientMessage{Ruleset: "EXTREME"}))
	require.NoError(t, w.Close())

	for {
		msg := read(t, con)
		if len(msg.Setup) == 1 && msg.Setup[0].Ruleset == model.Advanced {
			assert.Equal(t, model.Advanced.KeysRequired(), msg.Setup[0].KeysTotal)
			return
		}
	}
}
