package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/maize/cfg"
	"github.com/zucenko/maize/model"
	"github.com/zucenko/maize/score"
)

func testServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	c := cfg.Defaults()
	c.Seed = 3
	c.ScoreFile = filepath.Join(t.TempDir(), "scores.json")
	s := NewServer(c)
	srv := httptest.NewServer(s.router)
	t.Cleanup(srv.Close)
	return s, srv
}

func TestScoresRoute(t *testing.T) {
	s, srv := testServer(t)
	s.Scores.RecordIfBest(model.Intermediate, 12.5)

	res, err := http.Get(srv.URL + URI_SCORES)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))

	got := map[string]score.Record{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	require.Contains(t, got, "HARD")
	assert.Equal(t, 12.5, got["HARD"].Time)
}

func TestScoresRouteRereadsFile(t *testing.T) {
	s, srv := testServer(t)
	score.Open(s.Scores.Path()).RecordIfBest(model.Basic, 12.5)

	res, err := http.Get(srv.URL + URI_SCORES)
	require.NoError(t, err)
	defer res.Body.Close()

	got := map[string]score.Record{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	require.Contains(t, got, "MEDIUM")
	assert.Equal(t, 12.5, got["MEDIUM"].Time)
}

func TestUnknownRoute(t *testing.T) {
	_, srv := testServer(t)
	res, err := http.Get(srv.URL + "/play")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestWatchRouteUpgrades(t *testing.T) {
	s, srv := testServer(t)
	go s.Hub.Loop()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + URI_WS
	con, res, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusSwitchingProtocols, res.StatusCode)
	con.Close()
	// handlers must return before srv.Close
	s.Hub.Close()
}
