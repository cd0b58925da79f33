package server

import (
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/maize/cfg"
	"github.com/zucenko/maize/model"
	"github.com/zucenko/maize/sim"
)

// Hub runs one autopiloted demo session and streams it to every watcher.
// All fields are owned by the Loop goroutine; other goroutines talk to it
// over the channels.
type Hub struct {
	Watchers     []*Watcher
	JoinRequests chan JoinRequest
	Connects     chan ConnectRequest
	Errors       chan string
	Events       chan WatcherEvent
	Upgrader     *websocket.Upgrader
	Demo         *Demo
	RestartAfter time.Duration

	cfg      cfg.Config
	rounds   int
	reserved int // joins answered HUB_READY that have not connected yet
	quit     chan struct{}
	log      *log.Entry
}

type DemoState int

const (
	DS_NEW DemoState = iota
	DS_PLAY
	DS_OVER
)

type Demo struct {
	State   DemoState
	Ruleset model.Ruleset
	Session *sim.Session
	Pilot   *sim.Autopilot
	// Over counts seconds spent in DS_OVER.
	Over float64
}

type WatcherState int

const (
	WS_NEW WatcherState = iota + 1
	WS_WATCH
	WS_ERR
)

type Watcher struct {
	State    WatcherState
	Id       string
	Hub      *Hub
	Conn     *websocket.Conn
	GameOver chan struct{}

	MessagesToSend chan model.ServerMessage

	DebugInMessages  int
	DebugOutMessages int
	DebugDropped     int
	DebugLastMessage time.Time
	DebugLastPing    time.Time
	DebugPings       int
}
