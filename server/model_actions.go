package server

import (
	"encoding/gob"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/maize/cfg"
	"github.com/zucenko/maize/model"
)

func NewHub(c cfg.Config) *Hub {
	return &Hub{
		Watchers:     make([]*Watcher, 0),
		JoinRequests: make(chan JoinRequest),
		Connects:     make(chan ConnectRequest),
		Errors:       make(chan string),
		Events:       make(chan WatcherEvent, 8),
		Upgrader:     &websocket.Upgrader{},
		RestartAfter: RESTART_AFTER,
		cfg:          c,
		quit:         make(chan struct{}),
		log:          log.WithField("component", "hub"),
	}
}

func (h *Hub) HandleHttpCall() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("HandleHttpCall - connection received from %s", r.RemoteAddr)

		if !websocket.IsWebSocketUpgrade(r) {
			log.Warn("HandleHttpCall not a websocket handshake")
			w.WriteHeader(HTTP_BAD_REQUEST)
			return
		}
		select {
		case <-h.quit:
			w.WriteHeader(HUB_CLOSED.ToHttp())
			return
		default:
		}

		// the hub reserves a place before we upgrade
		answer := make(chan ResponseCode, 1)
		select {
		case h.JoinRequests <- JoinRequest{Answer: answer}:
		case <-h.quit:
			w.WriteHeader(HUB_CLOSED.ToHttp())
			return
		case <-time.After(JOIN_TIMEOUT):
			log.Warn("JoinRequests TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}
		code := <-answer
		if code != HUB_READY {
			log.Warnf("HandleHttpCall join refused code:%d", code)
			w.WriteHeader(code.ToHttp())
			return
		}

		con, err := h.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already answered the client
			log.Warnf("HandleHttpCall websocket upgrade err %v", err)
			h.connect(ConnectRequest{})
			return
		}
		defer con.Close()

		gameOver := make(chan struct{})
		if !h.connect(ConnectRequest{Con: con, GameOver: gameOver}) {
			closeWith(con, websocket.CloseGoingAway, "hub closed")
			return
		}

		log.Info("HandleHttpCall watching, wait for gameover")
		select {
		case <-gameOver:
		case <-h.quit:
		}
	}
}

// connect hands an upgraded connection to the loop, or releases the
// reservation when Con is nil. It fails once the hub is closed.
func (h *Hub) connect(cr ConnectRequest) bool {
	select {
	case h.Connects <- cr:
		return true
	case <-h.quit:
		return false
	}
}

func closeWith(con *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = con.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
}

// Loop owns the demo and the watcher list until Close is called.
func (h *Hub) Loop() {
	h.log.Info("Hub.Loop starting")
	rate := h.cfg.TickRate
	if rate <= 0 {
		rate = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-h.quit:
			for _, wt := range h.Watchers {
				h.drop(wt)
			}
			h.Watchers = h.Watchers[:0]
			h.log.Info("Hub.Loop ended")
			return
		case jr := <-h.JoinRequests:
			if len(h.Watchers)+h.reserved >= MAX_WATCHERS {
				jr.Answer <- HUB_FULL
				continue
			}
			h.reserved++
			jr.Answer <- HUB_READY
		case cr := <-h.Connects:
			h.reserved--
			if cr.Con != nil {
				h.addWatcher(cr.Con, cr.GameOver)
			}
		case id := <-h.Errors:
			h.removeWatcher(id)
		case ev := <-h.Events:
			r, ok := model.ParseRuleset(ev.Ruleset)
			if !ok {
				h.log.Warnf("watcher %s asked for unknown ruleset %q", ev.Watcher, ev.Ruleset)
				continue
			}
			h.log.WithField("watcher", ev.Watcher).Infof("demo switched to %s", r.Name())
			h.restart(r)
		case now := <-ticker.C:
			h.Step(now.Sub(last).Seconds())
			last = now
		}
	}
}

func (h *Hub) Close() {
	close(h.quit)
}

// Step advances the demo by dt seconds and broadcasts the result.
func (h *Hub) Step(dt float64) {
	if h.Demo == nil {
		h.restart(model.Basic)
		if h.Demo == nil {
			return
		}
	}
	switch h.Demo.State {
	case DS_NEW:
		h.log.WithField("session", h.Demo.Session.ID()).Infof("demo %s starts", h.Demo.Ruleset.Name())
		h.Demo.State = DS_PLAY
		fallthrough
	case DS_PLAY:
		s := h.Demo.Session
		outcome := s.Update(h.Demo.Pilot.Steer(s), dt)
		for _, e := range s.DrainEvents() {
			h.log.Debugf("demo sound %s", e.Name())
		}
		h.broadcast(model.ServerMessage{Frames: []model.Frame{s.Snapshot().Frame()}})
		if outcome.Terminal() {
			h.Demo.State = DS_OVER
			h.Demo.Over = 0
		}
	case DS_OVER:
		h.Demo.Over += dt
		if h.Demo.Over >= h.RestartAfter.Seconds() {
			h.restart(following(h.Demo.Ruleset))
		}
	}
}

func (h *Hub) restart(r model.Ruleset) {
	c := h.cfg
	if c.Seed != 0 {
		c.Seed += int64(h.rounds)
	}
	h.rounds++
	d, err := NewDemo(c, r, h.log)
	if err != nil {
		h.log.Errorf("cant start demo: %v", err)
		return
	}
	h.Demo = d
	h.broadcast(h.setupMessage())
}

func (h *Hub) setupMessage() model.ServerMessage {
	snap := h.Demo.Session.Snapshot()
	return model.ServerMessage{
		Setup:  []model.Setup{snap.Setup()},
		Frames: []model.Frame{snap.Frame()},
	}
}

// broadcast never blocks: a watcher whose queue is full misses the message.
func (h *Hub) broadcast(msg model.ServerMessage) {
	for _, wt := range h.Watchers {
		select {
		case wt.MessagesToSend <- msg:
		default:
			wt.DebugDropped++
		}
	}
}

func (h *Hub) addWatcher(conn *websocket.Conn, gameOver chan struct{}) {
	wt := &Watcher{
		State:          WS_NEW,
		Id:             uuid.New().String(),
		Hub:            h,
		Conn:           conn,
		GameOver:       gameOver,
		MessagesToSend: make(chan model.ServerMessage, WATCHER_BUFFER),
	}
	h.log.WithField("watcher", wt.Id).Info("watcher joined")
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			wt.DebugLastPing = time.Now()
			wt.DebugPings++
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Timeout() {
				return nil
			}
			return err
		})
	if h.Demo != nil {
		wt.MessagesToSend <- h.setupMessage()
	}
	wt.State = WS_WATCH
	go wt.LoopChannelRead()
	go wt.LoopChannelWrite()
	h.Watchers = append(h.Watchers, wt)
}

func (h *Hub) removeWatcher(id string) {
	for i, wt := range h.Watchers {
		if wt.Id == id {
			h.drop(wt)
			h.Watchers = append(h.Watchers[:i], h.Watchers[i+1:]...)
			h.log.WithField("watcher", id).Info("watcher left")
			return
		}
	}
}

func (h *Hub) drop(wt *Watcher) {
	wt.State = WS_ERR
	close(wt.MessagesToSend)
	close(wt.GameOver)
}

func (wt *Watcher) fail() {
	select {
	case wt.Hub.Errors <- wt.Id:
	case <-wt.Hub.quit:
	}
}

func (wt *Watcher) LoopChannelRead() {
	log.Printf("LoopChannelRead STARTED %s", wt.Id)
	for {
		_, r, err := wt.Conn.NextReader()
		if err != nil {
			log.Printf("LoopChannelRead err reading message from Conn %v", err)
			wt.fail()
			break
		}
		cm := &model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(cm); err != nil {
			log.Warnf("LoopChannelRead cant decode %v", err)
			wt.fail()
			break
		}
		wt.DebugLastMessage = time.Now()
		wt.DebugInMessages++

		select {
		case wt.Hub.Events <- WatcherEvent{Watcher: wt.Id, Ruleset: cm.Ruleset}:
		default:
			log.Warnf("Dropping watcher message, Hub.Events FULL")
		}
	}
	log.Printf("LoopChannelRead ENDED %s", wt.Id)
}

// LoopChannelWrite only consumes, so a slow socket never stalls the hub.
func (wt *Watcher) LoopChannelWrite() {
	log.Printf("Watcher.LoopChannelWrite STARTED %s", wt.Id)
	for mes := range wt.MessagesToSend {
		w, err := wt.Conn.NextWriter(websocket.BinaryMessage)
		if err != nil {
			log.Warnf("Watcher.LoopChannelWrite cant get writer %v", err)
			wt.fail()
			break
		}
		if err := gob.NewEncoder(w).Encode(mes); err != nil {
			log.Warnf("Watcher.LoopChannelWrite cant encode %v", err)
			wt.fail()
			break
		}
		if err := w.Close(); err != nil {
			log.Warnf("Watcher.LoopChannelWrite cant flush %v", err)
			wt.fail()
			break
		}
		wt.DebugOutMessages++
	}
	log.Printf("LoopChannelWrite ENDED %s", wt.Id)
}
