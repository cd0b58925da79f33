package server

import (
	"fmt"

	"github.com/gorilla/websocket"
)

const HTTP_SUCCESS = 200
const HTTP_BAD_REQUEST = 400
const HTTP_NOT_FOUND = 404
const HTTP_TIMEOUT = 408
const HTTP_SERVER_ERR = 503

type ResponseCode int

const (
	HUB_READY ResponseCode = iota
	HUB_FULL
	HUB_CLOSED
)

func (h ResponseCode) ToHttp() int {
	switch h {
	case HUB_READY:
		return HTTP_SUCCESS
	case HUB_FULL:
		return HTTP_SERVER_ERR
	case HUB_CLOSED:
		return HTTP_NOT_FOUND
	default:
		panic(h)
	}
}

func (ds DemoState) Name() string {
	switch ds {
	case DS_NEW:
		return "DS_NEW"
	case DS_PLAY:
		return "DS_PLAY"
	case DS_OVER:
		return "DS_OVER"
	default:
		return fmt.Sprintf("n/a:%d", ds)
	}
}

func (ws WatcherState) Name() string {
	switch ws {
	case WS_NEW:
		return "NEW"
	case WS_WATCH:
		return "WATCH"
	case WS_ERR:
		return "ERR"
	default:
		return "N/A"
	}
}

type JoinRequest struct {
	Answer chan ResponseCode
}

// ConnectRequest follows a HUB_READY answer. A nil Con gives the place back.
type ConnectRequest struct {
	Con      *websocket.Conn
	GameOver chan struct{}
}

type WatcherEvent struct {
	Watcher string
	Ruleset string
}
