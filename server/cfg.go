package server

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/maize/cfg"
	"github.com/zucenko/maize/model"
	"github.com/zucenko/maize/sim"
)

const MAX_WATCHERS = 64

// RESTART_AFTER is how long a finished demo stays on screen.
const RESTART_AFTER = 3 * time.Second

// WATCHER_BUFFER frames may queue per watcher before new ones are dropped.
const WATCHER_BUFFER = 32

const JOIN_TIMEOUT = 200 * time.Millisecond

// NewDemo builds an autopiloted session at ruleset r from the shared config.
func NewDemo(c cfg.Config, r model.Ruleset, logger *log.Entry) (*Demo, error) {
	opts := c.Session(r, logger)
	s, err := sim.NewSession(opts)
	if err != nil {
		return nil, err
	}
	return &Demo{
		State:   DS_NEW,
		Ruleset: r,
		Session: s,
		Pilot:   sim.NewAutopilot(true),
	}, nil
}

// following returns the ruleset played after r when nobody asked for one.
func following(r model.Ruleset) model.Ruleset {
	for i, x := range model.Rulesets {
		if x == r {
			return model.Rulesets[(i+1)%len(model.Rulesets)]
		}
	}
	return model.Basic
}
