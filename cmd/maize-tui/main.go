package main

import (
	"os"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/maize/cfg"
	"github.com/zucenko/maize/game"
	"github.com/zucenko/maize/score"
	"github.com/zucenko/maize/sound"
)

// LOG_FILE receives the log while tcell owns the terminal.
const LOG_FILE = "maize-tui.log"

func main() {
	c, err := cfg.Load(cfg.Path())
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	c.ApplyLogging()
	if f, err := os.OpenFile(LOG_FILE, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
		log.SetOutput(f)
		defer f.Close()
	} else {
		log.Warnf("cant open %s, logging to stderr: %v", LOG_FILE, err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()

	player := sound.New(c.Audio.Volume, c.Audio.Music)
	defer player.Close()

	t := NewTerminal(screen)
	m := game.New(c, t, player, score.Open(c.ScoreFile))
	t.Run(m, c.TickRate)
	log.Info("bye")
}
