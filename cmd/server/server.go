package main

import (
	"net/http"
	"os"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/maize/cfg"
	"github.com/zucenko/maize/score"
	"github.com/zucenko/maize/server"
)

type Server struct {
	router *way.Router
	Hub    *server.Hub
	Scores *score.Store
}

func NewServer(c cfg.Config) *Server {
	s := &Server{
		Hub:    server.NewHub(c),
		Scores: score.Open(c.ScoreFile),
	}
	s.routes()
	return s
}

func main() {
	c, err := cfg.Load(cfg.Path())
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	c.ApplyLogging()

	s := NewServer(c)
	go s.Hub.Loop()
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("Defaulting to port %s", port)
	}
	log.Fatalln(http.ListenAndServe(":"+port, s.router))
}
