package main

import (
	"encoding/json"
	"net/http"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
)

const URI_WS = "/watch"
const URI_SCORES = "/scores"

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_WS, s.Hub.HandleHttpCall())
	s.router.HandleFunc("GET", URI_SCORES, s.handleScores())
}

func (s *Server) handleScores() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// the clients write the file; pick up their records
		s.Scores.Reload()
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s.Scores.All()); err != nil {
			log.Warnf("handleScores cant encode %v", err)
		}
	}
}
