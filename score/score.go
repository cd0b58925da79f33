package score

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/maize/model"
)

const DATE_FORMAT = "2006-01-02 15:04:05"

type Record struct {
	Time float64 `json:"time"`
	Date string  `json:"date"`
}

// Store keeps the best time per ruleset in a JSON file keyed by ruleset
// name. An absent or unreadable file means no records.
type Store struct {
	path    string
	mu      sync.Mutex
	records map[string]Record
	log     *log.Entry
	now     func() time.Time
}

func Open(path string) *Store {
	s := &Store{
		path:    path,
		records: make(map[string]Record),
		log:     log.WithField("scores", path),
		now:     time.Now,
	}
	s.load()
	return s
}

func (s *Store) Path() string { return s.path }

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warnf("cant read scores: %v", err)
		}
		return
	}
	records := make(map[string]Record)
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.Warnf("corrupt scores, starting empty: %v", err)
		return
	}
	for name, r := range records {
		if _, ok := model.ParseRuleset(name); !ok || r.Time <= 0 {
			continue
		}
		s.records[name] = r
	}
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("score: write %s: %w", s.path, err)
	}
	return nil
}

// RecordIfBest stores elapsed when it beats the current best for r. A failing
// write is logged; the record still counts for this process.
func (s *Store) RecordIfBest(r model.Ruleset, elapsed float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if best, ok := s.records[r.Name()]; ok && elapsed >= best.Time {
		return false
	}
	s.records[r.Name()] = Record{Time: elapsed, Date: s.now().Format(DATE_FORMAT)}
	if err := s.save(); err != nil {
		s.log.Warn(err)
	}
	s.log.WithFields(log.Fields{"ruleset": r.Name(), "time": elapsed}).Info("new best time")
	return true
}

func (s *Store) Best(r model.Ruleset) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[r.Name()]
	return rec, ok
}

// Reload replaces the records with what the file holds now, so records
// written by other processes show up.
func (s *Store) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]Record)
	s.load()
}

// All copies every record, keyed by ruleset name.
func (s *Store) All() map[string]Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Record, len(s.records))
	for k, v := range s.records {
		out[k] = v
	}
	return out
}

func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]Record)
	s.log.Info("scores reset")
	return s.save()
}
