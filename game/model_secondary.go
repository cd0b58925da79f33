package game

import (
	"fmt"
	"strings"

	"github.com/zucenko/maize/model"
)

// Summary is the one-line run report front-ends copy to the clipboard.
// It is empty unless f shows a finished session.
func Summary(f Frame) string {
	if f.Snapshot == nil || !f.Snapshot.Outcome.Terminal() {
		return ""
	}
	s := f.Snapshot
	verdict := "caught"
	if s.Outcome == model.GoalReached {
		verdict = "escaped"
	}
	line := fmt.Sprintf("Mystic Maize %s: %s after %.2fs", f.Ruleset.Name(), verdict, s.Elapsed)
	if s.KeysTotal > 0 {
		line += fmt.Sprintf(", keys %d/%d", s.Collected, s.KeysTotal)
	}
	if f.NewRecord {
		line += " (new record)"
	}
	return line
}

// RecordLines lists the best time per ruleset in menu order.
func RecordLines(f Frame) []string {
	lines := make([]string, 0, len(model.Rulesets))
	for _, r := range model.Rulesets {
		rec, ok := f.Records[r]
		if !ok {
			lines = append(lines, fmt.Sprintf("%-8s %s", r.Name(), strings.Repeat("-", 7)))
			continue
		}
		lines = append(lines, fmt.Sprintf("%-8s %7.2fs  %s", r.Name(), rec.Time, rec.Date))
	}
	return lines
}

// Help is the controls text shown in HELP.
var Help = []string{
	"Reach the glowing exit before the pursuers reach you.",
	"Arrow keys move, but each session shuffles which arrow goes where.",
	"W A S D shoot up, left, down and right on HARD and EXTREME.",
	"EXTREME locks the exit until every key is collected.",
	"P pauses, M toggles music, Esc goes back.",
}
