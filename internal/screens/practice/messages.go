package practice

import (
	sess "github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/stats"
)

// effectDoneMsg carries the event produced by an executed engine effect.
type effectDoneMsg struct {
	Event sess.Event
}

// overviewLoadedMsg is sent when the side panel statistics were recomputed.
type overviewLoadedMsg struct {
	Overview stats.Overview
	Err      error
}
