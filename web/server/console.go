package server

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Console message levels
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// ConsoleMessage is one line of a render's console stream
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // LevelInfo, LevelWarning or LevelError
}

// WebLogger implements core.LevelLogger for one render. Lines go to stdout tagged with
// the render ID and, when a channel is set, to the render's console stream.
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	dropped     atomic.Int64
}

// NewWebLogger creates a logger for renderID. consoleChan may be nil.
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) *WebLogger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// Printf logs at LevelInfo
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	wl.logf(LevelInfo, format, args...)
}

// Warnf logs at LevelWarning
func (wl *WebLogger) Warnf(format string, args ...interface{}) {
	wl.logf(LevelWarning, format, args...)
}

// Errorf logs at LevelError
func (wl *WebLogger) Errorf(format string, args ...interface{}) {
	wl.logf(LevelError, format, args...)
}

// Dropped reports how many console lines were skipped because the stream was full
func (wl *WebLogger) Dropped() int64 {
	return wl.dropped.Load()
}

func (wl *WebLogger) logf(level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	if level == LevelInfo {
		fmt.Printf("[%s] %s", wl.renderID, message)
	} else {
		fmt.Printf("[%s] %s: %s", wl.renderID, level, message)
	}

	if wl.consoleChan == nil {
		return
	}
	// Never block the renderer on a slow client
	select {
	case wl.consoleChan <- ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
	}:
	default:
		wl.dropped.Add(1)
	}
}
