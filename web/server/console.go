package server

import (
	"fmt"
	"log"
	"time"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
)

// ConsoleMessage is one render log line forwarded to the client console
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by forwarding log lines to a console
// channel, mirroring them to the server log. Forwarding is non-blocking:
// when the channel is full, lines are dropped rather than stalling the
// render workers.
type WebLogger struct {
	renderID string
	console  chan<- ConsoleMessage
}

// NewWebLogger creates a logger for a single render session
func NewWebLogger(renderID string, console chan<- ConsoleMessage) core.Logger {
	return &WebLogger{renderID: renderID, console: console}
}

// Printf implements core.Logger
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	log.Printf("[%s] %s", wl.renderID, message)

	if wl.console == nil {
		return
	}
	select {
	case wl.console <- ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     "info",
	}:
	default:
	}
}
