// Package debug provides tracing for mdgrid's conversion pipeline.
//
// The debug system follows these principles:
//   - Single switch: MDGRID_DEBUG=1 or --debug enables everything
//   - Zero overhead: a nil *Session makes every Emit a no-op
//   - Session scoped: each document gets its own session ID, so traces of
//     files converted concurrently can be told apart
//   - Machine parsable: JSON Lines by default, pretty format optional
package debug

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Environment switches
const (
	EnvDebug  = "MDGRID_DEBUG"
	EnvPretty = "MDGRID_DEBUG_PRETTY"
)

// enabled is the global debug flag - set once at startup.
var enabled atomic.Bool

// SetEnabled configures debug mode globally.
func SetEnabled(on bool) {
	enabled.Store(on)
}

// Enabled returns true if debug mode is active.
func Enabled() bool {
	return enabled.Load()
}

// InitFromEnv enables debug mode when MDGRID_DEBUG=1 and reports whether
// MDGRID_DEBUG_PRETTY=1 asks for the pretty sink.
func InitFromEnv() (pretty bool) {
	if os.Getenv(EnvDebug) == "1" {
		SetEnabled(true)
	}
	return os.Getenv(EnvPretty) == "1"
}

// Session traces the conversion of one document.
// Sessions running on different goroutines must write through a sink
// returned by NewSharedSink.
type Session struct {
	sessionID string
	document  string
	sink      Sink
	startTime time.Time
}

// NewSession creates a session for the named document.
// Returns nil if debug mode is not enabled or sink is nil.
func NewSession(sink Sink, document string) *Session {
	if !Enabled() || sink == nil {
		return nil
	}

	s := &Session{
		sessionID: generateSessionID(),
		document:  document,
		sink:      sink,
		startTime: time.Now(),
	}
	s.Emit("session", "Start", map[string]interface{}{
		"document": document,
	})
	return s
}

// SessionID returns the unique identifier for this session.
func (s *Session) SessionID() string {
	if s == nil {
		return ""
	}
	return s.sessionID
}

// Emit sends an event to the sink.
// This is a no-op if the session is nil (fast-path for disabled debug).
func (s *Session) Emit(phase, event string, data interface{}) {
	if s == nil {
		return
	}

	evt := Event{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		SessionID: s.sessionID,
		Document:  s.document,
		Phase:     phase,
		Event:     event,
		Data:      data,
	}

	// Debug failures must not break a conversion
	//nolint:errcheck // Debug sink errors are non-critical
	s.sink.Write(evt)
}

// End emits the session end event. The sink is left open so other sessions
// can keep writing to it; the owner of the sink closes it.
func (s *Session) End() {
	if s == nil {
		return
	}
	s.Emit("session", "End", map[string]int64{
		"elapsed_ms": time.Since(s.startTime).Milliseconds(),
	})
}

// generateSessionID creates a unique session identifier.
func generateSessionID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		n := time.Now().UnixNano()
		return hex.EncodeToString([]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
	}
	return hex.EncodeToString(b)
}

// Event is the base envelope for all debug events.
type Event struct {
	Timestamp string      `json:"ts"`
	SessionID string      `json:"session_id"`
	Document  string      `json:"document,omitempty"`
	Phase     string      `json:"phase"`
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
}

// sharedSink serializes writes from concurrent sessions.
type sharedSink struct {
	mu   sync.Mutex
	sink Sink
}

// NewSharedSink wraps sink so sessions running on different goroutines can
// write to it safely.
func NewSharedSink(sink Sink) Sink {
	return &sharedSink{sink: sink}
}

func (s *sharedSink) Write(event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sink.Write(event)
}

func (s *sharedSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sink.Flush()
}

func (s *sharedSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sink.Close()
}
