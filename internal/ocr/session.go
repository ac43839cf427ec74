package ocr

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// State is the lifecycle phase of a recognition session.
type State string

const (
	StateIdle        State = "idle"
	StateRecognizing State = "recognizing"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

// Event is one element of a session's event sequence: zero or more progress
// events in non-decreasing order, then exactly one terminal event.
type Event struct {
	// Progress is the percentage in [0,100] for progress events.
	Progress int
	// Terminal marks the final event of the session.
	Terminal bool
	// Text carries the recognized text on a successful terminal event.
	Text string
	// Err carries the failure on a failed terminal event.
	Err error
}

// Session runs recognition for a single image. Sessions are single-use:
// once Done or Failed, a new image needs a new session.
type Session struct {
	id     string
	engine Engine
	buffer *Buffer
	input  Input

	events chan Event

	mu       sync.Mutex
	state    State
	progress int
}

// NewSession prepares a recognition session for one image. Recognized text
// is appended to buf on completion; buf may be shared across sessions.
func NewSession(engine Engine, buf *Buffer, input Input) *Session {
	if input.ID == "" {
		input.ID = uuid.NewString()
	}
	return &Session{
		id:     input.ID,
		engine: engine,
		buffer: buf,
		input:  input,
		events: make(chan Event, 16),
		state:  StateIdle,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Events returns the session's event sequence. The channel is closed after
// the terminal event; no events follow it. Callers of Start must drain the
// channel or the session goroutine can block on delivery.
func (s *Session) Events() <-chan Event { return s.events }

// Start begins recognition in the background. Calling Start more than once
// is a no-op.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return
	}
	s.state = StateRecognizing
	s.mu.Unlock()

	go s.run(ctx)
}

func (s *Session) run(ctx context.Context) {
	defer close(s.events)

	result, err := s.engine.Recognize(ctx, s.input, s.reportProgress)

	if err != nil {
		s.mu.Lock()
		s.state = StateFailed
		s.mu.Unlock()
		slog.Warn("OCR session failed", "session", s.id, "engine", s.engine.Name(), "err", err)
		s.events <- Event{Terminal: true, Err: err}
		return
	}

	if s.buffer != nil {
		s.buffer.Append(result.Text)
	}
	s.mu.Lock()
	s.state = StateDone
	s.progress = 100
	s.mu.Unlock()
	slog.Debug("OCR session complete", "session", s.id, "engine", s.engine.Name(), "chars", len(result.Text))
	s.events <- Event{Terminal: true, Text: result.Text}
}

// reportProgress forwards engine progress, clamped to [0,100] and forced
// monotonically non-decreasing. Late reports arriving after the terminal
// event are dropped.
func (s *Session) reportProgress(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRecognizing || percent < s.progress {
		return
	}
	s.progress = percent

	select {
	case s.events <- Event{Progress: percent}:
	default:
		// Slow consumer; progress events are advisory and safe to drop.
	}
}

// Progress returns the most recent progress percentage.
func (s *Session) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}
