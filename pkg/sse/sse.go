// Package sse writes Server-Sent Events.
//
//	stream, err := sse.New(w, r)
//	if err != nil { return }
//	for st := range states {
//	    if err := stream.Send("state", st); err != nil { break }
//	}
package sse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnsupported is returned when the ResponseWriter cannot flush.
var ErrUnsupported = errors.New("sse: streaming not supported")

// ErrClosed is returned by writes after the client went away.
var ErrClosed = errors.New("sse: stream closed")

// Stream represents an active SSE connection to one client.
type Stream struct {
	w       http.ResponseWriter
	r       *http.Request
	flusher http.Flusher
	closed  bool
}

// New sets the event-stream headers and flushes them, so the client sees
// the stream open before the first event. It answers 500 itself when the
// writer cannot stream.
func New(w http.ResponseWriter, r *http.Request) (*Stream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return nil, ErrUnsupported
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // disable nginx buffering
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &Stream{w: w, r: r, flusher: flusher}, nil
}

// Send writes a named event with a JSON-encoded data payload.
func (s *Stream) Send(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("sse: marshal: %w", err)
	}
	return s.write("event: " + event + "\ndata: " + string(payload) + "\n\n")
}

// SendRaw writes data lines without an event name.
func (s *Stream) SendRaw(data string) error {
	var b strings.Builder
	for _, line := range strings.Split(data, "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return s.write(b.String())
}

// Comment writes an SSE comment, useful as a keepalive heartbeat.
func (s *Stream) Comment(msg string) error {
	return s.write(": " + msg + "\n\n")
}

// IsClosed reports whether the client has disconnected.
func (s *Stream) IsClosed() bool {
	if s.closed {
		return true
	}
	select {
	case <-s.r.Context().Done():
		s.closed = true
	default:
	}
	return s.closed
}

func (s *Stream) write(frame string) error {
	if s.IsClosed() {
		return ErrClosed
	}
	if _, err := fmt.Fprint(s.w, frame); err != nil {
		s.closed = true
		return fmt.Errorf("sse: write: %w", err)
	}
	s.flusher.Flush()
	return nil
}
