// Package agent defines the boundary between cctr and the external
// generative agent that performs the actual translation.
//
// The agent is an injected collaborator behind a narrow interface: one
// request in, an ordered stream of typed events out. The transport lives in
// package claudecli; tests substitute an in-memory stream.
package agent

import (
	"context"
	"io"
)

// EventKind identifies the type of a stream event.
type EventKind int

const (
	// KindText is a textual segment of the agent's assistant turn.
	KindText EventKind = iota
	// KindToolUse signals that the agent invoked a tool.
	KindToolUse
	// KindUserTurn is an echoed user-side message (tool results etc.).
	KindUserTurn
	// KindResult is the terminal event for a request.
	KindResult
)

// String returns the kind name used in debug output.
func (k EventKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindToolUse:
		return "tool_use"
	case KindUserTurn:
		return "user"
	case KindResult:
		return "result"
	}
	return "unknown"
}

// Event is one typed message from the agent's response stream.
type Event struct {
	Kind EventKind

	// Text is the assistant text segment (KindText).
	Text string
	// Tool is the invoked tool name (KindToolUse).
	Tool string
	// TurnEnd marks the boundary of one contiguous assistant turn. It is set
	// on the last KindText event of an assistant message.
	TurnEnd bool
	// CostUSD is the cumulative request cost reported by the terminal event
	// (KindResult); zero when the agent does not report cost.
	CostUSD float64
}

// Stream is a blocking iterator over response events. Next returns io.EOF
// when the stream is exhausted; any other error is a transport failure and
// terminates the request.
type Stream interface {
	Next(ctx context.Context) (Event, error)
	Close() error
}

// Sender issues one translation request to the agent and returns its live
// event stream. Implementations must not retry.
type Sender interface {
	Send(ctx context.Context, prompt, model string) (Stream, error)
}

// SliceStream is an in-memory Stream over a fixed event sequence, used by
// tests and offline tooling.
type SliceStream struct {
	Events []Event
	// Err, when set, is returned after the events are exhausted instead
	// of io.EOF, simulating a transport failure mid-stream.
	Err error

	pos int
}

// Next returns the next queued event.
func (s *SliceStream) Next(ctx context.Context) (Event, error) {
	if err := ctx.Err(); err != nil {
		return Event{}, err
	}
	if s.pos >= len(s.Events) {
		if s.Err != nil {
			return Event{}, s.Err
		}
		return Event{}, io.EOF
	}
	ev := s.Events[s.pos]
	s.pos++
	return ev, nil
}

// Close implements Stream.
func (s *SliceStream) Close() error { return nil }
