// Package claudecli sends translation requests to the Claude Code CLI and
// adapts its stream-json output into agent events.
//
// The `claude` binary is spawned once per request:
//
//	claude --print --verbose --output-format stream-json \
//	       --permission-mode bypassPermissions --model <id> \
//	       --session-id <uuid> <prompt>
//
// Authentication is handled by Claude Code itself; no API key is required
// here. Each stdout line is one JSON message; assistant messages carry a
// content array of text and tool_use blocks, and a final "result" message
// terminates the request with an optional cumulative cost.
package claudecli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/cctr-tools/cctr/agent"
)

// DefaultBinary is the Claude Code CLI executable name.
const DefaultBinary = "claude"

// DefaultPermissionMode auto-approves any tool actions the agent takes while
// translating.
const DefaultPermissionMode = "bypassPermissions"

// maxLineSize bounds a single stream-json line (4 MiB).
const maxLineSize = 4 * 1024 * 1024

// Client spawns the Claude Code CLI as a subprocess per request.
type Client struct {
	// Binary overrides the executable name (default "claude").
	Binary string
	// PermissionMode overrides the permission mode (default bypassPermissions).
	PermissionMode string
	// DebugLog, when set, receives transport diagnostics (session id,
	// subprocess stderr). Nil discards them.
	DebugLog func(format string, args ...any)
}

var _ agent.Sender = (*Client)(nil)

func (c *Client) binary() string {
	if c.Binary != "" {
		return c.Binary
	}
	return DefaultBinary
}

func (c *Client) permissionMode() string {
	if c.PermissionMode != "" {
		return c.PermissionMode
	}
	return DefaultPermissionMode
}

func (c *Client) debugf(format string, args ...any) {
	if c.DebugLog != nil {
		c.DebugLog(format, args...)
	}
}

// buildArgs assembles the CLI argument list for one request.
func buildArgs(permissionMode, model, sessionID, prompt string) []string {
	args := []string{
		"--print",
		"--verbose",
		"--output-format", "stream-json",
		"--permission-mode", permissionMode,
		"--session-id", sessionID,
	}
	if model != "" {
		args = append(args, "--model", model)
	}
	return append(args, prompt)
}

// Send issues one request and returns the live event stream. The subprocess
// is cleaned up when the stream is closed or fully drained.
func (c *Client) Send(ctx context.Context, prompt, model string) (agent.Stream, error) {
	sessionID := uuid.NewString()
	args := buildArgs(c.permissionMode(), model, sessionID, prompt)

	cmd := exec.CommandContext(ctx, c.binary(), args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("claude transport: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("claude transport: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", c.binary(), err)
	}

	c.debugf("claude session %s started (model=%q)", sessionID, model)

	// Drain subprocess stderr so the child never blocks on it; forward to
	// the debug log when one is attached.
	go func() {
		sc := bufio.NewScanner(stderr)
		for sc.Scan() {
			c.debugf("claude stderr: %s", sc.Text())
		}
	}()

	sc := bufio.NewScanner(stdout)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return &cliStream{cmd: cmd, scanner: sc, debugf: c.debugf}, nil
}

// cliStream adapts NDJSON lines from the subprocess into agent events.
type cliStream struct {
	cmd     *exec.Cmd
	scanner *bufio.Scanner
	debugf  func(format string, args ...any)

	pending   []agent.Event
	sawResult bool
	done      bool
}

// Next blocks until the next event arrives. One JSON line can fan out into
// several events (an assistant message holds a content array), so decoded
// events are queued and handed out one at a time.
func (s *cliStream) Next(ctx context.Context) (agent.Event, error) {
	if err := ctx.Err(); err != nil {
		return agent.Event{}, err
	}
	for len(s.pending) == 0 {
		if s.done {
			return agent.Event{}, io.EOF
		}
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				s.finish()
				return agent.Event{}, fmt.Errorf("reading agent stream: %w", err)
			}
			return agent.Event{}, s.streamEnded()
		}
		line := s.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		evs, err := parseLine(line)
		if err != nil {
			s.finish()
			return agent.Event{}, err
		}
		s.pending = append(s.pending, evs...)
	}

	ev := s.pending[0]
	s.pending = s.pending[1:]
	if ev.Kind == agent.KindResult {
		s.sawResult = true
	}
	return ev, nil
}

// streamEnded handles stdout EOF: the exit status only matters when the
// agent never produced a terminal result event.
func (s *cliStream) streamEnded() error {
	err := s.finish()
	if s.sawResult {
		return io.EOF
	}
	if err != nil {
		return fmt.Errorf("agent exited before producing a result: %w", err)
	}
	return io.EOF
}

func (s *cliStream) finish() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.cmd.Wait()
}

// Close terminates the subprocess if it is still running.
func (s *cliStream) Close() error {
	if s.done {
		return nil
	}
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.finish()
	return nil
}

// parseLine decodes one stream-json message into zero or more events.
// Unknown message types (system/init notices) are skipped.
func parseLine(line []byte) ([]agent.Event, error) {
	if !gjson.ValidBytes(line) {
		return nil, fmt.Errorf("malformed agent stream line: %.80s", line)
	}

	msg := gjson.ParseBytes(line)
	switch msg.Get("type").String() {
	case "assistant":
		return assistantEvents(msg), nil
	case "user":
		return []agent.Event{{Kind: agent.KindUserTurn}}, nil
	case "result":
		return []agent.Event{{
			Kind:    agent.KindResult,
			CostUSD: msg.Get("total_cost_usd").Float(),
		}}, nil
	default:
		return nil, nil
	}
}

// assistantEvents flattens an assistant message's content array. The last
// text block of a message carries TurnEnd, closing one accumulated turn.
func assistantEvents(msg gjson.Result) []agent.Event {
	var evs []agent.Event
	lastText := -1

	msg.Get("message.content").ForEach(func(_, block gjson.Result) bool {
		switch block.Get("type").String() {
		case "text":
			evs = append(evs, agent.Event{Kind: agent.KindText, Text: block.Get("text").String()})
			lastText = len(evs) - 1
		case "tool_use":
			evs = append(evs, agent.Event{Kind: agent.KindToolUse, Tool: block.Get("name").String()})
		}
		return true
	})

	if lastText >= 0 {
		evs[lastText].TurnEnd = true
	}
	return evs
}
