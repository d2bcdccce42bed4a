// Package translate implements the translation client: it turns a text and a
// language pair into one instruction prompt for the external agent, drains
// the agent's response stream, and extracts the final translated string.
//
// The agent itself is injected as an agent.Sender so the policy here stays
// testable against in-memory fake streams.
package translate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cctr-tools/cctr/agent"
	"github.com/cctr-tools/cctr/detect"
	"github.com/cctr-tools/cctr/langmeta"
)

// ---------------------------------------------------------------------------
// Model aliases
// ---------------------------------------------------------------------------

// modelAliases maps short model names to concrete identifiers. Unrecognized
// names pass through verbatim, so new model ids work without code changes.
var modelAliases = map[string]string{
	"haiku":  "claude-3-5-haiku-20241022",
	"sonnet": "claude-3-5-sonnet-20241022",
	"opus":   "claude-opus-4-20250514",
}

// ResolveModel resolves a model alias to its full identifier.
func ResolveModel(name string) string {
	if full, ok := modelAliases[name]; ok {
		return full
	}
	return name
}

// ---------------------------------------------------------------------------
// Auto-translate policy
// ---------------------------------------------------------------------------

// SelectTarget picks the translation direction for auto-translate mode.
// The detected language becomes the source; text already in the user's
// native language is translated to English, everything else into the native
// language. When the native language is English and the text is detected as
// English this yields an English-to-English identity translation; that
// behavior is intentional and preserved.
func SelectTarget(text, nativeLanguage string) (source, target string) {
	source = detect.Detect(text)
	if source == nativeLanguage {
		return source, "en"
	}
	return source, nativeLanguage
}

// ---------------------------------------------------------------------------
// Translator
// ---------------------------------------------------------------------------

// previewLimit caps progress previews of streamed text.
const previewLimit = 50

// Options controls translation behavior.
type Options struct {
	// Model is a model name or alias (haiku, sonnet, opus, or full id).
	Model string
	// Debug enables detailed stream tracing via OnLog.
	Debug bool
	// Quiet suppresses progress callbacks.
	Quiet bool
	// OnProgress receives human-readable status updates while the response
	// stream is consumed. costUSD is the cumulative request cost when the
	// agent reports one, zero otherwise. The callback is observational only.
	OnProgress func(message string, costUSD float64)
	// OnLog emits debug log lines (diagnostic stream, never stdout).
	OnLog func(format string, args ...any)
}

// Translator issues translation requests to an external agent.
type Translator struct {
	sender agent.Sender
	model  string
	opts   Options
}

// New creates a Translator. The model alias is resolved once here.
func New(sender agent.Sender, opts Options) *Translator {
	return &Translator{
		sender: sender,
		model:  ResolveModel(opts.Model),
		opts:   opts,
	}
}

// Model returns the resolved model identifier in use.
func (t *Translator) Model() string {
	return t.model
}

func (t *Translator) progress(message string, costUSD float64) {
	if t.opts.Quiet || t.opts.OnProgress == nil {
		return
	}
	t.opts.OnProgress(message, costUSD)
}

func (t *Translator) debugf(format string, args ...any) {
	if t.opts.Debug && t.opts.OnLog != nil {
		t.opts.OnLog(format, args...)
	}
}

// buildPrompt constructs the single instruction sent to the agent.
func buildPrompt(text, sourceName, targetName string) string {
	return fmt.Sprintf(`Translate the following text from %s to %s.
Output ONLY the translation, without any explanations, comments, or additional text.

Text to translate:
%s`, sourceName, targetName, text)
}

// truncatePreview shortens s to previewLimit characters for progress display.
func truncatePreview(s string) string {
	r := []rune(s)
	if len(r) <= previewLimit {
		return s
	}
	return string(r[:previewLimit-3]) + "..."
}

// Translate translates text into targetLanguage. An empty sourceLanguage is
// auto-detected. The result is the last assistant turn of the response
// stream, trimmed; a stream with no textual turns yields "" without error.
// Transport errors propagate to the caller; there are no retries.
func (t *Translator) Translate(ctx context.Context, text, targetLanguage, sourceLanguage string) (string, error) {
	if sourceLanguage == "" {
		sourceLanguage = detect.Detect(text)
	}

	sourceName := langmeta.Name(sourceLanguage)
	targetName := langmeta.Name(targetLanguage)
	prompt := buildPrompt(text, sourceName, targetName)

	t.debugf("translating %s -> %s with model %s", sourceName, targetName, t.model)
	if t.opts.Debug {
		t.debugf("statistical detection (advisory): %s", detect.Describe(text))
	}

	stream, err := t.sender.Send(ctx, prompt, t.model)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	return t.consume(ctx, stream)
}

// AutoTranslate picks the translation direction from the detected language
// and the user's native language, then translates.
func (t *Translator) AutoTranslate(ctx context.Context, text, nativeLanguage string) (string, error) {
	source, target := SelectTarget(text, nativeLanguage)
	t.debugf("auto-translate: detected %s, native %s, target %s", source, nativeLanguage, target)
	return t.Translate(ctx, text, target, source)
}

// consume drains the event stream until the terminal result event (or stream
// end), accumulating assistant text per turn. One turn is a contiguous burst
// of text; it is closed by an explicit turn boundary, by any non-text event,
// or by the end of the stream.
func (t *Translator) consume(ctx context.Context, stream agent.Stream) (string, error) {
	var (
		turns       []string
		turn        strings.Builder
		accumulated strings.Builder
		count       int
	)

	closeTurn := func() {
		if turn.Len() > 0 {
			turns = append(turns, turn.String())
			turn.Reset()
		}
	}

	for {
		ev, err := stream.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		count++
		t.debugf("message #%d: %s", count, ev.Kind)

		switch ev.Kind {
		case agent.KindText:
			turn.WriteString(ev.Text)
			accumulated.WriteString(ev.Text)
			t.progress("Translating: "+truncatePreview(strings.TrimSpace(accumulated.String())), 0)
			t.debugf("  [TEXT] %s", truncatePreview(ev.Text))
			if ev.TurnEnd {
				closeTurn()
			}

		case agent.KindToolUse:
			closeTurn()
			t.progress("Using tool: "+ev.Tool, 0)
			t.debugf("  [TOOL] %s", ev.Tool)

		case agent.KindUserTurn:
			closeTurn()
			t.debugf("  [USER] user message received")

		case agent.KindResult:
			closeTurn()
			if ev.CostUSD > 0 {
				t.progress(fmt.Sprintf("Translation complete (Cost: $%.6f)", ev.CostUSD), ev.CostUSD)
				t.debugf("  [RESULT] complete, cost $%.6f", ev.CostUSD)
			} else {
				t.progress("Translation complete", 0)
				t.debugf("  [RESULT] complete")
			}
			t.debugf("total messages: %d", count)
			// Terminal event: stop consuming.
			if len(turns) == 0 {
				return "", nil
			}
			return strings.TrimSpace(turns[len(turns)-1]), nil
		}
	}

	// Stream ended without a result event; treat what arrived as final.
	closeTurn()
	t.debugf("stream ended without result event after %d messages", count)
	if len(turns) == 0 {
		return "", nil
	}
	return strings.TrimSpace(turns[len(turns)-1]), nil
}
