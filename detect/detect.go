// Package detect implements heuristic source-language detection for
// translation input. The classifier is deliberately small: it only has to
// decide the auto-translate direction, not produce a full language profile.
package detect

import (
	"fmt"

	"github.com/abadojack/whatlanggo"
)

// Unicode ranges that identify Japanese text.
var japaneseRanges = [...]struct{ lo, hi rune }{
	{0x3040, 0x309F}, // Hiragana
	{0x30A0, 0x30FF}, // Katakana
	{0x4E00, 0x9FFF}, // CJK Unified Ideographs
}

// Detect classifies text as "ja" or "en".
//
// Any character in the Hiragana, Katakana, or CJK Unified Ideographs ranges
// makes the whole input "ja"; everything else is "en". The function is total:
// there is no "unknown" result.
func Detect(text string) string {
	for _, r := range text {
		for _, rng := range japaneseRanges {
			if r >= rng.lo && r <= rng.hi {
				return "ja"
			}
		}
	}
	return "en"
}

// Describe returns a human-readable classification of text from the
// whatlanggo statistical detector. It is advisory output for debug logging
// only and never influences Detect or the auto-translate policy.
func Describe(text string) string {
	info := whatlanggo.Detect(text)
	return fmt.Sprintf("%s (script %s, confidence %.2f)",
		info.Lang.String(), whatlanggo.Scripts[info.Script], info.Confidence)
}
