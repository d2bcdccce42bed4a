package detect

import "testing"

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "ascii latin", in: "Hello, world!", want: "en"},
		{name: "empty", in: "", want: "en"},
		{name: "hiragana", in: "こんにちは", want: "ja"},
		{name: "katakana", in: "カタカナ", want: "ja"},
		{name: "kanji", in: "日本語", want: "ja"},
		{name: "mixed latin and kanji", in: "I like 寿司", want: "ja"},
		{name: "latin with accents", in: "Déjà vu", want: "en"},
		{name: "cyrillic falls back to en", in: "Привет", want: "en"},
		{name: "punctuation only", in: "?!... ", want: "en"},
		{name: "single hiragana among ascii", in: "test の test", want: "ja"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Detect(tc.in); got != tc.want {
				t.Fatalf("Detect(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDetectRangeBoundaries(t *testing.T) {
	// First and last code points of each range are inclusive.
	for _, s := range []string{"぀", "ゟ", "゠", "ヿ", "一", "鿿"} {
		if got := Detect(s); got != "ja" {
			t.Fatalf("Detect(%U) = %q, want ja", []rune(s)[0], got)
		}
	}
	// Immediately outside the ranges.
	for _, s := range []string{"〿", "ꀀ"} {
		if got := Detect(s); got != "en" {
			t.Fatalf("Detect(%U) = %q, want en", []rune(s)[0], got)
		}
	}
}

func TestDescribeIsAdvisoryOnly(t *testing.T) {
	// Describe must never panic and must return something printable;
	// its content is free-form and not asserted further.
	if got := Describe("Hello, world!"); got == "" {
		t.Fatal("Describe returned empty string")
	}
	if got := Describe(""); got == "" {
		t.Fatal("Describe returned empty string for empty input")
	}
}
