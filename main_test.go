package main

import (
	"strings"
	"testing"
)

func noopDebug(string, ...any) {}

func TestInputTextFromArgument(t *testing.T) {
	got, err := inputText([]string{"  Hello, world!  "}, noopDebug)
	if err != nil {
		t.Fatalf("inputText error: %v", err)
	}
	if got != "Hello, world!" {
		t.Fatalf("inputText = %q, want trimmed text", got)
	}
}

func TestInputTextEmptyArgument(t *testing.T) {
	_, err := inputText([]string{"   "}, noopDebug)
	if err == nil {
		t.Fatal("inputText accepted blank argument")
	}
}

func TestRootCmdFlags(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{
		"to", "from", "model", "show-config",
		"set-native-lang", "set-default-model",
		"version", "debug", "quiet",
	} {
		if root.Flags().Lookup(name) == nil {
			t.Fatalf("missing flag --%s", name)
		}
	}

	for flag, short := range map[string]string{
		"model":   "m",
		"version": "v",
		"quiet":   "q",
	} {
		f := root.Flags().Lookup(flag)
		if f.Shorthand != short {
			t.Fatalf("flag --%s shorthand = %q, want %q", flag, f.Shorthand, short)
		}
	}
}

func TestRootCmdRejectsExtraArgs(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"one", "two"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected an error for two positional arguments")
	}
}

func TestRootCmdUsageMentionsStdin(t *testing.T) {
	root := newRootCmd()
	if !strings.Contains(root.Long, "stdin") {
		t.Fatal("long help should document stdin usage")
	}
}
