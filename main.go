// cctr — Claude-powered CLI translation tool.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cctr-tools/cctr/claudecli"
	"github.com/cctr-tools/cctr/i18n"
	"github.com/cctr-tools/cctr/langmeta"
	"github.com/cctr-tools/cctr/settings"
	"github.com/cctr-tools/cctr/translate"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	infoTag  = color.New(color.FgBlue).Sprint("[INFO]")
	okTag    = color.New(color.FgGreen).Sprint("[OK]")
	errTag   = color.New(color.FgRed).Sprint("[ERROR]")
	debugTag = color.New(color.Faint).Sprint("[DEBUG]")
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, infoTag+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, okTag+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, errTag+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

type cliArgs struct {
	targetLanguage  string
	sourceLanguage  string
	model           string
	showConfig      bool
	setNativeLang   string
	setDefaultModel string
	showVersion     bool
	debug           bool
	quiet           bool
}

func newRootCmd() *cobra.Command {
	var a cliArgs

	root := &cobra.Command{
		Use:   "cctr [text]",
		Short: "Claude-powered CLI translation tool",
		Long: `cctr — Claude-powered CLI translation tool.

Translates text using the Claude Code CLI agent. Source language is detected
automatically; without --to, the target is chosen from your configured native
language (text in your native language goes to English, everything else into
your native language).

Examples:
  # Translate from stdin (auto-detect language)
  echo "Hello, world!" | cctr

  # Translate from a command line argument
  cctr "こんにちは、世界！"

  # Specify model
  cctr --model sonnet "Translate this text"

  # Specify target language explicitly
  cctr --to ja "Hello, world!"

  # Show configuration
  cctr --show-config

  # Set native language
  cctr --set-native-lang ja`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(a, args)
		},
	}

	root.Flags().StringVar(&a.targetLanguage, "to", "", "Target language code (e.g. en, ja, zh)")
	root.Flags().StringVar(&a.sourceLanguage, "from", "", "Source language code (auto-detected if not provided)")
	root.Flags().StringVarP(&a.model, "model", "m", "", "Model to use (haiku, sonnet, opus, or full model name)")
	root.Flags().BoolVar(&a.showConfig, "show-config", false, "Show current configuration")
	root.Flags().StringVar(&a.setNativeLang, "set-native-lang", "", "Set native language in configuration")
	root.Flags().StringVar(&a.setDefaultModel, "set-default-model", "", "Set default model in configuration")
	root.Flags().BoolVarP(&a.showVersion, "version", "v", false, "Show version information")
	root.Flags().BoolVar(&a.debug, "debug", false, "Enable debug output")
	root.Flags().BoolVarP(&a.quiet, "quiet", "q", false, "Suppress progress messages")

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// Run
// ---------------------------------------------------------------------------

func run(a cliArgs, args []string) error {
	debugf := func(format string, fargs ...any) {}
	if a.debug {
		debugf = func(format string, fargs ...any) {
			fmt.Fprintf(os.Stderr, debugTag+" "+format+"\n", fargs...)
		}
	}
	debugf("starting cctr %s", version)

	if a.showVersion {
		fmt.Printf("cctr version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		return nil
	}

	cfg, err := settings.Load()
	if err != nil {
		return err
	}
	debugf("config: native_language=%s, default_model=%s", cfg.NativeLanguage(), cfg.DefaultModel())

	if a.showConfig {
		showConfig(cfg)
		return nil
	}
	if a.setNativeLang != "" {
		if err := cfg.SetNativeLanguage(a.setNativeLang); err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", i18n.T("Native language set to"), a.setNativeLang)
		return nil
	}
	if a.setDefaultModel != "" {
		if err := cfg.SetDefaultModel(a.setDefaultModel); err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", i18n.T("Default model set to"), a.setDefaultModel)
		return nil
	}

	text, err := inputText(args, debugf)
	if err != nil {
		return err
	}

	model := a.model
	if model == "" {
		model = cfg.DefaultModel()
	}
	debugf("using model: %s", model)

	// Ctrl-C cancels the in-flight agent request.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		cancel()
	}()

	result, err := translateText(ctx, a, cfg, model, text, debugf)
	if err != nil {
		return fmt.Errorf("%s: %w", i18n.T("Translation failed"), err)
	}

	if !a.quiet {
		logSuccess("%s", i18n.T("Translation complete"))
	}
	fmt.Println(result)
	return nil
}

// inputText returns the text to translate from the positional argument, or
// from stdin when no argument is given and stdin is not a terminal.
func inputText(args []string, debugf func(string, ...any)) (string, error) {
	if len(args) > 0 {
		text := strings.TrimSpace(args[0])
		if text == "" {
			return "", fmt.Errorf("%s", i18n.T("Error: Empty input text"))
		}
		debugf("input from argument: %q", text)
		return text, nil
	}

	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		fmt.Fprintln(os.Stderr, i18n.T("Usage: cctr <text> or echo <text> | cctr"))
		return "", fmt.Errorf("%s", i18n.T("Error: No input text provided"))
	}

	debugf("reading from stdin")
	data, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("%s", i18n.T("Error: Empty input text"))
	}
	debugf("input from stdin: %q", text)
	return text, nil
}

// translateText wires up the agent transport, progress display, and the
// auto-translate policy, then runs the single translation request.
func translateText(ctx context.Context, a cliArgs, cfg *settings.Config, model, text string, debugf func(string, ...any)) (string, error) {
	client := &claudecli.Client{}
	if a.debug {
		client.DebugLog = debugf
	}

	progress, stopProgress := newProgress(a.quiet)
	defer stopProgress()

	tr := translate.New(client, translate.Options{
		Model:      model,
		Debug:      a.debug,
		Quiet:      a.quiet,
		OnProgress: progress,
		OnLog:      debugf,
	})

	if a.targetLanguage != "" {
		debugf("translating to: %s", a.targetLanguage)
		return tr.Translate(ctx, text, a.targetLanguage, a.sourceLanguage)
	}

	native := cfg.NativeLanguage()
	debugf("auto-translating with native language: %s", native)
	return tr.AutoTranslate(ctx, text, native)
}

// newProgress returns the progress callback and a stop function. On an
// interactive stderr this is an animated spinner whose suffix tracks the
// latest status; otherwise plain stderr lines. Progress never touches stdout.
func newProgress(quiet bool) (func(message string, costUSD float64), func()) {
	if quiet {
		return nil, func() {}
	}

	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return func(message string, _ float64) {
			logInfo("%s", message)
		}, func() {}
	}

	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	sp.Suffix = " " + i18n.T("Translating...")
	_ = sp.Color("cyan")
	sp.Start()

	return func(message string, _ float64) {
			sp.Suffix = " " + message
		}, func() {
			sp.Stop()
		}
}

func showConfig(cfg *settings.Config) {
	native := cfg.NativeLanguage()
	meta := langmeta.Resolve(native)
	display := native
	if meta.Flag != "" {
		display = fmt.Sprintf("%s %s (%s)", meta.Flag, native, meta.Name)
	}

	fmt.Println(i18n.T("Current Configuration:"))
	fmt.Printf("  %s: %s\n", i18n.T("Config file"), cfg.FilePath())
	fmt.Printf("  %s: %s\n", i18n.T("Native language"), display)
	fmt.Printf("  %s: %s\n", i18n.T("Default model"), cfg.DefaultModel())
}
