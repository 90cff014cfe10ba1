// Package main provides the CLI entrypoint for autotype.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/autotype/internal/audio"
	"github.com/verte-zerg/autotype/internal/audio/tone"
	"github.com/verte-zerg/autotype/internal/config"
	"github.com/verte-zerg/autotype/internal/hotkey"
	"github.com/verte-zerg/autotype/internal/hotkey/hook"
	"github.com/verte-zerg/autotype/internal/keys"
	"github.com/verte-zerg/autotype/internal/keys/robot"
	"github.com/verte-zerg/autotype/internal/logging"
	"github.com/verte-zerg/autotype/internal/model"
	"github.com/verte-zerg/autotype/internal/pacing"
	"github.com/verte-zerg/autotype/internal/stats"
	"github.com/verte-zerg/autotype/internal/store"
	"github.com/verte-zerg/autotype/internal/textsrc"
	"github.com/verte-zerg/autotype/internal/tui"
	"github.com/verte-zerg/autotype/internal/typist"
)

const (
	plainPollInterval = 200 * time.Millisecond
	hotkeyDebounce    = 250 * time.Millisecond
)

var (
	typeText    string
	typeFile    string
	typeSnippet string
	typePlain   bool
	typeDryRun  bool

	settings config.Settings
)

// runOptions is the resolved input of a typing run.
type runOptions struct {
	typing model.TypingConfig
	hotkey hotkey.Chord
	cue    string
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "autotype",
		Short:         "Type text into the focused window like a human would",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runTypeCmd,
	}

	addTypingFlags(rootCmd)
	rootCmd.Flags().StringVar(&typeText, "text", "", "text to type")
	rootCmd.Flags().StringVar(&typeFile, "file", "", "file with text to type ('-' reads stdin)")
	rootCmd.Flags().StringVar(&typeSnippet, "snippet", "", "name of a saved snippet to type")
	rootCmd.Flags().StringVar(&settings.Hotkey, "hotkey", hotkey.DefaultSpec, "start/stop hotkey chord")
	rootCmd.Flags().StringVar(&settings.Cue, "cue", audio.KindTone, "start/end cue: tone, system or off")
	rootCmd.Flags().BoolVar(&typePlain, "plain", false, "print progress to stderr instead of the status view")
	rootCmd.Flags().BoolVar(&typeDryRun, "dry-run", false, "write keystrokes to stdout and start immediately")
	rootCmd.MarkFlagsMutuallyExclusive("text", "file", "snippet")
	rootCmd.MarkFlagsOneRequired("text", "file", "snippet")

	rootCmd.PersistentFlags().StringVar(&settings.LogLevel, "log-level", logging.DefaultLevel, "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&settings.LogFile, "log-file", "", "JSON log file (rotated)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSnippetCmd())
	rootCmd.AddCommand(newEstimateCmd())

	return rootCmd
}

func addTypingFlags(cmd *cobra.Command) {
	settings.BindTypingFlags(cmd.Flags(), pacing.DefaultWPM)
	cmd.MarkFlagsMutuallyExclusive("wpm", "duration")
}

func runTypeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	settings.Merge(cmd.Flags(), fileCfg)

	useTUI := !typePlain && !typeDryRun && term.IsTerminal(int(os.Stdout.Fd()))
	log, flush, err := newLogger(!useTUI)
	if err != nil {
		return err
	}
	defer flush()

	text, err := resolveText(cmd.Context())
	if err != nil {
		return err
	}
	opts, err := resolveOptions(len([]rune(text)))
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		logErrln("Nothing to type.")
		return nil
	}

	var injector keys.Injector = robot.New()
	if typeDryRun {
		injector = keys.NewWriter(os.Stdout)
	}
	ctrl := typist.New(text, opts.typing, injector,
		typist.WithLogger(log),
		typist.WithCue(newCue(opts.cue, log)),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go ctrl.Run(ctx)

	if typeDryRun {
		ctrl.Post(typist.EventToggle)
	} else {
		listener := hook.New(log)
		toggle := hotkey.Debounce(func() { ctrl.Post(typist.EventToggle) }, hotkeyDebounce, nil)
		if err := listener.Register(opts.hotkey.String(), toggle); err != nil {
			return fmt.Errorf("failed to register hotkey: %w", err)
		}
		if err := listener.Start(); err != nil {
			return fmt.Errorf("failed to start hotkey listener: %w", err)
		}
		defer listener.UnregisterAll()
		printInstructions(opts, len([]rune(text)))
	}

	if useTUI {
		view := tui.NewModel(ctrl, text, opts.hotkey.String())
		if err := tui.Run(view); err != nil {
			return err
		}
	} else {
		waitPlain(ctx, ctrl)
	}

	// A second interrupt while the worker winds down kills the process.
	stop()
	return finish(ctrl)
}

// finish stops a running worker after an interrupt, waits for it, and
// prints the report.
func finish(ctrl *typist.Controller) error {
	rep, started, err := ctrl.Shutdown(context.Background())
	if !started {
		logErrln("Interrupted before typing started.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to wait for worker: %w", err)
	}
	if err := stats.RenderReport(os.Stderr, rep); err != nil {
		logErrf("failed to print report: %v\n", err)
	}
	if rep.Outcome == model.OutcomeFailed {
		return fmt.Errorf("typing failed: %w", rep.Err)
	}
	return nil
}

func waitPlain(ctx context.Context, ctrl *typist.Controller) {
	ticker := time.NewTicker(plainPollInterval)
	defer ticker.Stop()
	for !ctrl.IsDone() {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func printInstructions(opts runOptions, chars int) {
	logErrf("Ready to type %d characters (%.3fs base delay per char).\n", chars, opts.typing.BaseDelay)
	logErrf("Focus the target window, then press %s to start. Press it again to stop.\n", opts.hotkey)
	logErrln("Press Ctrl+C here to quit.")
}

func resolveText(ctx context.Context) (string, error) {
	switch {
	case typeText != "":
		return textsrc.Sanitize(typeText), nil
	case typeFile != "":
		text, err := textsrc.Load(typeFile, os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to load text: %w", err)
		}
		return text, nil
	case typeSnippet != "":
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return "", fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		snip, err := st.GetSnippet(ctx, typeSnippet)
		if err != nil {
			return "", fmt.Errorf("failed to load snippet: %w", err)
		}
		return textsrc.Sanitize(snip.Text), nil
	default:
		return "", fmt.Errorf("one of --text, --file or --snippet is required")
	}
}

func resolveOptions(textLength int) (runOptions, error) {
	var opts runOptions
	wpm, duration, err := settings.Speed()
	if err != nil {
		return runOptions{}, err
	}
	opts.typing = settings.TypingConfig(pacing.BaseDelay(textLength, wpm, duration))
	if err := opts.typing.Validate(); err != nil {
		return runOptions{}, err
	}
	chord, err := hotkey.ParseSpec(settings.Hotkey)
	if err != nil {
		return runOptions{}, err
	}
	opts.hotkey = chord
	cue, err := audio.ParseKind(settings.Cue)
	if err != nil {
		return runOptions{}, &model.ConfigError{Field: "cue", Reason: err.Error()}
	}
	opts.cue = cue
	return opts, nil
}

func newLogger(console bool) (*zap.Logger, func(), error) {
	cfg := logging.Config{Level: settings.LogLevel, File: settings.LogFile}
	if console {
		cfg.Console = os.Stderr
	}
	log, flush, err := logging.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return log, flush, nil
}

func newCue(kind string, log *zap.Logger) audio.Cue {
	switch kind {
	case audio.KindTone:
		player, err := tone.New(log)
		if err != nil {
			log.Warn("audio device unavailable, cues disabled", zap.Error(err))
			return audio.Nop{}
		}
		return player
	case audio.KindSystem:
		return audio.NewSystem(log)
	default:
		return audio.Nop{}
	}
}

func newEstimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Print the expected typing time for a text without typing it",
		Args:  cobra.NoArgs,
		RunE:  runEstimateCmd,
	}
	addTypingFlags(cmd)
	cmd.Flags().StringVar(&typeText, "text", "", "text to estimate")
	cmd.Flags().StringVar(&typeFile, "file", "", "file with text ('-' reads stdin)")
	cmd.Flags().StringVar(&typeSnippet, "snippet", "", "name of a saved snippet")
	cmd.MarkFlagsMutuallyExclusive("text", "file", "snippet")
	cmd.MarkFlagsOneRequired("text", "file", "snippet")
	return cmd
}

func runEstimateCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	settings.Merge(cmd.Flags(), fileCfg)

	text, err := resolveText(cmd.Context())
	if err != nil {
		return err
	}
	chars := len([]rune(text))
	opts, err := resolveOptions(chars)
	if err != nil {
		return err
	}
	expected := pacing.Estimate(opts.typing, text)
	rows := []stats.EstimateRow{
		{Label: "Characters", Value: fmt.Sprintf("%d", chars)},
		{Label: "Base delay", Value: fmt.Sprintf("%.3fs", opts.typing.BaseDelay)},
		{Label: "Expected time", Value: expected.Round(100 * time.Millisecond).String()},
	}
	if err := stats.RenderEstimate(cmd.OutOrStdout(), rows); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return errors.New("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# autotype configuration
# Uncomment a value to enable it. CLI flags override config values.

[typing]
# wpm = %.0f                    # Words per minute (set either wpm or duration)
# duration = 60               # Total typing time in seconds
# mistake-prob = %.2f         # Probability of a mistake before each character (0-1)
# mistake-len-min = %d         # Minimum mistake length
# mistake-len-max = %d         # Maximum mistake length
# random-delay-char = %.2f    # Extra delay after each non-space character (seconds)
# random-delay-space = %.2f    # Extra delay after each space (seconds)
# random-jitter = %.2f        # Upper bound of random jitter per character (seconds)
# hotkey = %q           # Start/stop chord

[audio]
# cue = %q                # tone, system or off

[log]
# level = %q              # debug, info, warn or error
# file = %q
`,
		pacing.DefaultWPM,
		config.DefaultMistakeProb,
		config.DefaultMistakeLenMin,
		config.DefaultMistakeLenMax,
		config.DefaultRandomDelayChar,
		config.DefaultRandomDelaySpace,
		config.DefaultRandomJitter,
		hotkey.DefaultSpec,
		audio.KindTone,
		logging.DefaultLevel,
		config.DefaultLogPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
