// Package main provides the CLI entrypoint for bytesurge.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/bytesurge/internal/catalog"
	"github.com/verte-zerg/bytesurge/internal/config"
	"github.com/verte-zerg/bytesurge/internal/logging"
	"github.com/verte-zerg/bytesurge/internal/model"
	"github.com/verte-zerg/bytesurge/internal/rng"
	"github.com/verte-zerg/bytesurge/internal/session"
	"github.com/verte-zerg/bytesurge/internal/sink"
	"github.com/verte-zerg/bytesurge/internal/stats"
	"github.com/verte-zerg/bytesurge/internal/tui"
)

const (
	defaultSpeed    = 6.0
	defaultLang     = catalog.LangAll
	defaultLogLevel = "info"

	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
)

var (
	simSpeed    float64
	simLang     string
	simSeed     int64
	simTUI      bool
	logLevel    string
	logFile     string
	showSummary bool

	templatesLang string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bytesurge",
		Short:         "Simulate a programmer typing code in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runSimulateCmd,
	}

	rootCmd.Flags().Float64Var(&simSpeed, "speed", defaultSpeed, "speed multiplier; 2 halves every delay")
	rootCmd.Flags().StringVar(&simLang, "lang", defaultLang, "template language: go, rust or all")
	rootCmd.Flags().Int64Var(&simSeed, "seed", 0, "random seed for a reproducible run (0 picks one)")
	rootCmd.Flags().BoolVar(&simTUI, "tui", false, "render in a full-screen interface")
	rootCmd.Flags().StringVar(&logLevel, "log-level", defaultLogLevel, "diagnostic log level: debug, info, warn or error")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write JSON diagnostics to a rotating file")
	rootCmd.Flags().BoolVar(&showSummary, "summary", true, "print a session summary on exit")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTemplatesCmd())

	return rootCmd
}

func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyFloatConfig(cmd, "speed", &simSpeed, fileCfg.Simulator.Speed)
	applyStringConfig(cmd, "lang", &simLang, fileCfg.Simulator.Lang)
	applyInt64Config(cmd, "seed", &simSeed, fileCfg.Simulator.Seed)
	applyBoolConfig(cmd, "tui", &simTUI, fileCfg.Simulator.TUI)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)

	cfg := model.Config{
		Speed:    simSpeed,
		Lang:     strings.ToLower(strings.TrimSpace(simLang)),
		Seed:     simSeed,
		TUI:      simTUI,
		LogLevel: logLevel,
		LogFile:  logFile,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func runSimulateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	cat, err = cat.Filter(cfg.Lang)
	if err != nil {
		return err
	}

	console := consoleFor(os.Stderr, cfg.TUI, term.IsTerminal(int(os.Stdout.Fd())), term.IsTerminal(int(os.Stderr.Fd())))
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Console: console, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	src := rng.New()
	if cfg.Seed != 0 {
		src = rng.NewSeeded(cfg.Seed)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tally := stats.NewTally()
	opts := session.Options{
		Speed:   cfg.Speed,
		Catalog: cat,
		Source:  src,
		Logger:  logger,
	}
	if cfg.TUI {
		err = runTUI(ctx, opts, tally)
	} else {
		err = runPlain(ctx, opts, tally)
	}

	total := tally.Total()
	logger.Info("session summary",
		zap.Int("blocks", total.Blocks),
		zap.Int("keystrokes", total.Keystrokes),
		zap.Int("typos", total.Typos),
		zap.Int("refactors", total.Refactors),
		zap.Int("switches", tally.Switches()),
		zap.Duration("simulated", total.Elapsed),
	)
	if err != nil {
		logger.Error("session failed", zap.Error(err))
		return err
	}
	if showSummary {
		if rerr := stats.RenderSummary(os.Stderr, tally); rerr != nil {
			return fmt.Errorf("failed to write summary: %w", rerr)
		}
	}
	return nil
}

// consoleFor returns the console log writer, or nil when log lines would land
// on the screen the simulator is drawing on. The log file is unaffected.
func consoleFor(stderr io.Writer, tui, stdoutTTY, stderrTTY bool) io.Writer {
	if tui || (stdoutTTY && stderrTTY) {
		return nil
	}
	return stderr
}

func runPlain(ctx context.Context, opts session.Options, tally *stats.Tally) error {
	out := sink.NewTerminal(os.Stdout)
	opts.Sink = out
	opts.Observer = tally
	loop, err := session.New(opts)
	if err != nil {
		return err
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprint(os.Stdout, hideCursor)
		defer fmt.Fprint(os.Stdout, "\n"+showCursor)
	}
	return loop.RunUntil(ctx)
}

func runTUI(ctx context.Context, opts session.Options, tally *stats.Tally) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	view := tui.NewModel(opts.Speed, model.Careful)
	program := tea.NewProgram(view, tea.WithAltScreen())
	out := tui.NewSink(program)
	opts.Sink = out
	opts.Observer = session.Observers{tally, out}
	loop, err := session.New(opts)
	if err != nil {
		return err
	}

	var (
		wg      sync.WaitGroup
		loopErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		loopErr = loop.RunUntil(ctx)
		program.Quit()
	}()

	_, runErr := program.Run()
	cancel()
	wg.Wait()
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run TUI: %w", runErr)
	}
	return loopErr
}

func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the built-in code templates",
		Args:  cobra.NoArgs,
		RunE:  runTemplatesCmd,
	}
	cmd.Flags().StringVar(&templatesLang, "lang", defaultLang, "template language: go, rust or all")
	return cmd
}

func runTemplatesCmd(cmd *cobra.Command, _ []string) error {
	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	cat, err = cat.Filter(templatesLang)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(cat.Templates))
	for _, tpl := range cat.Templates {
		placeholders := make([]string, 0, len(tpl.Placeholders))
		for name, pool := range tpl.Placeholders {
			placeholders = append(placeholders, name+"="+pool)
		}
		sort.Strings(placeholders)
		rows = append(rows, []string{
			tpl.Lang,
			tpl.Name,
			fmt.Sprintf("%d", strings.Count(tpl.Body, "\n")+1),
			strings.Join(placeholders, " "),
		})
	}
	if err := stats.WriteTable(cmd.OutOrStdout(), []string{"Lang", "Name", "Lines", "Placeholders"}, rows, map[int]bool{2: true}); err != nil {
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
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# bytesurge configuration
# Uncomment a value to enable it. CLI flags override config values.

[simulator]
# speed = %.1f            # Speed multiplier (>= %.2f)
# lang = %q             # Template language: go, rust or all
# seed = 0                # Fixed random seed; 0 picks a new one per run
# tui = false             # Full-screen interface

[log]
# level = %q          # debug, info, warn or error
# file = %q
`,
		defaultSpeed,
		model.MinSpeed,
		defaultLang,
		defaultLogLevel,
		config.DefaultLogPath(),
	)
}

func validateConfig(cfg model.Config) error {
	if math.IsNaN(cfg.Speed) || math.IsInf(cfg.Speed, 0) || cfg.Speed < model.MinSpeed {
		return fmt.Errorf("--speed must be >= %.2f", model.MinSpeed)
	}
	switch cfg.Lang {
	case "", catalog.LangAll, "go", "rust":
	default:
		return fmt.Errorf("--lang must be go, rust or all")
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	return nil
}
