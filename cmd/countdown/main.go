// Package main provides the CLI entrypoint for countdown.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/countdown/internal/config"
	"github.com/verte-zerg/countdown/internal/countdown"
	"github.com/verte-zerg/countdown/internal/logging"
	"github.com/verte-zerg/countdown/internal/model"
	"github.com/verte-zerg/countdown/internal/persist"
	"github.com/verte-zerg/countdown/internal/report"
	"github.com/verte-zerg/countdown/internal/store"
	"github.com/verte-zerg/countdown/internal/tui"
	"github.com/verte-zerg/countdown/internal/watch"
)

// flagValues holds the values bound to command-line flags.
type flagValues struct {
	ConfigPath  string
	DB          string
	Target      string
	Title       string
	Celebration string
	FontSize    int
	LogFile     string
	Verbose     bool
	Once        bool
}

var (
	flags flagValues

	stateFormat string
	resetYes    bool
	resetAll    bool
)

// runConfig is the effective configuration after merging the config file
// under the flags.
type runConfig struct {
	Target      time.Time
	Title       string
	Celebration string
	FontSize    int
	DB          string
	LogFile     string
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "countdown",
		Short:         "Full-screen New Year countdown",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runCountdownCmd,
	}

	rootCmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", config.DefaultConfigPath(), "config file path")
	rootCmd.PersistentFlags().StringVar(&flags.DB, "db", config.DefaultDBPath(), "state database path")
	rootCmd.PersistentFlags().StringVar(&flags.Target, "target", "", "target instant (YYYY, YYYY-MM-DD or RFC3339; default: next New Year)")
	rootCmd.Flags().StringVar(&flags.Title, "title", "", "heading shown above the countdown")
	rootCmd.Flags().StringVar(&flags.Celebration, "celebration", "", "message shown when the countdown reaches zero")
	rootCmd.Flags().IntVar(&flags.FontSize, "font-size", model.DefaultFontSize, "initial font size when no state is saved (20-200)")
	rootCmd.Flags().StringVar(&flags.LogFile, "log-file", config.DefaultLogPath(), "log file path (empty disables logging)")
	rootCmd.Flags().BoolVar(&flags.Verbose, "verbose", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&flags.Once, "once", false, "print the remaining time once and exit")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStateCmd())
	rootCmd.AddCommand(newResetCmd())

	return rootCmd
}

func runCountdownCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(flags.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := resolveConfig(cmd, flags, fileCfg, time.Now())
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Path: cfg.LogFile, Verbose: flags.Verbose})
	if err != nil {
		logErrf("logging disabled: %v\n", err)
		logger = zap.NewNop()
	}
	defer func() { _ = logger.Sync() }()

	st, err := store.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	helper := persist.New(st, logger)
	ctrl := countdown.New(helper.LoadState(cfg.FontSize), cfg.Target, helper, nil)
	logger.Info("countdown started",
		zap.Time("target", cfg.Target),
		zap.Stringer("mode", ctrl.Snapshot().Mode),
		zap.String("db", cfg.DB),
	)

	stdout := int(os.Stdout.Fd())
	if flags.Once || !term.IsTerminal(stdout) {
		return printOnce(cmd.OutOrStdout(), ctrl, cfg)
	}

	width, height, err := term.GetSize(stdout)
	if err != nil {
		width, height = 0, 0
	}
	m := tui.NewModel(ctrl, tui.Options{
		Title:       cfg.Title,
		Celebration: cfg.Celebration,
		Logger:      logger,
		Width:       width,
		Height:      height,
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startConfigWatch(ctx, cmd, program, logger)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	helper.SaveState(ctrl.Snapshot())
	return nil
}

// startConfigWatch forwards config file edits to the running program. A
// watcher that cannot start only costs live reload.
func startConfigWatch(ctx context.Context, cmd *cobra.Command, program *tea.Program, logger *zap.Logger) {
	w, err := watch.New(flags.ConfigPath, logger)
	if err != nil {
		logger.Warn("config watch disabled", zap.Error(err))
		return
	}
	go func() {
		defer func() { _ = w.Close() }()
		w.Run(ctx, func() {
			fileCfg, err := config.LoadConfig(flags.ConfigPath)
			if err != nil {
				logger.Warn("failed to reload config", zap.Error(err))
				return
			}
			cfg, err := resolveConfig(cmd, flags, fileCfg, time.Now())
			if err != nil {
				logger.Warn("ignoring reloaded config", zap.Error(err))
				return
			}
			logger.Info("config reloaded", zap.String("path", flags.ConfigPath))
			program.Send(tui.ReloadMsg{Target: cfg.Target, Title: cfg.Title, Celebration: cfg.Celebration})
		})
	}()
}

func printOnce(w io.Writer, ctrl *countdown.Controller, cfg runConfig) error {
	state := ctrl.Snapshot()
	if !state.Manual() && !state.Paused {
		ctrl.Tick()
		state = ctrl.Snapshot()
	}
	line := state.Remaining.String()
	if ctrl.Finished() {
		line = celebrationText(cfg)
	}
	if _, err := fmt.Fprintf(w, "%s: %s\n", titleText(cfg), line); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func titleText(cfg runConfig) string {
	if cfg.Title != "" {
		return cfg.Title
	}
	return fmt.Sprintf("Countdown to %d", cfg.Target.Year())
}

func celebrationText(cfg runConfig) string {
	if cfg.Celebration != "" {
		return cfg.Celebration
	}
	return fmt.Sprintf("HAPPY %d!", cfg.Target.Year())
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
	path := flags.ConfigPath
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
		return fmt.Errorf("editor command is empty")
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

func newStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show persisted countdown state",
		Args:  cobra.NoArgs,
		RunE:  runStateCmd,
	}
	cmd.Flags().StringVar(&stateFormat, "format", report.FormatTableName, "output format: table, json or yaml")
	return cmd
}

func runStateCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(flags.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := resolveConfig(cmd, flags, fileCfg, time.Now())
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	settings, err := st.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list state: %w", err)
	}
	state := persist.New(st, nil).LoadState(cfg.FontSize)
	doc := report.NewStateDoc(state, cfg.Target)
	if err := report.WriteState(cmd.OutOrStdout(), stateFormat, doc, settings); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear persisted countdown state",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVar(&resetYes, "yes", false, "skip the confirmation prompt")
	cmd.Flags().BoolVar(&resetAll, "all", false, "remove every stored setting, not only the countdown keys")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(flags.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	dbPath := flags.DB
	applyStringConfig(cmd, "db", &dbPath, fileCfg.Countdown.DB)

	if !resetYes {
		ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Reset saved countdown state?")
		if err != nil {
			return err
		}
		if !ok {
			logErrln("Reset cancelled.")
			return nil
		}
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	if err := clearState(cmd.Context(), st, resetAll); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), "Saved state cleared."); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// clearState removes the countdown keys, or the whole settings table when
// all is set.
func clearState(ctx context.Context, st *store.Store, all bool) error {
	if all {
		if err := st.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear state: %w", err)
		}
		return nil
	}
	for _, key := range persist.Keys {
		if err := st.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	return nil
}

// confirm asks a yes/no question. Anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s [y/N] ", question); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// resolveConfig merges fileCfg under the flags in base. Flags set on the
// command line win.
func resolveConfig(cmd *cobra.Command, base flagValues, fileCfg config.FileConfig, now time.Time) (runConfig, error) {
	v := base
	applyStringConfig(cmd, "target", &v.Target, fileCfg.Countdown.Target)
	applyStringConfig(cmd, "title", &v.Title, fileCfg.Countdown.Title)
	applyStringConfig(cmd, "celebration", &v.Celebration, fileCfg.Countdown.Celebration)
	applyIntConfig(cmd, "font-size", &v.FontSize, fileCfg.Countdown.FontSize)
	applyStringConfig(cmd, "db", &v.DB, fileCfg.Countdown.DB)
	applyStringConfig(cmd, "log-file", &v.LogFile, fileCfg.Countdown.LogFile)

	if err := validateConfig(v); err != nil {
		return runConfig{}, err
	}

	target := countdown.DefaultTarget(now)
	if strings.TrimSpace(v.Target) != "" {
		parsed, err := config.ParseTarget(v.Target, now.Location())
		if err != nil {
			return runConfig{}, fmt.Errorf("invalid --target value: %w", err)
		}
		target = parsed
	}

	return runConfig{
		Target:      target,
		Title:       strings.TrimSpace(v.Title),
		Celebration: strings.TrimSpace(v.Celebration),
		FontSize:    v.FontSize,
		DB:          v.DB,
		LogFile:     v.LogFile,
	}, nil
}

func validateConfig(v flagValues) error {
	if !model.ValidFontSize(v.FontSize) {
		return fmt.Errorf("--font-size must be between %d and %d", model.MinFontSize, model.MaxFontSize)
	}
	if strings.TrimSpace(v.DB) == "" {
		return fmt.Errorf("--db must not be empty")
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if flag := cmd.Flags().Lookup(name); flag != nil && flag.Changed {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if flag := cmd.Flags().Lookup(name); flag != nil && flag.Changed {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# countdown configuration
# Uncomment a value to enable it. CLI flags override config values.
# Edits are picked up by a running countdown.

[countdown]
# target = "2027-01-01"          # YYYY, YYYY-MM-DD or RFC3339 (default: next New Year)
# title = "Countdown to 2027"    # Heading above the countdown
# celebration = "HAPPY 2027!"    # Message shown at zero
# font-size = %d                 # Initial font size when no state is saved (%d-%d)
# db = %q
# log-file = %q
`,
		model.DefaultFontSize,
		model.MinFontSize,
		model.MaxFontSize,
		config.DefaultDBPath(),
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
