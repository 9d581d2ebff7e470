// Package main provides the CLI entrypoint for wordgrid.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordgrid/internal/config"
	"github.com/verte-zerg/wordgrid/internal/game"
	"github.com/verte-zerg/wordgrid/internal/grid"
	"github.com/verte-zerg/wordgrid/internal/logging"
	"github.com/verte-zerg/wordgrid/internal/model"
	"github.com/verte-zerg/wordgrid/internal/selection"
	"github.com/verte-zerg/wordgrid/internal/stats"
	"github.com/verte-zerg/wordgrid/internal/statsui"
	"github.com/verte-zerg/wordgrid/internal/store"
	"github.com/verte-zerg/wordgrid/internal/tui"
)

const (
	defaultSize       = 10
	defaultWrongDelay = time.Second
	defaultRule       = "strict"
)

var defaultWords = []string{"AGADIR", "SUD", "OUFELLA", "TRIK", "ATTAHADI"}

var (
	gameSize       int
	gameWords      []string
	gameWordsFile  string
	gameRule       string
	gameWrongDelay time.Duration
	gameSession    string
	gameSeed       int64
	gameEphemeral  bool

	statsSince       string
	statsLast        int
	statsInteractive bool

	envCfg config.EnvConfig
	logger zerolog.Logger
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for configuration errors and 1 for everything else.
func exitCode(err error) int {
	if game.IsConfigError(err) {
		return 2
	}
	return 1
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "wordgrid",
		Short:             "TUI word-search puzzle",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: setup,
		RunE:              runPlayCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.IntVar(&gameSize, "size", defaultSize, "grid size N for an NxN board")
	flags.StringSliceVar(&gameWords, "words", defaultWords, "comma separated target words")
	flags.StringVar(&gameWordsFile, "words-file", "", "file with one target word per line")
	flags.StringVar(&gameSession, "session", game.DefaultSessionKey, "snapshot slot for the cached grid")

	rootCmd.Flags().StringVar(&gameRule, "rule", defaultRule, "selection rule: strict or free")
	rootCmd.Flags().DurationVar(&gameWrongDelay, "wrong-delay", defaultWrongDelay, "how long a wrong selection stays visible")
	rootCmd.Flags().Int64Var(&gameSeed, "seed", 0, "random seed for a reproducible board (0 = time based)")
	rootCmd.Flags().BoolVar(&gameEphemeral, "ephemeral", false, "do not read or write the database")

	rootCmd.AddCommand(newNewCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func setup(_ *cobra.Command, _ []string) error {
	config.LoadDotEnv()
	var err error
	envCfg, err = config.ParseEnv()
	if err != nil {
		return err
	}
	logger = logging.New(os.Stderr, envCfg.LogLevel)
	return nil
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	var kv game.KV = game.NewMemoryKV()
	var recorder tui.Recorder
	if !gameEphemeral {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(st)
		kv = st
		recorder = st
	}

	gen := grid.New()
	if cfg.Seed != 0 {
		gen = grid.NewWithSeed(cfg.Seed)
	}
	sched := tui.NewScheduler()
	session, err := game.LoadOrCreate(context.Background(), cfg, game.Deps{
		KV:        kv,
		Generator: gen,
		Scheduler: sched,
		Observer:  logEvent,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	m := tui.NewModel(session, sched, recorder, logger)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func logEvent(ev selection.Event) {
	switch ev.Kind {
	case selection.EventFound:
		logger.Debug().Str("word", ev.Word).Msg("found")
	case selection.EventWrong:
		logger.Debug().Str("letters", ev.Word).Msg("wrong selection")
	case selection.EventWon:
		logger.Info().Msg("all words found")
	}
}

func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Discard the cached grid so the next game gets a fresh board",
		Args:  cobra.NoArgs,
		RunE:  runNewCmd,
	}
}

func runNewCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)
	if err := game.Forget(context.Background(), st, cfg.SessionKey); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Cleared grid %q\n", cfg.SessionKey)
	return err
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current grid",
		Args:  cobra.NoArgs,
		RunE:  runShowCmd,
	}
}

func runShowCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)
	session, err := game.LoadOrCreate(context.Background(), cfg, game.Deps{KV: st, Logger: logger})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, row := range session.Grid().Rows() {
		if _, err := fmt.Fprintln(out, strings.Join(strings.Split(row, ""), " ")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	_, err = fmt.Fprintf(out, "\nWords: %s\n", strings.Join(cfg.Words, ", "))
	return err
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show game history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N games")
	cmd.Flags().BoolVarP(&statsInteractive, "interactive", "i", false, "browse history in a TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	filter := model.HistoryFilter{Last: statsLast}
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		filter.Since = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	if statsInteractive {
		program := tea.NewProgram(statsui.NewModel(st, filter), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats TUI: %w", err)
		}
		return nil
	}

	report, err := stats.BuildReport(context.Background(), st, filter)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	return stats.WriteReport(out, report, stats.PaletteFor(out))
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

func openStore() (*store.Store, error) {
	path := envCfg.DBPath
	if path == "" {
		path = config.DefaultDBPath()
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		logger.Error().Err(err).Msg("failed to close db")
	}
}
