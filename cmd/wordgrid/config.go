package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordgrid/internal/config"
	"github.com/verte-zerg/wordgrid/internal/grid"
	"github.com/verte-zerg/wordgrid/internal/model"
	"github.com/verte-zerg/wordgrid/internal/wordlist"
)

// resolveConfig layers defaults, the config file, WORDGRID_* variables and flags, in rising priority.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	envGame := envCfg.Game()
	layered := config.Merge(fileCfg.Game, envGame)

	applyIntConfig(cmd, "size", &gameSize, layered.Size)
	applyStringConfig(cmd, "rule", &gameRule, layered.Rule)
	applyDurationConfig(cmd, "wrong-delay", &gameWrongDelay, layered.WrongDelay)
	applyStringConfig(cmd, "session", &gameSession, layered.Session)

	raw, path := wordSource(cmd, fileCfg.Game, envGame)
	if path != "" {
		raw, err = wordlist.LoadWords(path)
		if err != nil {
			return model.Config{}, fmt.Errorf("failed to load word list %s: %w", path, err)
		}
	}
	words, err := wordlist.Normalize(splitAll(raw))
	if err != nil {
		return model.Config{}, err
	}

	rule, ok := model.ParseSelectionRule(strings.ToLower(strings.TrimSpace(gameRule)))
	if !ok {
		return model.Config{}, fmt.Errorf("--rule must be strict or free, got %q", gameRule)
	}

	cfg := model.Config{
		GridSize:    gameSize,
		Words:       words,
		Rule:        rule,
		WrongDelay:  gameWrongDelay,
		SessionKey:  gameSession,
		MaxAttempts: grid.DefaultMaxAttempts,
		Seed:        gameSeed,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.GridSize <= 0 {
		return fmt.Errorf("--size must be > 0")
	}
	if cfg.WrongDelay <= 0 {
		return fmt.Errorf("--wrong-delay must be > 0")
	}
	if strings.TrimSpace(cfg.SessionKey) == "" {
		return fmt.Errorf("--session must not be empty")
	}
	if err := grid.CheckWords(cfg.GridSize, cfg.Words); err != nil {
		return err
	}
	return nil
}

// wordSource resolves words and words-file as one setting: the highest layer that sets either wins,
// and within a layer the list beats the file. It returns a word list or a file path.
func wordSource(cmd *cobra.Command, file, env config.GameConfig) ([]string, string) {
	flags := cmd.Flags()
	switch {
	case flags.Changed("words"):
		return gameWords, ""
	case flags.Changed("words-file"):
		return nil, gameWordsFile
	}
	for _, layer := range []config.GameConfig{env, file} {
		if layer.Words != nil {
			return *layer.Words, ""
		}
		if layer.WordsFile != nil && *layer.WordsFile != "" {
			return nil, *layer.WordsFile
		}
	}
	return gameWords, ""
}

// splitAll lets a single list entry carry several words, as config and env values often do.
func splitAll(entries []string) []string {
	var out []string
	for _, e := range entries {
		out = append(out, wordlist.Split(e)...)
	}
	return out
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *config.Duration) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = value.Duration
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordgrid configuration
# Uncomment a value to enable it. WORDGRID_* variables override the file; CLI flags override both.

[game]
# size = %d                 # Grid size N for an NxN board
# words = [%s]
# words-file = ""           # One word per line; used when words is not given on the command line
# rule = %q             # strict: adjacent cells in one direction; free: any cells
# wrong-delay = %q          # How long a wrong selection stays visible
# session = "grid"          # Snapshot slot for the cached grid
`,
		defaultSize,
		quoteAll(defaultWords),
		defaultRule,
		defaultWrongDelay.String(),
	)
}

func quoteAll(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = fmt.Sprintf("%q", w)
	}
	return strings.Join(quoted, ", ")
}
