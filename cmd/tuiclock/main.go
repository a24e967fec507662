// Package main provides the CLI entrypoint for tuiclock.
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
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuiclock/internal/clock"
	"github.com/verte-zerg/tuiclock/internal/config"
	"github.com/verte-zerg/tuiclock/internal/logging"
	"github.com/verte-zerg/tuiclock/internal/model"
	"github.com/verte-zerg/tuiclock/internal/report"
	"github.com/verte-zerg/tuiclock/internal/store"
	"github.com/verte-zerg/tuiclock/internal/tui"
)

const (
	defaultMode        = "classical"
	defaultSuddenDeath = "00:05"
	defaultKeyOne      = "a"
	defaultKeyTwo      = "l"
	defaultRecentLimit = 10
	maxNameLen         = 32
)

var reservedKeys = []string{"r", "q", "esc", "left", "right", "ctrl+c"}

var (
	playMode        string
	playPlayerOne   string
	playPlayerTwo   string
	playSuddenDeath string
	playBell        bool
	playSkipSetup   bool
	playKeyOne      string
	playKeyTwo      string

	recentLimit  int
	recentForget bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuiclock",
		Short:         "TUI chess clock",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playMode, "mode", defaultMode, "time mode: classical, bullet, sudden-death, free")
	rootCmd.Flags().StringVar(&playPlayerOne, "p1", "", "player one name")
	rootCmd.Flags().StringVar(&playPlayerTwo, "p2", "", "player two name")
	rootCmd.Flags().StringVar(&playSuddenDeath, "sudden-death", defaultSuddenDeath, "sudden death duration (HH:MM)")
	rootCmd.Flags().BoolVar(&playBell, "bell", true, "ring the terminal bell on turn switches and low time")
	rootCmd.Flags().BoolVar(&playSkipSetup, "skip-setup", false, "start the clock without the setup screen")
	rootCmd.Flags().StringVar(&playKeyOne, "key-p1", defaultKeyOne, "tap key for player one")
	rootCmd.Flags().StringVar(&playKeyTwo, "key-p2", defaultKeyTwo, "tap key for player two")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newModesCmd())
	rootCmd.AddCommand(newRecentCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &playMode, fileCfg.Game.Mode)
	applyStringConfig(cmd, "p1", &playPlayerOne, fileCfg.Game.PlayerOne)
	applyStringConfig(cmd, "p2", &playPlayerTwo, fileCfg.Game.PlayerTwo)
	applyStringConfig(cmd, "sudden-death", &playSuddenDeath, fileCfg.Game.SuddenDeath)
	applyBoolConfig(cmd, "skip-setup", &playSkipSetup, fileCfg.Game.SkipSetup)
	applyBoolConfig(cmd, "bell", &playBell, fileCfg.Alerts.Bell)
	applyStringConfig(cmd, "key-p1", &playKeyOne, fileCfg.Keys.PlayerOne)
	applyStringConfig(cmd, "key-p2", &playKeyTwo, fileCfg.Keys.PlayerTwo)

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	last, ok, err := st.LastSetup(context.Background())
	if err != nil {
		logErrf("failed to load last setup: %v\n", err)
	} else if ok {
		applyLastSetup(cmd, fileCfg.Game, last)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tuiclock needs an interactive terminal")
	}

	logger := logging.New(nil)
	logFile, err := logging.OpenFile(config.DefaultLogPath())
	if err != nil {
		logErrf("event log disabled: %v\n", err)
	} else {
		defer func() {
			if cerr := logFile.Close(); cerr != nil {
				// Best-effort close of the event log.
				_ = cerr
			}
		}()
		logger = logging.New(logFile)
	}

	m := tui.NewModel(cfg, tui.Options{
		Store:  st,
		Clock:  clockwork.NewRealClock(),
		Logger: logger,
		Bell:   os.Stderr,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// applyLastSetup pre-fills values that neither a flag nor the config file set.
func applyLastSetup(cmd *cobra.Command, game config.GameConfig, last model.Setup) {
	if !cmd.Flags().Changed("p1") && game.PlayerOne == nil {
		playPlayerOne = last.PlayerOne
	}
	if !cmd.Flags().Changed("p2") && game.PlayerTwo == nil {
		playPlayerTwo = last.PlayerTwo
	}
	if !cmd.Flags().Changed("mode") && game.Mode == nil {
		playMode = last.Mode.String()
	}
	if !cmd.Flags().Changed("sudden-death") && game.SuddenDeath == nil && last.SuddenDeathSeconds > 0 {
		playSuddenDeath = clock.FormatHourMinute(last.SuddenDeathSeconds)
	}
}

func buildConfig() (model.Config, error) {
	mode, err := clock.ParseMode(playMode)
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid --mode value: %w", err)
	}
	cfg := model.Config{
		Mode:      mode,
		PlayerOne: strings.TrimSpace(playPlayerOne),
		PlayerTwo: strings.TrimSpace(playPlayerTwo),
		Bell:      playBell,
		SkipSetup: playSkipSetup,
		Keys: model.KeyConfig{
			PlayerOne: strings.TrimSpace(playKeyOne),
			PlayerTwo: strings.TrimSpace(playKeyTwo),
		},
	}
	if playSuddenDeath != "" {
		hour, minute, err := clock.ParseHourMinute(playSuddenDeath)
		if err != nil {
			return model.Config{}, fmt.Errorf("invalid --sudden-death value: %w", err)
		}
		cfg.SuddenDeathSeconds = clock.SuddenDeathSeconds(hour, minute)
	}
	if cfg.SkipSetup {
		if cfg.PlayerOne == "" {
			cfg.PlayerOne = "Player 1"
		}
		if cfg.PlayerTwo == "" {
			cfg.PlayerTwo = "Player 2"
		}
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.Mode == clock.SuddenDeath && cfg.SuddenDeathSeconds <= 0 {
		return fmt.Errorf("--sudden-death must be at least 00:01")
	}
	if len([]rune(cfg.PlayerOne)) > maxNameLen {
		return fmt.Errorf("--p1 must be at most %d characters", maxNameLen)
	}
	if len([]rune(cfg.PlayerTwo)) > maxNameLen {
		return fmt.Errorf("--p2 must be at most %d characters", maxNameLen)
	}
	if cfg.Keys.PlayerOne == "" {
		return fmt.Errorf("--key-p1 must not be empty")
	}
	if cfg.Keys.PlayerTwo == "" {
		return fmt.Errorf("--key-p2 must not be empty")
	}
	if cfg.Keys.PlayerOne == cfg.Keys.PlayerTwo {
		return fmt.Errorf("--key-p1 and --key-p2 must differ")
	}
	for _, reserved := range reservedKeys {
		if cfg.Keys.PlayerOne == reserved || cfg.Keys.PlayerTwo == reserved {
			return fmt.Errorf("key %q is reserved (reserved: %s)", reserved, strings.Join(reservedKeys, ", "))
		}
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

func newModesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List time modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return report.RenderModes(cmd.OutOrStdout())
		},
	}
}

func newRecentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently used setups",
		Args:  cobra.NoArgs,
		RunE:  runRecentCmd,
	}
	cmd.Flags().IntVar(&recentLimit, "limit", defaultRecentLimit, "number of setups to show (0 for all)")
	cmd.Flags().BoolVar(&recentForget, "forget", false, "delete all remembered setups")
	return cmd
}

func runRecentCmd(cmd *cobra.Command, _ []string) error {
	if recentLimit < 0 {
		return fmt.Errorf("--limit must be >= 0")
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	if recentForget {
		n, err := st.ForgetSetups(ctx)
		if err != nil {
			return fmt.Errorf("failed to forget setups: %w", err)
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Forgot %d setups.\n", n); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	setups, err := st.ListSetups(ctx, recentLimit)
	if err != nil {
		return fmt.Errorf("failed to list setups: %w", err)
	}
	return report.RenderSetups(cmd.OutOrStdout(), setups, time.Now())
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

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuiclock configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# mode = %q          # classical, bullet, sudden-death or free
# player-one = "White"
# player-two = "Black"
# sudden-death = %q      # HH:MM, used by sudden-death mode
# skip-setup = false

[alerts]
# bell = true                # Ring the terminal bell on taps and low time

[keys]
# player-one = %q
# player-two = %q
`,
		defaultMode,
		defaultSuddenDeath,
		defaultKeyOne,
		defaultKeyTwo,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
