// Package main provides the CLI entrypoint for neurotype.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/neurotype/internal/account"
	"github.com/verte-zerg/neurotype/internal/config"
	"github.com/verte-zerg/neurotype/internal/model"
	"github.com/verte-zerg/neurotype/internal/store"
)

const (
	defaultBackend    = store.BackendSQLite
	defaultDifficulty = string(model.DifficultyAdaptive)
	defaultRaceWords  = 25
	defaultLang       = "en"
	defaultLast       = 10
	defaultTrendWin   = 5
)

var (
	configPath    string
	storeBackend  string
	storePath     string
	redisAddr     string
	hashPasswords bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "neurotype",
		Short:         "Typing races against an adaptive bot",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", config.DefaultConfigPath(), "config file path")
	flags.StringVar(&storeBackend, "store", defaultBackend, "store backend (sqlite, redis, memory)")
	flags.StringVar(&storePath, "db", config.DefaultDBPath(), "SQLite store path")
	flags.StringVar(&redisAddr, "redis-addr", "", "Redis address for the redis backend")
	flags.BoolVar(&hashPasswords, "hash-passwords", false, "store bcrypt hashes instead of plain passwords")

	rootCmd.AddCommand(newSignupCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newUsersCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newPlacementCmd())
	rootCmd.AddCommand(newRaceCmd())
	rootCmd.AddCommand(newWPMCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// app bundles the resolved config with an opened manager.
type app struct {
	cfg     model.Config
	backend store.Backend
	manager *account.Manager
}

func openApp(cmd *cobra.Command) (*app, error) {
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := resolveConfig(cmd, fileCfg)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	backend, err := store.OpenBackend(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	var hasher account.Hasher = account.PlainHasher{}
	if cfg.HashPasswords {
		hasher = account.BcryptHasher{}
	}
	manager := account.New(backend, account.WithHasher(hasher))
	if err := manager.LoadCurrentUser(ctx); err != nil {
		if cerr := backend.Close(); cerr != nil {
			logErrf("failed to close store: %v\n", cerr)
		}
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	return &app{cfg: cfg, backend: backend, manager: manager}, nil
}

func (a *app) Close() {
	if err := a.backend.Close(); err != nil {
		logErrf("failed to close store: %v\n", err)
	}
}

// withApp opens the store for the duration of fn.
func withApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, args, a)
	}
}

func resolveConfig(cmd *cobra.Command, fileCfg config.FileConfig) model.Config {
	flags := cmd.Flags()
	applyStringConfig(flags.Changed("store"), &storeBackend, fileCfg.Store.Backend)
	applyStringConfig(flags.Changed("db"), &storePath, fileCfg.Store.Path)
	applyStringConfig(flags.Changed("redis-addr"), &redisAddr, fileCfg.Store.RedisAddr)
	applyBoolConfig(flags.Changed("hash-passwords"), &hashPasswords, fileCfg.Security.HashPasswords)

	cfg := model.Config{
		StoreBackend:  storeBackend,
		StorePath:     storePath,
		RedisAddr:     redisAddr,
		Difficulty:    model.DifficultyAdaptive,
		RaceWords:     defaultRaceWords,
		HashPasswords: hashPasswords,
	}
	if v := fileCfg.Store.RedisPassword; v != nil {
		cfg.RedisPassword = *v
	}
	if v := fileCfg.Store.RedisDB; v != nil {
		cfg.RedisDB = *v
	}
	if v := fileCfg.Store.RedisPrefix; v != nil {
		cfg.RedisPrefix = *v
	}
	if v := fileCfg.Race.Difficulty; v != nil {
		cfg.Difficulty = model.Difficulty(*v)
	}
	if v := fileCfg.Race.Words; v != nil {
		cfg.RaceWords = *v
	}
	return cfg
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
	path := configPath
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# neurotype configuration
# Uncomment a value to enable it. CLI flags override config values.

[store]
# backend = %q           # sqlite, redis or memory
# path = %q
# redis-addr = "localhost:6379"
# redis-password = ""
# redis-db = 0
# redis-prefix = "neurotype:"

[race]
# difficulty = %q       # only "adaptive" moves the bot away from your average
# words = %d                # Words per race prompt

[security]
# hash-passwords = false    # Store bcrypt hashes instead of plain passwords
`,
		defaultBackend,
		config.DefaultDBPath(),
		defaultDifficulty,
		defaultRaceWords,
	)
}

func applyStringConfig(changed bool, target, value *string) {
	if value == nil || changed {
		return
	}
	*target = *value
}

func applyBoolConfig(changed bool, target, value *bool) {
	if value == nil || changed {
		return
	}
	*target = *value
}

// describeError maps account errors to user-facing messages.
func describeError(err error) error {
	switch {
	case errors.Is(err, account.ErrNotLoggedIn):
		return fmt.Errorf("not logged in (run: neurotype login <username>)")
	default:
		return err
	}
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
