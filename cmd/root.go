package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/abhisek/studyplan/internal/config"
	"github.com/abhisek/studyplan/internal/logger"
	"github.com/abhisek/studyplan/internal/store"
	"github.com/spf13/cobra"
)

// appConfig is loaded once per invocation before any subcommand runs.
var appConfig = config.Default()

var rootCmd = &cobra.Command{
	Use:   "studyplan",
	Short: "Weekly revision planner",
	Long:  "studyplan builds a week of spaced revision sessions from topic confidence ratings and free time.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		appConfig = cfg
		return initLogger(cmd, cfg)
	},
	SilenceUsage: true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logger.Error("command failed", "err", err)
	}
	logger.Close()
	return err
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Database: SQLite path or postgres:// URL (overrides STUDYPLAN_DB and config)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides STUDYPLAN_CONFIG)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log at debug level to stderr as well as the log file")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		if path, err = config.Path(); err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Debug = true
	}
	return cfg, nil
}

func initLogger(cmd *cobra.Command, cfg *config.Config) error {
	dir := cfg.LogDir
	if dir == "" {
		data, err := store.DataDir()
		if err != nil {
			return err
		}
		dir = filepath.Join(data, "logs")
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, Dir: dir}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.Debug("starting", "command", cmd.CommandPath())
	return nil
}

// resolveDBPath returns the database using --db flag (highest priority),
// then the config file and STUDYPLAN_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if appConfig.DB != "" {
		return appConfig.DB, store.EnsureDir(appConfig.DB)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dsn, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
