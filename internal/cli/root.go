// Package cli implements the merchant-memory CLI, a reference host for the
// memory component. Every invocation restores the configured save slot,
// runs one command and writes a new save version when state changed.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rcliao/merchant-memory/internal/config"
	"github.com/rcliao/merchant-memory/internal/logging"
)

var (
	configFile string
	turnFlag   int64
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "merchant-memory",
	Short: "Remember merchants and the wares they sell",
	Long: "A reference host for merchant memory. Feed it trade sessions as YAML, " +
		"then ask which merchants sold what. State lives in versioned SQLite save slots.",
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringP("db", "d", "", "Database path (default: $MERCHANT_MEMORY_DB or ~/.merchant-memory/saves.db)")
	flags.StringP("slot", "s", "", "Save slot (default: $MERCHANT_MEMORY_SLOT or 'default')")
	flags.String("log-level", "", "Log level: trace, debug, info, warn, error")
	flags.StringVar(&configFile, "config", "", "Config file (default: ./config.yaml or ~/.merchant-memory/config.yaml)")
	flags.Int64Var(&turnFlag, "turn", -1, "Game turn to use instead of the wall clock")
}

// loadConfig resolves flags, environment and config file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	flags := cmd.Root().PersistentFlags()
	for key, name := range map[string]string{"db": "db", "slot": "slot", "log.level": "log-level"} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, err
		}
	}
	return config.Load(v, configFile)
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (zerolog.Logger, error) {
	return logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Out:    cmd.ErrOrStderr(),
	})
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
