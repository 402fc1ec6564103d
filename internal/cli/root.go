package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/rosterbot/internal/config"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// rootCmdExample shows common invocations in help output.
const rootCmdExample = `  # Interactively browse the roster
  rosterbot browse

  # Print one page of speakers to stdout
  rosterbot list --role speaker

  # Populate a demo database
  rosterbot seed --count 45`

// NewRootCmd creates the root Cobra command for the rosterbot CLI. It wires
// up config loading, logging, and the browse/list/seed subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var cfg *config.Config

	cmd := &cobra.Command{
		Use:     "rosterbot",
		Short:   "Browse and edit event participant records",
		Long:    "Rosterbot: a chat-bot core for browsing event participants in size-capped pages",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			loaded, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			cfg = loaded

			level := cfg.Logging.Level
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				level = "debug"
			}
			if err := config.InitLogger(level, cfg.Logging.File); err != nil {
				return err
			}
			logger = config.GetLogger().With().Str("component", "cli").Logger()

			logger.Debug().Str("command", cmd.Name()).Msg("command started")
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			config.CloseLogFile()
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "path to rosterbot.yaml (default: ./rosterbot.yaml)")

	getConfig := func() *config.Config {
		if cfg == nil {
			return config.Default()
		}
		return cfg
	}

	cmd.AddCommand(newBrowseCmd(getConfig))
	cmd.AddCommand(newListCmd(getConfig))
	cmd.AddCommand(newSeedCmd(getConfig))

	return cmd
}
