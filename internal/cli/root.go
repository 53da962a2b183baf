// Package cli provides the command-line entry point for Dropdock. The root
// command launches the shelf panel; subcommands cover everything that does
// not need a window.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dropdock/dropdock/internal/config"
	"github.com/dropdock/dropdock/internal/gui"
	"github.com/dropdock/dropdock/internal/logging"
)

var (
	// Global flags
	cfgFile    string
	verbose    bool
	debug      bool
	showHidden bool

	// Global logger
	logger *logging.Logger
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dropdock",
		Short: "Dropdock - a floating shelf for files on their way somewhere else",
		Long: `Dropdock is a floating panel for temporary file references.

Drag files or folders onto the panel to shelve them, browse into shelved
folders, and drag items back out to other applications. The shelf lives in
memory only: closing the panel clears it.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewLogger("cli")
			if verbose || debug {
				logging.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgFile
			if path == "" {
				path = config.DefaultConfigPath()
			}

			cfg, err := config.Load(path)
			if err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("Failed to load config, using defaults")
				cfg = config.Defaults()
			}
			if cmd.Flags().Changed("show-hidden") {
				cfg.ShowHidden = showHidden
			}

			return gui.Launch(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output (same as --verbose)")
	rootCmd.Flags().BoolVar(&showHidden, "show-hidden", false, "Show hidden files when browsing folders")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}
