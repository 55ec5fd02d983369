package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/groundviz/internal/config"
	"github.com/ironsheep/groundviz/internal/server"
)

var (
	version = "dev"     // semantic version (e.g., "v1.2.3")
	commit  = "unknown" // git commit SHA
	date    = "unknown" // build timestamp
)

// SetVersion sets the version information displayed by --version and reported
// by the MCP server. main calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
	server.Version = v
}

// NewRootCmd builds the groundviz command tree.
func NewRootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		verbose    bool
	)

	root := &cobra.Command{
		Use:   "groundviz",
		Short: "Groundviz draws grounded model answers onto images",
		Long: `Groundviz renders the bounding boxes that a vision-language model embeds in its
answers as <p>phrase</p>{<x0><y0><x1><y1>} markup: it draws the boxes and
non-overlapping labels onto the image and recolors the answer text to match.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			level := cfg.Level()
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			log.SetDefault(logger)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = withConfig(withLogger(ctx, logger), cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("groundviz %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file (default $"+config.EnvConfig+")")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newRegionCmd())
	root.AddCommand(newMarkdownCmd())
	root.AddCommand(newServeCmd())

	return root
}
