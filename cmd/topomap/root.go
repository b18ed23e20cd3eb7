package main

import (
	"github.com/spf13/cobra"

	"topomap/internal/config"
	"topomap/internal/logger"
	"topomap/internal/ui"
)

var version = "0.3.0"

// globals shared by every command
type globals struct {
	configPath string
	logLevel   string
	logJSON    bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "topomap",
		Short: "topomap - live network topology diagrams",
		Long: ui.Brand.Sprint("topomap") + " lays out network topologies with a force simulation\n" +
			ui.Subtle.Sprint("and streams the diagram to browsers over SSE and WebSocket"),
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}
	root.SetVersionTemplate("topomap {{ .Version }}\n")

	flags := root.PersistentFlags()
	flags.StringVarP(&g.configPath, "config", "c", "", "config file (default: search "+config.ConfigFileName+", XDG and /etc)")
	flags.StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&g.logJSON, "log-json", false, "log as JSON")

	root.AddCommand(
		serveCmd(g),
		simulateCmd(g),
		validateCmd(g),
	)
	return root
}

// load reads the config file and sets up logging. Flags override the file.
func (g *globals) load(cmd *cobra.Command) error {
	cfg, path, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = g.logLevel
	}
	if cmd.Flags().Changed("log-json") {
		cfg.Log.JSON = g.logJSON
	}
	if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Level); err != nil {
		return err
	}
	if path != "" {
		logger.Named("config").Debugw("Config loaded", logger.FieldPath, path)
	}
	g.cfg = cfg
	return nil
}
