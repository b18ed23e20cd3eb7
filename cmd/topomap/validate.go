package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"topomap/internal/errors"
	"topomap/internal/graph"
	"topomap/internal/loader"
	"topomap/internal/ui"
)

func validateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [topology-file-or-url]",
		Short: "Check the config and a topology document",
		Long: "Loads the configuration and the topology (the argument or\n" +
			"topology.source) and reports the first node or link that would\n" +
			"make the engine reject it.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "  %s config\n", ui.StatusIcon(true))

			location := g.cfg.Topology.Source
			if len(args) == 1 {
				location = args[0]
			}
			if location == "" {
				fmt.Fprintf(out, "  %s no topology source configured\n", ui.Warn.Sprint("!"))
				return nil
			}

			topo, err := loader.New(location, g.cfg.Topology.Timeout).Load(cmd.Context())
			if err != nil {
				fmt.Fprintf(out, "  %s %s: %v\n", ui.StatusIcon(false), location, err)
				return err
			}

			m, err := graph.Load(topo)
			if err != nil {
				var verr *graph.ValidationError
				if errors.As(err, &verr) {
					fmt.Fprintf(out, "  %s %s: %s %s\n", ui.StatusIcon(false), location, ui.Bad.Sprint(verr.Kind), verr.Error())
				} else {
					fmt.Fprintf(out, "  %s %s: %v\n", ui.StatusIcon(false), location, err)
				}
				return err
			}

			fmt.Fprintf(out, "  %s %s: %d nodes, %d links\n", ui.StatusIcon(true), location, m.Len(), len(m.Links()))
			return nil
		},
	}
}
