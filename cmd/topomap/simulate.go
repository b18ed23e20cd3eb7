package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"topomap/internal/domain"
	"topomap/internal/engine"
	"topomap/internal/loader"
	"topomap/internal/ui"
)

func simulateCmd(g *globals) *cobra.Command {
	var (
		ticks     int
		asJSON    bool
		highlight []string
		seed      uint32
	)

	cmd := &cobra.Command{
		Use:   "simulate [topology-file]",
		Short: "Run the layout headless and print the resulting frame",
		Long: "Loads a topology (the argument, topology.source, or the built-in\n" +
			"fallback dataset), runs the force simulation until it settles or the\n" +
			"tick limit is reached, and prints node positions.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := g.cfg
			location := cfg.Topology.Source
			if len(args) == 1 {
				location = args[0]
			}

			topo := domain.FallbackTopology()
			if location != "" {
				t, err := loader.New(location, cfg.Topology.Timeout).Load(cmd.Context())
				if err != nil {
					return err
				}
				topo = t
			}

			opts := cfg.EngineOptions()
			if cmd.Flags().Changed("seed") {
				opts.Layout.Seed = seed
			}

			frame, err := simulate(cmd.Context(), topo, opts, ticks, highlight)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(frame)
			}
			printFrame(out, location, frame)
			return nil
		},
	}

	cmd.Flags().IntVarP(&ticks, "ticks", "n", 500, "maximum ticks to run")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the frame as JSON")
	cmd.Flags().StringSliceVar(&highlight, "highlight", nil, "node ids of a path to highlight")
	cmd.Flags().Uint32Var(&seed, "seed", 0, "jitter seed (overrides simulation.seed)")
	return cmd
}

// simulate steps a fresh state until it settles or maxTicks is reached
func simulate(ctx context.Context, topo *domain.Topology, opts engine.Options, maxTicks int, highlight []string) (engine.Frame, error) {
	st, err := engine.New(topo, opts)
	if err != nil {
		return engine.Frame{}, err
	}
	if len(highlight) > 0 {
		st = engine.Update(st, engine.HighlightPath{NodeIDs: highlight})
	}
	for i := 0; i < maxTicks && !st.Settled(); i++ {
		if i%64 == 0 && ctx.Err() != nil {
			return engine.Frame{}, ctx.Err()
		}
		st = engine.Step(st)
	}
	return engine.Project(st), nil
}

func printFrame(w io.Writer, source string, f engine.Frame) {
	if source == "" {
		source = "fallback dataset"
	}
	ui.Banner(w, "headless layout")
	ui.Field(w, "Source", source)
	ui.Field(w, "Ticks", f.Tick)
	ui.Field(w, "Alpha", fmt.Sprintf("%.4f", f.Alpha))
	ui.Field(w, "Settled", ui.StatusIcon(f.Settled))
	fmt.Fprintln(w)

	nodes := append([]engine.FrameNode(nil), f.Nodes...)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		mark := ""
		if n.Highlighted {
			mark = ui.Brand.Sprint("*")
		}
		rows = append(rows, []string{
			n.ID + mark,
			n.Label,
			string(n.Type),
			string(n.Domain),
			ui.Status(n.Status),
			fmt.Sprintf("%8.1f", n.X),
			fmt.Sprintf("%8.1f", n.Y),
		})
	}
	ui.Table(w, []string{"ID", "LABEL", "TYPE", "DOMAIN", "STATUS", "X", "Y"}, rows)
}
