package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/synforge/routecluster/pkg/cache"
	"github.com/synforge/routecluster/pkg/report"
	"github.com/synforge/routecluster/pkg/store"
)

// reportCommand creates the report command group for inspecting stored runs.
func (c *CLI) reportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Inspect stored clustering reports",
	}

	cmd.AddCommand(c.reportListCommand())
	cmd.AddCommand(c.reportShowCommand())
	cmd.AddCommand(c.reportDotCommand())
	cmd.AddCommand(c.reportSVGCommand())
	cmd.AddCommand(c.reportDeleteCommand())

	return cmd
}

func (c *CLI) reportListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored reports, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close(cmd.Context())

			list, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				printInfo("No reports stored")
				return nil
			}
			for _, s := range list {
				target := s.Target
				if target == "" {
					target = "-"
				}
				fmt.Printf("%s  %s  %s  %d routes\n",
					s.ID, s.CreatedAt.Format("2006-01-02 15:04"), target, s.RouteCount)
			}
			return nil
		},
	}
}

func (c *CLI) reportShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one report's clusters and subgroups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, st, err := c.loadReport(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer st.Close(cmd.Context())

			printKeyValue("report", rep.ID)
			if rep.Target != "" {
				printKeyValue("target", rep.Target)
			}
			printKeyValue("created", rep.CreatedAt.Format("2006-01-02 15:04:05"))
			printKeyValue("routes", fmt.Sprintf("%d", rep.RouteCount))
			printKeyValue("options", fmt.Sprintf("reduce=%t strategic=%t post-process=%t",
				rep.Options.Reduce, rep.Options.UseStrategicBonds, rep.Options.PostProcess))
			printNewline()

			for _, cl := range rep.Clusters {
				fmt.Println(StyleTitle.Render(fmt.Sprintf("cluster %s", cl.ID)) +
					StyleDim.Render(fmt.Sprintf("  %d routes, %d strategic bonds", len(cl.RouteIDs), len(cl.StrategicBonds))))
				for _, rid := range cl.RouteIDs {
					printDetail("%s", rid)
				}
				for i, sg := range cl.Subgroups {
					line := fmt.Sprintf("subgroup %d: %d routes", i+1, len(sg.RouteIDs))
					if sg.Processed {
						line += fmt.Sprintf(", %d variable attachment points, %d leaving-group sets",
							len(sg.AttachAtoms), len(sg.LeavingSets))
					}
					printInfo("%s", line)
				}
			}
			return nil
		},
	}
}

func (c *CLI) reportDotCommand() *cobra.Command {
	var clusterID, output string
	var detailed bool

	cmd := &cobra.Command{
		Use:   "dot [id]",
		Short: "Write a cluster representative as Graphviz DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dot, err := c.representativeDOT(cmd.Context(), args[0], clusterID, detailed)
			if err != nil {
				return err
			}
			return writeOutput([]byte(dot), output)
		},
	}

	cmd.Flags().StringVar(&clusterID, "cluster", "", "cluster id (defaults to the first cluster)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label atoms with their numbers")
	return cmd
}

func (c *CLI) reportSVGCommand() *cobra.Command {
	var clusterID, output string
	var detailed bool

	cmd := &cobra.Command{
		Use:   "svg [id]",
		Short: "Render a cluster representative as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dot, err := c.representativeDOT(cmd.Context(), args[0], clusterID, detailed)
			if err != nil {
				return err
			}
			svg, err := c.renderSVGCached(cmd.Context(), dot)
			if err != nil {
				return err
			}
			if err := writeOutput(svg, output); err != nil {
				return err
			}
			if output != "" {
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&clusterID, "cluster", "", "cluster id (defaults to the first cluster)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label atoms with their numbers")
	return cmd
}

func (c *CLI) reportDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a stored report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close(cmd.Context())

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted report %s", args[0])
			return nil
		},
	}
}

// loadReport fetches one report; the caller owns the returned store.
func (c *CLI) loadReport(ctx context.Context, id string) (*store.Report, store.Store, error) {
	st, err := c.newStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	rep, err := st.Get(ctx, id)
	if err != nil {
		st.Close(ctx)
		return nil, nil, err
	}
	if rep == nil {
		st.Close(ctx)
		return nil, nil, fmt.Errorf("report %s not found", id)
	}
	return rep, st, nil
}

// representativeDOT renders the representative graph of one cluster of a
// stored report as DOT.
func (c *CLI) representativeDOT(ctx context.Context, id, clusterID string, detailed bool) (string, error) {
	rep, st, err := c.loadReport(ctx, id)
	if err != nil {
		return "", err
	}
	defer st.Close(ctx)

	if len(rep.Clusters) == 0 {
		return "", fmt.Errorf("report %s has no clusters", id)
	}
	rec := rep.Clusters[0]
	if clusterID != "" {
		found := false
		for _, cl := range rep.Clusters {
			if cl.ID == clusterID {
				rec, found = cl, true
				break
			}
		}
		if !found {
			return "", fmt.Errorf("cluster %s not found in report %s", clusterID, id)
		}
	}
	if rec.Representative == nil {
		return "", fmt.Errorf("cluster %s has no representative graph", rec.ID)
	}

	g, err := rec.Representative.Decode()
	if err != nil {
		return "", fmt.Errorf("cluster %s: %w", rec.ID, err)
	}
	return report.ToDOT(g, report.Options{Detailed: detailed}), nil
}

// renderSVGCached renders DOT to SVG, caching the rendered bytes keyed by
// the DOT content hash so repeated exports skip the graphviz run.
func (c *CLI) renderSVGCached(ctx context.Context, dot string) ([]byte, error) {
	ca, err := c.newCache(ctx, false)
	if err != nil {
		return report.RenderSVG(dot)
	}
	defer ca.Close()

	keyer := cache.NewDefaultKeyer()
	key := keyer.ArtifactKey(cache.Hash([]byte(dot)), cache.ArtifactKeyOpts{Format: "svg"})
	if data, hit, err := ca.Get(ctx, key); err == nil && hit {
		return data, nil
	}

	svg, err := report.RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	_ = ca.Set(ctx, key, svg, cache.TTLArtifacts)
	return svg, nil
}

// writeReportJSON writes a report to path as indented JSON.
func writeReportJSON(rep *store.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(data []byte, path string) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
