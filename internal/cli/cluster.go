package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/synforge/routecluster/pkg/cache"
	"github.com/synforge/routecluster/pkg/cluster"
	"github.com/synforge/routecluster/pkg/graphio"
	"github.com/synforge/routecluster/pkg/pipeline"
	"github.com/synforge/routecluster/pkg/report"
	"github.com/synforge/routecluster/pkg/store"
)

// clusterOpts holds the command-line flags for the cluster command.
type clusterOpts struct {
	target      string // target name recorded on the stored report
	route       string // restrict the run to a single route id
	reduce      bool   // keep only the largest connected component of each route
	strategic   bool   // cluster on strategic bonds instead of full graphs
	subcluster  bool   // refine clusters into synthon-shape subgroups
	postProcess bool   // collapse constant leaving groups in each subgroup
	maxRoutes   int    // cap on the number of routes collected
	refresh     bool   // recompute even when cached results exist
	noCache     bool   // disable the pipeline cache entirely
	noSave      bool   // skip persisting the report
	output      string // optional path for the report JSON
}

// clusterCommand creates the cluster command, the main entry point of the
// pipeline: read routes from a JSON file, cluster them, and store a report.
func (c *CLI) clusterCommand() *cobra.Command {
	var opts clusterOpts

	cmd := &cobra.Command{
		Use:   "cluster [routes.json]",
		Short: "Cluster synthesis routes by their strategic bonds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCluster(cmd.Context(), args[0], &opts)
		},
	}

	cfg := c.Config.Cluster
	cmd.Flags().StringVar(&opts.target, "target", "", "target name recorded on the report")
	cmd.Flags().StringVar(&opts.route, "route", "", "process a single route id")
	cmd.Flags().BoolVar(&opts.reduce, "reduce", cfg.Reduce, "keep only the largest component of each route")
	cmd.Flags().BoolVar(&opts.strategic, "strategic-bonds", cfg.UseStrategicBonds, "cluster on strategic bond subgraphs")
	cmd.Flags().BoolVar(&opts.subcluster, "subcluster", cfg.Subcluster, "refine clusters into synthon-shape subgroups")
	cmd.Flags().BoolVar(&opts.postProcess, "post-process", cfg.PostProcess, "collapse constant leaving groups (implies --subcluster)")
	cmd.Flags().IntVar(&opts.maxRoutes, "max-routes", cfg.MaxRoutes, "cap on the number of routes collected (0 = default)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached results exist")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the pipeline cache")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "do not persist the report")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the report JSON to a file")

	return cmd
}

func (c *CLI) runCluster(ctx context.Context, input string, opts *clusterOpts) error {
	c.Logger.Infof("Clustering %s", input)

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read routes: %w", err)
	}
	routes, err := graphio.ReadRoutes(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}
	c.Logger.Debugf("Loaded %d routes", len(routes))

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Target:            opts.target,
		RouteID:           opts.route,
		Reduce:            opts.reduce,
		UseStrategicBonds: opts.strategic,
		Subcluster:        opts.subcluster,
		PostProcess:       opts.postProcess,
		MaxRoutes:         opts.maxRoutes,
		Refresh:           opts.refresh,
		SourceHash:        cache.Hash(data),
		Logger:            c.Logger,
	}

	prog := newProgress(c.Logger)
	spin := newSpinnerWithContext(ctx, "clustering routes")
	spin.Start()
	result, err := runner.Execute(ctx, routes, popts)
	if err != nil {
		spin.StopWithError("clustering failed")
		if spin.Cancelled() {
			printWarning("interrupted")
		}
		return err
	}
	spin.Stop()
	prog.done(fmt.Sprintf("Clustered %d routes into %d clusters",
		result.Stats.RouteCount, result.Stats.ClusterCount))

	printNewline()
	fmt.Print(report.ClusterSummary(result.Clusters))
	for _, cid := range cluster.ClusterIDs(result.Clusters) {
		if subs := result.Subgroups[cid]; len(subs) > 0 {
			printNewline()
			fmt.Print(report.SubgroupSummary(cid, subs))
		}
	}
	printStats(result.Stats.RouteCount, result.Stats.ClusterCount, result.CacheInfo.ClusterHit)

	rep := store.NewReport(opts.target, store.Options{
		Reduce:            popts.Reduce,
		UseStrategicBonds: popts.UseStrategicBonds,
		PostProcess:       popts.PostProcess,
	})
	rep.RouteCount = result.Stats.RouteCount
	rep.Clusters = store.RecordClusters(result.Clusters, result.Subgroups)

	if opts.output != "" {
		if err := writeReportJSON(rep, opts.output); err != nil {
			return err
		}
		printFile(opts.output)
	}

	if !opts.noSave {
		st, err := c.newStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close(ctx)
		if err := st.Set(ctx, rep); err != nil {
			return fmt.Errorf("store report: %w", err)
		}
		printSuccess("Saved report %s", rep.ID)
		printNextStep("Inspect it with", fmt.Sprintf("%s report show %s", appName, rep.ID))
	}

	return nil
}
