package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/ethproofs/ethproofs"
	"github.com/s0up4200/ethproofs/filter"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Test the connection to ethproofs",
	Long:  `Check the API key against ethproofs and display basic information about your team.`,
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// statusReport is what the status command prints
type statusReport struct {
	URL            string        `json:"url"`
	Environment    string        `json:"environment"`
	Clusters       int           `json:"clusters"`
	CloudInstances int           `json:"cloud_instances"`
	Proofs         uint64        `json:"proofs"`
	Latency        time.Duration `json:"latency"`
	Presets        []string      `json:"presets"`
	// PresetMatches counts the matches of each preset in the latest page of proofs
	PresetMatches map[string]int `json:"preset_matches,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Testing connection to ethproofs at %s...\n", client.BaseURL())

	report := statusReport{
		URL:         client.BaseURL(),
		Environment: cfg.API.Environment,
		Presets:     filters.ListFilters(),
	}

	start := time.Now()
	g, ctx := errgroup.WithContext(cmd.Context())

	g.Go(func() error {
		clusters, err := client.ListClusters(ctx)
		if err != nil {
			return fmt.Errorf("failed to list clusters: %w", err)
		}
		report.Clusters = len(clusters.Clusters)
		return nil
	})

	g.Go(func() error {
		instances, err := client.ListCloudInstances(ctx, "")
		if err != nil {
			return fmt.Errorf("failed to list cloud instances: %w", err)
		}
		report.CloudInstances = len(instances)
		return nil
	})

	g.Go(func() error {
		page, err := client.ListProofs(ctx, ethproofs.ListProofsRequest{})
		if err != nil {
			return fmt.Errorf("failed to list proofs: %w", err)
		}
		report.Proofs = page.TotalCount

		matches, err := matchPresets(ctx, filter.Proofs(page.Proofs))
		if err != nil {
			return err
		}
		report.PresetMatches = matches
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	report.Latency = time.Since(start).Round(time.Millisecond)

	return render(cmd.OutOrStdout(), report, func(tw *tabwriter.Writer) {
		row(tw, "✓ Connection successful!")
		row(tw)
		row(tw, "Environment:", report.Environment)
		row(tw, "Your clusters:", report.Clusters)
		row(tw, "Cloud instances:", report.CloudInstances)
		row(tw, "Proofs:", report.Proofs)
		row(tw, "Latency:", report.Latency)
		for _, name := range report.Presets {
			row(tw, "Preset "+name+":", fmt.Sprintf("%d of latest proofs", report.PresetMatches[name]))
		}
	})
}

// matchPresets evaluates every preset against records in one pass
func matchPresets[R filter.Record](ctx context.Context, records []R) (map[string]int, error) {
	presets := make(map[string]filter.CompiledFilter)
	for _, name := range filters.ListFilters() {
		if f, ok := filters.GetFilter(name); ok {
			presets[name] = f
		}
	}
	if len(presets) == 0 {
		return nil, nil
	}

	selected, err := filter.SelectBatch(ctx, evaluator, presets, records)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate presets: %w", err)
	}

	counts := make(map[string]int, len(presets))
	for name := range presets {
		counts[name] = len(selected[name])
	}
	return counts, nil
}
