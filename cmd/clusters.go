package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/s0up4200/ethproofs/ethproofs"
	"github.com/s0up4200/ethproofs/filter"
)

var fromName string

// clustersCmd groups the cluster commands
var clustersCmd = &cobra.Command{
	Use:   "clusters",
	Short: "Manage proving clusters",
}

// clustersListCmd represents the clusters list command
var clustersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the clusters of your team",
	Long: `List the clusters of the team owning the API key.

Clusters can be narrowed with an expression, for example:
  ethproofs clusters list --filter 'GPUs >= 8 and contains(Nickname, "prod")'`,
	Args: cobra.NoArgs,
	RunE: runClustersList,
}

// clustersActiveCmd represents the clusters active command
var clustersActiveCmd = &cobra.Command{
	Use:   "active <team-id>",
	Short: "List the active cluster IDs of a team",
	Args:  cobra.ExactArgs(1),
	RunE:  runClustersActive,
}

// clustersCreateCmd represents the clusters create command
var clustersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a cluster defined in the config file",
	Long: `Register a multi-machine cluster. The cluster is described under
clusters.<name> in the config file and selected with --from.`,
	Args: cobra.NoArgs,
	RunE: runClustersCreate,
}

func init() {
	rootCmd.AddCommand(clustersCmd)
	clustersCmd.AddCommand(clustersListCmd, clustersActiveCmd, clustersCreateCmd)

	addFilterFlags(clustersListCmd)

	clustersCreateCmd.Flags().StringVar(&fromName, "from", "", "name of the cluster definition in the config file")
	clustersCreateCmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "print the request body without sending it")
	_ = clustersCreateCmd.MarkFlagRequired("from")
}

func runClustersList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	resp, err := client.ListClusters(ctx)
	if err != nil {
		return fmt.Errorf("failed to list clusters: %w", err)
	}

	matched, err := selectRecords(ctx, filter.Clusters(resp.Clusters))
	if err != nil {
		return err
	}

	clusters := make([]ethproofs.ClusterData, len(matched))
	for i, c := range matched {
		clusters[i] = ethproofs.ClusterData(c)
	}

	out := cmd.OutOrStdout()
	if outputMode == outputTable && len(clusters) == 0 {
		fmt.Fprintln(out, "No clusters found.")
		return nil
	}

	return render(out, clusters, func(tw *tabwriter.Writer) {
		row(tw, "ID", "NICKNAME", "CYCLE TYPE", "PROOF TYPE", "MACHINES", "DESCRIPTION")
		for _, c := range clusters {
			row(tw, uintOrDash(c.ID), c.Nickname, orDash(c.CycleType), orDash(c.ProofType),
				machineSummary(c.Machines), truncate(orDash(c.Description), 40))
		}
	})
}

func machineSummary(machines []ethproofs.MachineData) string {
	if len(machines) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(machines))
	for _, m := range machines {
		name := m.CloudInstance.InstanceName
		if name == "" {
			name = m.Machine.CPUModel
		}
		parts = append(parts, fmt.Sprintf("%dx %s", m.MachineCount, name))
	}
	return strings.Join(parts, ", ")
}

func runClustersActive(cmd *cobra.Command, args []string) error {
	ids, err := client.ListActiveClustersForTeam(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list active clusters: %w", err)
	}

	out := cmd.OutOrStdout()
	if outputMode == outputTable && len(ids) == 0 {
		fmt.Fprintf(out, "Team %s has no active clusters.\n", args[0])
		return nil
	}

	return render(out, ids, func(tw *tabwriter.Writer) {
		row(tw, "ID")
		for _, id := range ids {
			row(tw, id.ID)
		}
	})
}

func runClustersCreate(cmd *cobra.Command, args []string) error {
	def, err := cfg.Cluster(fromName)
	if err != nil {
		return err
	}

	req, err := def.Request()
	if err != nil {
		return fmt.Errorf("cluster %q is invalid: %w", fromName, err)
	}

	if dryRun {
		return printDryRun(cmd, req)
	}

	logger.Info().Str("nickname", req.Nickname()).Int("configurations", len(req.Configuration())).Msg("Creating cluster")

	resp, err := client.CreateCluster(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("failed to create cluster: %w", err)
	}

	return render(cmd.OutOrStdout(), resp, func(tw *tabwriter.Writer) {
		row(tw, "✓ Created cluster", req.Nickname(), fmt.Sprintf("(ID: %d)", resp.ID))
	})
}

// printDryRun prints the body a request would send
func printDryRun(cmd *cobra.Command, req ethproofs.Request) error {
	body, err := req.Body()
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "[DRY RUN] %s %s\n", req.Method(), req.Endpoint())
	fmt.Fprintln(cmd.OutOrStdout(), string(body))
	return nil
}
