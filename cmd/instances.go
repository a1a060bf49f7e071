package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/s0up4200/ethproofs/ethproofs"
	"github.com/s0up4200/ethproofs/filter"
)

var provider string

// instancesCmd groups the cloud instance commands
var instancesCmd = &cobra.Command{
	Use:   "instances",
	Short: "Browse the cloud instances known to ethproofs",
}

// instancesListCmd represents the instances list command
var instancesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cloud instances",
	Long: `List the priced cloud instances. Instance names are what
cloud_instance_name refers to in cluster and machine definitions.

Example:
  ethproofs instances list --provider aws --filter 'GPUCount >= 4 and HourlyPrice < 20'`,
	Args: cobra.NoArgs,
	RunE: runInstancesList,
}

func init() {
	rootCmd.AddCommand(instancesCmd)
	instancesCmd.AddCommand(instancesListCmd)

	instancesListCmd.Flags().StringVar(&provider, "provider", "", "only list instances of this provider")
	addFilterFlags(instancesListCmd)
}

func runInstancesList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	resp, err := client.ListCloudInstances(ctx, provider)
	if err != nil {
		return fmt.Errorf("failed to list cloud instances: %w", err)
	}

	matched, err := selectRecords(ctx, filter.Instances(resp))
	if err != nil {
		return err
	}

	instances := make([]ethproofs.CloudInstance, len(matched))
	for i, inst := range matched {
		instances[i] = ethproofs.CloudInstance(inst)
	}

	out := cmd.OutOrStdout()
	if outputMode == outputTable && len(instances) == 0 {
		fmt.Fprintln(out, "No cloud instances found.")
		return nil
	}

	return render(out, instances, func(tw *tabwriter.Writer) {
		row(tw, "PROVIDER", "INSTANCE", "REGION", "$/HOUR", "CPU", "MEMORY", "GPU")
		for _, inst := range instances {
			gpu := "-"
			if inst.GPUCount != nil && *inst.GPUCount > 0 {
				gpu = fmt.Sprintf("%dx %s", *inst.GPUCount, orDash(inst.GPUName))
			}
			row(tw, inst.Provider, inst.InstanceName, inst.Region,
				fmt.Sprintf("%.2f", inst.HourlyPrice),
				fmt.Sprintf("%d cores", inst.CPUCores),
				fmt.Sprintf("%d GB", inst.Memory), gpu)
		}
	})
}
