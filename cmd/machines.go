package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// machinesCmd groups the single-machine commands
var machinesCmd = &cobra.Command{
	Use:   "machines",
	Short: "Manage single-machine provers",
}

// machinesCreateCmd represents the machines create command
var machinesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a single machine defined in the config file",
	Long: `Register a single-machine prover. The machine is described under
machines.<name> in the config file and selected with --from.`,
	Args: cobra.NoArgs,
	RunE: runMachinesCreate,
}

func init() {
	rootCmd.AddCommand(machinesCmd)
	machinesCmd.AddCommand(machinesCreateCmd)

	machinesCreateCmd.Flags().StringVar(&fromName, "from", "", "name of the machine definition in the config file")
	machinesCreateCmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "print the request body without sending it")
	_ = machinesCreateCmd.MarkFlagRequired("from")
}

func runMachinesCreate(cmd *cobra.Command, args []string) error {
	def, err := cfg.Machine(fromName)
	if err != nil {
		return err
	}

	req, err := def.Request()
	if err != nil {
		return fmt.Errorf("machine %q is invalid: %w", fromName, err)
	}

	if dryRun {
		return printDryRun(cmd, req)
	}

	logger.Info().
		Str("nickname", req.Nickname()).
		Str("cloud_instance", req.CloudInstanceName()).
		Msg("Creating single machine")

	resp, err := client.CreateSingleMachine(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("failed to create single machine: %w", err)
	}

	return render(cmd.OutOrStdout(), resp, func(tw *tabwriter.Writer) {
		row(tw, "✓ Created single machine", req.Nickname(), fmt.Sprintf("(ID: %d)", resp.MachineID))
	})
}
