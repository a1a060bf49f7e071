package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/s0up4200/ethproofs/ethproofs"
)

// blocksCmd groups the block commands
var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Inspect blocks",
}

// blocksGetCmd represents the blocks get command
var blocksGetCmd = &cobra.Command{
	Use:   "get <number|hash>",
	Short: "Show the details of a block",
	Long:  `Show a block as recorded by ethproofs, looked up by block number or by 0x-prefixed hash.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runBlocksGet,
}

func init() {
	rootCmd.AddCommand(blocksCmd)
	blocksCmd.AddCommand(blocksGetCmd)
}

func runBlocksGet(cmd *cobra.Command, args []string) error {
	block := ethproofs.ParseNumberOrString(args[0])

	details, err := client.GetBlockDetails(cmd.Context(), block)
	if err != nil {
		return fmt.Errorf("failed to get block %s: %w", block, err)
	}

	return render(cmd.OutOrStdout(), details, func(tw *tabwriter.Writer) {
		row(tw, "Block:", details.BlockNumber)
		row(tw, "Hash:", details.Hash)
		row(tw, "Timestamp:", details.Timestamp)
		row(tw, "Gas used:", details.GasUsed)
		row(tw, "Transactions:", details.TransactionCount)
		row(tw, "Created:", details.CreatedAt)
		row(tw, "Updated:", orDash(details.UpdatedAt))
	})
}
