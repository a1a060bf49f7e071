package cmd

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/s0up4200/ethproofs/ethproofs"
	"github.com/s0up4200/ethproofs/filter"
)

var (
	// proofs list flags
	listBlock    string
	listClusters []string
	listLimit    uint64
	listOffset   uint64
	listAll      bool

	// proofs download flags
	outDir  string
	outFile string

	// proofs proved flags
	provingTime   uint64
	provingCycles uint64
	proofFile     string
	verifierID    string
)

// proofsCmd groups the proof commands
var proofsCmd = &cobra.Command{
	Use:   "proofs",
	Short: "List, download and report proofs",
}

// proofsListCmd represents the proofs list command
var proofsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List proofs",
	Long: `List proofs, optionally narrowed to one block and a set of clusters.

Use --all to walk every page. Listed proofs can be filtered with an
expression, for example:
  ethproofs proofs list --all --filter 'isProved() and seconds(ProvingTime) > 30'`,
	Args: cobra.NoArgs,
	RunE: runProofsList,
}

// proofsDownloadCmd represents the proofs download command
var proofsDownloadCmd = &cobra.Command{
	Use:   "download <proof-id>...",
	Short: "Download one or more proofs",
	Long: `Download proofs by ID. Several IDs are downloaded concurrently
(batch.concurrency in the config file). With --out-dir each proof is written
to <dir>/<proof-id>.proof.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProofsDownload,
}

// proofsDownloadBlockCmd represents the proofs download-block command
var proofsDownloadBlockCmd = &cobra.Command{
	Use:   "download-block <block-hash>",
	Short: "Download every proof of a block as a ZIP archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runProofsDownloadBlock,
}

// proofsQueueCmd represents the proofs queue command
var proofsQueueCmd = &cobra.Command{
	Use:   "queue <cluster-id> <block>...",
	Short: "Mark blocks as queued for proving by a cluster",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runProofsTransition(ethproofs.ProofStatusQueued),
}

// proofsProvingCmd represents the proofs proving command
var proofsProvingCmd = &cobra.Command{
	Use:   "proving <cluster-id> <block>...",
	Short: "Mark blocks as being proved by a cluster",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runProofsTransition(ethproofs.ProofStatusProving),
}

// proofsProvedCmd represents the proofs proved command
var proofsProvedCmd = &cobra.Command{
	Use:   "proved <cluster-id> <block>",
	Short: "Submit a finished proof",
	Long: `Submit the proof of a block. The proof file is read as raw bytes and
sent base64 encoded.`,
	Args: cobra.ExactArgs(2),
	RunE: runProofsProved,
}

func init() {
	rootCmd.AddCommand(proofsCmd)
	proofsCmd.AddCommand(proofsListCmd, proofsDownloadCmd, proofsDownloadBlockCmd,
		proofsQueueCmd, proofsProvingCmd, proofsProvedCmd)

	proofsListCmd.Flags().StringVar(&listBlock, "block", "", "block number or hash")
	proofsListCmd.Flags().StringSliceVar(&listClusters, "clusters", nil, "cluster IDs (comma-separated)")
	proofsListCmd.Flags().Uint64Var(&listLimit, "limit", ethproofs.DefaultListLimit, "page size")
	proofsListCmd.Flags().Uint64Var(&listOffset, "offset", ethproofs.DefaultListOffset, "page offset")
	proofsListCmd.Flags().BoolVar(&listAll, "all", false, "fetch every page")
	addFilterFlags(proofsListCmd)

	proofsDownloadCmd.Flags().StringVar(&outDir, "out-dir", "", "write each proof to this directory")
	proofsDownloadBlockCmd.Flags().StringVar(&outFile, "out", "", "write the ZIP archive to this file")

	proofsProvedCmd.Flags().Uint64Var(&provingTime, "time", 0, "proving time in milliseconds")
	proofsProvedCmd.Flags().Uint64Var(&provingCycles, "cycles", 0, "proving cycles")
	proofsProvedCmd.Flags().StringVar(&proofFile, "proof-file", "", "file holding the proof")
	proofsProvedCmd.Flags().StringVar(&verifierID, "verifier", "", "verifier ID (vkey or image ID)")
	_ = proofsProvedCmd.MarkFlagRequired("time")
	_ = proofsProvedCmd.MarkFlagRequired("proof-file")
}

func runProofsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if listLimit > ethproofs.MaxListLimit {
		return fmt.Errorf("--limit must be at most %d", ethproofs.MaxListLimit)
	}

	req := ethproofs.ListProofsRequest{
		Clusters: listClusters,
		Limit:    listLimit,
		Offset:   listOffset,
	}
	if listBlock != "" {
		block := ethproofs.ParseNumberOrString(listBlock)
		req.Block = &block
	}

	var (
		records []ethproofs.ProofRecord
		total   uint64
	)
	if listAll {
		all, err := client.ListAllProofs(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to list proofs: %w", err)
		}
		records = all
		total = uint64(len(all))
	} else {
		page, err := client.ListProofs(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to list proofs: %w", err)
		}
		records = page.Proofs
		total = page.TotalCount
		if page.HasMorePages() {
			logger.Info().
				Uint64("total", page.TotalCount).
				Uint64("next_offset", page.Offset+uint64(len(page.Proofs))).
				Msg("More proofs available, use --offset or --all")
		}
	}

	matched, err := selectRecords(ctx, filter.Proofs(records))
	if err != nil {
		return err
	}

	proofs := make([]ethproofs.ProofRecord, len(matched))
	for i, p := range matched {
		proofs[i] = ethproofs.ProofRecord(p)
	}

	out := cmd.OutOrStdout()
	if outputMode == outputTable && len(proofs) == 0 {
		fmt.Fprintln(out, "No proofs found.")
		return nil
	}

	return render(out, proofs, func(tw *tabwriter.Writer) {
		row(tw, "PROOF ID", "BLOCK", "STATUS", "CLUSTER", "TEAM", "PROVING TIME", "CYCLES")
		for _, p := range proofs {
			team := "-"
			if p.Team != nil {
				team = p.Team.Name
			}
			cluster := p.ClusterID
			if p.ClusterVersion != nil && p.ClusterVersion.Cluster.Nickname != nil {
				cluster = *p.ClusterVersion.Cluster.Nickname
			}
			row(tw, p.ProofID, p.BlockNumber, p.ProofStatus, truncate(cluster, 36), team,
				formatMillis(p.ProvingTime), uintOrDash(p.ProvingCycles))
		}
		fmt.Fprintf(tw, "\nShowing %d of %d %s\n", len(proofs), total, plural(int(total), "proof", "proofs"))
	})
}

func formatMillis(ms *uint64) string {
	if ms == nil {
		return "-"
	}
	return strconv.FormatFloat(float64(*ms)/1000, 'f', 2, 64) + "s"
}

func runProofsDownload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	ids := slices.Compact(slices.Sorted(slices.Values(args)))

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	logger.Info().Int("count", len(ids)).Msg("Downloading proofs")

	result := client.BatchDownloadProofs(ctx, ids, cfg.Batch.Concurrency)
	for _, f := range result.Failed {
		logger.Error().Err(f.Err).Str("proof_id", f.Item).Msg("Download failed")
	}

	if outDir != "" {
		for id, proof := range result.Successful {
			path := filepath.Join(outDir, id+".proof")
			if err := os.WriteFile(path, []byte(proof.ProofBinaryFile), 0o644); err != nil {
				return fmt.Errorf("failed to write proof %s: %w", id, err)
			}
			logger.Debug().Str("path", path).Msg("Proof written")
		}
	}

	out := cmd.OutOrStdout()
	err := render(out, result.Successful, func(tw *tabwriter.Writer) {
		row(tw, "PROOF ID", "BYTES", "FILE")
		for _, id := range ids {
			proof, ok := result.Successful[id]
			if !ok {
				continue
			}
			file := "-"
			if outDir != "" {
				file = filepath.Join(outDir, id+".proof")
			}
			row(tw, id, len(proof.ProofBinaryFile), file)
		}
	})
	if err != nil {
		return err
	}

	if len(result.Failed) > 0 {
		return fmt.Errorf("%d of %d downloads failed", len(result.Failed), result.Requested)
	}
	return nil
}

func runProofsDownloadBlock(cmd *cobra.Command, args []string) error {
	resp, err := client.DownloadProofs(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to download proofs of block %s: %w", args[0], err)
	}

	if outFile != "" {
		if err := os.WriteFile(outFile, []byte(resp.ProofsZipFile), 0o644); err != nil {
			return fmt.Errorf("failed to write archive: %w", err)
		}
	}

	return render(cmd.OutOrStdout(), resp, func(tw *tabwriter.Writer) {
		if outFile != "" {
			row(tw, "✓ Archive written to", outFile)
			return
		}
		row(tw, "Archive size:", fmt.Sprintf("%d bytes", len(resp.ProofsZipFile)))
		row(tw, "Use --out to save it or --output json to print it.")
	})
}

func runProofsTransition(status ethproofs.ProofStatus) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		clusterID, err := parseUint("cluster ID", args[0])
		if err != nil {
			return err
		}

		blocks := make([]uint64, 0, len(args)-1)
		for _, arg := range args[1:] {
			block, err := parseUint("block number", arg)
			if err != nil {
				return err
			}
			blocks = append(blocks, block)
		}
		slices.Sort(blocks)
		blocks = slices.Compact(blocks)

		logger.Info().
			Str("status", status.String()).
			Uint64("cluster_id", clusterID).
			Int("blocks", len(blocks)).
			Msg("Reporting proof status")

		result, err := client.BatchTransition(cmd.Context(), status, clusterID, blocks, cfg.Batch.Concurrency)
		if err != nil {
			return err
		}
		for _, f := range result.Failed {
			logger.Error().Err(f.Err).Str("item", f.Item).Msg("Status update failed")
		}

		err = render(cmd.OutOrStdout(), result.Successful, func(tw *tabwriter.Writer) {
			row(tw, "BLOCK", "PROOF ID", "STATUS")
			for _, block := range blocks {
				if proofID, ok := result.Successful[block]; ok {
					row(tw, block, proofID, status)
				}
			}
		})
		if err != nil {
			return err
		}

		if len(result.Failed) > 0 {
			return fmt.Errorf("%d of %d status updates failed", len(result.Failed), result.Requested)
		}
		return nil
	}
}

func runProofsProved(cmd *cobra.Command, args []string) error {
	clusterID, err := parseUint("cluster ID", args[0])
	if err != nil {
		return err
	}
	block, err := parseUint("block number", args[1])
	if err != nil {
		return err
	}

	data, err := os.ReadFile(proofFile)
	if err != nil {
		return fmt.Errorf("failed to read proof file: %w", err)
	}
	if len(data) == 0 {
		return fmt.Errorf("proof file %s is empty", proofFile)
	}

	req := ethproofs.ProvedProofRequest{
		BlockNumber: block,
		ClusterID:   clusterID,
		ProvingTime: provingTime,
		Proof:       base64.StdEncoding.EncodeToString(data),
	}
	if cmd.Flags().Changed("cycles") {
		req.ProvingCycles = ethproofs.Ptr(provingCycles)
	}
	if verifierID != "" {
		req.VerifierID = ethproofs.Ptr(verifierID)
	}

	logger.Info().
		Uint64("block", block).
		Uint64("cluster_id", clusterID).
		Int("proof_bytes", len(data)).
		Msg("Submitting proof")

	resp, err := client.ProvedProof(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("failed to submit proof: %w", err)
	}

	return render(cmd.OutOrStdout(), resp, func(tw *tabwriter.Writer) {
		row(tw, "✓ Proof submitted", fmt.Sprintf("(ID: %d)", resp.ProofID))
	})
}

func parseUint(what, s string) (uint64, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an unsigned integer", what, s)
	}
	return n, nil
}
