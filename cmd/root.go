package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/ethproofs/config"
	"github.com/s0up4200/ethproofs/ethproofs"
	"github.com/s0up4200/ethproofs/filter"
)

var (
	cfgFile   string
	cfg       *config.Config
	logger    zerolog.Logger
	client    *ethproofs.Client
	filters   *filter.Manager
	evaluator *filter.ConcurrentEvaluator

	// logOutput is where the logger writes
	logOutput io.Writer = os.Stderr

	// Global flags
	staging    bool
	outputMode string

	// Command flags
	filterExpr string
	preset     string
	dryRun     bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ethproofs",
	Short: "A command line client for the ethproofs API",
	Long: `ethproofs talks to the ethproofs.org API. It registers clusters and
single machines, reports proof progress for blocks and lists the proofs,
clusters and cloud instances known to the service.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&staging, "staging", false, "use the staging environment")
	rootCmd.PersistentFlags().StringVarP(&outputMode, "output", "o", outputTable, "output format (table or json)")
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	if outputMode != outputTable && outputMode != outputJSON {
		return fmt.Errorf("invalid output format: %s (must be 'table' or 'json')", outputMode)
	}

	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override environment from command line if specified
	if staging {
		cfg.API.Environment = config.EnvironmentStaging
	}

	// Setup logger
	logger = setupLogger(cfg.Logging, logOutput)

	client, err = ethproofs.NewClientWithBaseURL(cfg.API.BaseURL(), cfg.API.Key,
		ethproofs.WithTimeout(cfg.API.Timeout),
		ethproofs.WithUserAgent(userAgent()),
		ethproofs.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create ethproofs client: %w", err)
	}

	filters = filter.NewManager(filter.WithCompiler(newFilterCompiler()))
	if err := filters.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}
	evaluator = filter.NewConcurrentEvaluator(
		filter.WithWorkers(cfg.Batch.Concurrency),
		filter.WithBatchSize(ethproofs.DefaultListLimit),
	)

	logger.Debug().
		Str("url", client.BaseURL()).
		Str("environment", cfg.API.Environment).
		Msg("Client initialized")

	return nil
}

// skipInitialization replaces initializeApp for commands that need no config
func skipInitialization(*cobra.Command, []string) error {
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(out),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func userAgent() string {
	ua := cfg.API.UserAgent
	if ua == "" {
		ua = ethproofs.DefaultUserAgent
	}
	if version != "" && version != "dev" {
		ua += "/" + strings.TrimPrefix(version, "v")
	}
	return ua
}

// newFilterCompiler adds getenv to the expression helpers so presets can
// refer to values such as the team id without hardcoding them
func newFilterCompiler() filter.CachingCompiler {
	return filter.NewExprCompiler(
		filter.WithCache(100),
		filter.WithCustomFunctions(map[string]any{
			"getenv": os.Getenv,
		}),
	)
}

// resolveFilter returns the filter selected by --filter or --preset, or nil
func resolveFilter() (filter.CompiledFilter, error) {
	f, err := filters.Resolve(preset, filterExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	return f, nil
}

// selectRecords narrows records to those matching the selected filter
func selectRecords[R filter.Record](ctx context.Context, records []R) ([]R, error) {
	f, err := resolveFilter()
	if err != nil || f == nil {
		return records, err
	}

	logger.Debug().Str("filter", f.Expression()).Int("records", len(records)).Msg("Applying filter")

	return filter.Select(ctx, evaluator, f, records)
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}
