package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dendrascience/wordclass/internal/config"
	"github.com/dendrascience/wordclass/internal/logging"
	"github.com/dendrascience/wordclass/internal/metrics"
	"github.com/dendrascience/wordclass/pipeline"
	"github.com/dendrascience/wordclass/report"
	"github.com/dendrascience/wordclass/segment"
)

// countFlags holds the flags shared by the root and count commands.
type countFlags struct {
	configPath  string
	workers     int
	queue       int
	policy      segment.Policy
	target      int
	max         int
	metricsFile string
	noColor     bool
	verbose     bool
	logLevel    string
	logFormat   string
}

func (f *countFlags) register(fs *pflag.FlagSet) {
	def := config.Default()
	f.policy = segment.WordAware

	fs.StringVar(&f.configPath, "config", "", "Path to a YAML config file")
	fs.IntVarP(&f.workers, "workers", "t", def.Workers, "Number of analyzer workers")
	fs.IntVarP(&f.queue, "queue", "p", def.Queue, "Capacity of the chunk queue")
	fs.Var(&f.policy, "policy", "Chunk policy: word or strict")
	fs.IntVar(&f.target, "target", def.TargetSize, "Soft chunk size in bytes")
	fs.IntVar(&f.max, "max", def.MaxSize, "Hard chunk size in bytes")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file when done")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable colored output")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Print per-worker termination lines")
	fs.StringVar(&f.logLevel, "log-level", def.Log.Level, "Log level: debug, info, warn or error")
	fs.StringVar(&f.logFormat, "log-format", def.Log.Format, "Log format: text or json")
}

// resolve layers the flags the user set on top of the config file.
func (f *countFlags) resolve(fs *pflag.FlagSet) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	if fs.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fs.Changed("queue") {
		cfg.Queue = f.queue
	}
	if fs.Changed("policy") {
		cfg.Policy = f.policy.String()
	}
	if fs.Changed("target") {
		cfg.TargetSize = f.target
	}
	if fs.Changed("max") {
		cfg.MaxSize = f.max
	}
	if fs.Changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
	if fs.Changed("no-color") {
		cfg.NoColor = f.noColor
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
	return cfg, cfg.Validate()
}

// NewCountCmd creates and returns the count subcommand.
// It runs the counting pipeline over the given files and prints the report.
func NewCountCmd() *cobra.Command {
	var flags countFlags

	cmd := &cobra.Command{
		Use:   "count [flags] FILE...",
		Short: "Count words and vowel classes in text files",
		Long: `Count the words in each file and, for every vowel class, how many
distinct words contain it at least once.

Files are split into chunks by a single reader and analyzed by a pool of
workers. Files that cannot be read are reported as skipped and do not
change the exit status.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd, args, &flags)
		},
	}
	flags.register(cmd.Flags())

	return cmd
}

func runCount(cmd *cobra.Command, files []string, flags *countFlags) error {
	cfg, err := flags.resolve(cmd.Flags())
	if err != nil {
		return err
	}
	segOpts, err := cfg.SegmentOptions()
	if err != nil {
		return err
	}

	runID := uuid.New()
	logger, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
		RunID:  runID.String(),
	})
	if err != nil {
		return err
	}

	var m *metrics.Metrics
	if cfg.MetricsFile != "" {
		m = metrics.New()
	}

	res, err := pipeline.Run(cmd.Context(), files, pipeline.Settings{
		Workers:       cfg.Workers,
		QueueCapacity: cfg.Queue,
		Segment:       segOpts,
		RunID:         runID,
		Logger:        logger,
		Metrics:       m,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	color := false
	if f, ok := out.(*os.File); ok && !cfg.NoColor {
		color = report.ColorEnabled(f)
	}
	printer := report.NewPrinter(out, report.Options{Color: color, Workers: flags.verbose})
	if err := printer.Print(res); err != nil {
		return err
	}

	if m != nil {
		if err := m.WriteFile(cfg.MetricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		logger.Debug("metrics written", slog.String("path", cfg.MetricsFile))
	}
	return nil
}
