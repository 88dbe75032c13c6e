package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dendrascience/wordclass/internal/corpus"
)

// NewSeedCmd creates and returns the seed subcommand.
// It generates synthetic text files to feed the counter.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		fileCount  int
		fileSize   int
		seed       int64
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate synthetic text files",
		Long: `Generate text files for testing and benchmarking wordclass.

The text is built from a fixed vocabulary that covers every vowel class,
the usual diacritics, the cedilla, apostrophes, underscores, typographic
quotes and dashes. File names are UUIDs. The same --seed always produces
the same files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			if verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "Generating %d files of ~%d bytes in %s (seed %d)\n",
					fileCount, fileSize, outputPath, seed)
			}

			paths, err := corpus.New(seed).WriteFiles(outputPath, fileCount, fileSize)
			if err != nil {
				return err
			}

			if verbose {
				for _, p := range paths {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d files\n", len(paths))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 10, "Number of files to generate")
	cmd.Flags().IntVarP(&fileSize, "size", "s", 64*1024, "Approximate size of each file in bytes")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (default: current time)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}
