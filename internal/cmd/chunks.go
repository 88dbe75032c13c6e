package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dendrascience/wordclass/chunk"
	"github.com/dendrascience/wordclass/segment"
)

// NewChunksCmd creates and returns the chunks subcommand.
// It shows where the segmenter would cut each file without counting anything.
func NewChunksCmd() *cobra.Command {
	var (
		policy  = segment.WordAware
		target  int
		max     int
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "chunks [flags] FILE...",
		Short: "Show how files are split into chunks",
		Long: `Show how each file would be split into chunks under the selected policy.

For every file this prints the number of chunks, their sizes and how many
boundaries fall inside a word. Words cut by a boundary are counted once on
each side, so comparing --policy strict with --policy word shows how much
the strict policy over-counts.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []segment.Option{
				segment.WithPolicy(policy),
				segment.WithTargetSize(target),
				segment.WithMaxSize(max),
			}
			// Fail on bad options before touching any file.
			if _, err := segment.New(opts...); err != nil {
				return err
			}
			return runChunks(cmd.OutOrStdout(), args, opts, verbose)
		},
	}

	cmd.Flags().Var(&policy, "policy", "Chunk policy: word or strict")
	cmd.Flags().IntVar(&target, "target", chunk.DefaultTargetSize, "Soft chunk size in bytes")
	cmd.Flags().IntVar(&max, "max", chunk.DefaultMaxSize, "Hard chunk size in bytes")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List every chunk")

	return cmd
}

type layoutStats struct {
	chunks   int
	bytes    int64
	smallest int
	largest  int
	splits   int
	forced   int
}

func summarize(bounds []segment.Boundary) layoutStats {
	var s layoutStats
	for i, b := range bounds {
		s.chunks++
		s.bytes += int64(b.Size)
		if i == 0 || b.Size < s.smallest {
			s.smallest = b.Size
		}
		if b.Size > s.largest {
			s.largest = b.Size
		}
		if b.Splits {
			s.splits++
		}
		if b.Forced {
			s.forced++
		}
	}
	return s
}

func runChunks(w io.Writer, files []string, opts []segment.Option, verbose bool) error {
	var totalChunks, totalSplits, skipped int

	for _, name := range files {
		bounds, err := layoutFile(name, opts)
		if err != nil {
			fmt.Fprintf(w, "%s: skipped: %v\n", name, err)
			skipped++
			continue
		}

		s := summarize(bounds)
		totalChunks += s.chunks
		totalSplits += s.splits
		fmt.Fprintf(w, "%s: %d chunks, %d bytes, sizes %d..%d, %d split words, %d forced\n",
			name, s.chunks, s.bytes, s.smallest, s.largest, s.splits, s.forced)

		if verbose {
			for _, b := range bounds {
				var flags string
				if b.Splits {
					flags += " split"
				}
				if b.Forced {
					flags += " forced"
				}
				fmt.Fprintf(w, "  #%d offset=%d size=%d%s\n", b.Seq, b.Offset, b.Size, flags)
			}
		}
	}

	_, err := fmt.Fprintf(w, "\nFiles: %d (%d skipped)\nChunks: %d\nSplit words: %d\n",
		len(files), skipped, totalChunks, totalSplits)
	return err
}

func layoutFile(name string, opts []segment.Option) ([]segment.Boundary, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return segment.Layout(f, opts...)
}
