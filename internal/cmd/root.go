package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dendrascience/wordclass/version"
)

// NewRootCmd creates and returns the root cobra command for the wordclass CLI.
// It sets up all subcommands, command groups, and basic configuration.
//
// Called with file arguments and no subcommand, the root command behaves
// exactly like count.
func NewRootCmd() *cobra.Command {
	var flags countFlags

	rootCmd := &cobra.Command{
		Use:   "wordclass [flags] FILE...",
		Short: "wordclass - concurrent word and vowel-class counter",
		Long: `wordclass counts words in text files and, for each vowel class
(A E I O U Y) and the soft C (Ç), how many distinct words contain it,
ignoring case and diacritics.

Use subcommands to perform different operations:
  - count: Count words and vowel classes (the default)
  - chunks: Show how files are split into chunks
  - seed: Generate synthetic text files`,
		Version: version.GetFullVersion(),
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runCount(cmd, args, &flags)
		},
	}
	flags.register(rootCmd.Flags())

	groupCounting := "counting"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupCounting,
		Title: "Counting",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	countCmd := NewCountCmd()
	chunksCmd := NewChunksCmd()
	seedCmd := NewSeedCmd()

	countCmd.GroupID = groupCounting
	chunksCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities

	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(chunksCmd)
	rootCmd.AddCommand(seedCmd)

	return rootCmd
}
