// Package cmd provides the command-line interface implementation for wordclass.
//
// This package contains all the subcommand implementations for the wordclass CLI tool.
// It uses the Cobra library for command structure and Fang for beautiful styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator; with file arguments it runs count
//   - count: Run the counting pipeline and print the per-file report
//   - chunks: Show where the segmenter cuts each file
//   - seed: Generate synthetic text files
//
// Each command is implemented as a separate file with its own constructor function
// that returns a *cobra.Command. Settings come from defaults, an optional YAML
// file (internal/config) and the flags the user actually set, in that order.
package cmd
