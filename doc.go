// Package main provides the wordclass command-line interface.
//
// wordclass counts the words in text files and, for each vowel class
// (A E I O U Y) and the soft C (Ç), how many distinct words contain it,
// regardless of case or diacritic. Files are cut into chunks by a single
// segmenter, handed through a bounded queue to a fixed pool of workers, and
// merged into per-file totals.
//
// The main binary supports multiple subcommands:
//   - count: Count words and vowel classes (also the default with file arguments)
//   - chunks: Show how files are split into chunks
//   - seed: Generate synthetic text files
package main
