// Package charclass decodes raw text bytes into logical characters and tags
// each one with its role in a word.
//
// The tables in this package are the only place that knows about byte
// values. Everything downstream (the segmenter and the word scanner) works
// on the semantic tags returned by Decode:
//   - Letter: anything that is not listed below, including digits
//   - Separator: whitespace, sentence punctuation, brackets and the
//     typographic dashes, ellipsis and double quotes
//   - Connector: the apostrophe and typographic single quotes, which may
//     continue a word but never start one
//   - Joiner: the underscore, which may start or continue a word
//
// Letters additionally carry a Class. Accented Latin-1 vowels map to the
// class of their base letter whatever the diacritic, and the cedilla C has
// its own SoftC class.
//
// Only the fixed tables below are recognized. There is no general Unicode
// normalization.
package charclass
