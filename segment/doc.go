// Package segment cuts file byte streams into chunks for the analyzer pool.
//
// A Segmenter reads each file through a bufio.Reader one logical character
// at a time: a lead byte and the continuation bytes it announces are always
// kept together, so a chunk never starts or ends inside a multi-byte
// character of well-formed input.
//
// Two flush policies are available. Strict cuts as soon as a chunk reaches
// the target size. WordAware, the default, keeps going until the word in
// progress ends, and cuts early only when the next character would push
// the chunk past the max size. The word tracking uses classify.Machine, so
// the segmenter and the analyzers agree on what a word is.
//
// Basic usage:
//
//	s, err := segment.New(
//		segment.WithTargetSize(4096),
//		segment.WithMaxSize(6000),
//		segment.WithPolicy(segment.WordAware),
//	)
//	if err != nil {
//		return err
//	}
//	err = s.Run(files, queue, table)
//
// Layout runs the same cutting logic without a queue and reports where the
// boundaries fall, which is what the chunks command prints.
package segment
