// Package chunk defines the unit of work passed from the segmenter through
// the queue to the analyzers.
package chunk

// Default chunk sizes in bytes.
const (
	// DefaultTargetSize is the soft size at which a chunk becomes eligible
	// for flushing.
	DefaultTargetSize = 4096

	// DefaultMaxSize is the hard size a chunk is never allowed to exceed,
	// except when a single logical character would otherwise be split.
	DefaultMaxSize = 6000
)

// Chunk is a contiguous slice of one file's byte stream.
//
// A Chunk never spans two files and never splits a multi-byte character.
// Ownership of Data moves with the chunk: the producer must not touch it
// after handing the chunk to a queue.
type Chunk struct {
	FileID int    // index into the file list
	Seq    int    // position of the chunk within its file
	Data   []byte // raw bytes, len(Data) is the byte count
}

// Len returns the number of bytes in the chunk.
func (c Chunk) Len() int {
	return len(c.Data)
}
