package classify

import (
	"github.com/dendrascience/wordclass/charclass"
	"github.com/dendrascience/wordclass/chunk"
)

// Counts holds word statistics for one chunk or, once merged, for one file.
// Each class counter is the number of distinct words that contain the
// class at least once.
type Counts struct {
	FileID  int
	Words   int
	Classes [charclass.NumClasses]int
}

// Class returns the counter for c. It returns 0 for charclass.None.
func (c Counts) Class(cl charclass.Class) int {
	if cl == charclass.None || int(cl) > charclass.NumClasses {
		return 0
	}
	return c.Classes[cl-1]
}

// Add sums o into c. FileID is left untouched, so the operation is
// commutative and associative over counts of the same file.
func (c *Counts) Add(o Counts) {
	c.Words += o.Words
	for i := range c.Classes {
		c.Classes[i] += o.Classes[i]
	}
}

// Analyze runs the word state machine over one chunk. The machine starts
// outside a word, so a word cut by the previous chunk boundary is counted
// again here.
func Analyze(c chunk.Chunk) Counts {
	out := Counts{FileID: c.FileID}
	var m Machine
	p := c.Data
	for len(p) > 0 {
		ch, n := charclass.Decode(p)
		p = p[n:]
		s := m.Feed(ch)
		if s.Started {
			out.Words++
		}
		if s.Class != charclass.None {
			out.Classes[s.Class-1]++
		}
	}
	return out
}
