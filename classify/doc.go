// Package classify counts words and the vowel classes they contain.
//
// Machine is the shared two-state scanner (inside or outside a word). The
// segmenter uses it to find word boundaries and Analyze uses it to count.
// Worker is the consumer loop run by every goroutine of the pool.
//
// A word increments a class counter at most once, no matter how many times
// the class occurs in it: "banana" adds 1 to A, not 3.
package classify
