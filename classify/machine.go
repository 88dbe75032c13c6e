package classify

import "github.com/dendrascience/wordclass/charclass"

// Machine is the word state machine. It has two states, inside and
// outside a word, and remembers which classes the current word has
// already shown.
//
// The zero value is a machine positioned outside a word.
type Machine struct {
	inWord bool
	seen   [charclass.NumClasses + 1]bool
}

// Step is the outcome of feeding one character to a Machine.
type Step struct {
	// Started is true when the character opened a new word.
	Started bool
	// Ended is true when the character closed the current word.
	Ended bool
	// Class is set when the character is the first occurrence of its
	// class inside the current word.
	Class charclass.Class
}

// InWord reports whether the machine is inside a word.
func (m *Machine) InWord() bool {
	return m.inWord
}

// Reset puts the machine back outside a word.
func (m *Machine) Reset() {
	*m = Machine{}
}

// Feed advances the machine by one decoded character.
func (m *Machine) Feed(c charclass.Char) Step {
	var s Step
	switch c.Kind {
	case charclass.Separator:
		if m.inWord {
			m.inWord = false
			m.seen = [charclass.NumClasses + 1]bool{}
			s.Ended = true
		}
		return s
	case charclass.Connector:
		if !m.inWord {
			return s
		}
	case charclass.Joiner, charclass.Letter:
		if !m.inWord {
			m.inWord = true
			s.Started = true
		}
	}
	if c.Class != charclass.None && !m.seen[c.Class] {
		m.seen[c.Class] = true
		s.Class = c.Class
	}
	return s
}
