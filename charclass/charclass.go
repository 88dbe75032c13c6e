package charclass

import "unicode/utf8"

// Kind is the role a character plays in word segmentation.
type Kind uint8

const (
	// Letter is any character that is not a separator, connector or joiner.
	Letter Kind = iota
	// Separator ends a word.
	Separator
	// Connector continues a word but cannot start one.
	Connector
	// Joiner continues a word and can also start one.
	Joiner
)

func (k Kind) String() string {
	switch k {
	case Letter:
		return "letter"
	case Separator:
		return "separator"
	case Connector:
		return "connector"
	case Joiner:
		return "joiner"
	default:
		return "unknown"
	}
}

// Class is the vowel class a letter belongs to.
type Class uint8

const (
	None Class = iota
	A
	E
	I
	O
	U
	SoftC
	Y

	// NumClasses is the number of real classes, None excluded.
	NumClasses = int(Y)
)

// Classes lists every real class in report order.
var Classes = [NumClasses]Class{A, E, I, O, U, SoftC, Y}

func (c Class) String() string {
	switch c {
	case A:
		return "A"
	case E:
		return "E"
	case I:
		return "I"
	case O:
		return "O"
	case U:
		return "U"
	case SoftC:
		return "Ç"
	case Y:
		return "Y"
	default:
		return "-"
	}
}

// Char is one decoded logical character.
type Char struct {
	Rune  rune
	Kind  Kind
	Class Class
}

var (
	// separatorRunes end a word. Typographic forms are the three-byte
	// punctuation sequences that share continuation bytes with letters.
	separatorRunes = []rune{
		' ', '\t', '\n', '\r',
		'.', ',', ':', ';', '-', '?', '!', '"', '(', ')', '[',
		'«', '»',
		'–', // en dash
		'—', // em dash
		'…', // horizontal ellipsis
		'“', // left double quotation mark
		'”', // right double quotation mark
	}

	connectorRunes = []rune{
		'\'',
		'‘', // left single quotation mark
		'’', // right single quotation mark
	}

	joinerRunes = []rune{'_'}

	// classRunes maps every recognized letter to its class. Diacritics do
	// not matter: acute, grave, circumflex, tilde and diaeresis forms all
	// map to the base vowel.
	classRunes = map[Class]string{
		A:     "AaÁáÀàÂâÃãÄä",
		E:     "EeÉéÈèÊêËë",
		I:     "IiÍíÌìÎîÏï",
		O:     "OoÓóÒòÔôÕõÖö",
		U:     "UuÚúÙùÛûÜü",
		SoftC: "Çç",
		Y:     "YyÝýÿ",
	}
)

var (
	ascii [utf8.RuneSelf]Char
	wide  = map[rune]Char{}
)

func init() {
	for r := rune(0); r < utf8.RuneSelf; r++ {
		ascii[r] = Char{Rune: r, Kind: Letter}
	}
	set := func(r rune, fn func(*Char)) {
		if r < utf8.RuneSelf {
			fn(&ascii[r])
			return
		}
		c, ok := wide[r]
		if !ok {
			c = Char{Rune: r, Kind: Letter}
		}
		fn(&c)
		wide[r] = c
	}
	for _, r := range separatorRunes {
		set(r, func(c *Char) { c.Kind = Separator })
	}
	for _, r := range connectorRunes {
		set(r, func(c *Char) { c.Kind = Connector })
	}
	for _, r := range joinerRunes {
		set(r, func(c *Char) { c.Kind = Joiner })
	}
	for class, letters := range classRunes {
		for _, r := range letters {
			set(r, func(c *Char) { c.Class = class })
		}
	}
}

// SequenceLen reports how many bytes the logical character starting with
// lead occupies. Continuation and invalid bytes stand alone.
func SequenceLen(lead byte) int {
	switch {
	case lead < 0x80:
		return 1
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

// IsContinuation reports whether b can only appear inside a multi-byte
// sequence.
func IsContinuation(b byte) bool {
	return b&0xC0 == 0x80
}

// Decode decodes the logical character at the front of p and returns it
// with its width in bytes. Malformed or truncated sequences decode as a
// one-byte Separator. Decode returns a zero width only for empty input.
func Decode(p []byte) (Char, int) {
	if len(p) == 0 {
		return Char{}, 0
	}
	if b := p[0]; b < utf8.RuneSelf {
		return ascii[b], 1
	}
	r, n := utf8.DecodeRune(p)
	if r == utf8.RuneError && n <= 1 {
		return Char{Rune: utf8.RuneError, Kind: Separator}, 1
	}
	return Lookup(r), n
}

// Lookup classifies a single rune.
func Lookup(r rune) Char {
	if r >= 0 && r < utf8.RuneSelf {
		return ascii[r]
	}
	if c, ok := wide[r]; ok {
		return c
	}
	return Char{Rune: r, Kind: Letter}
}
