package morse

import "unicode"

// Symbol is a single Morse element.
type Symbol byte

const (
	// Dot is the short element (dit), one unit long.
	Dot Symbol = '.'
	// Dash is the long element (dah), three units long.
	Dash Symbol = '-'
)

// Code is the ordered element sequence of one encodable character, e.g. ".-" for A.
type Code string

// Symbols returns the elements of the code in transmission order.
func (c Code) Symbols() []Symbol {
	symbols := make([]Symbol, 0, len(c))
	for i := 0; i < len(c); i++ {
		symbols = append(symbols, Symbol(c[i]))
	}

	return symbols
}

// WordSeparator is the marker the space character maps to.
// It is rendered by Encode but never part of a letter sequence.
const WordSeparator = "/"

// table maps upper-case characters to their Morse representation.
//
//nolint:gochecknoglobals // Static lookup table.
var table = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".",
	'F': "..-.", 'G': "--.", 'H': "....", 'I': "..", 'J': ".---",
	'K': "-.-", 'L': ".-..", 'M': "--", 'N': "-.", 'O': "---",
	'P': ".--.", 'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
	'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-", 'Y': "-.--",
	'Z': "--..",

	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",

	'.': ".-.-.-", ',': "--..--", '?': "..--..", '\'': ".----.",
	'/': "-..-.", '(': "-.--.", ')': "-.--.-", ':': "---...",
	'=': "-...-", '+': ".-.-.", '-': "-....-", '"': ".-..-.",
	'@': ".--.-.",

	// Non-standard but widely used.
	'!': "-.-.--", '&': ".-...", ';': "-.-.-.", '_': "..--.-",
	'$': "...-..-",

	' ': WordSeparator,
}

// Symbols returns the raw table entry for r, including the word separator for a space.
func Symbols(r rune) (string, bool) {
	s, ok := table[unicode.ToUpper(r)]

	return s, ok
}

// Lookup returns the letter code for r. The lookup is case-insensitive.
// Unmapped characters and the space, which is a word boundary rather than a letter, report false.
func Lookup(r rune) (Code, bool) {
	s, ok := Symbols(r)
	if !ok || s == WordSeparator {
		return "", false
	}

	return Code(s), true
}
