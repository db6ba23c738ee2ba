// internal/morse/morse.go
//
// Symbol codec for the module's two-button input.
// Responsibilities:
//   - Map digits 0-9 and letters A-Z to fixed short/long symbol sequences.
//   - Encode single characters and whole words (no separators between letters).
//   - Reverse lookup of a complete sequence back to its character.
//   - Parse and render the textual "./-" form used by text commands and logs.
//
// Notes:
//   - The table follows the module's printed manual, which differs from ITU
//     for J (---.) and Z (..--). Every code is still unique.
//   - Input is case-insensitive; lookups upper-case the rune first.
package morse

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Symbol is one of the two signal primitives.
type Symbol int

const (
	Short Symbol = iota // dot, the power button
	Long                // dash, the direction button
)

// String renders the symbol as '.' or '-'.
func (s Symbol) String() string {
	if s == Long {
		return "-"
	}
	return "."
}

var (
	ErrUnsupportedCharacter = errors.New("morse: unsupported character")
	ErrUnknownSequence      = errors.New("morse: unknown sequence")
	ErrInvalidSymbol        = errors.New("morse: invalid symbol")
)

// table is the manual's alphabet in "./-" form.
var table = map[rune]string{
	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".",
	'F': "..-.", 'G': "--.", 'H': "....", 'I': "..", 'J': "---.",
	'K': "-.-", 'L': ".-..", 'M': "--", 'N': "-.", 'O': "---",
	'P': ".--.", 'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
	'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-", 'Y': "-.--",
	'Z': "..--",
}

// reverse is built once from table.
var reverse = func() map[string]rune {
	m := make(map[string]rune, len(table))
	for r, code := range table {
		m[code] = r
	}
	return m
}()

// Alphabet returns every supported character in ascending order.
func Alphabet() []rune {
	out := make([]rune, 0, len(table))
	for r := '0'; r <= '9'; r++ {
		out = append(out, r)
	}
	for r := 'A'; r <= 'Z'; r++ {
		out = append(out, r)
	}
	return out
}

// Supported reports whether r has an encoding.
func Supported(r rune) bool {
	_, ok := table[unicode.ToUpper(r)]
	return ok
}

// Encode returns the symbol sequence for a single character.
func Encode(r rune) ([]Symbol, error) {
	code, ok := table[unicode.ToUpper(r)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCharacter, r)
	}
	seq, _ := ParseSymbols(code)
	return seq, nil
}

// EncodeWord concatenates the codes of every character in s.
func EncodeWord(s string) ([]Symbol, error) {
	var out []Symbol
	for _, r := range s {
		seq, err := Encode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, seq...)
	}
	return out, nil
}

// Decode returns the character whose complete code is seq.
func Decode(seq []Symbol) (rune, error) {
	r, ok := reverse[Format(seq)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSequence, Format(seq))
	}
	return r, nil
}

// ParseSymbols converts "./-" text into symbols.
func ParseSymbols(s string) ([]Symbol, error) {
	out := make([]Symbol, 0, len(s))
	for _, c := range s {
		switch c {
		case '.':
			out = append(out, Short)
		case '-':
			out = append(out, Long)
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidSymbol, c)
		}
	}
	return out, nil
}

// Format renders symbols as "./-" text.
func Format(seq []Symbol) string {
	var b strings.Builder
	b.Grow(len(seq))
	for _, s := range seq {
		b.WriteString(s.String())
	}
	return b.String()
}

// HasPrefix reports whether prefix is a prefix of seq.
func HasPrefix(seq, prefix []Symbol) bool {
	if len(prefix) > len(seq) {
		return false
	}
	for i := range prefix {
		if seq[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Equal reports whether a and b hold the same symbols.
func Equal(a, b []Symbol) bool {
	return len(a) == len(b) && HasPrefix(a, b)
}
