// internal/game/directives.go
//
// Fan pattern for a target word.
//
// The five fans shown while spelling a word describe the *next* word:
//   - fans 1-3: row+1 written in base 3, most significant first,
//     digit 0/1/2 → Static/Clockwise/CounterClockwise;
//   - fans 4-5: the two bits of the column, 0 → CounterClockwise,
//     1 → Clockwise, in the order chosen by BitOrder.

package game

import (
	"fmt"

	"github.com/robalobadob/notthefan/internal/words"
)

// Directives is one fan state per letter of a word.
type Directives [words.WordLength]FanState

// DeriveDirectives computes the fan pattern that identifies word in tbl.
func DeriveDirectives(tbl *words.Table, word string, order BitOrder) (Directives, error) {
	var d Directives
	row, col, err := tbl.Position(word)
	if err != nil {
		return d, err
	}

	letter := row + 1
	d[0] = FanState(letter / 9)
	d[1] = FanState((letter % 9) / 3)
	d[2] = FanState(letter % 3)

	low, high := col%2, col/2
	switch order {
	case BitOrderLowFirst, "":
		d[3], d[4] = bitState(low), bitState(high)
	case BitOrderHighFirst:
		d[3], d[4] = bitState(high), bitState(low)
	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownBitOrder, order)
	}
	return d, nil
}

func bitState(bit int) FanState {
	if bit == 1 {
		return Clockwise
	}
	return CounterClockwise
}
