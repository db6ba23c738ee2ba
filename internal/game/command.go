// internal/game/command.go
//
// Text command translation. A command such as "input ..-.--" (or the
// short forms "i" and "in") is turned into symbols and played into a
// session one at a time, stopping at the first strike.

package game

import (
	"errors"
	"regexp"

	"github.com/robalobadob/notthefan/internal/morse"
)

// HelpMessage describes the accepted command form.
const HelpMessage = "input <morse> with . and -, or i <morse>, or in <morse>. Example: input ..-..--...."

var (
	ErrUnrecognizedCommand = errors.New("game: unrecognized command")

	commandPattern = regexp.MustCompile(`(?i)^\s*(?:i|in|input)\s+([.-]+)`)
)

// Submitter is anything that accepts one symbol at a time.
type Submitter interface {
	Submit(sym morse.Symbol) Result
}

// ParseCommand extracts the symbol sequence from a text command.
func ParseCommand(text string) ([]morse.Symbol, error) {
	m := commandPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, ErrUnrecognizedCommand
	}
	return morse.ParseSymbols(m[1])
}

// Play submits seq in order and returns one result per submitted symbol.
// Symbols after the first Strike are discarded.
func Play(s Submitter, seq []morse.Symbol) []Result {
	out := make([]Result, 0, len(seq))
	for _, sym := range seq {
		r := s.Submit(sym)
		out = append(out, r)
		if r == Strike {
			break
		}
	}
	return out
}
