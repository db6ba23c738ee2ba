// internal/game/session.go
//
// Input state machine for a single module session.
// Responsibilities:
//   - Own the live solution and every piece of state derived from it.
//   - Consume one symbol at a time and match it against the current letter.
//   - Drive letter → word → module completion, stage lights and the fan.
//   - On any diverging symbol: signal a strike and regenerate everything.
//
// State transitions (Submit):
//   - Solved                       → Correct, nothing changes.
//   - buffer not a prefix of code  → Strike, host.HandleStrike(), full reset.
//   - buffer == code               → Correct, letter complete (fan directive applied).
//   - otherwise                    → Pending.
//
// A Session is not safe for concurrent use; hosts serialize submissions.
package game

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/robalobadob/notthefan/internal/morse"
	"github.com/robalobadob/notthefan/internal/words"
)

// Option customizes a Session.
type Option func(*Session)

// WithLogger attaches a logger; sessions are silent by default.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// Session is the mutable state of one module.
type Session struct {
	table *words.Table
	rng   RandomSource
	cfg   Config
	host  Host
	log   zerolog.Logger

	solution   Solution
	word       int // completed words, index of the word being spelled
	letter     int // completed letters in the current word
	buffer     []morse.Symbol
	expected   []morse.Symbol
	directives Directives
	lights     []bool
	solved     bool
	actuator   ActuatorTarget
	display    string
	input      strings.Builder
}

// NewSession builds a session and generates its first solution.
// A nil host is replaced by NopHost.
func NewSession(tbl *words.Table, rng RandomSource, cfg Config, host Host, opts ...Option) (*Session, error) {
	if host == nil {
		host = NopHost{}
	}
	cfg = cfg.withDefaults()
	if _, err := ParseFinalRowFormula(string(cfg.FinalRow)); err != nil {
		return nil, err
	}
	if _, err := ParseBitOrder(string(cfg.BitOrder)); err != nil {
		return nil, err
	}
	s := &Session{table: tbl, rng: rng, cfg: cfg, host: host, log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset discards all progress and generates a new solution. Nothing is
// assigned until the new solution and its derived state are complete.
func (s *Session) Reset() error {
	sol, err := Generate(s.table, s.rng, s.cfg)
	if err != nil {
		return fmt.Errorf("generate solution: %w", err)
	}
	expected, err := letterCode(sol.Word(0), 0)
	if err != nil {
		return err
	}
	directives, err := DeriveDirectives(s.table, sol.Word(1), s.cfg.BitOrder)
	if err != nil {
		return err
	}

	s.solution = sol
	s.word, s.letter = 0, 0
	s.buffer = nil
	s.expected = expected
	s.directives = directives
	s.lights = make([]bool, s.cfg.Stages)
	s.solved = false
	s.actuator = baselineTarget()
	s.display = sol.Word(0)
	s.input.Reset()

	s.log.Info().
		Str("initial", strings.ToUpper(sol.Word(0))).
		Strs("stages", upperAll(sol.Stages()[1:])).
		Str("final", strings.ToUpper(sol.Final())).
		Msg("new words generated")
	return nil
}

// Submit feeds one symbol to the state machine.
func (s *Session) Submit(sym morse.Symbol) Result {
	if s.solved {
		s.log.Debug().Str("symbol", sym.String()).Msg("input after solve ignored")
		return Correct
	}
	s.display = ""
	s.buffer = append(s.buffer, sym)
	s.input.WriteString(sym.String())

	if !morse.HasPrefix(s.expected, s.buffer) {
		s.strike(sym)
		return Strike
	}
	if len(s.buffer) < len(s.expected) {
		return Pending
	}
	s.completeLetter()
	return Correct
}

func (s *Session) strike(sym morse.Symbol) {
	word := s.solution.Word(s.word)
	s.host.HandleStrike()
	s.log.Warn().
		Str("symbol", sym.String()).
		Str("word", strings.ToUpper(word)).
		Str("letter", strings.ToUpper(string([]rune(word)[s.letter]))).
		Str("input", s.input.String()).
		Msg("strike: incorrect input")
	if err := s.Reset(); err != nil {
		panic(fmt.Sprintf("game: reset after strike: %v", err))
	}
}

func (s *Session) completeLetter() {
	s.buffer = nil
	if s.word < s.cfg.Stages {
		d := s.directives[s.letter].Directive()
		s.actuator.Direction, s.actuator.On = d.Direction, d.On
	} else {
		s.actuator.Direction, s.actuator.On = DirectionClockwise, true
		s.actuator.Pace *= PaceBoost
	}
	s.letter++
	s.input.WriteString(" ")

	if s.letter == words.WordLength {
		s.input.WriteString("      ")
		s.completeWord()
		return
	}
	s.expected = s.mustLetterCode()
}

func (s *Session) completeWord() {
	s.word++
	if s.word == s.solution.Len() {
		s.solved = true
		s.letter = 0
		s.expected = nil
		s.actuator.On = false
		s.actuator.Stopped = true
		s.actuator.Burst = true
		s.log.Info().Str("input", s.input.String()).Msg("module solved")
		s.host.HandlePass()
		return
	}

	s.lights[s.word-1] = true
	s.letter = 0
	s.expected = s.mustLetterCode()
	if s.word < s.cfg.Stages {
		d, err := DeriveDirectives(s.table, s.solution.Word(s.word+1), s.cfg.BitOrder)
		if err != nil {
			panic(fmt.Sprintf("game: solution word outside table: %v", err))
		}
		s.directives = d
	}
}

func (s *Session) mustLetterCode() []morse.Symbol {
	code, err := letterCode(s.solution.Word(s.word), s.letter)
	if err != nil {
		panic(fmt.Sprintf("game: %v", err))
	}
	return code
}

func letterCode(word string, i int) ([]morse.Symbol, error) {
	return morse.Encode([]rune(word)[i])
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	return State{
		Display:          s.display,
		Stages:           s.cfg.Stages,
		CompletedWords:   s.word,
		CompletedLetters: s.letter,
		StageLights:      append([]bool(nil), s.lights...),
		Solved:           s.solved,
		Actuator:         s.actuator,
		Input:            s.input.String(),
	}
}

// Actuator returns the latest published fan target.
func (s *Session) Actuator() ActuatorTarget { return s.actuator }

// Solution returns the live solution.
func (s *Session) Solution() Solution { return s.solution }

// ExpectedEncoding is the full code of the letter being matched,
// empty once solved.
func (s *Session) ExpectedEncoding() []morse.Symbol {
	return append([]morse.Symbol(nil), s.expected...)
}

// Buffered is the prefix entered so far for the current letter.
func (s *Session) Buffered() []morse.Symbol {
	return append([]morse.Symbol(nil), s.buffer...)
}

// Solved reports whether the module has been passed.
func (s *Session) Solved() bool { return s.solved }

// Config returns the session's variant configuration.
func (s *Session) Config() Config { return s.cfg }

func upperAll(list []string) []string {
	out := make([]string, len(list))
	for i, w := range list {
		out[i] = strings.ToUpper(w)
	}
	return out
}
