// internal/game/types.go
//
// Core type definitions for the fan module.
// Defines:
//   - Result: outcome of one submitted symbol (correct/pending/strike).
//   - FanState and Direction: discrete actuator states and what they mean.
//   - ActuatorTarget: the value published for the spin integrator.
//   - Config and its variant points (final-row formula, column bit order).
//   - Host: the module host receiving strike/pass signals.
//   - State: a read-only snapshot of a session.

package game

import (
	"errors"
	"fmt"
)

// Result is the outcome of a single submitted symbol.
type Result string

const (
	Correct Result = "correct" // symbol completed a letter (or module already solved)
	Pending Result = "pending" // valid prefix, letter not finished
	Strike  Result = "strike"  // diverged; session was reset
)

// FanState is one discrete actuator instruction.
type FanState int

const (
	Static FanState = iota
	Clockwise
	CounterClockwise
)

func (s FanState) String() string {
	switch s {
	case Static:
		return "static"
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counterclockwise"
	}
	return fmt.Sprintf("FanState(%d)", int(s))
}

// Direction is the sense of rotation the actuator should take.
type Direction string

const (
	DirectionNone             Direction = "none"
	DirectionClockwise        Direction = "clockwise"
	DirectionCounterClockwise Direction = "counterclockwise"
)

// Sign maps a direction to +1, -1 or 0.
func (d Direction) Sign() float64 {
	switch d {
	case DirectionClockwise:
		return 1
	case DirectionCounterClockwise:
		return -1
	}
	return 0
}

// Directive is what a single fan state asks of the actuator.
type Directive struct {
	Direction Direction `json:"direction"`
	On        bool      `json:"on"`
}

// Directive converts a discrete state into an actuator directive.
func (s FanState) Directive() Directive {
	switch s {
	case Clockwise:
		return Directive{Direction: DirectionClockwise, On: true}
	case CounterClockwise:
		return Directive{Direction: DirectionCounterClockwise, On: true}
	}
	return Directive{Direction: DirectionNone, On: false}
}

// ActuatorTarget is the latest published actuator instruction.
// Readers copy it; it carries no synchronization of its own.
type ActuatorTarget struct {
	Direction Direction `json:"direction"`
	On        bool      `json:"on"`
	Pace      float64   `json:"pace"`    // nominal speed when on
	Stopped   bool      `json:"stopped"` // module solved, fan winding down for good
	Burst     bool      `json:"burst"`   // one-shot solve effect requested
}

const (
	BasePace  = 10.0
	PaceBoost = 1.5
)

func baselineTarget() ActuatorTarget {
	return ActuatorTarget{Direction: DirectionClockwise, On: true, Pace: BasePace}
}

// FinalRowFormula selects how the digit checksum picks the final row.
type FinalRowFormula string

const (
	// FinalRowOffset is (S-1) mod R, Euclidean; S=0 lands on the last row.
	FinalRowOffset FinalRowFormula = "offset"
	// FinalRowDirect is S mod R.
	FinalRowDirect FinalRowFormula = "direct"
)

// BitOrder selects which column bit drives the fourth fan.
type BitOrder string

const (
	// BitOrderLowFirst: fourth fan = col%2, fifth fan = col/2.
	BitOrderLowFirst BitOrder = "low-first"
	// BitOrderHighFirst: fourth fan = col/2, fifth fan = col%2.
	BitOrderHighFirst BitOrder = "high-first"
)

var (
	ErrUnknownFormula  = errors.New("game: unknown final-row formula")
	ErrUnknownBitOrder = errors.New("game: unknown bit order")
	ErrTooManyStages   = errors.New("game: stage count does not fit table")
)

// ParseFinalRowFormula validates a formula name.
func ParseFinalRowFormula(s string) (FinalRowFormula, error) {
	switch f := FinalRowFormula(s); f {
	case FinalRowOffset, FinalRowDirect:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormula, s)
}

// ParseBitOrder validates a bit order name.
func ParseBitOrder(s string) (BitOrder, error) {
	switch b := BitOrder(s); b {
	case BitOrderLowFirst, BitOrderHighFirst:
		return b, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBitOrder, s)
}

// Config fixes the variant points of a module.
type Config struct {
	Stages   int             // N stage words before the final word
	FinalRow FinalRowFormula // checksum to final row
	BitOrder BitOrder        // column bits to fans four and five
}

// DefaultConfig is the three-stage module with the offset formula
// and low-bit-first column encoding.
func DefaultConfig() Config {
	return Config{Stages: 3, FinalRow: FinalRowOffset, BitOrder: BitOrderLowFirst}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Stages == 0 {
		c.Stages = d.Stages
	}
	if c.FinalRow == "" {
		c.FinalRow = d.FinalRow
	}
	if c.BitOrder == "" {
		c.BitOrder = d.BitOrder
	}
	return c
}

// Host receives the module-level signals of a session.
type Host interface {
	// HandleStrike is called once per incorrect symbol, before the reset.
	HandleStrike()
	// HandlePass is called once when the last word is spelled.
	HandlePass()
}

// NopHost ignores every signal.
type NopHost struct{}

func (NopHost) HandleStrike() {}
func (NopHost) HandlePass()   {}

// State is a point-in-time snapshot of a session.
type State struct {
	Display          string         `json:"display"`          // text on the module screen
	Stages           int            `json:"stages"`           // N
	CompletedWords   int            `json:"completedWords"`   // 0..N+1
	CompletedLetters int            `json:"completedLetters"` // 0..4 in the current word, 0 once solved
	StageLights      []bool         `json:"stageLights"`      // one per stage, lit when complete
	Solved           bool           `json:"solved"`
	Actuator         ActuatorTarget `json:"actuator"`
	Input            string         `json:"input"` // symbols entered since the last reset
}
