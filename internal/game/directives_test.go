package game

import (
	"errors"
	"testing"

	"github.com/robalobadob/notthefan/internal/words"
)

func TestDeriveDirectives(t *testing.T) {
	cases := []struct {
		word  string
		order BitOrder
		want  Directives
	}{
		// row 17 col 0: 18 = 200 in base 3, column bits 00
		{"RoboT", BitOrderLowFirst, Directives{CounterClockwise, Static, Static, CounterClockwise, CounterClockwise}},
		// row 15 col 3: 16 = 121, column bits 11
		{"P0w3R", BitOrderLowFirst, Directives{Clockwise, CounterClockwise, Clockwise, Clockwise, Clockwise}},
		// row 7 col 1: 8 = 022, low bit 1, high bit 0
		{"H0VeR", BitOrderLowFirst, Directives{Static, CounterClockwise, CounterClockwise, Clockwise, CounterClockwise}},
		{"H0VeR", BitOrderHighFirst, Directives{Static, CounterClockwise, CounterClockwise, CounterClockwise, Clockwise}},
		// row 0 col 2: 1 = 001, low bit 0, high bit 1
		{"AnGl3", BitOrderLowFirst, Directives{Static, Static, Clockwise, CounterClockwise, Clockwise}},
		// row 25 col 0: 26 = 222
		{"zooms", BitOrderLowFirst, Directives{CounterClockwise, CounterClockwise, CounterClockwise, CounterClockwise, CounterClockwise}},
	}
	for _, tc := range cases {
		got, err := DeriveDirectives(words.Default(), tc.word, tc.order)
		if err != nil {
			t.Fatalf("DeriveDirectives(%s): %v", tc.word, err)
		}
		if got != tc.want {
			t.Errorf("DeriveDirectives(%s, %s) = %v, want %v", tc.word, tc.order, got, tc.want)
		}
	}
}

func TestDeriveDirectivesIsPure(t *testing.T) {
	tbl := words.Default()
	for _, w := range tbl.Words() {
		a, err := DeriveDirectives(tbl, w, BitOrderLowFirst)
		if err != nil {
			t.Fatalf("DeriveDirectives(%s): %v", w, err)
		}
		b, _ := DeriveDirectives(tbl, w, BitOrderLowFirst)
		if a != b {
			t.Errorf("DeriveDirectives(%s) not stable: %v vs %v", w, a, b)
		}
	}
}

func TestDeriveDirectivesIdentifiesWord(t *testing.T) {
	tbl := words.Default()
	seen := make(map[Directives]string)
	for _, w := range tbl.Words() {
		d, _ := DeriveDirectives(tbl, w, BitOrderHighFirst)
		if prev, ok := seen[d]; ok {
			t.Fatalf("%s and %s share pattern %v", prev, w, d)
		}
		seen[d] = w
	}
}

func TestDeriveDirectivesErrors(t *testing.T) {
	if _, err := DeriveDirectives(words.Default(), "FANS!", BitOrderLowFirst); !errors.Is(err, words.ErrNotFound) {
		t.Errorf("unknown word err = %v, want words.ErrNotFound", err)
	}
	if _, err := DeriveDirectives(words.Default(), "RoboT", "middle-out"); !errors.Is(err, ErrUnknownBitOrder) {
		t.Errorf("bad order err = %v, want ErrUnknownBitOrder", err)
	}
}

func TestFanStateDirective(t *testing.T) {
	cases := map[FanState]Directive{
		Static:           {Direction: DirectionNone, On: false},
		Clockwise:        {Direction: DirectionClockwise, On: true},
		CounterClockwise: {Direction: DirectionCounterClockwise, On: true},
	}
	for s, want := range cases {
		if got := s.Directive(); got != want {
			t.Errorf("%s.Directive() = %+v, want %+v", s, got, want)
		}
	}
}
