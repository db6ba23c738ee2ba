package game

import (
	"errors"
	"testing"

	"github.com/zyedidia/generic/mapset"

	"github.com/robalobadob/notthefan/internal/words"
)

// scripted replays a fixed list of draws, wrapping around at the end.
type scripted struct {
	vals  []int
	i     int
	calls int
}

func (s *scripted) IntN(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	s.calls++
	return v % n
}

func seq(vals ...int) *scripted { return &scripted{vals: vals} }

func TestGenerateKnownSequence(t *testing.T) {
	cases := []struct {
		name    string
		formula FinalRowFormula
		want    []string
	}{
		// digits: H0VeR → 0, P0w3R → 0,3; S = 3 + 3 + 12 = 18
		{"offset", FinalRowOffset, []string{"clocK", "H0VeR", "P0w3R", "RoboT"}},
		{"direct", FinalRowDirect, []string{"clocK", "H0VeR", "P0w3R", "sPIns"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{Stages: 3, FinalRow: tc.formula}
			sol, err := Generate(words.Default(), seq(2, 7, 15, 0, 1, 3), cfg)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			got := sol.Words()
			if len(got) != len(tc.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("word %d = %q, want %q", i, got[i], tc.want[i])
				}
			}
			if sol.Final() != tc.want[3] {
				t.Errorf("Final() = %q, want %q", sol.Final(), tc.want[3])
			}
		})
	}
}

func TestGenerateRedrawsRepeatedRows(t *testing.T) {
	src := seq(2, 2, 7, 2, 15, 0, 1, 3)
	sol, err := Generate(words.Default(), src, DefaultConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := []string{"clocK", "H0VeR", "P0w3R", "RoboT"}
	for i, w := range sol.Words() {
		if w != want[i] {
			t.Errorf("word %d = %q, want %q", i, w, want[i])
		}
	}
	if src.calls != 8 {
		t.Errorf("draws = %d, want 8", src.calls)
	}
}

func TestGenerateWithoutDigits(t *testing.T) {
	// AnGle, blAde, clocK carry no digits: S = 0.
	for _, tc := range []struct {
		formula FinalRowFormula
		want    string
	}{
		{FinalRowOffset, "zooms"},
		{FinalRowDirect, "AnGle"},
	} {
		sol, err := Generate(words.Default(), seq(0, 1, 2, 0, 0, 0), Config{Stages: 3, FinalRow: tc.formula})
		if err != nil {
			t.Fatalf("Generate(%s): %v", tc.formula, err)
		}
		if sol.Final() != tc.want {
			t.Errorf("Final(%s) = %q, want %q", tc.formula, sol.Final(), tc.want)
		}
	}
}

func TestGenerateFiveStages(t *testing.T) {
	tbl := words.Default()
	for seed := uint64(0); seed < 200; seed++ {
		sol, err := Generate(tbl, NewRandom(seed), Config{Stages: 5})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if sol.Len() != 6 {
			t.Fatalf("seed %d: len = %d, want 6", seed, sol.Len())
		}
		rows := mapset.New[int]()
		for _, w := range sol.Stages() {
			row, err := tbl.RowIndexOf(w)
			if err != nil {
				t.Fatalf("seed %d: %v", seed, err)
			}
			if rows.Has(row) {
				t.Fatalf("seed %d: row %d drawn twice in %v", seed, row, sol)
			}
			rows.Put(row)
		}
		wantRow, _ := FinalRow(Checksum(sol.Stages()), tbl.Rows(), FinalRowOffset)
		if w, _ := tbl.WordAt(wantRow, 0); w != sol.Final() {
			t.Fatalf("seed %d: final = %q, want %q", seed, sol.Final(), w)
		}
	}
}

func TestGenerateRejectsStageCount(t *testing.T) {
	for _, n := range []int{-1, 27} {
		_, err := Generate(words.Default(), NewRandom(1), Config{Stages: n})
		if !errors.Is(err, ErrTooManyStages) {
			t.Errorf("Stages=%d err = %v, want ErrTooManyStages", n, err)
		}
	}
	if _, err := Generate(words.Default(), NewRandom(1), Config{Stages: 3, FinalRow: "sideways"}); !errors.Is(err, ErrUnknownFormula) {
		t.Errorf("bad formula err = %v, want ErrUnknownFormula", err)
	}
}

func TestGenerateIsReproducible(t *testing.T) {
	a, _ := Generate(words.Default(), NewRandom(42), DefaultConfig())
	b, _ := Generate(words.Default(), NewRandom(42), DefaultConfig())
	if a.String() != b.String() {
		t.Errorf("same seed gave %v and %v", a, b)
	}
}

func TestChecksum(t *testing.T) {
	cases := []struct {
		in   []string
		want int
	}{
		{nil, 0},
		{[]string{"AnGle"}, 0},
		{[]string{"AnG13"}, 6 + 12},
		{[]string{"w00sH", "2oom5"}, 3 + 3 + 9 + 18},
	}
	for _, tc := range cases {
		if got := Checksum(tc.in); got != tc.want {
			t.Errorf("Checksum(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFinalRow(t *testing.T) {
	cases := []struct {
		sum, rows int
		f         FinalRowFormula
		want      int
	}{
		{0, 26, FinalRowOffset, 25},
		{1, 26, FinalRowOffset, 0},
		{18, 26, FinalRowOffset, 17},
		{27, 26, FinalRowOffset, 0},
		{0, 26, FinalRowDirect, 0},
		{18, 26, FinalRowDirect, 18},
		{26, 26, FinalRowDirect, 0},
	}
	for _, tc := range cases {
		got, err := FinalRow(tc.sum, tc.rows, tc.f)
		if err != nil {
			t.Fatalf("FinalRow(%d,%d,%s): %v", tc.sum, tc.rows, tc.f, err)
		}
		if got != tc.want {
			t.Errorf("FinalRow(%d,%d,%s) = %d, want %d", tc.sum, tc.rows, tc.f, got, tc.want)
		}
	}
}
