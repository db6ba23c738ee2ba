// internal/game/generator.go
//
// Solution generation.
//
// A solution is N stage words drawn from distinct table rows (one random
// spelling per row, solving order = draw order) followed by a final word
// derived from the digits hidden in the stage spellings:
//
//	S         = Σ (d+1)*3 over every digit d in the stage words
//	final row = (S-1) mod R   (FinalRowOffset)
//	          =  S    mod R   (FinalRowDirect)
//	final     = column 0 of the final row
//
// Randomness is always injected through RandomSource.
package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/zyedidia/generic/mapset"

	"github.com/robalobadob/notthefan/internal/words"
)

// RandomSource yields integers in [0, n). *rand.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// NewRandom returns a deterministic source for seed.
func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSeed draws a seed from crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// NewSeededRandom returns a source seeded from crypto/rand.
func NewSeededRandom() (*rand.Rand, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return NewRandom(seed), nil
}

// Solution is the ordered list of target words: stages first, final last.
type Solution struct {
	words []string
}

// NewSolution wraps an explicit word list (at least one word).
func NewSolution(list []string) Solution {
	return Solution{words: append([]string(nil), list...)}
}

func (s Solution) Len() int { return len(s.words) }
func (s Solution) Word(i int) string { return s.words[i] }
func (s Solution) Words() []string { return append([]string(nil), s.words...) }
func (s Solution) Stages() []string { return append([]string(nil), s.words[:len(s.words)-1]...) }
func (s Solution) Final() string { return s.words[len(s.words)-1] }
func (s Solution) IsZero() bool { return len(s.words) == 0 }
func (s Solution) String() string { return fmt.Sprint(s.words) }

// Checksum sums (d+1)*3 over every digit embedded in list.
func Checksum(list []string) int {
	sum := 0
	for _, w := range list {
		for _, r := range w {
			if r >= '0' && r <= '9' {
				sum += (int(r-'0') + 1) * 3
			}
		}
	}
	return sum
}

// FinalRow maps a checksum onto a row index in [0, rows).
func FinalRow(sum, rows int, f FinalRowFormula) (int, error) {
	switch f {
	case FinalRowOffset:
		return mod(sum-1, rows), nil
	case FinalRowDirect:
		return mod(sum, rows), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormula, f)
}

// mod is the Euclidean remainder, always in [0, n).
func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// Generate draws a fresh solution from tbl.
//
// Rows are drawn with rng.IntN(R) and redrawn on repeats, which keeps the
// draw uniform without replacement; one rng.IntN(4) per row then picks
// the spelling, in draw order.
func Generate(tbl *words.Table, rng RandomSource, cfg Config) (Solution, error) {
	cfg = cfg.withDefaults()
	rows := tbl.Rows()
	if cfg.Stages < 1 || cfg.Stages > rows {
		return Solution{}, fmt.Errorf("%w: %d stages, %d rows", ErrTooManyStages, cfg.Stages, rows)
	}

	picked := make([]int, 0, cfg.Stages)
	seen := mapset.New[int]()
	for len(picked) < cfg.Stages {
		row := rng.IntN(rows)
		if seen.Has(row) {
			continue
		}
		seen.Put(row)
		picked = append(picked, row)
	}

	list := make([]string, 0, cfg.Stages+1)
	for _, row := range picked {
		w, err := tbl.WordAt(row, rng.IntN(words.Columns))
		if err != nil {
			return Solution{}, err
		}
		list = append(list, w)
	}

	finalRow, err := FinalRow(Checksum(list), rows, cfg.FinalRow)
	if err != nil {
		return Solution{}, err
	}
	final, err := tbl.WordAt(finalRow, 0)
	if err != nil {
		return Solution{}, err
	}
	return Solution{words: append(list, final)}, nil
}
