// internal/words/words.go
//
// The fixed word table the module draws its targets from.
//
// Layout:
//   - Entries are grouped in rows of Columns (4) consecutive words.
//   - A row holds four disguised spellings of one word; the column a
//     spelling sits in is information the player must recover from the fan.
//   - Every entry is exactly WordLength (5) encodable characters.
//
// Loading (Load):
//  1. If a path is given, read one word per line from that file
//     (blank lines and '#' comments skipped).
//  2. Otherwise use the table embedded in the assets package.
//
// A Table is immutable once built and safe to share between sessions.
package words

import (
	"errors"
	"fmt"
	"os"


	"github.com/robalobadob/notthefan/assets"
	"github.com/robalobadob/notthefan/internal/morse"
)

const (
	Columns    = 4
	WordLength = 5
	// MaxRows is bounded by the three ternary fan digits encoding row+1.
	MaxRows = 26
)

var (
	ErrIndexOutOfRange = errors.New("words: index out of range")
	ErrNotFound        = errors.New("words: word not in table")
	ErrInvalidTable    = errors.New("words: invalid table")
)

// Table is an ordered, row-grouped word catalog.
type Table struct {
	words []string
	index map[string]int // word -> absolute position
}

// New validates words and builds a Table from them.
func New(words []string) (*Table, error) {
	if len(words) == 0 || len(words)%Columns != 0 {
		return nil, fmt.Errorf("%w: %d entries is not a positive multiple of %d", ErrInvalidTable, len(words), Columns)
	}
	if rows := len(words) / Columns; rows > MaxRows {
		return nil, fmt.Errorf("%w: %d rows, at most %d supported", ErrInvalidTable, rows, MaxRows)
	}

	index := make(map[string]int, len(words))
	for i, w := range words {
		if len([]rune(w)) != WordLength {
			return nil, fmt.Errorf("%w: %q is not %d characters", ErrInvalidTable, w, WordLength)
		}
		if _, err := morse.EncodeWord(w); err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidTable, w, err)
		}
		if _, dup := index[w]; dup {
			return nil, fmt.Errorf("%w: duplicate entry %q", ErrInvalidTable, w)
		}
		index[w] = i
	}
	return &Table{words: append([]string(nil), words...), index: index}, nil
}

var defaultTable = func() *Table {
	list, err := assets.WordTable()
	if err != nil {
		panic(fmt.Sprintf("words: read embedded table: %v", err))
	}
	t, err := New(list)
	if err != nil {
		panic(fmt.Sprintf("words: embedded table: %v", err))
	}
	return t
}()

// Default returns the embedded 26-row table.
func Default() *Table { return defaultTable }

// Load reads a table from path, or returns Default when path is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	list, err := assets.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return New(list)
}

// Rows is the number of rows (R).
func (t *Table) Rows() int { return len(t.words) / Columns }

// Len is the number of entries.
func (t *Table) Len() int { return len(t.words) }

// Words returns a copy of every entry in table order.
func (t *Table) Words() []string { return append([]string(nil), t.words...) }

// WordAt returns the word at (row, col).
func (t *Table) WordAt(row, col int) (string, error) {
	if row < 0 || row >= t.Rows() || col < 0 || col >= Columns {
		return "", fmt.Errorf("%w: row %d col %d", ErrIndexOutOfRange, row, col)
	}
	return t.words[row*Columns+col], nil
}

// Position returns the row and column of word. Matching is exact:
// the spelling is what distinguishes columns.
func (t *Table) Position(word string) (row, col int, err error) {
	i, ok := t.index[word]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrNotFound, word)
	}
	return i / Columns, i % Columns, nil
}

// RowIndexOf returns the row holding word.
func (t *Table) RowIndexOf(word string) (int, error) {
	row, _, err := t.Position(word)
	return row, err
}

// Stats mirrors the debug counters: (rows, entries).
func (t *Table) Stats() (rows int, entries int) {
	return t.Rows(), t.Len()
}
