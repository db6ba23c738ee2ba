package morse

import (
	"errors"
	"testing"

	"github.com/zyedidia/generic/mapset"
)

func TestEncodeKnownLetters(t *testing.T) {
	cases := []struct {
		in   rune
		want string
	}{
		{'E', "."},
		{'e', "."},
		{'T', "-"},
		{'J', "---."},
		{'z', "..--"},
		{'0', "-----"},
		{'5', "....."},
		{'9', "----."},
	}
	for _, tc := range cases {
		got, err := Encode(tc.in)
		if err != nil {
			t.Fatalf("Encode(%q): %v", tc.in, err)
		}
		if Format(got) != tc.want {
			t.Errorf("Encode(%q) = %q, want %q", tc.in, Format(got), tc.want)
		}
	}
}

func TestEncodeUnsupported(t *testing.T) {
	for _, r := range []rune{' ', '!', 'é', '-'} {
		if _, err := Encode(r); !errors.Is(err, ErrUnsupportedCharacter) {
			t.Errorf("Encode(%q) err = %v, want ErrUnsupportedCharacter", r, err)
		}
	}
}

func TestEncodeWordConcatenates(t *testing.T) {
	got, err := EncodeWord("sos")
	if err != nil {
		t.Fatalf("EncodeWord: %v", err)
	}
	if Format(got) != "...---..." {
		t.Errorf("EncodeWord(sos) = %q, want %q", Format(got), "...---...")
	}
	if _, err := EncodeWord("a b"); !errors.Is(err, ErrUnsupportedCharacter) {
		t.Errorf("EncodeWord(a b) err = %v, want ErrUnsupportedCharacter", err)
	}
}

func TestRoundTripIsUnique(t *testing.T) {
	seen := mapset.New[string]()
	for _, r := range Alphabet() {
		seq, err := Encode(r)
		if err != nil {
			t.Fatalf("Encode(%q): %v", r, err)
		}
		if len(seq) < 1 || len(seq) > 5 {
			t.Errorf("Encode(%q) has %d symbols, want 1..5", r, len(seq))
		}
		code := Format(seq)
		if seen.Has(code) {
			t.Errorf("code %q assigned twice", code)
		}
		seen.Put(code)

		back, err := Decode(seq)
		if err != nil {
			t.Fatalf("Decode(%q): %v", code, err)
		}
		if back != r {
			t.Errorf("Decode(Encode(%q)) = %q", r, back)
		}
	}
	if seen.Size() != 36 {
		t.Errorf("alphabet size = %d, want 36", seen.Size())
	}
}

func TestDecodeUnknown(t *testing.T) {
	seq, _ := ParseSymbols("......")
	if _, err := Decode(seq); !errors.Is(err, ErrUnknownSequence) {
		t.Errorf("Decode(......) err = %v, want ErrUnknownSequence", err)
	}
}

func TestParseSymbols(t *testing.T) {
	seq, err := ParseSymbols(".-.")
	if err != nil {
		t.Fatalf("ParseSymbols: %v", err)
	}
	want := []Symbol{Short, Long, Short}
	if !Equal(seq, want) {
		t.Errorf("ParseSymbols(.-.) = %v, want %v", seq, want)
	}
	if _, err := ParseSymbols(".x"); !errors.Is(err, ErrInvalidSymbol) {
		t.Errorf("ParseSymbols(.x) err = %v, want ErrInvalidSymbol", err)
	}
}

func TestHasPrefix(t *testing.T) {
	seq, _ := ParseSymbols("-.-.")
	for _, tc := range []struct {
		prefix string
		want   bool
	}{
		{"", true},
		{"-", true},
		{"-.-", true},
		{"-.-.", true},
		{"-.-..", false},
		{".", false},
		{"--", false},
	} {
		p, _ := ParseSymbols(tc.prefix)
		if got := HasPrefix(seq, p); got != tc.want {
			t.Errorf("HasPrefix(-.-., %q) = %v, want %v", tc.prefix, got, tc.want)
		}
	}
}
