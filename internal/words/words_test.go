package words

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestNormalize(t *testing.T) {
	is := is.New(t)

	w, err := Normalize("  crane ", 5)
	is.NoErr(err)
	is.Equal(w, Word("CRANE"))

	_, err = Normalize("cranes", 5)
	is.True(errors.Is(err, ErrBadWord))

	_, err = Normalize("cr4ne", 5)
	is.True(errors.Is(err, ErrBadWord))
}

func TestLetterSet(t *testing.T) {
	is := is.New(t)

	s := LettersOf("EAGLE")
	is.Equal(s.Len(), 4)
	is.True(s.Has('E'))
	is.True(!s.Has('Z'))
	is.Equal(string(s.Letters()), "AEGL")
	is.Equal(s.String(), "{AEGL}")
	is.True(s.Intersects(LettersOf("SNEAK")))
	is.True(!s.Intersects(LettersOf("BUMPY")))
	is.True(s.ContainsAll(LettersOf("GEL")))
	is.Equal(s.Without('E').Len(), 3)
	is.Equal(LetterBit('a'), LetterSet(0))
}

func TestHasDistinctLetters(t *testing.T) {
	is := is.New(t)
	is.True(Word("CRANE").HasDistinctLetters())
	is.True(!Word("EAGLE").HasDistinctLetters())
}

func TestParseLexicon(t *testing.T) {
	is := is.New(t)

	src := "# comment\ncrane\n\nSOLID\n  bumpy\n"
	ws, err := ParseLexicon(strings.NewReader(src), "test", 5)
	is.NoErr(err)
	is.Equal(ws, []Word{"CRANE", "SOLID", "BUMPY"})

	_, err = ParseLexicon(strings.NewReader("crane\nabc\n"), "test", 5)
	is.True(errors.Is(err, ErrBadWord))
	is.True(strings.Contains(err.Error(), "test:2"))
}

func TestNewListsMergesAnswers(t *testing.T) {
	is := is.New(t)

	lists, err := NewLists([]Word{"CRANE", "FJORD"}, []Word{"CRANE", "SOLID"}, 5)
	is.NoErr(err)
	is.Equal(lists.Guesses.Words(), []Word{"CRANE", "FJORD", "SOLID"})
	is.Equal(lists.Targets.Words(), []Word{"CRANE", "SOLID"})

	a, g := lists.Stats()
	is.Equal(a, 2)
	is.Equal(g, 3)

	_, err = NewLists([]Word{"CRANE"}, nil, 5)
	is.True(errors.Is(err, ErrEmptyLexicon))
}

func TestLoadEmbeddedDefaults(t *testing.T) {
	is := is.New(t)

	lists, err := Load(Source{})
	is.NoErr(err)
	is.True(lists.Targets.Len() > 100)
	for _, w := range lists.Targets.Words() {
		is.True(lists.Guesses.Contains(w))
	}
}

func TestLoadFromFiles(t *testing.T) {
	is := is.New(t)

	dir := t.TempDir()
	allowed := filepath.Join(dir, "allowed.txt")
	is.NoErr(os.WriteFile(allowed, []byte("crane\nsolid\nbumpy\nfjord\n"), 0o644))

	lists, err := Load(Source{AllowedPath: allowed, Length: 5})
	is.NoErr(err)
	is.Equal(lists.Targets.Len(), 4)
	is.Equal(lists.Guesses.Len(), 4)

	i, ok := lists.Guesses.Index("FJORD")
	is.True(ok)
	is.Equal(i, 3)

	_, err = Load(Source{AllowedPath: filepath.Join(dir, "missing.txt")})
	is.True(err != nil)
}

func TestMustLexicon(t *testing.T) {
	is := is.New(t)
	l := MustLexicon(5, "crane", "crane")
	is.Equal(l.Len(), 2)
	is.Equal(l.At(1), Word("CRANE"))
	is.Equal(l.WordLength(), 5)
}
