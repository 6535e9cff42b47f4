// internal/words/words.go
//
// Word and lexicon handling for the solver.
//
// Responsibilities:
//   - Validate and normalize words (fixed length, uppercase A–Z).
//   - Parse lexicon sources (one word per line, blank lines and '#' comments skipped).
//   - Load the guess lexicon and target lexicon from files or embedded defaults.
//
// Word Lists:
//   - "answers": the target lexicon (possible hidden words).
//   - "allowed": the guess lexicon (always extended with any missing answers).
//
// Load behavior:
//   1. If both AnswersPath and AllowedPath are set, load each from its file.
//   2. If only AllowedPath is set, use that file for both lexicons.
//   3. If neither is set, fall back to the embedded defaults in assets/.
//
// Lexicons are plain values; nothing here is process-wide state.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/solver/assets"
)

// DefaultLength is the word length of the classic game.
const DefaultLength = 5

var (
	ErrBadWord      = errors.New("words: invalid word")
	ErrEmptyLexicon = errors.New("words: lexicon is empty")
)

// Word is an uppercase fixed-length word.
type Word string

// Letters returns the set of distinct letters in w.
func (w Word) Letters() LetterSet { return LettersOf(string(w)) }

// HasDistinctLetters reports whether no letter occurs twice in w.
func (w Word) HasDistinctLetters() bool { return w.Letters().Len() == len(w) }

// Normalize trims and uppercases s and checks it is exactly length letters A–Z.
func Normalize(s string, length int) (Word, error) {
	w := strings.ToUpper(strings.TrimSpace(s))
	if len(w) != length {
		return "", fmt.Errorf("%w: %q has %d letters, want %d", ErrBadWord, s, len(w), length)
	}
	for i := 0; i < len(w); i++ {
		if !IsLetter(w[i]) {
			return "", fmt.Errorf("%w: %q contains %q", ErrBadWord, s, w[i])
		}
	}
	return Word(w), nil
}

// Lexicon is an ordered list of words of one length.
type Lexicon struct {
	words  []Word
	length int
	pos    map[Word]int // first position of each word
}

// NewLexicon validates ws and builds a lexicon. Duplicates are kept.
func NewLexicon(ws []Word, length int) (*Lexicon, error) {
	l := &Lexicon{words: make([]Word, 0, len(ws)), length: length, pos: make(map[Word]int, len(ws))}
	for _, w := range ws {
		nw, err := Normalize(string(w), length)
		if err != nil {
			return nil, err
		}
		if _, ok := l.pos[nw]; !ok {
			l.pos[nw] = len(l.words)
		}
		l.words = append(l.words, nw)
	}
	return l, nil
}

// MustLexicon is NewLexicon for literal word lists; it panics on invalid input.
func MustLexicon(length int, ws ...string) *Lexicon {
	l, err := NewLexicon(lo.Map(ws, func(s string, _ int) Word { return Word(s) }), length)
	if err != nil {
		panic(err)
	}
	return l
}

// Words returns the words in order. Callers must not modify the slice.
func (l *Lexicon) Words() []Word { return l.words }

func (l *Lexicon) Len() int        { return len(l.words) }
func (l *Lexicon) WordLength() int { return l.length }
func (l *Lexicon) At(i int) Word   { return l.words[i] }

// Index returns the first position of w.
func (l *Lexicon) Index(w Word) (int, bool) {
	i, ok := l.pos[w]
	return i, ok
}

// Contains reports whether w is in the lexicon.
func (l *Lexicon) Contains(w Word) bool {
	_, ok := l.pos[w]
	return ok
}

// ParseLexicon reads one word per line from r. name is used in error messages.
func ParseLexicon(r io.Reader, name string, length int) ([]Word, error) {
	var out []Word
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		w, err := Normalize(s, length)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, line, err)
		}
		out = append(out, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return out, nil
}

// Source says where Load finds its word lists.
type Source struct {
	AnswersPath string
	AllowedPath string
	Length      int
}

// Lists holds the two lexicons of a solving session.
type Lists struct {
	Guesses *Lexicon // guess lexicon
	Targets *Lexicon // target lexicon
}

// Load reads both lexicons according to src.
// Returns an error if either ends up empty.
func Load(src Source) (*Lists, error) {
	length := src.Length
	if length == 0 {
		length = DefaultLength
	}

	var ansList, allowList []Word
	var err error
	switch {
	// Case 1: both lists provided
	case src.AnswersPath != "" && src.AllowedPath != "":
		if ansList, err = readWordFile(src.AnswersPath, length); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(src.AllowedPath, length); err != nil {
			return nil, err
		}

	// Case 2: only allowed file provided → use for both
	case src.AnswersPath == "" && src.AllowedPath != "":
		if allowList, err = readWordFile(src.AllowedPath, length); err != nil {
			return nil, err
		}
		ansList = allowList

	// Case 3: fallback to embedded defaults
	default:
		if ansList, err = readEmbedded(assets.AnswersName, length); err != nil {
			return nil, err
		}
		if allowList, err = readEmbedded(assets.AllowedName, length); err != nil {
			return nil, err
		}
	}

	return NewLists(allowList, ansList, length)
}

// NewLists builds a pair of lexicons. Answers missing from the guess list are
// appended to it so that every target is also a legal guess.
func NewLists(allowed, answers []Word, length int) (*Lists, error) {
	if len(answers) == 0 {
		return nil, fmt.Errorf("answers: %w", ErrEmptyLexicon)
	}
	targets, err := NewLexicon(answers, length)
	if err != nil {
		return nil, err
	}
	guesses, err := NewLexicon(allowed, length)
	if err != nil {
		return nil, err
	}
	missing := lo.Filter(targets.Words(), func(w Word, _ int) bool { return !guesses.Contains(w) })
	if len(missing) > 0 {
		guesses, err = NewLexicon(append(append([]Word{}, guesses.Words()...), lo.Uniq(missing)...), length)
		if err != nil {
			return nil, err
		}
	}
	return &Lists{Guesses: guesses, Targets: targets}, nil
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *Lists) Stats() (answersCount int, allowedCount int) {
	return l.Targets.Len(), l.Guesses.Len()
}

// readWordFile loads one word per line from a file.
func readWordFile(path string, length int) ([]Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseLexicon(f, path, length)
}

func readEmbedded(name string, length int) ([]Word, error) {
	f, err := assets.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseLexicon(f, name, length)
}
