// Package play is the text prompt loop for solving a puzzle by hand: it
// suggests guesses, reads the guess actually played and its G/Y/B result,
// and narrows the candidates until one remains.
package play

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/rank"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// ErrInputClosed is returned when input ends before the puzzle is solved.
var ErrInputClosed = errors.New("play: input closed")

// Recorder receives the session after every applied turn.
type Recorder func(ctx context.Context, s *game.Session)

// Loop drives one session over a reader and writer.
type Loop struct {
	lists  *words.Lists
	in     *bufio.Scanner
	out    io.Writer
	record Recorder
}

// New builds a loop. record may be nil.
func New(lists *words.Lists, in io.Reader, out io.Writer, record Recorder) *Loop {
	return &Loop{lists: lists, in: bufio.NewScanner(in), out: out, record: record}
}

// Run plays until one candidate remains and returns it. A result that leaves
// no candidate ends the loop with game.ErrNoCandidates; malformed input is
// reported and asked for again.
func (l *Loop) Run(ctx context.Context) (words.Word, error) {
	s, err := game.New(l.lists.Targets)
	if err != nil {
		return "", err
	}
	log.Debug().Str("session", s.ID).Int("candidates", len(s.Candidates)).Msg("play-start")

	for {
		if w, ok := s.Answer(); ok {
			fmt.Fprintf(l.out, "The word is %s (%d turns)\n", w, len(s.Turns))
			return w, nil
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		l.show(s)

		guess, err := l.ask("guess> ", func(line string) error {
			_, err := words.Normalize(line, s.Length)
			return err
		})
		if err != nil {
			return "", err
		}
		for {
			result, err := l.ask("result> ", nil)
			if err != nil {
				return "", err
			}
			_, err = s.Apply(guess, result)
			if errors.Is(err, game.ErrNoCandidates) {
				fmt.Fprintln(l.out, "No candidate word matches every result so far.")
				return "", err
			}
			if err != nil {
				fmt.Fprintf(l.out, "error: %v\n", err)
				continue
			}
			break
		}
		if l.record != nil {
			l.record(ctx, s)
		}
	}
}

// show prints suggestions, and the candidates themselves once few remain.
func (l *Loop) show(s *game.Session) {
	fmt.Fprintf(l.out, "%d candidates  %s\n", len(s.Candidates), s.Constraints.Pattern(s.Length))
	if len(s.Candidates) < rank.TopN {
		fmt.Fprintf(l.out, "candidates: %s\n", joinWords(s.Candidates))
	}
	for i, sc := range s.Suggest(l.lists.Guesses.Words()) {
		fmt.Fprintf(l.out, "%2d. %s %d\n", i+1, sc.Word, sc.Score)
	}
}

// ask prompts until a non-empty line passes check (when given).
func (l *Loop) ask(prompt string, check func(string) error) (string, error) {
	for {
		fmt.Fprint(l.out, prompt)
		if !l.in.Scan() {
			if err := l.in.Err(); err != nil {
				return "", err
			}
			return "", ErrInputClosed
		}
		line := strings.TrimSpace(l.in.Text())
		if line == "" {
			continue
		}
		if check != nil {
			if err := check(line); err != nil {
				fmt.Fprintf(l.out, "error: %v\n", err)
				continue
			}
		}
		return line, nil
	}
}

func joinWords(ws []words.Word) string {
	return strings.Join(lo.Map(ws, func(w words.Word, _ int) string { return string(w) }), " ")
}
