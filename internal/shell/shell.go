// Package shell runs the interactive menu over an analyzer.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/knowledge-engine/quranfruits/internal/frequency"
	"github.com/knowledge-engine/quranfruits/internal/search"
)

// Service is the analyzer surface the shell drives.
type Service interface {
	FindRelatedVerses(query string, topN int) ([]search.Result, error)
	FruitFrequencies() frequency.Counts
}

// DefaultTopN is the number of verses shown per search.
const DefaultTopN = 5

// maxLineBytes caps one input line. Longer lines are discarded up to the
// next newline and rejected.
const maxLineBytes = 64 * 1024

var errLineTooLong = errors.New("input line too long")

type Shell struct {
	Service Service
	Logger  *logrus.Entry
	TopN    int

	in      *bufio.Reader
	out     io.Writer
	options map[string]func() error
}

func NewShell(svc Service, in io.Reader, out io.Writer, logger *logrus.Entry) *Shell {
	if logger == nil {
		logger = logrus.WithField("component", "shell")
	}
	s := &Shell{
		Service: svc,
		Logger:  logger,
		TopN:    DefaultTopN,
		in:      bufio.NewReader(in),
		out:     out,
	}
	s.routes()
	return s
}

func (s *Shell) routes() {
	s.options = map[string]func() error{
		"1": s.handleSearch,
		"2": s.handleFrequency,
	}
}

// Run shows the menu until the user exits or input ends. Only wiring bugs,
// such as an unbuilt index, end it with an error.
func (s *Shell) Run() error {
	for {
		s.printMenu()

		choice, err := s.prompt("\nPlease select an option: ")
		if errors.Is(err, errLineTooLong) {
			fmt.Fprintln(s.out, "Invalid option!")
			continue
		}
		if err != nil {
			return endOfInput(err)
		}

		if choice == "3" {
			fmt.Fprintln(s.out, "Program ended.")
			return nil
		}

		handler, found := s.options[choice]
		if !found {
			fmt.Fprintln(s.out, "Invalid option!")
			continue
		}

		if err := handler(); err != nil {
			return endOfInput(err)
		}
	}
}

func (s *Shell) printMenu() {
	fmt.Fprintln(s.out, "\n=== Quranic Fruits Smart Analysis System ===")
	fmt.Fprintln(s.out, "1. Search verses related to fruit")
	fmt.Fprintln(s.out, "2. Show fruit frequency analysis")
	fmt.Fprintln(s.out, "3. Exit")
}

// prompt writes label and reads one trimmed line. It returns io.EOF at end
// of input and errLineTooLong once an oversized line has been skipped.
func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *Shell) readLine() (string, error) {
	var (
		buf     []byte
		tooLong bool
	)
	for {
		chunk, isPrefix, err := s.in.ReadLine()
		if err != nil {
			if tooLong {
				return "", errLineTooLong
			}
			return "", err
		}
		if !tooLong && len(buf)+len(chunk) > maxLineBytes {
			tooLong, buf = true, nil
		}
		if !tooLong {
			buf = append(buf, chunk...)
		}
		if !isPrefix {
			break
		}
	}
	if tooLong {
		return "", errLineTooLong
	}
	return string(buf), nil
}

// endOfInput maps a clean end of input to a nil error.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Handlers

func (s *Shell) handleSearch() error {
	query, err := s.prompt("Enter fruit name: ")
	if errors.Is(err, errLineTooLong) {
		s.Logger.WithField("max_bytes", maxLineBytes).Warn("Query too long")
		PrintResults(s.out, nil)
		return nil
	}
	if err != nil {
		return err
	}

	results, err := s.Service.FindRelatedVerses(query, s.TopN)
	if errors.Is(err, search.ErrNotBuilt) {
		return err
	}
	if err != nil {
		s.Logger.WithError(err).Error("Search failed")
		results = nil
	}

	PrintResults(s.out, results)
	return nil
}

func (s *Shell) handleFrequency() error {
	PrintCounts(s.out, s.Service.FruitFrequencies())
	return nil
}

// PrintResults writes related verses, or a not-found line when empty.
func PrintResults(w io.Writer, results []search.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No verses found.")
		return
	}
	fmt.Fprintln(w, "\nRelated verses:")
	for _, r := range results {
		fmt.Fprintf(w, "Surah %s, Verse %s: %s\n", r.Verse.Surah, r.Verse.Number, r.Verse.Text)
	}
}

// PrintCounts writes one line per category in lexicon order.
func PrintCounts(w io.Writer, counts frequency.Counts) {
	fmt.Fprintln(w, "\nFruit frequencies in Quran:")
	for _, c := range counts {
		fmt.Fprintf(w, "%s: %d times\n", c.Label, c.Count)
	}
}
