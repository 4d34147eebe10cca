package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bent101/go-wordle-helper/internal/feedback"
)

// ReadWords reads one word per line, keeping only lines that are already a
// playable lowercase word. Capitalised entries are proper nouns and skipped.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if feedback.IsWord(line) {
			words = append(words, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// ReadFrequencies reads lines of "word count". Words are lowercased and
// counts for the same word are summed.
func ReadFrequencies(r io.Reader) (Frequencies, error) {
	freqs := make(Frequencies)
	scanner := bufio.NewScanner(r)
	for i := 1; scanner.Scan(); i++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: want \"word count\", got %q", i, scanner.Text())
		}
		n, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		freqs[strings.ToLower(fields[0])] += n
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return freqs, nil
}

// Load builds a dictionary from a word list file and an optional frequency
// file. An empty freqPath ranks every word equally.
func Load(wordsPath, freqPath string) (*Dictionary, error) {
	f, err := os.Open(wordsPath)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	words, err := ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}

	var ranker Ranker
	if freqPath != "" {
		ff, err := os.Open(freqPath)
		if err != nil {
			return nil, fmt.Errorf("open frequency file: %w", err)
		}
		defer ff.Close()
		freqs, err := ReadFrequencies(ff)
		if err != nil {
			return nil, fmt.Errorf("read frequency file: %w", err)
		}
		ranker = freqs
	}

	return New(words, ranker), nil
}
