package memo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/bent101/go-wordle-helper/internal/feedback"
)

// Record prefixes of the memory file. Each line is one record and the file
// is only ever appended to.
const (
	prefixExclude = '-' // -word: the game rejected word
	prefixInclude = '+' // +word: the game accepted word
	prefixAnswer  = '@' // @fingerprint|word: recommended guess
)

// FileStore is a Store backed by an append-only text file that also tracks
// words the game accepted or rejected.
type FileStore struct {
	mu   sync.Mutex
	path string

	answers  map[string]string
	excludes map[string]struct{}
	includes map[string]struct{}
	// insertion order, for stable listing
	excludeOrder []string
	includeOrder []string
}

// OpenFile loads path if it exists. A missing file is an empty store.
// Malformed lines are skipped.
func OpenFile(path string) (*FileStore, error) {
	s := &FileStore{
		path:     path,
		answers:  make(map[string]string),
		excludes: make(map[string]struct{}),
		includes: make(map[string]struct{}),
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("open memory file: %w", err)
	}
	defer f.Close()

	if err := s.load(f); err != nil {
		return s, fmt.Errorf("read memory file: %w", err)
	}
	return s, nil
}

func (s *FileStore) load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) < 2 {
			continue
		}
		content := line[1:]
		switch line[0] {
		case prefixExclude:
			if w, ok := recordWord(content); ok {
				s.addExclude(w)
			}
		case prefixInclude:
			if w, ok := recordWord(content); ok {
				s.addInclude(w)
			}
		case prefixAnswer:
			key, word, found := strings.Cut(content, "|")
			if !found || key == "" {
				continue
			}
			if w, ok := recordWord(word); ok {
				if _, exists := s.answers[key]; !exists {
					s.answers[key] = w
				}
			}
		}
	}
	return scanner.Err()
}

func recordWord(s string) (string, bool) {
	if len(s) < feedback.Length {
		return "", false
	}
	w := strings.ToLower(s[:feedback.Length])
	return w, feedback.IsWord(w)
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.answers[key]
	return w, ok
}

// Put records word for key unless key is already known. The in-memory value
// is kept even if appending to the file fails.
func (s *FileStore) Put(key, word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.answers[key]; ok {
		return nil
	}
	s.answers[key] = word
	return s.appendLine(fmt.Sprintf("%c%s|%s", prefixAnswer, key, word))
}

func (s *FileStore) Exclude(word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.addExclude(word) {
		return nil
	}
	return s.appendLine(fmt.Sprintf("%c%s", prefixExclude, word))
}

func (s *FileStore) Include(word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.addInclude(word) {
		return nil
	}
	return s.appendLine(fmt.Sprintf("%c%s", prefixInclude, word))
}

func (s *FileStore) addExclude(w string) bool {
	if _, ok := s.excludes[w]; ok {
		return false
	}
	s.excludes[w] = struct{}{}
	s.excludeOrder = append(s.excludeOrder, w)
	return true
}

func (s *FileStore) addInclude(w string) bool {
	if _, ok := s.includes[w]; ok {
		return false
	}
	s.includes[w] = struct{}{}
	s.includeOrder = append(s.includeOrder, w)
	return true
}

func (s *FileStore) Excluded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.excludeOrder...)
}

func (s *FileStore) Included() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.includeOrder...)
}

func (s *FileStore) Recommendations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return distinctValues(s.answers)
}

func (s *FileStore) appendLine(line string) error {
	if s.path == "" {
		return nil
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("append memory file: %w", err)
	}
	if _, err := fmt.Fprintln(f, line); err != nil {
		f.Close()
		return fmt.Errorf("append memory file: %w", err)
	}
	return f.Close()
}
