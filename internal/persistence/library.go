package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// logExt is the extension of move log files.
const logExt = ".jsonl"

// Library keeps move logs as files in one directory, one per game.
type Library struct {
	Dir string
}

// NewLibrary returns a library rooted at dir.
func NewLibrary(dir string) *Library {
	return &Library{Dir: dir}
}

// Path is the move log file of a game.
func (l *Library) Path(name string) string {
	return filepath.Join(l.Dir, name+logExt)
}

// Create makes the directory if needed and starts a new log.
func (l *Library) Create(name string) (*LogStore, error) {
	if err := os.MkdirAll(l.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", l.Dir, err)
	}
	path := l.Path(name)
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("game %s already exists", name)
	}
	return NewLogStore(path)
}

// Open opens the log of an existing game.
func (l *Library) Open(name string) (*LogStore, error) {
	path := l.Path(name)
	if stat, err := os.Stat(path); err != nil || stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, path)
	}
	return NewLogStore(path)
}

// List returns the names of every game in the library, sorted.
func (l *Library) List() ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), logExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), logExt))
	}
	sort.Strings(names)
	return names, nil
}
