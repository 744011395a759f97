package persistence

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/boardgamers/gaia-project-sub000/internal/engine"
)

// Record types of the JSONL move log.
const (
	RecordOptions = "options"
	RecordMove    = "move"
)

// ErrNoHeader is returned when a move log does not start with the game
// options.
var ErrNoHeader = errors.New("move log has no options header")

// RecordWrapper tags each JSONL line with the type of its payload.
type RecordWrapper struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MoveRecord is one accepted move text.
type MoveRecord struct {
	Text string `json:"text"`
}

// LogStore handles append-only storing of a game's move log. The first
// line holds the options, every other line one move.
type LogStore struct {
	file *os.File
}

// NewLogStore opens or creates the file at path for appending lines.
func NewLogStore(path string) (*LogStore, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open move log: %w", err)
	}
	return &LogStore{file: file}, nil
}

// Init writes the options header of a new log. It fails if the log
// already has content.
func (s *LogStore) Init(opts engine.Options) error {
	info, err := s.file.Stat()
	if err != nil {
		return err
	}
	if info.Size() > 0 {
		return fmt.Errorf("move log %s is not empty", s.file.Name())
	}
	return s.write(RecordOptions, opts)
}

// Append adds one move to the log.
func (s *LogStore) Append(text string) error {
	return s.write(RecordMove, MoveRecord{Text: text})
}

func (s *LogStore) write(kind string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	line, err := json.Marshal(RecordWrapper{Type: kind, Data: data})
	if err != nil {
		return err
	}
	if _, err := s.file.Write(append(line, '\n')); err != nil {
		return err
	}
	return s.file.Sync()
}

// Load reads the options and every move back.
func (s *LogStore) Load() (engine.Options, []string, error) {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return engine.Options{}, nil, err
	}
	return ReadLog(s.file)
}

// ReadLog decodes a JSONL move log from r.
func ReadLog(r io.Reader) (engine.Options, []string, error) {
	var (
		opts   engine.Options
		header bool
		moves  []string
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var wrapper RecordWrapper
		if err := json.Unmarshal(scanner.Bytes(), &wrapper); err != nil {
			return opts, nil, fmt.Errorf("failed to decode wrapper: %w", err)
		}
		switch wrapper.Type {
		case RecordOptions:
			if header {
				return opts, nil, errors.New("duplicate options header in move log")
			}
			if err := json.Unmarshal(wrapper.Data, &opts); err != nil {
				return opts, nil, fmt.Errorf("failed to parse options: %w", err)
			}
			header = true
		case RecordMove:
			if !header {
				return opts, nil, ErrNoHeader
			}
			var m MoveRecord
			if err := json.Unmarshal(wrapper.Data, &m); err != nil {
				return opts, nil, fmt.Errorf("failed to parse move: %w", err)
			}
			moves = append(moves, m.Text)
		default:
			return opts, nil, fmt.Errorf("unknown record type in log: %s", wrapper.Type)
		}
	}
	if err := scanner.Err(); err != nil {
		return opts, nil, err
	}
	if !header {
		return opts, nil, ErrNoHeader
	}
	return opts, moves, nil
}

// Close handles safe shutdown.
func (s *LogStore) Close() error {
	return s.file.Close()
}
