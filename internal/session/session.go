// Package session ties one running game to its store: it rebuilds the
// engine from the stored moves, runs new move text and persists what the
// engine accepts.
package session

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/boardgamers/gaia-project-sub000/internal/catalog"
	"github.com/boardgamers/gaia-project-sub000/internal/engine"
	"github.com/boardgamers/gaia-project-sub000/internal/persistence"
)

// SnapshotEvery is how many stored moves pass between two snapshots.
const SnapshotEvery = 10

// Store defines the dependency required by Session to persist moves.
type Store interface {
	Load() (engine.Options, []string, error)
	Append(text string) error
	Close() error
}

// SnapshotStore is a Store that can also keep engine snapshots, so a
// session does not replay the whole game on load.
type SnapshotStore interface {
	SaveSnapshot(moveCount int, data []byte) error
	LatestSnapshot() (*persistence.Snapshot, error)
}

// StatusStore is a Store that records whether a game is over.
type StatusStore interface {
	SetStatus(status persistence.GameStatus) error
}

// Session manages the loop of taking move text, running it and persisting
// the accepted moves.
type Session struct {
	store   Store
	cat     *catalog.Catalog
	game    *engine.Engine
	records int
}

// NewSession rebuilds the game held by store. A nil catalog uses the
// embedded data.
func NewSession(store Store, cat *catalog.Catalog) (*Session, error) {
	if cat == nil {
		cat = catalog.Default()
	}
	opts, moves, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load move log: %w", err)
	}
	s := &Session{store: store, cat: cat, records: len(moves)}
	if err := s.rebuild(opts, moves); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) rebuild(opts engine.Options, moves []string) error {
	if ss, ok := s.store.(SnapshotStore); ok {
		snap, err := ss.LatestSnapshot()
		switch {
		case err == nil && snap.MoveCount <= len(moves):
			game, err := engine.Restore(snap.Data, s.cat)
			if err == nil {
				if err := replayOnto(game, moves[snap.MoveCount:]); err != nil {
					return err
				}
				s.game = game
				return nil
			}
			log.Warn().Err(err).Msg("snapshot unusable, replaying")
		case err != nil && !errors.Is(err, persistence.ErrSnapshotNotFound):
			log.Warn().Err(err).Msg("snapshot unusable, replaying")
		}
	}
	game, err := engine.Replay(opts, moves, s.cat)
	if err != nil {
		return fmt.Errorf("failed to replay game: %w", err)
	}
	s.game = game
	return nil
}

func replayOnto(game *engine.Engine, moves []string) error {
	for i, text := range moves {
		err := game.Move(text)
		var incomplete *engine.IncompleteMoveError
		if err != nil && !errors.As(err, &incomplete) {
			return fmt.Errorf("move %d %q: %w", i+1, text, err)
		}
	}
	return nil
}

// Engine returns the running game.
func (s *Session) Engine() *engine.Engine {
	return s.game
}

// Moves is the number of stored move texts.
func (s *Session) Moves() int {
	return s.records
}

// Execute runs one move text. Accepted moves, incomplete ones included,
// are appended to the store; rejected ones leave both game and store as
// they were.
func (s *Session) Execute(text string) (*engine.Engine, error) {
	err := s.game.Move(text)
	var incomplete *engine.IncompleteMoveError
	var broken *engine.InvariantError
	switch {
	case err == nil, errors.As(err, &incomplete):
		if perr := s.store.Append(text); perr != nil {
			return s.game, fmt.Errorf("failed to persist move: %w", perr)
		}
		s.records++
		log.Info().Str("move", text).Int("moves", s.records).Msg("move persisted")
		if perr := s.afterMove(err == nil); perr != nil {
			return s.game, perr
		}
		return s.game, err
	case errors.As(err, &broken):
		s.setStatus(persistence.GameStatusBroken)
	}
	log.Warn().Str("move", text).Err(err).Msg("move rejected")
	return s.game, err
}

func (s *Session) afterMove(complete bool) error {
	if s.game.Phase == engine.PhaseEndGame {
		s.setStatus(persistence.GameStatusFinished)
	}
	ss, ok := s.store.(SnapshotStore)
	if !ok || !complete || s.records%SnapshotEvery != 0 && s.game.Phase != engine.PhaseEndGame {
		return nil
	}
	data, err := s.game.Snapshot()
	if err != nil {
		return err
	}
	if err := ss.SaveSnapshot(s.records, data); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (s *Session) setStatus(status persistence.GameStatus) {
	if st, ok := s.store.(StatusStore); ok {
		if err := st.SetStatus(status); err != nil {
			log.Warn().Err(err).Str("status", string(status)).Msg("failed to record game status")
		}
	}
}

// Available lists the commands legal now.
func (s *Session) Available() []engine.AvailableCommand {
	return s.game.AvailableCommands()
}

// Snapshot serialises the current state.
func (s *Session) Snapshot() ([]byte, error) {
	return s.game.Snapshot()
}

// Close releases the store.
func (s *Session) Close() error {
	return s.store.Close()
}
