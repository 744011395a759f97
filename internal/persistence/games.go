package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/boardgamers/gaia-project-sub000/internal/engine"
)

// GameStatus is where a stored game stands.
type GameStatus string

const (
	GameStatusActive   GameStatus = "active"
	GameStatusFinished GameStatus = "finished"
	GameStatusBroken   GameStatus = "broken"
)

// Game is a stored game without its moves.
type Game struct {
	ID        string
	Name      string
	Options   engine.Options
	Status    GameStatus
	Moves     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot is a decoded engine snapshot taken after MoveCount stored moves.
type Snapshot struct {
	MoveCount int
	Data      []byte
	Digest    string
}

var (
	// ErrGameNotFound is returned when a game is not found.
	ErrGameNotFound = errors.New("game not found")
	// ErrSnapshotNotFound is returned when a game has no snapshot yet.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// CreateGame stores a new game and returns it with a fresh id.
func (db *DB) CreateGame(name string, opts engine.Options) (*Game, error) {
	id := uuid.New().String()
	optsJSON, err := json.Marshal(opts)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	_, err = db.conn.Exec(`
		INSERT INTO games (id, name, options_json, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, name, string(optsJSON), GameStatusActive, now, now)
	if err != nil {
		return nil, err
	}
	return &Game{
		ID:        id,
		Name:      name,
		Options:   opts,
		Status:    GameStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetGame retrieves a game by ID.
func (db *DB) GetGame(id string) (*Game, error) {
	var g Game
	var optsJSON string
	err := db.conn.QueryRow(`
		SELECT g.id, g.name, g.options_json, g.status, g.created_at, g.updated_at,
		       (SELECT COUNT(*) FROM moves WHERE game_id = g.id)
		FROM games g WHERE g.id = ?
	`, id).Scan(&g.ID, &g.Name, &optsJSON, &g.Status, &g.CreatedAt, &g.UpdatedAt, &g.Moves)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(optsJSON), &g.Options); err != nil {
		return nil, fmt.Errorf("game %s has bad options: %w", id, err)
	}
	return &g, nil
}

// ListGames returns every game, newest first.
func (db *DB) ListGames() ([]*Game, error) {
	rows, err := db.conn.Query(`SELECT id FROM games ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	games := make([]*Game, 0, len(ids))
	for _, id := range ids {
		g, err := db.GetGame(id)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, nil
}

// SetStatus updates the status of a game.
func (db *DB) SetStatus(id string, status GameStatus) error {
	res, err := db.conn.Exec(`UPDATE games SET status = ?, updated_at = ? WHERE id = ?`, status, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

// DeleteGame removes a game with its moves and snapshots.
func (db *DB) DeleteGame(id string) error {
	res, err := db.conn.Exec(`DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func mustAffect(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrGameNotFound
	}
	return nil
}

// AppendMove adds a move at the end of a game's log.
func (db *DB) AppendMove(id, text string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM games WHERE id = ?`, id).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return ErrGameNotFound
	}
	var next int
	if err := tx.QueryRow(`SELECT COALESCE(MAX(idx) + 1, 0) FROM moves WHERE game_id = ?`, id).Scan(&next); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO moves (game_id, idx, text) VALUES (?, ?, ?)`, id, next, text); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE games SET updated_at = ? WHERE id = ?`, time.Now().UTC(), id); err != nil {
		return err
	}
	return tx.Commit()
}

// Moves returns the stored moves of a game in order.
func (db *DB) Moves(id string) ([]string, error) {
	rows, err := db.conn.Query(`SELECT text FROM moves WHERE game_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var moves []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		moves = append(moves, text)
	}
	return moves, rows.Err()
}

// SaveSnapshot stores a compressed engine snapshot taken after moveCount
// moves.
func (db *DB) SaveSnapshot(id string, moveCount int, data []byte) error {
	blob, err := EncodeSnapshot(data)
	if err != nil {
		return err
	}
	_, err = db.conn.Exec(`
		INSERT OR REPLACE INTO snapshots (game_id, move_count, data, digest)
		VALUES (?, ?, ?, ?)
	`, id, moveCount, blob, Digest(data))
	return err
}

// LatestSnapshot returns the most recent snapshot of a game.
func (db *DB) LatestSnapshot(id string) (*Snapshot, error) {
	var s Snapshot
	var blob []byte
	err := db.conn.QueryRow(`
		SELECT move_count, data, digest FROM snapshots
		WHERE game_id = ? ORDER BY move_count DESC LIMIT 1
	`, id).Scan(&s.MoveCount, &blob, &s.Digest)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}
	s.Data, err = DecodeSnapshot(blob)
	if err != nil {
		return nil, err
	}
	if Digest(s.Data) != s.Digest {
		return nil, fmt.Errorf("%w: game %s at move %d", ErrCorruptSnapshot, id, s.MoveCount)
	}
	return &s, nil
}

// GameLog is the move log of one stored game.
type GameLog struct {
	db *DB
	id string
}

// Log returns the log of game id.
func (db *DB) Log(id string) *GameLog {
	return &GameLog{db: db, id: id}
}

// ID is the game id.
func (l *GameLog) ID() string {
	return l.id
}

// Load reads the options and every move back.
func (l *GameLog) Load() (engine.Options, []string, error) {
	g, err := l.db.GetGame(l.id)
	if err != nil {
		return engine.Options{}, nil, err
	}
	moves, err := l.db.Moves(l.id)
	return g.Options, moves, err
}

// Append adds one move to the log.
func (l *GameLog) Append(text string) error {
	return l.db.AppendMove(l.id, text)
}

// SaveSnapshot stores the state after moveCount moves.
func (l *GameLog) SaveSnapshot(moveCount int, data []byte) error {
	return l.db.SaveSnapshot(l.id, moveCount, data)
}

// LatestSnapshot returns the most recent snapshot.
func (l *GameLog) LatestSnapshot() (*Snapshot, error) {
	return l.db.LatestSnapshot(l.id)
}

// SetStatus records the status of the game.
func (l *GameLog) SetStatus(status GameStatus) error {
	return l.db.SetStatus(l.id, status)
}

// Close is a no-op; the database outlives its logs.
func (l *GameLog) Close() error {
	return nil
}
