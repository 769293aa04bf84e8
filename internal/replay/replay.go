// Package replay stores move logs as zstd-compressed JSON files and checks
// them against a level.
package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/tui-fillets/internal/games/fillets/core"
	"github.com/vovakirdan/tui-fillets/internal/games/fillets/levels"
)

// Extension is the file extension used for replay files.
const Extension = ".fmv.zst"

// Version is the current record format.
const Version = 1

// settleRounds bounds the rounds run after the last move is loaded.
const settleRounds = 4

var (
	ErrBadRecord = errors.New("bad replay record")
	ErrMismatch  = errors.New("replay is for another level")
)

// Record is one saved move log.
type Record struct {
	Version   int       `json:"version"`
	LevelID   string    `json:"level_id"`
	Moves     string    `json:"moves"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRecord creates a record stamped with the current time.
func NewRecord(levelID, moves string) Record {
	return Record{
		Version:   Version,
		LevelID:   levelID,
		Moves:     moves,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// Validate checks the record fields.
func (r Record) Validate() error {
	if r.Version != Version {
		return fmt.Errorf("%w: version %d", ErrBadRecord, r.Version)
	}
	if r.LevelID == "" {
		return fmt.Errorf("%w: missing level_id", ErrBadRecord)
	}
	if strings.ContainsAny(r.Moves, " \t\r\n") {
		return fmt.Errorf("%w: whitespace in moves", ErrBadRecord)
	}
	return nil
}

// FileName returns the default file name for a record.
func FileName(r Record) string {
	return fmt.Sprintf("%s-%s%s", r.LevelID, r.CreatedAt.Format("20060102-150405"), Extension)
}

// Write stores the record at path, creating parent directories.
func Write(path string, r Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("replay: cannot create directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	if err := json.NewEncoder(enc).Encode(r); err != nil {
		enc.Close()
		return fmt.Errorf("replay: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("replay: compress: %w", err)
	}
	return f.Close()
}

// Read loads and validates the record stored at path.
func Read(path string) (Record, error) {
	var r Record
	f, err := os.Open(path)
	if err != nil {
		return r, fmt.Errorf("replay: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return r, fmt.Errorf("replay: %w", err)
	}
	defer dec.Close()

	if err := json.NewDecoder(bufio.NewReader(dec)).Decode(&r); err != nil {
		return r, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}
	if err := r.Validate(); err != nil {
		return r, err
	}
	return r, nil
}

// Result is the outcome of replaying a move log.
type Result struct {
	Complete bool
	Moves    int
	Snapshot core.Snapshot
}

// Verify rebuilds the level, replays the moves and lets the last move
// settle. A log that cannot be replayed is an error; a log that replays
// but leaves the level unsolved is not.
func Verify(level levels.Level, moves string, opts ...core.Option) (Result, error) {
	room, err := level.Build(opts...)
	if err != nil {
		return Result{}, err
	}
	if err := room.LoadMoves(moves); err != nil {
		return Result{Moves: len(room.Moves()), Snapshot: room.Snapshot()}, err
	}

	complete := room.IsComplete()
	for i := 0; i < settleRounds && !complete; i++ {
		if complete, err = room.NextRound(); err != nil {
			return Result{Moves: len(room.Moves()), Snapshot: room.Snapshot()}, err
		}
	}

	return Result{
		Complete: complete,
		Moves:    len(room.Moves()),
		Snapshot: room.Snapshot(),
	}, nil
}

// VerifyRecord checks that the record belongs to the level and replays it.
func VerifyRecord(level levels.Level, r Record, opts ...core.Option) (Result, error) {
	if r.LevelID != level.ID {
		return Result{}, fmt.Errorf("%w: %s, not %s", ErrMismatch, r.LevelID, level.ID)
	}
	return Verify(level, r.Moves, opts...)
}
