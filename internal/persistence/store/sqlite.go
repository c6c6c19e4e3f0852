// Package store persists finalized snapshots to a SQLite index through a
// single writer goroutine. Enqueue is non-blocking: the tick thread hands
// a snapshot off and moves on; if the writer falls behind, the newest
// snapshots are dropped and counted rather than stalling collection.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"runewatch.ai/internal/telemetry"
)

type SQLiteStore struct {
	db *sql.DB

	ch   chan telemetry.Snapshot
	wg   sync.WaitGroup
	once sync.Once

	closed  atomic.Bool
	dropped atomic.Uint64
	written atomic.Uint64

	enc *zstd.Encoder
}

func Open(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteStore{
		db: db,
		// Two-plus seconds of backlog at the 600ms cadence before drops
		// begin; storage hiccups should not reach the tick thread.
		ch:  make(chan telemetry.Snapshot, 256),
		enc: enc,
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	// WAL suits the append-only snapshot stream.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			session_id TEXT NOT NULL,
			tick INTEGER NOT NULL,
			ts TEXT NOT NULL,
			valid INTEGER NOT NULL,
			quality REAL NOT NULL,
			processing_ns INTEGER NOT NULL,
			payload BLOB NOT NULL,
			PRIMARY KEY (session_id, tick)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_ts ON snapshots(ts);`,
		`INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version','1');`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Enqueue hands a snapshot to the writer without blocking. Returns false
// when the snapshot was dropped (queue full or store closed).
func (s *SQLiteStore) Enqueue(snap telemetry.Snapshot) bool {
	if s == nil || s.closed.Load() {
		return false
	}
	select {
	case s.ch <- snap:
		return true
	default:
		s.dropped.Add(1)
		return false
	}
}

// Dropped reports snapshots lost to queue pressure.
func (s *SQLiteStore) Dropped() uint64 { return s.dropped.Load() }

// Written reports snapshots committed to the index.
func (s *SQLiteStore) Written() uint64 { return s.written.Load() }

// Close drains the queue, stops the writer and closes the database.
func (s *SQLiteStore) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

func (s *SQLiteStore) loop() {
	insert, err := s.db.Prepare(`INSERT OR REPLACE INTO snapshots
		(session_id,tick,ts,valid,quality,processing_ns,payload)
		VALUES(?,?,?,?,?,?,?)`)
	if err != nil {
		// Schema init succeeded, so this is unexpected; drain and drop.
		for range s.ch {
			s.dropped.Add(1)
		}
		return
	}
	defer insert.Close()

	for snap := range s.ch {
		payload, err := json.Marshal(snap)
		if err != nil {
			s.dropped.Add(1)
			continue
		}
		compressed := s.enc.EncodeAll(payload, nil)

		valid := 0
		if snap.Valid {
			valid = 1
		}
		_, err = insert.Exec(
			snap.SessionID,
			snap.Tick,
			snap.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			valid,
			snap.Quality,
			snap.ProcessingNanos,
			compressed,
		)
		if err != nil {
			s.dropped.Add(1)
			continue
		}
		s.written.Add(1)
	}
}

// ReadPayload loads and decompresses one stored snapshot, mainly for
// tooling and tests.
func (s *SQLiteStore) ReadPayload(sessionID string, tick uint64) (telemetry.Snapshot, error) {
	var blob []byte
	err := s.db.QueryRow(
		`SELECT payload FROM snapshots WHERE session_id = ? AND tick = ?`,
		sessionID, tick,
	).Scan(&blob)
	if err != nil {
		return telemetry.Snapshot{}, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return telemetry.Snapshot{}, err
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(blob, nil)
	if err != nil {
		return telemetry.Snapshot{}, err
	}
	var snap telemetry.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return telemetry.Snapshot{}, err
	}
	return snap, nil
}

// Count returns the number of stored snapshots for a session.
func (s *SQLiteStore) Count(sessionID string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM snapshots WHERE session_id = ?`, sessionID).Scan(&n)
	return n, err
}
