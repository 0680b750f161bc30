package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"debatebot/models"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteArchive keeps debates in a local SQLite file
type SQLiteArchive struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database file at path
func OpenSQLite(path string) (*SQLiteArchive, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite archive: %w", err)
	}

	archive := &SQLiteArchive{db: conn}
	if err := archive.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate sqlite archive: %w", err)
	}
	return archive, nil
}

func (a *SQLiteArchive) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS debates (
		id TEXT PRIMARY KEY,
		topic TEXT NOT NULL,
		debate TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_debates_created ON debates(created_at);
	`
	_, err := a.db.Exec(schema)
	return err
}

// SaveDebate stores the debate as JSON and returns a new UUID
func (a *SQLiteArchive) SaveDebate(ctx context.Context, record models.DebateRecord) (string, error) {
	body, err := json.Marshal(record.Debate)
	if err != nil {
		return "", fmt.Errorf("failed to encode debate: %w", err)
	}

	id := uuid.NewString()
	_, err = a.db.ExecContext(ctx,
		`INSERT INTO debates (id, topic, debate, created_at) VALUES (?, ?, ?, ?)`,
		id, record.Topic, string(body), record.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save debate: %w", err)
	}
	return id, nil
}

func (a *SQLiteArchive) GetDebate(ctx context.Context, id string) (*models.DebateRecord, error) {
	row := a.db.QueryRowContext(ctx,
		`SELECT id, topic, debate, created_at FROM debates WHERE id = ?`, id)

	record, err := scanDebate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load debate: %w", err)
	}
	return record, nil
}

func (a *SQLiteArchive) RecentDebates(ctx context.Context, limit int) ([]models.DebateRecord, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, topic, debate, created_at FROM debates ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list debates: %w", err)
	}
	defer rows.Close()

	records := []models.DebateRecord{}
	for rows.Next() {
		record, err := scanDebate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read debate: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func (a *SQLiteArchive) Close(context.Context) error {
	return a.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDebate(s scanner) (*models.DebateRecord, error) {
	var (
		record    models.DebateRecord
		body      string
		createdAt int64
	)
	if err := s.Scan(&record.ID, &record.Topic, &body, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(body), &record.Debate); err != nil {
		return nil, err
	}
	record.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &record, nil
}
