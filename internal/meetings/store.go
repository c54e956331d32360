// Package meetings provides the SQLite-backed meeting transcript store with
// embedding-based semantic search and an optional keyword index.
package meetings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	sqlite3 "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/grandplaza/concierge/internal/embedding"
	"github.com/grandplaza/concierge/internal/extract"
	"github.com/grandplaza/concierge/internal/vector"
)

var (
	// ErrDuplicateFile is returned when a filename is already stored.
	ErrDuplicateFile = errors.New("meeting file already exists")
	// ErrFileNotFound is returned when a filename is not stored.
	ErrFileNotFound = errors.New("meeting file not found")
)

// DefaultTopK is the result count used when a search requests zero or fewer.
const DefaultTopK = 5

// Store persists meeting files with their embeddings.
type Store struct {
	db        *sql.DB
	embedder  embedding.Embedder
	keyword   *KeywordIndex
	extractor *extract.Extractor
	logger    *zap.Logger
}

// NewStore opens or creates the meeting database at dbPath. keyword may be nil
// to disable keyword search.
func NewStore(dbPath string, embedder embedding.Embedder, keyword *KeywordIndex, logger *zap.Logger) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS meeting_files (
		file_id TEXT PRIMARY KEY,
		filename TEXT NOT NULL UNIQUE,
		content TEXT NOT NULL,
		embedding BLOB,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_meeting_files_created_at ON meeting_files(created_at);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{
		db:        db,
		embedder:  embedder,
		keyword:   keyword,
		extractor: extract.NewExtractor(),
		logger:    logger,
	}, nil
}

// AddFile stores a meeting file with its embedding. Duplicate filenames return
// ErrDuplicateFile and leave the store unchanged.
func (s *Store) AddFile(ctx context.Context, filename, content string) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", fmt.Errorf("filename is required")
	}
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("content is required")
	}

	emb, err := s.embedder.Embed(ctx, content)
	if err != nil {
		return "", fmt.Errorf("failed to embed content: %w", err)
	}

	fileID := uuid.New().String()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO meeting_files (file_id, filename, content, embedding) VALUES (?, ?, ?, ?)`,
		fileID, filename, content, vector.Encode(emb))
	if err != nil {
		if isUniqueViolation(err) {
			return "", ErrDuplicateFile
		}
		return "", err
	}

	if s.keyword != nil {
		if err := s.keyword.Index(fileID, filename, content); err != nil {
			s.logger.Warn("failed to index meeting file for keyword search",
				zap.String("filename", filename), zap.Error(err))
		}
	}

	s.logger.Info("added meeting file",
		zap.String("file_id", fileID),
		zap.String("filename", filename),
		zap.Int("content_length", len(content)))
	return fileID, nil
}

// IngestFile extracts text from the file at path and stores it under its base name.
func (s *Store) IngestFile(ctx context.Context, path string) (string, error) {
	content, err := s.extractor.Extract(path)
	if err != nil {
		return "", fmt.Errorf("failed to extract %s: %w", path, err)
	}
	return s.AddFile(ctx, filepath.Base(path), content)
}

// GetContent returns the stored content for filename.
func (s *Store) GetContent(ctx context.Context, filename string) (string, error) {
	var content string
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM meeting_files WHERE filename = ?`, filename).Scan(&content)
	if err == sql.ErrNoRows {
		return "", ErrFileNotFound
	}
	if err != nil {
		return "", err
	}
	return content, nil
}

// Count returns the number of stored meeting files.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM meeting_files`).Scan(&count)
	return count, err
}

// PurgeAll removes every stored meeting file and clears the keyword index.
func (s *Store) PurgeAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM meeting_files`); err != nil {
		return err
	}
	if s.keyword != nil {
		if err := s.keyword.DeleteAll(); err != nil {
			s.logger.Warn("failed to clear keyword index", zap.Error(err))
		}
	}
	s.logger.Info("purged all meeting files")
	return nil
}

// Close closes the database and the keyword index.
func (s *Store) Close() error {
	if s.keyword != nil {
		if err := s.keyword.Close(); err != nil {
			s.logger.Warn("failed to close keyword index", zap.Error(err))
		}
	}
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
