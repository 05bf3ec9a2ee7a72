// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index builds a full-text search index over saved story drafts.
// Every page of every draft version is indexed in SQLite with FTS5, so a
// writer can find where a scene or phrase was written and in which
// revision.
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/novel-writer/pkg/types"
)

const (
	dbFile     = "drafts.db"
	savePrefix = "story_draft_"
	saveSuffix = ".json"
)

// Store manages the draft search SQLite database.
type Store struct {
	db         *sql.DB
	indexDir   string
	savesDir   string
	maxResults int
}

// NewStore opens or creates the draft index at indexDir/drafts.db and
// creates the schema if it does not exist.
func NewStore(cfg types.IndexConfig, savesDir string) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		indexDir:   cfg.IndexDir,
		savesDir:   savesDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS drafts (
			file TEXT PRIMARY KEY,
			version INTEGER,
			saved_at TEXT,
			title TEXT,
			word_count INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS pages (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			draft_file TEXT NOT NULL REFERENCES drafts(file),
			page_num INTEGER,
			chapter INTEGER,
			date TEXT,
			summary TEXT,
			content TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pages_draft_file ON pages(draft_file)`,
		`CREATE INDEX IF NOT EXISTS idx_pages_chapter ON pages(chapter)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			draft_file TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='pages_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE pages_fts USING fts5(content, content=pages, content_rowid=rowid)`,
			`CREATE TRIGGER pages_ai AFTER INSERT ON pages BEGIN
				INSERT INTO pages_fts(rowid, content) VALUES (new.rowid, new.content);
			END`,
			`CREATE TRIGGER pages_ad AFTER DELETE ON pages BEGIN
				INSERT INTO pages_fts(pages_fts, rowid, content) VALUES('delete', old.rowid, old.content);
			END`,
			`CREATE TRIGGER pages_au AFTER UPDATE ON pages BEGIN
				INSERT INTO pages_fts(pages_fts, rowid, content) VALUES('delete', old.rowid, old.content);
				INSERT INTO pages_fts(rowid, content) VALUES (new.rowid, new.content);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from an index build run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of save files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads story_draft_*.json files from the saves directory and
// populates the database. It detects new, changed, and unchanged files
// for incremental updates.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	entries, err := os.ReadDir(s.savesDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading saves directory %s: %w", s.savesDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, savePrefix) || !strings.HasSuffix(name, saveSuffix) {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		// Check whether the file has changed since last indexing.
		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE draft_file = ?`, name,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		data, err := os.ReadFile(filepath.Join(s.savesDir, name))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		var draft types.StoryDraft
		if err := json.Unmarshal(data, &draft); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", name, err)
			summary.Failed++
			continue
		}

		if err := s.ingestDraft(ctx, name, &draft, modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d pages)\n", name, len(draft.Pages))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d pages)\n", name, len(draft.Pages))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	// Refresh export.json after successful ingestion.
	if summary.Indexed > 0 || summary.Updated > 0 {
		if err := s.ExportJSON(ctx, QueryOptions{}); err != nil {
			fmt.Fprintf(w, "warning: export.json write failed: %v\n", err)
		}
	}

	return summary, nil
}

func (s *Store) ingestDraft(ctx context.Context, file string, draft *types.StoryDraft, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Remove old pages if updating.
	if isUpdate {
		if _, err := tx.ExecContext(ctx, `DELETE FROM pages WHERE draft_file = ?`, file); err != nil {
			return fmt.Errorf("deleting old pages: %w", err)
		}
	}

	var (
		savedAt   string
		version   int
		wordCount int
	)
	if draft.SaveMeta != nil {
		version = draft.SaveMeta.Version
		wordCount = draft.SaveMeta.WordCount
		if !draft.SaveMeta.Timestamp.IsZero() {
			savedAt = draft.SaveMeta.Timestamp.Format(time.RFC3339)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO drafts (file, version, saved_at, title, word_count)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(file) DO UPDATE SET
			version=excluded.version, saved_at=excluded.saved_at,
			title=excluded.title, word_count=excluded.word_count`,
		file, version, savedAt, draft.Title, wordCount,
	)
	if err != nil {
		return fmt.Errorf("upserting draft: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO pages (id, draft_file, page_num, chapter, date, summary, content)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	pages := draft.Pages
	if len(pages) == 0 && strings.TrimSpace(draft.Content) != "" {
		// Drafts written before page tracking hold all prose in Content.
		pages = []types.Page{{Content: draft.Content, Chapter: draft.Chapter}}
	}

	for i, page := range pages {
		dateStr := ""
		if !page.Date.IsZero() {
			dateStr = page.Date.Format(time.RFC3339)
		}
		_, err := stmt.ExecContext(ctx,
			fmt.Sprintf("%s#%d", file, i), file, i,
			page.Chapter, dateStr, page.Summary, page.Content,
		)
		if err != nil {
			return fmt.Errorf("inserting page %d: %w", i, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (draft_file, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(draft_file) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		file, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}
