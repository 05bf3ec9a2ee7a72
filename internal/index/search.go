// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// QueryOptions holds parameters for draft index queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string.
	Query string

	// Chapter filters by chapter number. Zero means no filter.
	Chapter int

	// Version filters by draft version. Zero means no filter.
	Version int

	// DraftFile filters by save file name.
	DraftFile string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Chapter == 0 && q.Version == 0 && q.DraftFile == ""
}

// QueryResult is an indexed page with its draft metadata.
type QueryResult struct {
	PageID     string    `json:"page_id" yaml:"page_id"`
	DraftFile  string    `json:"draft_file" yaml:"draft_file"`
	DraftTitle string    `json:"draft_title" yaml:"draft_title"`
	Version    int       `json:"version" yaml:"version"`
	PageNum    int       `json:"page_num" yaml:"page_num"`
	Chapter    int       `json:"chapter" yaml:"chapter"`
	Date       time.Time `json:"date,omitempty" yaml:"date,omitempty"`
	Summary    string    `json:"summary,omitempty" yaml:"summary,omitempty"`
	Content    string    `json:"content" yaml:"content"`
}

// Search queries the draft index with optional full-text search and
// structured filters. Results are ranked by relevance for full-text
// queries or sorted by draft file and page number otherwise.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT p.id, p.draft_file, p.page_num, p.chapter, p.date, p.summary, p.content,
				d.title, d.version, pages_fts.rank
			FROM pages_fts
			JOIN pages p ON p.rowid = pages_fts.rowid
			LEFT JOIN drafts d ON p.draft_file = d.file
			WHERE pages_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT p.id, p.draft_file, p.page_num, p.chapter, p.date, p.summary, p.content,
				d.title, d.version, 0 AS rank
			FROM pages p
			LEFT JOIN drafts d ON p.draft_file = d.file
			WHERE 1=1`)
	}

	if opts.Chapter != 0 {
		qb.WriteString(` AND p.chapter = ?`)
		args = append(args, opts.Chapter)
	}

	if opts.Version != 0 {
		qb.WriteString(` AND d.version = ?`)
		args = append(args, opts.Version)
	}

	if opts.DraftFile != "" {
		qb.WriteString(` AND p.draft_file = ?`)
		args = append(args, opts.DraftFile)
	}

	if useFTS {
		qb.WriteString(` ORDER BY pages_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY p.draft_file, p.page_num`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying draft index: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr      QueryResult
			dateStr sql.NullString
			title   sql.NullString
			version sql.NullInt64
			rank    float64
		)

		if err := rows.Scan(
			&qr.PageID, &qr.DraftFile, &qr.PageNum, &qr.Chapter,
			&dateStr, &qr.Summary, &qr.Content,
			&title, &version, &rank,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		if dateStr.Valid && dateStr.String != "" {
			if t, err := time.Parse(time.RFC3339, dateStr.String); err == nil {
				qr.Date = t
			}
		}
		if title.Valid {
			qr.DraftTitle = title.String
		}
		if version.Valid {
			qr.Version = int(version.Int64)
		}

		results = append(results, qr)
	}

	return results, rows.Err()
}
