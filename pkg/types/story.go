// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data and configuration models for the
// novel-writer pipeline.
package types

import "time"

// Page is one generated page of prose within a story draft.
type Page struct {
	// Content is the page's prose text.
	Content string `json:"content" yaml:"content"`

	// Chapter is the chapter this page belongs to.
	Chapter int `json:"chapter,omitempty" yaml:"chapter,omitempty"`

	// Date records when the page was written.
	Date time.Time `json:"date,omitempty" yaml:"date,omitempty"`

	// Summary is a short description of the page content.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// SaveMetadata is stamped into every save file by the auto-save store.
type SaveMetadata struct {
	// Timestamp is when the save was written.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// Version is the save's sequence number. Versions increase
	// monotonically across all saves in the directory.
	Version int `json:"version" yaml:"version"`

	// WordCount is the draft's total word count at save time.
	WordCount int `json:"word_count" yaml:"word_count"`

	// AutoSaved reports whether the save was made by the auto-save
	// system rather than an explicit user action.
	AutoSaved bool `json:"auto_saved" yaml:"auto_saved"`
}

// BackupType classifies how a backup was triggered.
type BackupType string

const (
	BackupManual    BackupType = "manual"
	BackupScheduled BackupType = "scheduled"
)

// BackupMetadata is stamped into every backup file by the auto-save store.
type BackupMetadata struct {
	// Timestamp is when the backup was written.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// WordCount is the draft's total word count at backup time.
	WordCount int `json:"word_count" yaml:"word_count"`

	// Type records how the backup was triggered.
	Type BackupType `json:"backup_type" yaml:"backup_type"`
}

// StoryDraft is one snapshot of the novel: prose content plus the metadata
// the persistence layer embeds on save or backup.
type StoryDraft struct {
	// Title is the working title of the novel.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Content holds free-form prose not yet organized into pages.
	Content string `json:"content,omitempty" yaml:"content,omitempty"`

	// Pages lists the generated pages in order.
	Pages []Page `json:"pages,omitempty" yaml:"pages,omitempty"`

	// Chapter is the chapter currently being written.
	Chapter int `json:"chapter,omitempty" yaml:"chapter,omitempty"`

	// Characters lists named characters introduced so far.
	Characters []string `json:"characters,omitempty" yaml:"characters,omitempty"`

	// SaveMeta is populated by the store when the draft is saved.
	SaveMeta *SaveMetadata `json:"save_metadata,omitempty" yaml:"save_metadata,omitempty"`

	// BackupMeta is populated by the store when the draft is backed up.
	BackupMeta *BackupMetadata `json:"backup_metadata,omitempty" yaml:"backup_metadata,omitempty"`
}

// SaveInfo describes one save file in the history listing.
type SaveInfo struct {
	// Filename is the save file's base name.
	Filename string `json:"filename" yaml:"filename"`

	// Path is the full path to the save file.
	Path string `json:"path" yaml:"path"`

	// Timestamp is the embedded save timestamp.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// Version is the embedded save version.
	Version int `json:"version" yaml:"version"`

	// WordCount is the embedded word count.
	WordCount int `json:"word_count" yaml:"word_count"`

	// SizeBytes is the file size on disk.
	SizeBytes int64 `json:"size_bytes" yaml:"size_bytes"`
}

// PageResult is the outcome of one writing session: the generated page and
// the statistics the session produced.
type PageResult struct {
	// Content is the generated prose.
	Content string `json:"content" yaml:"content"`

	// WordCount is the number of words in Content.
	WordCount int `json:"word_count" yaml:"word_count"`

	// Chapter is the chapter the page was written for.
	Chapter int `json:"chapter" yaml:"chapter"`

	// Date is when the page was generated.
	Date time.Time `json:"date" yaml:"date"`

	// InspirationSources names the context sources that fed the session.
	InspirationSources []string `json:"inspiration_sources,omitempty" yaml:"inspiration_sources,omitempty"`

	// Genre is the novel's genre at generation time.
	Genre string `json:"genre,omitempty" yaml:"genre,omitempty"`

	// TotalWords is the novel's running word count including this page.
	TotalWords int `json:"total_words" yaml:"total_words"`
}
