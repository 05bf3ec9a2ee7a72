// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// SessionEntry is one logged writing session. Entries are appended to the
// JSON log and mirrored as CSV rows by the stats logger.
type SessionEntry struct {
	// Date is when the session took place.
	Date time.Time `json:"date" yaml:"date"`

	// WordCount is the number of words written in this session.
	WordCount int `json:"word_count" yaml:"word_count"`

	// PageSummary briefly describes the page written.
	PageSummary string `json:"page_summary" yaml:"page_summary"`

	// TotalWords is the novel's total word count after this session.
	TotalWords int `json:"total_words" yaml:"total_words"`

	// Chapter is the chapter being written.
	Chapter int `json:"chapter" yaml:"chapter"`

	// InspirationSources names the sources that inspired the session.
	InspirationSources []string `json:"inspiration_sources,omitempty" yaml:"inspiration_sources,omitempty"`

	// DurationMinutes is how long the session took. Nil when not tracked.
	DurationMinutes *int `json:"writing_duration_minutes" yaml:"writing_duration_minutes"`

	// Metadata carries additional session annotations.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
