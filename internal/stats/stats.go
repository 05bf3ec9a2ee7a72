// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stats logs writing sessions and derives progress metrics.
// Sessions are appended to a JSON array file with a simplified CSV mirror;
// aggregation scans the JSON log for streaks, averages, and daily summaries.
package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/novel-writer/pkg/types"
)

// csvHeader is the column layout shared by the CSV mirror and CSV exports.
var csvHeader = []string{
	"date", "word_count", "page_summary", "total_words",
	"chapter", "inspiration_sources", "writing_duration_minutes",
}

// timeNow is overridable so tests can pin "today" for streak calculation.
var timeNow = time.Now

// Logger appends writing sessions to a JSON log and a CSV mirror.
type Logger struct {
	jsonPath string
	csvPath  string
}

// NewLogger initializes the log files if they do not exist (an empty JSON
// array and a CSV header row) and returns a Logger.
func NewLogger(cfg types.StatsConfig) (*Logger, error) {
	jsonPath := cfg.JSONLog
	if jsonPath == "" {
		jsonPath = "daily_writing_log.json"
	}
	csvPath := cfg.CSVLog
	if csvPath == "" {
		csvPath = "daily_writing_log.csv"
	}

	l := &Logger{jsonPath: jsonPath, csvPath: csvPath}
	if err := l.initFiles(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Logger) initFiles() error {
	if _, err := os.Stat(l.jsonPath); os.IsNotExist(err) {
		if err := os.WriteFile(l.jsonPath, []byte("[]\n"), 0o644); err != nil {
			return fmt.Errorf("initializing JSON log: %w", err)
		}
	}

	if _, err := os.Stat(l.csvPath); os.IsNotExist(err) {
		f, err := os.Create(l.csvPath)
		if err != nil {
			return fmt.Errorf("initializing CSV log: %w", err)
		}
		defer f.Close()
		w := csv.NewWriter(f)
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
		w.Flush()
		return w.Error()
	}
	return nil
}

// LogSession appends one session to the JSON log and mirrors it as a CSV row.
func (l *Logger) LogSession(entry types.SessionEntry) error {
	if entry.Date.IsZero() {
		entry.Date = timeNow()
	}

	entries, err := l.readAll()
	if err != nil {
		return err
	}
	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON log: %w", err)
	}
	if err := os.WriteFile(l.jsonPath, data, 0o644); err != nil {
		return fmt.Errorf("writing JSON log: %w", err)
	}

	return l.appendCSV(entry)
}

func (l *Logger) appendCSV(entry types.SessionEntry) error {
	f, err := os.OpenFile(l.csvPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening CSV log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvRow(entry)); err != nil {
		return fmt.Errorf("writing CSV row: %w", err)
	}
	w.Flush()
	return w.Error()
}

func csvRow(entry types.SessionEntry) []string {
	duration := ""
	if entry.DurationMinutes != nil {
		duration = strconv.Itoa(*entry.DurationMinutes)
	}
	return []string{
		entry.Date.Format(time.RFC3339),
		strconv.Itoa(entry.WordCount),
		entry.PageSummary,
		strconv.Itoa(entry.TotalWords),
		strconv.Itoa(entry.Chapter),
		strings.Join(entry.InspirationSources, "; "),
		duration,
	}
}

// History returns sessions from the last `days` calendar days, or all
// sessions when days is zero or negative.
func (l *Logger) History(days int) ([]types.SessionEntry, error) {
	entries, err := l.readAll()
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		return entries, nil
	}

	now := timeNow()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -days)

	var filtered []types.SessionEntry
	for _, e := range entries {
		if !e.Date.Before(cutoff) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

func (l *Logger) readAll() ([]types.SessionEntry, error) {
	data, err := os.ReadFile(l.jsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading JSON log: %w", err)
	}
	var entries []types.SessionEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing JSON log: %w", err)
	}
	return entries, nil
}

// ProductiveDay identifies the single session with the highest word count.
type ProductiveDay struct {
	Date      time.Time `json:"date" yaml:"date"`
	WordCount int       `json:"word_count" yaml:"word_count"`
}

// Summary aggregates all logged sessions into progress metrics.
type Summary struct {
	TotalSessions          int            `json:"total_sessions" yaml:"total_sessions"`
	TotalWordsWritten      int            `json:"total_words_written" yaml:"total_words_written"`
	AverageWordsPerSession int            `json:"average_words_per_session" yaml:"average_words_per_session"`
	TotalWritingDays       int            `json:"total_writing_days" yaml:"total_writing_days"`
	CurrentStreak          int            `json:"current_streak" yaml:"current_streak"`
	LongestStreak          int            `json:"longest_streak" yaml:"longest_streak"`
	MostProductiveDay      *ProductiveDay `json:"most_productive_day,omitempty" yaml:"most_productive_day,omitempty"`
	AverageDurationMinutes int            `json:"average_session_duration" yaml:"average_session_duration"`
}

// Statistics scans the full session history and computes the summary
// metrics. An empty history yields a zero-value summary.
func (l *Logger) Statistics() (Summary, error) {
	history, err := l.History(0)
	if err != nil {
		return Summary{}, err
	}
	if len(history) == 0 {
		return Summary{}, nil
	}

	var s Summary
	s.TotalSessions = len(history)

	var best *types.SessionEntry
	var durations []int
	for i := range history {
		e := &history[i]
		s.TotalWordsWritten += e.WordCount
		if best == nil || e.WordCount > best.WordCount {
			best = e
		}
		if e.DurationMinutes != nil {
			durations = append(durations, *e.DurationMinutes)
		}
	}
	s.AverageWordsPerSession = s.TotalWordsWritten / s.TotalSessions
	s.MostProductiveDay = &ProductiveDay{Date: best.Date, WordCount: best.WordCount}

	if len(durations) > 0 {
		total := 0
		for _, d := range durations {
			total += d
		}
		s.AverageDurationMinutes = total / len(durations)
	}

	days := writingDays(history)
	s.TotalWritingDays = len(days)
	s.CurrentStreak = currentStreak(days, timeNow())
	s.LongestStreak = longestStreak(days)

	return s, nil
}

// DaySummary combines all sessions logged on one calendar day.
type DaySummary struct {
	Date            string               `json:"date" yaml:"date"`
	TotalWordCount  int                  `json:"total_word_count" yaml:"total_word_count"`
	Sessions        int                  `json:"sessions" yaml:"sessions"`
	CombinedSummary string               `json:"combined_summary" yaml:"combined_summary"`
	Entries         []types.SessionEntry `json:"entries" yaml:"entries"`
}

// DailySummary aggregates the sessions logged on the given day. It returns
// nil without error when the day has no sessions.
func (l *Logger) DailySummary(day time.Time) (*DaySummary, error) {
	history, err := l.History(0)
	if err != nil {
		return nil, err
	}

	target := dayKey(day)
	var matched []types.SessionEntry
	for _, e := range history {
		if dayKey(e.Date) == target {
			matched = append(matched, e)
		}
	}
	if len(matched) == 0 {
		return nil, nil
	}

	summary := &DaySummary{
		Date:     target,
		Sessions: len(matched),
		Entries:  matched,
	}
	var summaries []string
	for _, e := range matched {
		summary.TotalWordCount += e.WordCount
		summaries = append(summaries, e.PageSummary)
	}
	summary.CombinedSummary = strings.Join(summaries, " | ")
	return summary, nil
}

// dayKey truncates a timestamp to its calendar date.
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// writingDays returns the unique calendar days with at least one session,
// sorted descending.
func writingDays(history []types.SessionEntry) []time.Time {
	seen := make(map[string]bool)
	var days []time.Time
	for _, e := range history {
		key := dayKey(e.Date)
		if seen[key] {
			continue
		}
		seen[key] = true
		d, _ := time.Parse("2006-01-02", key)
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}

// currentStreak counts consecutive writing days ending today or yesterday.
// A streak survives a session logged yesterday but not yet today.
func currentStreak(days []time.Time, now time.Time) int {
	if len(days) == 0 {
		return 0
	}

	today, _ := time.Parse("2006-01-02", dayKey(now))
	head := days[0]
	if gap := daysBetween(head, today); gap > 1 {
		return 0
	}

	streak := 1
	prev := head
	for _, d := range days[1:] {
		if daysBetween(d, prev) != 1 {
			break
		}
		streak++
		prev = d
	}
	return streak
}

// longestStreak finds the longest run of consecutive writing days.
func longestStreak(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}

	// Ascending copy; days arrives descending.
	asc := make([]time.Time, len(days))
	for i, d := range days {
		asc[len(days)-1-i] = d
	}

	longest, current := 1, 1
	for i := 1; i < len(asc); i++ {
		if daysBetween(asc[i-1], asc[i]) == 1 {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}
	return longest
}

// daysBetween returns the number of calendar days from earlier to later.
func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
