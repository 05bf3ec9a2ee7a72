// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stats

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/novel-writer/pkg/types"
)

// fixedNow anchors streak and history-window calculations.
var fixedNow = time.Date(2026, 8, 24, 15, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	timeNow = func() time.Time { return fixedNow }
	os.Exit(m.Run())
}

func testLogger(t *testing.T) *Logger {
	t.Helper()
	tmp := t.TempDir()
	l, err := NewLogger(types.StatsConfig{
		JSONLog: filepath.Join(tmp, "log.json"),
		CSVLog:  filepath.Join(tmp, "log.csv"),
	})
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func entryOn(day time.Time, words int) types.SessionEntry {
	return types.SessionEntry{
		Date:        day,
		WordCount:   words,
		PageSummary: "a page",
		TotalWords:  words,
		Chapter:     1,
	}
}

func daysAgo(n int) time.Time {
	return fixedNow.AddDate(0, 0, -n)
}

func TestNewLoggerInitializesFiles(t *testing.T) {
	l := testLogger(t)

	data, err := os.ReadFile(l.jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]\n" {
		t.Errorf("JSON log = %q, want empty array", data)
	}

	f, err := os.Open(l.csvPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0][0] != "date" {
		t.Errorf("CSV log rows = %v, want header only", rows)
	}
}

func TestLogSessionAppendsBothLogs(t *testing.T) {
	l := testLogger(t)

	duration := 45
	entry := entryOn(fixedNow, 320)
	entry.InspirationSources = []string{"news", "weather"}
	entry.DurationMinutes = &duration

	if err := l.LogSession(entry); err != nil {
		t.Fatalf("LogSession: %v", err)
	}
	if err := l.LogSession(entryOn(fixedNow, 280)); err != nil {
		t.Fatalf("LogSession: %v", err)
	}

	history, err := l.History(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 {
		t.Fatalf("len(history) = %d, want 2", len(history))
	}
	if history[0].WordCount != 320 {
		t.Errorf("WordCount = %d, want 320", history[0].WordCount)
	}
	if history[1].DurationMinutes != nil {
		t.Error("second entry DurationMinutes should be nil")
	}

	f, err := os.Open(l.csvPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("CSV rows = %d, want header + 2", len(rows))
	}
	if rows[1][5] != "news; weather" {
		t.Errorf("sources column = %q, want %q", rows[1][5], "news; weather")
	}
	if rows[1][6] != "45" {
		t.Errorf("duration column = %q, want %q", rows[1][6], "45")
	}
	if rows[2][6] != "" {
		t.Errorf("missing duration column = %q, want empty", rows[2][6])
	}
}

func TestHistoryWindow(t *testing.T) {
	l := testLogger(t)

	for _, n := range []int{0, 3, 10, 40} {
		if err := l.LogSession(entryOn(daysAgo(n), 100)); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		days int
		want int
	}{
		{0, 4},   // all
		{7, 2},   // today and 3 days ago
		{15, 3},  // adds 10 days ago
		{60, 4},  // crosses a month boundary
	}

	for _, tt := range tests {
		history, err := l.History(tt.days)
		if err != nil {
			t.Fatal(err)
		}
		if len(history) != tt.want {
			t.Errorf("History(%d) = %d entries, want %d", tt.days, len(history), tt.want)
		}
	}
}

func TestStatisticsEmpty(t *testing.T) {
	l := testLogger(t)

	s, err := l.Statistics()
	if err != nil {
		t.Fatal(err)
	}
	if s != (Summary{}) {
		t.Errorf("empty history Summary = %+v, want zero value", s)
	}
}

func TestStatisticsAggregates(t *testing.T) {
	l := testLogger(t)

	d30 := 30
	d50 := 50
	entries := []types.SessionEntry{
		{Date: daysAgo(2), WordCount: 300, DurationMinutes: &d30},
		{Date: daysAgo(1), WordCount: 500, DurationMinutes: &d50},
		{Date: daysAgo(1), WordCount: 100},
		{Date: daysAgo(0), WordCount: 200},
	}
	for _, e := range entries {
		if err := l.LogSession(e); err != nil {
			t.Fatal(err)
		}
	}

	s, err := l.Statistics()
	if err != nil {
		t.Fatal(err)
	}

	if s.TotalSessions != 4 {
		t.Errorf("TotalSessions = %d, want 4", s.TotalSessions)
	}
	if s.TotalWordsWritten != 1100 {
		t.Errorf("TotalWordsWritten = %d, want 1100", s.TotalWordsWritten)
	}
	if s.AverageWordsPerSession != 275 {
		t.Errorf("AverageWordsPerSession = %d, want 275", s.AverageWordsPerSession)
	}
	if s.TotalWritingDays != 3 {
		t.Errorf("TotalWritingDays = %d, want 3", s.TotalWritingDays)
	}
	if s.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", s.CurrentStreak)
	}
	if s.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", s.LongestStreak)
	}
	if s.MostProductiveDay == nil || s.MostProductiveDay.WordCount != 500 {
		t.Errorf("MostProductiveDay = %+v, want 500 words", s.MostProductiveDay)
	}
	if s.AverageDurationMinutes != 40 {
		t.Errorf("AverageDurationMinutes = %d, want 40", s.AverageDurationMinutes)
	}
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name     string
		sessions []int // days ago with a session
		want     int
	}{
		{"no sessions", nil, 0},
		{"today only", []int{0}, 1},
		{"yesterday only still counts", []int{1}, 1},
		{"run ending today", []int{0, 1, 2}, 3},
		{"run ending yesterday", []int{1, 2, 3}, 3},
		{"broken two days ago", []int{2, 3}, 0},
		{"gap resets", []int{0, 1, 3, 4}, 2},
		{"multiple sessions same day", []int{0, 0, 1}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := testLogger(t)
			for _, n := range tt.sessions {
				if err := l.LogSession(entryOn(daysAgo(n), 100)); err != nil {
					t.Fatal(err)
				}
			}
			s, err := l.Statistics()
			if err != nil {
				t.Fatal(err)
			}
			if tt.sessions == nil {
				return
			}
			if s.CurrentStreak != tt.want {
				t.Errorf("CurrentStreak = %d, want %d", s.CurrentStreak, tt.want)
			}
		})
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name     string
		sessions []int
		want     int
	}{
		{"single day", []int{5}, 1},
		{"old long run beats recent short run", []int{0, 1, 10, 11, 12, 13}, 4},
		{"all consecutive", []int{0, 1, 2, 3, 4}, 5},
		{"isolated days", []int{1, 5, 9}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := testLogger(t)
			for _, n := range tt.sessions {
				if err := l.LogSession(entryOn(daysAgo(n), 100)); err != nil {
					t.Fatal(err)
				}
			}
			s, err := l.Statistics()
			if err != nil {
				t.Fatal(err)
			}
			if s.LongestStreak != tt.want {
				t.Errorf("LongestStreak = %d, want %d", s.LongestStreak, tt.want)
			}
		})
	}
}

func TestDailySummary(t *testing.T) {
	l := testLogger(t)

	target := daysAgo(1)
	sessions := []types.SessionEntry{
		{Date: target, WordCount: 250, PageSummary: "morning scene"},
		{Date: target.Add(4 * time.Hour), WordCount: 150, PageSummary: "evening scene"},
		{Date: daysAgo(3), WordCount: 400, PageSummary: "other day"},
	}
	for _, e := range sessions {
		if err := l.LogSession(e); err != nil {
			t.Fatal(err)
		}
	}

	summary, err := l.DailySummary(target)
	if err != nil {
		t.Fatal(err)
	}
	if summary == nil {
		t.Fatal("DailySummary returned nil")
	}
	if summary.Sessions != 2 {
		t.Errorf("Sessions = %d, want 2", summary.Sessions)
	}
	if summary.TotalWordCount != 400 {
		t.Errorf("TotalWordCount = %d, want 400", summary.TotalWordCount)
	}
	if summary.CombinedSummary != "morning scene | evening scene" {
		t.Errorf("CombinedSummary = %q", summary.CombinedSummary)
	}

	none, err := l.DailySummary(daysAgo(20))
	if err != nil {
		t.Fatal(err)
	}
	if none != nil {
		t.Errorf("summary for empty day = %+v, want nil", none)
	}
}

func TestExportCSV(t *testing.T) {
	l := testLogger(t)

	for _, n := range []int{0, 1, 20} {
		if err := l.LogSession(entryOn(daysAgo(n), 100)); err != nil {
			t.Fatal(err)
		}
	}

	out := filepath.Join(t.TempDir(), "export.csv")
	if err := l.ExportCSV(out, 7); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Errorf("export rows = %d, want header + 2", len(rows))
	}
}

func TestExportYAML(t *testing.T) {
	l := testLogger(t)

	if err := l.LogSession(entryOn(fixedNow, 300)); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "export.yaml")
	if err := l.ExportYAML(out, 0); err != nil {
		t.Fatalf("ExportYAML: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var entries []types.SessionEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].WordCount != 300 {
		t.Errorf("exported entries = %+v", entries)
	}
}
