// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schedule runs daily writing sessions. A session generates one page,
// folds it into the current draft, persists the draft through the auto-save
// store, logs statistics, and writes per-day output files.
package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/novel-writer/internal/autosave"
	"github.com/pdiddy/novel-writer/internal/compose"
	"github.com/pdiddy/novel-writer/internal/stats"
	"github.com/pdiddy/novel-writer/pkg/types"
)

const (
	// dayLayout names per-day output files: 2026-08-24_page.txt.
	dayLayout = "2006-01-02"

	pageSuffix = "_page.txt"
	metaSuffix = "_metadata.json"
)

// timeNow is overridable so tests can pin the schedule clock.
var timeNow = time.Now

// Runner executes writing sessions on demand or on a daily schedule.
type Runner struct {
	Engine *compose.Engine
	Saves  *autosave.Store
	Stats  *stats.Logger

	// OutputDir receives per-day page and metadata files.
	OutputDir string

	// WriteAt is the daily trigger time in HH:MM (24-hour).
	WriteAt string

	// OnComplete, when set, is called after each successful session.
	OnComplete func(types.PageResult)

	// OnError, when set, is called when a session fails.
	OnError func(error)
}

// WriteNow executes one writing session immediately. Progress is reported
// to w.
func (r *Runner) WriteNow(ctx context.Context, w io.Writer) (types.PageResult, error) {
	result, err := r.session(ctx, w)
	if err != nil {
		if r.OnError != nil {
			r.OnError(err)
		}
		return types.PageResult{}, err
	}
	if r.OnComplete != nil {
		r.OnComplete(result)
	}
	return result, nil
}

func (r *Runner) session(ctx context.Context, w io.Writer) (types.PageResult, error) {
	draft, err := r.Saves.LoadLatest()
	if err != nil {
		return types.PageResult{}, fmt.Errorf("loading latest draft: %w", err)
	}
	if draft == nil {
		draft = &types.StoryDraft{
			Title:   r.Engine.Profile.Title,
			Chapter: 1,
		}
	}
	if draft.Chapter < 1 {
		draft.Chapter = 1
	}

	totalBefore := autosave.WordCount(draft)
	result, err := r.Engine.WritePage(ctx, draft.Chapter, totalBefore)
	if err != nil {
		return types.PageResult{}, fmt.Errorf("generating page: %w", err)
	}

	summary := summarize(result.Content)
	draft.Pages = append(draft.Pages, types.Page{
		Content: result.Content,
		Chapter: result.Chapter,
		Date:    result.Date,
		Summary: summary,
	})

	savePath, err := r.Saves.SaveDraft(draft, "")
	if err != nil {
		return types.PageResult{}, fmt.Errorf("saving draft: %w", err)
	}

	err = r.Stats.LogSession(types.SessionEntry{
		Date:               result.Date,
		WordCount:          result.WordCount,
		PageSummary:        summary,
		TotalWords:         result.TotalWords,
		Chapter:            result.Chapter,
		InspirationSources: result.InspirationSources,
	})
	if err != nil {
		return types.PageResult{}, fmt.Errorf("logging session: %w", err)
	}

	if err := r.writeDailyOutput(result); err != nil {
		return types.PageResult{}, err
	}

	fmt.Fprintf(w, "wrote %d words (chapter %d, %d total)\n",
		result.WordCount, result.Chapter, result.TotalWords)
	fmt.Fprintf(w, "draft saved: %s\n", savePath)

	return result, nil
}

// writeDailyOutput saves the day's page text and metadata under OutputDir.
// A second session on the same day overwrites the day's files.
func (r *Runner) writeDailyOutput(result types.PageResult) error {
	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	day := result.Date.Format(dayLayout)
	pagePath := filepath.Join(r.OutputDir, day+pageSuffix)
	if err := os.WriteFile(pagePath, []byte(result.Content), 0o644); err != nil {
		return fmt.Errorf("writing page file: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	metaPath := filepath.Join(r.OutputDir, day+metaSuffix)
	if err := os.WriteFile(metaPath, data, 0o644); err != nil {
		return fmt.Errorf("writing metadata file: %w", err)
	}
	return nil
}

// Run executes a session at the configured time every day until the context
// is cancelled. Session failures are reported to w and via OnError; the loop
// keeps running.
func (r *Runner) Run(ctx context.Context, w io.Writer) error {
	at := r.WriteAt
	if at == "" {
		at = "09:00"
	}

	for {
		next, err := nextRun(timeNow(), at)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "next writing session at %s\n", next.Format(time.RFC3339))

		timer := time.NewTimer(next.Sub(timeNow()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if _, err := r.WriteNow(ctx, w); err != nil {
			fmt.Fprintf(w, "session failed: %v\n", err)
		}
	}
}

// nextRun returns the next occurrence of the HH:MM trigger strictly after now.
func nextRun(now time.Time, at string) (time.Time, error) {
	trigger, err := time.Parse("15:04", at)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid schedule time %q (want HH:MM): %w", at, err)
	}

	next := time.Date(now.Year(), now.Month(), now.Day(),
		trigger.Hour(), trigger.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next, nil
}

// OutputHistory reads per-day metadata files for the past `days` days,
// newest first. Days without output are skipped.
func (r *Runner) OutputHistory(days int) ([]types.PageResult, error) {
	var history []types.PageResult
	now := timeNow()

	for i := 0; i < days; i++ {
		day := now.AddDate(0, 0, -i).Format(dayLayout)
		data, err := os.ReadFile(filepath.Join(r.OutputDir, day+metaSuffix))
		if err != nil {
			continue
		}
		var result types.PageResult
		if err := json.Unmarshal(data, &result); err != nil {
			continue
		}
		history = append(history, result)
	}
	return history, nil
}

// summarize produces a short page summary from its opening words.
func summarize(content string) string {
	const maxWords = 12
	words := strings.Fields(content)
	if len(words) <= maxWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
