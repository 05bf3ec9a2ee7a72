// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compose generates daily prose pages. The Generator interface is
// the boundary to the language model; the engine assembles the request from
// the novel profile and inspiration context, retries transient failures,
// and returns the page with its statistics.
package compose

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pdiddy/novel-writer/internal/inspire"
	"github.com/pdiddy/novel-writer/pkg/types"
)

// Request carries everything a Generator needs to produce one page.
type Request struct {
	// Profile describes the novel being written.
	Profile types.NovelProfile

	// Chapter is the chapter the page belongs to.
	Chapter int

	// TotalWords is the novel's word count before this page.
	TotalWords int

	// News is the day's news context.
	News inspire.NewsContext

	// Mood is the session's mood context.
	Mood inspire.MoodContext
}

// Generator produces one page of prose for a request. Implementations
// wrap a language model API or a local fallback.
type Generator interface {
	GeneratePage(ctx context.Context, req Request) (string, error)
}

// Engine drives page generation: it gathers inspiration context, calls the
// generator with retry, and packages the result.
type Engine struct {
	Generator  Generator
	Profile    types.NovelProfile
	News       inspire.NewsSource
	Mood       inspire.MoodSource
	MaxRetries int
}

// timeNow is overridable so tests can pin page dates.
var timeNow = time.Now

// WritePage generates one page for the given chapter. totalWords is the
// novel's word count before the page; the result carries the updated total.
func (e *Engine) WritePage(ctx context.Context, chapter, totalWords int) (types.PageResult, error) {
	news := e.News
	if news == nil {
		news = inspire.StaticNews{}
	}
	mood := e.Mood
	if mood == nil {
		mood = inspire.StaticMood{}
	}

	newsCtx, err := news.DailyNews(ctx)
	if err != nil {
		return types.PageResult{}, fmt.Errorf("gathering news context: %w", err)
	}
	moodCtx, err := mood.CurrentMood(ctx)
	if err != nil {
		return types.PageResult{}, fmt.Errorf("gathering mood context: %w", err)
	}

	req := Request{
		Profile:    e.Profile,
		Chapter:    chapter,
		TotalWords: totalWords,
		News:       newsCtx,
		Mood:       moodCtx,
	}

	maxRetries := e.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	content, err := generateWithRetry(ctx, e.Generator, req, maxRetries)
	if err != nil {
		return types.PageResult{}, err
	}

	wordCount := len(strings.Fields(content))
	return types.PageResult{
		Content:            content,
		WordCount:          wordCount,
		Chapter:            chapter,
		Date:               timeNow(),
		InspirationSources: sourceNames(newsCtx, moodCtx),
		Genre:              e.Profile.Genre,
		TotalWords:         totalWords + wordCount,
	}, nil
}

// sourceNames records which context sources contributed to the page.
func sourceNames(news inspire.NewsContext, mood inspire.MoodContext) []string {
	var names []string
	if len(news.Headlines) > 0 || len(news.Themes) > 0 {
		names = append(names, "news")
	}
	if mood.OverallMood != "" {
		names = append(names, "mood")
	}
	return names
}

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// generateWithRetry calls the generator with exponential backoff.
func generateWithRetry(ctx context.Context, gen Generator, req Request, maxRetries int) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		content, err := gen.GeneratePage(ctx, req)
		if err == nil {
			if strings.TrimSpace(content) == "" {
				return "", fmt.Errorf("generator returned empty page")
			}
			return content, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}
