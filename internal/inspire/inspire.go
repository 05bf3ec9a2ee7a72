// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inspire supplies the real-world context that flavors daily pages:
// news themes and mood/atmosphere indicators. Live news and weather backends
// are not yet implemented; the static sources stand in for them.
package inspire

import "context"

// NewsContext summarizes the day's news for writing inspiration.
type NewsContext struct {
	// Headlines lists notable headlines.
	Headlines []string `json:"headlines" yaml:"headlines"`

	// Themes lists recurring themes extracted from the headlines.
	Themes []string `json:"themes" yaml:"themes"`

	// Sentiment is the overall sentiment: positive, neutral, negative.
	Sentiment string `json:"sentiment" yaml:"sentiment"`
}

// MoodContext captures mood and atmospheric indicators for the session.
type MoodContext struct {
	// OverallMood is the dominant mood for the session.
	OverallMood string `json:"overall_mood" yaml:"overall_mood"`

	// EnergyLevel is the session's energy: low, moderate, high.
	EnergyLevel string `json:"energy_level" yaml:"energy_level"`

	// EmotionalTone colors the prose: hopeful, melancholy, tense.
	EmotionalTone string `json:"emotional_tone" yaml:"emotional_tone"`

	// AtmosphericElements are concrete sensory details to weave in.
	AtmosphericElements []string `json:"atmospheric_elements" yaml:"atmospheric_elements"`
}

// NewsSource provides daily news context.
type NewsSource interface {
	DailyNews(ctx context.Context) (NewsContext, error)
}

// MoodSource provides mood and atmosphere context.
type MoodSource interface {
	CurrentMood(ctx context.Context) (MoodContext, error)
}

// StaticNews returns a fixed neutral news context. It is the default until a
// live news backend exists.
type StaticNews struct{}

func (StaticNews) DailyNews(context.Context) (NewsContext, error) {
	return NewsContext{Sentiment: "neutral"}, nil
}

// StaticMood returns a fixed contemplative mood. It is the default until a
// live weather backend exists.
type StaticMood struct{}

func (StaticMood) CurrentMood(context.Context) (MoodContext, error) {
	return MoodContext{
		OverallMood:         "contemplative",
		EnergyLevel:         "moderate",
		EmotionalTone:       "hopeful",
		AtmosphericElements: []string{"autumn breeze", "golden light"},
	}, nil
}
