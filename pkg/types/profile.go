// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// NovelProfile describes the novel being written. It is loaded from
// novel.yaml in the project directory.
type NovelProfile struct {
	// Title is the novel's title.
	Title string `json:"title" yaml:"title"`

	// Genre is the novel's genre (e.g. "Romance/Fantasy").
	Genre string `json:"genre" yaml:"genre"`

	// TargetLength is the target word count for the finished novel.
	TargetLength int `json:"target_length" yaml:"target_length"`

	// Voice is the narrative voice: first-person, second-person, third-person.
	Voice string `json:"voice" yaml:"voice"`

	// Protagonist is the main character's name.
	Protagonist string `json:"protagonist" yaml:"protagonist"`

	// WritingStyle holds style parameters (complexity, tone, pacing).
	WritingStyle map[string]string `json:"writing_style,omitempty" yaml:"writing_style,omitempty"`
}

// DefaultProfile returns the profile used when no novel.yaml is present.
func DefaultProfile() NovelProfile {
	return NovelProfile{
		Title:        "Untitled Novel",
		Genre:        "Romance/Fantasy",
		TargetLength: 80000,
		Voice:        "third-person",
		Protagonist:  "Alex",
		WritingStyle: map[string]string{
			"complexity": "moderate",
			"tone":       "contemplative",
			"pacing":     "steady",
		},
	}
}
