// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package autosave persists story drafts as versioned JSON files with a
// parallel backup store. Saves carry embedded metadata (timestamp, version,
// word count); both stores trim their oldest files beyond a retention limit.
package autosave

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/novel-writer/pkg/types"
)

const (
	savePrefix   = "story_draft_"
	backupPrefix = "backup_"

	// stampLayout names save files: story_draft_20260824_090000.json.
	stampLayout = "20060102_150405"

	defaultMaxVersions = 10
	defaultMaxBackups  = 5
)

// timeNow is overridable so tests can pin save timestamps.
var timeNow = time.Now

// Store manages the save and backup directories.
type Store struct {
	saveDir     string
	backupDir   string
	maxVersions int
	maxBackups  int
}

// NewStore creates the save and backup directories if needed and returns a
// Store configured from cfg. Zero retention limits fall back to the defaults
// (10 saves, 5 backups).
func NewStore(cfg types.SaveConfig) (*Store, error) {
	saveDir := cfg.SaveDir
	if saveDir == "" {
		saveDir = "saves"
	}
	backupDir := cfg.BackupDir
	if backupDir == "" {
		backupDir = "backups"
	}

	for _, dir := range []string{saveDir, backupDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	maxVersions := cfg.MaxVersions
	if maxVersions <= 0 {
		maxVersions = defaultMaxVersions
	}
	maxBackups := cfg.MaxBackups
	if maxBackups <= 0 {
		maxBackups = defaultMaxBackups
	}

	return &Store{
		saveDir:     saveDir,
		backupDir:   backupDir,
		maxVersions: maxVersions,
		maxBackups:  maxBackups,
	}, nil
}

// SaveDir returns the directory holding save files.
func (s *Store) SaveDir() string {
	return s.saveDir
}

// SaveDraft writes the draft to the save directory with embedded save
// metadata. When filename is empty a timestamped name is generated. The
// version number is one more than the highest version embedded in any
// existing save. After a successful write, saves beyond the retention limit
// are removed oldest-first.
func (s *Store) SaveDraft(draft *types.StoryDraft, filename string) (string, error) {
	now := timeNow()
	if filename == "" {
		filename = savePrefix + now.Format(stampLayout) + ".json"
	}

	draft.SaveMeta = &types.SaveMetadata{
		Timestamp: now,
		Version:   s.nextVersion(),
		WordCount: WordCount(draft),
		AutoSaved: true,
	}

	path := filepath.Join(s.saveDir, filename)
	if err := writeJSON(path, draft); err != nil {
		return "", err
	}

	if err := trimOldest(s.saveFiles(), s.maxVersions); err != nil {
		return "", fmt.Errorf("trimming old saves: %w", err)
	}

	return path, nil
}

// CreateBackup writes the draft to the backup directory with embedded backup
// metadata, then removes backups beyond the retention limit oldest-first.
func (s *Store) CreateBackup(draft *types.StoryDraft, backupType types.BackupType) (string, error) {
	now := timeNow()
	filename := backupPrefix + now.Format(stampLayout) + ".json"

	draft.BackupMeta = &types.BackupMetadata{
		Timestamp: now,
		WordCount: WordCount(draft),
		Type:      backupType,
	}

	path := filepath.Join(s.backupDir, filename)
	if err := writeJSON(path, draft); err != nil {
		return "", err
	}

	if err := trimOldest(s.backupFiles(), s.maxBackups); err != nil {
		return "", fmt.Errorf("trimming old backups: %w", err)
	}

	return path, nil
}

// LoadLatest reads the most recently modified save file. It returns nil
// without error when no saves exist.
func (s *Store) LoadLatest() (*types.StoryDraft, error) {
	files := s.saveFiles()
	if len(files) == 0 {
		return nil, nil
	}

	latest := files[0]
	latestMod := modTime(latest)
	for _, f := range files[1:] {
		if mt := modTime(f); mt.After(latestMod) {
			latest = f
			latestMod = mt
		}
	}

	data, err := os.ReadFile(latest)
	if err != nil {
		return nil, fmt.Errorf("reading save %s: %w", latest, err)
	}
	var draft types.StoryDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("parsing save %s: %w", latest, err)
	}
	return &draft, nil
}

// History lists every readable save file with its embedded metadata, newest
// first by embedded timestamp. Save files with unreadable or unparseable
// contents are skipped.
func (s *Store) History() ([]types.SaveInfo, error) {
	var history []types.SaveInfo

	for _, path := range s.saveFiles() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var draft types.StoryDraft
		if err := json.Unmarshal(data, &draft); err != nil {
			continue
		}

		info := types.SaveInfo{
			Filename: filepath.Base(path),
			Path:     path,
		}
		if draft.SaveMeta != nil {
			info.Timestamp = draft.SaveMeta.Timestamp
			info.Version = draft.SaveMeta.Version
			info.WordCount = draft.SaveMeta.WordCount
		}
		if st, err := os.Stat(path); err == nil {
			info.SizeBytes = st.Size()
		}
		history = append(history, info)
	}

	sort.Slice(history, func(i, j int) bool {
		return history[i].Timestamp.After(history[j].Timestamp)
	})
	return history, nil
}

// WordCount counts whitespace-separated words across the draft's content and
// pages. The count is an approximation for progress tracking, not a
// typographic word count.
func WordCount(draft *types.StoryDraft) int {
	count := len(strings.Fields(draft.Content))
	for _, p := range draft.Pages {
		count += len(strings.Fields(p.Content))
	}
	return count
}

// nextVersion scans existing saves for the highest embedded version number.
// Unreadable files are ignored so a single corrupt save cannot block new
// saves.
func (s *Store) nextVersion() int {
	highest := 0
	for _, path := range s.saveFiles() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var draft types.StoryDraft
		if err := json.Unmarshal(data, &draft); err != nil {
			continue
		}
		if draft.SaveMeta != nil && draft.SaveMeta.Version > highest {
			highest = draft.SaveMeta.Version
		}
	}
	return highest + 1
}

// saveFiles returns all story_draft_*.json paths in the save directory.
func (s *Store) saveFiles() []string {
	files, _ := filepath.Glob(filepath.Join(s.saveDir, savePrefix+"*.json"))
	return files
}

// backupFiles returns all backup_*.json paths in the backup directory.
func (s *Store) backupFiles() []string {
	files, _ := filepath.Glob(filepath.Join(s.backupDir, backupPrefix+"*.json"))
	return files
}

// writeJSON writes v as indented JSON to path.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// trimOldest deletes files beyond keep, oldest modification time first.
func trimOldest(files []string, keep int) error {
	if len(files) <= keep {
		return nil
	}

	sort.Slice(files, func(i, j int) bool {
		return modTime(files[i]).Before(modTime(files[j]))
	})

	for _, old := range files[:len(files)-keep] {
		if err := os.Remove(old); err != nil {
			return fmt.Errorf("removing %s: %w", old, err)
		}
	}
	return nil
}

func modTime(path string) time.Time {
	st, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return st.ModTime()
}
