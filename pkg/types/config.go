package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "novel-writer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SaveConfig holds settings for the auto-save store.
type SaveConfig struct {
	// SaveDir is the directory for regular save files (default "saves").
	SaveDir string `json:"save_dir" yaml:"save_dir"`

	// BackupDir is the directory for backup files (default "backups").
	BackupDir string `json:"backup_dir" yaml:"backup_dir"`

	// MaxVersions is the retention limit for save files (default 10).
	// Older saves are deleted once the count exceeds it.
	MaxVersions int `json:"max_versions" yaml:"max_versions"`

	// MaxBackups is the retention limit for backup files (default 5).
	MaxBackups int `json:"max_backups" yaml:"max_backups"`
}

// StatsConfig holds settings for the writing statistics logger.
type StatsConfig struct {
	// JSONLog is the path to the detailed JSON session log
	// (default "daily_writing_log.json").
	JSONLog string `json:"json_log" yaml:"json_log"`

	// CSVLog is the path to the simplified CSV session log
	// (default "daily_writing_log.csv").
	CSVLog string `json:"csv_log" yaml:"csv_log"`
}

// AIConfig holds shared settings for components that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier.
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// GenerationConfig holds settings for the page generation engine.
type GenerationConfig struct {
	AIConfig `yaml:",inline"`

	HTTPConfig `yaml:",inline"`

	// ProjectDir is the directory containing novel.yaml (default ".").
	ProjectDir string `json:"project_dir" yaml:"project_dir"`
}

// ScheduleConfig holds settings for the daily writing runner.
type ScheduleConfig struct {
	// WriteAt is the daily trigger time in HH:MM, 24-hour (default "09:00").
	WriteAt string `json:"write_at" yaml:"write_at"`

	// OutputDir is the directory for per-day output files (default "output").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// IndexConfig holds settings for the draft search index.
type IndexConfig struct {
	// IndexDir is the directory holding the SQLite index (default "index").
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ArchiveConfig holds settings for zip backup packaging.
type ArchiveConfig struct {
	// ArchiveDir is the directory for backup archives (default "archives").
	ArchiveDir string `json:"archive_dir" yaml:"archive_dir"`

	// MaxArchives is the retention limit for archive files (default 5).
	MaxArchives int `json:"max_archives" yaml:"max_archives"`
}
