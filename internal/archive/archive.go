// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive bundles the writing directories into timestamped zip
// files for off-machine backup. Old archives are trimmed so the archive
// directory never grows without bound.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/novel-writer/pkg/types"
)

const (
	archivePrefix = "novel_backup_"
	stampLayout   = "20060102_150405"
)

// timeNow is overridable so tests can control archive names.
var timeNow = time.Now

// Packer creates and lists zip archives of the writing directories.
type Packer struct {
	archiveDir  string
	maxArchives int
}

// NewPacker creates the archive directory if needed.
func NewPacker(cfg types.ArchiveConfig) (*Packer, error) {
	if err := os.MkdirAll(cfg.ArchiveDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	maxArchives := cfg.MaxArchives
	if maxArchives <= 0 {
		maxArchives = 5
	}

	return &Packer{
		archiveDir:  cfg.ArchiveDir,
		maxArchives: maxArchives,
	}, nil
}

// Create writes a timestamped zip of the given directories and trims old
// archives past the retention limit. Each directory appears in the zip
// under its base name; directories that do not exist are skipped.
// Progress is reported to w.
func (p *Packer) Create(w io.Writer, dirs ...string) (string, error) {
	name := archivePrefix + timeNow().Format(stampLayout) + ".zip"
	path := filepath.Join(p.archiveDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating archive file: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	var total int
	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			fmt.Fprintf(w, "skipping %s: not found\n", dir)
			continue
		}
		n, err := addDir(zw, dir)
		if err != nil {
			zw.Close()
			return "", fmt.Errorf("archiving %s: %w", dir, err)
		}
		fmt.Fprintf(w, "archived %s (%d files)\n", filepath.Base(dir), n)
		total += n
	}

	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("finalizing archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing archive file: %w", err)
	}

	fmt.Fprintf(w, "wrote %s (%d files)\n", path, total)

	if err := p.trimOldest(); err != nil {
		return "", err
	}

	return path, nil
}

// addDir walks dir and writes every regular file into zw under
// base(dir)/relative-path. Returns the number of files written.
func addDir(zw *zip.Writer, dir string) (int, error) {
	base := filepath.Base(dir)
	var count int

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(filepath.Join(base, rel))
		hdr.Method = zip.Deflate

		fw, err := zw.CreateHeader(hdr)
		if err != nil {
			return err
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()

		if _, err := io.Copy(fw, src); err != nil {
			return err
		}
		count++
		return nil
	})

	return count, err
}

// ArchiveInfo describes one archive in the listing.
type ArchiveInfo struct {
	Filename  string    `json:"filename" yaml:"filename"`
	Path      string    `json:"path" yaml:"path"`
	SizeBytes int64     `json:"size_bytes" yaml:"size_bytes"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// List returns the archives newest first.
func (p *Packer) List() ([]ArchiveInfo, error) {
	entries, err := os.ReadDir(p.archiveDir)
	if err != nil {
		return nil, fmt.Errorf("reading archive directory: %w", err)
	}

	var archives []ArchiveInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, archivePrefix) || !strings.HasSuffix(name, ".zip") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		archives = append(archives, ArchiveInfo{
			Filename:  name,
			Path:      filepath.Join(p.archiveDir, name),
			SizeBytes: info.Size(),
			CreatedAt: info.ModTime(),
		})
	}

	sort.Slice(archives, func(i, j int) bool {
		return archives[i].CreatedAt.After(archives[j].CreatedAt)
	})
	return archives, nil
}

// trimOldest deletes the oldest archives past the retention limit.
func (p *Packer) trimOldest() error {
	archives, err := p.List()
	if err != nil {
		return err
	}
	for _, old := range archives[min(len(archives), p.maxArchives):] {
		if err := os.Remove(old.Path); err != nil {
			return fmt.Errorf("removing old archive %s: %w", old.Filename, err)
		}
	}
	return nil
}
