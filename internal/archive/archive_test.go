// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/novel-writer/pkg/types"
)

func testPacker(t *testing.T, maxArchives int) (*Packer, string) {
	t.Helper()
	tmp := t.TempDir()
	packer, err := NewPacker(types.ArchiveConfig{
		ArchiveDir:  filepath.Join(tmp, "archives"),
		MaxArchives: maxArchives,
	})
	if err != nil {
		t.Fatal(err)
	}
	return packer, tmp
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// pinTime sets the archive clock to a fixed instant for one test.
func pinTime(t *testing.T, at time.Time) {
	t.Helper()
	restore := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = restore })
}

func TestCreate(t *testing.T) {
	packer, tmp := testPacker(t, 5)
	pinTime(t, time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC))

	saves := filepath.Join(tmp, "saves")
	output := filepath.Join(tmp, "output")
	writeTree(t, saves, map[string]string{
		"story_draft_20260823_090000.json": `{"title":"Draft"}`,
		"story_draft_20260824_090000.json": `{"title":"Draft"}`,
	})
	writeTree(t, output, map[string]string{
		"2026-08-24_page.txt": "the day's page",
	})

	var buf strings.Builder
	path, err := packer.Create(&buf, saves, output)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if filepath.Base(path) != "novel_backup_20260824_090000.zip" {
		t.Errorf("archive name = %s", filepath.Base(path))
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{
		"saves/story_draft_20260823_090000.json",
		"saves/story_draft_20260824_090000.json",
		"output/2026-08-24_page.txt",
	} {
		if !names[want] {
			t.Errorf("archive missing %s; has %v", want, names)
		}
	}

	if !strings.Contains(buf.String(), "archived saves (2 files)") {
		t.Errorf("progress output missing saves line: %s", buf.String())
	}
}

func TestCreateRoundTripsContent(t *testing.T) {
	packer, tmp := testPacker(t, 5)
	pinTime(t, time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC))

	saves := filepath.Join(tmp, "saves")
	writeTree(t, saves, map[string]string{
		"story_draft_20260824_090000.json": `{"title":"Round Trip"}`,
	})

	path, err := packer.Create(io.Discard, saves)
	if err != nil {
		t.Fatal(err)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()

	rc, err := zr.File[0].Open()
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"title":"Round Trip"}` {
		t.Errorf("content = %s", data)
	}
}

func TestCreateSkipsMissingDirs(t *testing.T) {
	packer, tmp := testPacker(t, 5)
	pinTime(t, time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC))

	saves := filepath.Join(tmp, "saves")
	writeTree(t, saves, map[string]string{"draft.json": "{}"})

	var buf strings.Builder
	_, err := packer.Create(&buf, saves, filepath.Join(tmp, "no-such-dir"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.Contains(buf.String(), "skipping") {
		t.Errorf("missing dir should be reported: %s", buf.String())
	}
}

func TestCreateTrimsOldArchives(t *testing.T) {
	packer, tmp := testPacker(t, 2)

	saves := filepath.Join(tmp, "saves")
	writeTree(t, saves, map[string]string{"draft.json": "{}"})

	base := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		pinTime(t, at)
		path, err := packer.Create(io.Discard, saves)
		if err != nil {
			t.Fatal(err)
		}
		// List and trim order on file mod time, so backdate each archive
		// to its nominal creation instant.
		if err := os.Chtimes(path, at, at); err != nil {
			t.Fatal(err)
		}
	}

	archives, err := packer.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(archives) != 2 {
		t.Fatalf("len(archives) = %d, want 2", len(archives))
	}
	if archives[0].Filename != "novel_backup_20260824_090300.zip" {
		t.Errorf("newest = %s", archives[0].Filename)
	}
	if archives[1].Filename != "novel_backup_20260824_090200.zip" {
		t.Errorf("second = %s", archives[1].Filename)
	}
}

func TestListEmptyDirectory(t *testing.T) {
	packer, _ := testPacker(t, 5)

	archives, err := packer.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(archives) != 0 {
		t.Errorf("len(archives) = %d, want 0", len(archives))
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	packer, tmp := testPacker(t, 5)

	archiveDir := filepath.Join(tmp, "archives")
	if err := os.WriteFile(filepath.Join(archiveDir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	archives, err := packer.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(archives) != 0 {
		t.Errorf("len(archives) = %d, want 0", len(archives))
	}
}
