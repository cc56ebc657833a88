package position

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilesystemCache_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "CR1000X_Met.dat")
	c := NewFilesystemCache("")

	s, err := c.Load(inputPath)
	if err != nil {
		t.Fatal("expected load of missing sidecar to succeed but got error:", err)
	}
	if s.Offset != 0 || s.HeaderParsed {
		t.Error("expected zero state for missing sidecar, got=", s)
	}

	saved := State{
		Offset:       1234,
		HeaderParsed: true,
		HeaderLines:  4,
		Columns:      []string{"TIMESTAMP", "RECORD"},
	}
	if err := c.Save(inputPath, saved); err != nil {
		t.Fatal("expected save to succeed but got error:", err)
	}

	loaded, err := c.Load(inputPath)
	if err != nil {
		t.Fatal("expected load to succeed but got error:", err)
	}
	if loaded.Offset != 1234 {
		t.Error("wrong offset, expected=1234 got=", loaded.Offset)
	}
	if !loaded.HeaderParsed || loaded.HeaderLines != 4 {
		t.Error("header state not round-tripped, got=", loaded)
	}
	if len(loaded.Columns) != 2 || loaded.Columns[0] != "TIMESTAMP" {
		t.Error("columns not round-tripped, got=", loaded.Columns)
	}
	if loaded.InputFile != "CR1000X_Met.dat" {
		t.Error("wrong input file in sidecar, got=", loaded.InputFile)
	}
}

func TestFilesystemCache_SidecarLocation(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "CR1000X_Met.dat")
	c := NewFilesystemCache("")
	if err := c.Save(inputPath, State{Offset: 1}); err != nil {
		t.Fatal("expected save to succeed but got error:", err)
	}
	sidecar := filepath.Join(dir, ".loggersplit_cache", ".CR1000X_Met_file_position.yaml")
	if _, err := os.Stat(sidecar); err != nil {
		t.Error("expected sidecar at", sidecar, "but got error:", err)
	}
}

func TestFilesystemCache_IgnoresSidecarForDifferentFile(t *testing.T) {
	dir := t.TempDir()
	c := NewFilesystemCache("")
	// Same prefix, different extension. The sidecar belongs to the .dat file
	// and must not be trusted for the .bak file.
	if err := c.Save(filepath.Join(dir, "Met.dat"), State{Offset: 99, HeaderParsed: true}); err != nil {
		t.Fatal("expected save to succeed but got error:", err)
	}
	s, err := c.Load(filepath.Join(dir, "Met.bak"))
	if err != nil {
		t.Fatal("expected load to succeed but got error:", err)
	}
	if s.Offset != 0 || s.HeaderParsed {
		t.Error("expected zero state for a different input file, got=", s)
	}
}

func TestFilesystemCache_Root(t *testing.T) {
	dir := t.TempDir()
	root := t.TempDir()
	inputPath := filepath.Join(dir, "Met.dat")
	c := NewFilesystemCache(root)
	if err := c.Save(inputPath, State{Offset: 7}); err != nil {
		t.Fatal("expected save to succeed but got error:", err)
	}
	sidecar := filepath.Join(root+dir, ".loggersplit_cache", ".Met_file_position.yaml")
	if _, err := os.Stat(sidecar); err != nil {
		t.Error("expected relocated sidecar at", sidecar, "but got error:", err)
	}
	s, err := c.Load(inputPath)
	if err != nil || s.Offset != 7 {
		t.Error("expected relocated sidecar to round-trip, got=", s, "err=", err)
	}
}
