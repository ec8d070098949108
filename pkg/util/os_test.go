package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestByteCountSI(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{999, "999 B"},
		{1000, "1.0 kB"},
		{1500000, "1.5 MB"},
		{98_700_000_000, "98.7 GB"},
	}
	for _, tt := range tests {
		if got := ByteCountSI(tt.in); got != tt.want {
			t.Errorf("ByteCountSI(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrepareDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "a", "b")

	if err := PrepareDir(dir); err != nil {
		t.Fatalf("PrepareDir: %v", err)
	}
	if !IsDir(dir) {
		t.Fatalf("%s was not created", dir)
	}
	if err := PrepareDir(dir); err != nil {
		t.Errorf("PrepareDir on existing dir: %v", err)
	}

	file := filepath.Join(root, "file")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := PrepareDir(file); err == nil {
		t.Errorf("PrepareDir on a file should fail")
	}
	if !IsFile(file) || IsDir(file) {
		t.Errorf("IsFile/IsDir disagree for %s", file)
	}
	if IsFile(dir) {
		t.Errorf("IsFile(%s) should be false for a directory", dir)
	}
}

func TestGetDirSize(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "f"), make([]byte, 1500), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	// directory entries add a filesystem-dependent size, only check the unit
	if got := GetDirSize(dir); got[len(got)-2:] != "kB" {
		t.Errorf("GetDirSize() = %q, want a kB value", got)
	}
}
