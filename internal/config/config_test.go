package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDir(t *testing.T) {
	dir := Dir()
	if !strings.HasSuffix(dir, ".ossa") {
		t.Errorf("Dir() = %q, want a .ossa suffix", dir)
	}
}

func TestFilePath(t *testing.T) {
	if got, want := FilePath(), filepath.Join(Dir(), "config.yaml"); got != want {
		t.Errorf("FilePath() = %q, want %q", got, want)
	}
}

func TestSet_RoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	Load()
	if err := Set(KeyProfile, "enterprise"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := Get(KeyProfile); got != "enterprise" {
		t.Errorf("Get(%s) = %q after Set, want enterprise", KeyProfile, got)
	}

	// The value must survive a fresh load from disk, not just viper's
	// in-memory override layer.
	viper.Reset()
	Load()
	if got := Get(KeyProfile); got != "enterprise" {
		t.Errorf("Get(%s) = %q after reload, want enterprise", KeyProfile, got)
	}
}

func TestLoad_DefaultProfile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	Load()
	if got := Get(KeyProfile); got != "baseline" {
		t.Errorf("default profile = %q, want baseline", got)
	}
}
