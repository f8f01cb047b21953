package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	got := Load(filepath.Join(t.TempDir(), "nope.toml"))
	want := Default()
	if got != want {
		t.Errorf("Load = %+v, want defaults %+v", got, want)
	}
}

func TestLoadCorruptFileGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("theme = [broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := Load(path); got != Default() {
		t.Errorf("Load = %+v, want defaults", got)
	}
}

func TestLoadUnknownThemeFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("theme = \"neon\"\nshow_transcript = false\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got := Load(path)
	if got.Theme != "dark" {
		t.Errorf("Theme = %q, want dark fallback", got.Theme)
	}
	if got.ShowTranscript {
		t.Error("ShowTranscript = true, want false from file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "prefs.toml")
	want := Prefs{Theme: "light", ShowTranscript: false}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := Load(path); got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}
