// Package prefs persists the two display preferences the screen
// operator can toggle: color theme and transcription-panel visibility.
// The core engine never reads these; they belong to the display layer.
package prefs

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Prefs struct {
	Theme          string `toml:"theme"` // "dark" or "light"
	ShowTranscript bool   `toml:"show_transcript"`
}

func Default() Prefs {
	return Prefs{Theme: "dark", ShowTranscript: true}
}

// Path returns the per-user preferences file location.
func Path() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "shifa", "prefs.toml"), nil
}

// Load reads preferences from path. A missing or unreadable file yields
// the defaults; a kiosk display must come up regardless.
func Load(path string) Prefs {
	p := Default()
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return Default()
	}
	if p.Theme != "dark" && p.Theme != "light" {
		p.Theme = "dark"
	}
	return p
}

// Save writes preferences to path, creating parent directories.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(p)
}
