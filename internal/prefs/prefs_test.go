package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if p := Load(""); p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "creahut")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "prefs.toml"), []byte("theme = \" Paper \"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if p := Load(""); p.Theme != "Paper" {
		t.Fatalf("Theme = %q, want Paper", p.Theme)
	}
}

func TestSave_RoundTripsThroughNewDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "prefs.toml")

	if err := Save(path, Prefs{Theme: "Kanagawa"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if p := Load(path); p.Theme != "Kanagawa" {
		t.Fatalf("Theme = %q, want Kanagawa", p.Theme)
	}
}

func TestLoad_BadContentFallsBackToDefault(t *testing.T) {
	cases := map[string]string{
		"empty theme":  "theme = \"\"\n",
		"invalid toml": "not valid toml {{{\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prefs.toml")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			if p := Load(path); p.Theme != defaultTheme {
				t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
			}
		})
	}
}
