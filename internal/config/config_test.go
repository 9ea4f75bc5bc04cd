package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("KEYPAD_CONFIG", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "en", cfg.UI.Locale)
	require.Equal(t, 23, cfg.UI.DisplayWidth)
	require.Equal(t, "mocha", cfg.UI.Theme)
	require.True(t, cfg.UI.Mouse)
	require.Empty(t, cfg.Log.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Empty(t, cfg.Keys)
}

func TestLoadFileAndEnv(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "keypad.toml")
	data := `
[ui]
locale = "de"
display_width = 2
mouse = false

[keys]
clear = ["k", "esc"]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	t.Setenv("KEYPAD_CONFIG", path)
	t.Setenv("KEYPAD_UI_THEME", "plain")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "de", cfg.UI.Locale)
	require.Equal(t, 4, cfg.UI.DisplayWidth, "display width is clamped")
	require.False(t, cfg.UI.Mouse)
	require.Equal(t, "plain", cfg.UI.Theme)
	require.Equal(t, []string{"k", "esc"}, cfg.Keys["clear"])
}

func TestSaveThenLoad(t *testing.T) {
	home := isolate(t)

	cfg := Config{
		UI:   UIConfig{Locale: "fr", DisplayWidth: 30, Theme: "plain", Mouse: true},
		Keys: map[string][]string{"sign": {"s"}},
		Log:  LogConfig{Path: filepath.Join(home, "keypad.log"), Level: "debug"},
	}
	require.NoError(t, Save(cfg))
	require.Equal(t, filepath.Join(home, ".config", "keypad", "config.toml"), Path())
	require.FileExists(t, Path())

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, cfg.UI, got.UI)
	require.Equal(t, cfg.Log, got.Log)
	require.Equal(t, []string{"s"}, got.Keys["sign"])
}

func TestLoadWithFlags(t *testing.T) {
	isolate(t)
	t.Setenv("KEYPAD_UI_LOCALE", "fr")

	fs := pflag.NewFlagSet("keypad", pflag.ContinueOnError)
	fs.String("locale", "", "")
	fs.String("theme", "", "")
	fs.Bool("mouse", true, "")
	require.NoError(t, fs.Parse([]string{"--theme", "plain", "--mouse=false"}))

	cfg, err := LoadWithFlags(fs)
	require.NoError(t, err)
	require.Equal(t, "plain", cfg.UI.Theme)
	require.False(t, cfg.UI.Mouse)
	require.Equal(t, "fr", cfg.UI.Locale, "unset flags leave env values alone")
}
