package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("crnkq %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	presets := filepath.Join(dir, "presets")

	doc := filepath.Join(dir, "users.toml")
	err := os.WriteFile(doc, []byte(`
[[filter]]
path = "user.number"
operator = "GE"
value = "30000"
`), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("build", func(t *testing.T) {
		got := execute(t, "build", "--decoded",
			"--where", "user.name:LIKE:Emil",
			"--sort", "-user.name",
		)
		expected := `filter={"user": {"LIKE": {"name": "Emil%"}}}&sort=-user.name` + "\n"
		if got != expected {
			t.Errorf("expected '%s', got '%s'", expected, got)
		}
	})

	t.Run("preset save and list", func(t *testing.T) {
		got := execute(t, "--preset-dir", presets, "preset", "save", "users", doc)
		if got != "saved users\n" {
			t.Errorf("unexpected output: %q", got)
		}

		got = execute(t, "--preset-dir", presets, "preset", "list")
		expected := `filter={"user": {"GE": {"number": "30000"}}}`
		if !strings.HasPrefix(got, "users") || !strings.Contains(got, expected) {
			t.Errorf("expected users with '%s', got '%s'", expected, got)
		}

		got = execute(t, "--preset-dir", presets, "preset", "show", "users")
		if !strings.Contains(got, `path = "user.number"`) {
			t.Errorf("expected TOML document, got '%s'", got)
		}
	})

	t.Run("sql", func(t *testing.T) {
		got := execute(t, "sql", "--column", "user.name=full_name",
			`{"OR": [{"user": {"LIKE": {"name": "Em%"}}}, {"EQ": {"id": "1"}}]}`)
		expected := "(full_name LIKE 'Em%' OR id = '1')\n"
		if got != expected {
			t.Errorf("expected '%s', got '%s'", expected, got)
		}
	})
}
