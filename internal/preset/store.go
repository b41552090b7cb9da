// Package preset stores named filter documents on disk.
// Each preset is one file holding the compressed binary form of a
// document (see package serialize).
package preset

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/hugr-lab/crnk-filtering/internal/document"
	"github.com/hugr-lab/crnk-filtering/internal/serialize"
)

// Ext is the file extension of stored presets.
const Ext = ".crnk"

// DirEnv overrides the default preset directory.
const DirEnv = "CRNKQ_PRESET_DIR"

var (
	// ErrNotFound indicates a preset that does not exist.
	ErrNotFound = errors.New("preset not found")

	// ErrInvalidName indicates a name that cannot be used as a preset name.
	ErrInvalidName = errors.New("invalid preset name")
)

var validName = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9_.-]*$`)

// Store is a directory of presets.
type Store struct {
	dir    string
	codec  *serialize.Codec
	logger *slog.Logger
}

// DefaultDir returns $CRNKQ_PRESET_DIR or ~/.local/state/crnkq/presets.
func DefaultDir() (string, error) {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "crnkq", "presets"), nil
}

// Open opens the store at dir, creating the directory if needed.
// If logger is nil, slog.Default() is used.
// Caller must call Close() when done.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create preset directory: %w", err)
	}

	codec, err := serialize.NewCodec()
	if err != nil {
		return nil, err
	}

	return &Store{dir: dir, codec: codec, logger: logger}, nil
}

// Dir returns the store directory.
func (s *Store) Dir() string { return s.dir }

// Save writes doc under name, replacing an existing preset.
func (s *Store) Save(name string, doc *document.Document) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	data, err := s.codec.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode preset %q: %w", name, err)
	}

	// Write through a temp file and rename.
	tmp, err := os.CreateTemp(s.dir, "."+name+"-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	s.logger.Debug("Preset saved", "name", name, "bytes", len(data))
	return nil
}

// Load reads the preset called name.
func (s *Store) Load(name string) (*document.Document, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}

	doc, err := s.codec.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode preset %q: %w", name, err)
	}
	return doc, nil
}

// List returns the preset names in lexical order.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), Ext)
		if validName.MatchString(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the preset called name.
func (s *Store) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return err
	}
	s.logger.Debug("Preset deleted", "name", name)
	return nil
}

// Close releases the store's codec.
func (s *Store) Close() error {
	return s.codec.Close()
}

func (s *Store) path(name string) (string, error) {
	if !validName.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name+Ext), nil
}
