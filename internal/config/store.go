package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/mbdkits/mbdflow/internal/paths"
)

// Store persists named project configurations as TOML files in a single
// directory, one file per project.
type Store struct {
	Dir string

	validate *validator.Validate
	now      func() time.Time
}

// NewStore returns a store rooted at the per-user configuration directory
// (e.g. ~/.config/mbdflow/projects).
func NewStore() (*Store, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolving config directory: %w", err)
	}
	return NewStoreAt(filepath.Join(base, "mbdflow", "projects")), nil
}

// NewStoreAt returns a store rooted at the given directory.
func NewStoreAt(dir string) *Store {
	return &Store{
		Dir:      dir,
		validate: validator.New(),
		now:      time.Now,
	}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.Dir, paths.SanitizeFilename(name)+".toml")
}

// File returns the path of the TOML file backing the named configuration,
// whether or not it exists yet.
func (s *Store) File(name string) string {
	return s.path(name)
}

// Exists reports whether a configuration with the given name is saved.
func (s *Store) Exists(name string) bool {
	if name == "" {
		return false
	}
	_, err := os.Stat(s.path(name))
	return err == nil
}

// Save validates and writes a project configuration. When overwrite is
// false and the file already exists, Save returns (false, nil) so the
// caller can ask for confirmation.
func (s *Store) Save(cfg *ProjectConfig, name string, overwrite bool) (bool, error) {
	if err := s.validate.Struct(cfg); err != nil {
		return false, ValidationFailedError(err.Error())
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return false, SaveError(err.Error())
	}

	target := s.path(name)
	if !overwrite {
		if _, err := os.Stat(target); err == nil {
			return false, nil
		}
	}

	now := s.now().Format(time.RFC3339)
	cfg.ModifiedAt = now
	if cfg.CreatedAt == "" {
		cfg.CreatedAt = now
	}

	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return false, SaveError(err.Error())
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return false, SaveError(err.Error())
	}
	return true, nil
}

// Load reads a saved project configuration and verifies its required
// fields are present.
func (s *Store) Load(name string) (*ProjectConfig, error) {
	target := s.path(name)
	data, err := os.ReadFile(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, LoadError(
				fmt.Sprintf("configuration %q does not exist", name),
				fmt.Sprintf("check that the project name %q is correct", name),
				"list saved projects with: mbdflow projects list",
			)
		}
		return nil, LoadError(err.Error())
	}

	var cfg ProjectConfig
	if err := gotoml.Unmarshal(data, &cfg); err != nil {
		return nil, LoadError(
			fmt.Sprintf("configuration %q is not valid TOML: %v", name, err),
			"inspect the file with a text editor",
			"recreate the project configuration",
		)
	}

	if err := s.validate.Struct(&cfg); err != nil {
		return nil, LoadError(
			fmt.Sprintf("configuration %q is incomplete: %v", name, err),
			"recreate the project configuration",
			"edit the file and fill in the missing fields",
		)
	}
	return &cfg, nil
}

// List returns the names of all saved project configurations, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing configurations: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".toml") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a saved configuration. Returns false if it did not exist.
func (s *Store) Delete(name string) (bool, error) {
	target := s.path(name)
	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("deleting configuration %q: %w", name, err)
	}
	if err := os.Remove(target); err != nil {
		return false, fmt.Errorf("deleting configuration %q: %w", name, err)
	}
	return true, nil
}

// Update overwrites an existing configuration while preserving its
// creation timestamp.
func (s *Store) Update(name string, cfg *ProjectConfig) error {
	original, err := s.Load(name)
	if err != nil {
		return err
	}
	cfg.CreatedAt = original.CreatedAt
	if _, err := s.Save(cfg, name, true); err != nil {
		return err
	}
	return nil
}
