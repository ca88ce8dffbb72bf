// Package store reads and writes the whole-file JSON documents that back the
// application: users, the option catalog and pizza orders.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"pizza-orders/internal/models"
)

type Name string

const (
	Users   Name = "users"
	Catalog Name = "catalog"
	Orders  Name = "orders"
)

var files = map[Name]string{
	Users:   "users.json",
	Catalog: "init.json",
	Orders:  "pizzaorders.json",
}

var (
	ErrUnknownStore = errors.New("unknown store")
	ErrParse        = errors.New("malformed document")
)

// Accessor loads and overwrites whole documents.
type Accessor interface {
	Load(name Name, v any) error
	Write(name Name, v any) error
}

type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) Path(name Name) (string, error) {
	file, ok := files[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStore, name)
	}
	return filepath.Join(s.dir, file), nil
}

// Load decodes the named document into v. A missing file is returned as an
// error wrapping fs.ErrNotExist; bad JSON wraps ErrParse.
func (s *FileStore) Load(name Name, v any) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	return nil
}

// Write replaces the named document with v. There is no locking here;
// callers that need read-modify-write must serialise themselves.
func (s *FileStore) Write(name Name, v any) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Seed writes the default catalog and empty user and order lists for every
// document that does not exist yet, or for all of them when force is set.
// It returns the stores it wrote.
func (s *FileStore) Seed(force bool) ([]Name, error) {
	defaults := []struct {
		name Name
		doc  any
	}{
		{Users, []models.User{}},
		{Catalog, models.DefaultCatalog()},
		{Orders, []models.PizzaOrder{}},
	}

	var written []Name
	for _, d := range defaults {
		path, err := s.Path(d.name)
		if err != nil {
			return written, err
		}

		if !force {
			_, err := os.Stat(path)
			if err == nil {
				continue
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return written, fmt.Errorf("failed to stat %s: %w", path, err)
			}
		}

		if err := s.Write(d.name, d.doc); err != nil {
			return written, err
		}
		written = append(written, d.name)
	}
	return written, nil
}
