package store

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"pizza-orders/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	s := NewFileStore(t.TempDir())

	var orders []models.PizzaOrder
	err := s.Load(Orders, &orders)

	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pizzaorders.json"), []byte("[{"), 0o644))

	var orders []models.PizzaOrder
	err := NewFileStore(dir).Load(Orders, &orders)

	assert.ErrorIs(t, err, ErrParse)
}

func TestUnknownStore(t *testing.T) {
	s := NewFileStore(t.TempDir())

	assert.ErrorIs(t, s.Write(Name("payments"), []int{}), ErrUnknownStore)
}

func TestWriteOverwritesWholeDocument(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nested"))

	first := []models.PizzaOrder{{ID: 1, Type: "Hawaiian"}, {ID: 2, Type: "Pepperoni"}}
	require.NoError(t, s.Write(Orders, first))
	require.NoError(t, s.Write(Orders, first[:1]))

	var got []models.PizzaOrder
	require.NoError(t, s.Load(Orders, &got))
	assert.Equal(t, first[:1], got)

	path, err := s.Path(Orders)
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n        \"id\": 1")
}

func TestSeedKeepsExistingDocuments(t *testing.T) {
	s := NewFileStore(t.TempDir())
	users := []models.User{{Email: "a@b.com", Password: "secret", Role: models.RoleStaff}}
	require.NoError(t, s.Write(Users, users))

	written, err := s.Seed(false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []Name{Catalog, Orders}, written)

	var gotUsers []models.User
	require.NoError(t, s.Load(Users, &gotUsers))
	assert.Equal(t, users, gotUsers)

	var catalog models.Catalog
	require.NoError(t, s.Load(Catalog, &catalog))
	assert.Equal(t, models.DefaultCatalog(), catalog)

	written, err = s.Seed(true)
	require.NoError(t, err)
	assert.Len(t, written, 3)
	require.NoError(t, s.Load(Users, &gotUsers))
	assert.Empty(t, gotUsers)
}

func TestPathJoinsDir(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	path, err := s.Path(Users)

	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())
	assert.Equal(t, filepath.Join(s.Dir(), "users.json"), path)
}
