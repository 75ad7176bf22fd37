package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeConfig() *ProjectConfig {
	return &ProjectConfig{
		Name:              "ecu_project",
		Description:       "Door controller",
		SourcePath:        "C:/work/models",
		GeneratedCodePath: "C:/work/gen",
		ToolchainPath:     "C:/iar",
		PostLinkDataPath:  "C:/work/calibration.a2l",
		OutputPath:        "C:/work/out",
		StageTimeout:      600,
		CustomParams:      map[string]string{"variant": "left_door"},
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewStoreAt(t.TempDir())
	saved, err := store.Save(completeConfig(), "ecu_project", false)
	require.NoError(t, err)
	assert.True(t, saved)

	loaded, err := store.Load("ecu_project")
	require.NoError(t, err)
	assert.Equal(t, "ecu_project", loaded.Name)
	assert.Equal(t, "C:/iar", loaded.ToolchainPath)
	assert.Equal(t, 600, loaded.StageTimeout)
	assert.Equal(t, "left_door", loaded.CustomParams["variant"])
	assert.NotEmpty(t, loaded.CreatedAt)
	assert.NotEmpty(t, loaded.ModifiedAt)
}

func TestStore_SaveRefusesOverwrite(t *testing.T) {
	t.Parallel()

	store := NewStoreAt(t.TempDir())
	saved, err := store.Save(completeConfig(), "ecu_project", false)
	require.NoError(t, err)
	require.True(t, saved)

	cfg := completeConfig()
	cfg.Description = "changed"
	saved, err = store.Save(cfg, "ecu_project", false)
	require.NoError(t, err)
	assert.False(t, saved, "existing file without overwrite must not be replaced")

	loaded, err := store.Load("ecu_project")
	require.NoError(t, err)
	assert.Equal(t, "Door controller", loaded.Description)

	saved, err = store.Save(cfg, "ecu_project", true)
	require.NoError(t, err)
	assert.True(t, saved)
}

func TestStore_SaveRejectsIncomplete(t *testing.T) {
	t.Parallel()

	store := NewStoreAt(t.TempDir())
	cfg := completeConfig()
	cfg.ToolchainPath = ""

	saved, err := store.Save(cfg, "ecu_project", false)
	assert.False(t, saved)
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Message, "ToolchainPath")
}

func TestStore_SaveSanitizesFilename(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStoreAt(dir)
	saved, err := store.Save(completeConfig(), `door<:>controller`, false)
	require.NoError(t, err)
	require.True(t, saved)

	_, err = os.Stat(filepath.Join(dir, "door___controller.toml"))
	assert.NoError(t, err)
	assert.True(t, store.Exists(`door<:>controller`))
}

func TestStore_LoadMissing(t *testing.T) {
	t.Parallel()

	store := NewStoreAt(t.TempDir())
	_, err := store.Load("ghost")
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Message, `"ghost" does not exist`)
	assert.NotEmpty(t, cerr.Suggestions)
}

func TestStore_LoadRejectsIncompleteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStoreAt(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "partial.toml"), []byte(`name = "partial"`), 0o644))

	_, err := store.Load("partial")
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Message, "incomplete")
}

func TestStore_List(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStoreAt(dir)

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := store.Save(completeConfig(), name, false)
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	names, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	store := NewStoreAt(t.TempDir())
	_, err := store.Save(completeConfig(), "ecu_project", false)
	require.NoError(t, err)

	deleted, err := store.Delete("ecu_project")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, store.Exists("ecu_project"))

	deleted, err = store.Delete("ecu_project")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestStore_UpdatePreservesCreatedAt(t *testing.T) {
	t.Parallel()

	store := NewStoreAt(t.TempDir())
	store.now = func() time.Time { return time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC) }
	_, err := store.Save(completeConfig(), "ecu_project", false)
	require.NoError(t, err)

	store.now = func() time.Time { return time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC) }
	updated := completeConfig()
	updated.StageTimeout = 900
	require.NoError(t, store.Update("ecu_project", updated))

	loaded, err := store.Load("ecu_project")
	require.NoError(t, err)
	assert.Equal(t, 900, loaded.StageTimeout)
	assert.Equal(t, "2026-01-10T08:00:00Z", loaded.CreatedAt)
	assert.Equal(t, "2026-03-02T15:30:00Z", loaded.ModifiedAt)
}
