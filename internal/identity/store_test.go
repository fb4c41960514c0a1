package identity

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	repo := "/tmp/some/repo"

	require.NoError(t, store.AddMapping(repo, "Alice@Example.com", "Alice Smith"))
	require.NoError(t, store.AddMapping(repo, "alice-laptop", "Alice Smith"))
	require.NoError(t, store.Exclude(repo, "dependabot[bot]"))

	mappings := store.Load(repo)

	// Emails are stored lower-cased; names verbatim.
	assert.Equal(t, "Alice Smith", mappings.Emails["alice@example.com"])
	assert.Equal(t, "Alice Smith", mappings.Names["alice-laptop"])
	assert.Equal(t, []string{"dependabot[bot]"}, mappings.Excluded)
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewStore(t.TempDir())

	mappings := store.Load("/does/not/matter")

	assert.True(t, mappings.IsEmpty())
	assert.NotNil(t, mappings.Emails)
	assert.NotNil(t, mappings.Names)
}

func TestStoreLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	repo := "/tmp/repo"

	require.NoError(t, os.WriteFile(store.FilePath(repo), []byte("not json"), 0644))

	mappings := store.Load(repo)
	assert.True(t, mappings.IsEmpty())
}

func TestStoreRemoveMapping(t *testing.T) {
	store := NewStore(t.TempDir())
	repo := "/tmp/repo"

	require.NoError(t, store.AddMapping(repo, "alice@example.com", "Alice"))
	require.NoError(t, store.RemoveMapping(repo, "ALICE@example.com"))

	mappings := store.Load(repo)
	assert.Empty(t, mappings.Emails)
}

func TestStoreExcludeInclude(t *testing.T) {
	store := NewStore(t.TempDir())
	repo := "/tmp/repo"

	require.NoError(t, store.Exclude(repo, "Bot"))
	// Duplicate exclusions collapse case-insensitively.
	require.NoError(t, store.Exclude(repo, "bot"))
	assert.Len(t, store.Load(repo).Excluded, 1)

	require.NoError(t, store.Include(repo, "BOT"))
	assert.Empty(t, store.Load(repo).Excluded)
}

func TestStoreFilePathSanitization(t *testing.T) {
	store := NewStore("/home/user/.config/gitpulse")

	path := store.FilePath("/home/user/projects/demo")

	assert.Equal(t, "/home/user/.config/gitpulse", filepath.Dir(path))
	base := filepath.Base(path)
	assert.True(t, strings.HasSuffix(base, "_identities.json"))
	assert.NotContains(t, base, "/")
}

func TestStoreFilePathDistinctPerRepo(t *testing.T) {
	store := NewStore(t.TempDir())

	assert.NotEqual(t, store.FilePath("/repo/a"), store.FilePath("/repo/b"))
}
