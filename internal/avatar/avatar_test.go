package avatar

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapLookup(t *testing.T) {
	var nilMap Map
	_, ok := nilMap.Lookup("alice")
	assert.False(t, ok)

	m := Map{"alice": "file:///a.png", "bob": ""}
	ref, ok := m.Lookup("alice")
	assert.True(t, ok)
	assert.Equal(t, "file:///a.png", ref)
	_, ok = m.Lookup("bob")
	assert.False(t, ok, "empty refs count as missing")
}

func TestPreloadFromDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alice.png"), []byte("png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bob@example.com.jpg"), []byte("jpg"), 0o644))

	p := NewPreloader(WithDir(dir))
	added, err := p.Preload(context.Background(), []Author{
		{Name: "alice"},
		{Name: "bob", Email: "bob@example.com"},
		{Name: "carol", Email: "carol@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	images := p.AuthorImageMap()
	assert.True(t, strings.HasPrefix(images["alice"], "file://"))
	assert.True(t, strings.HasSuffix(images["alice"], "/alice.png"))
	assert.True(t, strings.HasSuffix(images["bob"], "/bob@example.com.jpg"))
	_, ok := images.Lookup("carol")
	assert.False(t, ok, "no image and no gravatar leaves the author out")
}

func TestPreloadGravatarFallback(t *testing.T) {
	p := NewPreloader(WithGravatar(true))
	added, err := p.Preload(context.Background(), []Author{
		{Name: "alice", Email: " Alice@Example.com "},
		{Name: "noemail"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, GravatarURL("alice@example.com"), p.AuthorImageMap()["alice"])
}

func TestPreloadSkipsKnownAuthors(t *testing.T) {
	p := NewPreloader(WithGravatar(true))
	authors := []Author{{Name: "alice", Email: "alice@example.com"}}

	added, err := p.Preload(context.Background(), authors)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	added, err = p.Preload(context.Background(), authors)
	require.NoError(t, err)
	assert.Zero(t, added)
}

func TestPreloadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPreloader(WithGravatar(true))
	_, err := p.Preload(ctx, []Author{{Name: "alice", Email: "alice@example.com"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAuthorImageMapIsSnapshot(t *testing.T) {
	p := NewPreloader(WithGravatar(true))
	snapshot := p.AuthorImageMap()
	_, err := p.Preload(context.Background(), []Author{{Name: "alice", Email: "alice@example.com"}})
	require.NoError(t, err)
	assert.Empty(t, snapshot)
	assert.Len(t, p.AuthorImageMap(), 1)
}

func TestGravatarURL(t *testing.T) {
	url := GravatarURL("Someone@Example.com")
	assert.Equal(t, GravatarURL("someone@example.com"), url)
	assert.True(t, strings.HasPrefix(url, "https://www.gravatar.com/avatar/"))
	assert.True(t, strings.HasSuffix(url, "?d=identicon"))
}
