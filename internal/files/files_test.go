package files

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanlewis/mdgrid/internal/common"
)

// tree creates files under a fresh temp dir and returns its path.
func tree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func TestIsMarkdown(t *testing.T) {
	assert.True(t, IsMarkdown("README.md"))
	assert.True(t, IsMarkdown("docs/guide.markdown"))
	assert.True(t, IsMarkdown("NOTES.MD"))
	assert.False(t, IsMarkdown("main.go"))
	assert.False(t, IsMarkdown("md"))
	assert.False(t, IsMarkdown("README"))
}

func TestDiscoverWalk(t *testing.T) {
	root := tree(t, map[string]string{
		"README.md":                  "",
		"docs/guide.markdown":        "",
		"docs/img/logo.png":          "",
		"docs/generated/api.md":      "",
		".github/ISSUE_TEMPLATE.md":  "",
		"node_modules/pkg/README.md": "",
		"vendor/mod/README.md":       "",
		"testdata/inputs/t.md":       "",
		"CHANGELOG.md":               "",
		"notes.txt":                  "",
	})

	got, err := Discover([]string{root}, []string{"CHANGELOG.md", "docs/generated"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"README.md", "docs/guide.markdown"}, rel(t, root, got))
}

func TestDiscoverExcludeByBaseName(t *testing.T) {
	root := tree(t, map[string]string{
		"a/DRAFT-one.md": "",
		"b/DRAFT-two.md": "",
		"b/final.md":     "",
	})

	got, err := Discover([]string{root}, []string{"DRAFT-*"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b/final.md"}, rel(t, root, got))
}

func TestDiscoverFilesAndDedup(t *testing.T) {
	root := tree(t, map[string]string{
		"a.md":     "",
		"sub/b.md": "",
	})
	a := filepath.Join(root, "a.md")

	got, err := Discover([]string{a, root, a}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md", "sub/b.md"}, rel(t, root, got))
}

func TestDiscoverErrors(t *testing.T) {
	root := tree(t, map[string]string{"main.go": ""})

	_, err := Discover([]string{filepath.Join(root, "main.go")}, nil)
	assert.ErrorIs(t, err, common.ErrNotMarkdown)

	_, err = Discover([]string{filepath.Join(root, "missing.md")}, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteAtomic(t *testing.T) {
	root := tree(t, map[string]string{"doc.md": "old"})
	path := filepath.Join(root, "doc.md")
	require.NoError(t, os.Chmod(path, 0o600))

	require.NoError(t, WriteAtomic(path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestWriteAtomicMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "doc.md")
	assert.Error(t, WriteAtomic(path, []byte("x")))
}

func upper(_ string, content string) (string, bool) {
	out := strings.ToUpper(content)
	return out, out != content
}

func TestProcess(t *testing.T) {
	root := tree(t, map[string]string{
		"a.md": "lower",
		"b.md": "UPPER",
		"c.md": "mixed Case",
	})
	paths := []string{
		filepath.Join(root, "a.md"),
		filepath.Join(root, "b.md"),
		filepath.Join(root, "missing.md"),
		filepath.Join(root, "c.md"),
	}

	outcomes := Process(context.Background(), paths, Options{Jobs: 2, Convert: upper})
	require.Len(t, outcomes, 4)

	for i, o := range outcomes {
		assert.Equal(t, paths[i], o.Path, "outcomes must keep input order")
	}
	assert.True(t, outcomes[0].Changed)
	assert.False(t, outcomes[1].Changed)
	assert.Error(t, outcomes[2].Err)
	assert.True(t, outcomes[3].Changed)

	for name, want := range map[string]string{"a.md": "LOWER", "b.md": "UPPER", "c.md": "MIXED CASE"} {
		data, err := os.ReadFile(filepath.Join(root, name))
		require.NoError(t, err)
		assert.Equal(t, want, string(data), name)
	}
}

func TestProcessCheckDoesNotWrite(t *testing.T) {
	root := tree(t, map[string]string{"a.md": "lower"})
	path := filepath.Join(root, "a.md")

	outcomes := Process(context.Background(), []string{path}, Options{Check: true, Convert: upper})
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Changed)
	require.NoError(t, outcomes[0].Err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "lower", string(data))
}

func TestProcessUnchangedNotRewritten(t *testing.T) {
	root := tree(t, map[string]string{"a.md": "SAME"})
	path := filepath.Join(root, "a.md")
	require.NoError(t, os.Chmod(path, 0o444))
	t.Cleanup(func() { os.Chmod(path, 0o644) })

	outcomes := Process(context.Background(), []string{path}, Options{Convert: upper})
	require.Len(t, outcomes, 1)
	assert.NoError(t, outcomes[0].Err)
	assert.False(t, outcomes[0].Changed)
}

func TestProcessRespectsJobLimit(t *testing.T) {
	files := make(map[string]string)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files[name+".md"] = name
	}
	root := tree(t, files)

	var paths []string
	for name := range files {
		paths = append(paths, filepath.Join(root, name))
	}

	var running, peak atomic.Int32
	convert := func(_ string, content string) (string, bool) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		runtime.Gosched()
		running.Add(-1)
		return content, false
	}

	outcomes := Process(context.Background(), paths, Options{Jobs: 3, Convert: convert})
	assert.Len(t, outcomes, len(paths))
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestProcessCancelled(t *testing.T) {
	root := tree(t, map[string]string{"a.md": "lower"})
	path := filepath.Join(root, "a.md")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := Process(ctx, []string{path}, Options{Convert: upper})
	require.Len(t, outcomes, 1)
	assert.ErrorIs(t, outcomes[0].Err, context.Canceled)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "lower", string(data))
}
