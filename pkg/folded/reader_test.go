package folded_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/nilsdeppe/FlameGraphFilter/pkg/folded"
)

func TestOpenPlainFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stacks.folded")
	require.NoError(t, os.WriteFile(path, []byte("main;foo 1\n"), 0o644))

	r, err := folded.Open(path)
	require.NoError(t, err)

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.Equal(t, "main;foo 1\n", string(data))
}

func TestOpenGzipFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stacks.folded.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte("main;foo 1\nmain;bar 2\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	r, err := folded.Open(path)
	require.NoError(t, err)

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.Equal(t, "main;foo 1\nmain;bar 2\n", string(data))
}

func TestOpenCorruptGzip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stacks.folded.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip"), 0o644))

	_, err := folded.Open(path)
	require.Error(t, err)
}

func TestOpenMissingFile(t *testing.T) {
	t.Parallel()

	_, err := folded.Open(filepath.Join(t.TempDir(), "missing.folded"))
	require.Error(t, err)
}

func TestOpenStdin(t *testing.T) {
	t.Parallel()

	r, err := folded.Open(folded.StdioPath)
	require.NoError(t, err)
	require.NoError(t, r.Close())
}

func TestCreateFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.folded")

	w, err := folded.Create(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("bar 3\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "bar 3\n", string(data))
}

func TestCreateStdoutNotClosed(t *testing.T) {
	t.Parallel()

	w, err := folded.Create(folded.StdioPath)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	// Standard output must survive the Close above.
	_, err = os.Stdout.Stat()
	require.NoError(t, err)
}
