package folded

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// StdioPath selects standard input or standard output in place of a file.
const StdioPath = "-"

// Open opens a folded stack file for reading. The path "-" reads from
// standard input, and files ending in ".gz" are decompressed on the fly.
func Open(path string) (io.ReadCloser, error) {
	if path == StdioPath {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening input file")
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "reading gzip header")
	}

	return &gzipReadCloser{zr: zr, file: f}, nil
}

// gzipReadCloser closes the decompressor and the underlying file together.
type gzipReadCloser struct {
	zr   *gzip.Reader
	file *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) {
	return g.zr.Read(p)
}

func (g *gzipReadCloser) Close() error {
	zerr := g.zr.Close()
	ferr := g.file.Close()
	if zerr != nil {
		return zerr
	}

	return ferr
}

// Create opens the destination for filtered stacks. The path "-" writes
// to standard output, which stays open after Close.
func Create(path string) (io.WriteCloser, error) {
	if path == StdioPath {
		return nopWriteCloser{os.Stdout}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "creating output file")
	}

	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
