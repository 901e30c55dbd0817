package input

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Codec is a compression format of an input file.
type Codec string

const (
	Plain Codec = ""
	Gzip  Codec = "gzip"
	Bzip2 Codec = "bzip2"
	LZ4   Codec = "lz4"
)

// CodecOf detects the codec from the file extension.
func CodecOf(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return Gzip
	case ".bz2":
		return Bzip2
	case ".lz4":
		return LZ4
	default:
		return Plain
	}
}

// Open opens the file on the path, decompressing it transparently by its extension.
// Closing the returned reader closes the file.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := decompress(CodecOf(path), bufio.NewReaderSize(f, 64*1024))
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "decompress %s", path)
	}
	return &fileReader{Reader: r, file: f}, nil
}

func decompress(c Codec, r io.Reader) (io.Reader, error) {
	switch c {
	case Gzip:
		return gzip.NewReader(r)
	case Bzip2:
		return bzip2.NewReader(r), nil
	case LZ4:
		return newLZ4Reader(r), nil
	default:
		return r, nil
	}
}

type fileReader struct {
	io.Reader
	file *os.File
}

func (f *fileReader) Close() error {
	if c, ok := f.Reader.(io.Closer); ok {
		if err := c.Close(); err != nil {
			_ = f.file.Close()
			return err
		}
	}
	return f.file.Close()
}
