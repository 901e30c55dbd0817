package input

import (
	"io"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4 readers hold large block buffers, so they are reused across files.
var lz4ReaderPool = sync.Pool{
	New: func() any {
		return &lz4Reader{
			Reader: lz4.NewReader(nil),
		}
	},
}

type lz4Reader struct {
	*lz4.Reader
}

func newLZ4Reader(r io.Reader) *lz4Reader {
	zr := lz4ReaderPool.Get().(*lz4Reader)
	zr.Reset(r)
	return zr
}

// Close puts the reader back to the pool. The underlying reader is not closed.
func (z *lz4Reader) Close() error {
	z.Reset(nil)
	lz4ReaderPool.Put(z)
	return nil
}
