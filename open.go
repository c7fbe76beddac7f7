package main

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

var gzipMagic = []byte{0x1f, 0x8b}

// worldFile is an opened world, possibly behind a gzip stream.
type worldFile struct {
	io.Reader
	closers []io.Closer
}

func (f *worldFile) Close() error {
	var errs []error
	for i := len(f.closers) - 1; i >= 0; i-- {
		if err := f.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// openWorld opens path for decoding. Files that were gzipped as a whole (.slime.gz) are unwrapped.
func openWorld(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return wrapWorld(file, file)
}

func wrapWorld(source io.Reader, closer io.Closer) (io.ReadCloser, error) {
	buffered := bufio.NewReader(source)
	f := &worldFile{Reader: buffered}
	if closer != nil {
		f.closers = append(f.closers, closer)
	}

	head, err := buffered.Peek(len(gzipMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		_ = f.Close()
		return nil, err
	}
	if len(head) == len(gzipMagic) && head[0] == gzipMagic[0] && head[1] == gzipMagic[1] {
		gz, err := gzip.NewReader(buffered)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		f.Reader = gz
		f.closers = append(f.closers, gz)
	}
	return f, nil
}
