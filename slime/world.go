// Package slime decodes worlds stored in the Slime format, version 13.
//
// A file is a short uncompressed header followed by one zstd-compressed block holding every chunk.
// Decode reads the whole file in one pass and keeps the result in memory; it never writes.
package slime

import (
	"io"
)

// World is a fully decoded Slime file.
type World struct {
	Version      uint8
	WorldVersion int32
	Flags        WorldFlags
	Chunks       []Chunk

	CompressedSize   int
	UncompressedSize int
}

// Decode reads a world from r. The first structural problem aborts the decode; no partial world
// is returned.
func Decode(r io.Reader, opts ...Option) (*World, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	o.logger.Printf("format version %d, world version %d, flags %08b (%d extensions)",
		h.Version, h.WorldVersion, uint8(h.Flags), h.Flags.OtherCount())

	payload, compressedSize, err := readCompressed(r, &o)
	if err != nil {
		return nil, err
	}

	chunks, err := readChunks(&reader{buf: payload}, h.Flags, &o)
	if err != nil {
		return nil, err
	}

	return &World{
		Version:          h.Version,
		WorldVersion:     h.WorldVersion,
		Flags:            h.Flags,
		Chunks:           chunks,
		CompressedSize:   compressedSize,
		UncompressedSize: len(payload),
	}, nil
}

// Chunk returns the chunk at chunk coordinates x, z.
func (w *World) Chunk(x, z int32) (*Chunk, bool) {
	for i := range w.Chunks {
		if w.Chunks[i].X == x && w.Chunks[i].Z == z {
			return &w.Chunks[i], true
		}
	}
	return nil, false
}
