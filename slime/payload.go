package slime

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/zstd"
)

// readCompressed reads a compressed-size/uncompressed-size prefixed zstd block and returns the
// inflated bytes after checking them against the declared size.
func readCompressed(r io.Reader, o *options) (data []byte, compressedSize int, err error) {
	var sizes struct {
		Compressed   int32
		Uncompressed int32
	}
	if err = binary.Read(r, binary.BigEndian, &sizes); err != nil {
		return nil, 0, noEOF(err)
	}
	if sizes.Compressed < 0 {
		return nil, 0, &LengthError{Field: "compressed size", Length: sizes.Compressed}
	}
	if sizes.Uncompressed < 0 {
		return nil, 0, &LengthError{Field: "uncompressed size", Length: sizes.Uncompressed}
	}
	if int64(sizes.Compressed) > o.maxPayloadSize {
		return nil, 0, &PayloadTooLargeError{Field: "compressed size", Size: int64(sizes.Compressed), Limit: o.maxPayloadSize}
	}
	if int64(sizes.Uncompressed) > o.maxPayloadSize {
		return nil, 0, &PayloadTooLargeError{Field: "uncompressed size", Size: int64(sizes.Uncompressed), Limit: o.maxPayloadSize}
	}

	// The declared sizes are not trusted for allocation; memory follows the bytes actually read.
	var compressed bytes.Buffer
	if _, err = io.CopyN(&compressed, r, int64(sizes.Compressed)); err != nil {
		return nil, 0, noEOF(err)
	}

	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(uint64(o.maxPayloadSize)))
	if err != nil {
		return nil, 0, &DecompressionError{Err: err}
	}
	defer dec.Close()

	data, err = dec.DecodeAll(compressed.Bytes(), nil)
	if err != nil {
		return nil, 0, &DecompressionError{Err: err}
	}
	if len(data) != int(sizes.Uncompressed) {
		return nil, 0, &DecompressSizeMismatchError{Expected: int(sizes.Uncompressed), Actual: len(data)}
	}
	o.logger.Printf("compressed %d bytes, uncompressed %d", sizes.Compressed, len(data))
	return data, int(sizes.Compressed), nil
}

// noEOF turns a clean EOF into io.ErrUnexpectedEOF for reads that must find data.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
