package slime

import (
	"encoding/binary"
	"io"

	"github.com/astei/slimeball/nbt"
)

// reader is a cursor over the decompressed chunk payload. Every length is checked against the
// bytes left before anything is allocated.
type reader struct {
	buf []byte
	off int
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

func (r *reader) take(n int) ([]byte, error) {
	if n > r.remaining() {
		return nil, io.ErrUnexpectedEOF
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) u8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) int32() (int32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

// length reads a non-negative count.
func (r *reader) length(field string) (int, error) {
	n, err := r.int32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, &LengthError{Field: field, Length: n}
	}
	return int(n), nil
}

// copyBytes reads exactly n bytes into a fresh slice.
func (r *reader) copyBytes(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

// sizedBytes reads a length-prefixed byte block without copying it.
func (r *reader) sizedBytes(field string) ([]byte, error) {
	n, err := r.length(field)
	if err != nil {
		return nil, err
	}
	return r.take(n)
}

// sized reads a length-prefixed tagged value.
func (r *reader) sized(field string) (nbt.Tag, error) {
	_, t, err := r.named(field)
	return t, err
}

// named is sized, also returning the root name the value was written with.
func (r *reader) named(field string) (string, nbt.Tag, error) {
	b, err := r.sizedBytes(field)
	if err != nil {
		return "", nil, err
	}
	return parseTag(field, b)
}

func parseTag(field string, b []byte) (string, nbt.Tag, error) {
	name, t, err := nbt.Unmarshal(b)
	if err != nil {
		return "", nil, &TagError{Field: field, Err: err}
	}
	return name, t, nil
}

// readIf runs read only when present is set, returning the zero value otherwise.
func readIf[T any](present bool, read func() (T, error)) (T, error) {
	if !present {
		var zero T
		return zero, nil
	}
	return read()
}
