package slime

import (
	"errors"
	"fmt"
)

var (
	ErrNegativeLength   = errors.New("slime: negative length")
	ErrEmptyPalette     = errors.New("slime: empty palette")
	ErrMissingIndexData = errors.New("slime: palette has several entries but no index data")
	ErrMissingField     = errors.New("slime: missing field")
	ErrWrongTagType     = errors.New("slime: unexpected tag type")
)

// MagicMismatchError means the input does not start with the Slime magic.
type MagicMismatchError struct {
	Got uint16
}

func (e *MagicMismatchError) Error() string {
	return fmt.Sprintf("slime: magic bytes are not present (expected %#X, got %#X)", Magic, e.Got)
}

// UnsupportedVersionError means the format version byte is not the one this decoder reads.
type UnsupportedVersionError struct {
	Got uint8
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("slime: world uses format version %d, only version %d is supported", e.Got, Version)
}

// DecompressSizeMismatchError means the payload did not inflate to its declared size.
type DecompressSizeMismatchError struct {
	Expected int
	Actual   int
}

func (e *DecompressSizeMismatchError) Error() string {
	return fmt.Sprintf("slime: invalid decompression result: expected size %d, got %d", e.Expected, e.Actual)
}

// DecompressionError wraps a failure of the zstd codec.
type DecompressionError struct {
	Err error
}

func (e *DecompressionError) Error() string {
	return "slime: decompression failed: " + e.Err.Error()
}

func (e *DecompressionError) Unwrap() error { return e.Err }

// PayloadTooLargeError means a declared size is above the configured limit.
type PayloadTooLargeError struct {
	Field string
	Size  int64
	Limit int64
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("slime: %s of %d bytes exceeds limit of %d", e.Field, e.Size, e.Limit)
}

// LengthError reports a negative length prefix.
type LengthError struct {
	Field  string
	Length int32
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("slime: %s: invalid length %d", e.Field, e.Length)
}

func (e *LengthError) Unwrap() error { return ErrNegativeLength }

// TagError wraps a failure while reading or interpreting a framed tagged value.
type TagError struct {
	Field string
	Err   error
}

func (e *TagError) Error() string {
	return fmt.Sprintf("slime: reading %s: %v", e.Field, e.Err)
}

func (e *TagError) Unwrap() error { return e.Err }

// IndexOutOfRangeError is returned for a lookup outside a container's logical capacity.
type IndexOutOfRangeError struct {
	Index int
	Size  int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("slime: index %d outside range for paletted container of size %d", e.Index, e.Size)
}

// PaletteIndexError means packed index data refers past the end of the palette.
type PaletteIndexError struct {
	Index      int
	Raw        uint64
	PaletteLen int
}

func (e *PaletteIndexError) Error() string {
	return fmt.Sprintf("slime: position %d refers to palette entry %d, palette has %d entries", e.Index, e.Raw, e.PaletteLen)
}

// IndexDataLengthError means the packed index array is too short to hold every position.
type IndexDataLengthError struct {
	Bits     int
	Words    int
	Required int
}

func (e *IndexDataLengthError) Error() string {
	return fmt.Sprintf("slime: %d-bit index data has %d words, need %d", e.Bits, e.Words, e.Required)
}
