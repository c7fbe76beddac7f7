package slime

import (
	"fmt"
	"math/bits"

	mcnbt "github.com/Tnze/go-mc/nbt"

	"github.com/astei/slimeball/nbt"
)

const (
	// SectionBlocks is the number of block positions in a 16x16x16 section.
	SectionBlocks = 16 * 16 * 16
	// SectionBiomes is the number of biome cells in a section (4x4x4).
	SectionBiomes = 4 * 4 * 4
)

// BlockState is a block name with its state properties.
type BlockState struct {
	Name       string            `nbt:"Name"`
	Properties map[string]string `nbt:"Properties"`
}

// PalettedContainer maps size logical positions onto a palette through bit-packed indices.
type PalettedContainer[T any] struct {
	palette []T
	data    []uint64
	size    int
	bits    int
}

// IndexBits returns the width of one packed index for a palette of paletteLen entries: the
// fewest bits that hold paletteLen-1, raised to minBits. A single-entry palette has no index data.
func IndexBits(paletteLen, minBits int) int {
	if paletteLen <= 1 {
		return 0
	}
	n := bits.Len(uint(paletteLen - 1))
	if n < minBits {
		n = minBits
	}
	return n
}

// NewPalettedContainer checks that palette and data can describe size positions. It does not
// look at the packed indices themselves; see Validate.
func NewPalettedContainer[T any](size int, palette []T, data []uint64, minBits int) (*PalettedContainer[T], error) {
	if len(palette) == 0 {
		return nil, ErrEmptyPalette
	}
	c := &PalettedContainer[T]{
		palette: palette,
		data:    data,
		size:    size,
		bits:    IndexBits(len(palette), minBits),
	}
	if c.bits == 0 {
		return c, nil
	}
	if c.bits > 64 {
		return nil, fmt.Errorf("slime: %d-bit palette indices do not fit a word", c.bits)
	}
	if len(data) == 0 {
		return nil, ErrMissingIndexData
	}
	perWord := 64 / c.bits
	required := (size + perWord - 1) / perWord
	if len(data) < required {
		return nil, &IndexDataLengthError{Bits: c.bits, Words: len(data), Required: required}
	}
	return c, nil
}

func (c *PalettedContainer[T]) Size() int      { return c.size }
func (c *PalettedContainer[T]) Bits() int      { return c.bits }
func (c *PalettedContainer[T]) Palette() []T   { return c.palette }
func (c *PalettedContainer[T]) Data() []uint64 { return c.data }

// raw extracts the packed palette index for position i. Groups never span two words; the first
// group of a word is the most significant populated one and the top 64%bits bits are padding.
func (c *PalettedContainer[T]) raw(i int) uint64 {
	perWord := 64 / c.bits
	word := c.data[i/perWord]
	shift := (perWord - 1 - i%perWord) * c.bits
	mask := uint64(1)<<c.bits - 1
	return (word >> shift) & mask
}

// Get returns the palette entry at logical position i.
func (c *PalettedContainer[T]) Get(i int) (T, error) {
	var zero T
	if i < 0 || i >= c.size {
		return zero, &IndexOutOfRangeError{Index: i, Size: c.size}
	}
	if c.bits == 0 {
		return c.palette[0], nil
	}
	idx := c.raw(i)
	if idx >= uint64(len(c.palette)) {
		return zero, &PaletteIndexError{Index: i, Raw: idx, PaletteLen: len(c.palette)}
	}
	return c.palette[idx], nil
}

// Validate checks every position against the palette and reports the first bad one.
func (c *PalettedContainer[T]) Validate() error {
	if c.bits == 0 {
		return nil
	}
	for i := 0; i < c.size; i++ {
		if idx := c.raw(i); idx >= uint64(len(c.palette)) {
			return &PaletteIndexError{Index: i, Raw: idx, PaletteLen: len(c.palette)}
		}
	}
	return nil
}

type blockStatesNBT struct {
	Palette []BlockState `nbt:"palette"`
	Data    []uint64     `nbt:"data"`
}

// decodeBlockStates parses the section's block-state compound. nbt.Unmarshal checks every declared
// length against the input before go-mc sizes any slice from it.
func decodeBlockStates(b []byte, minBits int) (*PalettedContainer[BlockState], error) {
	if _, _, err := nbt.Unmarshal(b); err != nil {
		return nil, &TagError{Field: "block states", Err: err}
	}
	var raw blockStatesNBT
	if err := mcnbt.Unmarshal(b, &raw); err != nil {
		return nil, &TagError{Field: "block states", Err: err}
	}
	c, err := NewPalettedContainer(SectionBlocks, raw.Palette, raw.Data, minBits)
	if err != nil {
		return nil, err
	}
	if err = c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// biomeContainer projects a section's biome tag, a compound holding a "palette" list of biome
// names and an optional "data" long array.
func biomeContainer(t nbt.Tag, minBits int) (*PalettedContainer[string], error) {
	root, ok := t.(nbt.Compound)
	if !ok {
		return nil, &TagError{Field: "biomes", Err: ErrWrongTagType}
	}
	p, ok := root.Get("palette")
	if !ok {
		return nil, &TagError{Field: "biomes.palette", Err: ErrMissingField}
	}
	list, ok := p.(nbt.List)
	if !ok || (len(list.Values) > 0 && list.Elem != nbt.TagString) {
		return nil, &TagError{Field: "biomes.palette", Err: ErrWrongTagType}
	}
	palette := make([]string, len(list.Values))
	for i, v := range list.Values {
		palette[i] = string(v.(nbt.String))
	}

	var data []uint64
	if d, ok := root.Get("data"); ok {
		longs, ok := d.(nbt.LongArray)
		if !ok {
			return nil, &TagError{Field: "biomes.data", Err: ErrWrongTagType}
		}
		data = make([]uint64, len(longs))
		for i, v := range longs {
			data[i] = uint64(v)
		}
	}

	c, err := NewPalettedContainer(SectionBiomes, palette, data, minBits)
	if err != nil {
		return nil, err
	}
	if err = c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
