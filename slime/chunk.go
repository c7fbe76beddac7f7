package slime

import (
	"fmt"
	"io"

	"github.com/astei/slimeball/nbt"
)

// Chunk is one column of the world. The optional tags are nil when absent.
type Chunk struct {
	X, Z     int32
	Sections []Section

	Heightmaps nbt.Tag
	POIChunks  nbt.Tag // nil unless WorldFlags.POIChunks()
	BlockTicks nbt.Tag // nil unless WorldFlags.BlockTicks()
	FluidTicks nbt.Tag // nil unless WorldFlags.FluidTicks()

	TileEntities []nbt.Tag
	Entities     nbt.Tag
	Extra        nbt.Tag // nil when the declared length is zero

	RootNames RootNames
}

// RootNames holds the root tag names each framed value was written with. Writers normally
// leave them empty. TileEntities names the compound wrapping the tile entity list.
type RootNames struct {
	Heightmaps   string
	POIChunks    string
	BlockTicks   string
	FluidTicks   string
	TileEntities string
	Entities     string
	Extra        string
}

func readChunks(r *reader, flags WorldFlags, o *options) ([]Chunk, error) {
	count, err := r.length("chunk count")
	if err != nil {
		return nil, err
	}
	// Every chunk needs at least its three coordinate/count ints.
	if count > r.remaining()/12 {
		return nil, fmt.Errorf("slime: %d chunks declared in %d bytes: %w", count, r.remaining(), io.ErrUnexpectedEOF)
	}

	chunks := make([]Chunk, 0, count)
	for i := 0; i < count; i++ {
		c, err := readChunk(r, flags, o)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}
		chunks = append(chunks, c)
	}
	return chunks, nil
}

func readChunk(r *reader, flags WorldFlags, o *options) (c Chunk, err error) {
	if c.X, err = r.int32(); err != nil {
		return
	}
	if c.Z, err = r.int32(); err != nil {
		return
	}

	sectionCount, err := r.length("section count")
	if err != nil {
		return
	}
	o.logger.Printf("chunk %d,%d: %d sections", c.X, c.Z, sectionCount)
	for i := 0; i < sectionCount; i++ {
		s, err := readSection(r, o)
		if err != nil {
			return c, fmt.Errorf("chunk %d,%d section %d: %w", c.X, c.Z, i, err)
		}
		c.Sections = append(c.Sections, s)
	}

	if c.RootNames.Heightmaps, c.Heightmaps, err = r.named("heightmaps"); err != nil {
		return
	}

	optional := func(present bool, field string, name *string) (nbt.Tag, error) {
		return readIf(present, func() (t nbt.Tag, err error) {
			*name, t, err = r.named(field)
			return
		})
	}
	if c.POIChunks, err = optional(flags.POIChunks(), "poi chunks", &c.RootNames.POIChunks); err != nil {
		return
	}
	if c.BlockTicks, err = optional(flags.BlockTicks(), "block ticks", &c.RootNames.BlockTicks); err != nil {
		return
	}
	if c.FluidTicks, err = optional(flags.FluidTicks(), "fluid ticks", &c.RootNames.FluidTicks); err != nil {
		return
	}

	for i, bit := range flags.Other() {
		skipped, err := r.sizedBytes(fmt.Sprintf("extension flag %d", bit))
		if err != nil {
			return c, err
		}
		o.logger.Printf("discarding %d bytes for extension %d (flag bit %d)", len(skipped), i, bit)
	}

	var tiles nbt.Tag
	if c.RootNames.TileEntities, tiles, err = r.named("tile entities"); err != nil {
		return
	}
	if c.TileEntities, err = tileEntityList(tiles); err != nil {
		return
	}

	if c.RootNames.Entities, c.Entities, err = r.named("entities"); err != nil {
		return
	}

	extraLen, err := r.length("extra")
	if err != nil {
		return
	}
	if extraLen != 0 {
		o.logger.Printf("loading extra compound, %d bytes", extraLen)
		b, err := r.take(extraLen)
		if err != nil {
			return c, err
		}
		if c.RootNames.Extra, c.Extra, err = parseTag("extra", b); err != nil {
			return c, err
		}
	}
	return c, nil
}

// tileEntityList pulls the "tileEntities" list out of its wrapping compound.
func tileEntityList(t nbt.Tag) ([]nbt.Tag, error) {
	root, ok := t.(nbt.Compound)
	if !ok {
		return nil, &TagError{Field: "tile entities", Err: ErrWrongTagType}
	}
	v, ok := root.Get("tileEntities")
	if !ok {
		return nil, &TagError{Field: "tile entities", Err: ErrMissingField}
	}
	list, ok := v.(nbt.List)
	if !ok {
		return nil, &TagError{Field: "tile entities", Err: ErrWrongTagType}
	}
	return list.Values, nil
}
