package slime

import "github.com/astei/slimeball/nbt"

// LightArraySize is the length of a nibble-packed sky or block light array.
const LightArraySize = 2048

// Section is one 16x16x16 slab of a chunk.
type Section struct {
	Flags       SectionFlags
	SkyLight    []byte // nil unless Flags.SkyLight()
	BlockLight  []byte // nil unless Flags.BlockLight()
	BlockStates *PalettedContainer[BlockState]
	Biomes      nbt.Tag
}

// BiomeContainer reads the biome tag as a 64-cell paletted container of biome names.
func (s *Section) BiomeContainer(minBits int) (*PalettedContainer[string], error) {
	return biomeContainer(s.Biomes, minBits)
}

// Block returns the block state at section-local coordinates.
func (s *Section) Block(x, y, z int) (BlockState, error) {
	return s.BlockStates.Get(BlockIndex(x, y, z))
}

func readSection(r *reader, o *options) (Section, error) {
	var s Section
	flags, err := r.u8()
	if err != nil {
		return s, err
	}
	s.Flags = SectionFlags(flags)

	if s.SkyLight, err = readIf(s.Flags.SkyLight(), func() ([]byte, error) {
		return r.copyBytes(LightArraySize)
	}); err != nil {
		return s, err
	}
	if s.BlockLight, err = readIf(s.Flags.BlockLight(), func() ([]byte, error) {
		return r.copyBytes(LightArraySize)
	}); err != nil {
		return s, err
	}

	states, err := r.sizedBytes("block states")
	if err != nil {
		return s, err
	}
	if s.BlockStates, err = decodeBlockStates(states, o.minIndexBits); err != nil {
		return s, err
	}
	o.logger.Printf("block states: %d palette entries, %d-bit indices", len(s.BlockStates.Palette()), s.BlockStates.Bits())

	if s.Biomes, err = r.sized("biomes"); err != nil {
		return s, err
	}
	return s, nil
}
