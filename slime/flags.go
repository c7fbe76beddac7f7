package slime

import "github.com/willf/bitset"

// World flag bits. Any other set bit announces an extension field that this decoder skips.
const (
	FlagPOIChunks  = 0
	FlagFluidTicks = 1
	FlagBlockTicks = 2
)

// Section flag bits.
const (
	SectionSkyLight   = 0
	SectionBlockLight = 1
)

var namedWorldFlags = []uint{FlagPOIChunks, FlagFluidTicks, FlagBlockTicks}

// WorldFlags is the header byte gating optional per-chunk fields.
type WorldFlags uint8

func (f WorldFlags) bits() *bitset.BitSet {
	return bitset.From([]uint64{uint64(f)})
}

func (f WorldFlags) POIChunks() bool  { return f.bits().Test(FlagPOIChunks) }
func (f WorldFlags) FluidTicks() bool { return f.bits().Test(FlagFluidTicks) }
func (f WorldFlags) BlockTicks() bool { return f.bits().Test(FlagBlockTicks) }

// OtherCount is the number of set bits not covered by the named flags. Each one stands for a
// length-prefixed block per chunk.
func (f WorldFlags) OtherCount() int {
	return len(f.Other())
}

// Other lists the positions of set bits not covered by the named flags.
func (f WorldFlags) Other() []uint {
	others := f.bits()
	for _, b := range namedWorldFlags {
		others.Clear(b)
	}
	var positions []uint
	for i, ok := others.NextSet(0); ok; i, ok = others.NextSet(i + 1) {
		positions = append(positions, i)
	}
	return positions
}

// SectionFlags is the per-section byte gating the light arrays. Unknown bits are ignored.
type SectionFlags uint8

func (f SectionFlags) SkyLight() bool {
	return bitset.From([]uint64{uint64(f)}).Test(SectionSkyLight)
}

func (f SectionFlags) BlockLight() bool {
	return bitset.From([]uint64{uint64(f)}).Test(SectionBlockLight)
}
