package slime

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWorldFlags(t *testing.T) {
	tests := []struct {
		flags      WorldFlags
		poi        bool
		fluid      bool
		block      bool
		otherCount int
		other      []uint
	}{
		{flags: 0},
		{flags: 0b001, poi: true},
		{flags: 0b010, fluid: true},
		{flags: 0b100, block: true},
		{flags: 0b111, poi: true, fluid: true, block: true},
		{flags: 0b1000, otherCount: 1, other: []uint{3}},
		{flags: 0b10100101, poi: true, block: true, otherCount: 2, other: []uint{5, 7}},
		{flags: 0xff, poi: true, fluid: true, block: true, otherCount: 5, other: []uint{3, 4, 5, 6, 7}},
	}
	for _, tt := range tests {
		if got := tt.flags.POIChunks(); got != tt.poi {
			t.Fatalf("%08b: POIChunks = %v, want %v", uint8(tt.flags), got, tt.poi)
		}
		if got := tt.flags.FluidTicks(); got != tt.fluid {
			t.Fatalf("%08b: FluidTicks = %v, want %v", uint8(tt.flags), got, tt.fluid)
		}
		if got := tt.flags.BlockTicks(); got != tt.block {
			t.Fatalf("%08b: BlockTicks = %v, want %v", uint8(tt.flags), got, tt.block)
		}
		if got := tt.flags.OtherCount(); got != tt.otherCount {
			t.Fatalf("%08b: OtherCount = %d, want %d", uint8(tt.flags), got, tt.otherCount)
		}
		if diff := cmp.Diff(tt.other, tt.flags.Other()); diff != "" {
			t.Fatalf("%08b: unexpected other bits (-want +got):\n%s", uint8(tt.flags), diff)
		}
	}
}

func TestSectionFlags(t *testing.T) {
	for f := 0; f < 256; f++ {
		flags := SectionFlags(f)
		if flags.SkyLight() != (f&1 != 0) {
			t.Fatalf("%08b: unexpected sky light %v", f, flags.SkyLight())
		}
		if flags.BlockLight() != (f&2 != 0) {
			t.Fatalf("%08b: unexpected block light %v", f, flags.BlockLight())
		}
	}
}
