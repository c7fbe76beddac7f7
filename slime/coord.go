package slime

import "fmt"

// BlockIndex maps section-local coordinates to a position in a section's block container.
func BlockIndex(x, y, z int) int {
	return y*256 + z*16 + x
}

// BlockCoord is the inverse of BlockIndex.
func BlockCoord(i int) (x, y, z int) {
	layer := i % 256
	return layer % 16, i / 256, layer / 16
}

// IsAir reports whether name is one of the air blocks.
func IsAir(name string) bool {
	switch name {
	case "minecraft:air", "minecraft:cave_air", "minecraft:void_air":
		return true
	}
	return false
}

// BlockAt returns the block at chunk-local x, z and y counted from the bottom of the first section.
func (c *Chunk) BlockAt(x, y, z int) (BlockState, error) {
	if x < 0 || x > 15 || z < 0 || z > 15 || y < 0 || y >= len(c.Sections)*16 {
		return BlockState{}, fmt.Errorf("slime: block %d,%d,%d outside chunk %d,%d", x, y, z, c.X, c.Z)
	}
	return c.Sections[y/16].Block(x, y%16, z)
}

// TopBlocks returns, for each column at index z*16+x, the name of its highest non-air block, or ""
// for a column that is all air.
func (c *Chunk) TopBlocks() ([256]string, error) {
	var top [256]string
	var found [256]bool
	for si := len(c.Sections) - 1; si >= 0; si-- {
		s := &c.Sections[si]
		for i := SectionBlocks - 1; i >= 0; i-- {
			column := i % 256
			if found[column] {
				continue
			}
			b, err := s.BlockStates.Get(i)
			if err != nil {
				return top, fmt.Errorf("section %d: %w", si, err)
			}
			if !IsAir(b.Name) {
				top[column] = b.Name
				found[column] = true
			}
		}
	}
	return top, nil
}
