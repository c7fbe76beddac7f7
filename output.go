package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/astei/slimeball/nbt"
	"github.com/astei/slimeball/slime"
)

var extractFields = []string{"heightmaps", "poi", "block-ticks", "fluid-ticks", "tile-entities", "entities", "extra"}

func printInfo(w io.Writer, world *slime.World) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	flags := world.Flags
	fmt.Fprintf(tw, "format version\t%d\n", world.Version)
	fmt.Fprintf(tw, "world version\t%d\n", world.WorldVersion)
	fmt.Fprintf(tw, "flags\t%08b (poi %v, fluid ticks %v, block ticks %v, %d extensions)\n",
		uint8(flags), flags.POIChunks(), flags.FluidTicks(), flags.BlockTicks(), flags.OtherCount())
	fmt.Fprintf(tw, "payload\t%s compressed, %s uncompressed\n",
		humanize.IBytes(uint64(world.CompressedSize)), humanize.IBytes(uint64(world.UncompressedSize)))

	sections, tiles := 0, 0
	for _, c := range world.Chunks {
		sections += len(c.Sections)
		tiles += len(c.TileEntities)
	}
	fmt.Fprintf(tw, "chunks\t%s\n", humanize.Comma(int64(len(world.Chunks))))
	fmt.Fprintf(tw, "sections\t%s\n", humanize.Comma(int64(sections)))
	fmt.Fprintf(tw, "tile entities\t%s\n", humanize.Comma(int64(tiles)))
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(world.Chunks) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "X\tZ\tSECTIONS\tTILE ENTITIES\tEXTRA")
	for _, c := range world.Chunks {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%v\n", c.X, c.Z, len(c.Sections), len(c.TileEntities), c.Extra != nil)
	}
	return tw.Flush()
}

func printTops(w io.Writer, chunk *slime.Chunk) error {
	top, err := chunk.TopBlocks()
	if err != nil {
		return err
	}
	width := 1
	for _, name := range top {
		if n := len(shortName(name)); n > width {
			width = n
		}
	}
	for z := 0; z < 16; z++ {
		row := make([]string, 16)
		for x := 0; x < 16; x++ {
			name := shortName(top[z*16+x])
			if name == "" {
				name = "."
			}
			row[x] = fmt.Sprintf("%-*s", width, name)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(row, " "), " ")); err != nil {
			return err
		}
	}
	return nil
}

func shortName(name string) string {
	return strings.TrimPrefix(name, "minecraft:")
}

func chunkDocument(chunk *slime.Chunk) map[string]any {
	tiles := make([]any, len(chunk.TileEntities))
	for i, t := range chunk.TileEntities {
		tiles[i] = nbt.Plain(t)
	}
	doc := map[string]any{
		"x":             chunk.X,
		"z":             chunk.Z,
		"sections":      len(chunk.Sections),
		"heightmaps":    nbt.Plain(chunk.Heightmaps),
		"tile_entities": tiles,
		"entities":      nbt.Plain(chunk.Entities),
	}
	optional := map[string]nbt.Tag{
		"poi_chunks":  chunk.POIChunks,
		"block_ticks": chunk.BlockTicks,
		"fluid_ticks": chunk.FluidTicks,
		"extra":       chunk.Extra,
	}
	for k, v := range optional {
		if v != nil {
			doc[k] = nbt.Plain(v)
		}
	}
	return doc
}

func dumpChunk(w io.Writer, chunk *slime.Chunk, format string) error {
	doc := chunkDocument(chunk)
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}

func extractTag(w io.Writer, chunk *slime.Chunk, field string) error {
	var (
		t    nbt.Tag
		name string
	)
	names := chunk.RootNames
	switch field {
	case "heightmaps":
		t, name = chunk.Heightmaps, names.Heightmaps
	case "poi":
		t, name = chunk.POIChunks, names.POIChunks
	case "block-ticks":
		t, name = chunk.BlockTicks, names.BlockTicks
	case "fluid-ticks":
		t, name = chunk.FluidTicks, names.FluidTicks
	case "tile-entities":
		t, name = nbt.Compound{{Name: "tileEntities", Value: tileList(chunk.TileEntities)}}, names.TileEntities
	case "entities":
		t, name = chunk.Entities, names.Entities
	case "extra":
		t, name = chunk.Extra, names.Extra
	default:
		return fmt.Errorf("unknown field %q, expected one of %s", field, strings.Join(extractFields, ", "))
	}
	if t == nil {
		return fmt.Errorf("chunk %d,%d has no %s", chunk.X, chunk.Z, field)
	}
	return nbt.NewEncoder(w).EncodeTag(name, t)
}

func tileList(tiles []nbt.Tag) nbt.List {
	if len(tiles) == 0 {
		return nbt.List{Elem: nbt.TagEnd}
	}
	return nbt.List{Elem: tiles[0].Type(), Values: tiles}
}
