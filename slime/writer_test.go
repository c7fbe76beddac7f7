package slime

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/astei/slimeball/nbt"
)

// The writer below produces version 13 worlds for tests only. Every optional field is written
// exactly when it is set on the fixture, independent of the header flags, so tests can build
// inconsistent files on purpose.

type fixtureBlockState struct {
	Name       string            `nbt:"Name"`
	Properties map[string]string `nbt:"Properties,omitempty"`
}

type fixtureSection struct {
	SkyLight   []byte
	BlockLight []byte
	Palette    []BlockState
	Data       []uint64
	Biomes     nbt.Tag

	// RawStates replaces the encoded block-state compound when set.
	RawStates []byte
}

type fixtureChunk struct {
	X, Z     int32
	Sections []fixtureSection

	Heightmaps nbt.Tag
	POIChunks  nbt.Tag
	BlockTicks nbt.Tag
	FluidTicks nbt.Tag
	Extensions [][]byte

	TileEntities []nbt.Tag
	Entities     nbt.Tag
	Extra        nbt.Tag

	RootNames RootNames
}

type slimeWriter struct {
	magic        uint16
	version      uint8
	worldVersion int32
	flags        WorldFlags
	chunks       []fixtureChunk

	// sizeSkew is added to the declared uncompressed size.
	sizeSkew int32
}

func newSlimeWriter(flags WorldFlags, chunks ...fixtureChunk) *slimeWriter {
	return &slimeWriter{magic: Magic, version: Version, worldVersion: 3955, flags: flags, chunks: chunks}
}

func (w *slimeWriter) bytes(t *testing.T) []byte {
	t.Helper()
	var out bytes.Buffer
	if err := w.writeWorld(&out); err != nil {
		t.Fatalf("writing fixture world: %v", err)
	}
	return out.Bytes()
}

func (w *slimeWriter) writeWorld(out *bytes.Buffer) (err error) {
	if err = w.writeHeader(out); err != nil {
		return
	}
	var payload bytes.Buffer
	if err = w.writeChunks(&payload); err != nil {
		return
	}
	return w.writeZstdCompressed(out, payload)
}

func (w *slimeWriter) writeHeader(out *bytes.Buffer) error {
	var header struct {
		Magic        uint16
		Version      uint8
		WorldVersion int32
		Flags        uint8
	}
	header.Magic = w.magic
	header.Version = w.version
	header.WorldVersion = w.worldVersion
	header.Flags = uint8(w.flags)
	return binary.Write(out, binary.BigEndian, header)
}

func (w *slimeWriter) writeChunks(out *bytes.Buffer) (err error) {
	if err = binary.Write(out, binary.BigEndian, int32(len(w.chunks))); err != nil {
		return
	}
	for _, chunk := range w.chunks {
		if err = w.writeChunk(chunk, out); err != nil {
			return
		}
	}
	return
}

func (w *slimeWriter) writeChunk(chunk fixtureChunk, out *bytes.Buffer) (err error) {
	if err = binary.Write(out, binary.BigEndian, []int32{chunk.X, chunk.Z, int32(len(chunk.Sections))}); err != nil {
		return
	}
	for _, section := range chunk.Sections {
		if err = w.writeChunkSection(section, out); err != nil {
			return
		}
	}

	heightmaps := chunk.Heightmaps
	if heightmaps == nil {
		heightmaps = nbt.Compound{}
	}
	names := chunk.RootNames
	if err = writeNamedTag(out, names.Heightmaps, heightmaps); err != nil {
		return
	}
	optional := []struct {
		name string
		tag  nbt.Tag
	}{
		{names.POIChunks, chunk.POIChunks},
		{names.BlockTicks, chunk.BlockTicks},
		{names.FluidTicks, chunk.FluidTicks},
	}
	for _, o := range optional {
		if o.tag == nil {
			continue
		}
		if err = writeNamedTag(out, o.name, o.tag); err != nil {
			return
		}
	}
	for _, ext := range chunk.Extensions {
		writeSizedBytes(out, ext)
	}

	tiles := nbt.List{Elem: nbt.TagEnd}
	if len(chunk.TileEntities) > 0 {
		tiles = nbt.List{Elem: nbt.TagCompound, Values: chunk.TileEntities}
	}
	if err = writeNamedTag(out, names.TileEntities, nbt.Compound{{Name: "tileEntities", Value: tiles}}); err != nil {
		return
	}

	entities := chunk.Entities
	if entities == nil {
		entities = nbt.Compound{{Name: "entities", Value: nbt.List{Elem: nbt.TagEnd}}}
	}
	if err = writeNamedTag(out, names.Entities, entities); err != nil {
		return
	}

	if chunk.Extra == nil {
		return binary.Write(out, binary.BigEndian, int32(0))
	}
	return writeNamedTag(out, names.Extra, chunk.Extra)
}

func (w *slimeWriter) writeChunkSection(section fixtureSection, out *bytes.Buffer) (err error) {
	var flags uint8
	if section.SkyLight != nil {
		flags |= 1 << SectionSkyLight
	}
	if section.BlockLight != nil {
		flags |= 1 << SectionBlockLight
	}
	out.WriteByte(flags)
	out.Write(section.SkyLight)
	out.Write(section.BlockLight)

	if section.RawStates != nil {
		writeSizedBytes(out, section.RawStates)
		return writeSizedTag(out, plainsBiomes())
	}

	var states struct {
		Palette []fixtureBlockState `nbt:"palette"`
		Data    []uint64            `nbt:"data,omitempty"`
	}
	for _, p := range section.Palette {
		states.Palette = append(states.Palette, fixtureBlockState{Name: p.Name, Properties: p.Properties})
	}
	states.Data = section.Data
	var buf bytes.Buffer
	if err = nbt.NewEncoder(&buf).Encode(states); err != nil {
		return
	}
	writeSizedBytes(out, buf.Bytes())

	biomes := section.Biomes
	if biomes == nil {
		biomes = plainsBiomes()
	}
	return writeSizedTag(out, biomes)
}

func (w *slimeWriter) writeZstdCompressed(out *bytes.Buffer, buf bytes.Buffer) (err error) {
	uncompressedSize := buf.Len()

	var compressedOutput bytes.Buffer
	zstdWriter, err := zstd.NewWriter(&compressedOutput)
	if err != nil {
		return
	}
	if _, err = buf.WriteTo(zstdWriter); err != nil {
		return
	}
	if err = zstdWriter.Close(); err != nil {
		return
	}

	if err = binary.Write(out, binary.BigEndian, int32(compressedOutput.Len())); err != nil {
		return
	}
	if err = binary.Write(out, binary.BigEndian, int32(uncompressedSize)+w.sizeSkew); err != nil {
		return
	}
	_, err = compressedOutput.WriteTo(out)
	return
}

func writeSizedTag(out *bytes.Buffer, t nbt.Tag) error {
	return writeNamedTag(out, "", t)
}

func writeNamedTag(out *bytes.Buffer, name string, t nbt.Tag) error {
	var buf bytes.Buffer
	if err := nbt.NewEncoder(&buf).EncodeTag(name, t); err != nil {
		return err
	}
	writeSizedBytes(out, buf.Bytes())
	return nil
}

func writeSizedBytes(out *bytes.Buffer, b []byte) {
	_ = binary.Write(out, binary.BigEndian, int32(len(b)))
	out.Write(b)
}

func plainsBiomes() nbt.Tag {
	return nbt.Compound{{Name: "palette", Value: nbt.List{Elem: nbt.TagString, Values: []nbt.Tag{nbt.String("minecraft:plains")}}}}
}

func airSection() fixtureSection {
	return fixtureSection{Palette: []BlockState{{Name: "minecraft:air"}}}
}
