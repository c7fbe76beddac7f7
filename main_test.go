package main

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"
	"gopkg.in/yaml.v3"

	"github.com/astei/slimeball/nbt"
	"github.com/astei/slimeball/slime"
)

func testChunk(t *testing.T) *slime.Chunk {
	t.Helper()
	data := make([]uint64, slime.SectionBlocks/64)
	// One stone block at x=1,y=0,z=0; everything else is air.
	data[0] = 1 << 62
	states, err := slime.NewPalettedContainer(slime.SectionBlocks,
		[]slime.BlockState{{Name: "minecraft:air"}, {Name: "minecraft:stone"}}, data, 0)
	if err != nil {
		t.Fatalf("building container: %v", err)
	}
	return &slime.Chunk{
		X:            4,
		Z:            -2,
		Sections:     []slime.Section{{BlockStates: states}},
		Heightmaps:   nbt.Compound{{Name: "WORLD_SURFACE", Value: nbt.LongArray{7}}},
		TileEntities: []nbt.Tag{nbt.Compound{{Name: "id", Value: nbt.String("minecraft:chest")}}},
		Entities:     nbt.Compound{{Name: "entities", Value: nbt.List{Elem: nbt.TagEnd}}},
	}
}

func TestParseChunkCoords(t *testing.T) {
	x, z, err := parseChunkCoords(" -3, 12")
	if err != nil || x != -3 || z != 12 {
		t.Fatalf("parseChunkCoords = %d, %d, %v", x, z, err)
	}
	for _, bad := range []string{"", "3", "a,1", "1,b", "99999999999,0"} {
		if _, _, err := parseChunkCoords(bad); err == nil {
			t.Fatalf("parseChunkCoords(%q) should fail", bad)
		}
	}
}

func TestWrapWorldUnwrapsGzip(t *testing.T) {
	payload := []byte{0xb1, 0x0b, 13, 0, 0, 0, 1}

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	if _, err := zw.Write(payload); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}

	for name, in := range map[string][]byte{"plain": payload, "gzip": gz.Bytes()} {
		r, err := wrapWorld(bytes.NewReader(in), nil)
		if err != nil {
			t.Fatalf("%s: wrapWorld failed: %v", name, err)
		}
		got, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("%s: read failed: %v", name, err)
		}
		if !bytes.Equal(got, payload) {
			t.Fatalf("%s: got %x, want %x", name, got, payload)
		}
		if err := r.Close(); err != nil {
			t.Fatalf("%s: close failed: %v", name, err)
		}
	}
}

func TestPrintTops(t *testing.T) {
	var out bytes.Buffer
	if err := printTops(&out, testChunk(t)); err != nil {
		t.Fatalf("printTops failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 16 {
		t.Fatalf("expected 16 rows, got %d", len(lines))
	}
	if got := strings.Fields(lines[0]); len(got) != 16 || got[0] != "." || got[1] != "stone" {
		t.Fatalf("unexpected first row %q", lines[0])
	}
	if strings.Contains(lines[1], "stone") {
		t.Fatalf("unexpected stone in row 1: %q", lines[1])
	}
}

func TestDumpChunk(t *testing.T) {
	chunk := testChunk(t)

	var js bytes.Buffer
	if err := dumpChunk(&js, chunk, "json"); err != nil {
		t.Fatalf("json dump failed: %v", err)
	}
	var fromJSON map[string]any
	if err := json.Unmarshal(js.Bytes(), &fromJSON); err != nil {
		t.Fatalf("json output does not parse: %v", err)
	}

	var ym bytes.Buffer
	if err := dumpChunk(&ym, chunk, "yaml"); err != nil {
		t.Fatalf("yaml dump failed: %v", err)
	}
	var fromYAML map[string]any
	if err := yaml.Unmarshal(ym.Bytes(), &fromYAML); err != nil {
		t.Fatalf("yaml output does not parse: %v", err)
	}

	wantTiles := []any{map[string]any{"id": "minecraft:chest"}}
	if diff := cmp.Diff(wantTiles, fromJSON["tile_entities"]); diff != "" {
		t.Fatalf("unexpected json tile entities (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantTiles, fromYAML["tile_entities"]); diff != "" {
		t.Fatalf("unexpected yaml tile entities (-want +got):\n%s", diff)
	}
	if _, ok := fromJSON["extra"]; ok {
		t.Fatalf("absent extra should not be dumped")
	}
	if err := dumpChunk(io.Discard, chunk, "xml"); err == nil {
		t.Fatalf("unknown format should fail")
	}
}

func TestExtractTag(t *testing.T) {
	chunk := testChunk(t)
	chunk.RootNames.TileEntities = "Level"

	var out bytes.Buffer
	if err := extractTag(&out, chunk, "tile-entities"); err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	name, got, err := nbt.Unmarshal(out.Bytes())
	if err != nil {
		t.Fatalf("extracted file does not parse: %v", err)
	}
	if name != "Level" {
		t.Fatalf("extracted root name %q, want %q", name, "Level")
	}
	want := nbt.Compound{{Name: "tileEntities", Value: nbt.List{Elem: nbt.TagCompound, Values: chunk.TileEntities}}}
	if diff := cmp.Diff(nbt.Tag(want), got); diff != "" {
		t.Fatalf("unexpected extracted tag (-want +got):\n%s", diff)
	}

	out.Reset()
	if err := extractTag(&out, chunk, "heightmaps"); err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if name, _, err := nbt.Unmarshal(out.Bytes()); err != nil || name != "" {
		t.Fatalf("unnamed heightmaps came back as %q, %v", name, err)
	}

	if err := extractTag(io.Discard, chunk, "extra"); err == nil {
		t.Fatalf("extracting an absent field should fail")
	}
	if err := extractTag(io.Discard, chunk, "nope"); err == nil {
		t.Fatalf("extracting an unknown field should fail")
	}
}

func TestPrintInfo(t *testing.T) {
	world := &slime.World{
		Version:          slime.Version,
		WorldVersion:     3955,
		Flags:            slime.WorldFlags(0b1001),
		Chunks:           []slime.Chunk{*testChunk(t)},
		CompressedSize:   2048,
		UncompressedSize: 1 << 20,
	}
	var out bytes.Buffer
	if err := printInfo(&out, world); err != nil {
		t.Fatalf("printInfo failed: %v", err)
	}
	for _, want := range []string{"3955", "1 extensions", "1.0 MiB", "2.0 KiB"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("info output missing %q:\n%s", want, out.String())
		}
	}
}
