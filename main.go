package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/astei/slimeball/slime"
)

func chunkFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "chunk",
		Aliases:  []string{"c"},
		Usage:    "chunk coordinates as `X,Z`",
		Required: true,
	}
}

func main() {
	app := &cli.App{
		Name:  "slimeball",
		Usage: "inspects Slime worlds",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "trace the decode on stderr",
				EnvVars: []string{"SLIMEBALL_VERBOSE"},
			},
			&cli.IntFlag{
				Name:    "min-index-bits",
				Usage:   "lower bound for packed palette index width (vanilla worlds use 4)",
				EnvVars: []string{"SLIMEBALL_MIN_INDEX_BITS"},
			},
			&cli.StringFlag{
				Name:    "max-payload",
				Usage:   "refuse worlds declaring a larger payload",
				Value:   "1GiB",
				EnvVars: []string{"SLIMEBALL_MAX_PAYLOAD"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "print the header and a chunk summary",
				ArgsUsage: "WORLD",
				Action: func(c *cli.Context) error {
					world, err := loadWorld(c)
					if err != nil {
						return err
					}
					return printInfo(c.App.Writer, world)
				},
			},
			{
				Name:      "tops",
				Usage:     "print the highest non-air block of every column in a chunk",
				ArgsUsage: "WORLD",
				Flags:     []cli.Flag{chunkFlag()},
				Action: func(c *cli.Context) error {
					chunk, err := loadChunk(c)
					if err != nil {
						return err
					}
					return printTops(c.App.Writer, chunk)
				},
			},
			{
				Name:      "dump",
				Usage:     "print a chunk's metadata tags",
				ArgsUsage: "WORLD",
				Flags: []cli.Flag{
					chunkFlag(),
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "yaml", Usage: "`json` or `yaml`"},
				},
				Action: func(c *cli.Context) error {
					chunk, err := loadChunk(c)
					if err != nil {
						return err
					}
					return dumpChunk(c.App.Writer, chunk, c.String("format"))
				},
			},
			{
				Name:      "extract",
				Usage:     "write one chunk metadata tag to an uncompressed NBT file",
				ArgsUsage: "WORLD",
				Flags: []cli.Flag{
					chunkFlag(),
					&cli.StringFlag{Name: "field", Required: true, Usage: "one of " + strings.Join(extractFields, ", ")},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true, Usage: "output `FILE`"},
				},
				Action: func(c *cli.Context) error {
					chunk, err := loadChunk(c)
					if err != nil {
						return err
					}
					out, err := os.OpenFile(c.String("out"), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
					if err != nil {
						return err
					}
					if err = extractTag(out, chunk, c.String("field")); err != nil {
						_ = out.Close()
						return err
					}
					return out.Close()
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func decodeOptions(c *cli.Context) ([]slime.Option, error) {
	maxPayload, err := humanize.ParseBytes(c.String("max-payload"))
	if err != nil {
		return nil, fmt.Errorf("invalid --max-payload: %w", err)
	}
	opts := []slime.Option{
		slime.WithMinIndexBits(c.Int("min-index-bits")),
		slime.WithMaxPayloadSize(int64(maxPayload)),
	}
	if c.Bool("verbose") {
		opts = append(opts, slime.WithLogger(log.New(os.Stderr, "slimeball: ", log.LstdFlags|log.Lmicroseconds)))
	}
	return opts, nil
}

func loadWorld(c *cli.Context) (*slime.World, error) {
	if c.NArg() == 0 {
		return nil, cli.Exit("need a world to work with", 2)
	}
	opts, err := decodeOptions(c)
	if err != nil {
		return nil, err
	}
	path := c.Args().First()
	in, err := openWorld(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	world, err := slime.Decode(in, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	return world, nil
}

func loadChunk(c *cli.Context) (*slime.Chunk, error) {
	x, z, err := parseChunkCoords(c.String("chunk"))
	if err != nil {
		return nil, err
	}
	world, err := loadWorld(c)
	if err != nil {
		return nil, err
	}
	chunk, ok := world.Chunk(x, z)
	if !ok {
		return nil, fmt.Errorf("world has no chunk %d,%d", x, z)
	}
	return chunk, nil
}

func parseChunkCoords(s string) (x, z int32, err error) {
	xs, zs, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("chunk coordinates %q are not X,Z", s)
	}
	xv, err := strconv.ParseInt(strings.TrimSpace(xs), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("chunk x: %w", err)
	}
	zv, err := strconv.ParseInt(strings.TrimSpace(zs), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("chunk z: %w", err)
	}
	return int32(xv), int32(zv), nil
}
