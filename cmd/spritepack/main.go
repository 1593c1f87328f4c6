package main

import (
	"fmt"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/bodgit/spritepack"
	"github.com/urfave/cli/v2"
)

const defaultOutput = "spritepack.json"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func openDB(c *cli.Context) (*spritepack.EncodeDB, error) {
	if c.String("db") == "" {
		return nil, nil
	}
	return spritepack.NewEncodeDB(c.String("db"))
}

func main() {
	app := cli.NewApp()

	app.Name = "spritepack"
	app.Usage = "Encode layered sprite artwork into a palette-indexed RLE collection"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"SPRITEPACK_DB"},
			Usage:   "path to encode cache database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "encode",
			Usage:     "Encode a directory tree of sprite images",
			ArgsUsage: "DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   defaultOutput,
					Usage:   "output file, a .gz suffix compresses",
				},
				&cli.BoolFlag{
					Name:  "flatten",
					Usage: "fold every category into root",
				},
				&cli.IntFlag{
					Name:  "quantize",
					Usage: "per-image opaque color budget, 0 disables quantization",
				},
				&cli.StringSliceFlag{
					Name:    "background",
					Aliases: []string{"b"},
					Usage:   "background color hex string, may be repeated",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := openDB(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				s, err := spritepack.New(db, newLogger(c), c.StringSlice("background")...)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer s.Close()

				s.Quantize(c.Int("quantize"))
				s.Flatten(c.Bool("flatten"))

				if err := s.EncodeTree(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				if err := s.WriteFile(c.String("output")); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "palette",
			Usage: "Print the palette persisted in the encode cache",
			Action: func(c *cli.Context) error {
				if c.String("db") == "" {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := spritepack.NewEncodeDB(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				colors, err := db.Palette()
				if err != nil {
					return cli.Exit(err, 1)
				}

				for i, color := range colors {
					if color == "" {
						color = "(transparent)"
					}
					fmt.Printf("%3d %s\n", i, color)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
