package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/inputdisplay"
	"github.com/bodgit/inputdisplay/config"
	"github.com/bodgit/inputdisplay/event"
	"github.com/bodgit/inputdisplay/palette"
	"github.com/bodgit/inputdisplay/platform/window"
	"github.com/urfave/cli/v2"
)

const defaultDB = "inputdisplay.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func run(c *cli.Context) error {
	logger := newLogger(c)

	store, err := config.Open(c.String("db"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer store.Close()

	q := event.New()
	w := window.New(q, inputdisplay.Width, inputdisplay.Height, c.Int("scale"), "Input Display")

	d, err := inputdisplay.New(w, store, logger, inputdisplay.WithQueue(q), inputdisplay.WithKeymap(window.DefaultKeymap()))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if c.IsSet("palette") {
		if err := d.SelectPalette(c.Int("palette")); err != nil {
			return cli.NewExitError(err, 1)
		}
	}

	if err := w.Run(); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func palettes(c *cli.Context) error {
	current := palette.DefaultIndex

	store, err := config.Open(c.String("db"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer store.Close()

	if v, err := store.Uint32(inputdisplay.PaletteSetting); err == nil {
		current = int(v)
	}

	for i, e := range palette.Default {
		mark := " "
		if i == current {
			mark = "*"
		}
		fmt.Fprintf(c.App.Writer, "%s %2d %s\n", mark, i, e.Name)
	}

	return nil
}

func bindings(c *cli.Context) error {
	store, err := config.Open(c.String("db"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer store.Close()

	if c.Bool("reset") {
		if err := store.Reset(); err != nil {
			return cli.NewExitError(err, 1)
		}
		return nil
	}

	settings, err := store.All()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	for _, s := range settings {
		fmt.Fprintf(c.App.Writer, "%-24s %d\n", s.Name, s.Value)
	}

	return nil
}

func convert(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	src, dst := c.Args().Get(0), c.Args().Get(1)

	info, err := os.Stat(src)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	conv := inputdisplay.NewConverter(newLogger(c))
	conv.Workers = c.Int("workers")

	if info.IsDir() {
		err = conv.ConvertDirectory(context.Background(), src, dst)
	} else {
		err = conv.ConvertFile(src, dst)
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "inputdisplay"
	app.Usage = "Game controller input overlay"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"INPUTDISPLAY_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "run",
			Usage:       "Show the overlay",
			Description: "Right click cycles the palette, F2 binds each key in turn.",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "scale",
					EnvVars: []string{"INPUTDISPLAY_SCALE"},
					Value:   2,
					Usage:   "window magnification",
				},
				&cli.IntFlag{
					Name:  "palette",
					Usage: "select and store palette `INDEX`",
				},
			},
			Action: run,
		},
		{
			Name:   "palettes",
			Usage:  "List the available palettes",
			Action: palettes,
		},
		{
			Name:  "bindings",
			Usage: "Show the stored settings",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "reset",
					Usage: "remove every stored setting",
				},
			},
			Action: bindings,
		},
		{
			Name:        "convert",
			Usage:       "Convert artwork into sprite sheet bitmaps",
			Description: "INPUT may be an image or a directory of images, OUTPUT is then a file or directory respectively.",
			ArgsUsage:   "INPUT OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "workers",
					Value: 4,
					Usage: "images to convert at once",
				},
			},
			Action: convert,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
