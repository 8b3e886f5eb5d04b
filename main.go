package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"wiki2md/internal/convert"
	"wiki2md/models"
)

func main() {
	app := &cli.App{
		Name:      "wiki2md",
		Usage:     "convert a MediaWiki XML export dump into a tree of Markdown files",
		ArgsUsage: "<dump.xml>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "output",
				Value: models.DefaultOutput,
				Usage: "output directory for converted files",
			},
			&cli.BoolFlag{
				Name:  "flatten",
				Usage: "flatten the file structure into underscore-joined filenames",
			},
			&cli.BoolFlag{
				Name:  "addmeta",
				Usage: "add title and permalink front matter to each file",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: models.DefaultFormat,
				Usage: "pandoc target format",
			},
			&cli.BoolFlag{
				Name:  "indexes",
				Usage: "rename directory-level pages to index.md",
			},
			&cli.BoolFlag{
				Name:  "skiperrors",
				Usage: "skip pages that fail to convert instead of aborting",
			},
			&cli.StringFlag{
				Name:  "report-db",
				Usage: "record per-page outcomes into a SQLite database at this path",
			},
			&cli.BoolFlag{
				Name:  "detect-lang",
				Usage: "detect content language for the front matter (requires --addmeta)",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "only log errors",
			},
		},
		Action: convert.Action,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
