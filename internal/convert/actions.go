// Package convert wires CLI options into the conversion pipeline.
package convert

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"wiki2md/internal/logging"
	"wiki2md/models"
	"wiki2md/pkg/langid"
	"wiki2md/pkg/render"
	"wiki2md/pkg/report"
)

// Action is the CLI entry point for a conversion run.
func Action(c *cli.Context) error {
	logger := logging.New(c.Bool("quiet"))

	opts := models.NewOptions()
	opts.Filename = c.Args().First()
	opts.Output = c.String("output")
	opts.Flatten = c.Bool("flatten")
	opts.AddMeta = c.Bool("addmeta")
	opts.Format = c.String("format")
	opts.Indexes = c.Bool("indexes")
	opts.SkipErrors = c.Bool("skiperrors")
	opts.ReportDB = c.String("report-db")
	opts.DetectLang = c.Bool("detect-lang")

	if opts.Filename == "" {
		return cli.Exit("missing required argument: path to the MediaWiki XML dump", 1)
	}

	pandoc, err := render.NewPandoc()
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	logger.Info("using pandoc", "version", pandoc.Version())

	var rep *report.DB
	if opts.ReportDB != "" {
		rep, err = report.Open(opts.ReportDB)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		defer rep.Close()
	}

	var detector *langid.Detector
	if opts.DetectLang && opts.AddMeta {
		detector = langid.New()
	}

	runner := &Runner{
		Options:      opts,
		Converter:    pandoc,
		LegacyURLFix: pandoc.NeedsLegacyURLFix(),
		Log:          logger,
		Report:       rep,
		Detector:     detector,
	}

	converted, err := runner.Run()
	if err != nil {
		logger.Error("conversion failed", "error", err)
		return cli.Exit("", 1)
	}

	fmt.Printf("%d files converted\n", converted)
	return nil
}
