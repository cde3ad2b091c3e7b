package main

import (
	"encoding/json"
	"os"

	"github.com/rcardoso/faturex"
	"github.com/rcardoso/faturex/goquery"
	faturexslog "github.com/rcardoso/faturex/slog"
	"golang.org/x/sync/errgroup"
)

// ExtractCmd extracts records from local HTML files and writes the
// results to stdout as JSON, one entry per file in argument order.
type ExtractCmd struct {
	Layout      string   `default:"billing" enum:"billing,order" help:"Document layout."`
	Concurrency int      `default:"3" help:"Files processed in parallel."`
	Files       []string `arg:"" type:"existingfile" help:"HTML files to process."`
}

// fileResult pairs one input file with its extraction outcome.
type fileResult struct {
	File string `json:"file"`
	*faturex.ExtractionResult
}

func (c *ExtractCmd) Run(deps *Dependencies) error {
	layout, err := layoutByKind(c.Layout)
	if err != nil {
		return err
	}

	extractor := faturexslog.NewLoggingExtractor(goquery.NewExtractor(), deps.Logger)

	results := make([]fileResult, len(c.Files))

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(c.Concurrency)
	for i, file := range c.Files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			result, err := extractor.Extract(string(data), layout)
			if err != nil {
				return err
			}
			if result.Records == nil {
				result.Records = []faturex.Record{}
			}
			results[i] = fileResult{File: file, ExtractionResult: result}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
