// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pdiddy/procurement-parser/internal/extract"
	"github.com/pdiddy/procurement-parser/internal/output"
	"github.com/pdiddy/procurement-parser/internal/pipeline"
	"github.com/pdiddy/procurement-parser/internal/reader"
	"github.com/pdiddy/procurement-parser/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse <pdf>",
	Short: "Extract price ceiling, procurement method and dates from a PDF",
	Long: `Parse reads one procurement PDF and reports every НМЦК figure found
(normalized to roubles), the procurement method (single-source,
electronic-auction, request-for-quotations or undetermined), the notice
placement date and the first 500 characters of the document text.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringP("output", "o", "", "write the result to this file instead of stdout")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	opener, err := reader.NewOpener(ctx, cfg.Reader)
	if err != nil {
		return err
	}
	p := pipeline.New(opener, slog.Default())

	result, doc, err := p.ParseDocument(ctx, args[0])
	if err != nil {
		return err
	}

	if cfg.Output.Format == types.OutputText {
		return writeResult(cmd, output.Summary{
			Result:   result,
			AllDates: extract.FindDates(doc.Text),
			Pages:    doc.Pages,
			Tables:   len(doc.Tables),
		})
	}
	return writeResult(cmd, result)
}
