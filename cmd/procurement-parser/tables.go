// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pdiddy/procurement-parser/internal/output"
	"github.com/pdiddy/procurement-parser/internal/pipeline"
	"github.com/pdiddy/procurement-parser/internal/reader"
)

var tablesCmd = &cobra.Command{
	Use:   "tables <pdf>",
	Short: "Dump the tables found in a PDF",
	Long: `Tables reads one PDF and writes every table it finds, in page order.
Each table is a list of rows and each row a list of cells; empty cells are
null. Only the native backend detects tables.`,
	Args: cobra.ExactArgs(1),
	RunE: runTables,
}

func init() {
	tablesCmd.Flags().StringP("output", "o", "", "write the tables to this file instead of stdout")

	rootCmd.AddCommand(tablesCmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	opener, err := reader.NewOpener(ctx, cfg.Reader)
	if err != nil {
		return err
	}
	doc, err := pipeline.New(opener, slog.Default()).Read(ctx, args[0])
	if err != nil {
		return err
	}
	slog.Debug("tables extracted", "file", args[0], "tables", len(doc.Tables))

	return writeResult(cmd, output.Tables(doc.Tables))
}
