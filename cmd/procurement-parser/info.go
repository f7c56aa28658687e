// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/procurement-parser/internal/reader"
)

var infoCmd = &cobra.Command{
	Use:   "info <pdf>",
	Short: "Check a PDF's structure and count its pages",
	Long: `Info validates the PDF structure in relaxed mode and reports the page
count. A malformed file is reported, not treated as an error; only a file that
cannot be opened makes the command fail.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

// infoView gives reader.Info a text rendering.
type infoView reader.Info

func (v infoView) WriteText(w io.Writer) error {
	status := "valid"
	if !v.Valid {
		status = "invalid: " + v.Problem
	}
	_, err := fmt.Fprintf(w, "%s: %d pages, %s\n", v.Path, v.Pages, status)
	return err
}

func runInfo(cmd *cobra.Command, args []string) error {
	info, err := reader.Inspect(args[0])
	if err != nil {
		return err
	}
	return writeResult(cmd, infoView(info))
}
