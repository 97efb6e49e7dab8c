package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xelth-com/ploegwissel/internal/services/printer"
	"github.com/xelth-com/ploegwissel/internal/session"
	"github.com/xelth-com/ploegwissel/internal/storage"
)

var printSink string

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Render the report of the current checklist",
	Long:  "Render the report of the current checklist through a sink: browser (headless Chromium PDF), file (HTML) or pdf (native PDF)",
	RunE:  runPrint,
}

func init() {
	printCmd.Flags().StringVarP(&printSink, "sink", "s", "", "Report sink: browser, file or pdf (default from REPORT_SINK)")
}

func runPrint(cmd *cobra.Command, args []string) error {
	kind := cfg.ReportSink
	if printSink != "" {
		kind = printSink
	}
	sink, err := printer.NewSink(kind, cfg.ReportDir, cfg.ChromeBin)
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context(), cfg, storage.Options{}, session.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	path, err := a.session.Print(cmd.Context(), sink)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
