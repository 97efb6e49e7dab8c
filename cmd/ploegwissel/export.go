package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xelth-com/ploegwissel/internal/session"
	"github.com/xelth-com/ploegwissel/internal/storage"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the current checklist as JSON archive file",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", ".", "Output directory")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context(), cfg, storage.Options{}, session.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	data, name, err := a.session.Export()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(exportDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
