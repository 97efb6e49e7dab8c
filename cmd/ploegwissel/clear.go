package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xelth-com/ploegwissel/internal/session"
	"github.com/xelth-com/ploegwissel/internal/storage"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the stored checklist, company name and logo",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			return fmt.Errorf("this deletes all stored data, confirm with --yes")
		}
		a, err := openApp(cmd.Context(), cfg, storage.Options{}, session.Options{})
		if err != nil {
			return err
		}
		defer a.Close()

		a.session.HardClear(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), "All stored data deleted")
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Confirm deletion")
}
