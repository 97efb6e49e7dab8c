package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xelth-com/ploegwissel/internal/session"
	"github.com/xelth-com/ploegwissel/internal/storage"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new checklist (company name and logo are kept)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cfg, storage.Options{}, session.Options{})
		if err != nil {
			return err
		}
		defer a.Close()

		st := a.session.Reset()
		fmt.Fprintf(cmd.OutOrStdout(), "New checklist %s %s %s\n",
			st.Document.Meta.Date, st.Document.Meta.Time, st.Document.Meta.Shift)
		return nil
	},
}
