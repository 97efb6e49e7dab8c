package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xelth-com/ploegwissel/internal/models"
	"github.com/xelth-com/ploegwissel/internal/session"
	"github.com/xelth-com/ploegwissel/internal/storage"
)

var logoCmd = &cobra.Command{
	Use:   "logo FILE",
	Short: "Set the company logo printed on the report (PNG, JPG, WEBP or SVG)",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogo,
}

func runLogo(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	mediaType, _, _ := mime.ParseMediaType(mime.TypeByExtension(filepath.Ext(args[0])))
	logo, err := models.LogoFromFile(mediaType, data)
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context(), cfg, storage.Options{}, session.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.session.UploadLogo(cmd.Context(), logo.DataURL()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logo set (%s, %d bytes)\n", logo.MIME, len(logo.Data))
	return nil
}
