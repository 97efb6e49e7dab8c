package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/xelth-com/ploegwissel/internal/buildinfo"
	"github.com/xelth-com/ploegwissel/internal/config"
)

var (
	cfg       *config.Config
	useMemory bool
)

var rootCmd = &cobra.Command{
	Use:   "ploegwissel",
	Short: "Shift handover checklist for the production line",
	Long: `Ploegwissel keeps the shift handover checklist of this station: it stores
the checklist being filled in, scores its completion and produces the JSON
archive and the printable report.`,
	Version:       buildinfo.Version(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if useMemory {
			cfg.StoreDriver = config.DriverMemory
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&useMemory, "memory", false, "Keep everything in memory (nothing is stored)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(logoCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(clearCmd)
}
