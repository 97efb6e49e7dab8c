package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/xelth-com/ploegwissel/internal/models"
	"github.com/xelth-com/ploegwissel/internal/scoring"
	"github.com/xelth-com/ploegwissel/internal/services/export"
	"github.com/xelth-com/ploegwissel/internal/session"
	"github.com/xelth-com/ploegwissel/internal/storage"
)

var statusFile string

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	openStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the completion of the current checklist",
	Long:  "Show which required items of the current checklist (or of an exported file with --file) are filled in",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVarP(&statusFile, "file", "f", "", "Exported checklist JSON to score instead of the stored one")
}

func runStatus(cmd *cobra.Command, args []string) error {
	var (
		doc     models.Document
		company string
	)
	if statusFile != "" {
		data, err := os.ReadFile(statusFile)
		if err != nil {
			return err
		}
		env, err := export.Parse(data)
		if err != nil {
			return err
		}
		doc, company = env.Data, env.CompanyName
	} else {
		a, err := openApp(cmd.Context(), cfg, storage.Options{}, session.Options{})
		if err != nil {
			return err
		}
		defer a.Close()
		st := a.session.Snapshot()
		doc, company = st.Document, st.CompanyName
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderStatus(doc, company))
	return nil
}

func renderStatus(doc models.Document, company string) string {
	score := scoring.Score(doc)

	var b strings.Builder
	b.WriteString(titleStyle.Render(company) + "\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s  %s  %s", doc.Meta.Date, doc.Meta.Time, doc.Meta.Shift)) + "\n\n")
	for _, ind := range scoring.Indicators(doc) {
		if ind.Done {
			b.WriteString(doneStyle.Render("✔ "+ind.Name) + "\n")
		} else {
			b.WriteString(openStyle.Render("✘ "+ind.Name) + "\n")
		}
	}
	b.WriteString(fmt.Sprintf("\nVoortgang: %d/%d (%d%%)", score.Done, score.Total, score.Pct))
	return boxStyle.Render(b.String())
}
