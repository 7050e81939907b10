package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/driftchat/driftchat/internal/profile"
	"github.com/driftchat/driftchat/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h"},
	Short:   "List past conversations kept on this machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listHistory()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one saved conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showHistory(args[0])
	},
}

func listHistory() error {
	store, err := profile.NewStore()
	if err != nil {
		return err
	}

	transcripts, err := store.ListTranscripts()
	if err != nil {
		return err
	}

	if len(transcripts) == 0 {
		ui.PrintInfo("No saved conversations yet.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "When", "Partner", "Mutual interests", "Lines"})

	for _, tr := range transcripts {
		t.AppendRow(table.Row{
			tr.ID,
			tr.StartedAt.Format("2006-01-02 15:04"),
			tr.PartnerName,
			strings.Join(tr.MutualInterests, ", "),
			len(tr.Lines),
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}

func showHistory(id string) error {
	store, err := profile.NewStore()
	if err != nil {
		return err
	}

	tr, err := store.LoadTranscript(id)
	if err != nil {
		return err
	}

	fmt.Println(ui.TitleStyle.Render(fmt.Sprintf("%s Chat with %s (%s)",
		ui.IconHistory, tr.PartnerName, tr.StartedAt.Format("2006-01-02 15:04"))))

	for _, line := range tr.Lines {
		style := ui.PartnerStyle
		if line.Own {
			style = ui.OwnStyle
		}
		fmt.Printf("%s %s %s\n",
			ui.MutedStyle.Render(line.At.Format("15:04")),
			style.Render(line.Sender+":"),
			line.Text)
	}

	return nil
}

func init() {
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
