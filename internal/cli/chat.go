package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/driftchat/driftchat/internal/chat"
	"github.com/driftchat/driftchat/internal/profile"
	"github.com/driftchat/driftchat/internal/session"
	"github.com/driftchat/driftchat/internal/ui"
)

var (
	flagServer    string
	flagName      string
	flagInterests []string
)

var chatCmd = &cobra.Command{
	Use:     "chat",
	Aliases: []string{"c"},
	Short:   "Find a stranger and start chatting",
	Long: `Connect to a driftchat server and get paired with a random stranger.

Examples:
  driftchat chat
  driftchat chat --interests music,hiking
  driftchat chat --name Wanderer --server ws://chat.example.com/ws`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func runChat() error {
	store, err := profile.NewStore()
	if err != nil {
		return err
	}

	prof, err := store.LoadProfile()
	if err != nil {
		return err
	}

	// Flags override the saved profile, and the overrides stick for next time.
	if flagName != "" {
		prof.Name = flagName
	}
	if len(flagInterests) > 0 {
		prof.Interests = chat.NormalizeInterests(flagInterests)
	}
	if err := store.SaveProfile(prof); err != nil {
		return err
	}

	serverURL := resolveServerURL()

	stopSpinner := ui.RunConnectionSpinner("Connecting to " + serverURL + "...")
	sess, err := session.Dial(serverURL)
	stopSpinner()
	if err != nil {
		return err
	}

	model := ui.NewChatModel(sess, serverURL, prof.Name, prof.Interests, store)

	// ReportFocus drives the away/back presence signals.
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat ui: %w", err)
	}

	if err := model.Err(); err != nil {
		return err
	}

	ui.PrintInfo("Bye. Your transcripts are in `driftchat history`.")
	return nil
}

// resolveServerURL picks the server: flag > env > localhost default.
func resolveServerURL() string {
	if flagServer != "" {
		return flagServer
	}
	if v := os.Getenv("DRIFTCHAT_SERVER"); v != "" {
		return v
	}
	return "ws://localhost:8080/ws"
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVarP(&flagServer, "server", "s", "", "Server websocket URL")
	chatCmd.Flags().StringVarP(&flagName, "name", "n", "", "Display name shown to partners")
	chatCmd.Flags().StringSliceVarP(&flagInterests, "interests", "i", nil, "Interest tags used for matching (max 5)")
}
