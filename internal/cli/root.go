package cli

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/driftchat/driftchat/internal/ui"
	"github.com/driftchat/driftchat/internal/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "driftchat",
	Short:   "Anonymous one-to-one chat with strangers from your terminal",
	Long: `driftchat pairs you with a random stranger for an ephemeral text
conversation. Declare a few interests and the server surfaces what you have
in common. Skip to the next person anytime; nothing is stored server-side,
and your past conversations stay on your machine only.`,
	Version: version.Version,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		os.Exit(0)
	}()

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}
