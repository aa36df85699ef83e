package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "passbot",
	Short: "WhatsApp entry-pass delivery bot for exhibition visitors",
	Long: `Passbot receives inbound WhatsApp webhook events, looks up the sender
in the visitor directory and delivers their entry pass back over WhatsApp
and email. When one phone number maps to several registered emails it asks
the visitor to pick one before delivering.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".passbot.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
