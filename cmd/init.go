package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vk4tech/passbot/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize passbot configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure gateway and mail credentials and generates a .passbot.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
