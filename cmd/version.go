package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vela-sec/vela/internal/message"
	"github.com/vela-sec/vela/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Vela",
	Long:  `All software has versions. This is Vela's`,
	Run: func(cmd *cobra.Command, args []string) {
		message.Info("%s", version.FullVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
