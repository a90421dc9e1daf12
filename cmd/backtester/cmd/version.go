package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("backtester version %s\n", version)
		fmt.Println("A daily-bar trading strategy backtester and performance analyzer")
		fmt.Println("https://github.com/rustyeddy/backtester")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
