package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "solsema",
	Short: "Semantic analysis and gas estimation for Solidity-like contracts",
	Long:  `solsema type-checks contract ASTs and estimates worst-case gas cost for assembly item sequences.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the solsema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(version)
		return nil
	},
}

func main() {
	rootCmd.Version = version
	rootCmd.AddCommand(gasCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
