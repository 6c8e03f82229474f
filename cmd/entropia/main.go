package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "entropia",
		Short: "entropia is a tool to select the root attribute of a decision tree",
		Long: `A tool to compute the class entropy of labeled datasets and the information gain
of each of their attributes, and select the root attribute of an ID3 decision tree`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log progress on STDERR")
	rootCmd.PersistentFlags().StringVar(&(config.configPath), "config", "", "path to an entropia.toml file with defaults (defaults to the first entropia.toml found from the working directory up)")
	rootCmd.AddCommand(
		versionCmd(),
		analyzeCmd(config),
		generateCmd(config),
		enterCmd(config),
		templateCmd(config),
		serveCmd(config),
	)
	return rootCmd
}
