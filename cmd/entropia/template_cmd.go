package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ckacy01/entropia/dataset/csv"
	"github.com/spf13/cobra"
)

type templateCmdConfig struct {
	*rootCmdConfig
	metadataInput string
	classFeature  string
	output        string
}

func templateCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &templateCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write an example CSV file for a metadata file",
		Long: `Write a three-row CSV file showing the columns and values expected on datasets
described by a metadata file.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.loadConfig()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			schema, err := config.schema(config.metadataInput, config.classFeature, cfg)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			l, err := csv.Template(schema)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			err = csv.WriteToFilePath(context.Background(), config.output, l)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the attributes of the dataset (required)")
	cmd.PersistentFlags().StringVarP(&(config.classFeature), "class-feature", "c", "", "name of the class column (defaults to the one on the metadata or the configuration)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to the CSV file to write (defaults to STDOUT)")
	return cmd
}
