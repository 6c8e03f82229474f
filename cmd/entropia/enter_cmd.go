package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ckacy01/entropia/dataset/inputsample"
	"github.com/spf13/cobra"
)

type enterCmdConfig struct {
	*rootCmdConfig
	outputFlags
	metadataInput string
	classFeature  string
	output        string
	table         string
	instances     int
	analyze       bool
	store         bool
}

func enterCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &enterCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "enter",
		Short: "Enter a dataset by hand",
		Long: `Enter the values of every instance of a dataset from STDIN, attribute by attribute,
answering with one of the labels offered for each.`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			cfg, err := config.loadConfig()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if !cmd.Flags().Changed("instances") {
				config.instances, err = cfg.InstanceCount()
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(1)
				}
			}
			err = cfg.CheckInstanceCount(config.instances)
			if err == nil && config.store {
				err = sharedSessions(cfg)
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			schema, err := config.schema(config.metadataInput, config.classFeature, cfg)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			l, err := inputsample.Read(ctx, os.Stdin, schema, config.instances, inputsample.NewPrompter(os.Stderr))
			if err != nil {
				fmt.Fprintf(os.Stderr, "\nentering dataset: %v\n", err)
				os.Exit(3)
			}
			if config.store {
				err = config.storeSession(ctx, cfg, l)
				if err != nil {
					fmt.Fprintf(os.Stderr, "storing session: %v\n", err)
					os.Exit(4)
				}
			}
			if config.output != "" || !config.analyze {
				err = config.writeDataset(ctx, config.output, config.table, l)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(5)
				}
			}
			if config.analyze {
				parallelism, _ := cfg.ParallelismLimit()
				err = config.printAnalysis(ctx, l, parallelism, config.outputFlags)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(6)
				}
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the attributes of the dataset (required)")
	cmd.PersistentFlags().StringVarP(&(config.classFeature), "class-feature", "c", "", "name of the class column (defaults to the one on the metadata or the configuration)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL DB connection URL to write the dataset to (defaults to STDOUT, as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.table), "table", "t", defaultTable, "table to write the dataset to when the output is a database")
	cmd.PersistentFlags().IntVarP(&(config.instances), "instances", "n", 10, "number of instances to enter")
	cmd.PersistentFlags().BoolVar(&(config.analyze), "analyze", false, "print the analysis of the entered dataset")
	cmd.PersistentFlags().BoolVar(&(config.store), "store", false, "keep the dataset under a new session and print its id on STDERR")
	cmd.PersistentFlags().BoolVar(&(config.json), "json", false, "print the analysis as JSON")
	cmd.PersistentFlags().BoolVar(&(config.noColor), "no-color", false, "disable colors on the report")
	cmd.PersistentFlags().BoolVar(&(config.breakdown), "breakdown", true, "print the per-value breakdown of every attribute")
	return cmd
}
