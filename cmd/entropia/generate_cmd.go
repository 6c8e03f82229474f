package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ckacy01/entropia/dataset/synthetic"
	"github.com/spf13/cobra"
)

type generateCmdConfig struct {
	*rootCmdConfig
	outputFlags
	metadataInput string
	classFeature  string
	output        string
	table         string
	instances     int
	seed          int64
	analyze       bool
	store         bool
	parallelism   int
}

func generateCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &generateCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random dataset",
		Long: `Generate a random labeled dataset conforming to the attributes on a metadata file,
with class labels drawn independently of the attributes.`,
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
			if !cmd.Flags().Changed("seed") {
				config.seed = cfg.Seed
				if config.seed == 0 {
					config.seed = time.Now().UnixNano()
				}
			}
			if !cmd.Flags().Changed("parallelism") {
				config.parallelism, _ = cfg.ParallelismLimit()
			}
			schema, err := config.schema(config.metadataInput, config.classFeature, cfg)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			config.Logf("Generating %d instances with seed %d...", config.instances, config.seed)
			l, err := synthetic.Generate(config.instances, schema.Attributes, schema.Class.Name(), config.seed)
			if err != nil {
				fmt.Fprintf(os.Stderr, "generating dataset: %v\n", err)
				os.Exit(3)
			}
			if config.store {
				err = config.storeSession(ctx, cfg, l)
				if err != nil {
					fmt.Fprintf(os.Stderr, "storing session: %v\n", err)
					os.Exit(4)
				}
			}
			if config.analyze {
				if config.output != "" {
					err = config.writeDataset(ctx, config.output, config.table, l)
					if err != nil {
						fmt.Fprintln(os.Stderr, err)
						os.Exit(5)
					}
				}
				err = config.printAnalysis(ctx, l, config.parallelism, config.outputFlags)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(6)
				}
				return
			}
			err = config.writeDataset(ctx, config.output, config.table, l)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the attributes of the dataset (required)")
	cmd.PersistentFlags().StringVarP(&(config.classFeature), "class-feature", "c", "", "name of the class column (defaults to the one on the metadata or the configuration)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL DB connection URL to write the dataset to (defaults to STDOUT, as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.table), "table", "t", defaultTable, "table to write the dataset to when the output is a database")
	cmd.PersistentFlags().IntVarP(&(config.instances), "instances", "n", 10, "number of instances to generate")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", 0, "seed for the random generator, the same seed generates the same dataset (defaults to the configured one or the current time)")
	cmd.PersistentFlags().BoolVar(&(config.analyze), "analyze", false, "print the analysis of the generated dataset instead of the dataset, which is still written if an output is given")
	cmd.PersistentFlags().BoolVar(&(config.store), "store", false, "keep the dataset under a new session and print its id on STDERR")
	cmd.PersistentFlags().IntVarP(&(config.parallelism), "parallelism", "p", 0, "maximum number of attribute gains computed at the same time (defaults to one per CPU)")
	cmd.PersistentFlags().BoolVar(&(config.json), "json", false, "print the analysis as JSON")
	cmd.PersistentFlags().BoolVar(&(config.noColor), "no-color", false, "disable colors on the report")
	cmd.PersistentFlags().BoolVar(&(config.breakdown), "breakdown", true, "print the per-value breakdown of every attribute")
	return cmd
}
