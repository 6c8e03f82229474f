package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ckacy01/entropia/dataset"
	"github.com/ckacy01/entropia/internal/config"
	"github.com/spf13/cobra"
)

type analyzeCmdConfig struct {
	*rootCmdConfig
	outputFlags
	dataInput     string
	metadataInput string
	classFeature  string
	table         string
	sessionID     string
	store         bool
	parallelism   int
}

func analyzeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &analyzeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute the entropy and information gains of a dataset",
		Long: `Compute the class entropy of a labeled dataset and the information gain of each
of its attributes, and select the attribute with maximum gain as root.

Without metadata, every column of the input but the class one is analyzed as a
discrete attribute taking the values found on it, in the order of the columns.`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			cfg, err := config.loadConfig()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if !cmd.Flags().Changed("parallelism") {
				config.parallelism, _ = cfg.ParallelismLimit()
			}
			err = config.Validate()
			if err == nil && (config.store || config.sessionID != "") {
				err = sharedSessions(cfg)
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			l, err := config.dataset(ctx, cfg)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			if config.store {
				err = config.storeSession(ctx, cfg, l)
				if err != nil {
					fmt.Fprintf(os.Stderr, "storing session: %v\n", err)
					os.Exit(3)
				}
			}
			err = config.printAnalysis(ctx, l, config.parallelism, config.outputFlags)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL DB connection URL with the dataset to analyze (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the attributes of the dataset (without it every column but the class is taken as a discrete attribute)")
	cmd.PersistentFlags().StringVarP(&(config.classFeature), "class-feature", "c", "", "name of the class column (defaults to the one on the metadata or the configuration)")
	cmd.PersistentFlags().StringVarP(&(config.table), "table", "t", defaultTable, "table holding the dataset when the input is a database")
	cmd.PersistentFlags().StringVarP(&(config.sessionID), "session", "s", "", "id of a stored session whose dataset should be analyzed instead of the input")
	cmd.PersistentFlags().BoolVar(&(config.store), "store", false, "keep the dataset under a new session and print its id on STDERR")
	cmd.PersistentFlags().IntVarP(&(config.parallelism), "parallelism", "p", 0, "maximum number of attribute gains computed at the same time (defaults to one per CPU)")
	cmd.PersistentFlags().BoolVar(&(config.json), "json", false, "print the analysis as JSON")
	cmd.PersistentFlags().BoolVar(&(config.noColor), "no-color", false, "disable colors on the report")
	cmd.PersistentFlags().BoolVar(&(config.breakdown), "breakdown", true, "print the per-value breakdown of every attribute")
	return cmd
}

func (acc *analyzeCmdConfig) Validate() error {
	if acc.sessionID != "" && acc.dataInput != "" {
		return fmt.Errorf("cannot set both input and session flags at the same time")
	}
	if acc.parallelism < 0 {
		return fmt.Errorf("parallelism cannot be negative")
	}
	return nil
}

func (acc *analyzeCmdConfig) dataset(ctx context.Context, cfg *config.Config) (*dataset.Labeled, error) {
	if acc.sessionID == "" {
		if acc.metadataInput == "" && cfg.Metadata == "" {
			return acc.inferDataset(ctx, acc.dataInput, acc.table, acc.classFeature, cfg)
		}
		schema, err := acc.schema(acc.metadataInput, acc.classFeature, cfg)
		if err != nil {
			return nil, err
		}
		return acc.readDataset(ctx, acc.dataInput, acc.table, schema)
	}
	store, err := acc.sharedSessionStore(cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close(ctx)
	acc.Logf("Retrieving session %s...", acc.sessionID)
	l, err := store.Get(ctx, acc.sessionID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("session %s not found", acc.sessionID)
	}
	return l, nil
}
