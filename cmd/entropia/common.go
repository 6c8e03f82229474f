package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ckacy01/entropia"
	"github.com/ckacy01/entropia/dataset"
	"github.com/ckacy01/entropia/dataset/csv"
	datasetjson "github.com/ckacy01/entropia/dataset/json"
	"github.com/ckacy01/entropia/dataset/sqldataset"
	"github.com/ckacy01/entropia/feature"
	"github.com/ckacy01/entropia/feature/yaml"
	"github.com/ckacy01/entropia/internal/config"
	"github.com/ckacy01/entropia/internal/report"
	"github.com/ckacy01/entropia/session"
	"github.com/ckacy01/entropia/session/redisstore"
	"github.com/fatih/color"
	"gopkg.in/redis.v5"
)

// defaultTable is the table read from or written to on SQL databases.
const defaultTable = "dataset"

type rootCmdConfig struct {
	verbose    bool
	configPath string
}

func (rcc *rootCmdConfig) Logf(format string, a ...interface{}) {
	logger(rcc.verbose).Logf(format, a...)
}

func (rcc *rootCmdConfig) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(rcc.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

/*
schema reads the attributes declared on the metadata file and returns a
schema with them and a class column named after the first non-empty of
the class flag, the class declared on the metadata and the configured
default.
*/
func (rcc *rootCmdConfig) schema(metadataPath, classFlag string, cfg *config.Config) (*dataset.Schema, error) {
	if metadataPath == "" {
		metadataPath = cfg.Metadata
	}
	if metadataPath == "" {
		return nil, fmt.Errorf("required metadata flag was not set")
	}
	rcc.Logf("Reading metadata from %s...", metadataPath)
	md, err := yaml.ReadMetadataFromFile(metadataPath)
	if err != nil {
		return nil, err
	}
	className := classFlag
	if className == "" {
		className = md.Class
	}
	if className == "" {
		className = cfg.Class
	}
	class, err := feature.NewClassFeature(className)
	if err != nil {
		return nil, err
	}
	return dataset.NewSchema(class, md.Features)
}

/*
readDataset reads a labeled dataset conforming to the schema from the
input: a CSV file, STDIN if input is "", or a table of a database if input
is a database URI.
*/
func (rcc *rootCmdConfig) readDataset(ctx context.Context, input, table string, schema *dataset.Schema) (*dataset.Labeled, error) {
	var l *dataset.Labeled
	var extra []string
	var err error
	switch {
	case input == "":
		rcc.Logf("Reading dataset from STDIN...")
		l, extra, err = csv.Read(ctx, os.Stdin, schema)
	case sqldataset.IsDatabaseURI(input):
		rcc.Logf("Reading dataset from table %s of %s...", table, input)
		l, extra, err = readTable(ctx, input, table, schema)
	default:
		rcc.Logf("Reading dataset from %s...", input)
		l, extra, err = csv.ReadFromFilePath(ctx, input, schema)
	}
	if err != nil {
		return nil, err
	}
	if len(extra) > 0 {
		fmt.Fprintf(os.Stderr, "warning: ignoring columns %s\n", strings.Join(extra, ", "))
	}
	return l, nil
}

/*
inferDataset reads a labeled dataset from the input as readDataset does,
taking its class column from the class flag or the configured default and
every other column as a discrete attribute.
*/
func (rcc *rootCmdConfig) inferDataset(ctx context.Context, input, table, classFlag string, cfg *config.Config) (*dataset.Labeled, error) {
	className := classFlag
	if className == "" {
		className = cfg.Class
	}
	switch {
	case input == "":
		rcc.Logf("Reading dataset with class %s from STDIN...", className)
		return csv.ReadInferring(ctx, os.Stdin, className)
	case sqldataset.IsDatabaseURI(input):
		rcc.Logf("Reading dataset with class %s from table %s of %s...", className, table, input)
		db, err := sqldataset.Open(ctx, input)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return sqldataset.ReadInferring(ctx, db, table, className)
	}
	rcc.Logf("Reading dataset with class %s from %s...", className, input)
	return csv.ReadInferringFromFilePath(ctx, input, className)
}

func readTable(ctx context.Context, uri, table string, schema *dataset.Schema) (*dataset.Labeled, []string, error) {
	db, err := sqldataset.Open(ctx, uri)
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()
	return sqldataset.Read(ctx, db, table, schema)
}

/*
writeDataset writes the labeled dataset to the output: a CSV file, STDOUT
if output is "", or a table of a database if output is a database URI.
*/
func (rcc *rootCmdConfig) writeDataset(ctx context.Context, output, table string, l *dataset.Labeled) error {
	if sqldataset.IsDatabaseURI(output) {
		rcc.Logf("Writing dataset on table %s of %s...", table, output)
		db, err := sqldataset.Open(ctx, output)
		if err != nil {
			return err
		}
		defer db.Close()
		return sqldataset.Write(ctx, db, table, l)
	}
	if output != "" {
		rcc.Logf("Writing dataset on %s...", output)
	}
	return csv.WriteToFilePath(ctx, output, l)
}

// sessionStore returns the session store configured.
func (rcc *rootCmdConfig) sessionStore(cfg *config.Config) (session.Store, error) {
	if cfg.Session.Backend != config.BackendRedis {
		rcc.Logf("Keeping sessions in memory")
		return session.NewMemoryStore(), nil
	}
	db, err := cfg.RedisDB()
	if err != nil {
		return nil, err
	}
	ttl, err := cfg.SessionTTL()
	if err != nil {
		return nil, err
	}
	rcc.Logf("Keeping sessions on redis at %s", cfg.Session.RedisAddr)
	rc := redis.NewClient(&redis.Options{Addr: cfg.Session.RedisAddr, DB: db})
	if err = rc.Ping().Err(); err != nil {
		rc.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Session.RedisAddr, err)
	}
	var encdec session.EncodeDecoder = session.MsgpackEncodeDecoder()
	if cfg.Session.Codec == config.CodecJSON {
		encdec = datasetjson.New()
	}
	return redisstore.New(rc, cfg.Session.Prefix, ttl, encdec), nil
}

/*
sharedSessions returns an error unless sessions are kept where later runs
of the tool can find them. Memory sessions only last as long as serve.
*/
func sharedSessions(cfg *config.Config) error {
	if cfg.Session.Backend != config.BackendRedis {
		return fmt.Errorf("sessions kept on the %s backend do not outlive this command, set session.backend to %q on %s", cfg.Session.Backend, config.BackendRedis, config.FileName)
	}
	return nil
}

// sharedSessionStore returns the session store configured if sharedSessions allows it.
func (rcc *rootCmdConfig) sharedSessionStore(cfg *config.Config) (session.Store, error) {
	if err := sharedSessions(cfg); err != nil {
		return nil, err
	}
	return rcc.sessionStore(cfg)
}

// storeSession keeps the dataset under a new session and prints its id.
func (rcc *rootCmdConfig) storeSession(ctx context.Context, cfg *config.Config, l *dataset.Labeled) error {
	store, err := rcc.sharedSessionStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close(ctx)
	id, err := store.Create(ctx, l)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "session: %s\n", id)
	return nil
}

type outputFlags struct {
	json      bool
	noColor   bool
	breakdown bool
}

// printAnalysis analyzes the dataset and prints the report on STDOUT.
func (rcc *rootCmdConfig) printAnalysis(ctx context.Context, l *dataset.Labeled, parallelism int, of outputFlags) error {
	count, err := l.Dataset.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting samples: %w", err)
	}
	rcc.Logf("Analyzing %d samples with %d attributes to predict %s...", count, len(l.Schema.Attributes), l.Schema.Class.Name())
	start := time.Now()
	analysis, err := entropia.Analyze(ctx, l, entropia.Options{Parallelism: parallelism})
	if err != nil {
		return fmt.Errorf("analyzing dataset: %w", err)
	}
	rcc.Logf("Done in %v", time.Since(start))
	if of.json {
		return report.JSON(os.Stdout, analysis)
	}
	return report.NewPrinter(os.Stdout, report.Options{Color: !of.noColor && !color.NoColor, Breakdown: of.breakdown}).Print(analysis)
}
