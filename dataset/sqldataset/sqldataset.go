/*
Package sqldataset reads labeled datasets from tables of SQL databases and
writes them back to them.

Databases are given as URIs: postgres:// and postgresql:// URLs are opened
with the PostgreSQL driver, and paths ending in .db, .sqlite or .sqlite3
are opened as SQLite3 database files.

Tables hold one column per column of the schema, named after it. Any other
column is ignored when reading. Cells are read as text and parsed by the
feature of their column, so numeric cells of numeric-binned attributes are
binned.
*/
package sqldataset

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ckacy01/entropia/dataset"
	"github.com/ckacy01/entropia/feature"
	"github.com/jmoiron/sqlx"

	// Import of postgres driver
	_ "github.com/lib/pq"
	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

const (
	postgresDriver = "postgres"
	sqlite3Driver  = "sqlite3"
	/*
		MaxSampleInsertionsPerStatement is the maximum number
		of samples that are added with a single insert command
		by Write. Writing more will result in making more
		insertion commands
	*/
	MaxSampleInsertionsPerStatement = 10
)

/*
IsDatabaseURI returns whether the given input location designates a
database this package can open rather than a file of another format.
*/
func IsDatabaseURI(uri string) bool {
	_, _, err := DriverFor(uri)
	return err == nil
}

/*
DriverFor takes a database URI and returns the name of the database/sql
driver that opens it and the data source name to give the driver, or an
error wrapping feature.ErrInvalidArgument if no driver can open it.
*/
func DriverFor(uri string) (string, string, error) {
	lower := strings.ToLower(uri)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return postgresDriver, uri, nil
	}
	for _, suffix := range []string{".db", ".sqlite", ".sqlite3"} {
		if strings.HasSuffix(lower, suffix) {
			return sqlite3Driver, uri, nil
		}
	}
	return "", "", fmt.Errorf("no database driver for %q: %w", uri, feature.ErrInvalidArgument)
}

/*
Open takes a context and a database URI and returns a connection to the
database it designates, or an error if it cannot be reached.
*/
func Open(ctx context.Context, uri string) (*sqlx.DB, error) {
	driver, dsn, err := DriverFor(uri)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s database: %w", driver, err)
	}
	return db, nil
}

/*
Read takes a context, a database connection, the name of a table and a
schema and returns a labeled dataset with the rows of the table, together
with the names of the table columns that do not belong to the schema and
were ignored. It returns an error wrapping feature.ErrSchemaMismatch if the
table lacks a column of the schema or a cell is not a valid value for its
column.
*/
func Read(ctx context.Context, db *sqlx.DB, table string, schema *dataset.Schema) (*dataset.Labeled, []string, error) {
	return read(ctx, db, table, func([]string) (*dataset.Schema, error) {
		return schema, nil
	})
}

/*
ReadInferring takes a context, a database connection, the name of a table
and the name of its class column and returns a labeled dataset with the rows
of the table, taking every other column as an open discrete attribute in
column order. See dataset.InferSchema.
*/
func ReadInferring(ctx context.Context, db *sqlx.DB, table, className string) (*dataset.Labeled, error) {
	l, _, err := read(ctx, db, table, func(columns []string) (*dataset.Schema, error) {
		return dataset.InferSchema(columns, className)
	})
	return l, err
}

func read(ctx context.Context, db *sqlx.DB, table string, schemaFor func([]string) (*dataset.Schema, error)) (*dataset.Labeled, []string, error) {
	qtable, err := QuoteIdentifier(table)
	if err != nil {
		return nil, nil, err
	}
	rows, err := db.QueryxContext(ctx, fmt.Sprintf("SELECT * FROM %s", qtable))
	if err != nil {
		return nil, nil, fmt.Errorf("querying table %s: %w", table, err)
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("reading columns of table %s: %w", table, err)
	}
	schema, err := schemaFor(columns)
	if err != nil {
		return nil, nil, fmt.Errorf("table %s: %w", table, err)
	}
	projection, extra, err := schema.Match(columns)
	if err != nil {
		return nil, nil, fmt.Errorf("table %s: %w", table, err)
	}
	var samples []dataset.Sample
	for n := 1; rows.Next(); n++ {
		cells, err := rows.SliceScan()
		if err != nil {
			return nil, nil, fmt.Errorf("scanning row %d of table %s: %w", n, table, err)
		}
		record := make([]string, len(cells))
		for i, c := range cells {
			record[i] = CellString(c)
		}
		sample, err := schema.ParseRow(record, projection)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d of table %s: %w", n, table, err)
		}
		samples = append(samples, sample)
	}
	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading table %s: %w", table, err)
	}
	l, err := dataset.NewLabeled(ctx, schema, samples)
	if err != nil {
		return nil, nil, err
	}
	return l, extra, nil
}

/*
Write takes a context, a database connection, the name of a table and a
labeled dataset, and stores the samples of the dataset on the table inside
a transaction, creating the table with a text column per column of the
schema if it does not exist.
*/
func Write(ctx context.Context, db *sqlx.DB, table string, l *dataset.Labeled) error {
	qtable, err := QuoteIdentifier(table)
	if err != nil {
		return err
	}
	columns := l.Schema.Columns()
	qcolumns := make([]string, len(columns))
	definitions := make([]string, len(columns))
	for i, c := range columns {
		qcolumns[i], err = QuoteIdentifier(c)
		if err != nil {
			return err
		}
		definitions[i] = qcolumns[i] + " TEXT NOT NULL"
	}
	samples, err := l.Dataset.Samples(ctx)
	if err != nil {
		return err
	}
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()
	_, err = tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", qtable, strings.Join(definitions, ", ")))
	if err != nil {
		return fmt.Errorf("creating table %s: %w", table, err)
	}
	placeholders := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
	for start := 0; start < len(samples); start += MaxSampleInsertionsPerStatement {
		end := start + MaxSampleInsertionsPerStatement
		if end > len(samples) {
			end = len(samples)
		}
		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*len(columns))
		for _, s := range samples[start:end] {
			row, err := l.Schema.Row(ctx, s)
			if err != nil {
				return err
			}
			values = append(values, placeholders)
			for _, cell := range row {
				args = append(args, cell)
			}
		}
		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", qtable, strings.Join(qcolumns, ", "), strings.Join(values, ", "))
		if _, err = tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("inserting samples %d to %d on table %s: %w", start+1, end, table, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing samples on table %s: %w", table, err)
	}
	return nil
}

/*
QuoteIdentifier takes the name of a table or column and returns it quoted
for use in SQL statements, or an error wrapping feature.ErrInvalidArgument
if it is empty or contains a double quote.
*/
func QuoteIdentifier(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty SQL identifier: %w", feature.ErrInvalidArgument)
	}
	if strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`identifier '%s' contains invalid character '"': %w`, name, feature.ErrInvalidArgument)
	}
	return `"` + name + `"`, nil
}

/*
CellString takes a value scanned from a database cell and returns its text
form as it would appear on a CSV file.
*/
func CellString(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}
