/*
Package csv reads and writes labeled datasets as CSV streams whose header
names the columns of a schema.
*/
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/ckacy01/entropia/dataset"
	"github.com/ckacy01/entropia/feature"
)

/*
Writer is an interface for a dataset to which samples
can be written to.
*/
type Writer interface {
	// Write will attempt to write the given samples
	// and will return the actually written number of
	// samples and an error (if not all samples could
	// be written)
	Write(context.Context, []dataset.Sample) (int, error)
	// Count returns the total number of samples written
	// to the writer
	Count() int
	// Flush ensures any pending written operations finish
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}

type csvWriter struct {
	count  int
	schema *dataset.Schema
	w      *csv.Writer
}

/*
Read takes an io.Reader for a CSV stream and a schema and returns a labeled
dataset with the samples parsed from it, together with the names of the
header columns that do not belong to the schema and were ignored.

The header or first row of the CSV content must name every column of the
schema, in any order; an error wrapping feature.ErrSchemaMismatch is
returned otherwise. Every cell is parsed by the feature of its column, so
numeric cells of numeric-binned attributes are binned, and an error
wrapping feature.ErrSchemaMismatch is returned for any cell that is not a
valid value.
*/
func Read(ctx context.Context, reader io.Reader, schema *dataset.Schema) (*dataset.Labeled, []string, error) {
	samples := []dataset.Sample{}
	extra, err := ReadBySample(reader, schema, func(_ int, s dataset.Sample) (bool, error) {
		samples = append(samples, s)
		return true, nil
	})
	if err != nil {
		return nil, nil, err
	}
	l, err := dataset.NewLabeled(ctx, schema, samples)
	if err != nil {
		return nil, nil, err
	}
	return l, extra, nil
}

/*
ReadBySample takes an io.Reader for a CSV stream, a schema and a lambda
function on an integer and a dataset.Sample that returns a boolean value.
It parses the samples from the reader and for each it calls the lambda
function with the sample and its index as parameters. If the lambda function
returns true, it will continue processing the next sample, otherwise it will
stop. It returns the names of the header columns outside the schema, or an
error if something goes wrong when reading the stream or parsing a sample.
*/
func ReadBySample(reader io.Reader, schema *dataset.Schema, lambda func(int, dataset.Sample) (bool, error)) ([]string, error) {
	_, extra, err := readBySample(reader, func([]string) (*dataset.Schema, error) {
		return schema, nil
	}, lambda)
	return extra, err
}

/*
ReadInferring takes an io.Reader for a CSV stream and the name of its class
column and returns a labeled dataset with the samples parsed from it, taking
every other column of the header as an open discrete attribute in header
order. See dataset.InferSchema.
*/
func ReadInferring(ctx context.Context, reader io.Reader, className string) (*dataset.Labeled, error) {
	samples := []dataset.Sample{}
	schema, _, err := readBySample(reader, func(header []string) (*dataset.Schema, error) {
		return dataset.InferSchema(header, className)
	}, func(_ int, s dataset.Sample) (bool, error) {
		samples = append(samples, s)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return dataset.NewLabeled(ctx, schema, samples)
}

/*
ReadInferringFromFilePath opens the file to which the filepath points to, or
uses os.Stdin if it is "", and uses ReadInferring to return a labeled dataset
read from it.
*/
func ReadInferringFromFilePath(ctx context.Context, filepath, className string) (*dataset.Labeled, error) {
	f := os.Stdin
	if filepath != "" {
		var err error
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading dataset: %w", err)
		}
		defer f.Close()
	}
	l, err := ReadInferring(ctx, f, className)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %w", filepath, err)
	}
	return l, err
}

func readBySample(reader io.Reader, schemaFor func([]string) (*dataset.Schema, error), lambda func(int, dataset.Sample) (bool, error)) (*dataset.Schema, []string, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("reading header: empty CSV stream: %w", feature.ErrSchemaMismatch)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}
	schema, err := schemaFor(header)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing header: %w", err)
	}
	projection, extra, err := schema.Match(header)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing header: %w", err)
	}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading body: %w", err)
		}
		sample, err := schema.ParseRow(row, projection)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing line %d: %w", l, err)
		}
		ok, err := lambda(l-2, sample)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			break
		}
	}
	return schema, extra, nil
}

/*
ReadFromFilePath takes a filepath string and a schema, opens the file to
which the filepath points to and uses Read to return a labeled dataset read
from it. If the filepath is "" os.Stdin is used instead. It will return an
error if the given filepath cannot be opened for reading.
*/
func ReadFromFilePath(ctx context.Context, filepath string, schema *dataset.Schema) (*dataset.Labeled, []string, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, nil, fmt.Errorf("reading dataset: %w", err)
		}
		defer f.Close()
	}
	l, extra, err := Read(ctx, f, schema)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %w", filepath, err)
	}
	return l, extra, err
}

/*
NewWriter takes an io.Writer and a schema and returns a Writer that will
write samples on the io.Writer, after a header with the columns of the
schema.
*/
func NewWriter(writer io.Writer, schema *dataset.Schema) (Writer, error) {
	w := csv.NewWriter(writer)
	err := w.Write(schema.Columns())
	if err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	return &csvWriter{schema: schema, w: w}, nil
}

/*
Write takes a writer and a labeled dataset and dumps to the writer the
dataset in CSV format, attribute columns first and the class last. It
returns an error if something went wrong when writing to the writer, or
codifying the samples.
*/
func Write(ctx context.Context, writer io.Writer, l *dataset.Labeled) error {
	cw, err := NewWriter(writer, l.Schema)
	if err != nil {
		return err
	}
	samples, err := l.Dataset.Samples(ctx)
	if err != nil {
		return err
	}
	_, err = cw.Write(ctx, samples)
	if err != nil {
		return err
	}
	return cw.Flush()
}

/*
WriteToFilePath takes a filepath and a labeled dataset and writes the
dataset in CSV format on a file created at filepath. If the filepath is ""
os.Stdout is used instead.
*/
func WriteToFilePath(ctx context.Context, filepath string, l *dataset.Labeled) error {
	if filepath == "" {
		return Write(ctx, os.Stdout, l)
	}
	f, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath, err)
	}
	err = Write(ctx, f, l)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

/*
Template takes a schema and returns a small labeled dataset showing the
shape of valid input for it: three samples whose attributes take, in turn,
the labels of each attribute (Bajo, Normal, Bajo for two-level attributes)
and whose class takes 0, 1 and 0.
*/
func Template(schema *dataset.Schema) (*dataset.Labeled, error) {
	classes := []int{0, 1, 0}
	samples := make([]dataset.Sample, 0, len(classes))
	for i, class := range classes {
		values := map[string]interface{}{schema.Class.Name(): class}
		for _, f := range schema.Attributes {
			labels, err := labelsOf(f)
			if err != nil {
				return nil, err
			}
			values[f.Name()] = labels[i%len(labels)]
		}
		samples = append(samples, dataset.NewSample(values))
	}
	return dataset.NewLabeled(context.Background(), schema, samples)
}

func labelsOf(f feature.Feature) ([]string, error) {
	switch f := f.(type) {
	case *feature.NominalFeature:
		return f.AvailableValues(), nil
	case *feature.BinnedFeature:
		return f.AvailableValues(), nil
	case *feature.DiscreteFeature:
		if !f.Open() {
			return f.AvailableValues(), nil
		}
	}
	return nil, fmt.Errorf("no labels for feature %s of type %T: %w", f.Name(), f, feature.ErrInvalidArgument)
}

func (cw *csvWriter) Count() int {
	return cw.count
}

func (cw *csvWriter) Write(ctx context.Context, samples []dataset.Sample) (int, error) {
	for n, sample := range samples {
		if err := cw.WriteSample(ctx, sample); err != nil {
			return n, err
		}
	}
	return len(samples), nil
}

// WriteSample writes a row with the values of the sample.
func (cw *csvWriter) WriteSample(ctx context.Context, sample dataset.Sample) error {
	record, err := cw.schema.Row(ctx, sample)
	if err != nil {
		return err
	}
	err = cw.w.Write(record)
	if err != nil {
		return fmt.Errorf("writing CSV row for sample %d: %w", cw.count+1, err)
	}
	cw.count++
	return nil
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
