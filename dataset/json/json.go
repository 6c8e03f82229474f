/*
Package json encodes labeled datasets as JSON documents holding the
specification of their columns and their rows as objects.
*/
package json

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ckacy01/entropia/dataset"
	"github.com/ckacy01/entropia/feature"
)

/*
Document is the JSON form of a labeled dataset: the name of the class
column, the specifications of the attributes in declaration order and a
row per sample, mapping column names to values.

Row values may be strings or numbers. Numbers for numeric-binned
attributes are binned, and class values are parsed as integer codes when
possible.
*/
type Document struct {
	Class    string                   `json:"class"`
	Features []feature.Spec           `json:"features"`
	Rows     []map[string]interface{} `json:"rows"`
}

/*
DatasetEncodeDecoder is an interface for objects
that allow encoding labeled datasets into slices of
bytes and decoding them back.
*/
type DatasetEncodeDecoder interface {

	//Encode receives a *dataset.Labeled
	// and returns a slice of bytes with the dataset
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(context.Context, *dataset.Labeled) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *dataset.Labeled decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode(context.Context, []byte) (*dataset.Labeled, error)
}

type jsonEncodeDecoder struct{}

/*
New returns a DatasetEncodeDecoder that encodes/decodes labeled datasets
as JSON Documents.
*/
func New() DatasetEncodeDecoder {
	return jsonEncodeDecoder{}
}

func (jsonEncodeDecoder) Encode(ctx context.Context, l *dataset.Labeled) ([]byte, error) {
	d, err := NewDocument(ctx, l)
	if err != nil {
		return nil, err
	}
	return json.Marshal(d)
}

func (jsonEncodeDecoder) Decode(ctx context.Context, data []byte) (*dataset.Labeled, error) {
	d := &Document{}
	if err := json.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("decoding dataset document: %w", err)
	}
	return d.Labeled(ctx)
}

// NewDocument returns the Document for the given labeled dataset.
func NewDocument(ctx context.Context, l *dataset.Labeled) (*Document, error) {
	d := &Document{Class: l.Schema.Class.Name(), Features: make([]feature.Spec, 0, len(l.Schema.Attributes))}
	for _, f := range l.Schema.Attributes {
		spec, err := feature.SpecOf(f)
		if err != nil {
			return nil, err
		}
		d.Features = append(d.Features, spec)
	}
	samples, err := l.Dataset.Samples(ctx)
	if err != nil {
		return nil, err
	}
	d.Rows = make([]map[string]interface{}, 0, len(samples))
	for _, s := range samples {
		row := make(map[string]interface{}, len(d.Features)+1)
		for _, f := range l.Schema.Features() {
			v, err := s.ValueFor(ctx, f)
			if err != nil {
				return nil, err
			}
			row[f.Name()] = v
		}
		d.Rows = append(d.Rows, row)
	}
	return d, nil
}

/*
Labeled returns the labeled dataset described by the document. It returns
an error wrapping feature.ErrInvalidArgument if the specifications do not
describe a valid schema, or one wrapping feature.ErrSchemaMismatch if a
row lacks a column or has an invalid value for it. Columns of rows outside
the schema are ignored.
*/
func (d *Document) Labeled(ctx context.Context) (*dataset.Labeled, error) {
	class, err := feature.NewClassFeature(d.Class)
	if err != nil {
		return nil, err
	}
	attributes := make([]feature.Feature, 0, len(d.Features))
	for _, spec := range d.Features {
		if spec.Kind == feature.KindClass {
			return nil, fmt.Errorf("feature %s cannot be of kind %s: %w", spec.Name, spec.Kind, feature.ErrInvalidArgument)
		}
		f, err := spec.Feature()
		if err != nil {
			return nil, err
		}
		attributes = append(attributes, f)
	}
	schema, err := dataset.NewSchema(class, attributes)
	if err != nil {
		return nil, err
	}
	samples := make([]dataset.Sample, 0, len(d.Rows))
	for i, row := range d.Rows {
		values := make(map[string]interface{}, len(attributes)+1)
		for _, f := range schema.Features() {
			raw, ok := row[f.Name()]
			if !ok || raw == nil {
				return nil, fmt.Errorf("row %d has no value for %s: %w", i+1, f.Name(), feature.ErrSchemaMismatch)
			}
			v, err := f.Parse(cellString(raw))
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			values[f.Name()] = v
		}
		samples = append(samples, dataset.NewSample(values))
	}
	return dataset.NewLabeled(ctx, schema, samples)
}

func cellString(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return feature.ValueString(v)
}
