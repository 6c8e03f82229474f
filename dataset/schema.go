package dataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/ckacy01/entropia/feature"
)

/*
Schema describes the columns of a labeled dataset: the class column and
the attribute columns, in declaration order.
*/
type Schema struct {
	Class      feature.Feature
	Attributes []feature.Feature
}

/*
Labeled is a dataset together with the schema its samples conform to.
*/
type Labeled struct {
	Schema  *Schema
	Dataset Dataset
}

/*
NewSchema takes the class feature and the attribute features and returns
a schema with them or an error wrapping feature.ErrInvalidArgument if any
of them is nil or two columns share a name.
*/
func NewSchema(class feature.Feature, attributes []feature.Feature) (*Schema, error) {
	if class == nil {
		return nil, fmt.Errorf("schema needs a class feature: %w", feature.ErrInvalidArgument)
	}
	seen := map[string]bool{class.Name(): true}
	for i, f := range attributes {
		if f == nil {
			return nil, fmt.Errorf("attribute #%d is nil: %w", i, feature.ErrInvalidArgument)
		}
		if seen[f.Name()] {
			return nil, fmt.Errorf("column %s is declared twice: %w", f.Name(), feature.ErrInvalidArgument)
		}
		seen[f.Name()] = true
	}
	return &Schema{class, append([]feature.Feature{}, attributes...)}, nil
}

/*
InferSchema takes the column names found on a source of tabular data and
the name of its class column, and returns a schema with that class column
and every other column as an open discrete attribute, in header order. It
returns an error wrapping feature.ErrSchemaMismatch if the class column is
not on the header, a column is unnamed or two columns share a name.
*/
func InferSchema(header []string, className string) (*Schema, error) {
	class, err := feature.NewClassFeature(className)
	if err != nil {
		return nil, err
	}
	found := false
	seen := make(map[string]bool, len(header))
	attributes := make([]feature.Feature, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("column #%d has no name: %w", i+1, feature.ErrSchemaMismatch)
		}
		if seen[name] {
			return nil, fmt.Errorf("column %s appears twice: %w", name, feature.ErrSchemaMismatch)
		}
		seen[name] = true
		if name == className {
			found = true
			continue
		}
		f, err := feature.NewDiscreteFeature(name, nil)
		if err != nil {
			return nil, err
		}
		attributes = append(attributes, f)
	}
	if !found {
		return nil, fmt.Errorf("class column %s is not among columns %s: %w", className, strings.Join(header, ", "), feature.ErrSchemaMismatch)
	}
	return NewSchema(class, attributes)
}

/*
Columns returns the names of all columns of the schema: attributes first,
in declaration order, and the class column last.
*/
func (s *Schema) Columns() []string {
	result := s.AttributeColumns()
	return append(result, s.Class.Name())
}

// AttributeColumns returns the names of the attribute columns in declaration order.
func (s *Schema) AttributeColumns() []string {
	result := make([]string, 0, len(s.Attributes)+1)
	for _, f := range s.Attributes {
		result = append(result, f.Name())
	}
	return result
}

// Features returns the attribute features followed by the class feature.
func (s *Schema) Features() []feature.Feature {
	result := make([]feature.Feature, 0, len(s.Attributes)+1)
	result = append(result, s.Attributes...)
	return append(result, s.Class)
}

/*
Feature takes a column name and returns the feature of the schema with it
and true, or nil and false if there is none.
*/
func (s *Schema) Feature(name string) (feature.Feature, bool) {
	for _, f := range s.Features() {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

/*
Match takes the column names found on a source of tabular data (a CSV
header, the columns of a table) and checks them against the schema. It
returns, for each feature in Features order, the index of its column on
the header, and the names of the header columns that do not belong to the
schema, which should be ignored. It returns an error wrapping
feature.ErrSchemaMismatch listing the schema columns missing on the header.
*/
func (s *Schema) Match(header []string) ([]int, []string, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := positions[name]; dup {
			return nil, nil, fmt.Errorf("column %s appears twice: %w", name, feature.ErrSchemaMismatch)
		}
		positions[name] = i
	}
	var missing []string
	projection := make([]int, 0, len(s.Attributes)+1)
	for _, f := range s.Features() {
		i, ok := positions[f.Name()]
		if !ok {
			missing = append(missing, f.Name())
			continue
		}
		projection = append(projection, i)
		delete(positions, f.Name())
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("missing columns %s: %w", strings.Join(missing, ", "), feature.ErrSchemaMismatch)
	}
	var extra []string
	for _, name := range header {
		if _, ok := positions[strings.TrimSpace(name)]; ok {
			extra = append(extra, strings.TrimSpace(name))
		}
	}
	return projection, extra, nil
}

/*
ParseRow takes a row of raw cells ordered as the header given to Match and
the projection Match returned for it, and returns a sample with the values
parsed by each feature.
*/
func (s *Schema) ParseRow(row []string, projection []int) (Sample, error) {
	features := s.Features()
	if len(projection) != len(features) {
		return nil, fmt.Errorf("projection has %d columns, schema has %d: %w", len(projection), len(features), feature.ErrInvalidArgument)
	}
	values := make(map[string]interface{}, len(features))
	for i, f := range features {
		if projection[i] >= len(row) {
			return nil, fmt.Errorf("row has no value for %s: %w", f.Name(), feature.ErrSchemaMismatch)
		}
		v, err := f.Parse(row[projection[i]])
		if err != nil {
			return nil, err
		}
		values[f.Name()] = v
	}
	return &sample{values}, nil
}

/*
NewLabeled takes a schema and a slice of samples and returns a labeled
dataset with them after checking that every sample has a valid value for
every column of the schema. It returns an error wrapping
feature.ErrSchemaMismatch otherwise.
*/
func NewLabeled(ctx context.Context, schema *Schema, samples []Sample) (*Labeled, error) {
	features := schema.Features()
	for i, s := range samples {
		for _, f := range features {
			v, err := s.ValueFor(ctx, f)
			if err != nil {
				return nil, fmt.Errorf("sample #%d: %w", i+1, err)
			}
			if _, err = f.Valid(v); err != nil {
				return nil, fmt.Errorf("sample #%d: %w", i+1, err)
			}
		}
	}
	return &Labeled{schema, New(samples)}, nil
}

/*
Row takes a sample and returns the string form of its values in Columns
order, or an error if it lacks any of them.
*/
func (s *Schema) Row(ctx context.Context, sample Sample) ([]string, error) {
	features := s.Features()
	row := make([]string, len(features))
	for i, f := range features {
		v, err := sample.ValueFor(ctx, f)
		if err != nil {
			return nil, err
		}
		row[i] = feature.ValueString(v)
	}
	return row, nil
}
