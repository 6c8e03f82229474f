/*
Package synthetic generates random labeled datasets conforming to a list of
attribute specifications, for demos and tests.

Generated datasets have no learnable structure: class labels are drawn
independently of the attribute values.
*/
package synthetic

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/ckacy01/entropia/dataset"
	"github.com/ckacy01/entropia/feature"
)

// ClassValues are the class codes drawn for generated instances.
var ClassValues = []int{0, 1}

// SamplingMargin is how far below x1 and above x2 raw values of
// numeric-binned attributes are drawn.
const SamplingMargin = 10.0

/*
Generate takes the number of instances to generate, the attribute features,
the name of the class column and a seed, and returns a labeled dataset with
that many instances drawn from a source of randomness seeded with it. The
same arguments always produce the same dataset.

Values are drawn column by column, in the order of the attributes and then
the class, and rows keep the draw order:
  * nominal attributes take labels uniformly from their label set, and
    discrete attributes from their declared values
  * numeric-binned attributes take raw values uniformly from
    [x1 - SamplingMargin, x2 + SamplingMargin] that are then binned, so
    each range label appears with a frequency proportional to the width
    of its sub-interval
  * the class takes values uniformly from ClassValues

It returns an error wrapping feature.ErrInvalidArgument if the number of
instances is negative, an attribute is neither nominal, numeric-binned nor
discrete with declared values, or the columns cannot form a schema.
*/
func Generate(instanceCount int, attributes []feature.Feature, className string, seed int64) (*dataset.Labeled, error) {
	if instanceCount < 0 {
		return nil, fmt.Errorf("cannot generate %d instances: %w", instanceCount, feature.ErrInvalidArgument)
	}
	class, err := feature.NewClassFeature(className)
	if err != nil {
		return nil, err
	}
	schema, err := dataset.NewSchema(class, attributes)
	if err != nil {
		return nil, err
	}
	r := rand.New(rand.NewSource(seed))
	rows := make([]map[string]interface{}, instanceCount)
	for i := range rows {
		rows[i] = make(map[string]interface{}, len(attributes)+1)
	}
	for _, f := range attributes {
		draw, err := drawer(f)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			row[f.Name()] = draw(r)
		}
	}
	for _, row := range rows {
		row[className] = ClassValues[r.Intn(len(ClassValues))]
	}
	samples := make([]dataset.Sample, 0, instanceCount)
	for _, row := range rows {
		samples = append(samples, dataset.NewSample(row))
	}
	return dataset.NewLabeled(context.Background(), schema, samples)
}

func drawer(f feature.Feature) (func(*rand.Rand) interface{}, error) {
	switch f := f.(type) {
	case *feature.NominalFeature:
		labels := f.AvailableValues()
		return func(r *rand.Rand) interface{} {
			return labels[r.Intn(len(labels))]
		}, nil
	case *feature.DiscreteFeature:
		values := f.AvailableValues()
		if len(values) == 0 {
			break
		}
		return func(r *rand.Rand) interface{} {
			return values[r.Intn(len(values))]
		}, nil
	case *feature.BinnedFeature:
		x1, x2 := f.Thresholds()
		low, width := x1-SamplingMargin, (x2+SamplingMargin)-(x1-SamplingMargin)
		return func(r *rand.Rand) interface{} {
			return f.Bin(low + r.Float64()*width)
		}, nil
	}
	return nil, fmt.Errorf("cannot generate values for feature %s of type %T: %w", f.Name(), f, feature.ErrInvalidArgument)
}
