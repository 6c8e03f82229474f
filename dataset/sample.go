package dataset

import (
	"context"
	"fmt"

	"github.com/ckacy01/entropia/feature"
)

/*
Sample represents an instance of a labeled dataset.

Its ValueFor method returns the value of the sample corresponding to the feature
passed as parameter, or an error wrapping feature.ErrSchemaMismatch if the
sample has no value for it.
*/
type Sample interface {
	ValueFor(context.Context, feature.Feature) (interface{}, error)
}

type sample struct {
	featureValues map[string]interface{}
}

/*
NewSample takes a map of feature string names to values and returns
a sample. The map is copied, so later changes to it do not affect the
sample.
*/
func NewSample(featureValues map[string]interface{}) Sample {
	values := make(map[string]interface{}, len(featureValues))
	for k, v := range featureValues {
		values[k] = v
	}
	return &sample{values}
}

func (s *sample) ValueFor(_ context.Context, f feature.Feature) (interface{}, error) {
	v, ok := s.featureValues[f.Name()]
	if !ok {
		return nil, fmt.Errorf("sample has no value for %s: %w", f.Name(), feature.ErrSchemaMismatch)
	}
	return v, nil
}

func (s *sample) String() string {
	return fmt.Sprintf("[%v]", s.featureValues)
}
