package entropia

import (
	"context"
	"fmt"

	"github.com/ckacy01/entropia/dataset"
	"github.com/ckacy01/entropia/feature"
)

/*
GainTolerance is the floating point tolerance under which gains are
considered equal when ranking attributes, and under which negative gains
are considered to be 0.
*/
const GainTolerance = 1e-9

/*
Breakdown holds the share of one value of an attribute in the gain of
the attribute: the number of samples taking the value, the proportion of
the dataset they represent, the entropy of the subset they form and its
contribution (Weight x SubsetEntropy) to the weighted entropy.
*/
type Breakdown struct {
	Value         interface{}
	Count         int
	Weight        float64
	SubsetEntropy float64
	Contribution  float64
}

/*
GainResult holds the information gain of an attribute relative to the
class of a dataset: the entropy of the dataset, the weighted entropy of
the partition of the dataset by the values of the attribute, their
difference and the per-value breakdown of the weighted entropy, in the
order in which values first appear on the dataset.
*/
type GainResult struct {
	Attribute       feature.Feature
	TotalEntropy    float64
	WeightedEntropy float64
	Gain            float64
	Breakdown       []Breakdown
}

/*
EffectiveGain returns the gain used to rank the attribute: the computed
gain, or 0 if it is negative by less than GainTolerance, which can only
result from floating point cancellation.
*/
func (gr *GainResult) EffectiveGain() float64 {
	if gr.Gain < 0 && gr.Gain > -GainTolerance {
		return 0
	}
	return gr.Gain
}

/*
ComputeGain takes a context, a labeled dataset and one of the attributes of
its schema and returns the information gain of partitioning the dataset by
the values of the attribute.

It returns an error wrapping feature.ErrSchemaMismatch if the attribute
does not belong to the schema or a sample has no value for it.
*/
func ComputeGain(ctx context.Context, l *dataset.Labeled, attribute feature.Feature) (*GainResult, error) {
	totalEntropy, err := l.Dataset.Entropy(ctx, l.Schema.Class)
	if err != nil {
		return nil, err
	}
	return computeGain(ctx, l, attribute, totalEntropy)
}

func computeGain(ctx context.Context, l *dataset.Labeled, attribute feature.Feature, totalEntropy float64) (*GainResult, error) {
	if attribute == nil {
		return nil, fmt.Errorf("computing gain of nil attribute: %w", feature.ErrInvalidArgument)
	}
	if f, ok := l.Schema.Feature(attribute.Name()); !ok || f == l.Schema.Class {
		return nil, fmt.Errorf("computing gain of %s: not an attribute of the dataset: %w", attribute.Name(), feature.ErrSchemaMismatch)
	}
	vcs, err := l.Dataset.CountFeatureValues(ctx, attribute)
	if err != nil {
		return nil, fmt.Errorf("computing gain of %s: %w", attribute.Name(), err)
	}
	var total int
	for _, vc := range vcs {
		total += vc.Count
	}
	result := &GainResult{
		Attribute:    attribute,
		TotalEntropy: totalEntropy,
		Breakdown:    make([]Breakdown, 0, len(vcs)),
	}
	for _, vc := range vcs {
		subset, err := l.Dataset.SubsetWith(ctx, feature.NewDiscreteCriterion(attribute, feature.ValueString(vc.Value)))
		if err != nil {
			return nil, err
		}
		subsetEntropy, err := subset.Entropy(ctx, l.Schema.Class)
		if err != nil {
			return nil, err
		}
		weight := float64(vc.Count) / float64(total)
		b := Breakdown{
			Value:         vc.Value,
			Count:         vc.Count,
			Weight:        weight,
			SubsetEntropy: subsetEntropy,
			Contribution:  weight * subsetEntropy,
		}
		result.WeightedEntropy += b.Contribution
		result.Breakdown = append(result.Breakdown, b)
	}
	result.Gain = totalEntropy - result.WeightedEntropy
	return result, nil
}
