package dataset

import (
	"context"
	"math"

	"github.com/ckacy01/entropia/feature"
	"gonum.org/v1/gonum/stat"
)

const (
	sampleCountThresholdForDatasetImplementation = 1000
)

/*
Dataset represents a collection of samples.

Its Entropy method returns the entropy of the dataset for a given Feature: a
measure of the disinformation we have on the classes of samples that belong to
it.

Its FeatureValues method returns the distinct values samples take for a
feature, in the order in which they first appear.

Its SubsetWith method takes a feature.Criterion and returns a subset that only
contains samples that satisfy it.

Its Samples method returns the samples it contains

Implementations never modify the samples they are built with, and are safe
for concurrent use by multiple goroutines as long as their samples are.
*/
type Dataset interface {
	Entropy(context.Context, feature.Feature) (float64, error)
	SubsetWith(context.Context, feature.Criterion) (Dataset, error)
	FeatureValues(context.Context, feature.Feature) ([]interface{}, error)
	CountFeatureValues(context.Context, feature.Feature) ([]ValueCount, error)
	Samples(context.Context) ([]Sample, error)
	Count(context.Context) (int, error)
}

/*
ValueCount holds a value of a feature and the number of samples
taking it.
*/
type ValueCount struct {
	Value interface{}
	Count int
}

type memoryIntensiveSubsettingDataset struct {
	samples []Sample
}

type cpuIntensiveSubsettingDataset struct {
	samples  []Sample
	criteria []feature.Criterion
}

/*
New takes a slice of samples and returns a dataset built with them.
The dataset will be a CPU intensive one when the number of samples is
over sampleCountThresholdForDatasetImplementation
*/
func New(samples []Sample) Dataset {
	if len(samples) > sampleCountThresholdForDatasetImplementation {
		return NewCPUIntensive(samples)
	}
	return NewMemoryIntensive(samples)
}

/*
NewMemoryIntensive takes a slice of samples and returns a Dataset
built with them. A memory-intensive dataset is an implementation that
replicates the slice of samples when subsetting to reduce
calculations at the cost of increased memory.
*/
func NewMemoryIntensive(samples []Sample) Dataset {
	return &memoryIntensiveSubsettingDataset{samples}
}

/*
NewCPUIntensive takes a slice of samples and returns a Dataset
built with them. A cpu-intensive dataset is an implementation that
instead of replicating the samples when subsetting, stores the
applying feature criteria to define the subset and keeps the same
sample slice. This can achieve a drastic reduction in memory use
that comes at the cost of CPU time: every calculation that goes over
the samples of the dataset will apply the feature criteria of the dataset
on all original samples (the ones provided to this method).
*/
func NewCPUIntensive(samples []Sample) Dataset {
	return &cpuIntensiveSubsettingDataset{samples, nil}
}

/*
Entropy takes a context, a slice of samples and the class feature and
returns the Shannon entropy, in bits, of the distribution of class values
over the samples: -Σ p·log2(p) for the proportion p of each class value
present. An empty slice of samples has an entropy of 0. An error is
returned if a sample has no value for the class feature.
*/
func Entropy(ctx context.Context, samples []Sample, class feature.Feature) (float64, error) {
	if len(samples) == 0 {
		return 0, nil
	}
	vcs, err := countValues(ctx, samples, class)
	if err != nil {
		return 0, err
	}
	return entropyOf(vcs, len(samples)), nil
}

func entropyOf(vcs []ValueCount, total int) float64 {
	if total == 0 {
		return 0
	}
	probs := make([]float64, 0, len(vcs))
	for _, vc := range vcs {
		if vc.Count > 0 {
			probs = append(probs, float64(vc.Count)/float64(total))
		}
	}
	h := stat.Entropy(probs) / math.Ln2
	// stat.Entropy yields -0 for pure sets
	if h == 0 {
		return 0
	}
	return h
}

func countValues(ctx context.Context, samples []Sample, f feature.Feature) ([]ValueCount, error) {
	var result []ValueCount
	index := make(map[string]int)
	for _, sample := range samples {
		v, err := sample.ValueFor(ctx, f)
		if err != nil {
			return nil, err
		}
		vString := feature.ValueString(v)
		i, ok := index[vString]
		if !ok {
			i = len(result)
			index[vString] = i
			result = append(result, ValueCount{Value: v})
		}
		result[i].Count++
	}
	return result, nil
}

func valuesOf(vcs []ValueCount) []interface{} {
	result := make([]interface{}, 0, len(vcs))
	for _, vc := range vcs {
		result = append(result, vc.Value)
	}
	return result
}

func (s *memoryIntensiveSubsettingDataset) Count(ctx context.Context) (int, error) {
	return len(s.samples), nil
}

func (s *cpuIntensiveSubsettingDataset) Count(ctx context.Context) (int, error) {
	var length int
	err := s.iterateOnDataset(ctx, func(_ Sample) (bool, error) {
		length++
		return true, nil
	})
	if err != nil {
		return 0, err
	}
	return length, nil
}

func (s *memoryIntensiveSubsettingDataset) Entropy(ctx context.Context, f feature.Feature) (float64, error) {
	return Entropy(ctx, s.samples, f)
}

func (s *cpuIntensiveSubsettingDataset) Entropy(ctx context.Context, f feature.Feature) (float64, error) {
	vcs, err := s.CountFeatureValues(ctx, f)
	if err != nil {
		return 0, err
	}
	var total int
	for _, vc := range vcs {
		total += vc.Count
	}
	return entropyOf(vcs, total), nil
}

func (s *memoryIntensiveSubsettingDataset) FeatureValues(ctx context.Context, f feature.Feature) ([]interface{}, error) {
	vcs, err := countValues(ctx, s.samples, f)
	if err != nil {
		return nil, err
	}
	return valuesOf(vcs), nil
}

func (s *cpuIntensiveSubsettingDataset) FeatureValues(ctx context.Context, f feature.Feature) ([]interface{}, error) {
	vcs, err := s.CountFeatureValues(ctx, f)
	if err != nil {
		return nil, err
	}
	return valuesOf(vcs), nil
}

func (s *memoryIntensiveSubsettingDataset) CountFeatureValues(ctx context.Context, f feature.Feature) ([]ValueCount, error) {
	return countValues(ctx, s.samples, f)
}

func (s *cpuIntensiveSubsettingDataset) CountFeatureValues(ctx context.Context, f feature.Feature) ([]ValueCount, error) {
	var samples []Sample
	err := s.iterateOnDataset(ctx, func(sample Sample) (bool, error) {
		samples = append(samples, sample)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return countValues(ctx, samples, f)
}

func (s *memoryIntensiveSubsettingDataset) SubsetWith(ctx context.Context, fc feature.Criterion) (Dataset, error) {
	var samples []Sample
	for _, sample := range s.samples {
		ok, err := fc.SatisfiedBy(ctx, sample)
		if err != nil {
			return nil, err
		}
		if ok {
			samples = append(samples, sample)
		}
	}
	return &memoryIntensiveSubsettingDataset{samples}, nil
}

func (s *cpuIntensiveSubsettingDataset) SubsetWith(ctx context.Context, fc feature.Criterion) (Dataset, error) {
	criteria := make([]feature.Criterion, 0, len(s.criteria)+1)
	criteria = append(criteria, fc)
	criteria = append(criteria, s.criteria...)
	return &cpuIntensiveSubsettingDataset{s.samples, criteria}, nil
}

func (s *memoryIntensiveSubsettingDataset) Samples(ctx context.Context) ([]Sample, error) {
	return append([]Sample{}, s.samples...), nil
}

func (s *cpuIntensiveSubsettingDataset) Samples(ctx context.Context) ([]Sample, error) {
	var samples []Sample
	err := s.iterateOnDataset(ctx, func(sample Sample) (bool, error) {
		samples = append(samples, sample)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return samples, nil
}

func (s *cpuIntensiveSubsettingDataset) iterateOnDataset(ctx context.Context, lambda func(Sample) (bool, error)) error {
	for _, sample := range s.samples {
		if err := ctx.Err(); err != nil {
			return err
		}
		skip := false
		for _, criterion := range s.criteria {
			ok, err := criterion.SatisfiedBy(ctx, sample)
			if err != nil {
				return err
			}
			if !ok {
				skip = true
				break
			}
		}
		if !skip {
			ok, err := lambda(sample)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
		}
	}
	return nil
}
