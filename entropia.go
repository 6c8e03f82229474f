/*
Package entropia computes the class entropy of labeled datasets and the
information gain of each of their attributes, and selects the attribute
with maximum gain as the root of a greedy (ID3) decision tree.
*/
package entropia

import (
	"context"
	"fmt"
	"runtime"

	"github.com/ckacy01/entropia/dataset"
	"github.com/ckacy01/entropia/feature"
	"golang.org/x/sync/errgroup"
)

// Options holds the configuration for Analyze.
type Options struct {
	// Parallelism is the maximum number of attributes whose
	// gain is computed at the same time. Values below 1 mean
	// one per available CPU.
	Parallelism int
}

/*
ClassShare holds the number of samples of a dataset taking a class value
and the proportion of the dataset they represent.
*/
type ClassShare struct {
	Value       interface{}
	Count       int
	Probability float64
}

/*
Analysis holds everything computed for a labeled dataset: its class
distribution in first-occurrence order, its entropy, the gain of every
attribute in declaration order and the root selection.
*/
type Analysis struct {
	Class        feature.Feature
	Instances    int
	Distribution []ClassShare
	TotalEntropy float64
	Gains        []*GainResult
	Selection    *RootSelection
}

/*
Analyze takes a context, a labeled dataset and Options and returns the
Analysis of the dataset. The gains of the attributes are computed
concurrently, since each of them only reads the dataset, and are returned
in declaration order regardless of the order in which they complete.

It returns an error wrapping feature.ErrInvalidArgument if the schema has
no attributes, or the first error found computing a gain, in which case
the computation of the remaining gains is cancelled.
*/
func Analyze(ctx context.Context, l *dataset.Labeled, opts Options) (*Analysis, error) {
	if l == nil || l.Schema == nil || l.Dataset == nil {
		return nil, fmt.Errorf("analyzing nil dataset: %w", feature.ErrInvalidArgument)
	}
	if len(l.Schema.Attributes) == 0 {
		return nil, fmt.Errorf("analyzing dataset without attributes: %w", feature.ErrInvalidArgument)
	}
	class := l.Schema.Class
	vcs, err := l.Dataset.CountFeatureValues(ctx, class)
	if err != nil {
		return nil, err
	}
	analysis := &Analysis{Class: class}
	for _, vc := range vcs {
		analysis.Instances += vc.Count
	}
	for _, vc := range vcs {
		analysis.Distribution = append(analysis.Distribution, ClassShare{
			Value:       vc.Value,
			Count:       vc.Count,
			Probability: float64(vc.Count) / float64(analysis.Instances),
		})
	}
	analysis.TotalEntropy, err = l.Dataset.Entropy(ctx, class)
	if err != nil {
		return nil, err
	}
	analysis.Gains = make([]*GainResult, len(l.Schema.Attributes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism(opts))
	for i, attribute := range l.Schema.Attributes {
		i, attribute := i, attribute
		g.Go(func() error {
			gr, err := computeGain(gctx, l, attribute, analysis.TotalEntropy)
			if err != nil {
				return err
			}
			analysis.Gains[i] = gr
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	analysis.Selection, err = SelectRoot(analysis.Gains)
	if err != nil {
		return nil, err
	}
	return analysis, nil
}

func parallelism(opts Options) int {
	if opts.Parallelism < 1 {
		return runtime.NumCPU()
	}
	return opts.Parallelism
}
