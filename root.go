package entropia

import (
	"fmt"
	"sort"

	"github.com/ckacy01/entropia/feature"
)

/*
RootSelection holds the attributes of a dataset ranked by descending
information gain and the attribute chosen as root of a decision tree
for it: the first of the ranking.
*/
type RootSelection struct {
	Ranking []*GainResult
	Root    *GainResult
	// MaxGain is the effective gain of Root, its Gain with tiny negative
	// values clamped to 0.
	MaxGain float64
}

/*
SelectRoot takes the gain results of the attributes of a dataset, in the
order in which the attributes are declared, and returns them ranked by
descending effective gain together with the root attribute, the one with
maximum gain.

Gains that differ by at most GainTolerance rank as equal, and equal gains
keep the order in which they were given. The root is the first declared
attribute whose gain is within GainTolerance of the maximum.

It returns an error wrapping feature.ErrInvalidArgument if no gain result
is given, any of them is nil or two of them are for the same attribute.
*/
func SelectRoot(gains []*GainResult) (*RootSelection, error) {
	if len(gains) == 0 {
		return nil, fmt.Errorf("selecting root: no attributes: %w", feature.ErrInvalidArgument)
	}
	seen := make(map[string]bool, len(gains))
	for i, gr := range gains {
		if gr == nil || gr.Attribute == nil {
			return nil, fmt.Errorf("selecting root: gain result #%d is empty: %w", i+1, feature.ErrInvalidArgument)
		}
		if seen[gr.Attribute.Name()] {
			return nil, fmt.Errorf("selecting root: attribute %s given twice: %w", gr.Attribute.Name(), feature.ErrInvalidArgument)
		}
		seen[gr.Attribute.Name()] = true
	}
	maxGain := gains[0].EffectiveGain()
	for _, gr := range gains[1:] {
		if g := gr.EffectiveGain(); g > maxGain {
			maxGain = g
		}
	}
	var root *GainResult
	for _, gr := range gains {
		if maxGain-gr.EffectiveGain() <= GainTolerance {
			root = gr
			break
		}
	}
	ranking := make([]*GainResult, 0, len(gains))
	ranking = append(ranking, root)
	for _, gr := range gains {
		if gr != root {
			ranking = append(ranking, gr)
		}
	}
	rest := ranking[1:]
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].EffectiveGain()-rest[j].EffectiveGain() > GainTolerance
	})
	return &RootSelection{
		Ranking: ranking,
		Root:    root,
		MaxGain: root.EffectiveGain(),
	}, nil
}
