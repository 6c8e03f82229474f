package report

import (
	"github.com/ckacy01/entropia"
	"github.com/ckacy01/entropia/feature"
)

/*
Summary is the plain data form of an entropia.Analysis, the one written
as JSON by the command line tool and the HTTP API.
*/
type Summary struct {
	Class        string         `json:"class"`
	Instances    int            `json:"instances"`
	Distribution []ClassShare   `json:"distribution"`
	TotalEntropy float64        `json:"totalEntropy"`
	Gains        []Gain         `json:"gains"`
	Ranking      []RankingEntry `json:"ranking"`
	Root         string         `json:"root"`
	MaxGain      float64        `json:"maxGain"`
}

// ClassShare is the plain data form of an entropia.ClassShare.
type ClassShare struct {
	Value       string  `json:"value"`
	Count       int     `json:"count"`
	Probability float64 `json:"probability"`
}

// Gain is the plain data form of an entropia.GainResult.
type Gain struct {
	Attribute       string      `json:"attribute"`
	TotalEntropy    float64     `json:"totalEntropy"`
	WeightedEntropy float64     `json:"weightedEntropy"`
	Gain            float64     `json:"gain"`
	Breakdown       []Breakdown `json:"breakdown"`
}

// Breakdown is the plain data form of an entropia.Breakdown.
type Breakdown struct {
	Value         string  `json:"value"`
	Count         int     `json:"count"`
	Weight        float64 `json:"weight"`
	SubsetEntropy float64 `json:"subsetEntropy"`
	Contribution  float64 `json:"contribution"`
}

// RankingEntry holds the position of an attribute in the ranking.
type RankingEntry struct {
	Position  int     `json:"position"`
	Attribute string  `json:"attribute"`
	Gain      float64 `json:"gain"`
	Root      bool    `json:"root"`
}

// NewSummary returns the Summary of the given analysis.
func NewSummary(a *entropia.Analysis) *Summary {
	s := &Summary{
		Class:        a.Class.Name(),
		Instances:    a.Instances,
		TotalEntropy: a.TotalEntropy,
		Root:         a.Selection.Root.Attribute.Name(),
		MaxGain:      a.Selection.MaxGain,
	}
	for _, cs := range a.Distribution {
		s.Distribution = append(s.Distribution, ClassShare{feature.ValueString(cs.Value), cs.Count, cs.Probability})
	}
	for _, gr := range a.Gains {
		g := Gain{
			Attribute:       gr.Attribute.Name(),
			TotalEntropy:    gr.TotalEntropy,
			WeightedEntropy: gr.WeightedEntropy,
			Gain:            gr.Gain,
		}
		for _, b := range gr.Breakdown {
			g.Breakdown = append(g.Breakdown, Breakdown{feature.ValueString(b.Value), b.Count, b.Weight, b.SubsetEntropy, b.Contribution})
		}
		s.Gains = append(s.Gains, g)
	}
	for i, gr := range a.Selection.Ranking {
		s.Ranking = append(s.Ranking, RankingEntry{
			Position:  i + 1,
			Attribute: gr.Attribute.Name(),
			Gain:      gr.EffectiveGain(),
			Root:      gr == a.Selection.Root,
		})
	}
	return s
}
