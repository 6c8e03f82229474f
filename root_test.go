package entropia

import (
	"errors"
	"testing"

	"github.com/ckacy01/entropia/feature"
)

func TestSelectRoot(t *testing.T) {
	a, b, c := nominal(t, "A", 2), nominal(t, "B", 2), nominal(t, "C", 3)
	testCases := []struct {
		name    string
		gains   []*GainResult
		ranking []feature.Feature
		maxGain float64
	}{
		{
			name:    "distinct gains",
			gains:   []*GainResult{{Attribute: a, Gain: 0.2}, {Attribute: b, Gain: 0.7}, {Attribute: c, Gain: 0.4}},
			ranking: []feature.Feature{b, c, a},
			maxGain: 0.7,
		},
		{
			name:    "tie at the top",
			gains:   []*GainResult{{Attribute: a, Gain: 0.1}, {Attribute: b, Gain: 0.5}, {Attribute: c, Gain: 0.5}},
			ranking: []feature.Feature{b, c, a},
			maxGain: 0.5,
		},
		{
			name:    "tie within tolerance",
			gains:   []*GainResult{{Attribute: a, Gain: 0.3}, {Attribute: b, Gain: 0.3 + 1e-12}},
			ranking: []feature.Feature{a, b},
			maxGain: 0.3,
		},
		{
			name:    "tie across a multiple of the tolerance",
			gains:   []*GainResult{{Attribute: a, Gain: 0.5 + 0.49e-9}, {Attribute: b, Gain: 0.5 + 0.51e-9}},
			ranking: []feature.Feature{a, b},
			maxGain: 0.5 + 0.49e-9,
		},
		{
			name:    "chain of near gains",
			gains:   []*GainResult{{Attribute: a, Gain: 0.2}, {Attribute: b, Gain: 0.2 + 0.8e-9}, {Attribute: c, Gain: 0.2 + 1.6e-9}},
			ranking: []feature.Feature{b, c, a},
			maxGain: 0.2 + 0.8e-9,
		},
		{
			name:    "negative rounding noise",
			gains:   []*GainResult{{Attribute: a, Gain: -1e-12}, {Attribute: b, Gain: 0}},
			ranking: []feature.Feature{a, b},
			maxGain: 0,
		},
	}
	for _, tc := range testCases {
		rs, err := SelectRoot(tc.gains)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		for i, f := range tc.ranking {
			if rs.Ranking[i].Attribute != f {
				t.Errorf("%s: expected %s at position %d, got %s", tc.name, f.Name(), i, rs.Ranking[i].Attribute.Name())
			}
		}
		if rs.Root != rs.Ranking[0] {
			t.Errorf("%s: expected root to top the ranking", tc.name)
		}
		if rs.MaxGain != tc.maxGain {
			t.Errorf("%s: expected max gain %v, got %v", tc.name, tc.maxGain, rs.MaxGain)
		}
	}
}

func TestSelectRootKeepsRawGain(t *testing.T) {
	a := nominal(t, "A", 2)
	rs, err := SelectRoot([]*GainResult{{Attribute: a, Gain: -1e-12}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rs.Root.Gain != -1e-12 {
		t.Errorf("expected raw gain to be kept, got %v", rs.Root.Gain)
	}
	if rs.MaxGain != 0 {
		t.Errorf("expected max gain 0, got %v", rs.MaxGain)
	}
}

func TestSelectRootErrors(t *testing.T) {
	a := nominal(t, "A", 2)
	testCases := []struct {
		name  string
		gains []*GainResult
	}{
		{"no gains", nil},
		{"nil gain", []*GainResult{{Attribute: a}, nil}},
		{"gain without attribute", []*GainResult{{Gain: 1}}},
		{"duplicate attribute", []*GainResult{{Attribute: a}, {Attribute: a}}},
	}
	for _, tc := range testCases {
		if _, err := SelectRoot(tc.gains); !errors.Is(err, feature.ErrInvalidArgument) {
			t.Errorf("%s: expected invalid argument error, got %v", tc.name, err)
		}
	}
}

func TestEffectiveGain(t *testing.T) {
	testCases := []struct {
		gain     float64
		expected float64
	}{
		{0.5, 0.5},
		{0, 0},
		{-1e-12, 0},
		{-0.1, -0.1},
	}
	for _, tc := range testCases {
		gr := &GainResult{Gain: tc.gain}
		if got := gr.EffectiveGain(); got != tc.expected {
			t.Errorf("gain %v: expected effective gain %v, got %v", tc.gain, tc.expected, got)
		}
	}
}
