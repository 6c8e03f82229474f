package feature

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestNewNominalFeature(t *testing.T) {
	tests := []struct {
		cardinality int
		want        []string
		wantErr     bool
	}{
		{2, []string{"Bajo", "Normal"}, false},
		{3, []string{"Bajo", "Normal", "Alto"}, false},
		{1, nil, true},
		{4, nil, true},
	}
	for _, tt := range tests {
		nf, err := NewNominalFeature("Presion", tt.cardinality)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("cardinality %d: expected invalid argument error, got %v", tt.cardinality, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("cardinality %d: unexpected error: %v", tt.cardinality, err)
		}
		got := nf.AvailableValues()
		if len(got) != len(tt.want) {
			t.Fatalf("cardinality %d: expected %v, got %v", tt.cardinality, tt.want, got)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("cardinality %d: expected %v, got %v", tt.cardinality, tt.want, got)
			}
		}
	}
}

func TestNewBinnedFeatureRejectsInvertedThresholds(t *testing.T) {
	if _, err := NewBinnedFeature("Edad", 32, 25); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument error, got %v", err)
	}
	if _, err := NewBinnedFeature("Edad", math.NaN(), 25); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument error for NaN threshold, got %v", err)
	}
	if _, err := NewBinnedFeature("Edad", 25, 25); err != nil {
		t.Fatalf("equal thresholds should be accepted, got %v", err)
	}
}

func TestEmptyNamesAreRejected(t *testing.T) {
	if _, err := NewNominalFeature(" ", 2); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nominal: expected invalid argument error, got %v", err)
	}
	if _, err := NewBinnedFeature("", 1, 2); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("binned: expected invalid argument error, got %v", err)
	}
	if _, err := NewClassFeature(""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("class: expected invalid argument error, got %v", err)
	}
}

func TestParse(t *testing.T) {
	nf, _ := NewNominalFeature("Presion", 3)
	bf, _ := NewBinnedFeature("Edad", 25, 32)
	cf, _ := NewClassFeature("Clase")
	df, _ := NewDiscreteFeature("Clima", []string{"Soleado", "Lluvioso"})
	of, _ := NewDiscreteFeature("Viento", nil)
	tests := []struct {
		f       Feature
		raw     string
		want    interface{}
		wantErr bool
	}{
		{nf, "Alto", "Alto", false},
		{nf, " Bajo ", "Bajo", false},
		{nf, "Medio", nil, true},
		{bf, "< 25", "< 25", false},
		{bf, "30", "25 - 32", false},
		{bf, "32.01", "> 32", false},
		{bf, "mucho", nil, true},
		{cf, "1", 1, false},
		{cf, "Si", "Si", false},
		{cf, "", nil, true},
		{cf, "-2", -2, false},
		{cf, "01", "01", false},
		{cf, "+1", "+1", false},
		{df, " Soleado", "Soleado", false},
		{df, "Nublado", nil, true},
		{of, "Fuerte", "Fuerte", false},
		{of, "12", "12", false},
		{of, "  ", nil, true},
	}
	for _, tt := range tests {
		got, err := tt.f.Parse(tt.raw)
		if tt.wantErr {
			if !errors.Is(err, ErrSchemaMismatch) {
				t.Errorf("%s.Parse(%q): expected schema mismatch error, got %v", tt.f.Name(), tt.raw, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s.Parse(%q): unexpected error: %v", tt.f.Name(), tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s.Parse(%q) = %v, want %v", tt.f.Name(), tt.raw, got, tt.want)
		}
	}
}

func TestSpecRoundTrip(t *testing.T) {
	nf, _ := NewNominalFeature("Presion", 2)
	bf, _ := NewBinnedFeature("Edad", 25, 32)
	cf, _ := NewClassFeature("Clase")
	df, _ := NewDiscreteFeature("Clima", []string{"Soleado", "Lluvioso"})
	of, _ := NewDiscreteFeature("Viento", nil)
	for _, f := range []Feature{nf, bf, cf, df, of} {
		s, err := SpecOf(f)
		if err != nil {
			t.Fatalf("SpecOf(%v): %v", f, err)
		}
		g, err := s.Feature()
		if err != nil {
			t.Fatalf("%+v.Feature(): %v", s, err)
		}
		gs, _ := SpecOf(g)
		if !reflect.DeepEqual(gs, s) {
			t.Errorf("expected %+v, got %+v", s, gs)
		}
	}
	x := 25.0
	invalid := map[string]Spec{
		"unknown kind":          {Name: "X", Kind: "continuous"},
		"no thresholds":         {Name: "Edad", Kind: KindNumeric},
		"missing x2":            {Name: "Edad", Kind: KindNumeric, X1: &x},
		"duplicated value":      {Name: "Clima", Kind: KindDiscrete, Values: []string{"Soleado", "Soleado"}},
		"empty discrete value":  {Name: "Clima", Kind: KindDiscrete, Values: []string{""}},
		"unnamed discrete spec": {Kind: KindDiscrete},
	}
	for name, s := range invalid {
		if _, err := s.Feature(); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: expected invalid argument error, got %v", name, err)
		}
	}
}
