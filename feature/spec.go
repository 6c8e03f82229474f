package feature

import "fmt"

const (
	// KindNominal identifies nominal features on a Spec
	KindNominal = "nominal"
	// KindNumeric identifies numeric-binned features on a Spec
	KindNumeric = "numeric"
	// KindDiscrete identifies open or declared categorical features on a Spec
	KindDiscrete = "discrete"
	// KindClass identifies class features on a Spec
	KindClass = "class"
)

/*
Spec is the plain data description of a feature, the form in which
features travel through configuration, session snapshots and the HTTP API.
*/
type Spec struct {
	Name        string  `json:"name" msgpack:"name"`
	Kind        string  `json:"kind" msgpack:"kind"`
	Cardinality int      `json:"cardinality,omitempty" msgpack:"cardinality,omitempty"`
	X1          *float64 `json:"x1,omitempty" msgpack:"x1,omitempty"`
	X2          *float64 `json:"x2,omitempty" msgpack:"x2,omitempty"`
	Values      []string `json:"values,omitempty" msgpack:"values,omitempty"`
}

// SpecOf returns the Spec describing the given feature.
func SpecOf(f Feature) (Spec, error) {
	switch f := f.(type) {
	case *NominalFeature:
		return Spec{Name: f.Name(), Kind: KindNominal, Cardinality: f.Cardinality()}, nil
	case *BinnedFeature:
		x1, x2 := f.Thresholds()
		return Spec{Name: f.Name(), Kind: KindNumeric, X1: &x1, X2: &x2}, nil
	case *DiscreteFeature:
		return Spec{Name: f.Name(), Kind: KindDiscrete, Values: f.AvailableValues()}, nil
	case *ClassFeature:
		return Spec{Name: f.Name(), Kind: KindClass}, nil
	}
	return Spec{}, fmt.Errorf("unknown feature type %T for feature %v: %w", f, f.Name(), ErrInvalidArgument)
}

// Feature builds the feature described by the spec.
func (s Spec) Feature() (Feature, error) {
	switch s.Kind {
	case KindNominal:
		return NewNominalFeature(s.Name, s.Cardinality)
	case KindNumeric:
		if s.X1 == nil || s.X2 == nil {
			return nil, fmt.Errorf("numeric feature %q needs both x1 and x2 thresholds: %w", s.Name, ErrInvalidArgument)
		}
		return NewBinnedFeature(s.Name, *s.X1, *s.X2)
	case KindDiscrete:
		return NewDiscreteFeature(s.Name, s.Values)
	case KindClass:
		return NewClassFeature(s.Name)
	}
	return nil, fmt.Errorf("unknown kind %q for feature %q: %w", s.Kind, s.Name, ErrInvalidArgument)
}
