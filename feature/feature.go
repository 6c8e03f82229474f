package feature

import (
	"fmt"
	"strconv"
	"strings"
)

/*
Feature represents a column of a labeled dataset: either one of the
attributes observed on every instance or the class being predicted.

Its Parse method takes the raw text of a cell (as found on a CSV file,
a database row or typed by a user) and returns the categorical value
the feature holds for it, or an error if the text is not acceptable.
*/
type Feature interface {
	Name() string
	Valid(interface{}) (bool, error)
	Parse(string) (interface{}, error)
}

const (
	// Low is the label shared by both nominal label sets
	Low = "Bajo"
	// Normal is the label shared by both nominal label sets
	Normal = "Normal"
	// High is only available to nominal features of cardinality 3
	High = "Alto"
)

/*
NominalFeature represents an attribute that can only take a value among a
small fixed set of labels: {Bajo, Normal} or {Bajo, Normal, Alto}.
*/
type NominalFeature struct {
	name            string
	availableValues []string
}

/*
BinnedFeature represents a numeric attribute discretized into three ranges
by a pair of thresholds x1 <= x2.
*/
type BinnedFeature struct {
	name   string
	x1, x2 float64
	labels []string
}

/*
DiscreteFeature represents an attribute that can take any categorical value
among a declared list of values or, if none is declared, any non-empty text
observed on the data.
*/
type DiscreteFeature struct {
	name            string
	availableValues []string
}

/*
ClassFeature represents the column holding the class label of instances.
*/
type ClassFeature struct {
	name string
}

/*
NominalValues takes a cardinality and returns the fixed label set for
nominal features of that cardinality, or an error if it is not 2 or 3.
*/
func NominalValues(cardinality int) ([]string, error) {
	switch cardinality {
	case 2:
		return []string{Low, Normal}, nil
	case 3:
		return []string{Low, Normal, High}, nil
	}
	return nil, fmt.Errorf("nominal cardinality must be 2 or 3, got %d: %w", cardinality, ErrInvalidArgument)
}

/*
NewNominalFeature takes a name and a cardinality and returns a nominal
feature with the label set for that cardinality. It returns an error
if the name is empty or the cardinality is not 2 or 3.
*/
func NewNominalFeature(name string, cardinality int) (*NominalFeature, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	values, err := NominalValues(cardinality)
	if err != nil {
		return nil, fmt.Errorf("nominal feature %s: %w", name, err)
	}
	return &NominalFeature{name, values}, nil
}

/*
NewBinnedFeature takes a name and the x1 and x2 thresholds and returns a
numeric-binned feature. It returns an error if the name is empty, any of
the thresholds is not a finite number or x1 > x2.
*/
func NewBinnedFeature(name string, x1, x2 float64) (*BinnedFeature, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	if !finite(x1) || !finite(x2) {
		return nil, fmt.Errorf("binned feature %s: thresholds must be finite numbers, got %v and %v: %w", name, x1, x2, ErrInvalidArgument)
	}
	if x1 > x2 {
		return nil, fmt.Errorf("binned feature %s: lower threshold %v is greater than upper threshold %v: %w", name, x1, x2, ErrInvalidArgument)
	}
	return &BinnedFeature{name, x1, x2, BinLabels(x1, x2)}, nil
}

/*
NewDiscreteFeature takes a name string and a slice of available value strings
and returns a discrete feature. An empty slice leaves the feature open to any
non-empty value. It returns an error if the name is empty or any of the
values is empty or declared twice.
*/
func NewDiscreteFeature(name string, availableValues []string) (*DiscreteFeature, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(availableValues))
	values := make([]string, 0, len(availableValues))
	for _, v := range availableValues {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, fmt.Errorf("discrete feature %s: empty value: %w", name, ErrInvalidArgument)
		}
		if seen[v] {
			return nil, fmt.Errorf("discrete feature %s: value %q declared twice: %w", name, v, ErrInvalidArgument)
		}
		seen[v] = true
		values = append(values, v)
	}
	return &DiscreteFeature{name, values}, nil
}

/*
NewClassFeature takes a name and returns a class feature with it, or an
error if the name is empty.
*/
func NewClassFeature(name string) (*ClassFeature, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	return &ClassFeature{name}, nil
}

/*
Name returns a string with the name of the feature
*/
func (nf *NominalFeature) Name() string {
	return nf.name
}

/*
Valid receives an interface value and returns a boolean and an error. When the
value parameter is included in the available values fo the feature, the method
returns true and nil. Otherwise it returns false and an error describing the
reason.
*/
func (nf *NominalFeature) Valid(value interface{}) (bool, error) {
	return validLabel(nf.name, nf.availableValues, value)
}

// Parse accepts any of the labels of the feature, ignoring surrounding spaces.
func (nf *NominalFeature) Parse(raw string) (interface{}, error) {
	v := strings.TrimSpace(raw)
	if _, err := nf.Valid(v); err != nil {
		return nil, err
	}
	return v, nil
}

/*
AvailableValues returns a string slice with the values available for the feature
*/
func (nf *NominalFeature) AvailableValues() []string {
	return append([]string{}, nf.availableValues...)
}

// Cardinality returns the number of labels of the feature.
func (nf *NominalFeature) Cardinality() int {
	return len(nf.availableValues)
}

func (nf *NominalFeature) String() string {
	return nf.name
}

/*
Name returns a string with the name of the feature
*/
func (bf *BinnedFeature) Name() string {
	return bf.name
}

/*
Valid receives an interface value and returns true and nil if it is one
of the three range labels of the feature. Otherwise it returns false and
an error describing the reason. Raw numbers are not valid values: they
must go through Bin first.
*/
func (bf *BinnedFeature) Valid(value interface{}) (bool, error) {
	return validLabel(bf.name, bf.labels, value)
}

/*
Parse takes the raw text of a cell and returns its range label. Text that is
already one of the labels is returned as is, text holding a number is binned
with the thresholds of the feature and anything else is rejected.
*/
func (bf *BinnedFeature) Parse(raw string) (interface{}, error) {
	v := strings.TrimSpace(raw)
	for _, l := range bf.labels {
		if l == v {
			return l, nil
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || !finite(f) {
		return nil, fmt.Errorf("binned feature %s got %q, which is neither a number nor one of %v: %w", bf.name, raw, bf.labels, ErrSchemaMismatch)
	}
	return bf.Bin(f), nil
}

/*
Bin takes a raw numeric value and returns the range label it falls in
according to the thresholds of the feature.
*/
func (bf *BinnedFeature) Bin(value float64) string {
	return Bin(value, bf.x1, bf.x2)
}

// Thresholds returns the x1 and x2 thresholds of the feature.
func (bf *BinnedFeature) Thresholds() (float64, float64) {
	return bf.x1, bf.x2
}

// AvailableValues returns the three range labels in ascending order.
func (bf *BinnedFeature) AvailableValues() []string {
	return append([]string{}, bf.labels...)
}

func (bf *BinnedFeature) String() string {
	return bf.name
}

/*
Name returns a string with the name of the feature
*/
func (df *DiscreteFeature) Name() string {
	return df.name
}

/*
Valid receives an interface value and returns true and nil if it is a
non-empty string and, when the feature declares its values, one of them.
Otherwise it returns false and an error describing the reason.
*/
func (df *DiscreteFeature) Valid(value interface{}) (bool, error) {
	if df.Open() {
		vs, ok := value.(string)
		if !ok || vs == "" {
			return false, fmt.Errorf("feature %s expects a non-empty string value, got %#v: %w", df.name, value, ErrSchemaMismatch)
		}
		return true, nil
	}
	return validLabel(df.name, df.availableValues, value)
}

// Parse accepts any valid value, ignoring surrounding spaces.
func (df *DiscreteFeature) Parse(raw string) (interface{}, error) {
	v := strings.TrimSpace(raw)
	if _, err := df.Valid(v); err != nil {
		return nil, err
	}
	return v, nil
}

/*
AvailableValues returns a string slice with the values declared for the
feature, empty if it is open.
*/
func (df *DiscreteFeature) AvailableValues() []string {
	return append([]string{}, df.availableValues...)
}

// Open tells whether the feature accepts values it does not declare.
func (df *DiscreteFeature) Open() bool {
	return len(df.availableValues) == 0
}

func (df *DiscreteFeature) String() string {
	return df.name
}

/*
Name returns a string with the name of the feature
*/
func (cf *ClassFeature) Name() string {
	return cf.name
}

/*
Valid returns true and nil for any defined value, as the class column
may hold any finite set of labels. It returns false and an error for nil.
*/
func (cf *ClassFeature) Valid(value interface{}) (bool, error) {
	if value == nil {
		return false, fmt.Errorf("class feature %s has no value: %w", cf.name, ErrSchemaMismatch)
	}
	return true, nil
}

/*
Parse returns integer class codes written in canonical form (such as 0, 1
or -2) as int values and any other non-empty text, "01" or "+1" included,
as a string. Empty cells are rejected.
*/
func (cf *ClassFeature) Parse(raw string) (interface{}, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil, fmt.Errorf("class feature %s got an empty value: %w", cf.name, ErrSchemaMismatch)
	}
	if i, err := strconv.Atoi(v); err == nil && strconv.Itoa(i) == v {
		return i, nil
	}
	return v, nil
}

func (cf *ClassFeature) String() string {
	return cf.name
}

func validLabel(name string, labels []string, value interface{}) (bool, error) {
	if value == nil {
		return false, fmt.Errorf("feature %s has no value: %w", name, ErrSchemaMismatch)
	}
	vs, ok := value.(string)
	if !ok {
		return false, fmt.Errorf("feature %s expects string value, got %T value: %w", name, value, ErrSchemaMismatch)
	}
	for _, l := range labels {
		if l == vs {
			return true, nil
		}
	}
	return false, fmt.Errorf("feature %s got unknown value %q, expected one of %v: %w", name, vs, labels, ErrSchemaMismatch)
}

func validName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("feature name cannot be empty: %w", ErrInvalidArgument)
	}
	return nil
}
