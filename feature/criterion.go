package feature

import (
	"context"
	"fmt"
)

/*
Criterion represents a constraint on a feature

Its SatisfiedBy method takes a sample and returns a boolean indicating if
the given value satisfies the feature criterion.

Its Feature method returns the feature on which the criterion is applied.
*/
type Criterion interface {
	Feature() Feature
	SatisfiedBy(ctx context.Context, sample Sample) (bool, error)
}

/*
Sample is an interface for something that can satisfy a Criterion.

Its ValueFor method returns the value corresponding to the feature
passed as parameter.
*/
type Sample interface {
	ValueFor(context.Context, Feature) (interface{}, error)
}

/*
DiscreteCriterion represents a constraint on a feature to take a
specific categorical value.

Its Value method returns the value to which the feature is constrained as
a string.
*/
type DiscreteCriterion interface {
	Criterion
	Value() string
}

type discreteCriterion struct {
	feature Feature
	value   string
}

/*
NewDiscreteCriterion takes a feature and a value string and returns a
DiscreteCriterion satisfied by samples whose value for the feature has
the given string form.
*/
func NewDiscreteCriterion(feature Feature, value string) DiscreteCriterion {
	return &discreteCriterion{feature, value}
}

/*
ValueString returns the string form of a categorical value, the one used
to compare values and group samples by them. Class code 0 and the text "0"
share the same string form.
*/
func ValueString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

/*
Feature returns the feature to which the constraint applies.
*/
func (dfc *discreteCriterion) Feature() Feature {
	return dfc.feature
}

/*
SatisfiedBy receives a sample as parameter and returns a boolean indicating if the
sample satisfies the criterion, that is, if the string form of its value for the
feature equals the value on the criterion. It returns an error if the sample does
not define a value for the feature.
*/
func (dfc *discreteCriterion) SatisfiedBy(ctx context.Context, sample Sample) (bool, error) {
	val, err := sample.ValueFor(ctx, dfc.feature)
	if err != nil {
		return false, err
	}
	return dfc.value == ValueString(val), nil
}

func (dfc *discreteCriterion) Value() string {
	return dfc.value
}

func (dfc *discreteCriterion) String() string {
	return fmt.Sprintf("%s is %s", dfc.feature.Name(), dfc.value)
}
