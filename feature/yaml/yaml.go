/*
Package yaml provides methods to parse attribute specifications, also
known as metadata, from YAML documents.
*/
package yaml

import (
	"fmt"
	"io/ioutil"

	"github.com/ckacy01/entropia/feature"
	yaml "gopkg.in/yaml.v2"
)

// Discrete is the declaration of a discrete attribute open to any value.
const Discrete = "discrete"

/*
Metadata holds the specification of a labeled dataset: the name of its
class column and its attributes in declaration order.
*/
type Metadata struct {
	Class    string
	Features []feature.Feature
}

/*
ReadMetadata takes a slice of bytes with a dataset specification in YML and
returns the metadata parsed from it or an error.

The YML is expected to be an object with an optional class property naming
the class column and a features property. The value for features should be an
object with a property for each attribute with its name and either:
  * a list with the labels of a nominal attribute, [Bajo, Normal] or
    [Bajo, Normal, Alto]
  * any other list of values, for a discrete attribute taking only them
  * the string discrete, for a discrete attribute taking any value found on
    the data
  * an object with x1 and x2 numeric properties for a numeric-binned attribute

Attributes keep the order in which they are declared.
*/
func ReadMetadata(md []byte) (*Metadata, error) {
	metadata := struct {
		Class    string        `yaml:"class"`
		Features yaml.MapSlice `yaml:"features"`
	}{}
	err := yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml features: %v", err)
	}
	if metadata.Features == nil {
		return nil, fmt.Errorf("metadata file has no feature information")
	}
	features := make([]feature.Feature, 0, len(metadata.Features))
	for _, item := range metadata.Features {
		fn := fmt.Sprintf("%v", item.Key)
		f, err := parseFeature(fn, item.Value)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	return &Metadata{Class: metadata.Class, Features: features}, nil
}

/*
ReadFeatures takes a slice of bytes with a feature specification in YML and
returns a slice of features parsed from it or an error. See ReadMetadata for
the expected format.
*/
func ReadFeatures(md []byte) ([]feature.Feature, error) {
	metadata, err := ReadMetadata(md)
	if err != nil {
		return nil, err
	}
	return metadata.Features, nil
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and uses
ReadMetadata to parse it and return the parsed metadata or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadMetadataFromFile(filepath string) (*Metadata, error) {
	md, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading features yml file %s: %v", filepath, err)
	}
	metadata, err := ReadMetadata(md)
	if err != nil {
		err = fmt.Errorf("parsing features yml file %s: %w", filepath, err)
	}
	return metadata, err
}

func parseFeature(name string, declaration interface{}) (feature.Feature, error) {
	switch values := declaration.(type) {
	case []interface{}:
		labels := make([]string, 0, len(values))
		for _, v := range values {
			labels = append(labels, fmt.Sprintf("%v", v))
		}
		return listedFeature(name, labels)
	case string:
		if values == Discrete {
			return feature.NewDiscreteFeature(name, nil)
		}
	case yaml.MapSlice:
		props := make(map[string]interface{}, len(values))
		for _, item := range values {
			props[fmt.Sprintf("%v", item.Key)] = item.Value
		}
		return binnedFeature(name, props)
	case map[interface{}]interface{}:
		props := make(map[string]interface{}, len(values))
		for k, v := range values {
			props[fmt.Sprintf("%v", k)] = v
		}
		return binnedFeature(name, props)
	}
	return nil, fmt.Errorf("invalid declaration of type %T for feature %s: %w", declaration, name, feature.ErrInvalidArgument)
}

// listedFeature returns a nominal feature if the labels are one of the
// nominal label sets and a discrete feature with them otherwise.
func listedFeature(name string, labels []string) (feature.Feature, error) {
	expected, err := feature.NominalValues(len(labels))
	if err != nil {
		return feature.NewDiscreteFeature(name, labels)
	}
	for i, l := range labels {
		if l != expected[i] {
			return feature.NewDiscreteFeature(name, labels)
		}
	}
	return feature.NewNominalFeature(name, len(labels))
}

func binnedFeature(name string, props map[string]interface{}) (feature.Feature, error) {
	x1, err := threshold(name, props, "x1")
	if err != nil {
		return nil, err
	}
	x2, err := threshold(name, props, "x2")
	if err != nil {
		return nil, err
	}
	return feature.NewBinnedFeature(name, x1, x2)
}

func threshold(name string, props map[string]interface{}, key string) (float64, error) {
	v, ok := props[key]
	if !ok {
		return 0, fmt.Errorf("feature %s: missing %s threshold: %w", name, key, feature.ErrInvalidArgument)
	}
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		return n, nil
	}
	return 0, fmt.Errorf("feature %s: %s threshold must be a number, got %T: %w", name, key, v, feature.ErrInvalidArgument)
}
