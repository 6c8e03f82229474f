/*
Package inputsample provides manual entry of labeled datasets, reading the
value of every column of every instance from an io.Reader.
*/
package inputsample

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ckacy01/entropia/dataset"
	"github.com/ckacy01/entropia/feature"
)

/*
FeatureValueRequester represents a way to ask
for feature values and reject the given values.
*/
type FeatureValueRequester interface {
	RequestValueFor(instance int, f feature.Feature, options []string) error
	RejectValueFor(instance int, f feature.Feature, value string) error
}

type reader struct {
	scanner   *bufio.Scanner
	requester FeatureValueRequester
}

// ClassOptions are the values offered for the class column, with the
// answers that select each of them.
var ClassOptions = []struct {
	Value   int
	Answers []string
}{
	{0, []string{"0", "no"}},
	{1, []string{"1", "si", "sí", "yes"}},
}

/*
Read takes a context, an io.Reader, a schema, the number of instances to read
and a FeatureValueRequester, and returns a labeled dataset with that many
instances whose values are read from the reader, one per line.

Values are read instance by instance, attributes first in declaration order
and then the class, requesting each with the FeatureValueRequester before
reading it. Lines are read until an acceptable one is found, rejecting the
others with the FeatureValueRequester's RejectValueFor method:
  * nominal attributes accept any of their labels or its 1-based position
    among them
  * numeric-binned attributes accept any of their range labels or a raw
    number, which is binned
  * discrete attributes accept any of their declared values or its 1-based
    position among them, or any non-empty text if they declare none
  * the class accepts 0/No and 1/Si

An error is returned if the reader is exhausted before all values are read,
or if the context is cancelled.
*/
func Read(ctx context.Context, r io.Reader, schema *dataset.Schema, instanceCount int, requester FeatureValueRequester) (*dataset.Labeled, error) {
	if instanceCount < 0 {
		return nil, fmt.Errorf("cannot read %d instances: %w", instanceCount, feature.ErrInvalidArgument)
	}
	rd := &reader{bufio.NewScanner(r), requester}
	samples := make([]dataset.Sample, 0, instanceCount)
	for i := 1; i <= instanceCount; i++ {
		values := make(map[string]interface{})
		for _, f := range schema.Features() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			v, err := rd.readValue(i, f)
			if err != nil {
				return nil, fmt.Errorf("reading %s for instance %d: %w", f.Name(), i, err)
			}
			values[f.Name()] = v
		}
		samples = append(samples, dataset.NewSample(values))
	}
	return dataset.NewLabeled(ctx, schema, samples)
}

/*
Options returns the answers offered when requesting a value for the given
feature.
*/
func Options(f feature.Feature) []string {
	switch f := f.(type) {
	case *feature.NominalFeature:
		return f.AvailableValues()
	case *feature.BinnedFeature:
		return f.AvailableValues()
	case *feature.DiscreteFeature:
		return f.AvailableValues()
	}
	var result []string
	for _, o := range ClassOptions {
		result = append(result, o.Answers[0])
	}
	return result
}

func (rd *reader) readValue(instance int, f feature.Feature) (interface{}, error) {
	options := Options(f)
	err := rd.requester.RequestValueFor(instance, f, options)
	if err != nil {
		return nil, err
	}
	for rd.scanner.Scan() {
		line := strings.TrimSpace(rd.scanner.Text())
		v, ok := parseAnswer(f, options, line)
		if ok {
			return v, nil
		}
		err = rd.requester.RejectValueFor(instance, f, line)
		if err != nil {
			return nil, err
		}
	}
	if err = rd.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.ErrUnexpectedEOF
}

func parseAnswer(f feature.Feature, options []string, line string) (interface{}, bool) {
	if _, ok := f.(*feature.ClassFeature); ok {
		for _, o := range ClassOptions {
			for _, a := range o.Answers {
				if strings.EqualFold(a, line) {
					return o.Value, true
				}
			}
		}
		return nil, false
	}
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(options) {
		if _, binned := f.(*feature.BinnedFeature); !binned {
			return options[n-1], true
		}
	}
	v, err := f.Parse(line)
	if err != nil {
		return nil, false
	}
	return v, true
}

/*
Prompter is a FeatureValueRequester that writes requests and rejections
as text lines on an io.Writer.
*/
type Prompter struct {
	w io.Writer
}

// NewPrompter returns a Prompter writing on the given io.Writer.
func NewPrompter(w io.Writer) *Prompter {
	return &Prompter{w}
}

// RequestValueFor writes a line asking for the value of the feature.
func (p *Prompter) RequestValueFor(instance int, f feature.Feature, options []string) error {
	if len(options) == 0 {
		_, err := fmt.Fprintf(p.w, "[%d] %s: ", instance, f.Name())
		return err
	}
	_, err := fmt.Fprintf(p.w, "[%d] %s (%s): ", instance, f.Name(), strings.Join(options, " | "))
	return err
}

// RejectValueFor writes a line explaining the value was not accepted.
func (p *Prompter) RejectValueFor(instance int, f feature.Feature, value string) error {
	_, err := fmt.Fprintf(p.w, "%q is not a valid value for %s\n", value, f.Name())
	return err
}
