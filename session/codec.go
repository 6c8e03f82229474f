package session

import (
	"context"
	"fmt"

	"github.com/ckacy01/entropia/dataset"
	"github.com/ckacy01/entropia/feature"
	"github.com/vmihailenco/msgpack/v5"
)

// snapshotVersion must be incremented when the snapshot format changes.
const snapshotVersion uint16 = 2

/*
EncodeDecoder is an interface for objects
that allow encoding labeled datasets into slices
of bytes and decoding them back.
*/
type EncodeDecoder interface {
	// Encode receives a labeled dataset and returns
	// a slice of bytes with it encoded or an error
	// if the encoding could not be performed.
	Encode(context.Context, *dataset.Labeled) ([]byte, error)
	// Decode receives a slice of bytes and returns
	// the labeled dataset decoded from it or an error
	// if the decoding could not be performed.
	Decode(context.Context, []byte) (*dataset.Labeled, error)
}

type snapshot struct {
	Version    uint16         `msgpack:"version"`
	Class      feature.Spec   `msgpack:"class"`
	Attributes []feature.Spec `msgpack:"attributes"`
	Rows       [][]string     `msgpack:"rows"`
}

type msgpackEncodeDecoder struct{}

/*
MsgpackEncodeDecoder returns an EncodeDecoder that encodes datasets with
MessagePack as their schema and the text form of their rows, in Columns
order. Decoded rows are parsed again by the features of the schema.
*/
func MsgpackEncodeDecoder() EncodeDecoder {
	return msgpackEncodeDecoder{}
}

func (msgpackEncodeDecoder) Encode(ctx context.Context, l *dataset.Labeled) ([]byte, error) {
	class, err := feature.SpecOf(l.Schema.Class)
	if err != nil {
		return nil, err
	}
	s := &snapshot{Version: snapshotVersion, Class: class}
	for _, f := range l.Schema.Attributes {
		spec, err := feature.SpecOf(f)
		if err != nil {
			return nil, err
		}
		s.Attributes = append(s.Attributes, spec)
	}
	samples, err := l.Dataset.Samples(ctx)
	if err != nil {
		return nil, err
	}
	for _, sample := range samples {
		row, err := l.Schema.Row(ctx, sample)
		if err != nil {
			return nil, err
		}
		s.Rows = append(s.Rows, row)
	}
	return msgpack.Marshal(s)
}

func (msgpackEncodeDecoder) Decode(ctx context.Context, data []byte) (*dataset.Labeled, error) {
	s := &snapshot{}
	if err := msgpack.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decoding dataset snapshot: %w", err)
	}
	if s.Version != snapshotVersion {
		return nil, fmt.Errorf("dataset snapshot has version %d, expected %d", s.Version, snapshotVersion)
	}
	class, err := s.Class.Feature()
	if err != nil {
		return nil, err
	}
	attributes := make([]feature.Feature, 0, len(s.Attributes))
	for _, spec := range s.Attributes {
		f, err := spec.Feature()
		if err != nil {
			return nil, err
		}
		attributes = append(attributes, f)
	}
	schema, err := dataset.NewSchema(class, attributes)
	if err != nil {
		return nil, err
	}
	projection := make([]int, len(attributes)+1)
	for i := range projection {
		projection[i] = i
	}
	samples := make([]dataset.Sample, 0, len(s.Rows))
	for i, row := range s.Rows {
		sample, err := schema.ParseRow(row, projection)
		if err != nil {
			return nil, fmt.Errorf("decoding row %d of dataset snapshot: %w", i+1, err)
		}
		samples = append(samples, sample)
	}
	return dataset.NewLabeled(ctx, schema, samples)
}
