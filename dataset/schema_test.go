package dataset

import (
	"context"
	"errors"
	"testing"

	"github.com/ckacy01/entropia/feature"
)

func testSchema(t *testing.T) *Schema {
	t.Helper()
	a, _ := feature.NewNominalFeature("Presion", 2)
	b, _ := feature.NewBinnedFeature("Edad", 25, 32)
	class, _ := feature.NewClassFeature("Clase")
	s, err := NewSchema(class, []feature.Feature{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestNewSchemaRejectsDuplicates(t *testing.T) {
	a, _ := feature.NewNominalFeature("Presion", 2)
	b, _ := feature.NewNominalFeature("Presion", 3)
	class, _ := feature.NewClassFeature("Clase")
	if _, err := NewSchema(class, []feature.Feature{a, b}); !errors.Is(err, feature.ErrInvalidArgument) {
		t.Errorf("expected invalid argument error for duplicate attributes, got %v", err)
	}
	c, _ := feature.NewClassFeature("Presion")
	if _, err := NewSchema(c, []feature.Feature{a}); !errors.Is(err, feature.ErrInvalidArgument) {
		t.Errorf("expected invalid argument error for attribute named as the class, got %v", err)
	}
}

func TestSchemaColumns(t *testing.T) {
	s := testSchema(t)
	want := []string{"Presion", "Edad", "Clase"}
	got := s.Columns()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
	if attrs := s.AttributeColumns(); len(attrs) != 2 {
		t.Errorf("expected 2 attribute columns, got %v", attrs)
	}
}

func TestSchemaMatch(t *testing.T) {
	s := testSchema(t)
	projection, extra, err := s.Match([]string{"Clase", "Notas", "Edad", "Presion"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{3, 2, 0}
	for i := range want {
		if projection[i] != want[i] {
			t.Errorf("expected projection %v, got %v", want, projection)
		}
	}
	if len(extra) != 1 || extra[0] != "Notas" {
		t.Errorf("expected extra column Notas, got %v", extra)
	}
	sample, err := s.ParseRow([]string{"1", "ignorada", "40", "Normal"}, projection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()
	if v, _ := sample.ValueFor(ctx, s.Attributes[1]); v != "> 32" {
		t.Errorf("expected raw age to be binned to \"> 32\", got %v", v)
	}
	if v, _ := sample.ValueFor(ctx, s.Class); v != 1 {
		t.Errorf("expected class code 1, got %v", v)
	}

	_, _, err = s.Match([]string{"Presion", "Notas"})
	if !errors.Is(err, feature.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch error, got %v", err)
	}
}

func TestNewLabeledValidatesSamples(t *testing.T) {
	ctx := context.Background()
	s := testSchema(t)
	good := NewSample(map[string]interface{}{"Presion": "Bajo", "Edad": "< 25", "Clase": 0})
	missing := NewSample(map[string]interface{}{"Presion": "Bajo", "Clase": 0})
	invalid := NewSample(map[string]interface{}{"Presion": "Alto", "Edad": "< 25", "Clase": 0})

	l, err := NewLabeled(ctx, s, []Sample{good})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, _ := l.Dataset.Count(ctx); n != 1 {
		t.Errorf("expected 1 sample, got %d", n)
	}
	for name, sample := range map[string]Sample{"missing": missing, "invalid": invalid} {
		if _, err := NewLabeled(ctx, s, []Sample{good, sample}); !errors.Is(err, feature.ErrSchemaMismatch) {
			t.Errorf("%s: expected schema mismatch error, got %v", name, err)
		}
	}
}

func TestSchemaRow(t *testing.T) {
	s := testSchema(t)
	row, err := s.Row(context.Background(), NewSample(map[string]interface{}{"Presion": "Bajo", "Edad": "25 - 32", "Clase": 1}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Bajo", "25 - 32", "1"}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("expected %v, got %v", want, row)
		}
	}
}

func TestInferSchema(t *testing.T) {
	s, err := InferSchema([]string{"Clima", " Clase ", "Viento", "Humedad"}, "Clase")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Clima", "Viento", "Humedad", "Clase"}
	got := s.Columns()
	if len(got) != len(want) {
		t.Fatalf("expected columns %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected columns %v, got %v", want, got)
		}
	}
	for _, f := range s.Attributes {
		if df, ok := f.(*feature.DiscreteFeature); !ok || !df.Open() {
			t.Errorf("expected %s to be an open discrete feature, got %#v", f.Name(), f)
		}
	}
	projection, _, err := s.Match([]string{"Clima", "Clase", "Viento", "Humedad"})
	if err != nil {
		t.Fatalf("unexpected error matching: %v", err)
	}
	sample, err := s.ParseRow([]string{"Soleado", "no", "Fuerte", "Alta"}, projection)
	if err != nil {
		t.Fatalf("unexpected error parsing: %v", err)
	}
	if v, _ := sample.ValueFor(context.Background(), s.Attributes[0]); v != "Soleado" {
		t.Errorf("expected Soleado, got %v", v)
	}

	tests := map[string][]string{
		"missing class":    {"Clima", "Viento"},
		"duplicate column": {"Clima", "Clase", "Clima"},
		"unnamed column":   {"Clima", "", "Clase"},
	}
	for name, header := range tests {
		if _, err := InferSchema(header, "Clase"); !errors.Is(err, feature.ErrSchemaMismatch) {
			t.Errorf("%s: expected schema mismatch error, got %v", name, err)
		}
	}
}
