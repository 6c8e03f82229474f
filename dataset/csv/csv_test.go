package csv

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ckacy01/entropia/dataset"
	"github.com/ckacy01/entropia/feature"
)

func testSchema(t *testing.T) *dataset.Schema {
	t.Helper()
	a, _ := feature.NewNominalFeature("Presion", 2)
	b, _ := feature.NewBinnedFeature("Edad", 25, 32)
	c, _ := feature.NewNominalFeature("Colesterol", 3)
	class, _ := feature.NewClassFeature("Clase")
	s, err := dataset.NewSchema(class, []feature.Feature{a, b, c})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestReadAndWrite(t *testing.T) {
	ctx := context.Background()
	input := "Clase,Edad,Presion,Notas,Colesterol\n" +
		"1,40,Bajo,x,Alto\n" +
		"0,< 25,Normal,,Bajo\n" +
		"1,25,Normal,y,Normal\n"
	l, extra, err := Read(ctx, strings.NewReader(input), testSchema(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(extra) != 1 || extra[0] != "Notas" {
		t.Errorf("expected Notas to be reported as extra column, got %v", extra)
	}
	var out bytes.Buffer
	if err = Write(ctx, &out, l); err != nil {
		t.Fatalf("unexpected error writing: %v", err)
	}
	expected := "Presion,Edad,Colesterol,Clase\n" +
		"Bajo,> 32,Alto,1\n" +
		"Normal,< 25,Bajo,0\n" +
		"Normal,25 - 32,Normal,1\n"
	if out.String() != expected {
		t.Errorf("expected\n%s\ngot\n%s", expected, out.String())
	}
}

func TestReadErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"empty stream", ""},
		{"missing column", "Presion,Edad,Clase\nBajo,30,1\n"},
		{"invalid label", "Presion,Edad,Colesterol,Clase\nAlto,30,Bajo,1\n"},
		{"invalid number", "Presion,Edad,Colesterol,Clase\nBajo,treinta,Bajo,1\n"},
		{"short row", "Presion,Edad,Colesterol,Clase\nBajo,30\n"},
	}
	for _, tc := range testCases {
		_, _, err := Read(context.Background(), strings.NewReader(tc.input), testSchema(t))
		if !errors.Is(err, feature.ErrSchemaMismatch) {
			t.Errorf("%s: expected schema mismatch error, got %v", tc.name, err)
		}
	}
}

func TestTemplate(t *testing.T) {
	l, err := Template(testSchema(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out bytes.Buffer
	if err = Write(context.Background(), &out, l); err != nil {
		t.Fatalf("unexpected error writing: %v", err)
	}
	expected := "Presion,Edad,Colesterol,Clase\n" +
		"Bajo,< 25,Bajo,0\n" +
		"Normal,25 - 32,Normal,1\n" +
		"Bajo,> 32,Alto,0\n"
	if out.String() != expected {
		t.Errorf("expected\n%s\ngot\n%s", expected, out.String())
	}
}

func TestReadInferring(t *testing.T) {
	ctx := context.Background()
	input := "Clima,Viento,Juega\n" +
		"Soleado,Fuerte,no\n" +
		"Lluvioso,Debil,si\n" +
		"Soleado,Debil,si\n"
	l, err := ReadInferring(ctx, strings.NewReader(input), "Juega")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := l.Schema.AttributeColumns(); len(got) != 2 || got[0] != "Clima" || got[1] != "Viento" {
		t.Errorf("expected attributes in header order, got %v", got)
	}
	values, err := l.Dataset.FeatureValues(ctx, l.Schema.Attributes[0])
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != 2 || values[0] != "Soleado" || values[1] != "Lluvioso" {
		t.Errorf("expected observed values Soleado and Lluvioso, got %v", values)
	}
	var out bytes.Buffer
	if err = Write(ctx, &out, l); err != nil {
		t.Fatalf("unexpected error writing: %v", err)
	}
	if out.String() != input {
		t.Errorf("expected\n%s\ngot\n%s", input, out.String())
	}

	_, err = ReadInferring(ctx, strings.NewReader(input), "Clase")
	if !errors.Is(err, feature.ErrSchemaMismatch) {
		t.Errorf("expected schema mismatch error for a missing class column, got %v", err)
	}
}
