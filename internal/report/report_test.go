package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ckacy01/entropia"
	"github.com/ckacy01/entropia/dataset"
	"github.com/ckacy01/entropia/feature"
)

func testAnalysis(t *testing.T) *entropia.Analysis {
	t.Helper()
	a, _ := feature.NewNominalFeature("Presion", 2)
	b, _ := feature.NewNominalFeature("Fumador", 2)
	class, _ := feature.NewClassFeature("Clase")
	schema, err := dataset.NewSchema(class, []feature.Feature{a, b})
	if err != nil {
		t.Fatal(err)
	}
	rows := []map[string]interface{}{
		{"Presion": "Bajo", "Fumador": "Bajo", "Clase": 0},
		{"Presion": "Normal", "Fumador": "Bajo", "Clase": 1},
		{"Presion": "Bajo", "Fumador": "Normal", "Clase": 0},
		{"Presion": "Normal", "Fumador": "Normal", "Clase": 1},
	}
	samples := make([]dataset.Sample, 0, len(rows))
	for _, r := range rows {
		samples = append(samples, dataset.NewSample(r))
	}
	l, err := dataset.NewLabeled(context.Background(), schema, samples)
	if err != nil {
		t.Fatal(err)
	}
	analysis, err := entropia.Analyze(context.Background(), l, entropia.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return analysis
}

func TestPrint(t *testing.T) {
	var out bytes.Buffer
	err := NewPrinter(&out, Options{Breakdown: true}).Print(testAnalysis(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	report := out.String()
	for _, expected := range []string{
		"Class distribution of Clase (4 instances)",
		"0.5000",
		"Total entropy H(S) = 1.0000",
		"Attribute Presion",
		"0.500",
		"Gain = 1.0000 - 0.0000 = 1.0000",
		"Gain = 1.0000 - 1.0000 = 0.0000",
		RootMarker,
		"Root attribute: Presion (gain 1.0000)",
	} {
		if !strings.Contains(report, expected) {
			t.Errorf("expected report to contain %q, got\n%s", expected, report)
		}
	}
	if strings.Contains(report, "\x1b[") {
		t.Errorf("expected no ANSI escapes with colors disabled")
	}
	if strings.Count(report, RootMarker) != 1 {
		t.Errorf("expected a single root marker, got\n%s", report)
	}
}

func TestPrintWithoutBreakdown(t *testing.T) {
	var out bytes.Buffer
	if err := NewPrinter(&out, Options{}).Print(testAnalysis(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out.String(), "Attribute Presion") {
		t.Errorf("expected no per-attribute breakdown, got\n%s", out.String())
	}
}

func TestJSON(t *testing.T) {
	var out bytes.Buffer
	if err := JSON(&out, testAnalysis(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var s Summary
	if err := json.Unmarshal(out.Bytes(), &s); err != nil {
		t.Fatalf("unexpected error decoding JSON: %v", err)
	}
	if s.Root != "Presion" || s.MaxGain != 1 || s.TotalEntropy != 1 {
		t.Errorf("unexpected summary %+v", s)
	}
	if len(s.Ranking) != 2 || !s.Ranking[0].Root || s.Ranking[1].Root {
		t.Errorf("expected Presion ranked first as root, got %+v", s.Ranking)
	}
	if len(s.Gains) != 2 || s.Gains[0].Attribute != "Presion" || len(s.Gains[0].Breakdown) != 2 {
		t.Errorf("expected gains in declaration order with breakdown, got %+v", s.Gains)
	}
	if s.Distribution[0].Value != "0" || s.Distribution[0].Count != 2 {
		t.Errorf("unexpected distribution %+v", s.Distribution)
	}
}

func TestDecimals(t *testing.T) {
	if got := Decimal3(1.0 / 3); got != "0.333" {
		t.Errorf("expected 0.333, got %s", got)
	}
	if got := Decimal4(0.81127812); got != "0.8113" {
		t.Errorf("expected 0.8113, got %s", got)
	}
}
