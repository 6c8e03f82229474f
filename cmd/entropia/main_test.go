package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ckacy01/entropia/dataset"
	"github.com/ckacy01/entropia/feature"
	"github.com/ckacy01/entropia/internal/config"
	"github.com/ckacy01/entropia/internal/report"
)

const testMetadata = `class: Clase
features:
  Presion: [Bajo, Normal, Alto]
  Edad: {x1: 25, x2: 32}
  Fumador: [Bajo, Normal]
`

func TestCommandsAreRegistered(t *testing.T) {
	root := cliParser()
	for _, name := range []string{"version", "analyze", "generate", "enter", "template", "serve"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("expected command %s to be registered, got %v, %v", name, cmd, err)
		}
	}
}

func TestTemplateCommand(t *testing.T) {
	dir := t.TempDir()
	metadata := filepath.Join(dir, "metadata.yml")
	if err := os.WriteFile(metadata, []byte(testMetadata), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := filepath.Join(dir, "entropia.toml")
	if err := os.WriteFile(cfg, []byte("instances = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "template.csv")
	root := cliParser()
	root.SetArgs([]string{"template", "--config", cfg, "-m", metadata, "-o", output})
	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	expected := strings.Join([]string{
		"Presion,Edad,Fumador,Clase",
		"Bajo,< 25,Bajo,0",
		"Normal,25 - 32,Normal,1",
		"Alto,> 32,Bajo,0",
		"",
	}, "\n")
	if string(content) != expected {
		t.Errorf("expected\n%s\ngot\n%s", expected, content)
	}
}

func TestAnalyzeCmdConfigValidate(t *testing.T) {
	acc := &analyzeCmdConfig{rootCmdConfig: &rootCmdConfig{}, dataInput: "data.csv", sessionID: "abc"}
	if err := acc.Validate(); err == nil {
		t.Errorf("expected error setting both input and session")
	}
	acc.dataInput = ""
	if err := acc.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAnalyzeCommandInfersSchemaWithoutMetadata(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "juego.csv")
	data := "Clima,Viento,Juega\n" +
		"Soleado,Fuerte,no\n" +
		"Lluvioso,Fuerte,si\n" +
		"Soleado,Debil,no\n" +
		"Lluvioso,Debil,si\n"
	if err := os.WriteFile(input, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := filepath.Join(dir, "entropia.toml")
	if err := os.WriteFile(cfg, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	output, err := os.Create(filepath.Join(dir, "analysis.json"))
	if err != nil {
		t.Fatal(err)
	}
	defer output.Close()
	stdout := os.Stdout
	os.Stdout = output
	defer func() { os.Stdout = stdout }()

	root := cliParser()
	root.SetArgs([]string{"analyze", "--config", cfg, "-i", input, "-c", "Juega", "--json"})
	err = root.Execute()
	os.Stdout = stdout
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content, err := os.ReadFile(output.Name())
	if err != nil {
		t.Fatal(err)
	}
	var summary report.Summary
	if err = json.Unmarshal(content, &summary); err != nil {
		t.Fatalf("decoding %q: %v", content, err)
	}
	if summary.Class != "Juega" || summary.Root != "Clima" || summary.MaxGain != 1 {
		t.Errorf("expected root Clima with gain 1 for class Juega, got %+v", summary)
	}
	if len(summary.Gains) != 2 || summary.Gains[0].Attribute != "Clima" || summary.Gains[1].Attribute != "Viento" {
		t.Errorf("expected gains of Clima and Viento in column order, got %+v", summary.Gains)
	}
}

func TestSessionsNeedASharedBackend(t *testing.T) {
	cfg := config.Default()
	if err := sharedSessions(cfg); err == nil {
		t.Errorf("expected error keeping sessions on the %s backend", cfg.Session.Backend)
	}
	rcc := &rootCmdConfig{}
	a, _ := feature.NewNominalFeature("A", 2)
	class, _ := feature.NewClassFeature("Clase")
	schema, err := dataset.NewSchema(class, []feature.Feature{a})
	if err != nil {
		t.Fatal(err)
	}
	l, err := dataset.NewLabeled(context.Background(), schema, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err = rcc.storeSession(context.Background(), cfg, l); err == nil {
		t.Errorf("expected storing a session on the memory backend to fail")
	}
	cfg.Session.Backend = config.BackendRedis
	if err := sharedSessions(cfg); err != nil {
		t.Errorf("unexpected error with the redis backend: %v", err)
	}
}
