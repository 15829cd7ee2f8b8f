package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/matzehuels/units/pkg/errors"
	"github.com/matzehuels/units/pkg/registry"
)

func TestLoadDefinitions(t *testing.T) {
	path := writeFile(t, t.TempDir(), "defs.toml", `
[[units]]
name = "furlong"
symbol = "fur"
of = "yd"
coefficient = 220
`)
	defs, err := LoadDefinitions(path)
	if err != nil {
		t.Fatalf("LoadDefinitions() error: %v", err)
	}
	if len(defs) != 1 || defs[0].Symbol != "fur" || defs[0].Coefficient != 220 {
		t.Errorf("LoadDefinitions() = %+v", defs)
	}

	if _, err := LoadDefinitions(filepath.Join(t.TempDir(), "missing.toml")); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestWriteDefinitions(t *testing.T) {
	defs := []registry.Definition{
		{Name: "centifoot", Symbol: "cft", Dimension: map[string]int{"length": 1}, Coefficient: 0.003048, Aliases: []string{"centifeet"}},
		{Name: "furlong", Symbol: "fur", Of: "yd", Coefficient: 220},
		{Name: "degree Rankine", Symbol: "degR", Dimension: map[string]int{"temperature": 1}, Coefficient: 5.0 / 9.0},
	}

	var buf bytes.Buffer
	if err := WriteDefinitions(&buf, defs); err != nil {
		t.Fatalf("WriteDefinitions() error: %v", err)
	}
	out := buf.String()
	if strings.Count(out, "[[units]]") != 3 {
		t.Errorf("output should hold three [[units]] tables:\n%s", out)
	}
	if strings.Contains(out, "constant") {
		t.Errorf("zero constants should be omitted:\n%s", out)
	}

	path := filepath.Join(t.TempDir(), "defs.toml")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := LoadDefinitions(path)
	if err != nil {
		t.Fatalf("LoadDefinitions() error: %v", err)
	}
	if len(got) != 3 || got[0].Dimension["length"] != 1 || got[0].Aliases[0] != "centifeet" || got[1].Of != "yd" {
		t.Errorf("read back %+v", got)
	}
}
