package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/matzehuels/units/pkg/registry"
)

func TestDocumentRoundTrip(t *testing.T) {
	def := registry.Definition{
		Name:        "degree Fahrenheit",
		Symbol:      "degF",
		Dimension:   map[string]int{"temperature": 1},
		Coefficient: 5.0 / 9.0,
		Constant:    459.67 * 5.0 / 9.0,
		Aliases:     []string{"°F"},
	}

	data, err := bson.Marshal(toDocument(def))
	if err != nil {
		t.Fatalf("bson.Marshal() error: %v", err)
	}

	var raw bson.M
	if err := bson.Unmarshal(data, &raw); err != nil {
		t.Fatalf("bson.Unmarshal() error: %v", err)
	}
	if raw["_id"] != "degF" {
		t.Errorf("_id = %v, want degF", raw["_id"])
	}
	if _, ok := raw["of"]; ok {
		t.Error("empty of should be omitted")
	}

	var d document
	if err := bson.Unmarshal(data, &d); err != nil {
		t.Fatalf("bson.Unmarshal() error: %v", err)
	}
	got := d.definition()
	if got.Symbol != def.Symbol || got.Name != def.Name || got.Coefficient != def.Coefficient || got.Constant != def.Constant {
		t.Errorf("definition() = %+v, want %+v", got, def)
	}
	if got.Dimension["temperature"] != 1 || len(got.Aliases) != 1 || got.Aliases[0] != "°F" {
		t.Errorf("definition() = %+v", got)
	}
}
