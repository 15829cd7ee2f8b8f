package redis

import (
	"context"
	"testing"

	goredis "github.com/redis/go-redis/v9"

	errs "github.com/matzehuels/units/pkg/errors"
	"github.com/matzehuels/units/pkg/registry"
)

func TestNewStoreWithClientDefaultKey(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "localhost:0"})
	s := NewStoreWithClient(client, "")
	defer s.Close()

	if s.key != DefaultKey {
		t.Errorf("key = %q, want %q", s.key, DefaultKey)
	}
}

func TestPutRejectsEmptySymbol(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "localhost:0"})
	s := NewStoreWithClient(client, "k")
	defer s.Close()

	err := s.Put(context.Background(), registry.Definition{Name: "nameless"})
	if !errs.Is(err, errs.ErrCodeInvalidSymbol) {
		t.Errorf("Put() error = %v, want %s", err, errs.ErrCodeInvalidSymbol)
	}
}

func TestDecode(t *testing.T) {
	def, err := decode("cft", `{"name":"centifoot","symbol":"cft","dimension":{"length":1},"coefficient":0.003048}`)
	if err != nil {
		t.Fatalf("decode() error: %v", err)
	}
	if def.Symbol != "cft" || def.Dimension["length"] != 1 {
		t.Errorf("decode() = %+v", def)
	}

	if _, err := decode("bad", "{"); !errs.Is(err, errs.ErrCodeInternal) {
		t.Errorf("decode() error = %v, want %s", err, errs.ErrCodeInternal)
	}
}
