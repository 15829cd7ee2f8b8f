package config

import (
	"io"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/units/pkg/errors"
	"github.com/matzehuels/units/pkg/registry"
)

type definitionsFile struct {
	Units []registry.Definition `toml:"units"`
}

// LoadDefinitions reads a standalone TOML file of [[units]] tables.
func LoadDefinitions(path string) ([]registry.Definition, error) {
	var f definitionsFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "load definitions %s", path)
	}
	return f.Units, nil
}

// WriteDefinitions encodes defs as [[units]] tables. The output can be
// read back with [LoadDefinitions] or pasted into the config file.
func WriteDefinitions(w io.Writer, defs []registry.Definition) error {
	enc := toml.NewEncoder(w)
	enc.Indent = ""
	if err := enc.Encode(definitionsFile{Units: defs}); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "encode definitions")
	}
	return nil
}
