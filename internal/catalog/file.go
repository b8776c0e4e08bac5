package catalog

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type fileLayout struct {
	Bookmakers []Bookmaker `yaml:"bookmakers" validate:"required,min=1,dive"`
}

// LoadFile reads a catalog from a YAML file of the form
//
//	bookmakers:
//	  - name: sportybet
//	    country: Nigeria
//	    countryShortCode: ng
//	    inputDisabled: false
//	    outputDisabled: false
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var layout fileLayout

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&layout); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if err := validator.New().Struct(layout); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return New(layout.Bookmakers)
}
