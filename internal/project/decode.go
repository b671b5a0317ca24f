package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"splicer/internal/validation"
)

// Format is a project file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".toml":
		return FormatTOML, true
	case ".yaml", ".yml":
		return FormatYAML, true
	}
	return "", false
}

// Load reads and decodes a project file.
func Load(path string) (Document, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return Document{}, validation.Wrap(validation.ErrConfiguration, "project", "load",
			fmt.Sprintf("unsupported project file extension %q", filepath.Ext(path)), nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, validation.Wrap(validation.ErrNotFound, "project", "load", path, err)
		}
		return Document{}, fmt.Errorf("read project %s: %w", path, err)
	}
	return Parse(data, format)
}

// Parse decodes data. Unknown fields are an error in every format.
func Parse(data []byte, format Format) (Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
	default:
		return Document{}, validation.Wrap(validation.ErrConfiguration, "project", "parse",
			fmt.Sprintf("unknown format %q", format), nil)
	}
	if err != nil {
		return Document{}, validation.Wrap(validation.ErrValidation, "project", "parse", string(format), err)
	}
	return doc, nil
}

// Marshal encodes doc in format.
func Marshal(doc Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatTOML:
		return toml.Marshal(doc)
	case FormatYAML:
		return yaml.Marshal(doc)
	}
	return nil, validation.Wrap(validation.ErrConfiguration, "project", "marshal",
		fmt.Sprintf("unknown format %q", format), nil)
}
