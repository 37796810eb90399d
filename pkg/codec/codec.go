// Package codec serializes repository records to structured plain text.
//
// YAML is the default format. TOML is available for repositories created
// with an explicit record format; the format is fixed for the lifetime of a
// repository and recorded in its persisted configuration.
package codec

import (
	"bytes"
	"strings"

	"github.com/arthur-debert/metadir/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Supported record formats
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"

	DefaultFormat = FormatYAML
)

// Codec marshals records in one format
type Codec interface {
	// Format returns the format name
	Format() string
	// Ext returns the file extension without the leading dot
	Ext() string
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}

// ForFormat returns the codec for a format name. An empty name selects the
// default format.
func ForFormat(format string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatYAML, "yml":
		return yamlCodec{}, nil
	case FormatTOML:
		return tomlCodec{}, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput,
			"unsupported record format: %s. Supported formats are yaml, toml", format)
	}
}

// MustForFormat is ForFormat for formats known to be valid
func MustForFormat(format string) Codec {
	c, err := ForFormat(format)
	if err != nil {
		panic(err)
	}
	return c
}

type yamlCodec struct{}

func (yamlCodec) Format() string { return FormatYAML }
func (yamlCodec) Ext() string { return "yaml" }

func (yamlCodec) Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (yamlCodec) Unmarshal(data []byte, v interface{}) error {
	return yaml.Unmarshal(data, v)
}

type tomlCodec struct{}

func (tomlCodec) Format() string { return FormatTOML }
func (tomlCodec) Ext() string { return "toml" }

func (tomlCodec) Marshal(v interface{}) ([]byte, error) {
	return toml.Marshal(v)
}

func (tomlCodec) Unmarshal(data []byte, v interface{}) error {
	return toml.Unmarshal(data, v)
}
