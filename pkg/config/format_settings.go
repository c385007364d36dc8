// Package config provides the formatting configuration shared by all
// text serialization paths. The type system passes FormatSettings through
// to whichever implementation handles a call without inspecting it.
package config

import (
	"github.com/spf13/viper"

	"github.com/vireodata/vireo/pkg/errors"
)

// FormatSettings carries per-format options for text serialization.
// It is treated as an opaque bag by the dispatch layer: only concrete
// type and domain codecs read from it.
type FormatSettings struct {
	CSV  CSVSettings  `mapstructure:"csv" yaml:"csv" json:"csv"`
	JSON JSONSettings `mapstructure:"json" yaml:"json" json:"json"`
	XML  XMLSettings  `mapstructure:"xml" yaml:"xml" json:"xml"`

	// NullRepresentation is the token written for NULL in escaped and
	// raw text formats.
	NullRepresentation string `mapstructure:"null_representation" yaml:"null_representation" json:"null_representation"`
}

// CSVSettings controls the CSV format family.
type CSVSettings struct {
	Delimiter      string `mapstructure:"delimiter" yaml:"delimiter" json:"delimiter"`
	Quote          string `mapstructure:"quote" yaml:"quote" json:"quote"`
	AllowCRLF      bool   `mapstructure:"allow_crlf" yaml:"allow_crlf" json:"allow_crlf"`
	EmptyAsDefault bool   `mapstructure:"empty_as_default" yaml:"empty_as_default" json:"empty_as_default"`
}

// JSONSettings controls the JSON format family.
type JSONSettings struct {
	// Quote64BitIntegers writes Int64/UInt64 values as strings so that
	// JavaScript consumers do not lose precision.
	Quote64BitIntegers bool `mapstructure:"quote_64bit_integers" yaml:"quote_64bit_integers" json:"quote_64bit_integers"`
	EscapeForwardSlash bool `mapstructure:"escape_forward_slash" yaml:"escape_forward_slash" json:"escape_forward_slash"`
}

// XMLSettings controls the XML format family.
type XMLSettings struct {
	// EscapeText escapes &, < and > in character data.
	EscapeText bool `mapstructure:"escape_text" yaml:"escape_text" json:"escape_text"`
}

// DefaultFormatSettings returns the settings used when no configuration
// file is supplied.
func DefaultFormatSettings() *FormatSettings {
	return &FormatSettings{
		CSV: CSVSettings{
			Delimiter: ",",
			Quote:     `"`,
			AllowCRLF: true,
		},
		JSON: JSONSettings{
			Quote64BitIntegers: true,
		},
		XML: XMLSettings{
			EscapeText: true,
		},
		NullRepresentation: `\N`,
	}
}

// LoadFormatSettings reads format settings from a YAML, TOML or JSON file,
// applying defaults for anything the file omits.
func LoadFormatSettings(path string) (*FormatSettings, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := DefaultFormatSettings()
	v.SetDefault("csv.delimiter", defaults.CSV.Delimiter)
	v.SetDefault("csv.quote", defaults.CSV.Quote)
	v.SetDefault("csv.allow_crlf", defaults.CSV.AllowCRLF)
	v.SetDefault("csv.empty_as_default", defaults.CSV.EmptyAsDefault)
	v.SetDefault("json.quote_64bit_integers", defaults.JSON.Quote64BitIntegers)
	v.SetDefault("json.escape_forward_slash", defaults.JSON.EscapeForwardSlash)
	v.SetDefault("xml.escape_text", defaults.XML.EscapeText)
	v.SetDefault("null_representation", defaults.NullRepresentation)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to read format settings")
	}

	settings := &FormatSettings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse format settings")
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Validate checks basic structural constraints.
func (s *FormatSettings) Validate() error {
	if len(s.CSV.Delimiter) != 1 {
		return errors.Newf(errors.ErrorTypeConfig,
			"csv delimiter must be a single character, got %q", s.CSV.Delimiter)
	}
	if len(s.CSV.Quote) != 1 {
		return errors.Newf(errors.ErrorTypeConfig,
			"csv quote must be a single character, got %q", s.CSV.Quote)
	}
	if s.NullRepresentation == "" {
		return errors.New(errors.ErrorTypeConfig, "null representation must not be empty")
	}
	return nil
}
