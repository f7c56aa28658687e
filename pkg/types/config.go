// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ReaderBackend identifies the tool used to pull text and tables out of a PDF.
type ReaderBackend string

const (
	BackendNative    ReaderBackend = "native"
	BackendPdftotext ReaderBackend = "pdftotext"
)

// ReaderConfig holds settings for the document reader stage.
type ReaderConfig struct {
	// Backend selects the extraction tool: native or pdftotext.
	Backend ReaderBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Validate runs a structural check of the PDF before reading it.
	Validate bool `json:"validate" yaml:"validate" mapstructure:"validate"`

	// PdftotextPath is the pdftotext binary used by the pdftotext backend
	// (default "pdftotext" from PATH).
	PdftotextPath string `json:"pdftotext_path" yaml:"pdftotext_path" mapstructure:"pdftotext_path"`

	// ContainerImage, when set, runs pdftotext inside this image through
	// docker or podman instead of the host binary (e.g. "poppler:latest").
	ContainerImage string `json:"container_image,omitempty" yaml:"container_image,omitempty" mapstructure:"container_image"`
}

// OutputFormat selects how a ParseResult is written.
type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
	OutputText OutputFormat = "text"
)

// OutputConfig holds settings for result serialization.
type OutputConfig struct {
	// Format selects the output format: json, yaml or text.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`

	// Indent is the number of spaces used to indent JSON and YAML (default 2).
	Indent int `json:"indent" yaml:"indent" mapstructure:"indent"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is text or json (default text).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all stage configurations.
type Config struct {
	Reader ReaderConfig `json:"reader" yaml:"reader" mapstructure:"reader"`
	Output OutputConfig `json:"output" yaml:"output" mapstructure:"output"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}
