// Package openapi describes the HTTP API as an OpenAPI 3.0 document that can
// be rendered as JSON or YAML.
package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const Version = "3.0.0"

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" and "yml".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported format %q (want json or yaml)", s)
}

type Document struct {
	OpenAPI string              `json:"openapi" yaml:"openapi"`
	Info    Info                `json:"info" yaml:"info"`
	Paths   map[string]PathItem `json:"paths" yaml:"paths"`
}

type Info struct {
	Title       string `json:"title" yaml:"title"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type PathItem struct {
	Get *Operation `json:"get,omitempty" yaml:"get,omitempty"`
}

type Operation struct {
	Summary     string              `json:"summary" yaml:"summary"`
	OperationID string              `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Tags        []string            `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Responses   map[string]Response `json:"responses" yaml:"responses"`
}

type Parameter struct {
	Name        string  `json:"name" yaml:"name"`
	In          string  `json:"in" yaml:"in"`
	Required    bool    `json:"required" yaml:"required"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Schema      *Schema `json:"schema" yaml:"schema"`
}

type Response struct {
	Description string               `json:"description" yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

type MediaType struct {
	Schema *Schema `json:"schema" yaml:"schema"`
}

type Schema struct {
	Type       string             `json:"type" yaml:"type"`
	Properties map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	Example    any                `json:"example,omitempty" yaml:"example,omitempty"`
}

// JSON renders the document as indented JSON.
func (d *Document) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal openapi json: %w", err)
	}
	return data, nil
}

// YAML renders the document as YAML with two-space indentation.
func (d *Document) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("marshal openapi yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshal openapi yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// Render returns the document in the requested format.
func (d *Document) Render(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return d.YAML()
	case FormatJSON:
		return d.JSON()
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// Write writes the document in the requested format.
func (d *Document) Write(w io.Writer, format Format) error {
	data, err := d.Render(format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
