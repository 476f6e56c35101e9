package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Structure Serialization API
// =============================================================================

// MarshalStructures converts structures to indented JSON bytes.
func MarshalStructures(s []Structure) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalStructures deserializes JSON bytes to structures.
func UnmarshalStructures(data []byte) ([]Structure, error) {
	var s []Structure
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return s, nil
}

// WriteFile writes structures to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(s []Structure, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(s, f)
}

// Write writes structures as JSON to an io.Writer.
func Write(s []Structure, w io.Writer) error {
	return writeTo(s, w)
}

// ReadFile reads a JSON file of structures.
func ReadFile(path string) ([]Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes JSON structures from an io.Reader.
func Read(r io.Reader) ([]Structure, error) {
	var s []Structure
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return s, nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeTo(s []Structure, w io.Writer) error {
	if s == nil {
		s = []Structure{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
