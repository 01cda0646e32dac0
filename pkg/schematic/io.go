package schematic

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteFile writes a schematic to a JSON file.
func WriteFile(s Schematic, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(s, f)
}

// Write writes a schematic as indented JSON to w.
func Write(s Schematic, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadFile reads a JSON file and returns the decoded schematic.
func ReadFile(path string) (Schematic, error) {
	f, err := os.Open(path)
	if err != nil {
		return Schematic{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a JSON schematic from r.
func Read(r io.Reader) (Schematic, error) {
	var s Schematic
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Schematic{}, fmt.Errorf("decode: %w", err)
	}
	return s, nil
}
