package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"feeScope/internal/model"
)

// Decode reads one raw snapshot document.
func Decode(r io.Reader) (model.RawSnapshot, error) {
	var raw model.RawSnapshot
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return model.RawSnapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return raw, nil
}

// LoadFile reads a raw snapshot document from path.
func LoadFile(path string) (model.RawSnapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.RawSnapshot{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer file.Close()
	return Decode(file)
}

// Encode writes raw as an indented JSON document.
func Encode(w io.Writer, raw model.RawSnapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}
