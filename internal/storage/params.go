package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/attractor/internal/attractor"
)

// EncodeParams writes the record of a as indented JSON.
func EncodeParams(w io.Writer, a attractor.Attractor) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(attractor.ToRecord(a))
}

// DecodeParams reads one record and rebuilds its attractor.
func DecodeParams(r io.Reader) (attractor.Attractor, error) {
	var rec attractor.Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: %v", attractor.ErrMalformedRecord, err)
	}
	return attractor.FromRecord(rec)
}

// SaveParams leaves an existing file at path untouched when a cannot be
// encoded.
func SaveParams(path string, a attractor.Attractor) error {
	var buf bytes.Buffer
	if err := EncodeParams(&buf, a); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

func LoadParams(path string) (attractor.Attractor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := DecodeParams(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}
